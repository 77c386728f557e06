package editor

import (
	"fmt"

	"github.com/goliatone/go-sections/internal/contracts"
)

// Typed is a visual editor for the content variant T.
type Typed[T contracts.Content] struct {
	binds *bindings[T]
}

var _ Editor = (*Typed[contracts.Hero])(nil)

// NewTyped builds an editor exposing the bound fields of T.
func NewTyped[T contracts.Content](binds ...Bind[T]) *Typed[T] {
	return &Typed[T]{binds: newBindings(binds)}
}

// Open decodes content into T. Payloads that do not decode return an error
// wrapping contracts.ErrDecode.
func (e *Typed[T]) Open(content, settings map[string]any, onChange ChangeFunc) (Session, error) {
	value, err := contracts.Decode[T](content)
	if err != nil {
		return nil, err
	}
	settings = contracts.CloneMap(settings)
	if settings == nil {
		settings = map[string]any{}
	}
	return &typedSession[T]{editor: e, value: value, settings: settings, onChange: onChange}, nil
}

type typedSession[T contracts.Content] struct {
	editor   *Typed[T]
	value    T
	settings map[string]any
	onChange ChangeFunc
}

func (s *typedSession[T]) Type() contracts.Type { return s.value.SectionType() }

func (s *typedSession[T]) Content() map[string]any {
	out, err := contracts.Encode(s.value)
	if err != nil {
		return map[string]any{}
	}
	return out
}

func (s *typedSession[T]) Settings() map[string]any {
	return contracts.CloneMap(s.settings)
}

// Apply mutates a copy of the current value and only keeps it, and emits,
// when the operation succeeds.
func (s *typedSession[T]) Apply(op Op) error {
	next := s.value
	if err := s.apply(&next, op); err != nil {
		return err
	}
	content, err := contracts.Encode(next)
	if err != nil {
		return err
	}
	s.value = next
	if s.onChange != nil {
		s.onChange(content, contracts.CloneMap(s.settings))
	}
	return nil
}

func (s *typedSession[T]) apply(next *T, op Op) error {
	binds := s.editor.binds
	switch o := op.(type) {
	case SetField:
		return binds.set(next, o.Field, o.Value)
	case AddRow:
		l, err := binds.list(o.List)
		if err != nil {
			return err
		}
		l.add(next)
	case DeleteRow:
		l, err := binds.list(o.List)
		if err != nil {
			return err
		}
		return l.remove(next, o.Index)
	case ReorderRow:
		l, err := binds.list(o.List)
		if err != nil {
			return err
		}
		if !l.ordered {
			return fmt.Errorf("%w: %s", ErrNotOrdered, o.List)
		}
		return l.move(next, o.Index, o.Delta)
	case SetRowField:
		l, err := binds.list(o.List)
		if err != nil {
			return err
		}
		if err := l.setField(next, o.Index, o.Field, o.Value); err != nil {
			return fmt.Errorf("%s[%d]: %w", o.List, o.Index, err)
		}
	case SetSetting:
		return applySetting(s.settings, o)
	default:
		return unsupported(op)
	}
	return nil
}
