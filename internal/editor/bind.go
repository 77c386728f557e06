package editor

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-sections/internal/contracts"
)

type setter[T any] func(target *T, value any) error

type listBinding[T any] struct {
	ordered  bool
	add      func(*T)
	remove   func(*T, int) error
	move     func(*T, int, int) error
	setField func(*T, int, string, any) error
}

type bindings[T any] struct {
	fields map[string]setter[T]
	lists  map[string]listBinding[T]
}

func newBindings[T any](binds []Bind[T]) *bindings[T] {
	b := &bindings[T]{
		fields: map[string]setter[T]{},
		lists:  map[string]listBinding[T]{},
	}
	for _, bind := range binds {
		if bind != nil {
			bind(b)
		}
	}
	return b
}

func (b *bindings[T]) set(target *T, field string, value any) error {
	fn, ok := b.fields[field]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	if err := fn(target, value); err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	return nil
}

func (b *bindings[T]) list(name string) (listBinding[T], error) {
	l, ok := b.lists[name]
	if !ok {
		return l, fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	return l, nil
}

// Bind registers one editable field of T.
type Bind[T any] func(*bindings[T])

// Text binds a string field.
func Text[T any](name string, get func(*T) *string) Bind[T] {
	return func(b *bindings[T]) {
		b.fields[name] = func(target *T, value any) error {
			s, err := asString(value)
			if err != nil {
				return err
			}
			*get(target) = s
			return nil
		}
	}
}

// Number binds a float64 field.
func Number[T any](name string, get func(*T) *float64) Bind[T] {
	return func(b *bindings[T]) {
		b.fields[name] = func(target *T, value any) error {
			n, err := asNumber(value)
			if err != nil {
				return err
			}
			*get(target) = n
			return nil
		}
	}
}

// Bool binds a boolean field.
func Bool[T any](name string, get func(*T) *bool) Bind[T] {
	return func(b *bindings[T]) {
		b.fields[name] = func(target *T, value any) error {
			switch v := value.(type) {
			case nil:
				*get(target) = false
			case bool:
				*get(target) = v
			default:
				return fmt.Errorf("%w: want bool, got %T", ErrInvalidValue, value)
			}
			return nil
		}
	}
}

// TextList binds a []string field. Values may be []string or []any of strings.
func TextList[T any](name string, get func(*T) *[]string) Bind[T] {
	return func(b *bindings[T]) {
		b.fields[name] = func(target *T, value any) error {
			switch v := value.(type) {
			case nil:
				*get(target) = nil
			case []string:
				*get(target) = append([]string(nil), v...)
			case []any:
				out := make([]string, 0, len(v))
				for _, item := range v {
					s, err := asString(item)
					if err != nil {
						return err
					}
					out = append(out, s)
				}
				*get(target) = out
			default:
				return fmt.Errorf("%w: want list of strings, got %T", ErrInvalidValue, value)
			}
			return nil
		}
	}
}

// Link binds a required link object as name, name.text and name.url.
func Link[T any](name string, get func(*T) *contracts.Link) Bind[T] {
	return func(b *bindings[T]) {
		b.fields[name] = func(target *T, value any) error {
			link, err := asLink(value)
			if err != nil {
				return err
			}
			*get(target) = link
			return nil
		}
		b.fields[name+".text"] = func(target *T, value any) error {
			s, err := asString(value)
			if err != nil {
				return err
			}
			get(target).Text = s
			return nil
		}
		b.fields[name+".url"] = func(target *T, value any) error {
			s, err := asString(value)
			if err != nil {
				return err
			}
			get(target).URL = s
			return nil
		}
	}
}

// OptionalLink binds an optional link object. Setting name to nil clears it
// and setting a nested key allocates it.
func OptionalLink[T any](name string, get func(*T) **contracts.Link) Bind[T] {
	ensure := func(target *T) *contracts.Link {
		ptr := get(target)
		if *ptr == nil {
			*ptr = &contracts.Link{}
		}
		return *ptr
	}
	return func(b *bindings[T]) {
		b.fields[name] = func(target *T, value any) error {
			if value == nil {
				*get(target) = nil
				return nil
			}
			link, err := asLink(value)
			if err != nil {
				return err
			}
			*get(target) = &link
			return nil
		}
		b.fields[name+".text"] = func(target *T, value any) error {
			s, err := asString(value)
			if err != nil {
				return err
			}
			ensure(target).Text = s
			return nil
		}
		b.fields[name+".url"] = func(target *T, value any) error {
			s, err := asString(value)
			if err != nil {
				return err
			}
			ensure(target).URL = s
			return nil
		}
	}
}

// List binds a list of rows of type R. Row fields are bound with the same
// constructors used for top level fields.
func List[T any, R any](name string, get func(*T) *[]R, newRow func() R, ordered bool, rowFields ...Bind[R]) Bind[T] {
	rows := newBindings(rowFields)
	return func(b *bindings[T]) {
		b.lists[name] = listBinding[T]{
			ordered: ordered,
			add: func(target *T) {
				ptr := get(target)
				*ptr = AppendRow(*ptr, newRow())
			},
			remove: func(target *T, i int) error {
				ptr := get(target)
				out, err := RemoveRow(*ptr, i)
				if err != nil {
					return err
				}
				*ptr = out
				return nil
			},
			move: func(target *T, i, delta int) error {
				ptr := get(target)
				out, err := MoveRow(*ptr, i, delta)
				if err != nil {
					return err
				}
				*ptr = out
				return nil
			},
			setField: func(target *T, i int, field string, value any) error {
				return UpdateRow(*get(target), i, func(row *R) error {
					return rows.set(row, field, value)
				})
			},
		}
	}
}

func asString(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	default:
		return "", fmt.Errorf("%w: want string, got %T", ErrInvalidValue, value)
	}
}

func asNumber(value any) (float64, error) {
	switch v := value.(type) {
	case nil:
		return 0, nil
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidValue, v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%w: want number, got %T", ErrInvalidValue, value)
	}
}

func asLink(value any) (contracts.Link, error) {
	switch v := value.(type) {
	case contracts.Link:
		return v, nil
	case *contracts.Link:
		if v == nil {
			return contracts.Link{}, nil
		}
		return *v, nil
	case map[string]any:
		text, err := asString(v["text"])
		if err != nil {
			return contracts.Link{}, err
		}
		url, err := asString(v["url"])
		if err != nil {
			return contracts.Link{}, err
		}
		return contracts.Link{Text: text, URL: url}, nil
	default:
		return contracts.Link{}, fmt.Errorf("%w: want link object, got %T", ErrInvalidValue, value)
	}
}
