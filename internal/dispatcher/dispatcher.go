// Package dispatcher picks the editing surface for a section: its visual
// editor when one is registered and the stored payload still decodes, the
// raw structured-data editor otherwise.
package dispatcher

import (
	"github.com/goliatone/go-sections/internal/contracts"
	"github.com/goliatone/go-sections/internal/editor"
	"github.com/goliatone/go-sections/internal/logging"
	"github.com/goliatone/go-sections/pkg/interfaces"
)

// Mode tells callers which surface was opened.
type Mode string

const (
	ModeVisual Mode = "visual"
	ModeRaw    Mode = "raw"
)

// EditorResolver is the registry subset the dispatcher needs.
type EditorResolver interface {
	ResolveEditor(t contracts.Type) (editor.Editor, bool)
}

type Dispatcher struct {
	editors EditorResolver
	logger  interfaces.Logger
}

type Option func(*Dispatcher)

func WithLogger(logger interfaces.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

func New(editors EditorResolver, opts ...Option) *Dispatcher {
	d := &Dispatcher{editors: editors, logger: logging.NoOp()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Open never fails: any section can at least be edited raw.
func (d *Dispatcher) Open(t contracts.Type, content, settings map[string]any, onChange editor.ChangeFunc) (editor.Session, Mode) {
	if d.editors != nil {
		if ed, ok := d.editors.ResolveEditor(t); ok {
			session, err := ed.Open(content, settings, onChange)
			if err == nil {
				return session, ModeVisual
			}
			d.logger.Warn("sections.dispatcher.visual_fallback", "section_type", t, "error", err)
		}
	}
	return editor.OpenRaw(t, content, settings, onChange), ModeRaw
}
