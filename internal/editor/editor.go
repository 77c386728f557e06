// Package editor implements in-memory editing sessions over section payloads.
//
// Sessions never persist anything. Every accepted operation reports the full
// (content, settings) pair through the ChangeFunc supplied when the session
// was opened; the caller decides when to write it.
package editor

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-sections/internal/contracts"
)

// ChangeFunc receives the complete payload after each accepted operation.
type ChangeFunc func(content, settings map[string]any)

// Editor opens sessions for one section type.
type Editor interface {
	Open(content, settings map[string]any, onChange ChangeFunc) (Session, error)
}

// Session is an open editing session.
type Session interface {
	Type() contracts.Type
	Content() map[string]any
	Settings() map[string]any
	Apply(op Op) error
}

// Op is an edit operation applied to a session.
type Op interface {
	opName() string
}

// SetField assigns a top level or dotted nested field ("cta_primary.url").
type SetField struct {
	Field string
	Value any
}

// AddRow appends a default row to a list field.
type AddRow struct {
	List string
}

// SetRowField assigns a field of one list row.
type SetRowField struct {
	List  string
	Index int
	Field string
	Value any
}

// DeleteRow removes one list row.
type DeleteRow struct {
	List  string
	Index int
}

// ReorderRow swaps a row with its neighbour. Delta is -1 or +1.
type ReorderRow struct {
	List  string
	Index int
	Delta int
}

// SetSetting assigns a presentation setting. A nil value removes the key.
type SetSetting struct {
	Key   string
	Value any
}

// EditRaw replaces the structured-data text of a raw session.
type EditRaw struct {
	Content  string
	Settings string
}

func (SetField) opName() string    { return "set_field" }
func (AddRow) opName() string      { return "add_row" }
func (SetRowField) opName() string { return "set_row_field" }
func (DeleteRow) opName() string   { return "delete_row" }
func (ReorderRow) opName() string  { return "reorder_row" }
func (SetSetting) opName() string  { return "set_setting" }
func (EditRaw) opName() string     { return "edit_raw" }

var (
	ErrUnknownField  = errors.New("editor: unknown field")
	ErrInvalidValue  = errors.New("editor: invalid value")
	ErrRowIndex      = errors.New("editor: row index out of range")
	ErrNotOrdered    = errors.New("editor: list is not ordered")
	ErrInvalidDelta  = errors.New("editor: reorder delta must be -1 or +1")
	ErrUnsupportedOp = errors.New("editor: operation not supported")
	ErrSettingKey    = errors.New("editor: setting key required")
)

// MalformedContentError reports raw text that does not parse into a JSON
// object. The session keeps the draft so it can be corrected.
type MalformedContentError struct {
	Part   string
	Offset int64
	Err    error
}

func (e *MalformedContentError) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("editor: malformed %s at offset %d: %v", e.Part, e.Offset, e.Err)
	}
	return fmt.Sprintf("editor: malformed %s: %v", e.Part, e.Err)
}

func (e *MalformedContentError) Unwrap() error { return e.Err }

func unsupported(op Op) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedOp, op.opName())
}

func applySetting(settings map[string]any, op SetSetting) error {
	if op.Key == "" {
		return ErrSettingKey
	}
	if op.Value == nil {
		delete(settings, op.Key)
		return nil
	}
	settings[op.Key] = op.Value
	return nil
}
