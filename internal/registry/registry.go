// Package registry maps section type tags to their content contract,
// defaults, schema and optional visual editor.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-sections/internal/contracts"
	"github.com/goliatone/go-sections/internal/editor"
	"github.com/goliatone/go-sections/internal/validation"
)

var (
	ErrDuplicateType   = errors.New("registry: section type already registered")
	ErrTypeRequired    = errors.New("registry: section type required")
	ErrInvalidContent  = errors.New("registry: invalid content")
	ErrInvalidSettings = errors.New("registry: invalid settings")
)

// ContentError lists the problems found in a content or settings payload.
type ContentError struct {
	Type     contracts.Type
	Settings bool
	Issues   []validation.Issue
	Err      error
}

func (e *ContentError) Error() string {
	part := "content"
	if e.Settings {
		part = "settings"
	}
	return fmt.Sprintf("registry: invalid %s %s: %v", e.Type, part, e.Err)
}

// IssueList exposes the located issues to callers that wrap the error.
func (e *ContentError) IssueList() []validation.Issue {
	return e.Issues
}

func (e *ContentError) Unwrap() []error {
	if e.Settings {
		return []error{ErrInvalidSettings, e.Err}
	}
	return []error{ErrInvalidContent, e.Err}
}

// Registry is safe for concurrent use. Lookups of unknown types never fail;
// they report the generic behaviour instead.
type Registry struct {
	mu    sync.RWMutex
	defs  map[contracts.Type]*Definition
	order []contracts.Type
}

// New builds a registry from defs.
func New(defs ...Definition) (*Registry, error) {
	r := &Registry{defs: make(map[contracts.Type]*Definition, len(defs))}
	for _, def := range defs {
		if err := r.Register(def); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a type. Registering a tag twice fails.
func (r *Registry) Register(def Definition) error {
	if strings.TrimSpace(string(def.Type)) == "" {
		return ErrTypeRequired
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.defs[def.Type]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateType, def.Type)
	}
	stored := def
	r.defs[def.Type] = &stored
	r.order = append(r.order, def.Type)
	return nil
}

func (r *Registry) lookup(t contracts.Type) (*Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[t]
	return def, ok
}

// Known reports whether t is registered.
func (r *Registry) Known(t contracts.Type) bool {
	_, ok := r.lookup(t)
	return ok
}

// DefaultContent returns a fresh copy of the default payload for t, or an
// empty object for unknown types.
func (r *Registry) DefaultContent(t contracts.Type) map[string]any {
	if def, ok := r.lookup(t); ok {
		return contracts.CloneMap(def.defaultContent)
	}
	return map[string]any{}
}

// DefaultSettings returns a fresh copy of the default settings for t.
func (r *Registry) DefaultSettings(t contracts.Type) map[string]any {
	if def, ok := r.lookup(t); ok {
		return contracts.CloneMap(def.defaultSettings)
	}
	return map[string]any{}
}

// Fields returns the field descriptors of t.
func (r *Registry) Fields(t contracts.Type) []contracts.Field {
	if def, ok := r.lookup(t); ok {
		return append([]contracts.Field(nil), def.fields...)
	}
	return nil
}

// Decode converts a stored payload into its typed variant. Unknown types
// decode to contracts.Opaque.
func (r *Registry) Decode(t contracts.Type, content map[string]any) (contracts.Content, error) {
	def, ok := r.lookup(t)
	if !ok {
		return contracts.Opaque{Kind: t, Payload: contracts.CloneMap(content)}, nil
	}
	return def.decode(content)
}

// Validate checks content against the schema and semantic rules of t.
// Unknown types accept any object.
func (r *Registry) Validate(t contracts.Type, content map[string]any) error {
	def, ok := r.lookup(t)
	if !ok {
		return nil
	}
	return def.validate(content)
}

// ValidateSettings checks settings against the settings schema of t.
func (r *Registry) ValidateSettings(t contracts.Type, settings map[string]any) error {
	schema := genericSettings
	if def, ok := r.lookup(t); ok {
		schema = def.settingsSchema
	}
	if err := schema.Validate(settings); err != nil {
		return &ContentError{Type: t, Settings: true, Issues: validation.Issues(err), Err: err}
	}
	return nil
}

// HasEditor reports whether t has a visual editor.
func (r *Registry) HasEditor(t contracts.Type) bool {
	_, ok := r.ResolveEditor(t)
	return ok
}

// ResolveEditor returns the visual editor registered for t.
func (r *Registry) ResolveEditor(t contracts.Type) (editor.Editor, bool) {
	def, ok := r.lookup(t)
	if !ok || def.editor == nil {
		return nil, false
	}
	return def.editor, true
}

// Describe returns the descriptor of t.
func (r *Registry) Describe(t contracts.Type) (Descriptor, bool) {
	def, ok := r.lookup(t)
	if !ok {
		return Descriptor{}, false
	}
	return def.describe(), true
}

// Types lists every registered type in registration order.
func (r *Registry) Types() []Descriptor {
	r.mu.RLock()
	order := slices.Clone(r.order)
	r.mu.RUnlock()

	out := make([]Descriptor, 0, len(order))
	for _, t := range order {
		if def, ok := r.lookup(t); ok {
			out = append(out, def.describe())
		}
	}
	return out
}

func ruleIssues(err error) []validation.Issue {
	issues := []validation.Issue{}
	var walk func(location string, err error)
	walk = func(location string, err error) {
		var errs ozzo.Errors
		if errors.As(err, &errs) {
			keys := make([]string, 0, len(errs))
			for key := range errs {
				keys = append(keys, key)
			}
			slices.Sort(keys)
			for _, key := range keys {
				walk(location+"/"+key, errs[key])
			}
			return
		}
		issues = append(issues, validation.Issue{Location: location, Message: err.Error()})
	}
	walk("", err)
	return issues
}
