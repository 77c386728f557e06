package registry

import (
	"fmt"

	"github.com/goliatone/go-sections/internal/contracts"
	"github.com/goliatone/go-sections/internal/editor"
	"github.com/goliatone/go-sections/internal/validation"
)

// Definition is everything the runtime knows about one section type.
type Definition struct {
	Type        contracts.Type
	Label       string
	Description string
	Category    string

	fields          []contracts.Field
	settingsFields  []contracts.Field
	defaultContent  map[string]any
	defaultSettings map[string]any
	decode          func(map[string]any) (contracts.Content, error)
	schema          *validation.Schema
	settingsSchema  *validation.Schema
	editor          editor.Editor
}

// Option customises a Definition.
type Option func(*Definition)

// WithLabel sets the picker label and description.
func WithLabel(label, description string) Option {
	return func(d *Definition) {
		d.Label = label
		d.Description = description
	}
}

// WithCategory groups the type in pickers.
func WithCategory(category string) Option {
	return func(d *Definition) { d.Category = category }
}

// WithSettings sets the default settings and declares type specific
// settings keys on top of the shared ones.
func WithSettings(defaults map[string]any, fields ...contracts.Field) Option {
	return func(d *Definition) {
		d.defaultSettings = contracts.CloneMap(defaults)
		d.settingsFields = append(d.settingsFields, fields...)
	}
}

// WithEditor attaches a visual editor. Types without one are edited raw.
func WithEditor(e editor.Editor) Option {
	return func(d *Definition) { d.editor = e }
}

// Define describes the section type implemented by T. The default factory
// is required; its output must satisfy the type's own schema and rules,
// otherwise Define panics.
func Define[T contracts.Content](defaults func() T, opts ...Option) Definition {
	var zero T
	def := Definition{
		Type:           zero.SectionType(),
		Label:          string(zero.SectionType()),
		fields:         zero.Fields(),
		settingsFields: append([]contracts.Field(nil), sharedSettings...),
		decode: func(payload map[string]any) (contracts.Content, error) {
			return contracts.Decode[T](payload)
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&def)
		}
	}
	if def.defaultSettings == nil {
		def.defaultSettings = map[string]any{}
	}
	def.defaultSettings = mergeDefaults(sharedSettingDefaults, def.defaultSettings)

	def.schema = validation.MustCompile(ContentSchema(def.fields))
	def.settingsSchema = validation.MustCompile(SettingsSchema(def.settingsFields))

	content, err := contracts.Encode(defaults())
	if err != nil {
		panic(fmt.Sprintf("registry: %s default: %v", def.Type, err))
	}
	if err := def.validate(content); err != nil {
		panic(fmt.Sprintf("registry: %s default: %v", def.Type, err))
	}
	if err := def.settingsSchema.Validate(def.defaultSettings); err != nil {
		panic(fmt.Sprintf("registry: %s default settings: %v", def.Type, err))
	}
	def.defaultContent = content
	return def
}

func (d *Definition) validate(content map[string]any) error {
	if err := d.schema.Validate(content); err != nil {
		return &ContentError{Type: d.Type, Issues: validation.Issues(err), Err: err}
	}
	decoded, err := d.decode(content)
	if err != nil {
		return &ContentError{Type: d.Type, Issues: []validation.Issue{{Message: err.Error()}}, Err: err}
	}
	if err := decoded.Validate(); err != nil {
		return &ContentError{Type: d.Type, Issues: ruleIssues(err), Err: err}
	}
	return nil
}

// Descriptor is the serialisable view of a Definition.
type Descriptor struct {
	Type            contracts.Type    `json:"type"`
	Label           string            `json:"label"`
	Description     string            `json:"description,omitempty"`
	Category        string            `json:"category,omitempty"`
	Fields          []contracts.Field `json:"fields"`
	SettingsFields  []contracts.Field `json:"settings_fields"`
	DefaultContent  map[string]any    `json:"default_content"`
	DefaultSettings map[string]any    `json:"default_settings"`
	Schema          map[string]any    `json:"schema"`
	HasEditor       bool              `json:"has_editor"`
}

func (d *Definition) describe() Descriptor {
	return Descriptor{
		Type:            d.Type,
		Label:           d.Label,
		Description:     d.Description,
		Category:        d.Category,
		Fields:          append([]contracts.Field(nil), d.fields...),
		SettingsFields:  append([]contracts.Field(nil), d.settingsFields...),
		DefaultContent:  contracts.CloneMap(d.defaultContent),
		DefaultSettings: contracts.CloneMap(d.defaultSettings),
		Schema:          d.schema.Document(),
		HasEditor:       d.editor != nil,
	}
}

func mergeDefaults(base, override map[string]any) map[string]any {
	out := contracts.CloneMap(base)
	for key, value := range override {
		out[key] = value
	}
	return out
}
