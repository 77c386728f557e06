// Package contracts defines the typed content payload of every section type.
//
// Each section type has one Go struct implementing Content. The set is
// sealed: new types are added in this package and registered in
// internal/registry. Payloads whose type tag is not known decode to Opaque.
package contracts

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Type is the section type tag persisted with every section.
type Type string

const (
	TypeHero                 Type = "hero"
	TypeFAQAccordion         Type = "faq_accordion"
	TypeAboutTeam            Type = "about_team"
	TypeServicesGrid         Type = "services_grid"
	TypeStatsCounter         Type = "stats_counter"
	TypeTestimonialsCarousel Type = "testimonials_carousel"
	TypeContactForm          Type = "contact_form"
	TypeTimeline             Type = "timeline"
	TypeGallery              Type = "gallery"
	TypeCTABanner            Type = "cta_banner"
	TypeTextBlock            Type = "text_block"
	TypeVideoEmbed           Type = "video_embed"
	TypePricingTable         Type = "pricing_table"
	TypeLogoCloud            Type = "logo_cloud"
	TypeFeaturesList         Type = "features_list"
	TypeProcessSteps         Type = "process_steps"
)

func (t Type) String() string { return string(t) }

// Content is implemented by every section payload variant.
type Content interface {
	SectionType() Type
	// Fields describes the payload for editors and schema generation.
	Fields() []Field
	Validate() error
	sealed()
}

// ErrDecode is returned when a payload does not match its variant shape.
var ErrDecode = errors.New("contracts: payload does not match content shape")

// Encode renders content as the generic map persisted by the store.
func Encode(content Content) (map[string]any, error) {
	if content == nil {
		return map[string]any{}, nil
	}
	if opaque, ok := content.(Opaque); ok {
		return CloneMap(opaque.Payload), nil
	}
	raw, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("contracts: encode %s: %w", content.SectionType(), err)
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("contracts: encode %s: %w", content.SectionType(), err)
	}
	return out, nil
}

// Decode converts a generic payload into the variant T. Unknown keys and
// mismatched value types are rejected.
func Decode[T Content](payload map[string]any) (T, error) {
	var out T
	raw, err := json.Marshal(payload)
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&out); err != nil {
		return out, fmt.Errorf("%w: %s: %v", ErrDecode, out.SectionType(), err)
	}
	return out, nil
}

// Opaque carries the payload of a type tag this build does not know. It is
// passed through unchanged.
type Opaque struct {
	Kind    Type
	Payload map[string]any
}

func (o Opaque) SectionType() Type { return o.Kind }
func (Opaque) Fields() []Field     { return nil }
func (Opaque) Validate() error     { return nil }
func (Opaque) sealed()             {}

// CloneMap deep copies a JSON-like map.
func CloneMap(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return CloneMap(typed)
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return append([]string(nil), typed...)
	default:
		return value
	}
}
