package contracts_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/goliatone/go-sections/internal/contracts"
)

func defaults() []contracts.Content {
	return []contracts.Content{
		contracts.DefaultHero(),
		contracts.DefaultFAQAccordion(),
		contracts.DefaultAboutTeam(),
		contracts.DefaultServicesGrid(),
		contracts.DefaultStatsCounter(),
		contracts.DefaultTestimonialsCarousel(),
		contracts.DefaultContactForm(),
		contracts.DefaultTimeline(),
		contracts.DefaultGallery(),
		contracts.DefaultCTABanner(),
		contracts.DefaultTextBlock(),
		contracts.DefaultVideoEmbed(),
		contracts.DefaultPricingTable(),
		contracts.DefaultLogoCloud(),
		contracts.DefaultFeaturesList(),
		contracts.DefaultProcessSteps(),
	}
}

func TestDefaultsValidate(t *testing.T) {
	for _, content := range defaults() {
		if err := content.Validate(); err != nil {
			t.Fatalf("%s default invalid: %v", content.SectionType(), err)
		}
	}
}

func TestFAQDefaultEncoding(t *testing.T) {
	got, err := contracts.Encode(contracts.DefaultFAQAccordion())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := map[string]any{
		"heading": "Frequently Asked Questions",
		"items": []any{
			map[string]any{"question": "Sample Question?", "answer": "Sample answer goes here."},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected faq default\nwant: %#v\ngot:  %#v", want, got)
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	encoded, err := contracts.Encode(contracts.DefaultHero())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	hero, err := contracts.Decode[contracts.Hero](encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(hero, contracts.DefaultHero()) {
		t.Fatalf("round trip mismatch: %#v", hero)
	}
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := contracts.Decode[contracts.TextBlock](map[string]any{"body": "x", "colour": "red"})
	if !errors.Is(err, contracts.ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
}

func TestDecodeRejectsWrongValueType(t *testing.T) {
	_, err := contracts.Decode[contracts.StatsCounter](map[string]any{
		"stats": []any{map[string]any{"value": "lots", "label": "Events"}},
	})
	if !errors.Is(err, contracts.ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
}

func TestValidateReportsNestedErrors(t *testing.T) {
	hero := contracts.DefaultHero()
	hero.CTAPrimary = &contracts.Link{Text: "Go", URL: "javascript:alert(1)"}
	if err := hero.Validate(); err == nil {
		t.Fatalf("expected invalid cta url to fail")
	}

	team := contracts.DefaultAboutTeam()
	team.Team = append(team.Team, contracts.TeamMember{Name: "No Role"})
	if err := team.Validate(); err == nil {
		t.Fatalf("expected missing role to fail")
	}
}

func TestOpaqueEncodesPayloadCopy(t *testing.T) {
	payload := map[string]any{"anything": []any{"goes"}}
	opaque := contracts.Opaque{Kind: "carousel_v2", Payload: payload}

	encoded, err := contracts.Encode(opaque)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	encoded["anything"].([]any)[0] = "changed"
	if payload["anything"].([]any)[0] != "goes" {
		t.Fatalf("expected encode to copy opaque payload")
	}
	if opaque.SectionType() != "carousel_v2" {
		t.Fatalf("unexpected type %q", opaque.SectionType())
	}
}

func TestFieldsAreDeclaredForEveryVariant(t *testing.T) {
	for _, content := range defaults() {
		encoded, err := contracts.Encode(content)
		if err != nil {
			t.Fatalf("encode %s: %v", content.SectionType(), err)
		}
		fields := content.Fields()
		for key := range encoded {
			if _, ok := contracts.FindField(fields, key); !ok {
				t.Fatalf("%s: key %q has no field descriptor", content.SectionType(), key)
			}
		}
	}
}
