package contracts

import validation "github.com/go-ozzo/ozzo-validation/v4"

// Hero is the full-width page opener.
type Hero struct {
	Heading         string     `json:"heading"`
	Subheading      string     `json:"subheading"`
	BackgroundImage string     `json:"background_image,omitempty"`
	CTAPrimary      *Link      `json:"cta_primary,omitempty"`
	CTASecondary    *Link      `json:"cta_secondary,omitempty"`
	Stats           []HeroStat `json:"stats,omitempty"`
}

// HeroStat is a highlighted figure rendered under the hero copy.
type HeroStat struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func (s HeroStat) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Value, validation.Required, validation.Length(1, 24)),
		validation.Field(&s.Label, labelRules...),
	)
}

// DefaultHero returns the payload seeded into new hero sections.
func DefaultHero() Hero {
	return Hero{
		Heading:    "Unforgettable Events, Perfectly Planned",
		Subheading: "From intimate gatherings to grand celebrations, we handle every detail.",
		CTAPrimary: &Link{Text: "Plan Your Event", URL: "/contact"},
		Stats: []HeroStat{
			{Value: "500+", Label: "Events Planned"},
			{Value: "98%", Label: "Happy Clients"},
		},
	}
}

func (Hero) SectionType() Type { return TypeHero }

func (Hero) Fields() []Field {
	return []Field{
		text("heading").required(),
		text("subheading").required(),
		media("background_image"),
		object("cta_primary", linkFields...),
		object("cta_secondary", linkFields...),
		list("stats", text("value").required(), text("label").required()),
	}
}

func (h Hero) Validate() error {
	return validation.ValidateStruct(&h,
		validation.Field(&h.Heading, headingRules...),
		validation.Field(&h.Subheading, validation.Required, validation.Length(1, 320)),
		validation.Field(&h.CTAPrimary),
		validation.Field(&h.CTASecondary),
		validation.Field(&h.Stats, validation.Length(0, 6)),
	)
}

func (Hero) sealed() {}
