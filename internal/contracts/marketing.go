package contracts

import validation "github.com/go-ozzo/ozzo-validation/v4"

// ServicesGrid lists the services on offer as cards.
type ServicesGrid struct {
	Heading    string    `json:"heading"`
	Subheading string    `json:"subheading,omitempty"`
	Services   []Service `json:"services"`
}

type Service struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
	Image       string `json:"image,omitempty"`
	Link        string `json:"link,omitempty"`
}

func (s Service) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Title, labelRules...),
		validation.Field(&s.Description, validation.Required),
		validation.Field(&s.Link, href),
	)
}

func DefaultServicesGrid() ServicesGrid {
	return ServicesGrid{
		Heading: "Our Services",
		Services: []Service{
			{Title: "Weddings", Description: "Full planning and day-of coordination.", Icon: "rings"},
			{Title: "Corporate Events", Description: "Conferences, launches and team retreats.", Icon: "briefcase"},
			{Title: "Private Parties", Description: "Birthdays, anniversaries and everything in between.", Icon: "confetti"},
		},
	}
}

func (ServicesGrid) SectionType() Type { return TypeServicesGrid }

func (ServicesGrid) Fields() []Field {
	return []Field{
		text("heading").required(),
		text("subheading"),
		list("services",
			text("title").required(),
			richText("description").required(),
			text("icon"),
			media("image"),
			link("link"),
		).required(),
	}
}

func (g ServicesGrid) Validate() error {
	return validation.ValidateStruct(&g,
		validation.Field(&g.Heading, headingRules...),
		validation.Field(&g.Services),
	)
}

func (ServicesGrid) sealed() {}

// StatsCounter renders animated counters.
type StatsCounter struct {
	Heading string    `json:"heading,omitempty"`
	Stats   []Counter `json:"stats"`
}

type Counter struct {
	Value  float64 `json:"value"`
	Label  string  `json:"label"`
	Suffix string  `json:"suffix,omitempty"`
}

func (c Counter) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Value, validation.Min(0.0)),
		validation.Field(&c.Label, labelRules...),
		validation.Field(&c.Suffix, validation.Length(0, 8)),
	)
}

func DefaultStatsCounter() StatsCounter {
	return StatsCounter{
		Stats: []Counter{
			{Value: 500, Label: "Events Planned", Suffix: "+"},
			{Value: 12, Label: "Years of Experience"},
			{Value: 98, Label: "Client Satisfaction", Suffix: "%"},
		},
	}
}

func (StatsCounter) SectionType() Type { return TypeStatsCounter }

func (StatsCounter) Fields() []Field {
	return []Field{
		text("heading"),
		list("stats", number("value").required(), text("label").required(), text("suffix")).required(),
	}
}

func (s StatsCounter) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Heading, validation.Length(0, 160)),
		validation.Field(&s.Stats),
	)
}

func (StatsCounter) sealed() {}

// TestimonialsCarousel rotates client quotes.
type TestimonialsCarousel struct {
	Heading      string        `json:"heading"`
	Subheading   string        `json:"subheading,omitempty"`
	Testimonials []Testimonial `json:"testimonials"`
}

type Testimonial struct {
	Quote  string  `json:"quote"`
	Author string  `json:"author"`
	Role   string  `json:"role,omitempty"`
	Image  string  `json:"image,omitempty"`
	Rating float64 `json:"rating,omitempty"`
}

func (t Testimonial) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Quote, validation.Required),
		validation.Field(&t.Author, labelRules...),
		validation.Field(&t.Rating, validation.Min(0.0), validation.Max(5.0)),
	)
}

func DefaultTestimonialsCarousel() TestimonialsCarousel {
	return TestimonialsCarousel{
		Heading: "What Our Clients Say",
		Testimonials: []Testimonial{
			{Quote: "They made our day effortless.", Author: "Happy Client", Rating: 5},
		},
	}
}

func (TestimonialsCarousel) SectionType() Type { return TypeTestimonialsCarousel }

func (TestimonialsCarousel) Fields() []Field {
	return []Field{
		text("heading").required(),
		text("subheading"),
		list("testimonials",
			richText("quote").required(),
			text("author").required(),
			text("role"),
			media("image"),
			number("rating"),
		).required(),
	}
}

func (c TestimonialsCarousel) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Heading, headingRules...),
		validation.Field(&c.Testimonials),
	)
}

func (TestimonialsCarousel) sealed() {}

// FeaturesList is a compact bullet list of selling points.
type FeaturesList struct {
	Heading    string    `json:"heading"`
	Subheading string    `json:"subheading,omitempty"`
	Features   []Feature `json:"features"`
}

type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

func (f Feature) Validate() error {
	return validation.ValidateStruct(&f, validation.Field(&f.Title, labelRules...))
}

func DefaultFeaturesList() FeaturesList {
	return FeaturesList{
		Heading: "Why Choose Us",
		Features: []Feature{
			{Title: "Dedicated planner", Description: "One point of contact from start to finish."},
			{Title: "Trusted vendors", Description: "A vetted network of caterers, florists and venues."},
		},
	}
}

func (FeaturesList) SectionType() Type { return TypeFeaturesList }

func (FeaturesList) Fields() []Field {
	return []Field{
		text("heading").required(),
		text("subheading"),
		list("features", text("title").required(), richText("description"), text("icon")).required(),
	}
}

func (f FeaturesList) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Heading, headingRules...),
		validation.Field(&f.Features),
	)
}

func (FeaturesList) sealed() {}

// ProcessSteps walks visitors through how an engagement works, in order.
type ProcessSteps struct {
	Heading    string `json:"heading"`
	Subheading string `json:"subheading,omitempty"`
	Steps      []Step `json:"steps"`
}

type Step struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

func (s Step) Validate() error {
	return validation.ValidateStruct(&s, validation.Field(&s.Title, labelRules...))
}

func DefaultProcessSteps() ProcessSteps {
	return ProcessSteps{
		Heading: "How It Works",
		Steps: []Step{
			{Title: "Consultation", Description: "Tell us about your vision."},
			{Title: "Planning", Description: "We design the details and book the vendors."},
			{Title: "Celebration", Description: "Enjoy the day while we run the show."},
		},
	}
}

func (ProcessSteps) SectionType() Type { return TypeProcessSteps }

func (ProcessSteps) Fields() []Field {
	return []Field{
		text("heading").required(),
		text("subheading"),
		list("steps", text("title").required(), richText("description")).required().ordered(),
	}
}

func (p ProcessSteps) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Heading, headingRules...),
		validation.Field(&p.Steps),
	)
}

func (ProcessSteps) sealed() {}

// LogoCloud shows partner and client logos.
type LogoCloud struct {
	Heading string `json:"heading,omitempty"`
	Logos   []Logo `json:"logos"`
}

type Logo struct {
	Name  string `json:"name"`
	Image string `json:"image"`
	URL   string `json:"url,omitempty"`
}

func (l Logo) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Name, labelRules...),
		validation.Field(&l.Image, validation.Required),
		validation.Field(&l.URL, href),
	)
}

func DefaultLogoCloud() LogoCloud {
	return LogoCloud{
		Heading: "Trusted By",
		Logos: []Logo{
			{Name: "Partner", Image: "/images/logos/partner.svg"},
		},
	}
}

func (LogoCloud) SectionType() Type { return TypeLogoCloud }

func (LogoCloud) Fields() []Field {
	return []Field{
		text("heading"),
		list("logos", text("name").required(), media("image").required(), link("url")).required(),
	}
}

func (l LogoCloud) Validate() error {
	return validation.ValidateStruct(&l, validation.Field(&l.Logos))
}

func (LogoCloud) sealed() {}
