package editor

import c "github.com/goliatone/go-sections/internal/contracts"

// HeroEditor edits hero copy, both calls to action and the stats strip.
func HeroEditor() *Typed[c.Hero] {
	return NewTyped(
		Text("heading", func(h *c.Hero) *string { return &h.Heading }),
		Text("subheading", func(h *c.Hero) *string { return &h.Subheading }),
		Text("background_image", func(h *c.Hero) *string { return &h.BackgroundImage }),
		OptionalLink("cta_primary", func(h *c.Hero) **c.Link { return &h.CTAPrimary }),
		OptionalLink("cta_secondary", func(h *c.Hero) **c.Link { return &h.CTASecondary }),
		List("stats", func(h *c.Hero) *[]c.HeroStat { return &h.Stats },
			func() c.HeroStat { return c.HeroStat{Value: "0", Label: "New stat"} }, false,
			Text("value", func(s *c.HeroStat) *string { return &s.Value }),
			Text("label", func(s *c.HeroStat) *string { return &s.Label }),
		),
	)
}

func FAQEditor() *Typed[c.FAQAccordion] {
	return NewTyped(
		Text("heading", func(f *c.FAQAccordion) *string { return &f.Heading }),
		Text("subheading", func(f *c.FAQAccordion) *string { return &f.Subheading }),
		List("items", func(f *c.FAQAccordion) *[]c.FAQItem { return &f.Items },
			func() c.FAQItem { return c.FAQItem{Question: "New question?", Answer: "Answer goes here."} }, false,
			Text("question", func(i *c.FAQItem) *string { return &i.Question }),
			Text("answer", func(i *c.FAQItem) *string { return &i.Answer }),
		),
	)
}

func AboutTeamEditor() *Typed[c.AboutTeam] {
	return NewTyped(
		Text("heading", func(a *c.AboutTeam) *string { return &a.Heading }),
		Text("subheading", func(a *c.AboutTeam) *string { return &a.Subheading }),
		Text("description", func(a *c.AboutTeam) *string { return &a.Description }),
		Text("team_note", func(a *c.AboutTeam) *string { return &a.TeamNote }),
		List("team", func(a *c.AboutTeam) *[]c.TeamMember { return &a.Team },
			func() c.TeamMember { return c.TeamMember{Name: "New member", Role: "Role"} }, true,
			Text("name", func(m *c.TeamMember) *string { return &m.Name }),
			Text("role", func(m *c.TeamMember) *string { return &m.Role }),
			Text("image", func(m *c.TeamMember) *string { return &m.Image }),
			Text("bio", func(m *c.TeamMember) *string { return &m.Bio }),
			Text("linkedin", func(m *c.TeamMember) *string { return &m.LinkedIn }),
			Text("instagram", func(m *c.TeamMember) *string { return &m.Instagram }),
		),
	)
}

func ServicesGridEditor() *Typed[c.ServicesGrid] {
	return NewTyped(
		Text("heading", func(g *c.ServicesGrid) *string { return &g.Heading }),
		Text("subheading", func(g *c.ServicesGrid) *string { return &g.Subheading }),
		List("services", func(g *c.ServicesGrid) *[]c.Service { return &g.Services },
			func() c.Service { return c.Service{Title: "New service", Description: "Describe the service."} }, false,
			Text("title", func(s *c.Service) *string { return &s.Title }),
			Text("description", func(s *c.Service) *string { return &s.Description }),
			Text("icon", func(s *c.Service) *string { return &s.Icon }),
			Text("image", func(s *c.Service) *string { return &s.Image }),
			Text("link", func(s *c.Service) *string { return &s.Link }),
		),
	)
}

func StatsCounterEditor() *Typed[c.StatsCounter] {
	return NewTyped(
		Text("heading", func(s *c.StatsCounter) *string { return &s.Heading }),
		List("stats", func(s *c.StatsCounter) *[]c.Counter { return &s.Stats },
			func() c.Counter { return c.Counter{Label: "New counter"} }, false,
			Number("value", func(r *c.Counter) *float64 { return &r.Value }),
			Text("label", func(r *c.Counter) *string { return &r.Label }),
			Text("suffix", func(r *c.Counter) *string { return &r.Suffix }),
		),
	)
}

func TestimonialsEditor() *Typed[c.TestimonialsCarousel] {
	return NewTyped(
		Text("heading", func(t *c.TestimonialsCarousel) *string { return &t.Heading }),
		Text("subheading", func(t *c.TestimonialsCarousel) *string { return &t.Subheading }),
		List("testimonials", func(t *c.TestimonialsCarousel) *[]c.Testimonial { return &t.Testimonials },
			func() c.Testimonial { return c.Testimonial{Quote: "Quote", Author: "Client"} }, false,
			Text("quote", func(r *c.Testimonial) *string { return &r.Quote }),
			Text("author", func(r *c.Testimonial) *string { return &r.Author }),
			Text("role", func(r *c.Testimonial) *string { return &r.Role }),
			Text("image", func(r *c.Testimonial) *string { return &r.Image }),
			Number("rating", func(r *c.Testimonial) *float64 { return &r.Rating }),
		),
	)
}

func TimelineEditor() *Typed[c.Timeline] {
	return NewTyped(
		Text("heading", func(t *c.Timeline) *string { return &t.Heading }),
		Text("subheading", func(t *c.Timeline) *string { return &t.Subheading }),
		List("entries", func(t *c.Timeline) *[]c.TimelineEntry { return &t.Entries },
			func() c.TimelineEntry { return c.TimelineEntry{Year: "Year", Title: "Milestone"} }, true,
			Text("year", func(e *c.TimelineEntry) *string { return &e.Year }),
			Text("title", func(e *c.TimelineEntry) *string { return &e.Title }),
			Text("description", func(e *c.TimelineEntry) *string { return &e.Description }),
		),
	)
}

func GalleryEditor() *Typed[c.Gallery] {
	return NewTyped(
		Text("heading", func(g *c.Gallery) *string { return &g.Heading }),
		List("images", func(g *c.Gallery) *[]c.GalleryImage { return &g.Images },
			func() c.GalleryImage { return c.GalleryImage{URL: "/images/gallery/placeholder.jpg"} }, true,
			Text("url", func(i *c.GalleryImage) *string { return &i.URL }),
			Text("alt", func(i *c.GalleryImage) *string { return &i.Alt }),
			Text("caption", func(i *c.GalleryImage) *string { return &i.Caption }),
		),
	)
}

func PricingTableEditor() *Typed[c.PricingTable] {
	return NewTyped(
		Text("heading", func(p *c.PricingTable) *string { return &p.Heading }),
		Text("subheading", func(p *c.PricingTable) *string { return &p.Subheading }),
		List("plans", func(p *c.PricingTable) *[]c.Plan { return &p.Plans },
			func() c.Plan { return c.Plan{Name: "New plan", Price: "$0"} }, false,
			Text("name", func(p *c.Plan) *string { return &p.Name }),
			Text("price", func(p *c.Plan) *string { return &p.Price }),
			Text("period", func(p *c.Plan) *string { return &p.Period }),
			TextList("features", func(p *c.Plan) *[]string { return &p.Features }),
			OptionalLink("cta", func(p *c.Plan) **c.Link { return &p.CTA }),
			Bool("highlighted", func(p *c.Plan) *bool { return &p.Highlighted }),
		),
	)
}

func FeaturesListEditor() *Typed[c.FeaturesList] {
	return NewTyped(
		Text("heading", func(f *c.FeaturesList) *string { return &f.Heading }),
		Text("subheading", func(f *c.FeaturesList) *string { return &f.Subheading }),
		List("features", func(f *c.FeaturesList) *[]c.Feature { return &f.Features },
			func() c.Feature { return c.Feature{Title: "New feature"} }, false,
			Text("title", func(r *c.Feature) *string { return &r.Title }),
			Text("description", func(r *c.Feature) *string { return &r.Description }),
			Text("icon", func(r *c.Feature) *string { return &r.Icon }),
		),
	)
}

func ProcessStepsEditor() *Typed[c.ProcessSteps] {
	return NewTyped(
		Text("heading", func(p *c.ProcessSteps) *string { return &p.Heading }),
		Text("subheading", func(p *c.ProcessSteps) *string { return &p.Subheading }),
		List("steps", func(p *c.ProcessSteps) *[]c.Step { return &p.Steps },
			func() c.Step { return c.Step{Title: "New step"} }, true,
			Text("title", func(s *c.Step) *string { return &s.Title }),
			Text("description", func(s *c.Step) *string { return &s.Description }),
		),
	)
}
