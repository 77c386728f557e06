package contracts

import validation "github.com/go-ozzo/ozzo-validation/v4"

// ContactForm renders the enquiry form and contact details. Submissions are
// handled outside this package.
type ContactForm struct {
	Heading        string `json:"heading"`
	Subheading     string `json:"subheading,omitempty"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Address        string `json:"address,omitempty"`
	SubmitLabel    string `json:"submit_label"`
	SuccessMessage string `json:"success_message"`
}

func DefaultContactForm() ContactForm {
	return ContactForm{
		Heading:        "Get in Touch",
		Subheading:     "Tell us about your event and we will reply within one business day.",
		SubmitLabel:    "Send Message",
		SuccessMessage: "Thanks! We will be in touch soon.",
	}
}

func (ContactForm) SectionType() Type { return TypeContactForm }

func (ContactForm) Fields() []Field {
	return []Field{
		text("heading").required(),
		text("subheading"),
		text("email"),
		text("phone"),
		richText("address"),
		text("submit_label").required(),
		text("success_message").required(),
	}
}

func (c ContactForm) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Heading, headingRules...),
		validation.Field(&c.SubmitLabel, validation.Required, validation.Length(1, 40)),
		validation.Field(&c.SuccessMessage, validation.Required),
	)
}

func (ContactForm) sealed() {}

// Timeline lists company milestones in display order.
type Timeline struct {
	Heading    string          `json:"heading"`
	Subheading string          `json:"subheading,omitempty"`
	Entries    []TimelineEntry `json:"entries"`
}

type TimelineEntry struct {
	Year        string `json:"year"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

func (e TimelineEntry) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Year, validation.Required, validation.Length(1, 16)),
		validation.Field(&e.Title, labelRules...),
	)
}

func DefaultTimeline() Timeline {
	return Timeline{
		Heading: "Our Story",
		Entries: []TimelineEntry{
			{Year: "2012", Title: "Founded", Description: "Our first wedding, planned from a kitchen table."},
			{Year: "2018", Title: "Corporate Events", Description: "We started producing conferences."},
		},
	}
}

func (Timeline) SectionType() Type { return TypeTimeline }

func (Timeline) Fields() []Field {
	return []Field{
		text("heading").required(),
		text("subheading"),
		list("entries", text("year").required(), text("title").required(), richText("description")).required().ordered(),
	}
}

func (t Timeline) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Heading, headingRules...),
		validation.Field(&t.Entries),
	)
}

func (Timeline) sealed() {}

// Gallery is an ordered image grid.
type Gallery struct {
	Heading string         `json:"heading,omitempty"`
	Images  []GalleryImage `json:"images"`
}

type GalleryImage struct {
	URL     string `json:"url"`
	Alt     string `json:"alt,omitempty"`
	Caption string `json:"caption,omitempty"`
}

func (i GalleryImage) Validate() error {
	return validation.ValidateStruct(&i, validation.Field(&i.URL, validation.Required))
}

func DefaultGallery() Gallery {
	return Gallery{
		Heading: "Recent Events",
		Images: []GalleryImage{
			{URL: "/images/gallery/placeholder.jpg", Alt: "Event placeholder"},
		},
	}
}

func (Gallery) SectionType() Type { return TypeGallery }

func (Gallery) Fields() []Field {
	return []Field{
		text("heading"),
		list("images", media("url").required(), text("alt"), text("caption")).required().ordered(),
	}
}

func (g Gallery) Validate() error {
	return validation.ValidateStruct(&g, validation.Field(&g.Images))
}

func (Gallery) sealed() {}

// CTABanner is a single call to action strip.
type CTABanner struct {
	Heading         string `json:"heading"`
	Text            string `json:"text,omitempty"`
	Button          Link   `json:"button"`
	BackgroundImage string `json:"background_image,omitempty"`
}

func DefaultCTABanner() CTABanner {
	return CTABanner{
		Heading: "Ready to Start Planning?",
		Text:    "Book a free consultation today.",
		Button:  Link{Text: "Contact Us", URL: "/contact"},
	}
}

func (CTABanner) SectionType() Type { return TypeCTABanner }

func (CTABanner) Fields() []Field {
	return []Field{
		text("heading").required(),
		richText("text"),
		object("button", linkFields...).required(),
		media("background_image"),
	}
}

func (c CTABanner) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Heading, headingRules...),
		validation.Field(&c.Button),
	)
}

func (CTABanner) sealed() {}

// TextBlock is free-form rich text.
type TextBlock struct {
	Heading string `json:"heading,omitempty"`
	Body    string `json:"body"`
}

func DefaultTextBlock() TextBlock {
	return TextBlock{Body: "Write something here."}
}

func (TextBlock) SectionType() Type { return TypeTextBlock }

func (TextBlock) Fields() []Field {
	return []Field{text("heading"), richText("body").required()}
}

func (t TextBlock) Validate() error {
	return validation.ValidateStruct(&t, validation.Field(&t.Body, validation.Required))
}

func (TextBlock) sealed() {}

// VideoEmbed embeds a hosted video.
type VideoEmbed struct {
	Heading     string `json:"heading,omitempty"`
	VideoURL    string `json:"video_url"`
	PosterImage string `json:"poster_image,omitempty"`
	Caption     string `json:"caption,omitempty"`
}

func DefaultVideoEmbed() VideoEmbed {
	return VideoEmbed{VideoURL: "https://www.youtube.com/embed/dQw4w9WgXcQ"}
}

func (VideoEmbed) SectionType() Type { return TypeVideoEmbed }

func (VideoEmbed) Fields() []Field {
	return []Field{
		text("heading"),
		link("video_url").required(),
		media("poster_image"),
		text("caption"),
	}
}

func (v VideoEmbed) Validate() error {
	return validation.ValidateStruct(&v, validation.Field(&v.VideoURL, validation.Required, href))
}

func (VideoEmbed) sealed() {}

// PricingTable compares packages side by side.
type PricingTable struct {
	Heading    string `json:"heading"`
	Subheading string `json:"subheading,omitempty"`
	Plans      []Plan `json:"plans"`
}

type Plan struct {
	Name        string   `json:"name"`
	Price       string   `json:"price"`
	Period      string   `json:"period,omitempty"`
	Features    []string `json:"features,omitempty"`
	CTA         *Link    `json:"cta,omitempty"`
	Highlighted bool     `json:"highlighted,omitempty"`
}

func (p Plan) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, labelRules...),
		validation.Field(&p.Price, validation.Required, validation.Length(1, 32)),
		validation.Field(&p.Features, validation.Each(validation.Required)),
		validation.Field(&p.CTA),
	)
}

func DefaultPricingTable() PricingTable {
	return PricingTable{
		Heading: "Packages",
		Plans: []Plan{
			{Name: "Essentials", Price: "$1,500", Features: []string{"Day-of coordination", "Vendor list"}},
			{
				Name:        "Signature",
				Price:       "$4,500",
				Features:    []string{"Full planning", "Design concept", "Day-of coordination"},
				CTA:         &Link{Text: "Book a Call", URL: "/contact"},
				Highlighted: true,
			},
		},
	}
}

func (PricingTable) SectionType() Type { return TypePricingTable }

func (PricingTable) Fields() []Field {
	return []Field{
		text("heading").required(),
		text("subheading"),
		list("plans",
			text("name").required(),
			text("price").required(),
			text("period"),
			textList("features"),
			object("cta", linkFields...),
			flag("highlighted"),
		).required(),
	}
}

func (p PricingTable) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Heading, headingRules...),
		validation.Field(&p.Plans),
	)
}

func (PricingTable) sealed() {}
