package contracts

import validation "github.com/go-ozzo/ozzo-validation/v4"

// FAQAccordion is a list of collapsible question and answer pairs.
type FAQAccordion struct {
	Heading    string    `json:"heading"`
	Subheading string    `json:"subheading,omitempty"`
	Items      []FAQItem `json:"items"`
}

type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func (i FAQItem) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Question, validation.Required, validation.Length(1, 240)),
		validation.Field(&i.Answer, validation.Required),
	)
}

func DefaultFAQAccordion() FAQAccordion {
	return FAQAccordion{
		Heading: "Frequently Asked Questions",
		Items: []FAQItem{
			{Question: "Sample Question?", Answer: "Sample answer goes here."},
		},
	}
}

func (FAQAccordion) SectionType() Type { return TypeFAQAccordion }

func (FAQAccordion) Fields() []Field {
	return []Field{
		text("heading").required(),
		text("subheading"),
		list("items", text("question").required(), richText("answer").required()).required(),
	}
}

func (f FAQAccordion) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Heading, headingRules...),
		validation.Field(&f.Items),
	)
}

func (FAQAccordion) sealed() {}
