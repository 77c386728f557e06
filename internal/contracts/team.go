package contracts

import validation "github.com/go-ozzo/ozzo-validation/v4"

// AboutTeam introduces the company and its people. Team order is the
// display order.
type AboutTeam struct {
	Heading     string       `json:"heading"`
	Subheading  string       `json:"subheading,omitempty"`
	Description string       `json:"description,omitempty"`
	Team        []TeamMember `json:"team"`
	TeamNote    string       `json:"team_note,omitempty"`
}

type TeamMember struct {
	Name      string `json:"name"`
	Role      string `json:"role"`
	Image     string `json:"image,omitempty"`
	Bio       string `json:"bio,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

func (m TeamMember) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Name, labelRules...),
		validation.Field(&m.Role, labelRules...),
		validation.Field(&m.LinkedIn, href),
		validation.Field(&m.Instagram, href),
	)
}

func DefaultAboutTeam() AboutTeam {
	return AboutTeam{
		Heading:     "Meet the Team",
		Description: "A small crew of planners, designers and coordinators obsessed with the details.",
		Team: []TeamMember{
			{Name: "Team Member", Role: "Lead Planner"},
		},
	}
}

func (AboutTeam) SectionType() Type { return TypeAboutTeam }

func (AboutTeam) Fields() []Field {
	return []Field{
		text("heading").required(),
		text("subheading"),
		richText("description"),
		list("team",
			text("name").required(),
			text("role").required(),
			media("image"),
			richText("bio"),
			link("linkedin"),
			link("instagram"),
		).required().ordered(),
		text("team_note"),
	}
}

func (a AboutTeam) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Heading, headingRules...),
		validation.Field(&a.Team),
	)
}

func (AboutTeam) sealed() {}
