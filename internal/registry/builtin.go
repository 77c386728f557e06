package registry

import (
	"github.com/goliatone/go-sections/internal/contracts"
	"github.com/goliatone/go-sections/internal/editor"
	"github.com/goliatone/go-sections/internal/validation"
)

var sharedSettings = []contracts.Field{
	{Name: "anchor", Kind: contracts.KindText},
	{Name: "background", Kind: contracts.KindText},
	{Name: "padding", Kind: contracts.KindText},
	{Name: "css_class", Kind: contracts.KindText},
	{Name: "hidden", Kind: contracts.KindBool},
}

var sharedSettingDefaults = map[string]any{
	"background": "default",
	"padding":    "normal",
}

var genericSettings = validation.MustCompile(SettingsSchema(sharedSettings))

var (
	columns  = contracts.Field{Name: "columns", Kind: contracts.KindNumber}
	layout   = contracts.Field{Name: "layout", Kind: contracts.KindText}
	autoplay = contracts.Field{Name: "autoplay", Kind: contracts.KindBool}
)

// Builtin returns the definitions shipped with the module.
func Builtin() []Definition {
	return []Definition{
		Define(contracts.DefaultHero,
			WithLabel("Hero", "Full width opener with calls to action and stats"),
			WithCategory("headers"),
			WithSettings(map[string]any{"layout": "centered", "overlay": true}, layout,
				contracts.Field{Name: "overlay", Kind: contracts.KindBool},
				contracts.Field{Name: "full_height", Kind: contracts.KindBool}),
			WithEditor(editor.HeroEditor()),
		),
		Define(contracts.DefaultFAQAccordion,
			WithLabel("FAQ Accordion", "Collapsible questions and answers"),
			WithCategory("content"),
			WithSettings(map[string]any{"expand_first": false},
				contracts.Field{Name: "expand_first", Kind: contracts.KindBool}),
			WithEditor(editor.FAQEditor()),
		),
		Define(contracts.DefaultAboutTeam,
			WithLabel("About & Team", "Company introduction and team members"),
			WithCategory("content"),
			WithSettings(map[string]any{"columns": 3}, columns),
			WithEditor(editor.AboutTeamEditor()),
		),
		Define(contracts.DefaultServicesGrid,
			WithLabel("Services Grid", "Service cards"),
			WithCategory("marketing"),
			WithSettings(map[string]any{"columns": 3}, columns),
			WithEditor(editor.ServicesGridEditor()),
		),
		Define(contracts.DefaultStatsCounter,
			WithLabel("Stats Counter", "Animated figures"),
			WithCategory("marketing"),
			WithSettings(map[string]any{"animate": true}, contracts.Field{Name: "animate", Kind: contracts.KindBool}),
			WithEditor(editor.StatsCounterEditor()),
		),
		Define(contracts.DefaultTestimonialsCarousel,
			WithLabel("Testimonials", "Rotating client quotes"),
			WithCategory("marketing"),
			WithSettings(map[string]any{"autoplay": true, "interval": 6}, autoplay,
				contracts.Field{Name: "interval", Kind: contracts.KindNumber}),
			WithEditor(editor.TestimonialsEditor()),
		),
		Define(contracts.DefaultContactForm,
			WithLabel("Contact Form", "Enquiry form with contact details"),
			WithCategory("forms"),
			WithSettings(map[string]any{"layout": "split"}, layout),
		),
		Define(contracts.DefaultTimeline,
			WithLabel("Timeline", "Milestones in order"),
			WithCategory("content"),
			WithEditor(editor.TimelineEditor()),
		),
		Define(contracts.DefaultGallery,
			WithLabel("Gallery", "Ordered image grid"),
			WithCategory("media"),
			WithSettings(map[string]any{"columns": 3, "lightbox": true}, columns,
				contracts.Field{Name: "lightbox", Kind: contracts.KindBool}),
			WithEditor(editor.GalleryEditor()),
		),
		Define(contracts.DefaultCTABanner,
			WithLabel("Call to Action", "Single call to action strip"),
			WithCategory("marketing"),
			WithSettings(map[string]any{"background": "primary"}),
		),
		Define(contracts.DefaultTextBlock,
			WithLabel("Text Block", "Free-form rich text"),
			WithCategory("content"),
			WithSettings(map[string]any{"width": "narrow"}, contracts.Field{Name: "width", Kind: contracts.KindText}),
		),
		Define(contracts.DefaultVideoEmbed,
			WithLabel("Video", "Embedded hosted video"),
			WithCategory("media"),
			WithSettings(map[string]any{"autoplay": false}, autoplay),
		),
		Define(contracts.DefaultPricingTable,
			WithLabel("Pricing Table", "Package comparison"),
			WithCategory("marketing"),
			WithSettings(map[string]any{"columns": 3}, columns),
			WithEditor(editor.PricingTableEditor()),
		),
		Define(contracts.DefaultLogoCloud,
			WithLabel("Logo Cloud", "Partner and client logos"),
			WithCategory("marketing"),
			WithSettings(map[string]any{"grayscale": true}, contracts.Field{Name: "grayscale", Kind: contracts.KindBool}),
		),
		Define(contracts.DefaultFeaturesList,
			WithLabel("Features List", "Compact selling points"),
			WithCategory("marketing"),
			WithSettings(map[string]any{"columns": 2}, columns),
			WithEditor(editor.FeaturesListEditor()),
		),
		Define(contracts.DefaultProcessSteps,
			WithLabel("Process Steps", "How an engagement works"),
			WithCategory("content"),
			WithSettings(map[string]any{"layout": "horizontal"}, layout),
			WithEditor(editor.ProcessStepsEditor()),
		),
	}
}

// Default returns a registry holding every builtin type.
func Default() *Registry {
	r, err := New(Builtin()...)
	if err != nil {
		panic(err)
	}
	return r
}
