package contracts

import (
	"errors"
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Kind classifies a field for editors and schema generation.
type Kind string

const (
	KindText       Kind = "text"
	KindRichText   Kind = "rich_text"
	KindMedia      Kind = "media"
	KindURL        Kind = "url"
	KindNumber     Kind = "number"
	KindBool       Kind = "bool"
	KindObject     Kind = "object"
	KindList       Kind = "list"
	KindStringList Kind = "string_list"
)

// Field describes one key of a content payload. Object and list fields
// describe their members in Fields. Ordered marks lists whose rows can be
// reordered by editors.
type Field struct {
	Name     string  `json:"name"`
	Kind     Kind    `json:"kind"`
	Required bool    `json:"required,omitempty"`
	Ordered  bool    `json:"ordered,omitempty"`
	Fields   []Field `json:"fields,omitempty"`
}

// Lookup finds a member field by name.
func (f Field) Lookup(name string) (Field, bool) {
	return FindField(f.Fields, name)
}

// FindField returns the field called name from fields.
func FindField(fields []Field, name string) (Field, bool) {
	for _, field := range fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

func text(name string) Field     { return Field{Name: name, Kind: KindText} }
func richText(name string) Field { return Field{Name: name, Kind: KindRichText} }
func media(name string) Field    { return Field{Name: name, Kind: KindMedia} }
func link(name string) Field     { return Field{Name: name, Kind: KindURL} }
func number(name string) Field   { return Field{Name: name, Kind: KindNumber} }
func flag(name string) Field     { return Field{Name: name, Kind: KindBool} }
func textList(name string) Field { return Field{Name: name, Kind: KindStringList} }

func object(name string, fields ...Field) Field {
	return Field{Name: name, Kind: KindObject, Fields: fields}
}

func list(name string, fields ...Field) Field {
	return Field{Name: name, Kind: KindList, Fields: fields}
}

func (f Field) required() Field {
	f.Required = true
	return f
}

func (f Field) ordered() Field {
	f.Ordered = true
	return f
}

// Link is a labelled call to action.
type Link struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

var linkFields = []Field{text("text").required(), link("url").required()}

func (l Link) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Text, validation.Required, validation.Length(1, 80)),
		validation.Field(&l.URL, validation.Required, href),
	)
}

var errHref = errors.New("must be an absolute URL, a site path or an anchor")

// href accepts absolute http(s)/mailto/tel URLs, site relative paths and
// fragment anchors.
var href = validation.By(func(value any) error {
	s, _ := value.(string)
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if strings.HasPrefix(s, "/") || strings.HasPrefix(s, "#") {
		return nil
	}
	parsed, err := url.Parse(s)
	if err != nil {
		return errHref
	}
	switch parsed.Scheme {
	case "http", "https":
		if parsed.Host == "" {
			return errHref
		}
		return nil
	case "mailto", "tel":
		return nil
	default:
		return errHref
	}
})

var (
	headingRules = []validation.Rule{validation.Required, validation.Length(1, 160)}
	labelRules   = []validation.Rule{validation.Required, validation.Length(1, 120)}
)
