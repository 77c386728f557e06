package editor

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/goliatone/go-sections/internal/contracts"
)

var errNotObject = errors.New("value must be a JSON object")

// RawSession edits a payload as JSON text. It is used for section types
// without a visual editor and for payloads a visual editor cannot decode.
type RawSession struct {
	kind          contracts.Type
	content       map[string]any
	settings      map[string]any
	draftContent  string
	draftSettings string
	onChange      ChangeFunc
}

var _ Session = (*RawSession)(nil)

// OpenRaw starts a raw session with the payload rendered as indented JSON.
func OpenRaw(kind contracts.Type, content, settings map[string]any, onChange ChangeFunc) *RawSession {
	content = contracts.CloneMap(content)
	if content == nil {
		content = map[string]any{}
	}
	settings = contracts.CloneMap(settings)
	if settings == nil {
		settings = map[string]any{}
	}
	return &RawSession{
		kind:          kind,
		content:       content,
		settings:      settings,
		draftContent:  render(content),
		draftSettings: render(settings),
		onChange:      onChange,
	}
}

func (s *RawSession) Type() contracts.Type      { return s.kind }
func (s *RawSession) Content() map[string]any  { return contracts.CloneMap(s.content) }
func (s *RawSession) Settings() map[string]any { return contracts.CloneMap(s.settings) }

// Draft returns the current, possibly unparsed, text of both payloads.
func (s *RawSession) Draft() (content, settings string) {
	return s.draftContent, s.draftSettings
}

// Apply accepts EditRaw and SetSetting. A malformed EditRaw keeps the new
// draft text, leaves the last good payload in place and emits nothing.
func (s *RawSession) Apply(op Op) error {
	switch o := op.(type) {
	case EditRaw:
		s.draftContent = o.Content
		s.draftSettings = o.Settings
		content, err := parseObject("content", o.Content)
		if err != nil {
			return err
		}
		settings, err := parseObject("settings", o.Settings)
		if err != nil {
			return err
		}
		s.content = content
		s.settings = settings
	case SetSetting:
		if err := applySetting(s.settings, o); err != nil {
			return err
		}
		s.draftSettings = render(s.settings)
	default:
		return unsupported(op)
	}
	if s.onChange != nil {
		s.onChange(contracts.CloneMap(s.content), contracts.CloneMap(s.settings))
	}
	return nil
}

func parseObject(part, text string) (map[string]any, error) {
	if strings.TrimSpace(text) == "" {
		return map[string]any{}, nil
	}
	var value any
	if err := json.Unmarshal([]byte(text), &value); err != nil {
		malformed := &MalformedContentError{Part: part, Err: err}
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			malformed.Offset = syntaxErr.Offset
		}
		return nil, malformed
	}
	object, ok := value.(map[string]any)
	if !ok {
		return nil, &MalformedContentError{Part: part, Err: errNotObject}
	}
	return object, nil
}

func render(value map[string]any) string {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(value); err != nil {
		return "{}"
	}
	return strings.TrimRight(buf.String(), "\n")
}
