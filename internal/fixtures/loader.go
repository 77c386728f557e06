// Package fixtures loads seed sections and pages from markdown files with
// YAML front matter.
//
// A section file:
//
//	---
//	kind: section
//	key: home-hero
//	name: Home hero
//	section_type: hero
//	content:
//	  heading: Events that land
//	---
//
// A page file lists section keys in page order:
//
//	---
//	kind: page
//	slug: home
//	title: Home
//	sections: [home-hero, home-faq]
//	---
//
// The markdown body of a text_block section becomes its body when the front
// matter sets no content.
package fixtures

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/google/uuid"

	"github.com/goliatone/go-sections/internal/contracts"
	"github.com/goliatone/go-sections/internal/identity"
)

const (
	KindSection = "section"
	KindPage    = "page"
)

var (
	ErrUnknownKind       = errors.New("fixtures: unknown kind")
	ErrKeyRequired       = errors.New("fixtures: section key required")
	ErrSlugRequired      = errors.New("fixtures: page slug required")
	ErrDuplicateKey      = errors.New("fixtures: duplicate section key")
	ErrDuplicateSlug     = errors.New("fixtures: duplicate page slug")
	ErrUnknownSectionKey = errors.New("fixtures: page references unknown section key")
)

// SectionFixture is a section declared by a fixture file.
type SectionFixture struct {
	Path     string
	Key      string
	ID       uuid.UUID
	Name     string
	Type     contracts.Type
	Content  map[string]any
	Settings map[string]any
	IsGlobal bool
}

// PageFixture is a page declared by a fixture file.
type PageFixture struct {
	Path            string
	Slug            string
	ID              uuid.UUID
	PageType        string
	Title           string
	MetaTitle       string
	MetaDescription string
	OGImage         string
	SectionKeys     []string
	Sections        []uuid.UUID
}

// Set is the parsed content of a fixture directory, sorted by file path.
type Set struct {
	Sections []SectionFixture
	Pages    []PageFixture
}

type header struct {
	Kind            string         `yaml:"kind"`
	Key             string         `yaml:"key"`
	Name            string         `yaml:"name"`
	SectionType     string         `yaml:"section_type"`
	Content         map[string]any `yaml:"content"`
	Settings        map[string]any `yaml:"settings"`
	IsGlobal        bool           `yaml:"is_global"`
	Slug            string         `yaml:"slug"`
	PageType        string         `yaml:"page_type"`
	Title           string         `yaml:"title"`
	MetaTitle       string         `yaml:"meta_title"`
	MetaDescription string         `yaml:"meta_description"`
	OGImage         string         `yaml:"og_image"`
	Sections        []string       `yaml:"sections"`
}

// Loader reads fixture files from a filesystem.
type Loader struct {
	fs      fs.FS
	pattern string
}

type LoaderOption func(*Loader)

// WithPattern limits loaded files to names matching the glob. Defaults to
// "*.md".
func WithPattern(pattern string) LoaderOption {
	return func(l *Loader) {
		if strings.TrimSpace(pattern) != "" {
			l.pattern = pattern
		}
	}
}

func NewLoader(filesystem fs.FS, opts ...LoaderOption) *Loader {
	l := &Loader{fs: filesystem, pattern: "*.md"}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load walks the filesystem and parses every matching file.
func (l *Loader) Load(ctx context.Context) (*Set, error) {
	var paths []string
	err := fs.WalkDir(l.fs, ".", func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if ok, _ := path.Match(l.pattern, d.Name()); ok {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fixtures: walk: %w", err)
	}
	sort.Strings(paths)

	set := &Set{}
	for _, p := range paths {
		data, err := fs.ReadFile(l.fs, p)
		if err != nil {
			return nil, fmt.Errorf("fixtures: read %s: %w", p, err)
		}
		if err := set.add(p, data); err != nil {
			return nil, err
		}
	}
	if err := set.resolve(); err != nil {
		return nil, err
	}
	return set, nil
}

// Parse builds a set from in-memory documents keyed by name.
func Parse(documents map[string][]byte) (*Set, error) {
	names := make([]string, 0, len(documents))
	for name := range documents {
		names = append(names, name)
	}
	sort.Strings(names)

	set := &Set{}
	for _, name := range names {
		if err := set.add(name, documents[name]); err != nil {
			return nil, err
		}
	}
	if err := set.resolve(); err != nil {
		return nil, err
	}
	return set, nil
}

func (s *Set) add(p string, data []byte) error {
	var meta header
	body, err := frontmatter.Parse(bytes.NewReader(data), &meta)
	if err != nil {
		return fmt.Errorf("fixtures: parse %s: %w", p, err)
	}

	switch strings.ToLower(strings.TrimSpace(meta.Kind)) {
	case KindSection:
		key := strings.TrimSpace(meta.Key)
		if key == "" {
			return fmt.Errorf("%w: %s", ErrKeyRequired, p)
		}
		fixture := SectionFixture{
			Path:     p,
			Key:      key,
			ID:       identity.SectionUUID(key),
			Name:     strings.TrimSpace(meta.Name),
			Type:     contracts.Type(strings.TrimSpace(meta.SectionType)),
			Content:  normalizeMap(meta.Content),
			Settings: normalizeMap(meta.Settings),
			IsGlobal: meta.IsGlobal,
		}
		if fixture.Name == "" {
			fixture.Name = key
		}
		text := strings.TrimSpace(string(body))
		if fixture.Type == contracts.TypeTextBlock && fixture.Content == nil && text != "" {
			fixture.Content = map[string]any{"body": text}
		}
		s.Sections = append(s.Sections, fixture)
	case KindPage:
		pageSlug := strings.TrimSpace(meta.Slug)
		if pageSlug == "" {
			return fmt.Errorf("%w: %s", ErrSlugRequired, p)
		}
		s.Pages = append(s.Pages, PageFixture{
			Path:            p,
			Slug:            pageSlug,
			ID:              identity.PageUUID(pageSlug),
			PageType:        meta.PageType,
			Title:           meta.Title,
			MetaTitle:       meta.MetaTitle,
			MetaDescription: meta.MetaDescription,
			OGImage:         meta.OGImage,
			SectionKeys:     append([]string(nil), meta.Sections...),
		})
	default:
		return fmt.Errorf("%w %q: %s", ErrUnknownKind, meta.Kind, p)
	}
	return nil
}

func (s *Set) resolve() error {
	keys := make(map[string]uuid.UUID, len(s.Sections))
	for _, fixture := range s.Sections {
		if _, dup := keys[fixture.Key]; dup {
			return fmt.Errorf("%w %q: %s", ErrDuplicateKey, fixture.Key, fixture.Path)
		}
		keys[fixture.Key] = fixture.ID
	}

	slugs := make(map[string]struct{}, len(s.Pages))
	for i := range s.Pages {
		page := &s.Pages[i]
		if _, dup := slugs[page.Slug]; dup {
			return fmt.Errorf("%w %q: %s", ErrDuplicateSlug, page.Slug, page.Path)
		}
		slugs[page.Slug] = struct{}{}

		page.Sections = make([]uuid.UUID, 0, len(page.SectionKeys))
		for _, key := range page.SectionKeys {
			id, ok := keys[strings.TrimSpace(key)]
			if !ok {
				return fmt.Errorf("%w %q: %s", ErrUnknownSectionKey, key, page.Path)
			}
			page.Sections = append(page.Sections, id)
		}
	}
	return nil
}

// normalizeMap converts the map[interface{}]interface{} values produced by
// the YAML decoder into JSON-compatible maps.
func normalizeMap(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = normalizeValue(value)
	}
	return out
}

func normalizeValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return normalizeMap(typed)
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, v := range typed {
			out[fmt.Sprint(key)] = normalizeValue(v)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, v := range typed {
			out[i] = normalizeValue(v)
		}
		return out
	case int:
		return float64(typed)
	case int64:
		return float64(typed)
	case uint64:
		return float64(typed)
	default:
		return value
	}
}
