package pages

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-sections/internal/contracts"
)

// DefaultPageType is used when a page is created without one.
const DefaultPageType = "page"

// Page is a routable composition of sections. Sections holds the ordered,
// duplicate free list of section ids; it is stored in page_sections.
type Page struct {
	bun.BaseModel `bun:"table:pages,alias:p"`

	ID              uuid.UUID   `bun:",pk,type:uuid" json:"id"`
	Slug            string      `bun:"slug,notnull,unique" json:"slug"`
	PageType        string      `bun:"page_type,notnull" json:"page_type"`
	Title           string      `bun:"title,notnull" json:"title"`
	MetaTitle       string      `bun:"meta_title" json:"meta_title,omitempty"`
	MetaDescription string      `bun:"meta_description" json:"meta_description,omitempty"`
	OGImage         string      `bun:"og_image" json:"og_image,omitempty"`
	Sections        []uuid.UUID `bun:"-" json:"sections"`
	CreatedAt       time.Time   `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt       time.Time   `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// PageSection is one row of a page layout.
type PageSection struct {
	bun.BaseModel `bun:"table:page_sections,alias:ps"`

	PageID    uuid.UUID `bun:"page_id,pk,type:uuid" json:"page_id"`
	Position  int       `bun:"position,pk" json:"position"`
	SectionID uuid.UUID `bun:"section_id,notnull,type:uuid" json:"section_id"`
}

// Composition is a page resolved for rendering.
type Composition struct {
	Page     *Page             `json:"page"`
	URL      string            `json:"url,omitempty"`
	Sections []RenderedSection `json:"sections"`
}

type RenderedSection struct {
	ID       uuid.UUID      `json:"id"`
	Name     string         `json:"name"`
	Type     contracts.Type `json:"section_type"`
	Content  map[string]any `json:"content"`
	Settings map[string]any `json:"settings"`
}

func clonePage(src *Page) *Page {
	if src == nil {
		return nil
	}
	cloned := *src
	cloned.Sections = cloneIDs(src.Sections)
	return &cloned
}

func cloneIDs(ids []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, len(ids))
	copy(out, ids)
	return out
}

func layoutRows(pageID uuid.UUID, ids []uuid.UUID) []*PageSection {
	rows := make([]*PageSection, 0, len(ids))
	for i, id := range ids {
		rows = append(rows, &PageSection{PageID: pageID, Position: i, SectionID: id})
	}
	return rows
}
