package sections

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-sections/internal/contracts"
)

// Section is a typed, reusable content block. Pages reference sections by
// id; a section may appear on any number of pages.
type Section struct {
	bun.BaseModel `bun:"table:sections,alias:s"`

	ID        uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	Name      string         `bun:"name,notnull" json:"name"`
	Type      contracts.Type `bun:"section_type,notnull" json:"section_type"`
	Content   map[string]any `bun:"content,type:jsonb,notnull" json:"content"`
	Settings  map[string]any `bun:"settings,type:jsonb,notnull" json:"settings"`
	IsGlobal  bool           `bun:"is_global,notnull,default:false" json:"is_global"`
	CreatedAt time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Filter narrows List. Zero values match everything.
type Filter struct {
	IsGlobal *bool
	Type     contracts.Type
}

func (f Filter) matches(section *Section) bool {
	if f.IsGlobal != nil && section.IsGlobal != *f.IsGlobal {
		return false
	}
	if f.Type != "" && section.Type != f.Type {
		return false
	}
	return true
}

func cloneSection(src *Section) *Section {
	if src == nil {
		return nil
	}
	cloned := *src
	cloned.Content = contracts.CloneMap(src.Content)
	cloned.Settings = contracts.CloneMap(src.Settings)
	return &cloned
}
