package pages

import (
	"context"

	"github.com/google/uuid"
)

// PageRepository persists pages together with their layout.
type PageRepository interface {
	Create(ctx context.Context, page *Page) (*Page, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Page, error)
	GetBySlug(ctx context.Context, slug string) (*Page, error)
	List(ctx context.Context) ([]*Page, error)
	// Save writes the metadata columns and replaces the full layout in one
	// atomic step.
	Save(ctx context.Context, page *Page) (*Page, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
