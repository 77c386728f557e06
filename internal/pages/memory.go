package pages

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-sections/internal/domain"
)

// NewMemoryPageRepository returns a map backed repository.
func NewMemoryPageRepository() PageRepository {
	return &memoryPageRepository{
		byID:   make(map[uuid.UUID]*Page),
		bySlug: make(map[string]uuid.UUID),
	}
}

type memoryPageRepository struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]*Page
	bySlug map[string]uuid.UUID
}

func (m *memoryPageRepository) Create(_ context.Context, page *Page) (*Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.bySlug[page.Slug]; taken {
		return nil, ErrSlugExists
	}
	cloned := clonePage(page)
	m.byID[cloned.ID] = cloned
	m.bySlug[cloned.Slug] = cloned.ID
	return clonePage(cloned), nil
}

func (m *memoryPageRepository) GetByID(_ context.Context, id uuid.UUID) (*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "page", Key: id.String()}
	}
	return clonePage(record), nil
}

func (m *memoryPageRepository) GetBySlug(_ context.Context, slug string) (*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.bySlug[slug]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "page", Key: slug}
	}
	return clonePage(m.byID[id]), nil
}

func (m *memoryPageRepository) List(_ context.Context) ([]*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Page, 0, len(m.byID))
	for _, record := range m.byID {
		out = append(out, clonePage(record))
	}
	slices.SortFunc(out, func(a, b *Page) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return slices.Compare(a.ID[:], b.ID[:])
	})
	return out, nil
}

func (m *memoryPageRepository) Save(_ context.Context, page *Page) (*Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.byID[page.ID]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "page", Key: page.ID.String()}
	}
	if owner, taken := m.bySlug[page.Slug]; taken && owner != page.ID {
		return nil, ErrSlugExists
	}
	delete(m.bySlug, existing.Slug)
	cloned := clonePage(page)
	cloned.CreatedAt = existing.CreatedAt
	m.byID[cloned.ID] = cloned
	m.bySlug[cloned.Slug] = cloned.ID
	return clonePage(cloned), nil
}

func (m *memoryPageRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.byID[id]
	if !ok {
		return &domain.NotFoundError{Resource: "page", Key: id.String()}
	}
	delete(m.bySlug, record.Slug)
	delete(m.byID, id)
	return nil
}
