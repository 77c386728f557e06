package sections

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-sections/internal/contracts"
	"github.com/goliatone/go-sections/internal/domain"
)

// NewMemorySectionRepository returns a map backed repository.
func NewMemorySectionRepository() SectionRepository {
	return &memorySectionRepository{byID: make(map[uuid.UUID]*Section)}
}

type memorySectionRepository struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*Section
}

func (m *memorySectionRepository) Create(_ context.Context, section *Section) (*Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneSection(section)
	m.byID[cloned.ID] = cloned
	return cloneSection(cloned), nil
}

func (m *memorySectionRepository) GetByID(_ context.Context, id uuid.UUID) (*Section, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "section", Key: id.String()}
	}
	return cloneSection(record), nil
}

func (m *memorySectionRepository) List(_ context.Context, filter Filter) ([]*Section, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Section, 0, len(m.byID))
	for _, record := range m.byID {
		if filter.matches(record) {
			out = append(out, cloneSection(record))
		}
	}
	slices.SortFunc(out, func(a, b *Section) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return slices.Compare(a.ID[:], b.ID[:])
	})
	return out, nil
}

func (m *memorySectionRepository) ListByIDs(_ context.Context, ids []uuid.UUID) ([]*Section, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Section, 0, len(ids))
	for _, id := range ids {
		if record, ok := m.byID[id]; ok {
			records = append(records, cloneSection(record))
		}
	}
	return orderByIDs(records, ids), nil
}

func (m *memorySectionRepository) Update(_ context.Context, section *Section, columns ...string) (*Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.byID[section.ID]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "section", Key: section.ID.String()}
	}
	merged := cloneSection(stored)
	for _, column := range updateColumns(columns) {
		switch column {
		case ColumnName:
			merged.Name = section.Name
		case ColumnContent:
			merged.Content = contracts.CloneMap(section.Content)
		case ColumnSettings:
			merged.Settings = contracts.CloneMap(section.Settings)
		case ColumnIsGlobal:
			merged.IsGlobal = section.IsGlobal
		}
	}
	merged.UpdatedAt = section.UpdatedAt
	m.byID[merged.ID] = merged
	return cloneSection(merged), nil
}

func (m *memorySectionRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[id]; !ok {
		return &domain.NotFoundError{Resource: "section", Key: id.String()}
	}
	delete(m.byID, id)
	return nil
}
