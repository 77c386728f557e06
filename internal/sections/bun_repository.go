package sections

import (
	"context"
	"fmt"
	"slices"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-sections/internal/domain"
)

// NewSectionModelRepository builds the go-repository-bun repository for sections.
func NewSectionModelRepository(db *bun.DB) repository.Repository[*Section] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Section]{
		NewRecord:          func() *Section { return &Section{} },
		GetID:              func(s *Section) uuid.UUID { return s.ID },
		SetID:              func(s *Section, id uuid.UUID) { s.ID = id },
		GetIdentifier:      func() string { return "" },
		GetIdentifierValue: func(*Section) string { return "" },
	})
}

// BunSectionRepository stores sections through bun. Point reads and writes
// go through the optional cache; filtered list queries always hit the
// database.
type BunSectionRepository struct {
	repo  repository.Repository[*Section]
	query repository.Repository[*Section]
}

var _ SectionRepository = (*BunSectionRepository)(nil)

// NewBunSectionRepository creates a section repository without caching.
func NewBunSectionRepository(db *bun.DB) *BunSectionRepository {
	return NewBunSectionRepositoryWithCache(db, nil, nil)
}

// NewBunSectionRepositoryWithCache creates a section repository whose point
// lookups are cached.
func NewBunSectionRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunSectionRepository {
	base := NewSectionModelRepository(db)
	repo := base
	if cacheService != nil && serializer != nil {
		repo = repositorycache.New(base, cacheService, serializer)
	}
	return &BunSectionRepository{repo: repo, query: base}
}

func (r *BunSectionRepository) Create(ctx context.Context, section *Section) (*Section, error) {
	record, err := r.repo.Create(ctx, section)
	if err != nil {
		return nil, mapRepositoryError(err, section.ID.String())
	}
	return record, nil
}

func (r *BunSectionRepository) GetByID(ctx context.Context, id uuid.UUID) (*Section, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return record, nil
}

func (r *BunSectionRepository) List(ctx context.Context, filter Filter) ([]*Section, error) {
	records, _, err := r.query.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			if filter.IsGlobal != nil {
				q = q.Where("?TableAlias.is_global = ?", *filter.IsGlobal)
			}
			if filter.Type != "" {
				q = q.Where("?TableAlias.section_type = ?", string(filter.Type))
			}
			return q.OrderExpr("?TableAlias.created_at ASC, ?TableAlias.id ASC")
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "")
	}
	return records, nil
}

func (r *BunSectionRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*Section, error) {
	if len(ids) == 0 {
		return []*Section{}, nil
	}
	records, _, err := r.query.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.id IN (?)", bun.In(ids))
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "")
	}
	return orderByIDs(records, ids), nil
}

func (r *BunSectionRepository) Update(ctx context.Context, section *Section, columns ...string) (*Section, error) {
	written := append(slices.Clone(updateColumns(columns)), "updated_at")
	if _, err := r.repo.Update(ctx, section,
		repository.UpdateByID(section.ID.String()),
		repository.UpdateColumns(written...),
	); err != nil {
		return nil, mapRepositoryError(err, section.ID.String())
	}
	// Unwritten columns are read back from the store.
	return r.GetByID(ctx, section.ID)
}

func (r *BunSectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.Delete(ctx, &Section{ID: id}); err != nil {
		return mapRepositoryError(err, id.String())
	}
	return nil
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &domain.NotFoundError{Resource: "section", Key: key}
	}
	return fmt.Errorf("section repository error: %w", err)
}
