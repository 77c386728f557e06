package pages

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-sections/internal/domain"
)

// NewPageModelRepository builds the go-repository-bun repository for page rows.
func NewPageModelRepository(db *bun.DB) repository.Repository[*Page] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Page]{
		NewRecord: func() *Page { return &Page{} },
		GetID:     func(p *Page) uuid.UUID { return p.ID },
		SetID:     func(p *Page, id uuid.UUID) { p.ID = id },
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(p *Page) string {
			return p.Slug
		},
	})
}

// BunPageRepository reads page rows through go-repository-bun and writes
// pages and their layout rows inside a single transaction.
type BunPageRepository struct {
	db   *bun.DB
	repo repository.Repository[*Page]
}

var _ PageRepository = (*BunPageRepository)(nil)

// NewBunPageRepository returns the bun page repository. Page rows are not
// cached: layout writes bypass the generic repository inside a transaction.
func NewBunPageRepository(db *bun.DB) *BunPageRepository {
	return &BunPageRepository{db: db, repo: NewPageModelRepository(db)}
}

func (r *BunPageRepository) Create(ctx context.Context, page *Page) (*Page, error) {
	record := clonePage(page)
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
			return fmt.Errorf("insert page: %w", err)
		}
		return insertLayout(ctx, tx, record.ID, record.Sections)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *BunPageRepository) GetByID(ctx context.Context, id uuid.UUID) (*Page, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return r.withLayout(ctx, record)
}

func (r *BunPageRepository) GetBySlug(ctx context.Context, slug string) (*Page, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.slug = ?", slug)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, slug)
	}
	if len(records) == 0 {
		return nil, &domain.NotFoundError{Resource: "page", Key: slug}
	}
	return r.withLayout(ctx, records[0])
}

func (r *BunPageRepository) List(ctx context.Context) ([]*Page, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.created_at ASC, ?TableAlias.id ASC")
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "")
	}
	if len(records) == 0 {
		return []*Page{}, nil
	}

	ids := make([]uuid.UUID, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.ID)
	}
	var rows []*PageSection
	if err := r.db.NewSelect().
		Model(&rows).
		Where("?TableAlias.page_id IN (?)", bun.In(ids)).
		OrderExpr("?TableAlias.page_id ASC, ?TableAlias.position ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("select page layouts: %w", err)
	}
	layouts := make(map[uuid.UUID][]uuid.UUID, len(records))
	for _, row := range rows {
		layouts[row.PageID] = append(layouts[row.PageID], row.SectionID)
	}

	out := make([]*Page, 0, len(records))
	for _, record := range records {
		page := clonePage(record)
		page.Sections = cloneIDs(layouts[record.ID])
		out = append(out, page)
	}
	return out, nil
}

func (r *BunPageRepository) Save(ctx context.Context, page *Page) (*Page, error) {
	record := clonePage(page)
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		result, err := tx.NewUpdate().
			Model(record).
			Column("slug", "page_type", "title", "meta_title", "meta_description", "og_image", "updated_at").
			WherePK().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("update page: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("page update rows affected: %w", err)
		}
		if affected == 0 {
			return &domain.NotFoundError{Resource: "page", Key: record.ID.String()}
		}

		if _, err := tx.NewDelete().
			Model((*PageSection)(nil)).
			Where("?TableAlias.page_id = ?", record.ID).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete page layout: %w", err)
		}
		return insertLayout(ctx, tx, record.ID, record.Sections)
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

func (r *BunPageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*PageSection)(nil)).
			Where("?TableAlias.page_id = ?", id).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete page layout: %w", err)
		}

		result, err := tx.NewDelete().
			Model((*Page)(nil)).
			Where("?TableAlias.id = ?", id).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("delete page: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("page delete rows affected: %w", err)
		}
		if affected == 0 {
			return &domain.NotFoundError{Resource: "page", Key: id.String()}
		}
		return nil
	})
}

func (r *BunPageRepository) withLayout(ctx context.Context, record *Page) (*Page, error) {
	var rows []*PageSection
	if err := r.db.NewSelect().
		Model(&rows).
		Where("?TableAlias.page_id = ?", record.ID).
		OrderExpr("?TableAlias.position ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("select page layout: %w", err)
	}
	page := clonePage(record)
	page.Sections = make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		page.Sections = append(page.Sections, row.SectionID)
	}
	return page, nil
}

func insertLayout(ctx context.Context, tx bun.Tx, pageID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	rows := layoutRows(pageID, ids)
	if _, err := tx.NewInsert().Model(&rows).Exec(ctx); err != nil {
		return fmt.Errorf("insert page layout: %w", err)
	}
	return nil
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &domain.NotFoundError{Resource: "page", Key: key}
	}
	return fmt.Errorf("page repository error: %w", err)
}
