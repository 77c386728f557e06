package pages_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-sections/internal/contracts"
	"github.com/goliatone/go-sections/internal/domain"
	"github.com/goliatone/go-sections/internal/pages"
	"github.com/goliatone/go-sections/internal/registry"
	"github.com/goliatone/go-sections/internal/sections"
	"github.com/goliatone/go-sections/pkg/testsupport"
)

func newBunDB(t *testing.T) *bun.DB {
	t.Helper()
	sqlDB := testsupport.NewSQLiteMemoryDB(t)

	db := bun.NewDB(sqlDB, sqlitedialect.New())
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sections (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			section_type TEXT NOT NULL,
			content TEXT NOT NULL,
			settings TEXT NOT NULL,
			is_global BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS pages (
			id TEXT PRIMARY KEY,
			slug TEXT NOT NULL UNIQUE,
			page_type TEXT NOT NULL,
			title TEXT NOT NULL,
			meta_title TEXT,
			meta_description TEXT,
			og_image TEXT,
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS page_sections (
			page_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			section_id TEXT NOT NULL,
			PRIMARY KEY (page_id, position)
		)`,
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	t.Cleanup(func() {
		for _, table := range []string{"page_sections", "pages", "sections"} {
			_, _ = db.ExecContext(context.Background(), `DROP TABLE IF EXISTS `+table)
		}
	})
	return db
}

func TestPagesServiceWithBunStorage(t *testing.T) {
	ctx := context.Background()
	db := newBunDB(t)

	sectionSvc := sections.NewService(sections.NewBunSectionRepository(db), registry.Default())
	pageSvc := pages.NewService(pages.NewBunPageRepository(db), sectionSvc)

	create := func(name string, kind contracts.Type) *sections.Section {
		section, err := sectionSvc.Create(ctx, sections.CreateInput{Name: name, Type: kind})
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		return section
	}
	a := create("A", contracts.TypeHero)
	b := create("B", contracts.TypeFAQAccordion)
	c := create("C", contracts.TypeTextBlock)

	page, err := pageSvc.Create(ctx, pages.CreatePageInput{
		Slug:     "summer-gala",
		Title:    "Summer Gala",
		Sections: []uuid.UUID{a.ID, b.ID, c.ID},
	})
	if err != nil {
		t.Fatalf("create page: %v", err)
	}

	bySlug, err := pageSvc.GetBySlug(ctx, "summer-gala")
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if !reflect.DeepEqual(bySlug.Sections, []uuid.UUID{a.ID, b.ID, c.ID}) {
		t.Fatalf("unexpected stored layout %v", bySlug.Sections)
	}

	next := []uuid.UUID{c.ID, a.ID}
	description := "An evening under the stars"
	saved, err := pageSvc.Update(ctx, page.ID, pages.PagePatch{Sections: &next, MetaDescription: &description})
	if err != nil {
		t.Fatalf("update page: %v", err)
	}
	if !reflect.DeepEqual(saved.Sections, next) {
		t.Fatalf("expected saved layout %v, got %v", next, saved.Sections)
	}

	loaded, err := pageSvc.Get(ctx, page.ID)
	if err != nil {
		t.Fatalf("get page: %v", err)
	}
	if !reflect.DeepEqual(loaded.Sections, next) {
		t.Fatalf("expected persisted layout %v, got %v", next, loaded.Sections)
	}
	if loaded.MetaDescription != description {
		t.Fatalf("expected metadata saved with layout, got %q", loaded.MetaDescription)
	}

	rows, err := db.NewSelect().Model((*pages.PageSection)(nil)).Where("page_id = ?", page.ID).Count(ctx)
	if err != nil {
		t.Fatalf("count layout rows: %v", err)
	}
	if rows != 2 {
		t.Fatalf("expected old layout rows removed, found %d", rows)
	}

	if err := sectionSvc.Delete(ctx, c.ID); err != nil {
		t.Fatalf("delete section: %v", err)
	}
	composition, err := pageSvc.Compose(ctx, page.ID)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if len(composition.Sections) != 1 || composition.Sections[0].ID != a.ID {
		t.Fatalf("expected only A after dangling drop, got %#v", composition.Sections)
	}

	list, err := pageSvc.List(ctx)
	if err != nil {
		t.Fatalf("list pages: %v", err)
	}
	if len(list) != 1 || !reflect.DeepEqual(list[0].Sections, next) {
		t.Fatalf("unexpected list result %#v", list)
	}

	if err := pageSvc.Delete(ctx, page.ID); err != nil {
		t.Fatalf("delete page: %v", err)
	}
	if _, err := pageSvc.Get(ctx, page.ID); !domain.IsNotFound(err) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := pageSvc.Delete(ctx, page.ID); !domain.IsNotFound(err) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}
