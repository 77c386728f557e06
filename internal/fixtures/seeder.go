package fixtures

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/goliatone/go-sections/internal/domain"
	"github.com/goliatone/go-sections/internal/logging"
	"github.com/goliatone/go-sections/internal/pages"
	"github.com/goliatone/go-sections/internal/sections"
	"github.com/goliatone/go-sections/pkg/interfaces"
)

// SectionWriter is the slice of the section service used for seeding.
type SectionWriter interface {
	Get(ctx context.Context, id uuid.UUID) (*sections.Section, error)
	Create(ctx context.Context, input sections.CreateInput) (*sections.Section, error)
}

// PageWriter is the slice of the page service used for seeding.
type PageWriter interface {
	Get(ctx context.Context, id uuid.UUID) (*pages.Page, error)
	GetBySlug(ctx context.Context, slug string) (*pages.Page, error)
	Create(ctx context.Context, input pages.CreatePageInput) (*pages.Page, error)
}

// Result counts what a seed run did.
type Result struct {
	SectionsCreated int
	SectionsSkipped int
	PagesCreated    int
	PagesSkipped    int
}

// Seeder writes a fixture set. Records that already exist are left alone, so
// seeding the same set twice is a no-op.
type Seeder struct {
	sections SectionWriter
	pages    PageWriter
	logger   interfaces.Logger
}

type SeederOption func(*Seeder)

func WithLogger(logger interfaces.Logger) SeederOption {
	return func(s *Seeder) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewSeeder(sectionWriter SectionWriter, pageWriter PageWriter, opts ...SeederOption) *Seeder {
	s := &Seeder{
		sections: sectionWriter,
		pages:    pageWriter,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Seed creates every section, then every page.
func (s *Seeder) Seed(ctx context.Context, set *Set) (Result, error) {
	var result Result
	if set == nil {
		return result, nil
	}

	for _, fixture := range set.Sections {
		created, err := s.seedSection(ctx, fixture)
		if err != nil {
			return result, err
		}
		if created {
			result.SectionsCreated++
		} else {
			result.SectionsSkipped++
		}
	}

	for _, fixture := range set.Pages {
		created, err := s.seedPage(ctx, fixture)
		if err != nil {
			return result, err
		}
		if created {
			result.PagesCreated++
		} else {
			result.PagesSkipped++
		}
	}

	s.logger.Info("sections.fixtures.seed.completed",
		"sections_created", result.SectionsCreated,
		"sections_skipped", result.SectionsSkipped,
		"pages_created", result.PagesCreated,
		"pages_skipped", result.PagesSkipped,
	)
	return result, nil
}

func (s *Seeder) seedSection(ctx context.Context, fixture SectionFixture) (bool, error) {
	if _, err := s.sections.Get(ctx, fixture.ID); err == nil {
		s.logger.Debug("sections.fixtures.section.exists", "key", fixture.Key, "section_id", fixture.ID)
		return false, nil
	} else if !domain.IsNotFound(err) {
		return false, fmt.Errorf("fixtures: lookup section %s: %w", fixture.Key, err)
	}

	_, err := s.sections.Create(ctx, sections.CreateInput{
		ID:       fixture.ID,
		Name:     fixture.Name,
		Type:     fixture.Type,
		Content:  fixture.Content,
		Settings: fixture.Settings,
		IsGlobal: fixture.IsGlobal,
	})
	if err != nil {
		return false, fmt.Errorf("fixtures: create section %s (%s): %w", fixture.Key, fixture.Path, err)
	}
	return true, nil
}

func (s *Seeder) seedPage(ctx context.Context, fixture PageFixture) (bool, error) {
	if _, err := s.pages.Get(ctx, fixture.ID); err == nil {
		s.logger.Debug("sections.fixtures.page.exists", "slug", fixture.Slug, "page_id", fixture.ID)
		return false, nil
	} else if !domain.IsNotFound(err) {
		return false, fmt.Errorf("fixtures: lookup page %s: %w", fixture.Slug, err)
	}
	if _, err := s.pages.GetBySlug(ctx, fixture.Slug); err == nil {
		s.logger.Warn("sections.fixtures.page.slug_taken", "slug", fixture.Slug)
		return false, nil
	} else if !domain.IsNotFound(err) {
		return false, fmt.Errorf("fixtures: lookup page %s: %w", fixture.Slug, err)
	}

	_, err := s.pages.Create(ctx, pages.CreatePageInput{
		ID:              fixture.ID,
		Slug:            fixture.Slug,
		PageType:        fixture.PageType,
		Title:           fixture.Title,
		MetaTitle:       fixture.MetaTitle,
		MetaDescription: fixture.MetaDescription,
		OGImage:         fixture.OGImage,
		Sections:        fixture.Sections,
	})
	if err != nil {
		return false, fmt.Errorf("fixtures: create page %s (%s): %w", fixture.Slug, fixture.Path, err)
	}
	return true, nil
}
