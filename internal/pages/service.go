// Package pages implements the page composition model: pages hold an ordered
// list of section ids and are composed into renderable section lists.
package pages

import (
	"context"
	"errors"
	"strings"
	"time"

	slug "github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/goliatone/go-sections/internal/domain"
	"github.com/goliatone/go-sections/internal/logging"
	"github.com/goliatone/go-sections/internal/sections"
	"github.com/goliatone/go-sections/pkg/interfaces"
)

// Service manages pages and their layout.
type Service interface {
	Create(ctx context.Context, input CreatePageInput) (*Page, error)
	Get(ctx context.Context, id uuid.UUID) (*Page, error)
	GetBySlug(ctx context.Context, slug string) (*Page, error)
	List(ctx context.Context) ([]*Page, error)
	Update(ctx context.Context, id uuid.UUID, patch PagePatch) (*Page, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Compose(ctx context.Context, id uuid.UUID) (*Composition, error)
	ComposeBySlug(ctx context.Context, slug string) (*Composition, error)
}

// SectionReader resolves section ids for composition.
type SectionReader interface {
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*sections.Section, error)
}

type CreatePageInput struct {
	ID              uuid.UUID
	Slug            string
	PageType        string
	Title           string
	MetaTitle       string
	MetaDescription string
	OGImage         string
	Sections        []uuid.UUID
}

// PagePatch updates a page. Nil fields are left unchanged. A non-nil
// Sections replaces the whole layout; it is never merged.
type PagePatch struct {
	Slug            *string
	PageType        *string
	Title           *string
	MetaTitle       *string
	MetaDescription *string
	OGImage         *string
	Sections        *[]uuid.UUID
}

var (
	ErrSlugRequired     = errors.New("pages: slug required")
	ErrSlugExists       = errors.New("pages: slug already exists")
	ErrTitleRequired    = errors.New("pages: title required")
	ErrDuplicateSection = errors.New("pages: section listed more than once")
	ErrNilSection       = errors.New("pages: section id required")
	ErrIDRequired       = errors.New("pages: page id required")
	ErrSectionsMissing  = errors.New("pages: section reader required")
)

type ServiceOption func(*service)

func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

func WithIDGenerator(generator func() uuid.UUID) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithURLResolver(resolver URLResolver) ServiceOption {
	return func(s *service) {
		s.urls = resolver
	}
}

type service struct {
	repo     PageRepository
	sections SectionReader
	urls     URLResolver
	now      func() time.Time
	id       func() uuid.UUID
	logger   interfaces.Logger
}

func NewService(repo PageRepository, sectionReader SectionReader, opts ...ServiceOption) Service {
	s := &service{
		repo:     repo,
		sections: sectionReader,
		now:      time.Now,
		id:       uuid.New,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, input CreatePageInput) (*Page, error) {
	pageSlug, err := normalizeSlug(input.Slug)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domain.Invalid("title", ErrTitleRequired)
	}
	layout, err := checkLayout(input.Sections)
	if err != nil {
		return nil, err
	}
	if err := s.ensureSlugFree(ctx, pageSlug, uuid.Nil); err != nil {
		return nil, err
	}

	pageType := strings.TrimSpace(input.PageType)
	if pageType == "" {
		pageType = DefaultPageType
	}
	id := input.ID
	if id == uuid.Nil {
		id = s.id()
	}
	now := s.now().UTC()
	page := &Page{
		ID:              id,
		Slug:            pageSlug,
		PageType:        pageType,
		Title:           title,
		MetaTitle:       strings.TrimSpace(input.MetaTitle),
		MetaDescription: strings.TrimSpace(input.MetaDescription),
		OGImage:         strings.TrimSpace(input.OGImage),
		Sections:        layout,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	created, err := s.repo.Create(ctx, page)
	if err != nil {
		s.logger.Error("sections.pages.create.failed", "slug", pageSlug, "error", err)
		return nil, err
	}
	s.logger.Debug("sections.pages.create.completed", "page_id", created.ID, "slug", created.Slug)
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Page, error) {
	if id == uuid.Nil {
		return nil, domain.Invalid("id", ErrIDRequired)
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetBySlug(ctx context.Context, value string) (*Page, error) {
	pageSlug, err := normalizeSlug(value)
	if err != nil {
		return nil, err
	}
	return s.repo.GetBySlug(ctx, pageSlug)
}

func (s *service) List(ctx context.Context) ([]*Page, error) {
	return s.repo.List(ctx)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, patch PagePatch) (*Page, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	next := clonePage(existing)

	if patch.Slug != nil {
		pageSlug, err := normalizeSlug(*patch.Slug)
		if err != nil {
			return nil, err
		}
		if pageSlug != existing.Slug {
			if err := s.ensureSlugFree(ctx, pageSlug, id); err != nil {
				return nil, err
			}
		}
		next.Slug = pageSlug
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, domain.Invalid("title", ErrTitleRequired)
		}
		next.Title = title
	}
	if patch.PageType != nil {
		if pageType := strings.TrimSpace(*patch.PageType); pageType != "" {
			next.PageType = pageType
		}
	}
	if patch.MetaTitle != nil {
		next.MetaTitle = strings.TrimSpace(*patch.MetaTitle)
	}
	if patch.MetaDescription != nil {
		next.MetaDescription = strings.TrimSpace(*patch.MetaDescription)
	}
	if patch.OGImage != nil {
		next.OGImage = strings.TrimSpace(*patch.OGImage)
	}
	if patch.Sections != nil {
		layout, err := checkLayout(*patch.Sections)
		if err != nil {
			return nil, err
		}
		next.Sections = layout
	}
	next.UpdatedAt = s.now().UTC()

	saved, err := s.repo.Save(ctx, next)
	if err != nil {
		s.logger.Error("sections.pages.update.failed", "page_id", id, "error", err)
		return nil, err
	}
	s.logger.Debug("sections.pages.update.completed", "page_id", id, "sections", len(saved.Sections))
	return saved, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return domain.Invalid("id", ErrIDRequired)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Debug("sections.pages.delete.completed", "page_id", id)
	return nil
}

func (s *service) Compose(ctx context.Context, id uuid.UUID) (*Composition, error) {
	page, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.compose(ctx, page)
}

func (s *service) ComposeBySlug(ctx context.Context, value string) (*Composition, error) {
	page, err := s.GetBySlug(ctx, value)
	if err != nil {
		return nil, err
	}
	return s.compose(ctx, page)
}

func (s *service) compose(ctx context.Context, page *Page) (*Composition, error) {
	if s.sections == nil {
		return nil, ErrSectionsMissing
	}
	resolved, err := s.sections.ListByIDs(ctx, page.Sections)
	if err != nil {
		return nil, err
	}
	if dropped := len(page.Sections) - len(resolved); dropped > 0 {
		s.logger.Debug("sections.pages.compose.dangling", "page_id", page.ID, "dropped", dropped)
	}

	composition := &Composition{
		Page:     page,
		Sections: make([]RenderedSection, 0, len(resolved)),
	}
	for _, section := range resolved {
		composition.Sections = append(composition.Sections, RenderedSection{
			ID:       section.ID,
			Name:     section.Name,
			Type:     section.Type,
			Content:  section.Content,
			Settings: section.Settings,
		})
	}
	if s.urls != nil {
		url, err := s.urls.PageURL(page)
		if err != nil {
			s.logger.Warn("sections.pages.compose.url_failed", "page_id", page.ID, "error", err)
		} else {
			composition.URL = url
		}
	}
	return composition, nil
}

func (s *service) ensureSlugFree(ctx context.Context, pageSlug string, owner uuid.UUID) error {
	existing, err := s.repo.GetBySlug(ctx, pageSlug)
	switch {
	case err == nil:
		if existing.ID != owner {
			return domain.Invalid("slug", ErrSlugExists)
		}
		return nil
	case domain.IsNotFound(err):
		return nil
	default:
		return err
	}
}

func normalizeSlug(value string) (string, error) {
	normalized, err := slug.Normalize(strings.TrimSpace(value))
	if err != nil {
		return "", domain.Invalid("slug", err)
	}
	if normalized == "" {
		return "", domain.Invalid("slug", ErrSlugRequired)
	}
	return normalized, nil
}

// checkLayout copies ids and rejects nil or repeated entries.
func checkLayout(ids []uuid.UUID) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			return nil, domain.Invalid("sections", ErrNilSection)
		}
		if _, dup := seen[id]; dup {
			return nil, domain.Invalid("sections", ErrDuplicateSection)
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}
