// Package builder is the page builder controller. A Workspace holds the
// working copy of one page: its metadata, its ordered sections and any
// staged section edits, and persists them on Save.
package builder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-sections/internal/contracts"
	"github.com/goliatone/go-sections/internal/dispatcher"
	"github.com/goliatone/go-sections/internal/editor"
	"github.com/goliatone/go-sections/internal/logging"
	"github.com/goliatone/go-sections/internal/pages"
	"github.com/goliatone/go-sections/internal/sections"
	"github.com/goliatone/go-sections/pkg/interfaces"
)

// SectionStore is the section store subset the builder uses.
type SectionStore interface {
	Create(ctx context.Context, input sections.CreateInput) (*sections.Section, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*sections.Section, error)
	Update(ctx context.Context, id uuid.UUID, patch sections.Patch) (*sections.Section, error)
	Duplicate(ctx context.Context, id uuid.UUID) (*sections.Section, error)
}

// PageStore is the page service subset the builder uses.
type PageStore interface {
	Get(ctx context.Context, id uuid.UUID) (*pages.Page, error)
	Update(ctx context.Context, id uuid.UUID, patch pages.PagePatch) (*pages.Page, error)
}

// EditorOpener opens editing sessions for a section.
type EditorOpener interface {
	Open(t contracts.Type, content, settings map[string]any, onChange editor.ChangeFunc) (editor.Session, dispatcher.Mode)
}

var (
	ErrAlreadyAttached = errors.New("builder: section already on page")
	ErrIndexOutOfRange = errors.New("builder: index out of range")
	ErrNoEditor        = errors.New("builder: editor dispatcher not configured")
)

type Option func(*Service)

func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSaveTimeout bounds each save round. Zero disables the bound.
func WithSaveTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		if timeout >= 0 {
			s.saveTimeout = timeout
		}
	}
}

type Service struct {
	sections    SectionStore
	pages       PageStore
	editors     EditorOpener
	logger      interfaces.Logger
	saveTimeout time.Duration
}

func NewService(sectionStore SectionStore, pageStore PageStore, editors EditorOpener, opts ...Option) *Service {
	s := &Service{
		sections: sectionStore,
		pages:    pageStore,
		editors:  editors,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load fetches the page and resolves its sections. Ids that no longer resolve
// are left out of the workspace and disappear from the page on the next save.
func (s *Service) Load(ctx context.Context, pageID uuid.UUID) (*Workspace, error) {
	page, err := s.pages.Get(ctx, pageID)
	if err != nil {
		return nil, err
	}
	resolved, err := s.sections.ListByIDs(ctx, page.Sections)
	if err != nil {
		return nil, fmt.Errorf("resolve page sections: %w", err)
	}
	if dropped := len(page.Sections) - len(resolved); dropped > 0 {
		s.logger.Debug("sections.builder.load.dangling", "page_id", pageID, "dropped", dropped)
	}

	w := &Workspace{
		svc:    s,
		pageID: page.ID,
		meta:   metadataOf(page),
		items:  append([]*sections.Section{}, resolved...),
		staged: make(map[uuid.UUID]*stagedEdit),
		phase:  PhaseLoaded,
	}
	fp, err := w.fingerprintLocked()
	if err != nil {
		return nil, err
	}
	w.persisted = fp
	s.logger.Debug("sections.builder.load.completed", "page_id", pageID, "sections", len(w.items))
	return w, nil
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.saveTimeout > 0 {
		return context.WithTimeout(ctx, s.saveTimeout)
	}
	return ctx, func() {}
}
