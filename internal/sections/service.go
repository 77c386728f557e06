// Package sections is the content block store: typed, reusable sections
// that pages reference by id.
package sections

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-sections/internal/contracts"
	"github.com/goliatone/go-sections/internal/domain"
	"github.com/goliatone/go-sections/internal/logging"
	"github.com/goliatone/go-sections/pkg/interfaces"
)

// Service manages sections.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*Section, error)
	Get(ctx context.Context, id uuid.UUID) (*Section, error)
	List(ctx context.Context, filter Filter) ([]*Section, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*Section, error)
	Update(ctx context.Context, id uuid.UUID, patch Patch) (*Section, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Duplicate(ctx context.Context, id uuid.UUID) (*Section, error)
}

// ContentRegistry supplies defaults and validation per section type.
type ContentRegistry interface {
	Known(t contracts.Type) bool
	DefaultContent(t contracts.Type) map[string]any
	DefaultSettings(t contracts.Type) map[string]any
	Validate(t contracts.Type, content map[string]any) error
	ValidateSettings(t contracts.Type, settings map[string]any) error
}

// CreateInput creates a section. Nil Content or Settings are seeded from the
// registry defaults for Type. ID is only honoured when non-nil, for seeding
// fixtures with stable identifiers.
type CreateInput struct {
	ID       uuid.UUID
	Name     string
	Type     contracts.Type
	Content  map[string]any
	Settings map[string]any
	IsGlobal bool
}

// Patch updates a section. Nil fields are left unchanged. Type is accepted
// only to be rejected: a section's type never changes.
type Patch struct {
	Name     *string
	Type     *contracts.Type
	Content  map[string]any
	Settings map[string]any
	IsGlobal *bool
}

const copySuffix = " (copy)"

var (
	ErrNameRequired    = errors.New("sections: name required")
	ErrNameTooLong     = errors.New("sections: name exceeds 200 characters")
	ErrTypeRequired    = errors.New("sections: section type required")
	ErrUnknownType     = errors.New("sections: unknown section type")
	ErrTypeImmutable   = errors.New("sections: section type cannot change")
	ErrIDRequired      = errors.New("sections: section id required")
	ErrRegistryMissing = errors.New("sections: content registry required")
)

type IDGenerator func() uuid.UUID

type ServiceOption func(*service)

func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

func WithIDGenerator(generator IDGenerator) ServiceOption {
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

type service struct {
	repo     SectionRepository
	registry ContentRegistry
	now      func() time.Time
	id       IDGenerator
	logger   interfaces.Logger
}

// NewService wires the store. The registry is required.
func NewService(repo SectionRepository, registry ContentRegistry, opts ...ServiceOption) Service {
	s := &service{
		repo:     repo,
		registry: registry,
		now:      time.Now,
		id:       uuid.New,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, input CreateInput) (*Section, error) {
	if s.registry == nil {
		return nil, ErrRegistryMissing
	}
	name, err := normalizeName(input.Name)
	if err != nil {
		return nil, err
	}
	sectionType := contracts.Type(strings.TrimSpace(string(input.Type)))
	if sectionType == "" {
		return nil, domain.Invalid("section_type", ErrTypeRequired)
	}
	if !s.registry.Known(sectionType) {
		return nil, domain.Invalid("section_type", ErrUnknownType)
	}

	content := contracts.CloneMap(input.Content)
	if content == nil {
		content = s.registry.DefaultContent(sectionType)
	}
	settings := contracts.CloneMap(input.Settings)
	if settings == nil {
		settings = s.registry.DefaultSettings(sectionType)
	}
	if err := s.validatePayload(sectionType, content, settings); err != nil {
		return nil, err
	}

	id := input.ID
	if id == uuid.Nil {
		id = s.id()
	}
	now := s.now().UTC()
	section := &Section{
		ID:        id,
		Name:      name,
		Type:      sectionType,
		Content:   content,
		Settings:  settings,
		IsGlobal:  input.IsGlobal,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, section)
	if err != nil {
		s.logger.Error("sections.store.create.failed", "section_type", sectionType, "error", err)
		return nil, err
	}
	s.logger.Debug("sections.store.create.completed", "section_id", created.ID, "section_type", sectionType)
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Section, error) {
	if id == uuid.Nil {
		return nil, domain.Invalid("id", ErrIDRequired)
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Section, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*Section, error) {
	if len(ids) == 0 {
		return []*Section{}, nil
	}
	return s.repo.ListByIDs(ctx, ids)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, patch Patch) (*Section, error) {
	if s.registry == nil {
		return nil, ErrRegistryMissing
	}
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Type != nil {
		return nil, domain.Invalid("section_type", ErrTypeImmutable)
	}

	next := cloneSection(existing)
	columns := make([]string, 0, 4)
	if patch.Name != nil {
		name, err := normalizeName(*patch.Name)
		if err != nil {
			return nil, err
		}
		next.Name = name
		columns = append(columns, ColumnName)
	}
	if patch.Content != nil {
		next.Content = contracts.CloneMap(patch.Content)
		if err := s.registry.Validate(next.Type, next.Content); err != nil {
			return nil, domain.Invalid("content", err)
		}
		columns = append(columns, ColumnContent)
	}
	if patch.Settings != nil {
		next.Settings = contracts.CloneMap(patch.Settings)
		if err := s.registry.ValidateSettings(next.Type, next.Settings); err != nil {
			return nil, domain.Invalid("settings", err)
		}
		columns = append(columns, ColumnSettings)
	}
	if patch.IsGlobal != nil {
		next.IsGlobal = *patch.IsGlobal
		columns = append(columns, ColumnIsGlobal)
	}
	if len(columns) == 0 {
		return existing, nil
	}
	next.UpdatedAt = s.now().UTC()

	updated, err := s.repo.Update(ctx, next, columns...)
	if err != nil {
		s.logger.Error("sections.store.update.failed", "section_id", id, "error", err)
		return nil, err
	}
	s.logger.Debug("sections.store.update.completed", "section_id", id)
	return updated, nil
}

// Delete removes the section only. Pages that still reference it drop the
// id when they are composed.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return domain.Invalid("id", ErrIDRequired)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Debug("sections.store.delete.completed", "section_id", id)
	return nil
}

func (s *service) Duplicate(ctx context.Context, id uuid.UUID) (*Section, error) {
	source, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	copied := &Section{
		ID:        s.id(),
		Name:      copyName(source.Name),
		Type:      source.Type,
		Content:   contracts.CloneMap(source.Content),
		Settings:  contracts.CloneMap(source.Settings),
		IsGlobal:  source.IsGlobal,
		CreatedAt: now,
		UpdatedAt: now,
	}
	created, err := s.repo.Create(ctx, copied)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("sections.store.duplicate.completed", "source_id", id, "section_id", created.ID)
	return created, nil
}

func (s *service) validatePayload(t contracts.Type, content, settings map[string]any) error {
	if err := s.registry.Validate(t, content); err != nil {
		return domain.Invalid("content", err)
	}
	if err := s.registry.ValidateSettings(t, settings); err != nil {
		return domain.Invalid("settings", err)
	}
	return nil
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.Invalid("name", ErrNameRequired)
	}
	if len([]rune(name)) > 200 {
		return "", domain.Invalid("name", ErrNameTooLong)
	}
	return name, nil
}

func copyName(name string) string {
	runes := []rune(name + copySuffix)
	if len(runes) > 200 {
		return string([]rune(name)[:200-len(copySuffix)]) + copySuffix
	}
	return string(runes)
}
