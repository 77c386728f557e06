package sections_test

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-sections/internal/contracts"
	"github.com/goliatone/go-sections/internal/domain"
	"github.com/goliatone/go-sections/internal/registry"
	"github.com/goliatone/go-sections/internal/sections"
)

func newService(t *testing.T) sections.Service {
	t.Helper()
	tick := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}
	return sections.NewService(sections.NewMemorySectionRepository(), registry.Default(), sections.WithClock(clock))
}

func TestCreateSeedsRegistryDefaults(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	section, err := svc.Create(ctx, sections.CreateInput{Name: "  FAQ  ", Type: contracts.TypeFAQAccordion})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if section.ID == uuid.Nil {
		t.Fatalf("expected id to be assigned")
	}
	if section.Name != "FAQ" {
		t.Fatalf("expected trimmed name, got %q", section.Name)
	}
	want := registry.Default().DefaultContent(contracts.TypeFAQAccordion)
	if !reflect.DeepEqual(section.Content, want) {
		t.Fatalf("expected default content, got %#v", section.Content)
	}
	if section.Settings["padding"] != "normal" {
		t.Fatalf("expected default settings, got %#v", section.Settings)
	}
}

func TestCreateRequiresNameAndType(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	_, err := svc.Create(ctx, sections.CreateInput{Name: " ", Type: contracts.TypeHero})
	if !errors.Is(err, domain.ErrValidation) || !errors.Is(err, sections.ErrNameRequired) {
		t.Fatalf("expected name validation error, got %v", err)
	}
	_, err = svc.Create(ctx, sections.CreateInput{Name: "Hero"})
	if !errors.Is(err, sections.ErrTypeRequired) {
		t.Fatalf("expected type validation error, got %v", err)
	}
	_, err = svc.Create(ctx, sections.CreateInput{Name: "Hero", Type: "herro"})
	if !errors.Is(err, sections.ErrUnknownType) {
		t.Fatalf("expected unknown type error, got %v", err)
	}
}

func TestCreateRejectsInvalidContent(t *testing.T) {
	svc := newService(t)
	_, err := svc.Create(context.Background(), sections.CreateInput{
		Name:    "Broken",
		Type:    contracts.TypeTextBlock,
		Content: map[string]any{"heading": "No body"},
	})
	if !errors.Is(err, domain.ErrValidation) || !errors.Is(err, registry.ErrInvalidContent) {
		t.Fatalf("expected content validation error, got %v", err)
	}
	if len(domain.IssuesOf(err)) == 0 {
		t.Fatalf("expected located issues")
	}
}

func TestUpdateAppliesPatch(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	created, err := svc.Create(ctx, sections.CreateInput{Name: "Text", Type: contracts.TypeTextBlock})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	name := "Intro"
	global := true
	updated, err := svc.Update(ctx, created.ID, sections.Patch{
		Name:     &name,
		Content:  map[string]any{"body": "Welcome!"},
		IsGlobal: &global,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Intro" || !updated.IsGlobal || updated.Content["body"] != "Welcome!" {
		t.Fatalf("unexpected update result %#v", updated)
	}
	if !reflect.DeepEqual(updated.Settings, created.Settings) {
		t.Fatalf("expected settings untouched")
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Fatalf("expected updated_at to advance")
	}
}

func TestUpdateRejectsTypeChange(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	created, err := svc.Create(ctx, sections.CreateInput{Name: "Hero", Type: contracts.TypeHero})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	other := contracts.TypeGallery
	_, err = svc.Update(ctx, created.ID, sections.Patch{Type: &other})
	if !errors.Is(err, sections.ErrTypeImmutable) || !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrTypeImmutable, got %v", err)
	}
}

func TestUpdateValidatesContent(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	created, err := svc.Create(ctx, sections.CreateInput{Name: "Hero", Type: contracts.TypeHero})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err = svc.Update(ctx, created.ID, sections.Patch{Content: map[string]any{"heading": "only"}})
	if !errors.Is(err, registry.ErrInvalidContent) {
		t.Fatalf("expected invalid content, got %v", err)
	}
	stored, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !reflect.DeepEqual(stored.Content, created.Content) {
		t.Fatalf("expected stored content untouched")
	}
}

func TestGetAndDeleteMissing(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	missing := uuid.New()

	if _, err := svc.Get(ctx, missing); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := svc.Delete(ctx, missing); !domain.IsNotFound(err) {
		t.Fatalf("expected not found on delete, got %v", err)
	}
}

func TestListFiltersAndOrdersByCreation(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	first, _ := svc.Create(ctx, sections.CreateInput{Name: "A", Type: contracts.TypeHero, IsGlobal: true})
	second, _ := svc.Create(ctx, sections.CreateInput{Name: "B", Type: contracts.TypeTextBlock})
	third, _ := svc.Create(ctx, sections.CreateInput{Name: "C", Type: contracts.TypeHero, IsGlobal: true})

	all, err := svc.List(ctx, sections.Filter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 || all[0].ID != first.ID || all[1].ID != second.ID || all[2].ID != third.ID {
		t.Fatalf("unexpected order %v", names(all))
	}

	global := true
	globals, _ := svc.List(ctx, sections.Filter{IsGlobal: &global})
	if len(globals) != 2 {
		t.Fatalf("expected two global sections, got %v", names(globals))
	}
	texts, _ := svc.List(ctx, sections.Filter{Type: contracts.TypeTextBlock})
	if len(texts) != 1 || texts[0].ID != second.ID {
		t.Fatalf("expected text filter, got %v", names(texts))
	}
}

func TestListByIDsKeepsRequestedOrderAndSkipsMissing(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	a, _ := svc.Create(ctx, sections.CreateInput{Name: "A", Type: contracts.TypeHero})
	b, _ := svc.Create(ctx, sections.CreateInput{Name: "B", Type: contracts.TypeHero})

	got, err := svc.ListByIDs(ctx, []uuid.UUID{b.ID, uuid.New(), a.ID})
	if err != nil {
		t.Fatalf("list by ids: %v", err)
	}
	if len(got) != 2 || got[0].ID != b.ID || got[1].ID != a.ID {
		t.Fatalf("unexpected result %v", names(got))
	}
}

func TestDuplicateCopiesPayloadWithNewIdentity(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	source, err := svc.Create(ctx, sections.CreateInput{Name: "Team", Type: contracts.TypeAboutTeam, IsGlobal: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	copied, err := svc.Duplicate(ctx, source.ID)
	if err != nil {
		t.Fatalf("duplicate: %v", err)
	}
	if copied.ID == source.ID {
		t.Fatalf("expected a new id")
	}
	if copied.Name != "Team (copy)" || copied.Type != source.Type || !copied.IsGlobal {
		t.Fatalf("unexpected copy %#v", copied)
	}
	if !reflect.DeepEqual(copied.Content, source.Content) || !reflect.DeepEqual(copied.Settings, source.Settings) {
		t.Fatalf("expected identical payloads")
	}

	heading := "Changed"
	if _, err := svc.Update(ctx, copied.ID, sections.Patch{Name: &heading}); err != nil {
		t.Fatalf("update copy: %v", err)
	}
	reloaded, _ := svc.Get(ctx, source.ID)
	if reloaded.Name != "Team" {
		t.Fatalf("expected source untouched, got %q", reloaded.Name)
	}
}

func TestCreateHonoursExplicitID(t *testing.T) {
	id := uuid.MustParse("2b1c7d00-0000-4000-8000-000000000001")
	section, err := newService(t).Create(context.Background(), sections.CreateInput{ID: id, Name: "Fixture", Type: contracts.TypeHero})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if section.ID != id {
		t.Fatalf("expected explicit id, got %s", section.ID)
	}
}

func names(records []*sections.Section) []string {
	out := make([]string, 0, len(records))
	for _, record := range records {
		out = append(out, record.Name)
	}
	return out
}

// barrierRepository holds every armed GetByID until all armed readers have
// arrived, so concurrent updates read the same record before any writes.
type barrierRepository struct {
	sections.SectionRepository
	readers sync.WaitGroup
	armed   atomic.Bool
}

func (b *barrierRepository) GetByID(ctx context.Context, id uuid.UUID) (*sections.Section, error) {
	record, err := b.SectionRepository.GetByID(ctx, id)
	if b.armed.Load() {
		b.readers.Done()
		b.readers.Wait()
	}
	return record, err
}

func TestConcurrentUpdatesKeepDisjointFields(t *testing.T) {
	ctx := context.Background()
	repo := &barrierRepository{SectionRepository: sections.NewMemorySectionRepository()}
	svc := sections.NewService(repo, registry.Default())

	section, err := svc.Create(ctx, sections.CreateInput{Name: "Intro", Type: contracts.TypeTextBlock})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	repo.readers.Add(2)
	repo.armed.Store(true)

	rename := "Shared intro"
	errs := make(chan error, 2)
	go func() {
		_, err := svc.Update(ctx, section.ID, sections.Patch{Name: &rename})
		errs <- err
	}()
	go func() {
		_, err := svc.Update(ctx, section.ID, sections.Patch{Content: map[string]any{"body": "New body"}})
		errs <- err
	}()
	for i := 0; i < 2; i++ {
		if err := <-errs; err != nil {
			t.Fatalf("update: %v", err)
		}
	}
	repo.armed.Store(false)

	stored, err := svc.Get(ctx, section.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Name != rename {
		t.Fatalf("expected rename to survive the content update, got %q", stored.Name)
	}
	if stored.Content["body"] != "New body" {
		t.Fatalf("expected content update to survive the rename, got %#v", stored.Content)
	}
}

func TestSettingsPatchIgnoresStoredContent(t *testing.T) {
	ctx := context.Background()
	repo := sections.NewMemorySectionRepository()
	svc := sections.NewService(repo, registry.Default())

	section, err := svc.Create(ctx, sections.CreateInput{Name: "Legacy", Type: contracts.TypeTextBlock})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	legacy := *section
	legacy.Content = map[string]any{"body": ""}
	if _, err := repo.Update(ctx, &legacy, sections.ColumnContent); err != nil {
		t.Fatalf("seed legacy content: %v", err)
	}

	updated, err := svc.Update(ctx, section.ID, sections.Patch{Settings: map[string]any{"background": "primary", "padding": "normal"}})
	if err != nil {
		t.Fatalf("settings-only patch: %v", err)
	}
	if updated.Settings["background"] != "primary" {
		t.Fatalf("expected settings applied, got %#v", updated.Settings)
	}

	_, err = svc.Update(ctx, section.ID, sections.Patch{Content: map[string]any{"body": ""}})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected patched content to be validated, got %v", err)
	}
}
