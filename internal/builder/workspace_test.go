package builder_test

import (
	"context"
	"errors"
	"reflect"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-sections/internal/builder"
	"github.com/goliatone/go-sections/internal/contracts"
	"github.com/goliatone/go-sections/internal/dispatcher"
	"github.com/goliatone/go-sections/internal/domain"
	"github.com/goliatone/go-sections/internal/editor"
	"github.com/goliatone/go-sections/internal/pages"
	"github.com/goliatone/go-sections/internal/registry"
	"github.com/goliatone/go-sections/internal/sections"
)

type harness struct {
	sections sections.Service
	pages    *recordingPages
	builder  *builder.Service
	page     *pages.Page
}

// recordingPages wraps the page service to count, fail or block updates.
type recordingPages struct {
	pages.Service

	mu      sync.Mutex
	updates [][]uuid.UUID
	fail    error
	gate    chan struct{}
	entered chan struct{}
}

func (r *recordingPages) Update(ctx context.Context, id uuid.UUID, patch pages.PagePatch) (*pages.Page, error) {
	r.mu.Lock()
	fail, gate, entered := r.fail, r.gate, r.entered
	r.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}
	if gate != nil {
		<-gate
	}
	if fail != nil {
		return nil, fail
	}
	r.mu.Lock()
	if patch.Sections != nil {
		r.updates = append(r.updates, slices.Clone(*patch.Sections))
	}
	r.mu.Unlock()
	return r.Service.Update(ctx, id, patch)
}

func (r *recordingPages) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.updates)
}

func newHarness(t *testing.T, sectionCount int) *harness {
	t.Helper()
	ctx := context.Background()
	reg := registry.Default()
	sectionSvc := sections.NewService(sections.NewMemorySectionRepository(), reg)
	pageSvc := &recordingPages{Service: pages.NewService(pages.NewMemoryPageRepository(), sectionSvc)}

	ids := make([]uuid.UUID, 0, sectionCount)
	for i := 0; i < sectionCount; i++ {
		section, err := sectionSvc.Create(ctx, sections.CreateInput{Name: "Block", Type: contracts.TypeTextBlock})
		if err != nil {
			t.Fatalf("create section: %v", err)
		}
		ids = append(ids, section.ID)
	}
	page, err := pageSvc.Create(ctx, pages.CreatePageInput{Slug: "home", Title: "Home", Sections: ids})
	if err != nil {
		t.Fatalf("create page: %v", err)
	}
	return &harness{
		sections: sectionSvc,
		pages:    pageSvc,
		builder:  builder.NewService(sectionSvc, pageSvc, dispatcher.New(reg)),
		page:     page,
	}
}

func (h *harness) load(t *testing.T) *builder.Workspace {
	t.Helper()
	ws, err := h.builder.Load(context.Background(), h.page.ID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return ws
}

func (h *harness) stored(t *testing.T) []uuid.UUID {
	t.Helper()
	page, err := h.pages.Get(context.Background(), h.page.ID)
	if err != nil {
		t.Fatalf("get page: %v", err)
	}
	return page.Sections
}

func TestLoadFiltersDanglingSections(t *testing.T) {
	h := newHarness(t, 3)
	if err := h.sections.Delete(context.Background(), h.page.Sections[1]); err != nil {
		t.Fatalf("delete: %v", err)
	}
	ws := h.load(t)
	want := []uuid.UUID{h.page.Sections[0], h.page.Sections[2]}
	if !reflect.DeepEqual(ws.IDs(), want) {
		t.Fatalf("expected %v, got %v", want, ws.IDs())
	}
	if ws.Status() != builder.StatusSaved || ws.Phase() != builder.PhaseLoaded {
		t.Fatalf("fresh workspace should be saved and loaded, got %s/%s", ws.Status(), ws.Phase())
	}
}

func TestMoveIsAPermutation(t *testing.T) {
	h := newHarness(t, 5)
	ws := h.load(t)
	n := ws.Len()

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			before := ws.IDs()
			if err := ws.Move(i, j); err != nil {
				t.Fatalf("move(%d,%d): %v", i, j, err)
			}
			after := ws.IDs()

			if after[j] != before[i] {
				t.Fatalf("move(%d,%d): expected moved item at %d", i, j, j)
			}
			sortedBefore, sortedAfter := sortIDs(before), sortIDs(after)
			if !reflect.DeepEqual(sortedBefore, sortedAfter) {
				t.Fatalf("move(%d,%d) is not a permutation", i, j)
			}
			rest := slices.Delete(slices.Clone(before), i, i+1)
			restAfter := slices.Delete(slices.Clone(after), j, j+1)
			if !reflect.DeepEqual(rest, restAfter) {
				t.Fatalf("move(%d,%d): other items changed relative order", i, j)
			}
		}
	}
	if err := ws.Move(0, n); !errors.Is(err, builder.ErrIndexOutOfRange) {
		t.Fatalf("expected index error, got %v", err)
	}
}

func sortIDs(ids []uuid.UUID) []uuid.UUID {
	out := slices.Clone(ids)
	slices.SortFunc(out, func(a, b uuid.UUID) int { return slices.Compare(a[:], b[:]) })
	return out
}

func TestRemoveDetachesWithoutDeleting(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, 3)
	ws := h.load(t)
	removed := ws.IDs()[1]

	if err := ws.RemoveAt(1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if ws.Status() != builder.StatusUnsaved {
		t.Fatalf("expected unsaved after remove")
	}
	if err := ws.Save(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}
	if slices.Contains(h.stored(t), removed) {
		t.Fatalf("removed id still on page")
	}
	if _, err := h.sections.Get(ctx, removed); err != nil {
		t.Fatalf("removed section should still exist: %v", err)
	}
}

func TestAddExistingRejectsAttachedAndUnknown(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, 2)
	ws := h.load(t)

	err := ws.AddExisting(ctx, ws.IDs()[0])
	if !errors.Is(err, builder.ErrAlreadyAttached) || !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected already attached, got %v", err)
	}
	if err := ws.AddExisting(ctx, uuid.New()); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}

	saved, err := h.sections.Create(ctx, sections.CreateInput{Name: "Footer CTA", Type: contracts.TypeCTABanner, IsGlobal: true})
	if err != nil {
		t.Fatalf("create saved block: %v", err)
	}
	local, err := h.sections.Create(ctx, sections.CreateInput{Name: "Local", Type: contracts.TypeHero})
	if err != nil {
		t.Fatalf("create local block: %v", err)
	}
	if err := ws.AddExisting(ctx, local.ID, saved.ID); err != nil {
		t.Fatalf("attach: %v", err)
	}
	ids := ws.IDs()
	if ids[2] != local.ID || ids[3] != saved.ID {
		t.Fatalf("expected attach order preserved, got %v", ids)
	}
	if err := ws.AddExisting(ctx, uuid.Nil, uuid.Nil); !errors.Is(err, builder.ErrAlreadyAttached) {
		t.Fatalf("expected repeated ids rejected, got %v", err)
	}
}

func TestAddNewUsesRegistryDefaults(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, 0)
	ws := h.load(t)

	created, err := ws.AddNew(ctx, contracts.TypeFAQAccordion, "FAQ", false)
	if err != nil {
		t.Fatalf("add new: %v", err)
	}
	if !reflect.DeepEqual(created.Content, registry.Default().DefaultContent(contracts.TypeFAQAccordion)) {
		t.Fatalf("expected default content, got %#v", created.Content)
	}
	if ws.Phase() != builder.PhaseEditing {
		t.Fatalf("expected editing phase, got %s", ws.Phase())
	}
	if _, err := ws.AddNew(ctx, "unknown_block", "Nope", false); !errors.Is(err, sections.ErrUnknownType) {
		t.Fatalf("expected unknown type error, got %v", err)
	}
}

func TestDuplicateInsertsCopyAfterSource(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, 3)
	ws := h.load(t)
	source := ws.Sections()[1]

	copied, err := ws.DuplicateAt(ctx, 1)
	if err != nil {
		t.Fatalf("duplicate: %v", err)
	}
	if copied.ID == source.ID {
		t.Fatalf("expected a new identity")
	}
	if !reflect.DeepEqual(copied.Content, source.Content) || !reflect.DeepEqual(copied.Settings, source.Settings) {
		t.Fatalf("expected identical payloads")
	}
	ids := ws.IDs()
	if len(ids) != 4 || ids[1] != source.ID || ids[2] != copied.ID {
		t.Fatalf("expected copy right after source, got %v", ids)
	}
}

func TestEditStagesChangesUntilSave(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, 0)
	ws := h.load(t)
	faq, err := ws.AddNew(ctx, contracts.TypeFAQAccordion, "FAQ", true)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := ws.Save(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}
	if ws.Status() != builder.StatusSaved || ws.Phase() != builder.PhasePersisted {
		t.Fatalf("expected saved/persisted, got %s/%s", ws.Status(), ws.Phase())
	}

	session, mode, err := ws.Edit(0)
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if mode != dispatcher.ModeVisual {
		t.Fatalf("expected visual editor for faq, got %s", mode)
	}
	if err := session.Apply(editor.SetField{Field: "heading", Value: "Questions?"}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if ws.Status() != builder.StatusUnsaved {
		t.Fatalf("edit should mark workspace dirty")
	}
	stored, err := h.sections.Get(ctx, faq.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Content["heading"] == "Questions?" {
		t.Fatalf("editor must not write to the store")
	}

	if err := ws.Save(ctx); err != nil {
		t.Fatalf("save edit: %v", err)
	}
	stored, err = h.sections.Get(ctx, faq.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Content["heading"] != "Questions?" {
		t.Fatalf("expected staged edit persisted, got %v", stored.Content["heading"])
	}
	if ws.Status() != builder.StatusSaved {
		t.Fatalf("expected saved after edit save")
	}
}

func TestEditingBackToPersistedStateIsClean(t *testing.T) {
	h := newHarness(t, 1)
	ws := h.load(t)
	title := "Home"

	changed := "Landing"
	ws.SetMetadata(builder.MetadataPatch{Title: &changed})
	if !ws.Dirty() {
		t.Fatalf("expected dirty after title change")
	}
	ws.SetMetadata(builder.MetadataPatch{Title: &title})
	if ws.Dirty() {
		t.Fatalf("restoring the title should match the persisted fingerprint")
	}
}

func TestSaveFailureKeepsWorkspaceDirty(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, 3)
	ws := h.load(t)
	if err := ws.Move(0, 2); err != nil {
		t.Fatalf("move: %v", err)
	}
	working := ws.IDs()

	boom := errors.New("store unavailable")
	h.pages.fail = boom
	if err := ws.Save(ctx); !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
	if ws.Status() != builder.StatusUnsaved {
		t.Fatalf("expected workspace to stay unsaved, got %s", ws.Status())
	}
	if !reflect.DeepEqual(ws.IDs(), working) {
		t.Fatalf("working state should be untouched by a failed save")
	}
	if reflect.DeepEqual(h.stored(t), working) {
		t.Fatalf("nothing should have been persisted")
	}

	h.pages.fail = nil
	if err := ws.Save(ctx); err != nil {
		t.Fatalf("retry save: %v", err)
	}
	if !reflect.DeepEqual(h.stored(t), working) || ws.Status() != builder.StatusSaved {
		t.Fatalf("retry should persist the working order")
	}
}

func TestSaveReplacesOrderedList(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, 3)
	ws := h.load(t)
	a, c := ws.IDs()[0], ws.IDs()[2]

	if err := ws.RemoveAt(1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := ws.Move(1, 0); err != nil {
		t.Fatalf("move: %v", err)
	}
	if err := ws.Save(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := h.stored(t); !reflect.DeepEqual(got, []uuid.UUID{c, a}) {
		t.Fatalf("expected [C A], got %v", got)
	}
}

func TestConcurrentSavesAreCoalesced(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, 3)
	ws := h.load(t)

	gate := make(chan struct{})
	entered := make(chan struct{}, 4)
	h.pages.mu.Lock()
	h.pages.gate, h.pages.entered = gate, entered
	h.pages.mu.Unlock()

	if err := ws.Move(0, 2); err != nil {
		t.Fatalf("move: %v", err)
	}
	first := make(chan error, 1)
	go func() { first <- ws.Save(ctx) }()
	select {
	case <-entered:
	case <-time.After(time.Second):
		t.Fatalf("first save never reached the store")
	}
	if ws.Status() != builder.StatusSaving {
		t.Fatalf("expected saving status, got %s", ws.Status())
	}

	if err := ws.RemoveAt(0); err != nil {
		t.Fatalf("remove during save: %v", err)
	}
	latest := ws.IDs()

	var wg sync.WaitGroup
	followers := make(chan error, 3)
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			followers <- ws.Save(ctx)
		}()
	}
	// Give the followers time to queue behind the in-flight save.
	time.Sleep(50 * time.Millisecond)
	close(gate)

	if err := <-first; err != nil {
		t.Fatalf("first save: %v", err)
	}
	wg.Wait()
	close(followers)
	for err := range followers {
		if err != nil {
			t.Fatalf("follower save: %v", err)
		}
	}

	if calls := h.pages.calls(); calls != 2 {
		t.Fatalf("expected one in-flight save plus one coalesced save, got %d", calls)
	}
	if got := h.stored(t); !reflect.DeepEqual(got, latest) {
		t.Fatalf("expected latest state persisted %v, got %v", latest, got)
	}
	if ws.Status() != builder.StatusSaved {
		t.Fatalf("expected saved, got %s", ws.Status())
	}
}

func TestSharedSectionEditReflectsOnBothPages(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, 0)
	shared, err := h.sections.Create(ctx, sections.CreateInput{Name: "Testimonials", Type: contracts.TypeTestimonialsCarousel, IsGlobal: true})
	if err != nil {
		t.Fatalf("create shared: %v", err)
	}
	other, err := h.pages.Create(ctx, pages.CreatePageInput{Slug: "venues", Title: "Venues", Sections: []uuid.UUID{shared.ID}})
	if err != nil {
		t.Fatalf("create other page: %v", err)
	}

	ws := h.load(t)
	if err := ws.AddExisting(ctx, shared.ID); err != nil {
		t.Fatalf("attach shared: %v", err)
	}
	session, _, err := ws.Edit(0)
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if err := session.Apply(editor.SetField{Field: "heading", Value: "Kind words"}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if err := ws.Save(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}

	for _, id := range []uuid.UUID{h.page.ID, other.ID} {
		composition, err := h.pages.Compose(ctx, id)
		if err != nil {
			t.Fatalf("compose: %v", err)
		}
		if composition.Sections[0].Content["heading"] != "Kind words" {
			t.Fatalf("page %s did not reflect shared edit", composition.Page.Slug)
		}
	}
}

func TestSaveSendsOnlyChangedSectionParts(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, 1)
	ws := h.load(t)
	shared := ws.IDs()[0]

	session, _, err := ws.Edit(0)
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if err := session.Apply(editor.SetSetting{Key: "background", Value: "primary"}); err != nil {
		t.Fatalf("set setting: %v", err)
	}

	// Another editor rewrites the content while this workspace is open.
	if _, err := h.sections.Update(ctx, shared, sections.Patch{Content: map[string]any{"body": "From the other editor"}}); err != nil {
		t.Fatalf("concurrent content update: %v", err)
	}

	if err := ws.Save(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}
	stored, err := h.sections.Get(ctx, shared)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Content["body"] != "From the other editor" {
		t.Fatalf("settings-only save overwrote content: %#v", stored.Content)
	}
	if stored.Settings["background"] != "primary" {
		t.Fatalf("expected staged setting persisted, got %#v", stored.Settings)
	}
}

func TestFollowUpSaveSurvivesFirstCallerCancellation(t *testing.T) {
	h := newHarness(t, 2)
	ws := h.load(t)

	gate := make(chan struct{})
	entered := make(chan struct{}, 4)
	h.pages.mu.Lock()
	h.pages.gate, h.pages.entered = gate, entered
	h.pages.mu.Unlock()

	if err := ws.Move(0, 1); err != nil {
		t.Fatalf("move: %v", err)
	}
	firstCtx, cancelFirst := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() { first <- ws.Save(firstCtx) }()
	select {
	case <-entered:
	case <-time.After(time.Second):
		t.Fatalf("first save never reached the store")
	}

	if err := ws.RemoveAt(0); err != nil {
		t.Fatalf("remove during save: %v", err)
	}
	latest := ws.IDs()
	second := make(chan error, 1)
	go func() { second <- ws.Save(context.Background()) }()
	time.Sleep(50 * time.Millisecond)

	cancelFirst()
	close(gate)
	<-first

	select {
	case err := <-second:
		if err != nil {
			t.Fatalf("queued save failed with a live context: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("queued save never completed")
	}
	if got := h.stored(t); !reflect.DeepEqual(got, latest) {
		t.Fatalf("expected latest layout %v persisted, got %v", latest, got)
	}
	if ws.Status() != builder.StatusSaved {
		t.Fatalf("expected saved, got %s", ws.Status())
	}
}

func TestSaveAdoptsNormalizedMetadata(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, 0)
	ws := h.load(t)

	slug := "Summer Gala"
	ws.SetMetadata(builder.MetadataPatch{Slug: &slug})
	if err := ws.Save(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := ws.Metadata().Slug; got != "summer-gala" {
		t.Fatalf("expected stored slug in workspace, got %q", got)
	}
	if ws.Status() != builder.StatusSaved || ws.Dirty() {
		t.Fatalf("expected clean workspace after save, got %s", ws.Status())
	}
	if _, err := h.pages.GetBySlug(ctx, "summer-gala"); err != nil {
		t.Fatalf("get by normalized slug: %v", err)
	}
}
