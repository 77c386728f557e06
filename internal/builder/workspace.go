package builder

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-sections/internal/contracts"
	"github.com/goliatone/go-sections/internal/dispatcher"
	"github.com/goliatone/go-sections/internal/domain"
	"github.com/goliatone/go-sections/internal/editor"
	"github.com/goliatone/go-sections/internal/pages"
	"github.com/goliatone/go-sections/internal/sections"
)

// Status drives the saved indicator.
type Status string

const (
	StatusSaved   Status = "saved"
	StatusUnsaved Status = "unsaved"
	StatusSaving  Status = "saving"
)

// Phase is the workspace lifecycle position.
type Phase string

const (
	PhaseLoaded    Phase = "loaded"
	PhaseEditing   Phase = "editing"
	PhasePersisted Phase = "persisted"
)

// Metadata holds the page scalars edited alongside the layout.
type Metadata struct {
	Slug            string `json:"slug"`
	PageType        string `json:"page_type"`
	Title           string `json:"title"`
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
	OGImage         string `json:"og_image"`
}

type MetadataPatch struct {
	Slug            *string
	PageType        *string
	Title           *string
	MetaTitle       *string
	MetaDescription *string
	OGImage         *string
}

type stagedEdit struct {
	content      map[string]any
	settings     map[string]any
	baseContent  map[string]any
	baseSettings map[string]any
	rev          uint64
}

type saveRound struct {
	done chan struct{}
	err  error
}

// Workspace is the working copy of one page. It is safe for concurrent use.
// Abandoning a workspace discards whatever was not saved.
type Workspace struct {
	svc    *Service
	pageID uuid.UUID

	mu        sync.Mutex
	meta      Metadata
	items     []*sections.Section
	staged    map[uuid.UUID]*stagedEdit
	rev       uint64
	persisted uint64
	phase     Phase
	inflight  *saveRound
	pending   *saveRound
}

func (w *Workspace) PageID() uuid.UUID { return w.pageID }

func (w *Workspace) Metadata() Metadata {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.meta
}

// Sections returns copies of the working sections in page order, staged
// edits included.
func (w *Workspace) Sections() []*sections.Section {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]*sections.Section, 0, len(w.items))
	for _, item := range w.items {
		out = append(out, copySection(item))
	}
	return out
}

func (w *Workspace) IDs() []uuid.UUID {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.idsLocked()
}

func (w *Workspace) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.items)
}

func (w *Workspace) Phase() Phase {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.phase
}

// Status reports saving while a save is in flight, otherwise whether the
// working state differs from the last persisted one.
func (w *Workspace) Status() Status {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.inflight != nil {
		return StatusSaving
	}
	if w.dirtyLocked() {
		return StatusUnsaved
	}
	return StatusSaved
}

func (w *Workspace) Dirty() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dirtyLocked()
}

// AddNew creates a section seeded with the registry defaults and appends it.
func (w *Workspace) AddNew(ctx context.Context, sectionType contracts.Type, name string, isGlobal bool) (*sections.Section, error) {
	created, err := w.svc.sections.Create(ctx, sections.CreateInput{
		Name:     name,
		Type:     sectionType,
		IsGlobal: isGlobal,
	})
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.items = append(w.items, created)
	w.touchLocked()
	return copySection(created), nil
}

// AddExisting attaches stored sections in the order given. The global flag is
// not consulted.
func (w *Workspace) AddExisting(ctx context.Context, ids ...uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	if err := w.checkAttachable(ids); err != nil {
		return err
	}
	found, err := w.svc.sections.ListByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(found) != len(ids) {
		return &domain.NotFoundError{Resource: "section", Key: firstMissing(ids, found).String()}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	// Re-check: the layout may have changed while the store was queried.
	if err := w.attachableLocked(ids); err != nil {
		return err
	}
	w.items = append(w.items, found...)
	w.touchLocked()
	return nil
}

// RemoveAt detaches the section at i. The section itself is kept.
func (w *Workspace) RemoveAt(i int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.checkIndexLocked(i); err != nil {
		return err
	}
	removed := w.items[i]
	w.items = slices.Delete(w.items, i, i+1)
	delete(w.staged, removed.ID)
	w.touchLocked()
	return nil
}

// Move removes the section at i and inserts it at j.
func (w *Workspace) Move(i, j int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.checkIndexLocked(i); err != nil {
		return err
	}
	if err := w.checkIndexLocked(j); err != nil {
		return err
	}
	w.items = splice(w.items, i, j)
	w.touchLocked()
	return nil
}

// DuplicateAt stores a copy of the section at i and inserts it right after
// the source. Staged edits of the source carry over to the copy.
func (w *Workspace) DuplicateAt(ctx context.Context, i int) (*sections.Section, error) {
	w.mu.Lock()
	if err := w.checkIndexLocked(i); err != nil {
		w.mu.Unlock()
		return nil, err
	}
	source := w.items[i].ID
	w.mu.Unlock()

	copied, err := w.svc.sections.Duplicate(ctx, source)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	at := slices.IndexFunc(w.items, func(s *sections.Section) bool { return s.ID == source })
	if at < 0 {
		at = len(w.items) - 1
	}
	if edit, ok := w.staged[source]; ok {
		w.stageLocked(copied, edit.content, edit.settings)
		copied.Content = contracts.CloneMap(edit.content)
		copied.Settings = contracts.CloneMap(edit.settings)
	}
	w.items = slices.Insert(w.items, at+1, copied)
	w.touchLocked()
	return copySection(copied), nil
}

func (w *Workspace) SetMetadata(patch MetadataPatch) {
	w.mu.Lock()
	defer w.mu.Unlock()
	assign := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	assign(&w.meta.Slug, patch.Slug)
	assign(&w.meta.PageType, patch.PageType)
	assign(&w.meta.Title, patch.Title)
	assign(&w.meta.MetaTitle, patch.MetaTitle)
	assign(&w.meta.MetaDescription, patch.MetaDescription)
	assign(&w.meta.OGImage, patch.OGImage)
	w.touchLocked()
}

// Edit opens an editor for the section at i. Changes emitted by the session
// are staged on the workspace and written on the next Save.
func (w *Workspace) Edit(i int) (editor.Session, dispatcher.Mode, error) {
	if w.svc.editors == nil {
		return nil, "", ErrNoEditor
	}
	w.mu.Lock()
	if err := w.checkIndexLocked(i); err != nil {
		w.mu.Unlock()
		return nil, "", err
	}
	target := copySection(w.items[i])
	w.mu.Unlock()

	session, mode := w.svc.editors.Open(target.Type, target.Content, target.Settings, func(content, settings map[string]any) {
		w.stage(target.ID, content, settings)
	})
	return session, mode, nil
}

func (w *Workspace) stage(id uuid.UUID, content, settings map[string]any) {
	w.mu.Lock()
	defer w.mu.Unlock()
	at := slices.IndexFunc(w.items, func(s *sections.Section) bool { return s.ID == id })
	if at < 0 {
		return
	}
	w.stageLocked(w.items[at], content, settings)
	updated := copySection(w.items[at])
	updated.Content = contracts.CloneMap(content)
	updated.Settings = contracts.CloneMap(settings)
	w.items[at] = updated
	w.touchLocked()
}

// stageLocked records an edit of stored. The first edit since the last save
// keeps stored's payload as the base the edit is compared against.
func (w *Workspace) stageLocked(stored *sections.Section, content, settings map[string]any) {
	w.rev++
	edit := &stagedEdit{
		content:      contracts.CloneMap(content),
		settings:     contracts.CloneMap(settings),
		baseContent:  contracts.CloneMap(stored.Content),
		baseSettings: contracts.CloneMap(stored.Settings),
		rev:          w.rev,
	}
	if prev, ok := w.staged[stored.ID]; ok {
		edit.baseContent, edit.baseSettings = prev.baseContent, prev.baseSettings
	}
	w.staged[stored.ID] = edit
}

func (w *Workspace) checkAttachable(ids []uuid.UUID) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.attachableLocked(ids)
}

func (w *Workspace) attachableLocked(ids []uuid.UUID) error {
	seen := make(map[uuid.UUID]struct{}, len(w.items)+len(ids))
	for _, item := range w.items {
		seen[item.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return domain.Invalid("sections", fmt.Errorf("%w: %s", ErrAlreadyAttached, id))
		}
		seen[id] = struct{}{}
	}
	return nil
}

func (w *Workspace) checkIndexLocked(i int) error {
	if i < 0 || i >= len(w.items) {
		return fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, i, len(w.items))
	}
	return nil
}

func (w *Workspace) touchLocked() {
	w.phase = PhaseEditing
}

func (w *Workspace) idsLocked() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(w.items))
	for _, item := range w.items {
		ids = append(ids, item.ID)
	}
	return ids
}

func metadataOf(page *pages.Page) Metadata {
	return Metadata{
		Slug:            page.Slug,
		PageType:        page.PageType,
		Title:           page.Title,
		MetaTitle:       page.MetaTitle,
		MetaDescription: page.MetaDescription,
		OGImage:         page.OGImage,
	}
}

// splice moves the element at i to j, shifting the elements in between.
func splice[T any](items []T, i, j int) []T {
	if i == j {
		return items
	}
	out := slices.Clone(items)
	moved := out[i]
	out = slices.Delete(out, i, i+1)
	return slices.Insert(out, j, moved)
}

func copySection(src *sections.Section) *sections.Section {
	cloned := *src
	cloned.Content = contracts.CloneMap(src.Content)
	cloned.Settings = contracts.CloneMap(src.Settings)
	return &cloned
}

func firstMissing(ids []uuid.UUID, found []*sections.Section) uuid.UUID {
	present := make(map[uuid.UUID]struct{}, len(found))
	for _, s := range found {
		present[s.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := present[id]; !ok {
			return id
		}
	}
	return uuid.Nil
}
