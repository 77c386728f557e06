package builder

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/goliatone/go-sections/internal/contracts"
	"github.com/goliatone/go-sections/internal/pages"
	"github.com/goliatone/go-sections/internal/sections"
)

type snapshot struct {
	meta  Metadata
	ids   []uuid.UUID
	items []fingerprintItem
	edits []snapshotEdit
}

// snapshotEdit carries only the parts of a staged edit that differ from the
// stored payload. A nil map is left untouched by the store.
type snapshotEdit struct {
	id       uuid.UUID
	content  map[string]any
	settings map[string]any
	rev      uint64
}

// Save persists staged section edits, then the page metadata and the full
// ordered id list in one page update. Only one save runs at a time; a call
// made while a save is in flight waits for a single follow-up round that
// writes the latest state. The follow-up does not inherit the cancellation of
// the call that started the first round. Failures leave the workspace dirty.
func (w *Workspace) Save(ctx context.Context) error {
	w.mu.Lock()
	if w.inflight != nil {
		if w.pending == nil {
			w.pending = &saveRound{done: make(chan struct{})}
		}
		round := w.pending
		w.mu.Unlock()
		select {
		case <-round.done:
			return round.err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	round := &saveRound{done: make(chan struct{})}
	w.inflight = round
	w.mu.Unlock()

	err := w.runRound(ctx)
	w.finishRound(ctx, round, err)
	return err
}

// finishRound publishes the outcome of round and starts the pending round,
// if any, detached from the caller's cancellation. The save timeout still
// bounds it.
func (w *Workspace) finishRound(ctx context.Context, round *saveRound, err error) {
	w.mu.Lock()
	round.err = err
	close(round.done)
	next := w.pending
	w.pending = nil
	w.inflight = next
	w.mu.Unlock()

	if next == nil {
		return
	}
	detached := context.WithoutCancel(ctx)
	go func() {
		w.finishRound(detached, next, w.runRound(detached))
	}()
}

func (w *Workspace) runRound(ctx context.Context) error {
	w.mu.Lock()
	snap := w.snapshotLocked()
	w.mu.Unlock()

	ctx, cancel := w.svc.withTimeout(ctx)
	defer cancel()

	logger := w.svc.logger
	for _, edit := range snap.edits {
		if edit.content == nil && edit.settings == nil {
			continue
		}
		if _, err := w.svc.sections.Update(ctx, edit.id, sections.Patch{
			Content:  edit.content,
			Settings: edit.settings,
		}); err != nil {
			logger.Warn("sections.builder.save.section_failed", "page_id", w.pageID, "section_id", edit.id, "error", err)
			return err
		}
	}

	ids := snap.ids
	meta := snap.meta
	saved, err := w.svc.pages.Update(ctx, w.pageID, pages.PagePatch{
		Slug:            &meta.Slug,
		PageType:        &meta.PageType,
		Title:           &meta.Title,
		MetaTitle:       &meta.MetaTitle,
		MetaDescription: &meta.MetaDescription,
		OGImage:         &meta.OGImage,
		Sections:        &ids,
	})
	if err != nil {
		logger.Warn("sections.builder.save.page_failed", "page_id", w.pageID, "error", err)
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for _, edit := range snap.edits {
		current, ok := w.staged[edit.id]
		if !ok {
			continue
		}
		if current.rev == edit.rev {
			delete(w.staged, edit.id)
			continue
		}
		if edit.content != nil {
			current.baseContent = edit.content
		}
		if edit.settings != nil {
			current.baseSettings = edit.settings
		}
	}

	// The store normalizes metadata (the slug in particular). Adopt what it
	// kept unless the metadata was edited while the round ran.
	persistedMeta := meta
	if saved != nil {
		persistedMeta = metadataOf(saved)
		if w.meta == meta {
			w.meta = persistedMeta
		}
	}
	fp, err := fingerprint(persistedMeta, snap.items)
	if err != nil {
		return err
	}
	w.persisted = fp
	if !w.dirtyLocked() {
		w.phase = PhasePersisted
	}
	logger.Debug("sections.builder.save.completed", "page_id", w.pageID, "sections", len(ids), "edits", len(snap.edits))
	return nil
}

func (w *Workspace) snapshotLocked() snapshot {
	snap := snapshot{meta: w.meta, ids: w.idsLocked(), items: w.fingerprintItemsLocked()}
	for _, item := range w.items {
		edit, ok := w.staged[item.ID]
		if !ok {
			continue
		}
		out := snapshotEdit{id: item.ID, rev: edit.rev}
		if !reflect.DeepEqual(edit.content, edit.baseContent) {
			out.content = contracts.CloneMap(edit.content)
		}
		if !reflect.DeepEqual(edit.settings, edit.baseSettings) {
			out.settings = contracts.CloneMap(edit.settings)
		}
		snap.edits = append(snap.edits, out)
	}
	return snap
}

type fingerprintItem struct {
	ID       uuid.UUID      `json:"id"`
	Content  map[string]any `json:"content"`
	Settings map[string]any `json:"settings"`
}

type fingerprintState struct {
	Meta  Metadata          `json:"meta"`
	Items []fingerprintItem `json:"items"`
}

func (w *Workspace) fingerprintItemsLocked() []fingerprintItem {
	items := make([]fingerprintItem, 0, len(w.items))
	for _, item := range w.items {
		items = append(items, fingerprintItem{
			ID:       item.ID,
			Content:  contracts.CloneMap(item.Content),
			Settings: contracts.CloneMap(item.Settings),
		})
	}
	return items
}

func (w *Workspace) fingerprintLocked() (uint64, error) {
	return fingerprint(w.meta, w.fingerprintItemsLocked())
}

// fingerprint hashes the JSON form of a workspace state. JSON object keys are
// sorted, so equal states hash equally.
func fingerprint(meta Metadata, items []fingerprintItem) (uint64, error) {
	raw, err := json.Marshal(fingerprintState{Meta: meta, Items: items})
	if err != nil {
		return 0, fmt.Errorf("builder: fingerprint: %w", err)
	}
	return xxhash.Sum64(raw), nil
}

func (w *Workspace) dirtyLocked() bool {
	fp, err := w.fingerprintLocked()
	if err != nil {
		return true
	}
	return fp != w.persisted
}
