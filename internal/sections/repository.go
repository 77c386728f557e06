package sections

import (
	"context"

	"github.com/google/uuid"
)

// Mutable section columns accepted by SectionRepository.Update.
const (
	ColumnName     = "name"
	ColumnContent  = "content"
	ColumnSettings = "settings"
	ColumnIsGlobal = "is_global"
)

var mutableColumns = []string{ColumnName, ColumnContent, ColumnSettings, ColumnIsGlobal}

// SectionRepository persists sections.
type SectionRepository interface {
	Create(ctx context.Context, section *Section) (*Section, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Section, error)
	List(ctx context.Context, filter Filter) ([]*Section, error)
	// ListByIDs returns the sections that exist, in the order requested.
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*Section, error)
	// Update writes only the named columns of section plus updated_at and
	// returns the stored record. No columns writes every mutable column.
	Update(ctx context.Context, section *Section, columns ...string) (*Section, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

func orderByIDs(records []*Section, ids []uuid.UUID) []*Section {
	byID := make(map[uuid.UUID]*Section, len(records))
	for _, record := range records {
		byID[record.ID] = record
	}
	out := make([]*Section, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		if record, ok := byID[id]; ok {
			seen[id] = struct{}{}
			out = append(out, record)
		}
	}
	return out
}

func updateColumns(columns []string) []string {
	if len(columns) == 0 {
		return mutableColumns
	}
	return columns
}
