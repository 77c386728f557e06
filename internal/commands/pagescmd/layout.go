// Package pagescmd exposes page layout persistence as a go-command handler.
package pagescmd

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/goliatone/go-sections/internal/commands"
	"github.com/goliatone/go-sections/internal/logging"
	"github.com/goliatone/go-sections/internal/pages"
	"github.com/goliatone/go-sections/pkg/interfaces"
)

const savePageLayoutMessageType = "sections.pages.layout.save"

// PageUpdater is the page service subset the handler needs.
type PageUpdater interface {
	Update(ctx context.Context, id uuid.UUID, patch pages.PagePatch) (*pages.Page, error)
}

// SavePageLayoutCommand overwrites the ordered section list of a page.
// Metadata pointers are written in the same update when set.
type SavePageLayoutCommand struct {
	PageID          uuid.UUID   `json:"page_id"`
	Sections        []uuid.UUID `json:"sections"`
	Title           *string     `json:"title,omitempty"`
	Slug            *string     `json:"slug,omitempty"`
	MetaTitle       *string     `json:"meta_title,omitempty"`
	MetaDescription *string     `json:"meta_description,omitempty"`
	OGImage         *string     `json:"og_image,omitempty"`
	Result          *pages.Page `json:"-"`
}

func (SavePageLayoutCommand) Type() string { return savePageLayoutMessageType }

func (m SavePageLayoutCommand) Validate() error {
	errs := validation.Errors{}
	if m.PageID == uuid.Nil {
		errs["page_id"] = validation.NewError("sections.pages.layout.page_id_required", "page_id is required")
	}
	seen := make(map[uuid.UUID]struct{}, len(m.Sections))
	for i, id := range m.Sections {
		if id == uuid.Nil {
			errs[fmt.Sprintf("sections.%d", i)] = validation.NewError("sections.pages.layout.section_id_required", "section id is required")
			continue
		}
		if _, dup := seen[id]; dup {
			errs[fmt.Sprintf("sections.%d", i)] = validation.NewError("sections.pages.layout.section_duplicate", "section listed more than once")
		}
		seen[id] = struct{}{}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func NewSavePageLayoutHandler(service PageUpdater, logger interfaces.Logger, opts ...commands.HandlerOption[SavePageLayoutCommand]) *commands.Handler[SavePageLayoutCommand] {
	logger = logging.Or(logger)
	exec := func(ctx context.Context, msg SavePageLayoutCommand) error {
		ids := append([]uuid.UUID{}, msg.Sections...)
		saved, err := service.Update(ctx, msg.PageID, pages.PagePatch{
			Slug:            msg.Slug,
			Title:           msg.Title,
			MetaTitle:       msg.MetaTitle,
			MetaDescription: msg.MetaDescription,
			OGImage:         msg.OGImage,
			Sections:        &ids,
		})
		if err != nil {
			return err
		}
		if msg.Result != nil {
			*msg.Result = *saved
		}
		return nil
	}
	return commands.NewHandler(exec, append([]commands.HandlerOption[SavePageLayoutCommand]{
		commands.WithLogger[SavePageLayoutCommand](logger),
		commands.WithOperation[SavePageLayoutCommand]("pages.layout.save"),
		commands.WithMessageFields(func(msg SavePageLayoutCommand) map[string]any {
			return map[string]any{"page_id": msg.PageID, "sections": len(msg.Sections)}
		}),
		commands.WithTelemetry(commands.LogTelemetry[SavePageLayoutCommand](logger)),
	}, opts...)...)
}
