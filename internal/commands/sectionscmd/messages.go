package sectionscmd

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/goliatone/go-sections/internal/contracts"
	"github.com/goliatone/go-sections/internal/sections"
)

const (
	createSectionMessageType    = "sections.section.create"
	updateSectionMessageType    = "sections.section.update"
	deleteSectionMessageType    = "sections.section.delete"
	duplicateSectionMessageType = "sections.section.duplicate"
)

// CreateSectionCommand creates a section. Nil Content or Settings use the
// registry defaults. When Result is set it receives the stored section.
type CreateSectionCommand struct {
	Name        string            `json:"name"`
	SectionType contracts.Type    `json:"section_type"`
	Content     map[string]any    `json:"content,omitempty"`
	Settings    map[string]any    `json:"settings,omitempty"`
	IsGlobal    bool              `json:"is_global"`
	Result      *sections.Section `json:"-"`
}

func (CreateSectionCommand) Type() string { return createSectionMessageType }

func (m CreateSectionCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Name, validation.Required, validation.RuneLength(1, 200)),
		validation.Field(&m.SectionType, validation.Required),
	)
}

// UpdateSectionCommand patches a section. SectionType is carried only so a
// type change can be rejected by the store.
type UpdateSectionCommand struct {
	SectionID   uuid.UUID         `json:"section_id"`
	Name        *string           `json:"name,omitempty"`
	SectionType *contracts.Type   `json:"section_type,omitempty"`
	Content     map[string]any    `json:"content,omitempty"`
	Settings    map[string]any    `json:"settings,omitempty"`
	IsGlobal    *bool             `json:"is_global,omitempty"`
	Result      *sections.Section `json:"-"`
}

func (UpdateSectionCommand) Type() string { return updateSectionMessageType }

func (m UpdateSectionCommand) Validate() error {
	errs := validation.Errors{}
	if m.SectionID == uuid.Nil {
		errs["section_id"] = validation.NewError("sections.section.update.id_required", "section_id is required")
	}
	if m.Name != nil {
		if err := validation.Validate(*m.Name, validation.Required, validation.RuneLength(1, 200)); err != nil {
			errs["name"] = err
		}
	}
	if m.Name == nil && m.SectionType == nil && m.Content == nil && m.Settings == nil && m.IsGlobal == nil {
		errs["patch"] = validation.NewError("sections.section.update.empty", "at least one field must change")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (m UpdateSectionCommand) patch() sections.Patch {
	return sections.Patch{
		Name:     m.Name,
		Type:     m.SectionType,
		Content:  m.Content,
		Settings: m.Settings,
		IsGlobal: m.IsGlobal,
	}
}

// DeleteSectionCommand removes a section. Pages referencing it are left as is.
type DeleteSectionCommand struct {
	SectionID uuid.UUID `json:"section_id"`
}

func (DeleteSectionCommand) Type() string { return deleteSectionMessageType }

func (m DeleteSectionCommand) Validate() error {
	if m.SectionID == uuid.Nil {
		return validation.Errors{
			"section_id": validation.NewError("sections.section.delete.id_required", "section_id is required"),
		}
	}
	return nil
}

type DuplicateSectionCommand struct {
	SectionID uuid.UUID         `json:"section_id"`
	Result    *sections.Section `json:"-"`
}

func (DuplicateSectionCommand) Type() string { return duplicateSectionMessageType }

func (m DuplicateSectionCommand) Validate() error {
	if m.SectionID == uuid.Nil {
		return validation.Errors{
			"section_id": validation.NewError("sections.section.duplicate.id_required", "section_id is required"),
		}
	}
	return nil
}
