// Package sectionscmd exposes section store mutations as go-command handlers.
package sectionscmd

import (
	"context"

	"github.com/google/uuid"

	"github.com/goliatone/go-sections/internal/commands"
	"github.com/goliatone/go-sections/internal/logging"
	"github.com/goliatone/go-sections/internal/sections"
	"github.com/goliatone/go-sections/pkg/interfaces"
)

// Handlers groups the section command handlers.
type Handlers struct {
	Create    *commands.Handler[CreateSectionCommand]
	Update    *commands.Handler[UpdateSectionCommand]
	Delete    *commands.Handler[DeleteSectionCommand]
	Duplicate *commands.Handler[DuplicateSectionCommand]
}

// NewHandlers wires every section command to service.
func NewHandlers(service sections.Service, logger interfaces.Logger) Handlers {
	logger = logging.Or(logger)
	return Handlers{
		Create:    NewCreateSectionHandler(service, logger),
		Update:    NewUpdateSectionHandler(service, logger),
		Delete:    NewDeleteSectionHandler(service, logger),
		Duplicate: NewDuplicateSectionHandler(service, logger),
	}
}

func NewCreateSectionHandler(service sections.Service, logger interfaces.Logger, opts ...commands.HandlerOption[CreateSectionCommand]) *commands.Handler[CreateSectionCommand] {
	exec := func(ctx context.Context, msg CreateSectionCommand) error {
		created, err := service.Create(ctx, sections.CreateInput{
			Name:     msg.Name,
			Type:     msg.SectionType,
			Content:  msg.Content,
			Settings: msg.Settings,
			IsGlobal: msg.IsGlobal,
		})
		if err != nil {
			return err
		}
		if msg.Result != nil {
			*msg.Result = *created
		}
		return nil
	}
	return commands.NewHandler(exec, append([]commands.HandlerOption[CreateSectionCommand]{
		commands.WithLogger[CreateSectionCommand](logger),
		commands.WithOperation[CreateSectionCommand]("sections.create"),
		commands.WithMessageFields(func(msg CreateSectionCommand) map[string]any {
			return map[string]any{"section_type": msg.SectionType}
		}),
		commands.WithTelemetry(commands.LogTelemetry[CreateSectionCommand](logger)),
	}, opts...)...)
}

func NewUpdateSectionHandler(service sections.Service, logger interfaces.Logger, opts ...commands.HandlerOption[UpdateSectionCommand]) *commands.Handler[UpdateSectionCommand] {
	exec := func(ctx context.Context, msg UpdateSectionCommand) error {
		updated, err := service.Update(ctx, msg.SectionID, msg.patch())
		if err != nil {
			return err
		}
		if msg.Result != nil {
			*msg.Result = *updated
		}
		return nil
	}
	return commands.NewHandler(exec, append([]commands.HandlerOption[UpdateSectionCommand]{
		commands.WithLogger[UpdateSectionCommand](logger),
		commands.WithOperation[UpdateSectionCommand]("sections.update"),
		commands.WithMessageFields(func(msg UpdateSectionCommand) map[string]any {
			return sectionFields(msg.SectionID)
		}),
		commands.WithTelemetry(commands.LogTelemetry[UpdateSectionCommand](logger)),
	}, opts...)...)
}

func NewDeleteSectionHandler(service sections.Service, logger interfaces.Logger, opts ...commands.HandlerOption[DeleteSectionCommand]) *commands.Handler[DeleteSectionCommand] {
	exec := func(ctx context.Context, msg DeleteSectionCommand) error {
		return service.Delete(ctx, msg.SectionID)
	}
	return commands.NewHandler(exec, append([]commands.HandlerOption[DeleteSectionCommand]{
		commands.WithLogger[DeleteSectionCommand](logger),
		commands.WithOperation[DeleteSectionCommand]("sections.delete"),
		commands.WithMessageFields(func(msg DeleteSectionCommand) map[string]any {
			return sectionFields(msg.SectionID)
		}),
		commands.WithTelemetry(commands.LogTelemetry[DeleteSectionCommand](logger)),
	}, opts...)...)
}

func NewDuplicateSectionHandler(service sections.Service, logger interfaces.Logger, opts ...commands.HandlerOption[DuplicateSectionCommand]) *commands.Handler[DuplicateSectionCommand] {
	exec := func(ctx context.Context, msg DuplicateSectionCommand) error {
		copied, err := service.Duplicate(ctx, msg.SectionID)
		if err != nil {
			return err
		}
		if msg.Result != nil {
			*msg.Result = *copied
		}
		return nil
	}
	return commands.NewHandler(exec, append([]commands.HandlerOption[DuplicateSectionCommand]{
		commands.WithLogger[DuplicateSectionCommand](logger),
		commands.WithOperation[DuplicateSectionCommand]("sections.duplicate"),
		commands.WithMessageFields(func(msg DuplicateSectionCommand) map[string]any {
			return sectionFields(msg.SectionID)
		}),
		commands.WithTelemetry(commands.LogTelemetry[DuplicateSectionCommand](logger)),
	}, opts...)...)
}

func sectionFields(id uuid.UUID) map[string]any {
	if id == uuid.Nil {
		return nil
	}
	return map[string]any{"section_id": id}
}
