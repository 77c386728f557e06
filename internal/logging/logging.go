package logging

import (
	"context"
	"maps"

	"github.com/goliatone/go-sections/pkg/interfaces"
)

// Module namespaces handed to LoggerProvider.GetLogger.
const (
	RootModule       = "sections"
	StoreModule      = "sections.store"
	PagesModule      = "sections.pages"
	BuilderModule    = "sections.builder"
	DispatcherModule = "sections.dispatcher"
	CommandsModule   = "sections.commands"
	HTTPModule       = "sections.http"
	FixturesModule   = "sections.fixtures"
	ServerModule     = "sections.server"
)

// ModuleLogger returns the logger for module with a "module" field attached.
// A nil provider, or one that returns nil, yields a no-op logger.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = RootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}
	return WithFields(logger, map[string]any{"module": module})
}

// WithFields attaches fields when logger implements interfaces.FieldsLogger
// and returns logger unchanged otherwise.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}
	fieldsLogger, ok := logger.(interfaces.FieldsLogger)
	if !ok {
		return logger
	}
	copied := make(map[string]any, len(fields))
	maps.Copy(copied, fields)
	return fieldsLogger.WithFields(copied)
}

// Or returns logger, or a no-op logger when logger is nil.
func Or(logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return NoOp()
	}
	return logger
}

// NoOp returns a logger that discards every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var (
	_ interfaces.Logger       = noopLogger{}
	_ interfaces.FieldsLogger = noopLogger{}
)

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger  { return n }
func (n noopLogger) WithContext(context.Context) interfaces.Logger { return n }
