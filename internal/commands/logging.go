package commands

import (
	"strings"

	"github.com/goliatone/go-sections/internal/logging"
	"github.com/goliatone/go-sections/pkg/interfaces"
)

// CommandLogger returns a logger scoped to a command module ("sections",
// "pages") under the commands namespace.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	logger := logging.ModuleLogger(provider, logging.CommandsModule+"."+name)
	return logging.WithFields(logger, map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
