package commands

import (
	"strings"

	"github.com/bobbyhiddn/Veinity.Hub/internal/logging"
	"github.com/bobbyhiddn/Veinity.Hub/pkg/interfaces"
)

const commandModuleRoot = "hub.commands"

// CommandLogger scopes a logger to one command family, e.g. "library" gives
// hub.commands.library. A blank family returns the shared hub.commands logger.
func CommandLogger(provider interfaces.LoggerProvider, family string) interfaces.Logger {
	family = strings.Trim(strings.TrimSpace(family), ".")
	if family == "" {
		return logging.CommandsLogger(provider)
	}
	return logging.WithFields(
		logging.ModuleLogger(provider, commandModuleRoot+"."+family),
		map[string]any{"command_family": family},
	)
}
