package commands

import (
	"context"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/bobbyhiddn/Veinity.Hub/pkg/interfaces"
)

// TelemetryStatus is the result category of one execution.
type TelemetryStatus string

const (
	TelemetryStatusSuccess      TelemetryStatus = "success"
	TelemetryStatusFailed       TelemetryStatus = "failed"
	TelemetryStatusContextError TelemetryStatus = "context_error"
)

// TelemetryInfo describes a finished command execution.
type TelemetryInfo struct {
	Command   string
	Operation string
	Fields    map[string]any
	Duration  time.Duration
	Error     error
	Status    TelemetryStatus
	Logger    interfaces.Logger
}

// Telemetry is invoked once per execution, after the command returns.
type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

func logOutcome(logger interfaces.Logger, info TelemetryInfo) {
	args := []any{"duration_ms", info.Duration.Milliseconds()}
	switch info.Status {
	case TelemetryStatusSuccess:
		logger.Info("command.execute.success", args...)
	case TelemetryStatusContextError:
		logger.Error("command.execute.context_error", append(args, "error", info.Error)...)
	default:
		logger.Error("command.execute.failed", append(args, "error", info.Error)...)
	}
}
