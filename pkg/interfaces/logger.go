package interfaces

import "context"

// Leveled carries the severity methods shared by every hub logger. Arguments
// after msg are read as alternating key/value pairs.
type Leveled interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
}

// Logger is the logging contract handed to stores, renderers and handlers.
// github.com/goliatone/go-logger loggers satisfy it through a thin adapter.
type Logger interface {
	Leveled
	WithContext(ctx context.Context) Logger
}

// FieldsLogger is a Logger that can carry persistent fields.
type FieldsLogger interface {
	Logger
	WithFields(fields map[string]any) Logger
}

// LoggerProvider hands out named loggers, one per module.
type LoggerProvider interface {
	GetLogger(name string) Logger
}

// LoggerProviderFunc adapts a plain function into a LoggerProvider.
type LoggerProviderFunc func(name string) Logger

func (fn LoggerProviderFunc) GetLogger(name string) Logger {
	if fn == nil {
		return nil
	}
	return fn(name)
}
