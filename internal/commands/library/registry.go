package librarycmd

import (
	"errors"

	"github.com/bobbyhiddn/Veinity.Hub/internal/articles"
	"github.com/bobbyhiddn/Veinity.Hub/internal/commands"
	"github.com/bobbyhiddn/Veinity.Hub/pkg/interfaces"
)

// CommandRegistry is the registration contract used when wiring handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the handlers built by RegisterLibraryCommands.
type HandlerSet struct {
	Audit *AuditLibraryHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	report    ReportFunc
	auditOpts []commands.HandlerOption[AuditLibraryCommand]
}

// WithReport forwards audit reports to fn.
func WithReport(fn ReportFunc) Option {
	return func(cfg *options) {
		cfg.report = fn
	}
}

// WithAuditHandlerOptions forwards options to NewAuditLibraryHandler.
func WithAuditHandlerOptions(opts ...commands.HandlerOption[AuditLibraryCommand]) Option {
	return func(cfg *options) {
		cfg.auditOpts = append(cfg.auditOpts, opts...)
	}
}

// RegisterLibraryCommands builds the library handlers and registers them with
// reg when it is not nil.
func RegisterLibraryCommands(reg CommandRegistry, store *articles.Store, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if store == nil {
		return nil, errors.New("library command registration: store is nil")
	}
	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	set := &HandlerSet{
		Audit: NewAuditLibraryHandler(store, commands.CommandLogger(provider, "library"), cfg.report, cfg.auditOpts...),
	}
	if reg != nil {
		if err := reg.RegisterCommand(set.Audit); err != nil {
			return nil, err
		}
	}
	return set, nil
}
