package librarycmd

import (
	"context"
	"errors"

	command "github.com/goliatone/go-command"

	"github.com/bobbyhiddn/Veinity.Hub/internal/articles"
	"github.com/bobbyhiddn/Veinity.Hub/internal/commands"
	"github.com/bobbyhiddn/Veinity.Hub/internal/logging"
	"github.com/bobbyhiddn/Veinity.Hub/pkg/interfaces"
)

const auditOperation = "library.audit"

// ErrStoreRequired is returned when no article store is wired.
var ErrStoreRequired = errors.New("library command: article store is nil")

var _ command.Commander[AuditLibraryCommand] = (*AuditLibraryHandler)(nil)

// ReportFunc receives the report produced by a successful audit.
type ReportFunc func(ctx context.Context, msg AuditLibraryCommand, report articles.AuditReport)

// AuditLibraryHandler runs Store.Audit through the shared command handler.
type AuditLibraryHandler struct {
	inner *commands.Handler[AuditLibraryCommand]
}

// NewAuditLibraryHandler binds the handler to store. report may be nil.
func NewAuditLibraryHandler(store *articles.Store, logger interfaces.Logger, report ReportFunc, opts ...commands.HandlerOption[AuditLibraryCommand]) *AuditLibraryHandler {
	if logger == nil {
		logger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg AuditLibraryCommand) error {
		if store == nil {
			return ErrStoreRequired
		}
		result, err := store.Audit(ctx, msg.Category)
		if err != nil {
			return err
		}
		if msg.MaxIssues > 0 && len(result.Issues) > msg.MaxIssues {
			result.Issues = result.Issues[:msg.MaxIssues]
		}

		logging.WithFields(logger, map[string]any{
			"total":      result.Total,
			"listable":   result.Listable,
			"categories": len(result.Categories),
			"issues":     len(result.Issues),
		}).Info("library.command.audit.completed")
		for _, issue := range result.Issues {
			logger.Warn("library.command.audit.issue", "article_path", issue.Path, "problem", issue.Problem, "detail", issue.Detail)
		}

		if report != nil {
			report(ctx, msg, result)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[AuditLibraryCommand]{
		commands.WithLogger[AuditLibraryCommand](logger),
		commands.WithOperation[AuditLibraryCommand](auditOperation),
		commands.WithMessageFields(func(msg AuditLibraryCommand) map[string]any {
			if msg.Category == "" {
				return nil
			}
			return map[string]any{"category": msg.Category}
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &AuditLibraryHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[AuditLibraryCommand].
func (h *AuditLibraryHandler) Execute(ctx context.Context, msg AuditLibraryCommand) error {
	return h.inner.Execute(ctx, msg)
}
