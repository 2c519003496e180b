package hub

import (
	"context"
	"errors"
	"net/http"

	"github.com/bobbyhiddn/Veinity.Hub/internal/articles"
	librarycmd "github.com/bobbyhiddn/Veinity.Hub/internal/commands/library"
	"github.com/bobbyhiddn/Veinity.Hub/internal/di"
	"github.com/bobbyhiddn/Veinity.Hub/internal/markdown"
	"github.com/bobbyhiddn/Veinity.Hub/internal/siteconfig"
	"github.com/bobbyhiddn/Veinity.Hub/pkg/interfaces"
)

// ArticleStore exports the filesystem article store.
type ArticleStore = *articles.Store

// ArticleService exports the article rendering service.
type ArticleService = *articles.Service

// MarkdownService exports the markdown rendering service.
type MarkdownService = *markdown.Service

// Site and Ads are the values loaded from site.yaml and ads.yaml.
type (
	Site = siteconfig.Site
	Ads  = siteconfig.Ads
)

// AuditReport is the result of the library audit command.
type AuditReport = articles.AuditReport

// Module is the top level runtime facade of the hub.
type Module struct {
	container *di.Container
}

// New constructs a hub module using cfg and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container.
func (m *Module) Container() *di.Container {
	return m.container
}

func (m *Module) Articles() ArticleService {
	return m.container.ArticleService()
}

func (m *Module) Store() ArticleStore {
	return m.container.ArticleStore()
}

func (m *Module) Markdown() MarkdownService {
	return m.container.MarkdownService()
}

func (m *Module) Site() Site {
	return m.container.Site()
}

func (m *Module) Ads() Ads {
	return m.container.Ads()
}

// Logger returns the root hub logger.
func (m *Module) Logger() interfaces.Logger {
	return m.container.Logger()
}

// Handler returns the HTTP handler serving the public site.
func (m *Module) Handler() http.Handler {
	return m.container.Handler()
}

// Serve runs the HTTP server until ctx is cancelled, then shuts it down
// within Config.Server.ShutdownTimeout.
func (m *Module) Serve(ctx context.Context) error {
	srv := m.container.HTTPServer()
	logger := m.container.Logger()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("hub.server.listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), m.container.Config.Server.ShutdownTimeout)
	defer cancel()
	logger.Info("hub.server.shutdown", "timeout", m.container.Config.Server.ShutdownTimeout.String())
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Audit runs the library audit command for category, or the whole tree when
// category is empty.
func (m *Module) Audit(ctx context.Context, category string) (AuditReport, error) {
	var report AuditReport
	handler := librarycmd.NewAuditLibraryHandler(
		m.container.ArticleStore(),
		m.container.CommandLogger("library"),
		func(_ context.Context, _ librarycmd.AuditLibraryCommand, result articles.AuditReport) {
			report = result
		},
	)
	err := handler.Execute(ctx, librarycmd.AuditLibraryCommand{Category: category})
	return report, err
}
