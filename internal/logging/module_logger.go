package logging

import (
	"context"
	"strings"

	"github.com/bobbyhiddn/Veinity.Hub/pkg/interfaces"
)

const (
	rootModule       = "hub"
	articlesModule   = "hub.articles"
	markdownModule   = "hub.markdown"
	siteConfigModule = "hub.siteconfig"
	httpModule       = "hub.http"
	commandsModule   = "hub.commands"
)

const (
	fieldArticlePath = "article_path"
	fieldCategory    = "category"
	fieldRequestID   = "request_id"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module name is attached as
// a structured field on every entry.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// ArticlesLogger returns the logger used by the article store and search.
func ArticlesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, articlesModule)
}

// MarkdownLogger returns the logger used by frontmatter parsing and rendering.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// SiteConfigLogger returns the logger used while loading site.yaml and ads.yaml.
func SiteConfigLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, siteConfigModule)
}

// HTTPLogger returns the logger used by the route layer.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// CommandsLogger returns the logger used by command handlers.
func CommandsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, commandsModule)
}

// WithArticleContext adds the article path and category to logger. Empty
// values are ignored.
func WithArticleContext(logger interfaces.Logger, path, category string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldArticlePath] = trimmed
	}
	if trimmed := strings.TrimSpace(category); trimmed != "" {
		fields[fieldCategory] = trimmed
	}
	return WithFields(logger, fields)
}

// ContextWithRequestID stores the request id as a logging field on ctx.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	if strings.TrimSpace(id) == "" {
		return ctx
	}
	return ContextWithFields(ctx, map[string]any{fieldRequestID: id})
}

// RequestID returns the request id previously stored with ContextWithRequestID.
func RequestID(ctx context.Context) string {
	id, _ := ContextFields(ctx)[fieldRequestID].(string)
	return id
}

// NoOp returns a logger that drops every log entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
