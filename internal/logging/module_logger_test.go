package logging

import (
	"context"
	"testing"

	"github.com/bobbyhiddn/Veinity.Hub/pkg/interfaces"
)

type recordingLogger struct {
	fields   []map[string]any
	contexts []context.Context
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	r.fields = append(r.fields, copied)
	return r
}

func (r *recordingLogger) WithContext(ctx context.Context) interfaces.Logger {
	r.contexts = append(r.contexts, ctx)
	return r
}

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "hub.test")
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	logger = logger.WithContext(context.Background())
	logger.Debug("noop")
}

func TestModuleLoggerUsesProviderAndAnnotatesFields(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	logger := ModuleLogger(provider, articlesModule)

	if len(provider.requested) != 1 || provider.requested[0] != articlesModule {
		t.Fatalf("expected module %s, got %v", articlesModule, provider.requested)
	}
	if len(rec.fields) != 1 {
		t.Fatalf("expected module fields to be applied once, got %d", len(rec.fields))
	}
	if got := rec.fields[0]["module"]; got != articlesModule {
		t.Fatalf("expected module field %s, got %v", articlesModule, got)
	}

	logger.Info("with provider")
}

func TestModuleLoggerDefaultsToRootModule(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = ModuleLogger(provider, "")

	if len(provider.requested) != 1 || provider.requested[0] != rootModule {
		t.Fatalf("expected default module %s, got %v", rootModule, provider.requested)
	}
}

func TestNamedLoggersRequestTheirModules(t *testing.T) {
	cases := map[string]func(interfaces.LoggerProvider) interfaces.Logger{
		articlesModule:   ArticlesLogger,
		markdownModule:   MarkdownLogger,
		siteConfigModule: SiteConfigLogger,
		httpModule:       HTTPLogger,
		commandsModule:   CommandsLogger,
	}
	for module, fn := range cases {
		provider := &stubProvider{logger: &recordingLogger{}}
		_ = fn(provider)
		if len(provider.requested) == 0 || provider.requested[0] != module {
			t.Fatalf("expected %s request, got %v", module, provider.requested)
		}
	}
}

func TestWithArticleContextSkipsBlankValues(t *testing.T) {
	rec := &recordingLogger{}
	_ = WithArticleContext(rec, " tech/go.md ", "")

	if len(rec.fields) != 1 {
		t.Fatalf("expected one WithFields call, got %d", len(rec.fields))
	}
	if rec.fields[0][fieldArticlePath] != "tech/go.md" {
		t.Fatalf("unexpected article path field: %v", rec.fields[0])
	}
	if _, ok := rec.fields[0][fieldCategory]; ok {
		t.Fatalf("blank category should be skipped: %v", rec.fields[0])
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := ContextWithRequestID(context.Background(), "req-42")
	ctx = ContextWithFields(ctx, map[string]any{"route": "/"})

	if got := RequestID(ctx); got != "req-42" {
		t.Fatalf("expected request id req-42, got %q", got)
	}
	if RequestID(context.Background()) != "" {
		t.Fatal("expected empty request id on bare context")
	}
}
