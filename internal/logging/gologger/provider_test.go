package gologger

import (
	"context"
	"testing"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/bobbyhiddn/Veinity.Hub/internal/logging"
)

func TestNewProviderRejectsUnknownFormat(t *testing.T) {
	if _, err := NewProvider(Config{Format: "xml"}); err == nil {
		t.Fatal("expected xml format to be rejected")
	}
}

func TestProviderCachesModuleLoggers(t *testing.T) {
	p, err := NewProvider(Config{Level: "warning", Format: "console", Focus: []string{" hub.http ", ""}})
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}

	first := p.GetLogger("hub.http")
	second := p.GetLogger(" hub.http ")
	if first != second {
		t.Fatal("expected the same child logger for a repeated module name")
	}
	if len(p.children) != 1 {
		t.Fatalf("expected one cached child, got %d", len(p.children))
	}

	logging.ModuleLogger(p, "hub.articles").Debug("articles.scan.skipped")
}

func TestNilProviderReturnsNoOp(t *testing.T) {
	var p *Provider
	if p.GetLogger("hub.http") == nil {
		t.Fatal("expected a usable logger from a nil provider")
	}
}

func TestAdapterForwardsLevelsFieldsAndContext(t *testing.T) {
	stub := &stubLogger{}
	logger := adapt(stub)

	logger.Trace("a")
	logger.Debug("b")
	logger.Info("c")
	logger.Warn("d")
	logger.Error("e")
	logger.Fatal("f")
	if got := len(stub.calls); got != 6 {
		t.Fatalf("expected six forwarded calls, got %d", got)
	}

	fields := map[string]any{"category": "tech"}
	_ = logging.WithFields(logger, fields)
	fields["category"] = "ai"
	if len(stub.fields) != 1 || stub.fields[0]["category"] != "tech" {
		t.Fatalf("expected cloned fields, got %v", stub.fields)
	}

	ctx := logging.ContextWithRequestID(context.Background(), "req-7")
	_ = logger.WithContext(ctx)
	if len(stub.contexts) != 1 || stub.contexts[0] != ctx {
		t.Fatalf("expected context to reach go-logger, got %v", stub.contexts)
	}
	if len(stub.fields) != 2 || stub.fields[1]["request_id"] != "req-7" {
		t.Fatalf("expected request id to be attached as a field, got %v", stub.fields)
	}
}

type stubLogger struct {
	calls    []string
	fields   []map[string]any
	contexts []context.Context
}

var (
	_ glog.Logger       = (*stubLogger)(nil)
	_ glog.FieldsLogger = (*stubLogger)(nil)
)

func (s *stubLogger) Trace(msg string, _ ...any) { s.calls = append(s.calls, msg) }
func (s *stubLogger) Debug(msg string, _ ...any) { s.calls = append(s.calls, msg) }
func (s *stubLogger) Info(msg string, _ ...any)  { s.calls = append(s.calls, msg) }
func (s *stubLogger) Warn(msg string, _ ...any)  { s.calls = append(s.calls, msg) }
func (s *stubLogger) Error(msg string, _ ...any) { s.calls = append(s.calls, msg) }
func (s *stubLogger) Fatal(msg string, _ ...any) { s.calls = append(s.calls, msg) }

func (s *stubLogger) WithContext(ctx context.Context) glog.Logger {
	s.contexts = append(s.contexts, ctx)
	return s
}

func (s *stubLogger) WithFields(fields map[string]any) glog.Logger {
	s.fields = append(s.fields, fields)
	return s
}
