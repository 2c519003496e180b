package hub_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	hub "github.com/bobbyhiddn/Veinity.Hub"
	"github.com/bobbyhiddn/Veinity.Hub/internal/di"
	"github.com/bobbyhiddn/Veinity.Hub/internal/logging/console"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, body := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", rel, err)
		}
		if err := os.WriteFile(full, []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
	return root
}

func quietProvider() di.Option {
	level := console.LevelError
	return di.WithLoggerProvider(console.NewProvider(console.Options{Writer: &strings.Builder{}, MinLevel: &level}))
}

func newModule(t *testing.T) *hub.Module {
	t.Helper()
	base := writeTree(t, map[string]string{
		"library/articles/tech/rust.md": "---\ntitle: Rust\ncategory: tech\n---\n# Rust\n",
		"library/articles/tech/notes.md": "just notes\n",
		"config/site.yaml":               "site_name: Hub Test\ncontact_email: hi@example.com\n",
		"config/ads.yaml":                "enabled: true\nslots:\n  footer: <b>ad</b>\n",
	})
	cfg := hub.DefaultConfig()
	cfg.Library.BasePath = base

	module, err := hub.New(cfg, quietProvider())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return module
}

func TestNewLoadsSiteAndAds(t *testing.T) {
	module := newModule(t)

	if module.Site().SiteName != "Hub Test" {
		t.Fatalf("expected site name from site.yaml, got %q", module.Site().SiteName)
	}
	if !module.Ads().Enabled || module.Ads().Slot("footer") != "<b>ad</b>" {
		t.Fatalf("unexpected ads: %+v", module.Ads())
	}
	if module.Ads().Slot("header") != "" {
		t.Fatalf("expected default header slot to stay empty")
	}
}

func TestModuleServesArticle(t *testing.T) {
	module := newModule(t)

	rec := httptest.NewRecorder()
	module.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/article/tech/rust.md", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<b>ad</b>") {
		t.Fatal("expected footer ad in page")
	}
}

func TestModuleAudit(t *testing.T) {
	module := newModule(t)

	report, err := module.Audit(context.Background(), "")
	if err != nil {
		t.Fatalf("Audit: %v", err)
	}
	if report.Total != 2 || report.Listable != 1 || len(report.Issues) != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestModuleServeStopsOnCancel(t *testing.T) {
	base := writeTree(t, map[string]string{"library/articles/a.md": "# a\n"})
	cfg := hub.DefaultConfig()
	cfg.Library.BasePath = base
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 38999

	module, err := hub.New(cfg, quietProvider())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := module.Serve(ctx); err != nil {
		t.Fatalf("Serve: %v", err)
	}
}

func TestLoadConfigAppliesEnvironment(t *testing.T) {
	t.Setenv("PORT", "9191")
	t.Setenv("ANALYTICS_ID", "G-123")

	cfg, err := hub.LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != 9191 || cfg.Site.AnalyticsID != "G-123" {
		t.Fatalf("unexpected config: port=%d analytics=%q", cfg.Server.Port, cfg.Site.AnalyticsID)
	}

	t.Setenv("PORT", "nope")
	if _, err := hub.LoadConfig(); !errors.Is(err, hub.ErrServerPortInvalid) {
		t.Fatalf("expected ErrServerPortInvalid, got %v", err)
	}
}
