package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	hub "github.com/bobbyhiddn/Veinity.Hub"
	"github.com/bobbyhiddn/Veinity.Hub/cmd/internal/bootstrap"
	"github.com/bobbyhiddn/Veinity.Hub/internal/logging"
	"github.com/bobbyhiddn/Veinity.Hub/pkg/interfaces"
)

type noopProvider struct{}

func (noopProvider) GetLogger(string) interfaces.Logger { return logging.NoOp() }

func useArticle(t *testing.T, rel, body string) {
	t.Helper()
	base := t.TempDir()
	full := filepath.Join(base, "library", "articles", filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(full, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	original := moduleBuilder
	t.Cleanup(func() { moduleBuilder = original })
	moduleBuilder = func(opts bootstrap.Options) (*hub.Module, error) {
		opts.EnvFiles = []string{filepath.Join(base, "none.env")}
		opts.BasePath = base
		opts.LoggerProvider = noopProvider{}
		return bootstrap.BuildModule(opts)
	}
}

func TestRunPreviewRendersHTML(t *testing.T) {
	useArticle(t, "tech/rust.md", "---\ntitle: Rust\ncategory: tech\n---\n# Rust\n\nSafe *systems*.\n")

	var out strings.Builder
	if err := runPreview([]string{"-file", "tech/rust.md"}, &out); err != nil {
		t.Fatalf("runPreview: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, `"title": "Rust"`) {
		t.Fatalf("expected frontmatter in output:\n%s", text)
	}
	if !strings.Contains(text, "<em>systems</em>") {
		t.Fatalf("expected rendered HTML in output:\n%s", text)
	}
}

func TestRunPreviewMarkdownBody(t *testing.T) {
	useArticle(t, "notes.md", "just *notes*\n")

	var out strings.Builder
	if err := runPreview([]string{"-file", "notes.md", "-render-html=false"}, &out); err != nil {
		t.Fatalf("runPreview: %v", err)
	}
	if !strings.Contains(out.String(), "Frontmatter: none") || !strings.Contains(out.String(), "just *notes*") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

func TestRunPreviewRequiresFile(t *testing.T) {
	if err := runPreview(nil, &strings.Builder{}); err == nil {
		t.Fatal("expected error without --file")
	}
}

func TestRunPreviewMissingArticle(t *testing.T) {
	useArticle(t, "a.md", "# a\n")

	if err := runPreview([]string{"-file", "missing.md"}, &strings.Builder{}); err == nil {
		t.Fatal("expected not found error")
	}
}
