package librarycmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-command/dispatcher"
	goerrors "github.com/goliatone/go-errors"

	"github.com/bobbyhiddn/Veinity.Hub/internal/articles"
)

func newLibrary(t *testing.T) *articles.Store {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"tech/rust.md":  "---\ntitle: Rust\ncategory: tech\n---\nbody\n",
		"tech/plain.md": "# plain\n",
		"ai/broken.md":  "---\ntitle: [oops\n---\nbody\n",
	}
	for rel, body := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(full, []byte(body), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	return articles.NewStore(os.DirFS(root), articles.WithRootLabel(root))
}

func TestAuditLibraryCommandValidate(t *testing.T) {
	cases := []struct {
		name  string
		cmd   AuditLibraryCommand
		valid bool
	}{
		{name: "empty", cmd: AuditLibraryCommand{}, valid: true},
		{name: "category", cmd: AuditLibraryCommand{Category: "tech"}, valid: true},
		{name: "nested", cmd: AuditLibraryCommand{Category: "tech/rust"}},
		{name: "hidden", cmd: AuditLibraryCommand{Category: ".drafts"}},
		{name: "negative cap", cmd: AuditLibraryCommand{MaxIssues: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cmd.Validate()
			if tc.valid && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tc.valid && err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestAuditLibraryHandlerReports(t *testing.T) {
	var got articles.AuditReport
	handler := NewAuditLibraryHandler(newLibrary(t), nil, func(_ context.Context, _ AuditLibraryCommand, report articles.AuditReport) {
		got = report
	})

	if err := handler.Execute(context.Background(), AuditLibraryCommand{}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got.Total != 3 || got.Listable != 1 {
		t.Fatalf("unexpected report: %+v", got)
	}
	if len(got.Issues) != 2 {
		t.Fatalf("expected 2 issues, got %+v", got.Issues)
	}
}

func TestAuditLibraryHandlerCapsIssues(t *testing.T) {
	var got articles.AuditReport
	handler := NewAuditLibraryHandler(newLibrary(t), nil, func(_ context.Context, _ AuditLibraryCommand, report articles.AuditReport) {
		got = report
	})

	if err := handler.Execute(context.Background(), AuditLibraryCommand{MaxIssues: 1}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(got.Issues) != 1 {
		t.Fatalf("expected issues capped at 1, got %d", len(got.Issues))
	}
}

func TestAuditLibraryHandlerMissingCategory(t *testing.T) {
	handler := NewAuditLibraryHandler(newLibrary(t), nil, nil)

	err := handler.Execute(context.Background(), AuditLibraryCommand{Category: "cooking"})
	if !goerrors.IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}
	if !articles.IsNotFound(err) {
		t.Fatalf("expected articles.NotFoundError in chain, got %v", err)
	}
}

func TestAuditLibraryHandlerInvalidMessage(t *testing.T) {
	handler := NewAuditLibraryHandler(newLibrary(t), nil, nil)

	err := handler.Execute(context.Background(), AuditLibraryCommand{Category: "../etc"})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

type recordingRegistry struct {
	handlers []any
	err      error
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	r.handlers = append(r.handlers, handler)
	return r.err
}

func TestRegisterLibraryCommands(t *testing.T) {
	reg := &recordingRegistry{}
	set, err := RegisterLibraryCommands(reg, newLibrary(t), nil)
	if err != nil {
		t.Fatalf("RegisterLibraryCommands: %v", err)
	}
	if set.Audit == nil || len(reg.handlers) != 1 {
		t.Fatalf("expected audit handler registered, got %+v", reg.handlers)
	}

	if _, err := RegisterLibraryCommands(reg, nil, nil); err == nil {
		t.Fatal("expected error without store")
	}

	reg.err = errors.New("registry closed")
	if _, err := RegisterLibraryCommands(reg, newLibrary(t), nil); err == nil {
		t.Fatal("expected registry error to propagate")
	}
}

func TestAuditThroughDispatcher(t *testing.T) {
	calls := 0
	set, err := RegisterLibraryCommands(nil, newLibrary(t), nil, WithReport(func(context.Context, AuditLibraryCommand, articles.AuditReport) {
		calls++
	}))
	if err != nil {
		t.Fatalf("RegisterLibraryCommands: %v", err)
	}

	sub := dispatcher.SubscribeCommand(set.Audit)
	t.Cleanup(sub.Unsubscribe)

	if err := dispatcher.Dispatch(context.Background(), AuditLibraryCommand{Category: "tech"}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected one report, got %d", calls)
	}
}
