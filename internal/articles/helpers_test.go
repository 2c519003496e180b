package articles

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bobbyhiddn/Veinity.Hub/pkg/interfaces"
)

type fixtureFile struct {
	path string
	body string
	age  time.Duration
}

// writeLibrary materialises files under a temp root. Each file's mtime is
// now minus its age, so smaller ages sort first in recent listings.
func writeLibrary(t *testing.T, files ...fixtureFile) string {
	t.Helper()
	root := t.TempDir()
	now := time.Now()
	for _, file := range files {
		full := filepath.Join(root, filepath.FromSlash(file.path))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", file.path, err)
		}
		if err := os.WriteFile(full, []byte(file.body), 0o644); err != nil {
			t.Fatalf("write %s: %v", file.path, err)
		}
		stamp := now.Add(-file.age)
		if err := os.Chtimes(full, stamp, stamp); err != nil {
			t.Fatalf("chtimes %s: %v", file.path, err)
		}
	}
	return root
}

func article(title, category string, tags ...string) string {
	body := "---\ntitle: " + title + "\n"
	if category != "" {
		body += "category: " + category + "\n"
	}
	if len(tags) > 0 {
		body += "tags:\n"
		for _, tag := range tags {
			body += "  - " + tag + "\n"
		}
	}
	body += "date: 2024-03-14\n---\n\n# " + title + "\n\nBody of " + title + ".\n"
	return body
}

func newTestStore(t *testing.T, root string, opts ...StoreOption) *Store {
	t.Helper()
	previewer, err := NewPreviewer(16)
	if err != nil {
		t.Fatalf("NewPreviewer: %v", err)
	}
	base := []StoreOption{
		WithRootLabel(root),
		WithEnricher(NewEnricher(previewer, NewDateFormatter("", nil), 40)),
	}
	return NewStore(os.DirFS(root), append(base, opts...)...)
}

// countingFS records every Open so tests can assert that nothing was read.
type countingFS struct {
	fs.FS
	opens atomic.Int64
}

func (c *countingFS) Open(name string) (fs.File, error) {
	c.opens.Add(1)
	return c.FS.Open(name)
}

func paths(results []interfaces.Metadata) []string {
	out := make([]string, 0, len(results))
	for _, meta := range results {
		out = append(out, meta.Path())
	}
	return out
}
