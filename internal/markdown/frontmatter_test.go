package markdown

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"gopkg.in/yaml.v3"

	"github.com/bobbyhiddn/Veinity.Hub/pkg/interfaces"
)

func TestParseFrontMatter(t *testing.T) {
	meta, body, err := ParseFrontMatter(readFixture(t, "testdata/article.md"))
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}

	record := interfaces.NewMetadata(meta)
	if record.Title() != "Rust in Production" {
		t.Fatalf("title mismatch, got %q", record.Title())
	}
	if record.Category() != "tech" {
		t.Fatalf("category mismatch, got %q", record.Category())
	}
	if tags := record.Tags(); len(tags) != 2 || tags[0] != "rust" {
		t.Fatalf("tags mismatch: %#v", tags)
	}
	if record.Date() != "2024-03-14" {
		t.Fatalf("date mismatch, got %q", record.Date())
	}
	if record.Extra()["author"] != "Ada" {
		t.Fatalf("expected author in extra keys, got %#v", record.Extra())
	}
	if !strings.HasPrefix(string(body), "# Rust in Production") {
		t.Fatalf("expected trimmed body, got %q", string(body))
	}
}

func TestParseFrontMatter_NoDelimiterReturnsVerbatim(t *testing.T) {
	source := []byte("\n# Plain\n\n---\nnot: frontmatter\n")

	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if len(meta) != 0 {
		t.Fatalf("expected empty metadata, got %#v", meta)
	}
	if string(body) != string(source) {
		t.Fatalf("expected body to be returned verbatim, got %q", string(body))
	}
}

func TestParseFrontMatter_Failures(t *testing.T) {
	cases := map[string]string{
		"invalid yaml":   "---\ntitle: [open\n---\nbody\n",
		"unterminated":   "---\ntitle: Lost\nbody without closing\n",
		"not a mapping":  "---\n- one\n- two\n---\nbody\n",
		"bad start line": "----\ntitle: x\n---\nbody\n",
	}
	for name, source := range cases {
		t.Run(name, func(t *testing.T) {
			meta, body, err := ParseFrontMatter([]byte(source))
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected ParseError, got %v", err)
			}
			if len(meta) != 0 {
				t.Fatalf("expected empty metadata, got %#v", meta)
			}
			if string(body) != source {
				t.Fatalf("expected full text as body, got %q", string(body))
			}
		})
	}
}

func TestParseFrontMatter_KeySetRoundTrip(t *testing.T) {
	records := []map[string]any{
		{"title": "One"},
		{"title": "Two", "category": "ai", "tags": []any{"llm", "agents"}},
		{"title": "Three", "date": "2024-01-02", "draft": true, "weight": 3, "series": map[string]any{"part": 1}},
	}

	for _, record := range records {
		encoded, err := yaml.Marshal(record)
		if err != nil {
			t.Fatalf("yaml.Marshal: %v", err)
		}
		source := "---\n" + string(encoded) + "---\n\nBody\n"

		meta, _, err := ParseFrontMatter([]byte(source))
		if err != nil {
			t.Fatalf("ParseFrontMatter: %v", err)
		}
		if got, want := sortedKeys(meta), sortedKeys(record); !slices.Equal(got, want) {
			t.Fatalf("key set mismatch: got %v want %v", got, want)
		}
	}
}

func TestSplitFrontMatter_LogsAndDegrades(t *testing.T) {
	logger := &recordingLogger{}
	source := readFixture(t, "testdata/malformed.md")

	meta, body := SplitFrontMatter("tech/malformed.md", source, logger)

	if !meta.IsEmpty() {
		t.Fatalf("expected empty metadata, got %#v", meta)
	}
	if string(body) != string(source) {
		t.Fatalf("expected whole text as body")
	}
	if len(logger.errors) != 1 || logger.errors[0] != "markdown.frontmatter.parse_failed" {
		t.Fatalf("expected one parse failure log, got %v", logger.errors)
	}
	if !goerrors.IsCategory(logger.lastErr, goerrors.CategoryBadInput) {
		t.Fatalf("expected bad_input category, got %v", logger.lastErr)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

type recordingLogger struct {
	errors  []string
	lastErr error
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(msg string, args ...any) {
	r.errors = append(r.errors, msg)
	for _, arg := range args {
		if err, ok := arg.(error); ok {
			r.lastErr = err
		}
	}
}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithContext(context.Context) interfaces.Logger { return r }
