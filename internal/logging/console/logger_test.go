package console_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/bobbyhiddn/Veinity.Hub/internal/logging"
	"github.com/bobbyhiddn/Veinity.Hub/internal/logging/console"
)

func TestConsoleLogger_WritesStructuredEntry(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2024, 3, 14, 15, 9, 26, 535897000, time.UTC)

	minLevel := console.LevelDebug
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		TimeFunc: func() time.Time { return now },
		MinLevel: &minLevel,
	})

	logger := provider.GetLogger("hub.articles")
	logger = logging.WithFields(logger, map[string]any{"module": "hub.articles"})
	requestID := uuid.MustParse("8a51a9b1-2d30-4b2c-8ecd-2c0b87dfa999")
	ctx := logging.ContextWithRequestID(context.Background(), requestID.String())
	logger = logger.WithContext(ctx)

	logger.Info("articles.scan.completed",
		"article_path", "tech/rust in prod.md",
		"mod_time", time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC),
	)

	got := strings.TrimSpace(buf.String())
	want := `2024-03-14T15:09:26.535897Z INFO articles.scan.completed article_path="tech/rust in prod.md" logger=hub.articles mod_time=2024-03-15T08:00:00Z module=hub.articles request_id=8a51a9b1-2d30-4b2c-8ecd-2c0b87dfa999`
	if got != want {
		t.Fatalf("unexpected log entry\nwant: %s\ngot:  %s", want, got)
	}
}

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	minLevel := console.LevelInfo
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		TimeFunc: time.Now,
		MinLevel: &minLevel,
	})

	logger := provider.GetLogger("hub.test")
	logger.Debug("ignored.debug", "foo", "bar")
	logger.Info("included.info", "foo", "bar")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected single log line, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "included.info") {
		t.Fatalf("expected info log to be written, got %s", lines[0])
	}
	if strings.Contains(lines[0], "ignored.debug") {
		t.Fatalf("unexpected debug log present: %s", lines[0])
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]console.Level{
		"trace":   console.LevelTrace,
		"DEBUG":   console.LevelDebug,
		" info ":  console.LevelInfo,
		"warning": console.LevelWarn,
		"error":   console.LevelError,
	}
	for input, want := range cases {
		got, ok := console.ParseLevel(input)
		if !ok || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v; want %v", input, got, ok, want)
		}
	}
	if _, ok := console.ParseLevel("loud"); ok {
		t.Fatal("expected unknown level to be rejected")
	}
}

func TestConsoleLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		TimeFunc: func() time.Time { return now },
		Format:   console.FormatJSON,
	})

	provider.GetLogger("hub.http").Warn("http.article.missing", "path", "tech/gone.md", "status", 404, errors.New("dangling"))

	var doc map[string]any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("expected a JSON line, got %q: %v", buf.String(), err)
	}
	if doc["level"] != "WARN" || doc["msg"] != "http.article.missing" {
		t.Fatalf("unexpected envelope: %v", doc)
	}
	if doc["time"] != "2024-05-01T09:30:00Z" {
		t.Fatalf("unexpected time: %v", doc["time"])
	}
	if doc["path"] != "tech/gone.md" || doc["status"] != float64(404) {
		t.Fatalf("unexpected fields: %v", doc)
	}
	if doc["field_2"] != "dangling" {
		t.Fatalf("expected trailing error under positional key, got %v", doc["field_2"])
	}
}

func TestParseFormat(t *testing.T) {
	if got, ok := console.ParseFormat(""); !ok || got != console.FormatText {
		t.Fatalf("expected empty format to mean text, got %q %v", got, ok)
	}
	if got, ok := console.ParseFormat(" JSON "); !ok || got != console.FormatJSON {
		t.Fatalf("expected json, got %q %v", got, ok)
	}
	if _, ok := console.ParseFormat("pretty"); ok {
		t.Fatal("expected pretty to be unsupported by the console provider")
	}
}
