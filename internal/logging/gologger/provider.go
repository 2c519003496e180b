package gologger

import (
	"context"
	"fmt"
	"maps"
	"strings"
	"sync"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/bobbyhiddn/Veinity.Hub/internal/logging"
	"github.com/bobbyhiddn/Veinity.Hub/pkg/interfaces"
)

// Config mirrors the logging section of the runtime config.
type Config struct {
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

var formats = map[string]func() glog.Option{
	"":        glog.WithLoggerTypeJSON,
	"json":    glog.WithLoggerTypeJSON,
	"console": glog.WithLoggerTypeConsole,
	"pretty":  glog.WithLoggerTypePretty,
}

var levels = map[string]string{
	"trace":   glog.Trace,
	"debug":   glog.Debug,
	"info":    glog.Info,
	"warn":    glog.Warn,
	"warning": glog.Warn,
	"error":   glog.Error,
	"fatal":   glog.Fatal,
}

// Provider hands out go-logger children keyed by module name. Children are
// created once and reused.
type Provider struct {
	root     *glog.BaseLogger
	mu       sync.Mutex
	children map[string]interfaces.Logger
}

// NewProvider builds a go-logger root from cfg. Unknown levels fall back to
// the go-logger default, unknown formats are rejected.
func NewProvider(cfg Config) (*Provider, error) {
	format, ok := formats[strings.ToLower(strings.TrimSpace(cfg.Format))]
	if !ok {
		return nil, fmt.Errorf("gologger: unsupported format %q", cfg.Format)
	}

	options := []glog.Option{format()}
	if level, ok := levels[strings.ToLower(strings.TrimSpace(cfg.Level))]; ok {
		options = append(options, glog.WithLevel(level))
	}
	if cfg.AddSource {
		options = append(options, glog.WithAddSource(true))
	}

	root := glog.NewLogger(options...)
	if focus := modules(cfg.Focus); len(focus) > 0 {
		root.Focus(focus...)
	}

	return &Provider{root: root, children: map[string]interfaces.Logger{}}, nil
}

// GetLogger returns the child logger for name, or the root for a blank name.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	if p == nil || p.root == nil {
		return logging.NoOp()
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return adapt(p.root)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if child, ok := p.children[name]; ok {
		return child
	}
	child := adapt(p.root.GetLogger(name))
	p.children[name] = child
	return child
}

func adapt(inner glog.Logger) interfaces.Logger {
	if inner == nil {
		return logging.NoOp()
	}
	return adapter{inner: inner}
}

type adapter struct {
	inner glog.Logger
}

var _ interfaces.FieldsLogger = adapter{}

func (a adapter) Trace(msg string, args ...any) { a.inner.Trace(msg, args...) }
func (a adapter) Debug(msg string, args ...any) { a.inner.Debug(msg, args...) }
func (a adapter) Info(msg string, args ...any)  { a.inner.Info(msg, args...) }
func (a adapter) Warn(msg string, args ...any)  { a.inner.Warn(msg, args...) }
func (a adapter) Error(msg string, args ...any) { a.inner.Error(msg, args...) }
func (a adapter) Fatal(msg string, args ...any) { a.inner.Fatal(msg, args...) }

// WithFields only applies when the wrapped logger supports fields.
func (a adapter) WithFields(fields map[string]any) interfaces.Logger {
	fl, ok := a.inner.(glog.FieldsLogger)
	if !ok || len(fields) == 0 {
		return a
	}
	return adapt(fl.WithFields(maps.Clone(fields)))
}

func (a adapter) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return a
	}
	return logging.WithFields(adapt(a.inner.WithContext(ctx)), logging.ContextFields(ctx))
}

func modules(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
