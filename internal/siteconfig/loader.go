package siteconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bobbyhiddn/Veinity.Hub/internal/logging"
	"github.com/bobbyhiddn/Veinity.Hub/pkg/interfaces"
)

// Loader reads site.yaml and ads.yaml once at start-up.
type Loader struct {
	logger   interfaces.Logger
	readFile func(string) ([]byte, error)
}

// LoaderOption customises a Loader.
type LoaderOption func(*Loader)

// WithLogger sets the logger used to report load failures.
func WithLogger(logger interfaces.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithReadFile swaps the file reader, mostly for tests.
func WithReadFile(fn func(string) ([]byte, error)) LoaderOption {
	return func(l *Loader) {
		if fn != nil {
			l.readFile = fn
		}
	}
}

// NewLoader builds a Loader reading from the local filesystem.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		logger:   logging.NoOp(),
		readFile: os.ReadFile,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadSite returns the site configuration at path, or DefaultSite when the
// file is missing or invalid. Failures are logged, never returned.
func (l *Loader) LoadSite(path string) Site {
	var site Site
	if err := l.decode(path, &site); err != nil {
		l.report(err)
		return DefaultSite()
	}
	return site.withDefaults()
}

// LoadAds returns the ad configuration at path, or DefaultAds when the file
// is missing or invalid.
func (l *Loader) LoadAds(path string) Ads {
	var ads Ads
	if err := l.decode(path, &ads); err != nil {
		l.report(err)
		return DefaultAds()
	}
	return ads.withDefaults()
}

func (l *Loader) decode(path string, out any) *ConfigLoadError {
	data, err := l.readFile(path)
	if err != nil {
		return &ConfigLoadError{Path: path, Err: err}
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return &ConfigLoadError{Path: path, Err: fmt.Errorf("decode yaml: %w", err)}
	}
	return nil
}

func (l *Loader) report(err *ConfigLoadError) {
	logger := logging.WithFields(l.logger, map[string]any{"path": err.Path})
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn("siteconfig.load.missing", "error", err.categorised())
		return
	}
	logger.Error("siteconfig.load.failed", "error", err.categorised())
}
