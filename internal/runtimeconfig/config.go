package runtimeconfig

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

var ErrArticlesDirRequired = errors.New("hub config: articles directory is required")
var ErrArticlePatternInvalid = errors.New("hub config: article pattern is invalid")
var ErrServerPortInvalid = errors.New("hub config: server port must be between 1 and 65535")
var ErrListingLimitInvalid = errors.New("hub config: listing limits must be positive")
var ErrPreviewCacheSizeInvalid = errors.New("hub config: preview cache size must be positive")
var ErrMarkdownExtensionUnknown = errors.New("hub config: markdown extension is not supported")
var ErrLoggingProviderRequired = errors.New("hub config: logging provider is required")
var ErrLoggingProviderUnknown = errors.New("hub config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("hub config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("hub config: logging format is invalid")

// Config aggregates everything the hub needs at start-up. The values are
// read once; nothing in the running process mutates them.
type Config struct {
	Version  string
	Library  LibraryConfig
	Site     SiteConfig
	Server   ServerConfig
	Listing  ListingConfig
	Preview  PreviewConfig
	Markdown MarkdownConfig
	Logging  LoggingConfig
}

// LibraryConfig locates the article tree on disk.
type LibraryConfig struct {
	BasePath    string
	ArticlesDir string
	// CacheDir is reserved; nothing reads or writes it.
	CacheDir string
	Pattern  string
}

// SiteConfig points at the optional YAML files describing the site and ads.
type SiteConfig struct {
	ConfigDir   string
	SiteFile    string
	AdsFile     string
	AnalyticsID string
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	DevMode         bool
}

// ListingConfig caps listing and related-article results.
type ListingConfig struct {
	RecentLimit  int
	RelatedLimit int
	DateLayout   string
}

// PreviewConfig sizes the preview generator.
type PreviewConfig struct {
	Length    int
	CacheSize int
}

// MarkdownConfig mirrors interfaces.ParseOptions for runtime configuration.
type MarkdownConfig struct {
	Extensions     []string
	Sanitize       bool
	HardWraps      bool
	SafeMode       bool
	HighlightStyle string
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns the settings the hub runs with when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Version: "1.0.0",
		Library: LibraryConfig{
			BasePath:    ".",
			ArticlesDir: "library/articles",
			CacheDir:    "library/cache",
			Pattern:     "*.md",
		},
		Site: SiteConfig{
			ConfigDir: "config",
			SiteFile:  "site.yaml",
			AdsFile:   "ads.yaml",
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8888,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Listing: ListingConfig{
			RecentLimit:  10,
			RelatedLimit: 3,
			DateLayout:   "January 2, 2006",
		},
		Preview: PreviewConfig{
			Length:    200,
			CacheSize: 512,
		},
		Markdown: MarkdownConfig{
			Extensions:     []string{"fenced_code", "codehilite", "tables", "toc"},
			HighlightStyle: "monokai",
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Library.ArticlesDir) == "" {
		return ErrArticlesDirRequired
	}
	if _, err := filepath.Match(cfg.Library.Pattern, "probe.md"); err != nil || strings.TrimSpace(cfg.Library.Pattern) == "" {
		return fmt.Errorf("%w: %q", ErrArticlePatternInvalid, cfg.Library.Pattern)
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("%w: %d", ErrServerPortInvalid, cfg.Server.Port)
	}
	if cfg.Listing.RecentLimit <= 0 {
		return fmt.Errorf("%w: recent", ErrListingLimitInvalid)
	}
	if cfg.Listing.RelatedLimit <= 0 {
		return fmt.Errorf("%w: related", ErrListingLimitInvalid)
	}
	if cfg.Preview.CacheSize <= 0 {
		return ErrPreviewCacheSizeInvalid
	}
	for _, ext := range cfg.Markdown.Extensions {
		if !IsSupportedExtension(ext) {
			return fmt.Errorf("%w: %s", ErrMarkdownExtensionUnknown, ext)
		}
	}

	provider := normalizeProvider(cfg.Logging.Provider)
	if provider == "" {
		return ErrLoggingProviderRequired
	}
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(provider, format) {
		return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
	}
	return nil
}

// ArticlesRoot resolves the article directory against BasePath.
func (cfg Config) ArticlesRoot() string {
	return resolve(cfg.Library.BasePath, cfg.Library.ArticlesDir)
}

// SiteConfigPath resolves site.yaml.
func (cfg Config) SiteConfigPath() string {
	return resolve(cfg.Library.BasePath, filepath.Join(cfg.Site.ConfigDir, cfg.Site.SiteFile))
}

// AdsConfigPath resolves ads.yaml.
func (cfg Config) AdsConfigPath() string {
	return resolve(cfg.Library.BasePath, filepath.Join(cfg.Site.ConfigDir, cfg.Site.AdsFile))
}

// Addr is the listen address for the HTTP server.
func (cfg Config) Addr() string {
	return fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
}

func resolve(base, path string) string {
	if filepath.IsAbs(path) || strings.TrimSpace(base) == "" {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}

var supportedExtensions = map[string]struct{}{
	"fenced_code":   {},
	"codehilite":    {},
	"highlight":     {},
	"tables":        {},
	"table":         {},
	"toc":           {},
	"gfm":           {},
	"strikethrough": {},
	"linkify":       {},
	"autolink":      {},
	"tasklist":      {},
	"definition":    {},
	"footnote":      {},
}

// IsSupportedExtension reports whether the markdown renderer knows ext.
func IsSupportedExtension(ext string) bool {
	name := strings.ToLower(strings.TrimSpace(ext))
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[idx+1:]
	}
	_, ok := supportedExtensions[name]
	return ok
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(provider, format string) bool {
	format = strings.ToLower(strings.TrimSpace(format))
	if provider == "console" {
		return format == "text" || format == "json" || format == "console"
	}
	switch format {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
