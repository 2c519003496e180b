package di

import (
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/bobbyhiddn/Veinity.Hub/internal/articles"
	"github.com/bobbyhiddn/Veinity.Hub/internal/commands"
	hubhttp "github.com/bobbyhiddn/Veinity.Hub/internal/http"
	"github.com/bobbyhiddn/Veinity.Hub/internal/logging"
	"github.com/bobbyhiddn/Veinity.Hub/internal/logging/console"
	"github.com/bobbyhiddn/Veinity.Hub/internal/logging/gologger"
	"github.com/bobbyhiddn/Veinity.Hub/internal/markdown"
	"github.com/bobbyhiddn/Veinity.Hub/internal/runtimeconfig"
	"github.com/bobbyhiddn/Veinity.Hub/internal/siteconfig"
	"github.com/bobbyhiddn/Veinity.Hub/pkg/interfaces"
)

// Container wires the hub services from a validated Config.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	logger         interfaces.Logger

	articlesFS  fs.FS
	parser      interfaces.MarkdownParser
	readFile    func(string) ([]byte, error)
	templatesFS fs.FS
	clock       func() time.Time

	site siteconfig.Site
	ads  siteconfig.Ads

	markdownSvc *markdown.Service
	store       *articles.Store
	articleSvc  *articles.Service
	server      *hubhttp.Server
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider chosen from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithArticlesFS serves articles from fsys instead of the configured directory.
func WithArticlesFS(fsys fs.FS) Option {
	return func(c *Container) {
		c.articlesFS = fsys
	}
}

// WithMarkdownParser replaces the goldmark parser.
func WithMarkdownParser(parser interfaces.MarkdownParser) Option {
	return func(c *Container) {
		c.parser = parser
	}
}

// WithSiteConfigReader replaces os.ReadFile for site.yaml and ads.yaml.
func WithSiteConfigReader(fn func(string) ([]byte, error)) Option {
	return func(c *Container) {
		c.readFile = fn
	}
}

// WithTemplates overrides the embedded page templates.
func WithTemplates(fsys fs.FS) Option {
	return func(c *Container) {
		c.templatesFS = fsys
	}
}

// WithClock sets the time source used by the HTTP layer.
func WithClock(clock func() time.Time) Option {
	return func(c *Container) {
		c.clock = clock
	}
}

// NewContainer validates cfg and builds every service.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLogger(); err != nil {
		return nil, err
	}
	c.loadSiteConfig()
	if err := c.configureArticles(); err != nil {
		return nil, err
	}
	if err := c.configureServer(); err != nil {
		return nil, err
	}

	c.logger.Info("hub.container.ready",
		"articles_root", cfg.ArticlesRoot(),
		"site_name", c.site.SiteName,
		"ads_enabled", c.ads.Enabled,
		"dev_mode", cfg.Server.DevMode,
	)
	return c, nil
}

func (c *Container) configureLogger() error {
	if c.loggerProvider == nil {
		logCfg := c.Config.Logging
		if c.Config.Server.DevMode && strings.TrimSpace(logCfg.Level) == "" {
			logCfg.Level = "debug"
		}
		provider, err := newLoggerProvider(logCfg)
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	}
	c.logger = logging.ModuleLogger(c.loggerProvider, "hub")
	return nil
}

func newLoggerProvider(cfg runtimeconfig.LoggingConfig) (interfaces.LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "gologger":
		return gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
	case "", "console":
		opts := console.Options{}
		if level, ok := console.ParseLevel(cfg.Level); ok {
			opts.MinLevel = &level
		}
		if format, ok := console.ParseFormat(cfg.Format); ok {
			opts.Format = format
		}
		return console.NewProvider(opts), nil
	default:
		return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrLoggingProviderUnknown, cfg.Provider)
	}
}

func (c *Container) loadSiteConfig() {
	loaderOpts := []siteconfig.LoaderOption{
		siteconfig.WithLogger(logging.SiteConfigLogger(c.loggerProvider)),
	}
	if c.readFile != nil {
		loaderOpts = append(loaderOpts, siteconfig.WithReadFile(c.readFile))
	}
	loader := siteconfig.NewLoader(loaderOpts...)
	c.site = loader.LoadSite(c.Config.SiteConfigPath())
	c.ads = loader.LoadAds(c.Config.AdsConfigPath())
}

func (c *Container) configureArticles() error {
	cfg := c.Config
	mdLogger := logging.MarkdownLogger(c.loggerProvider)
	articlesLogger := logging.ArticlesLogger(c.loggerProvider)

	defaults := interfaces.ParseOptions{
		Extensions:     cfg.Markdown.Extensions,
		Sanitize:       cfg.Markdown.Sanitize,
		HardWraps:      cfg.Markdown.HardWraps,
		SafeMode:       cfg.Markdown.SafeMode,
		HighlightStyle: cfg.Markdown.HighlightStyle,
	}
	mdOpts := []markdown.ServiceOption{markdown.WithLogger(mdLogger)}
	if c.parser != nil {
		mdOpts = append(mdOpts, markdown.WithParser(c.parser))
	}
	c.markdownSvc = markdown.NewService(defaults, mdOpts...)

	previewer, err := articles.NewPreviewer(cfg.Preview.CacheSize)
	if err != nil {
		return fmt.Errorf("di: preview cache: %w", err)
	}
	enricher := articles.NewEnricher(
		previewer,
		articles.NewDateFormatter(cfg.Listing.DateLayout, articlesLogger),
		cfg.Preview.Length,
	)

	root := cfg.ArticlesRoot()
	if c.articlesFS == nil {
		c.articlesFS = os.DirFS(root)
		if info, err := os.Stat(root); err != nil || !info.IsDir() {
			articlesLogger.Warn("articles.root.missing", "root", root)
		}
	}

	c.store = articles.NewStore(c.articlesFS,
		articles.WithLogger(articlesLogger),
		articles.WithPattern(cfg.Library.Pattern),
		articles.WithRecentLimit(cfg.Listing.RecentLimit),
		articles.WithRelatedLimit(cfg.Listing.RelatedLimit),
		articles.WithEnricher(enricher),
		articles.WithRootLabel(root),
	)
	c.articleSvc = articles.NewService(c.store, c.markdownSvc, articlesLogger)
	return nil
}

func (c *Container) configureServer() error {
	cfg := c.Config
	server, err := hubhttp.NewServer(hubhttp.Config{
		Articles:       c.articleSvc,
		Site:           c.site,
		Ads:            c.ads,
		AnalyticsID:    cfg.Site.AnalyticsID,
		Version:        cfg.Version,
		RecentLimit:    cfg.Listing.RecentLimit,
		RelatedLimit:   cfg.Listing.RelatedLimit,
		HighlightStyle: cfg.Markdown.HighlightStyle,
		RequestTimeout: cfg.Server.RequestTimeout,
		DevMode:        cfg.Server.DevMode,
		Templates:      c.templatesFS,
		Logger:         logging.HTTPLogger(c.loggerProvider),
		Clock:          c.clock,
	})
	if err != nil {
		return fmt.Errorf("di: http server: %w", err)
	}
	c.server = server
	return nil
}

// LoggerProvider returns the provider every module logger comes from.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Logger returns the root hub logger.
func (c *Container) Logger() interfaces.Logger {
	return c.logger
}

func (c *Container) Site() siteconfig.Site {
	return c.site
}

func (c *Container) Ads() siteconfig.Ads {
	return c.ads
}

func (c *Container) MarkdownService() *markdown.Service {
	return c.markdownSvc
}

func (c *Container) ArticleStore() *articles.Store {
	return c.store
}

func (c *Container) ArticleService() *articles.Service {
	return c.articleSvc
}

// Handler returns the HTTP handler for the public site.
func (c *Container) Handler() http.Handler {
	return c.server.Handler(c.Config.Server.RequestTimeout)
}

// HTTPServer returns a net/http server bound to Config.Server.
func (c *Container) HTTPServer() *http.Server {
	srv := c.Config.Server
	return &http.Server{
		Addr:         c.Config.Addr(),
		Handler:      c.Handler(),
		ReadTimeout:  srv.ReadTimeout,
		WriteTimeout: srv.WriteTimeout,
		IdleTimeout:  srv.IdleTimeout,
	}
}

// CommandLogger returns the hub.commands.<module> logger.
func (c *Container) CommandLogger(module string) interfaces.Logger {
	return commands.CommandLogger(c.loggerProvider, module)
}
