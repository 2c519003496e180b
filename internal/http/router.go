package http

import (
	"context"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bobbyhiddn/Veinity.Hub/internal/articles"
	"github.com/bobbyhiddn/Veinity.Hub/internal/logging"
	"github.com/bobbyhiddn/Veinity.Hub/internal/siteconfig"
	"github.com/bobbyhiddn/Veinity.Hub/pkg/interfaces"
)

// Config carries everything the route layer needs. Articles is required.
type Config struct {
	Articles       *articles.Service
	Site           siteconfig.Site
	Ads            siteconfig.Ads
	AnalyticsID    string
	Version        string
	RecentLimit    int
	RelatedLimit   int
	HighlightStyle string
	RequestTimeout time.Duration
	DevMode        bool
	// Templates overrides the embedded page templates.
	Templates fs.FS
	Logger    interfaces.Logger
	Clock     func() time.Time
}

// Server holds the handlers for the public site.
type Server struct {
	articles     *articles.Service
	site         siteconfig.Site
	ads          siteconfig.Ads
	analyticsID  string
	version      string
	recentLimit  int
	relatedLimit int
	views        *renderer
	stylesheet   []byte
	logger       interfaces.Logger
	now          func() time.Time
	started      time.Time
	dev          bool
}

// ErrArticlesServiceRequired is returned by NewServer without an articles service.
var ErrArticlesServiceRequired = errors.New("http: articles service is required")

// NewServer parses templates and prepares the stylesheet.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Articles == nil {
		return nil, ErrArticlesServiceRequired
	}
	views, err := newRenderer(cfg.Templates)
	if err != nil {
		return nil, err
	}
	css, err := buildStylesheet(cfg.HighlightStyle)
	if err != nil {
		return nil, err
	}

	s := &Server{
		articles:     cfg.Articles,
		site:         cfg.Site,
		ads:          cfg.Ads,
		analyticsID:  cfg.AnalyticsID,
		version:      cfg.Version,
		recentLimit:  cfg.RecentLimit,
		relatedLimit: cfg.RelatedLimit,
		views:        views,
		stylesheet:   css,
		logger:       cfg.Logger,
		now:          cfg.Clock,
		dev:          cfg.DevMode,
	}
	if s.logger == nil {
		s.logger = logging.NoOp()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.recentLimit <= 0 {
		s.recentLimit = articles.DefaultRecentLimit
	}
	if s.relatedLimit <= 0 {
		s.relatedLimit = articles.DefaultRelatedLimit
	}
	if s.site.SiteName == "" {
		s.site = siteconfig.DefaultSite()
	}
	if s.ads.Slots == nil {
		s.ads = siteconfig.DefaultAds()
	}
	s.started = s.now()
	return s, nil
}

// Handler builds the chi router with the standard middleware stack.
func (s *Server) Handler(timeout time.Duration) http.Handler {
	r := chi.NewRouter()
	r.Use(requestContext)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger, s.now))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5, "text/html", "text/css", "application/json"))
	if timeout > 0 {
		r.Use(middleware.Timeout(timeout))
	}

	r.Get("/", s.handleIndex)
	r.Get("/category/{name}", s.handleCategory)
	r.Get("/article/*", s.handleArticle)
	r.Get("/search", s.handleSearch)
	r.Get("/health", s.handleHealth)
	r.Get("/static/style.css", stylesheetHandler(s.stylesheet, s.started, s.dev))
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.renderError(w, r, http.StatusNotFound, "The page you were looking for does not exist.")
	})
	return r
}

// NewRouter is NewServer followed by Handler.
func NewRouter(cfg Config) (http.Handler, error) {
	server, err := NewServer(cfg)
	if err != nil {
		return nil, err
	}
	return server.Handler(cfg.RequestTimeout), nil
}

// pageData is the view model shared by every page template.
type pageData struct {
	Title           string
	SiteName        string
	Site            siteconfig.Site
	Ads             siteconfig.Ads
	AnalyticsID     string
	Categories      []string
	CurrentYear     int
	CurrentCategory string
	Query           string

	Articles []interfaces.Metadata

	Metadata interfaces.Metadata
	Content  template.HTML
	TOC      template.HTML
	Related  []interfaces.Metadata

	Status  int
	Message string
}

// basePage fills the globals every template can rely on.
func (s *Server) basePage(ctx context.Context, title string) pageData {
	return pageData{
		Title:       title,
		SiteName:    s.site.SiteName,
		Site:        s.site,
		Ads:         s.ads,
		AnalyticsID: s.analyticsID,
		Categories:  s.articles.Store().Categories(ctx),
		CurrentYear: s.now().Year(),
	}
}
