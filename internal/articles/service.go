package articles

import (
	"context"
	"errors"

	"github.com/bobbyhiddn/Veinity.Hub/internal/logging"
	"github.com/bobbyhiddn/Veinity.Hub/internal/markdown"
	"github.com/bobbyhiddn/Veinity.Hub/pkg/interfaces"
)

// RenderedArticle is an article ready for the article page.
type RenderedArticle struct {
	Path     string
	Metadata interfaces.Metadata
	HTML     []byte
	TOC      []byte
	Headings []interfaces.Heading
	Related  []interfaces.Metadata
}

// Service renders single articles and attaches related ones.
type Service struct {
	store    *Store
	markdown *markdown.Service
	logger   interfaces.Logger
}

// NewService wires a Store with a markdown.Service.
func NewService(store *Store, md *markdown.Service, logger interfaces.Logger) *Service {
	if logger == nil {
		logger = logging.NoOp()
	}
	if md == nil {
		md = markdown.NewService(interfaces.ParseOptions{}, markdown.WithLogger(logger))
	}
	return &Service{store: store, markdown: md, logger: logger}
}

// Store exposes the underlying article store.
func (s *Service) Store() *Store {
	return s.store
}

// Render fetches articlePath and converts its body to HTML. Missing articles
// return *NotFoundError and conversion failures *RenderError. Articles with
// broken or missing frontmatter still render, with empty metadata and no
// related articles.
func (s *Service) Render(ctx context.Context, articlePath string, relatedLimit int) (*RenderedArticle, error) {
	article, err := s.store.Get(ctx, articlePath)
	if err != nil {
		return nil, err
	}

	result, err := s.markdown.Render(ctx, article.Body, interfaces.ParseOptions{})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		logging.WithArticleContext(s.logger, article.Path, article.Metadata.Category()).
			Error("articles.render.failed", "error", err)
		return nil, &RenderError{Path: article.Path, Err: err}
	}

	rendered := &RenderedArticle{
		Path:     article.Path,
		Metadata: article.Metadata,
		HTML:     result.HTML,
		TOC:      result.TOC,
		Headings: result.Headings,
		Related:  []interfaces.Metadata{},
	}
	if !article.Metadata.IsEmpty() {
		rendered.Metadata = s.store.Enrich(article.Metadata, article.Path, article.Source)
		rendered.Related = s.store.Related(ctx, article.Metadata, relatedLimit)
	}
	return rendered, nil
}
