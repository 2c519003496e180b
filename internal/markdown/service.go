package markdown

import (
	"context"
	"fmt"
	"slices"

	"github.com/bobbyhiddn/Veinity.Hub/internal/logging"
	"github.com/bobbyhiddn/Veinity.Hub/pkg/interfaces"
)

// Document is an article source split into metadata and rendered output.
type Document struct {
	Path     string
	Metadata interfaces.Metadata
	Body     []byte
	HTML     []byte
	TOC      []byte
	Headings []interfaces.Heading
}

// Service couples frontmatter splitting with rendering.
type Service struct {
	parser   interfaces.MarkdownParser
	defaults interfaces.ParseOptions
	logger   interfaces.Logger
}

// ServiceOption customises a Service.
type ServiceOption func(*Service)

// WithParser replaces the goldmark parser.
func WithParser(parser interfaces.MarkdownParser) ServiceOption {
	return func(s *Service) {
		if parser != nil {
			s.parser = parser
		}
	}
}

// WithLogger sets the logger used for frontmatter failures.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService builds a Service rendering with defaults unless a call
// overrides them.
func NewService(defaults interfaces.ParseOptions, opts ...ServiceOption) *Service {
	if len(defaults.Extensions) == 0 {
		defaults.Extensions = slices.Clone(DefaultExtensions)
	}
	s := &Service{
		defaults: defaults,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.parser == nil {
		s.parser = NewGoldmarkParser(defaults)
	}
	return s
}

// Render converts markdown using the service defaults merged with opts.
func (s *Service) Render(ctx context.Context, markdown []byte, opts interfaces.ParseOptions) (*interfaces.RenderResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	merged := mergeParseOptions(s.defaults, opts)
	if renderer, ok := s.parser.(interfaces.TOCRenderer); ok {
		return renderer.Render(markdown, merged)
	}
	html, err := s.parser.ParseWithOptions(markdown, merged)
	if err != nil {
		return nil, err
	}
	return &interfaces.RenderResult{HTML: html}, nil
}

// RenderSource splits source and renders its body. Broken frontmatter never
// stops rendering; the body is then the whole text.
func (s *Service) RenderSource(ctx context.Context, path string, source []byte) (*Document, error) {
	meta, body := SplitFrontMatter(path, source, s.logger)
	result, err := s.Render(ctx, body, interfaces.ParseOptions{})
	if err != nil {
		return nil, fmt.Errorf("markdown render %s: %w", path, err)
	}
	return &Document{
		Path:     path,
		Metadata: meta,
		Body:     body,
		HTML:     result.HTML,
		TOC:      result.TOC,
		Headings: result.Headings,
	}, nil
}

func mergeParseOptions(base, override interfaces.ParseOptions) interfaces.ParseOptions {
	result := base
	if len(override.Extensions) > 0 {
		result.Extensions = append([]string(nil), override.Extensions...)
	}
	if override.Sanitize {
		result.Sanitize = true
	}
	if override.HardWraps {
		result.HardWraps = true
	}
	if override.SafeMode {
		result.SafeMode = true
	}
	if override.HighlightStyle != "" {
		result.HighlightStyle = override.HighlightStyle
	}
	return result
}
