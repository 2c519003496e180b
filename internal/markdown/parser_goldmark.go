package markdown

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"

	"github.com/bobbyhiddn/Veinity.Hub/pkg/interfaces"
)

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "monokai"

// DefaultExtensions mirrors the article renderer configuration: fenced code,
// syntax highlighting, tables and a table of contents.
var DefaultExtensions = []string{"fenced_code", "codehilite", "tables", "toc"}

// GoldmarkParser implements interfaces.MarkdownParser using goldmark. It is
// stateless; a fresh engine is built per call so heading ids never leak
// between documents.
type GoldmarkParser struct {
	defaultOptions interfaces.ParseOptions
}

var (
	_ interfaces.MarkdownParser = (*GoldmarkParser)(nil)
	_ interfaces.TOCRenderer    = (*GoldmarkParser)(nil)
)

// NewGoldmarkParser constructs a parser. Empty extension lists fall back to
// DefaultExtensions.
func NewGoldmarkParser(defaults interfaces.ParseOptions) *GoldmarkParser {
	if len(defaults.Extensions) == 0 {
		defaults.Extensions = slices.Clone(DefaultExtensions)
	}
	return &GoldmarkParser{
		defaultOptions: defaults,
	}
}

// Defaults returns the options Parse uses.
func (p *GoldmarkParser) Defaults() interfaces.ParseOptions {
	return p.defaultOptions
}

// Parse renders Markdown into HTML using the parser's default configuration.
func (p *GoldmarkParser) Parse(markdown []byte) ([]byte, error) {
	return p.ParseWithOptions(markdown, p.defaultOptions)
}

// ParseWithOptions renders Markdown into HTML using the provided options.
func (p *GoldmarkParser) ParseWithOptions(markdown []byte, opts interfaces.ParseOptions) ([]byte, error) {
	result, err := p.Render(markdown, opts)
	if err != nil {
		return nil, err
	}
	return result.HTML, nil
}

// Render converts markdown and returns the HTML together with the heading
// outline and, when the toc extension is enabled, the table of contents.
func (p *GoldmarkParser) Render(markdown []byte, opts interfaces.ParseOptions) (*interfaces.RenderResult, error) {
	engine := newGoldmarkEngine(opts)

	pc := parser.NewContext(parser.WithIDs(newSlugIDs()))
	doc := engine.Parser().Parse(text.NewReader(markdown), parser.WithContext(pc))

	var buf bytes.Buffer
	if err := engine.Renderer().Render(&buf, markdown, doc); err != nil {
		return nil, fmt.Errorf("markdown render: %w", err)
	}

	result := &interfaces.RenderResult{
		HTML:     buf.Bytes(),
		Headings: collectHeadings(doc, markdown),
	}

	if hasExtension(opts.Extensions, "toc") {
		result.TOC = renderTOC(result.Headings)
		result.HTML = bytes.ReplaceAll(result.HTML, tocMarker, result.TOC)
	}

	if opts.Sanitize {
		policy := sanitizePolicy()
		result.HTML = policy.SanitizeBytes(result.HTML)
		result.TOC = policy.SanitizeBytes(result.TOC)
	}
	return result, nil
}

func newGoldmarkEngine(opts interfaces.ParseOptions) goldmark.Markdown {
	exts := collectExtensions(opts)

	parserOptions := []parser.Option{
		parser.WithAutoHeadingID(),
	}

	rendererOptions := []renderer.Option{}

	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}

	// SafeMode and Sanitize both suppress raw HTML passthrough.
	if !opts.SafeMode && !opts.Sanitize {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	engineOptions := []goldmark.Option{
		goldmark.WithParserOptions(parserOptions...),
	}
	if len(rendererOptions) > 0 {
		engineOptions = append(engineOptions, goldmark.WithRendererOptions(rendererOptions...))
	}
	if len(exts) > 0 {
		engineOptions = append(engineOptions, goldmark.WithExtensions(exts...))
	}

	return goldmark.New(engineOptions...)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
}

// Names that are accepted but need no extender: fenced code is CommonMark
// and toc is handled after rendering.
var builtinExtensions = map[string]struct{}{
	"fenced_code": {},
	"toc":         {},
}

func collectExtensions(opts interfaces.ParseOptions) []goldmark.Extender {
	var extenders []goldmark.Extender
	seen := map[string]struct{}{}

	for _, name := range opts.Extensions {
		key := normalizeExtension(name)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		if _, ok := builtinExtensions[key]; ok {
			continue
		}
		if key == "codehilite" || key == "highlight" {
			extenders = append(extenders, newHighlighter(opts.HighlightStyle))
			continue
		}
		if ext, ok := extensionRegistry[key]; ok {
			extenders = append(extenders, ext)
		}
	}

	return extenders
}

func newHighlighter(style string) goldmark.Extender {
	if strings.TrimSpace(style) == "" {
		style = DefaultHighlightStyle
	}
	return highlighting.NewHighlighting(
		highlighting.WithStyle(style),
		highlighting.WithFormatOptions(
			chromahtml.WithClasses(true),
		),
	)
}

func hasExtension(names []string, want string) bool {
	for _, name := range names {
		if normalizeExtension(name) == want {
			return true
		}
	}
	return false
}

func normalizeExtension(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	// Python-Markdown style names such as markdown.extensions.toc.
	if idx := strings.LastIndex(key, "."); idx >= 0 {
		key = key[idx+1:]
	}
	return key
}

func sanitizePolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	policy.AllowAttrs("class").OnElements("div", "span", "pre", "code", "ul", "li")
	return policy
}
