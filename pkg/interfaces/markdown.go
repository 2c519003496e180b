package interfaces

// MarkdownParser converts Markdown bodies into HTML.
type MarkdownParser interface {
	// Parse converts Markdown into HTML using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts Markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// TOCRenderer is implemented by parsers that can also emit a table of
// contents for the rendered document.
type TOCRenderer interface {
	Render(markdown []byte, opts ParseOptions) (*RenderResult, error)
}

// ParseOptions customises Markdown rendering. Extension names match the ones
// accepted in the hub configuration (fenced_code, codehilite, tables, toc...).
type ParseOptions struct {
	Extensions     []string
	Sanitize       bool
	HardWraps      bool
	SafeMode       bool
	HighlightStyle string
}

// RenderResult carries rendered HTML plus the table of contents collected
// from the document headings. TOC is empty when the toc extension is off or
// the document has no headings.
type RenderResult struct {
	HTML     []byte
	TOC      []byte
	Headings []Heading
}

// Heading is one entry of a rendered document outline.
type Heading struct {
	Level int
	ID    string
	Text  string
}
