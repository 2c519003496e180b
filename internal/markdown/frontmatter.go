package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
	goerrors "github.com/goliatone/go-errors"
	"gopkg.in/yaml.v3"

	"github.com/bobbyhiddn/Veinity.Hub/internal/logging"
	"github.com/bobbyhiddn/Veinity.Hub/pkg/interfaces"
)

const (
	frontMatterDelimiter   = "---"
	frontMatterParseFailed = "FRONTMATTER_PARSE_FAILED"
)

var yamlFrontMatter = frontmatter.NewFormat(frontMatterDelimiter, frontMatterDelimiter, yaml.Unmarshal)

// ParseError reports a frontmatter block that is unterminated or not a YAML
// mapping.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("markdown: parse frontmatter: %v", e.Err)
	}
	return fmt.Sprintf("markdown: parse frontmatter in %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Categorised returns the go-errors representation of the failure.
func (e *ParseError) Categorised() *goerrors.Error {
	return goerrors.Wrap(e, goerrors.CategoryBadInput, "frontmatter could not be parsed").
		WithTextCode(frontMatterParseFailed)
}

// ParseFrontMatter extracts metadata and the Markdown body from source.
// Text that does not begin with the delimiter has no frontmatter: it is
// returned verbatim with empty metadata. A delimited block that cannot be
// decoded yields a *ParseError together with empty metadata and the full
// original text.
func ParseFrontMatter(source []byte) (map[string]any, []byte, error) {
	if !bytes.HasPrefix(source, []byte(frontMatterDelimiter)) {
		return map[string]any{}, source, nil
	}

	meta := map[string]any{}
	body, err := frontmatter.MustParse(bytes.NewReader(source), &meta, yamlFrontMatter)
	if err != nil {
		return map[string]any{}, source, &ParseError{Err: err}
	}
	if meta == nil {
		meta = map[string]any{}
	}
	return meta, bytes.TrimSpace(body), nil
}

// SplitFrontMatter is the degrade-and-log form of ParseFrontMatter used by
// every reader of the article tree. It never fails: parse errors are logged
// and the caller receives empty metadata plus the whole text as body.
func SplitFrontMatter(path string, source []byte, logger interfaces.Logger) (interfaces.Metadata, []byte) {
	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		if parseErr, ok := err.(*ParseError); ok {
			parseErr.Path = path
			err = parseErr.Categorised()
		}
		if logger == nil {
			logger = logging.NoOp()
		}
		logging.WithArticleContext(logger, path, "").Error("markdown.frontmatter.parse_failed", "error", err)
	}
	return interfaces.NewMetadata(meta), body
}
