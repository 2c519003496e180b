package articles

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

const (
	articleNotFoundCode = "ARTICLE_NOT_FOUND"
	articleRenderCode   = "ARTICLE_RENDER_FAILED"
)

// NotFoundError reports a missing article or category.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// Categorised returns the go-errors form carrying the HTTP status.
func (e *NotFoundError) Categorised() *goerrors.Error {
	return goerrors.Wrap(e, goerrors.CategoryNotFound, e.Error()).
		WithCode(goerrors.CodeNotFound).
		WithTextCode(articleNotFoundCode)
}

// RenderError reports an article that exists but could not be read or
// converted to HTML.
type RenderError struct {
	Path string
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render article %q: %v", e.Path, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Categorised returns the go-errors form carrying the HTTP status.
func (e *RenderError) Categorised() *goerrors.Error {
	return goerrors.Wrap(e, goerrors.CategoryInternal, "article could not be rendered").
		WithCode(goerrors.CodeInternal).
		WithTextCode(articleRenderCode).
		WithMetadata(map[string]any{"path": e.Path})
}

// IsNotFound reports whether err is, or wraps, a missing-article failure.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		return true
	}
	return goerrors.IsNotFound(err)
}

// IsRenderError reports whether err is, or wraps, a RenderError.
func IsRenderError(err error) bool {
	var renderErr *RenderError
	return errors.As(err, &renderErr)
}
