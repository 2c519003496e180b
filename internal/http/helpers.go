package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"unicode"

	goerrors "github.com/goliatone/go-errors"

	"github.com/bobbyhiddn/Veinity.Hub/internal/articles"
)

type errorResponse struct {
	Error    string `json:"error"`
	Message  string `json:"message,omitempty"`
	TextCode string `json:"text_code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	var notFound *articles.NotFoundError
	if errors.As(err, &notFound) {
		coded := notFound.Categorised()
		return coded.Code, errorResponse{
			Error:    "not_found",
			Message:  notFound.Error(),
			TextCode: coded.TextCode,
		}
	}

	var renderErr *articles.RenderError
	if errors.As(err, &renderErr) {
		coded := renderErr.Categorised()
		return coded.Code, errorResponse{
			Error:    "render_failed",
			Message:  coded.Message,
			TextCode: coded.TextCode,
		}
	}

	var coded *goerrors.Error
	if errors.As(err, &coded) && coded.Code != 0 {
		return coded.Code, errorResponse{
			Error:    string(coded.Category),
			Message:  coded.Message,
			TextCode: coded.TextCode,
		}
	}

	return http.StatusInternalServerError, errorResponse{
		Error:   "internal_error",
		Message: "unexpected error",
	}
}

// articleURL builds the article route for a slash separated relative path,
// escaping each segment.
func articleURL(articlePath string) string {
	segments := strings.Split(strings.Trim(articlePath, "/"), "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return "/article/" + strings.Join(segments, "/")
}

func categoryURL(category string) string {
	return "/category/" + url.PathEscape(category)
}

// titleCase upper-cases the first letter of every word and lower-cases the
// rest, so "machine-learning" becomes "Machine-Learning".
func titleCase(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	prevLetter := false
	for _, r := range value {
		if prevLetter {
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(unicode.ToUpper(r))
		}
		prevLetter = unicode.IsLetter(r)
	}
	return b.String()
}
