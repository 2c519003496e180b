package http

import (
	"bytes"
	_ "embed"
	"net/http"
	"time"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

//go:embed static/style.css
var baseStylesheet []byte

// buildStylesheet appends the chroma classes for style to the site CSS.
func buildStylesheet(style string) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(baseStylesheet)
	buf.WriteString("\n/* code highlighting */\n")
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, styles.Get(style)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// stylesheetHandler serves css. Dev mode disables caching so edits to the
// highlight style show up on reload.
func stylesheetHandler(css []byte, modified time.Time, dev bool) http.HandlerFunc {
	cacheControl := "public, max-age=3600"
	if dev {
		cacheControl = "no-store"
	}
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
		w.Header().Set("Cache-Control", cacheControl)
		http.ServeContent(w, r, "style.css", modified, bytes.NewReader(css))
	}
}
