package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/bobbyhiddn/Veinity.Hub/internal/siteconfig"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

const (
	pageIndex    = "index"
	pageCategory = "category"
	pageArticle  = "article"
	pageSearch   = "search"
	pageError    = "error"
)

var pageNames = []string{pageIndex, pageCategory, pageArticle, pageSearch, pageError}

// renderer holds one template set per page; every set shares base.tmpl.
type renderer struct {
	pages map[string]*template.Template
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"articleURL":  articleURL,
		"categoryURL": categoryURL,
		"titleCase":   titleCase,
		"adSlot": func(ads siteconfig.Ads, slot string) template.HTML {
			// Ad markup comes from the operator's ads.yaml.
			return template.HTML(ads.Slot(slot))
		},
	}
}

func newRenderer(templates fs.FS) (*renderer, error) {
	if templates == nil {
		sub, err := fs.Sub(embeddedTemplates, "templates")
		if err != nil {
			return nil, err
		}
		templates = sub
	}

	base, err := template.New("base").Funcs(templateFuncs()).ParseFS(templates, "base.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse base template: %w", err)
	}

	r := &renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		clone, err := base.Clone()
		if err != nil {
			return nil, err
		}
		page, err := clone.ParseFS(templates, name+".tmpl")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		r.pages[name] = page
	}
	return r, nil
}

// render executes page into a buffer first so a failing template never
// leaves a half-written response.
func (r *renderer) render(w http.ResponseWriter, status int, page string, data any) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		return fmt.Errorf("execute %s template: %w", page, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
