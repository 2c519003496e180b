package http

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bobbyhiddn/Veinity.Hub/internal/logging"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := s.basePage(ctx, fmt.Sprintf("%s - Latest Tech News", s.site.SiteName))
	data.Articles = s.articles.Store().ListRecent(ctx, "", s.recentLimit)
	s.render(w, r, http.StatusOK, pageIndex, data)
}

func (s *Server) handleCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	category := chi.URLParam(r, "name")

	list := s.articles.Store().ListRecent(ctx, category, s.recentLimit)
	if len(list) == 0 {
		s.renderError(w, r, http.StatusNotFound, fmt.Sprintf("No articles in %q.", category))
		return
	}

	data := s.basePage(ctx, fmt.Sprintf("%s - %s News", s.site.SiteName, titleCase(category)))
	data.CurrentCategory = category
	data.Articles = list
	s.render(w, r, http.StatusOK, pageCategory, data)
}

func (s *Server) handleArticle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	articlePath := chi.URLParam(r, "*")

	rendered, err := s.articles.Render(ctx, articlePath, s.relatedLimit)
	if err != nil {
		status, payload := mapError(err)
		logger := logging.WithArticleContext(s.logger.WithContext(ctx), articlePath, "")
		if status >= http.StatusInternalServerError {
			logger.Error("http.article.failed", "error", err, "text_code", payload.TextCode)
			s.renderError(w, r, status, "The article could not be displayed.")
			return
		}
		logger.Debug("http.article.not_found", "error", err)
		s.renderError(w, r, status, "The article you were looking for does not exist.")
		return
	}

	title := rendered.Metadata.Title()
	if title == "" {
		title = "Article"
	}
	data := s.basePage(ctx, title)
	data.CurrentCategory = rendered.Metadata.Category()
	data.Metadata = rendered.Metadata
	// Rendered markdown is trusted article content from the library.
	data.Content = template.HTML(rendered.HTML)
	data.TOC = template.HTML(rendered.TOC)
	data.Related = rendered.Related
	s.render(w, r, http.StatusOK, pageArticle, data)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	if query == "" {
		s.render(w, r, http.StatusOK, pageSearch, s.basePage(ctx, "Search Articles"))
		return
	}

	data := s.basePage(ctx, fmt.Sprintf("Search Results for '%s'", query))
	data.Query = query
	data.Articles = s.articles.Store().Search(ctx, query)
	s.render(w, r, http.StatusOK, pageSearch, data)
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version,omitempty"`
	Articles  string `json:"articles_root,omitempty"`
	Error     string `json:"error,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.WithContext(r.Context()).Error("http.health.failed", "error", rec)
			writeJSON(w, http.StatusInternalServerError, healthResponse{
				Status:    "unhealthy",
				Timestamp: s.now().UTC().Format(time.RFC3339),
				Error:     fmt.Sprint(rec),
			})
		}
	}()

	store := s.articles.Store()
	if !store.RootExists() {
		s.logger.WithContext(r.Context()).Warn("http.health.articles_root_missing", "root", store.Root())
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: s.now().UTC().Format(time.RFC3339),
		Version:   s.version,
		Articles:  store.Root(),
	})
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page string, data pageData) {
	if err := s.views.render(w, status, page, data); err != nil {
		s.logger.WithContext(r.Context()).Error("http.render.failed", "page", page, "error", err)
		if page == pageError {
			http.Error(w, http.StatusText(status), status)
			return
		}
		s.renderError(w, r, http.StatusInternalServerError, "The page could not be rendered.")
	}
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	data := s.basePage(r.Context(), fmt.Sprintf("%s - %s", s.site.SiteName, http.StatusText(status)))
	data.Status = status
	data.Message = message
	s.render(w, r, status, pageError, data)
}
