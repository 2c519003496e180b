package articles

import (
	"context"
	"errors"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/bobbyhiddn/Veinity.Hub/internal/logging"
	"github.com/bobbyhiddn/Veinity.Hub/internal/markdown"
	"github.com/bobbyhiddn/Veinity.Hub/pkg/interfaces"
)

const (
	DefaultPattern      = "*.md"
	DefaultRecentLimit  = 10
	DefaultRelatedLimit = 3
)

// Store reads articles from a directory tree. Every call re-reads the
// filesystem; there is no index and nothing is written.
type Store struct {
	fsys         fs.FS
	root         string
	pattern      string
	recentLimit  int
	relatedLimit int
	enricher     *Enricher
	logger       interfaces.Logger
}

// StoreOption customises a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for per-file failures.
func WithLogger(logger interfaces.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPattern sets the glob used to recognise article files.
func WithPattern(pattern string) StoreOption {
	return func(s *Store) {
		if strings.TrimSpace(pattern) != "" {
			s.pattern = pattern
		}
	}
}

// WithRecentLimit sets the listing size used when callers pass limit <= 0.
func WithRecentLimit(limit int) StoreOption {
	return func(s *Store) {
		if limit > 0 {
			s.recentLimit = limit
		}
	}
}

// WithRelatedLimit sets the related size used when callers pass limit <= 0.
func WithRelatedLimit(limit int) StoreOption {
	return func(s *Store) {
		if limit > 0 {
			s.relatedLimit = limit
		}
	}
}

// WithEnricher sets the enricher applied to listed metadata.
func WithEnricher(enricher *Enricher) StoreOption {
	return func(s *Store) {
		s.enricher = enricher
	}
}

// WithRootLabel records the on-disk location of fsys for logs and health
// reports.
func WithRootLabel(root string) StoreOption {
	return func(s *Store) {
		s.root = root
	}
}

// NewStore builds a Store over fsys, usually os.DirFS(articlesRoot).
func NewStore(fsys fs.FS, opts ...StoreOption) *Store {
	s := &Store{
		fsys:         fsys,
		root:         ".",
		pattern:      DefaultPattern,
		recentLimit:  DefaultRecentLimit,
		relatedLimit: DefaultRelatedLimit,
		logger:       logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.enricher == nil {
		s.enricher = NewEnricher(nil, NewDateFormatter("", s.logger), 0)
	}
	return s
}

// Root returns the label given with WithRootLabel.
func (s *Store) Root() string {
	return s.root
}

// RootExists reports whether the article root is present and a directory.
func (s *Store) RootExists() bool {
	info, err := fs.Stat(s.fsys, ".")
	return err == nil && info.IsDir()
}

// ListRecent returns metadata for the newest articles directly inside the
// root, or inside category when it is set. Files are ordered by modification
// time, newest first, and cut to limit before files without metadata are
// dropped, so fewer than limit results may come back. A missing category
// yields an empty slice.
func (s *Store) ListRecent(ctx context.Context, category string, limit int) []interfaces.Metadata {
	if limit <= 0 {
		limit = s.recentLimit
	}

	dir := "."
	if category = strings.Trim(strings.TrimSpace(category), "/"); category != "" {
		if !fs.ValidPath(category) {
			s.logger.Warn("articles.scan.invalid_category", "category", category)
			return []interfaces.Metadata{}
		}
		dir = category
	}

	files, err := s.listFiles(dir)
	if err != nil {
		logging.WithArticleContext(s.logger, "", category).Warn("articles.scan.failed", "dir", dir, "error", err)
		return []interfaces.Metadata{}
	}

	sort.SliceStable(files, func(i, j int) bool {
		if files[i].modTime.Equal(files[j].modTime) {
			return files[i].path < files[j].path
		}
		return files[i].modTime.After(files[j].modTime)
	})
	if len(files) > limit {
		files = files[:limit]
	}

	results := make([]interfaces.Metadata, 0, len(files))
	for _, file := range files {
		if ctx.Err() != nil {
			break
		}
		meta, source, ok := s.readMetadata(file.path)
		if !ok || meta.IsEmpty() {
			continue
		}
		results = append(results, s.enricher.Enrich(meta, file.path, source))
	}
	return results
}

// Categories lists the immediate subdirectories of the root in name order.
// Hidden directories are skipped.
func (s *Store) Categories(ctx context.Context) []string {
	entries, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		s.logger.Warn("articles.categories.failed", "error", err)
		return []string{}
	}
	categories := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		categories = append(categories, entry.Name())
	}
	return categories
}

// Get reads a single article. Invalid paths, directories and missing files
// return *NotFoundError; any other read failure returns *RenderError.
// Articles with broken frontmatter are returned with empty metadata.
func (s *Store) Get(ctx context.Context, articlePath string) (*interfaces.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	clean, ok := cleanArticlePath(articlePath)
	if !ok {
		return nil, &NotFoundError{Resource: "article", Key: articlePath}
	}

	info, err := fs.Stat(s.fsys, clean)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Resource: "article", Key: clean}
		}
		return nil, &RenderError{Path: clean, Err: err}
	}
	if info.IsDir() {
		return nil, &NotFoundError{Resource: "article", Key: clean}
	}

	source, err := fs.ReadFile(s.fsys, clean)
	if err != nil {
		return nil, &RenderError{Path: clean, Err: err}
	}
	meta, body := markdown.SplitFrontMatter(clean, source, s.logger)

	return &interfaces.Article{
		Path:     clean,
		Metadata: meta,
		Body:     body,
		Source:   source,
		ModTime:  info.ModTime(),
	}, nil
}

// Enrich applies the store's enricher to meta.
func (s *Store) Enrich(meta interfaces.Metadata, articlePath string, source []byte) interfaces.Metadata {
	return s.enricher.Enrich(meta, articlePath, source)
}

type articleFile struct {
	path    string
	modTime time.Time
}

// listFiles returns the article files directly inside dir.
func (s *Store) listFiles(dir string) ([]articleFile, error) {
	entries, err := fs.ReadDir(s.fsys, dir)
	if err != nil {
		return nil, err
	}
	files := make([]articleFile, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !s.matches(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			s.logger.Warn("articles.scan.stat_failed", "name", entry.Name(), "error", err)
			continue
		}
		files = append(files, articleFile{
			path:    path.Join(dir, entry.Name()),
			modTime: info.ModTime(),
		})
	}
	return files, nil
}

// walk visits every article file under the root in lexical order. fn
// returning false stops the walk. Unreadable directories are logged and
// skipped.
func (s *Store) walk(ctx context.Context, fn func(articlePath string) bool) {
	stop := errors.New("stop")
	err := fs.WalkDir(s.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			s.logger.Warn("articles.walk.failed", "path", p, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() || !s.matches(d.Name()) {
			return nil
		}
		if !fn(p) {
			return stop
		}
		return nil
	})
	if err != nil && !errors.Is(err, stop) && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		s.logger.Warn("articles.walk.failed", "error", err)
	}
}

func (s *Store) readMetadata(articlePath string) (interfaces.Metadata, []byte, bool) {
	source, err := fs.ReadFile(s.fsys, articlePath)
	if err != nil {
		logging.WithArticleContext(s.logger, articlePath, "").Warn("articles.read.failed", "error", err)
		return nil, nil, false
	}
	meta, _ := markdown.SplitFrontMatter(articlePath, source, s.logger)
	return meta, source, true
}

func (s *Store) matches(name string) bool {
	ok, err := path.Match(s.pattern, name)
	return err == nil && ok
}

func cleanArticlePath(articlePath string) (string, bool) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(articlePath), "/")
	if trimmed == "" || !fs.ValidPath(trimmed) || trimmed == "." {
		return "", false
	}
	return trimmed, true
}
