package articles

import (
	"bytes"
	"context"
	"io/fs"
	"strings"

	"github.com/bobbyhiddn/Veinity.Hub/internal/markdown"
	"github.com/bobbyhiddn/Veinity.Hub/pkg/interfaces"
)

// Search returns every article whose raw text, frontmatter included,
// contains query ignoring case. Results follow lexical path order and carry
// whatever metadata the file has, possibly none beyond its path. A blank
// query returns no results without touching the filesystem.
func (s *Store) Search(ctx context.Context, query string) []interfaces.Metadata {
	results := []interfaces.Metadata{}
	query = strings.TrimSpace(query)
	if query == "" {
		return results
	}
	needle := bytes.ToLower([]byte(query))

	scanned := 0
	s.walk(ctx, func(articlePath string) bool {
		source, err := fs.ReadFile(s.fsys, articlePath)
		if err != nil {
			s.logger.Warn("articles.search.read_failed", "path", articlePath, "error", err)
			return true
		}
		scanned++
		if !bytes.Contains(bytes.ToLower(source), needle) {
			return true
		}
		meta, _ := markdown.SplitFrontMatter(articlePath, source, s.logger)
		results = append(results, s.enricher.Enrich(meta, articlePath, source))
		return true
	})

	s.logger.Debug("articles.search.completed", "query", query, "scanned", scanned, "matched", len(results))
	return results
}
