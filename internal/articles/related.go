package articles

import (
	"context"

	"github.com/bobbyhiddn/Veinity.Hub/pkg/interfaces"
)

// Related returns up to limit articles sharing the source's category or at
// least one of its tags. The whole tree is walked in lexical order and the
// first matches win. Articles titled exactly like the source are skipped,
// which also drops the source itself.
func (s *Store) Related(ctx context.Context, source interfaces.Metadata, limit int) []interfaces.Metadata {
	if limit <= 0 {
		limit = s.relatedLimit
	}
	results := []interfaces.Metadata{}
	if source.IsEmpty() {
		return results
	}

	title := source.Title()
	category := source.Category()
	tags := source.Tags()

	s.walk(ctx, func(articlePath string) bool {
		meta, raw, ok := s.readMetadata(articlePath)
		if !ok || meta.IsEmpty() {
			return true
		}
		if meta.Title() == title {
			return true
		}
		if !isRelated(meta, category, tags) {
			return true
		}
		results = append(results, s.enricher.Enrich(meta, articlePath, raw))
		return len(results) < limit
	})
	return results
}

func isRelated(candidate interfaces.Metadata, category string, tags []string) bool {
	if category != "" && candidate.Category() == category {
		return true
	}
	for _, tag := range tags {
		if candidate.HasTag(tag) {
			return true
		}
	}
	return false
}
