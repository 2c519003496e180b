package articles

import (
	"context"
	"errors"
	"io/fs"
	"strings"

	"github.com/bobbyhiddn/Veinity.Hub/internal/markdown"
)

// Problems reported by Audit.
const (
	ProblemUnreadable         = "unreadable"
	ProblemMissingFrontMatter = "missing_frontmatter"
	ProblemInvalidFrontMatter = "invalid_frontmatter"
	ProblemMissingTitle       = "missing_title"
)

// AuditIssue is one file that will not show up correctly in listings.
type AuditIssue struct {
	Path    string `json:"path"`
	Problem string `json:"problem"`
	Detail  string `json:"detail,omitempty"`
}

// AuditReport summarises the article tree. Root level files are counted
// under the empty category.
type AuditReport struct {
	Total      int            `json:"total"`
	Listable   int            `json:"listable"`
	Categories map[string]int `json:"categories"`
	Issues     []AuditIssue   `json:"issues"`
}

// Audit walks every article, or only those under category when set, and
// reports per-category counts plus files with missing or broken frontmatter.
func (s *Store) Audit(ctx context.Context, category string) (AuditReport, error) {
	report := AuditReport{
		Categories: map[string]int{},
		Issues:     []AuditIssue{},
	}
	category = strings.Trim(strings.TrimSpace(category), "/")
	if category != "" && !fs.ValidPath(category) {
		return report, &NotFoundError{Resource: "category", Key: category}
	}

	s.walk(ctx, func(articlePath string) bool {
		group := categoryOf(articlePath)
		if category != "" && group != category {
			return true
		}
		report.Total++
		report.Categories[group]++

		source, err := fs.ReadFile(s.fsys, articlePath)
		if err != nil {
			report.Issues = append(report.Issues, AuditIssue{Path: articlePath, Problem: ProblemUnreadable, Detail: err.Error()})
			return true
		}
		meta, _, err := markdown.ParseFrontMatter(source)
		var parseErr *markdown.ParseError
		switch {
		case errors.As(err, &parseErr):
			report.Issues = append(report.Issues, AuditIssue{Path: articlePath, Problem: ProblemInvalidFrontMatter, Detail: parseErr.Err.Error()})
		case len(meta) == 0:
			report.Issues = append(report.Issues, AuditIssue{Path: articlePath, Problem: ProblemMissingFrontMatter})
		default:
			report.Listable++
			if title, _ := meta["title"].(string); strings.TrimSpace(title) == "" {
				report.Issues = append(report.Issues, AuditIssue{Path: articlePath, Problem: ProblemMissingTitle})
			}
		}
		return true
	})

	if err := ctx.Err(); err != nil {
		return report, err
	}
	if category != "" && report.Total == 0 {
		return report, &NotFoundError{Resource: "category", Key: category}
	}
	return report, nil
}

func categoryOf(articlePath string) string {
	if idx := strings.IndexByte(articlePath, '/'); idx > 0 {
		return articlePath[:idx]
	}
	return ""
}
