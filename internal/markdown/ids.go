package markdown

import (
	"strconv"

	"github.com/goliatone/go-slug"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
)

const fallbackHeadingID = "section"

// slugIDs generates heading anchors through go-slug, suffixing repeats with
// -1, -2 and so on. One instance serves exactly one document.
type slugIDs struct {
	used map[string]struct{}
}

var _ parser.IDs = (*slugIDs)(nil)

func newSlugIDs() *slugIDs {
	return &slugIDs{used: map[string]struct{}{}}
}

func (s *slugIDs) Generate(value []byte, kind ast.NodeKind) []byte {
	base, err := slug.Normalize(string(value))
	if err != nil || base == "" {
		base = fallbackHeadingID
		if kind != ast.KindHeading {
			base = "id"
		}
	}

	id := base
	for i := 1; ; i++ {
		if _, taken := s.used[id]; !taken {
			break
		}
		id = base + "-" + strconv.Itoa(i)
	}
	s.used[id] = struct{}{}
	return []byte(id)
}

func (s *slugIDs) Put(value []byte) {
	s.used[string(value)] = struct{}{}
}
