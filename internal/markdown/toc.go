package markdown

import (
	"bytes"
	"html"
	"strings"

	"github.com/yuin/goldmark/ast"

	"github.com/bobbyhiddn/Veinity.Hub/pkg/interfaces"
)

// tocMarker is replaced by the rendered table of contents.
var tocMarker = []byte("<p>[TOC]</p>")

func collectHeadings(doc ast.Node, source []byte) []interfaces.Heading {
	var headings []interfaces.Heading
	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := node.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		entry := interfaces.Heading{
			Level: heading.Level,
			Text:  strings.TrimSpace(string(heading.Text(source))),
		}
		if raw, ok := heading.AttributeString("id"); ok {
			if id, ok := raw.([]byte); ok {
				entry.ID = string(id)
			}
		}
		headings = append(headings, entry)
		return ast.WalkSkipChildren, nil
	})
	return headings
}

// renderTOC writes a nested list for headings. Levels are relative to the
// shallowest heading so documents starting at h2 still get a flat top level.
func renderTOC(headings []interfaces.Heading) []byte {
	if len(headings) == 0 {
		return nil
	}
	base := headings[0].Level
	for _, h := range headings {
		if h.Level < base {
			base = h.Level
		}
	}

	var buf bytes.Buffer
	buf.WriteString(`<div class="toc">`)
	depth := 0
	for i, h := range headings {
		level := h.Level - base + 1
		switch {
		case level > depth:
			for ; depth < level; depth++ {
				buf.WriteString("<ul>")
				if depth+1 < level {
					buf.WriteString("<li>")
				}
			}
		case level < depth:
			for ; depth > level; depth-- {
				buf.WriteString("</li></ul>")
			}
			buf.WriteString("</li>")
		default:
			if i > 0 {
				buf.WriteString("</li>")
			}
		}
		buf.WriteString(`<li><a href="#`)
		buf.WriteString(html.EscapeString(h.ID))
		buf.WriteString(`">`)
		buf.WriteString(html.EscapeString(h.Text))
		buf.WriteString("</a>")
	}
	for ; depth > 0; depth-- {
		buf.WriteString("</li></ul>")
	}
	buf.WriteString("</div>")
	return buf.Bytes()
}
