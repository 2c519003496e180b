// Package markdown turns article files into metadata and HTML. It splits the
// YAML frontmatter block from the body, renders the body with goldmark and
// collects a table of contents from the heading outline.
package markdown
