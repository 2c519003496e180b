package interfaces

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/karlseguin/typed"
)

// Known metadata keys. Anything else is carried untouched in the record.
const (
	MetaTitle       = "title"
	MetaCategory    = "category"
	MetaTags        = "tags"
	MetaDate        = "date"
	MetaPath        = "path"
	MetaPreview     = "preview"
	MetaDateDisplay = "date_display"
)

var knownMetaKeys = []string{
	MetaTitle, MetaCategory, MetaTags, MetaDate, MetaPath, MetaPreview, MetaDateDisplay,
}

// Metadata is the open key/value record parsed from article frontmatter.
// Typed accessors cover the keys the hub relies on; Extra exposes the rest.
type Metadata map[string]any

// NewMetadata copies raw into a Metadata record. A nil map yields an empty record.
func NewMetadata(raw map[string]any) Metadata {
	out := make(Metadata, len(raw))
	for key, value := range raw {
		out[key] = value
	}
	return out
}

func (m Metadata) typed() typed.Typed {
	return typed.Typed(m)
}

// IsEmpty reports whether the record holds no keys at all.
func (m Metadata) IsEmpty() bool {
	return len(m) == 0
}

// String returns the value stored under key when it is a string, or the
// formatted scalar otherwise. Missing keys yield "".
func (m Metadata) String(key string) string {
	if value, ok := m.typed().StringIf(key); ok {
		return value
	}
	value, ok := m[key]
	if !ok || value == nil {
		return ""
	}
	switch v := value.(type) {
	case time.Time:
		return formatTimestamp(v)
	case int, int64, float64, bool:
		return fmt.Sprint(v)
	}
	return ""
}

// Value returns the raw value for key.
func (m Metadata) Value(key string) (any, bool) {
	value, ok := m[key]
	return value, ok
}

func (m Metadata) Title() string    { return m.String(MetaTitle) }
func (m Metadata) Category() string { return m.String(MetaCategory) }
func (m Metadata) Path() string     { return m.String(MetaPath) }
func (m Metadata) Preview() string  { return m.String(MetaPreview) }

// Date returns the frontmatter date as written. YAML timestamps are rendered
// back as 2006-01-02 (or RFC 3339 when they carry a clock component).
func (m Metadata) Date() string { return m.String(MetaDate) }

// DateDisplay returns the formatted date added by the enricher, falling back
// to the raw date.
func (m Metadata) DateDisplay() string {
	if display := m.String(MetaDateDisplay); display != "" {
		return display
	}
	return m.Date()
}

// Tags returns the tag set. Both YAML lists and a single scalar are accepted;
// blank entries are dropped.
func (m Metadata) Tags() []string {
	value, ok := m[MetaTags]
	if !ok || value == nil {
		return nil
	}
	var tags []string
	switch v := value.(type) {
	case []string:
		tags = append(tags, v...)
	case []any:
		for _, item := range v {
			if item == nil {
				continue
			}
			tags = append(tags, fmt.Sprint(item))
		}
	case string:
		tags = append(tags, v)
	default:
		tags = append(tags, fmt.Sprint(v))
	}
	out := tags[:0]
	for _, tag := range tags {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// HasTag reports whether tag is part of the record's tag set.
func (m Metadata) HasTag(tag string) bool {
	return slices.Contains(m.Tags(), tag)
}

// Extra returns every key outside the known set.
func (m Metadata) Extra() map[string]any {
	extra := map[string]any{}
	for key, value := range m {
		if slices.Contains(knownMetaKeys, key) {
			continue
		}
		extra[key] = value
	}
	return extra
}

// Clone returns a shallow copy so callers can annotate without touching the
// original record.
func (m Metadata) Clone() Metadata {
	return NewMetadata(m)
}

// With returns a copy of the record with key set to value.
func (m Metadata) With(key string, value any) Metadata {
	out := m.Clone()
	out[key] = value
	return out
}

func formatTimestamp(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format(time.RFC3339)
}

// Article is a single Markdown file from the article root.
type Article struct {
	// Path is slash separated and relative to the article root.
	Path     string
	Metadata Metadata
	Body     []byte
	Source   []byte
	ModTime  time.Time
}
