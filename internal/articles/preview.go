package articles

import (
	"strings"
	"unicode"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/bobbyhiddn/Veinity.Hub/internal/markdown"
)

const (
	DefaultPreviewLength    = 200
	DefaultPreviewCacheSize = 512
	previewEllipsis         = "..."
)

type previewKey struct {
	content string
	length  int
}

// Previewer builds short plain-text teasers from article text. Results are
// memoised in a fixed-size LRU; the cache is safe for concurrent use.
type Previewer struct {
	cache *lru.Cache[previewKey, string]
}

// NewPreviewer returns a Previewer holding at most size entries. Non-positive
// sizes use DefaultPreviewCacheSize.
func NewPreviewer(size int) (*Previewer, error) {
	if size <= 0 {
		size = DefaultPreviewCacheSize
	}
	cache, err := lru.New[previewKey, string](size)
	if err != nil {
		return nil, err
	}
	return &Previewer{cache: cache}, nil
}

// Preview strips a leading frontmatter block, removes '#' and '*', and
// truncates to length runes at a word boundary followed by "...". Text that
// already fits is returned without the ellipsis.
func (p *Previewer) Preview(content string, length int) string {
	if length <= 0 {
		length = DefaultPreviewLength
	}
	key := previewKey{content: content, length: length}
	if p != nil && p.cache != nil {
		if cached, ok := p.cache.Get(key); ok {
			return cached
		}
	}

	result := buildPreview(content, length)
	if p != nil && p.cache != nil {
		p.cache.Add(key, result)
	}
	return result
}

// Len reports how many previews are cached.
func (p *Previewer) Len() int {
	if p == nil || p.cache == nil {
		return 0
	}
	return p.cache.Len()
}

func buildPreview(content string, length int) string {
	_, body, _ := markdown.ParseFrontMatter([]byte(content))

	text := strings.NewReplacer("#", "", "*", "").Replace(string(body))
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) <= length {
		return text
	}

	cut := string([]rune(text)[:length])
	if idx := strings.LastIndexFunc(cut, unicode.IsSpace); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRightFunc(cut, unicode.IsSpace) + previewEllipsis
}
