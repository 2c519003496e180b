package articles

import (
	"github.com/bobbyhiddn/Veinity.Hub/pkg/interfaces"
)

// Enricher annotates parsed metadata with derived fields: the relative path,
// a preview of the text and a display date.
type Enricher struct {
	previewer     *Previewer
	dates         *DateFormatter
	previewLength int
}

// NewEnricher builds an Enricher. A nil previewer disables previews and a nil
// formatter leaves dates raw.
func NewEnricher(previewer *Previewer, dates *DateFormatter, previewLength int) *Enricher {
	if previewLength <= 0 {
		previewLength = DefaultPreviewLength
	}
	return &Enricher{
		previewer:     previewer,
		dates:         dates,
		previewLength: previewLength,
	}
}

// Enrich returns a copy of meta with path, preview and date_display set.
func (e *Enricher) Enrich(meta interfaces.Metadata, path string, source []byte) interfaces.Metadata {
	out := meta.With(interfaces.MetaPath, path)
	if e == nil {
		return out
	}
	if e.previewer != nil {
		out[interfaces.MetaPreview] = e.previewer.Preview(string(source), e.previewLength)
	}
	if raw, ok := out.Value(interfaces.MetaDate); ok && e.dates != nil {
		out[interfaces.MetaDateDisplay] = e.dates.Format(raw)
	}
	return out
}
