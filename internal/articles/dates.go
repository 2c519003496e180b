package articles

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/bobbyhiddn/Veinity.Hub/internal/logging"
	"github.com/bobbyhiddn/Veinity.Hub/pkg/interfaces"
)

// DefaultDateLayout renders dates as "March 14, 2024".
const DefaultDateLayout = "January 2, 2006"

// FormatDate parses value in any common layout and renders it with layout.
// Unparseable input is returned unchanged.
func FormatDate(value, layout string) string {
	formatted, err := formatDate(value, layout)
	if err != nil {
		return value
	}
	return formatted
}

func formatDate(value, layout string) (string, error) {
	if layout == "" {
		layout = DefaultDateLayout
	}
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return value, fmt.Errorf("empty date")
	}
	parsed, err := dateparse.ParseStrict(trimmed)
	if err != nil {
		return value, err
	}
	return parsed.Format(layout), nil
}

// DateFormatter is FormatDate with a fixed layout and debug logging of
// values it could not parse.
type DateFormatter struct {
	layout string
	logger interfaces.Logger
}

// NewDateFormatter builds a DateFormatter. Empty layouts use DefaultDateLayout.
func NewDateFormatter(layout string, logger interfaces.Logger) *DateFormatter {
	if layout == "" {
		layout = DefaultDateLayout
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	return &DateFormatter{layout: layout, logger: logger}
}

// Format accepts strings and the time.Time values YAML produces for
// unquoted dates.
func (f *DateFormatter) Format(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case time.Time:
		return v.Format(f.layout)
	case *time.Time:
		if v == nil {
			return ""
		}
		return v.Format(f.layout)
	case string:
		formatted, err := formatDate(v, f.layout)
		if err != nil {
			f.logger.Debug("articles.date.unparsed", "value", v, "error", err)
			return v
		}
		return formatted
	default:
		return fmt.Sprint(v)
	}
}
