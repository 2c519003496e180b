package console

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bobbyhiddn/Veinity.Hub/internal/logging"
	"github.com/bobbyhiddn/Veinity.Hub/pkg/interfaces"
)

// Level is the severity attached to an entry.
type Level uint8

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelNames = [...]string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR", "FATAL"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "INFO"
}

// ParseLevel maps a configuration string onto a Level. "warning" is accepted
// as an alias for warn.
func ParseLevel(value string) (Level, bool) {
	name := strings.ToUpper(strings.TrimSpace(value))
	if name == "WARNING" {
		name = "WARN"
	}
	if idx := slices.Index(levelNames[:], name); idx >= 0 {
		return Level(idx), true
	}
	return LevelInfo, false
}

// Format selects how entries are laid out.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat maps a configuration string onto a Format. Empty means text.
func ParseFormat(value string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "text", "console":
		return FormatText, true
	case "json":
		return FormatJSON, true
	default:
		return FormatText, false
	}
}

// Options configures the provider. Zero values write text lines to stdout at
// DEBUG with time.Now.
type Options struct {
	Writer   io.Writer
	TimeFunc func() time.Time
	MinLevel *Level
	Format   Format
}

type sink struct {
	mu       sync.Mutex
	out      io.Writer
	now      func() time.Time
	minLevel Level
	encode   func(entry) string
}

type provider struct {
	sink *sink
}

// NewProvider builds a LoggerProvider that writes one line per entry.
func NewProvider(opts Options) interfaces.LoggerProvider {
	s := &sink{
		out:      opts.Writer,
		now:      opts.TimeFunc,
		minLevel: LevelDebug,
		encode:   encodeText,
	}
	if s.out == nil {
		s.out = os.Stdout
	}
	if s.now == nil {
		s.now = time.Now
	}
	if opts.MinLevel != nil {
		s.minLevel = *opts.MinLevel
	}
	if opts.Format == FormatJSON {
		s.encode = encodeJSON
	}
	return &provider{sink: s}
}

func (p *provider) GetLogger(name string) interfaces.Logger {
	return &consoleLogger{sink: p.sink, fields: map[string]any{"logger": name}}
}

type consoleLogger struct {
	sink   *sink
	fields map[string]any
	ctx    context.Context
}

var _ interfaces.FieldsLogger = (*consoleLogger)(nil)

func (l *consoleLogger) Trace(msg string, args ...any) { l.write(LevelTrace, msg, args) }
func (l *consoleLogger) Debug(msg string, args ...any) { l.write(LevelDebug, msg, args) }
func (l *consoleLogger) Info(msg string, args ...any)  { l.write(LevelInfo, msg, args) }
func (l *consoleLogger) Warn(msg string, args ...any)  { l.write(LevelWarn, msg, args) }
func (l *consoleLogger) Error(msg string, args ...any) { l.write(LevelError, msg, args) }
func (l *consoleLogger) Fatal(msg string, args ...any) { l.write(LevelFatal, msg, args) }

func (l *consoleLogger) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	next := maps.Clone(l.fields)
	if next == nil {
		next = make(map[string]any, len(fields))
	}
	maps.Copy(next, fields)
	return &consoleLogger{sink: l.sink, fields: next, ctx: l.ctx}
}

func (l *consoleLogger) WithContext(ctx context.Context) interfaces.Logger {
	return &consoleLogger{sink: l.sink, fields: l.fields, ctx: ctx}
}

type entry struct {
	at     time.Time
	level  Level
	msg    string
	fields map[string]any
}

func (l *consoleLogger) write(level Level, msg string, args []any) {
	if l.sink == nil || level < l.sink.minLevel {
		return
	}

	// persistent fields, then context fields, then call-site pairs
	fields := make(map[string]any, len(l.fields)+len(args)/2+1)
	maps.Copy(fields, l.fields)
	maps.Copy(fields, logging.ContextFields(l.ctx))
	collectPairs(fields, args)

	line := l.sink.encode(entry{at: l.sink.now().UTC(), level: level, msg: msg, fields: fields})

	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	_, _ = io.WriteString(l.sink.out, line+"\n")
}

// collectPairs reads args as key/value pairs. A non-string or empty key and a
// trailing unpaired value land under positional field_N keys.
func collectPairs(dst map[string]any, args []any) {
	for i := 0; i < len(args); i += 2 {
		pos := i / 2
		if i+1 == len(args) {
			dst[positional(pos)] = args[i]
			return
		}
		if key, ok := args[i].(string); ok && key != "" {
			dst[key] = args[i+1]
			continue
		}
		dst[positional(pos)] = args[i+1]
	}
}

func positional(n int) string {
	return "field_" + strconv.Itoa(n)
}

func encodeText(e entry) string {
	var b strings.Builder
	b.WriteString(e.at.Format(time.RFC3339Nano))
	b.WriteByte(' ')
	b.WriteString(e.level.String())
	b.WriteByte(' ')
	b.WriteString(e.msg)
	for _, key := range slices.Sorted(maps.Keys(e.fields)) {
		b.WriteByte(' ')
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(textValue(e.fields[key]))
	}
	return b.String()
}

func encodeJSON(e entry) string {
	doc := make(map[string]any, len(e.fields)+3)
	for key, value := range e.fields {
		doc[key] = jsonValue(value)
	}
	doc["time"] = e.at.Format(time.RFC3339Nano)
	doc["level"] = e.level.String()
	doc["msg"] = e.msg

	data, err := json.Marshal(doc)
	if err != nil {
		return encodeText(e)
	}
	return string(data)
}

func jsonValue(value any) any {
	switch v := value.(type) {
	case error:
		return v.Error()
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano)
	case fmt.Stringer:
		return v.String()
	default:
		return v
	}
}

func textValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return quote(v)
	case time.Time:
		return quote(v.UTC().Format(time.RFC3339Nano))
	case *time.Time:
		if v == nil {
			return "null"
		}
		return quote(v.UTC().Format(time.RFC3339Nano))
	case error:
		return quote(v.Error())
	case fmt.Stringer:
		return quote(v.String())
	case bool:
		return strconv.FormatBool(v)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(v)
	default:
		return quote(fmt.Sprint(v))
	}
}

func quote(value string) string {
	if value == "" {
		return `""`
	}
	if strings.IndexFunc(value, func(r rune) bool { return r <= ' ' || r == '=' || r == '"' }) >= 0 {
		return strconv.Quote(value)
	}
	return value
}
