package console

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Level orders log severities.
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

// ParseLevel maps a configuration string onto a Level. Unknown values fall
// back to LevelInfo and report false.
func ParseLevel(value string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "trace":
		return LevelTrace, true
	case "debug":
		return LevelDebug, true
	case "info", "":
		return LevelInfo, true
	case "warn", "warning":
		return LevelWarn, true
	case "error":
		return LevelError, true
	case "fatal":
		return LevelFatal, true
	default:
		return LevelInfo, false
	}
}

// Options configures NewProvider. Zero values write INFO and above to stderr.
type Options struct {
	Writer io.Writer
	Clock  func() time.Time
	Level  Level
}

// Provider writes logfmt style lines: timestamp, level, message, then the
// merged fields sorted by key.
type Provider struct {
	out   io.Writer
	clock func() time.Time
	level Level
	mu    sync.Mutex
}

var _ interfaces.LoggerProvider = (*Provider)(nil)

// NewProvider builds a console provider.
func NewProvider(opts Options) *Provider {
	p := &Provider{out: opts.Writer, clock: opts.Clock, level: opts.Level}
	if p.out == nil {
		p.out = os.Stderr
	}
	if p.clock == nil {
		p.clock = time.Now
	}
	return p
}

// GetLogger returns a logger whose entries carry logger=name.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	return &entryLogger{p: p, fields: map[string]any{"logger": name}}
}

func (p *Provider) write(line string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	// best effort, a broken writer must not take the caller down
	_, _ = io.WriteString(p.out, line)
}

type entryLogger struct {
	p      *Provider
	fields map[string]any
	ctx    context.Context
}

var _ interfaces.FieldsLogger = (*entryLogger)(nil)

func (l *entryLogger) Trace(msg string, args ...any) { l.emit(LevelTrace, msg, args) }
func (l *entryLogger) Debug(msg string, args ...any) { l.emit(LevelDebug, msg, args) }
func (l *entryLogger) Info(msg string, args ...any)  { l.emit(LevelInfo, msg, args) }
func (l *entryLogger) Warn(msg string, args ...any)  { l.emit(LevelWarn, msg, args) }
func (l *entryLogger) Error(msg string, args ...any) { l.emit(LevelError, msg, args) }
func (l *entryLogger) Fatal(msg string, args ...any) { l.emit(LevelFatal, msg, args) }

func (l *entryLogger) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	next := maps.Clone(l.fields)
	if next == nil {
		next = make(map[string]any, len(fields))
	}
	maps.Copy(next, fields)
	return &entryLogger{p: l.p, fields: next, ctx: l.ctx}
}

func (l *entryLogger) WithContext(ctx context.Context) interfaces.Logger {
	return &entryLogger{p: l.p, fields: l.fields, ctx: ctx}
}

func (l *entryLogger) emit(level Level, msg string, args []any) {
	if l.p == nil || level < l.p.level {
		return
	}
	fields := make(map[string]any, len(l.fields)+len(args)/2)
	maps.Copy(fields, l.fields)
	maps.Copy(fields, logging.ContextFields(l.ctx))
	pairsInto(fields, args)
	l.p.write(render(l.p.clock().UTC(), level, msg, fields))
}

// pairsInto reads args as key/value pairs. A value without a usable string
// key is stored under arg_<index>.
func pairsInto(dst map[string]any, args []any) {
	for i := 0; i < len(args); i += 2 {
		if i+1 == len(args) {
			dst["arg_"+strconv.Itoa(i)] = args[i]
			return
		}
		key, ok := args[i].(string)
		if !ok || key == "" {
			key = "arg_" + strconv.Itoa(i+1)
		}
		dst[key] = args[i+1]
	}
}

func render(ts time.Time, level Level, msg string, fields map[string]any) string {
	var b strings.Builder
	b.WriteString(ts.Format(time.RFC3339Nano))
	b.WriteByte(' ')
	b.WriteString(level.String())
	b.WriteByte(' ')
	b.WriteString(msg)
	for _, key := range slices.Sorted(maps.Keys(fields)) {
		b.WriteByte(' ')
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(value(fields[key]))
	}
	b.WriteByte('\n')
	return b.String()
}

func value(v any) string {
	var s string
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		s = x
	case time.Time:
		s = x.UTC().Format(time.RFC3339Nano)
	case time.Duration:
		s = x.String()
	case error:
		s = x.Error()
	case fmt.Stringer:
		s = x.String()
	default:
		s = fmt.Sprint(x)
	}
	if s == "" {
		return `""`
	}
	if strings.ContainsFunc(s, func(r rune) bool { return r <= ' ' || r == '=' || r == '"' }) {
		return strconv.Quote(s)
	}
	return s
}
