package content

import (
	"context"
	"fmt"
	"sync"
	"testing/fstest"
	"time"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

type logEntry struct {
	level string
	msg   string
	args  []any
}

// recordingLogger captures entries from every goroutine of a corpus build.
type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func newRecordingLogger() *recordingLogger {
	return &recordingLogger{}
}

func (r *recordingLogger) record(level, msg string, args []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, logEntry{level: level, msg: msg, args: args})
}

func (r *recordingLogger) Trace(msg string, args ...any) { r.record("trace", msg, args) }
func (r *recordingLogger) Debug(msg string, args ...any) { r.record("debug", msg, args) }
func (r *recordingLogger) Info(msg string, args ...any)  { r.record("info", msg, args) }
func (r *recordingLogger) Warn(msg string, args ...any)  { r.record("warn", msg, args) }
func (r *recordingLogger) Error(msg string, args ...any) { r.record("error", msg, args) }
func (r *recordingLogger) Fatal(msg string, args ...any) { r.record("fatal", msg, args) }

func (r *recordingLogger) WithFields(map[string]any) interfaces.Logger   { return r }
func (r *recordingLogger) WithContext(context.Context) interfaces.Logger { return r }

func (r *recordingLogger) count(level, msg string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.entries {
		if e.level == level && (msg == "" || e.msg == msg) {
			n++
		}
	}
	return n
}

func (r *recordingLogger) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fmt.Sprint(r.entries)
}

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func file(body string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(body), ModTime: fixedNow.Add(-time.Hour)}
}
