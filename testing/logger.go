package testing

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/arloliu/greenlight/types"
)

// Log levels recorded by TestLogger.
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// Entry is one record captured by TestLogger.
type Entry struct {
	Level  string
	Msg    string
	Fields []any
}

// Field returns the value logged under key, or nil.
func (e Entry) Field(key string) any {
	for i := 0; i+1 < len(e.Fields); i += 2 {
		if k, ok := e.Fields[i].(string); ok && k == key {
			return e.Fields[i+1]
		}
	}

	return nil
}

// TestLogger writes records through tb.Logf as "LEVEL msg key=value ..." and
// keeps them for assertions. It is safe for concurrent use, so it can be
// handed to a Responder whose handlers run on NATS goroutines.
type TestLogger struct {
	tb testing.TB

	mu      sync.Mutex
	entries []Entry
}

var _ types.Logger = (*TestLogger)(nil)

// NewTestLogger creates a logger bound to tb.
//
// Example:
//
//	logger := greentest.NewTestLogger(t)
//	alloc, _ := greenlight.NewAllocator(&cfg, greenlight.WithLogger(logger))
//	// ...
//	require.Len(t, logger.Entries(greentest.LevelWarn), 1)
func NewTestLogger(tb testing.TB) *TestLogger {
	return &TestLogger{tb: tb}
}

// Entries returns the records logged at level, or every record when level is empty.
func (l *TestLogger) Entries(level string) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	var result []Entry
	for _, e := range l.entries {
		if level == "" || e.Level == level {
			result = append(result, e)
		}
	}

	return result
}

func (l *TestLogger) Debug(msg string, keysAndValues ...any) {
	l.record(LevelDebug, msg, keysAndValues)
}

func (l *TestLogger) Info(msg string, keysAndValues ...any) {
	l.record(LevelInfo, msg, keysAndValues)
}

func (l *TestLogger) Warn(msg string, keysAndValues ...any) {
	l.record(LevelWarn, msg, keysAndValues)
}

func (l *TestLogger) Error(msg string, keysAndValues ...any) {
	l.record(LevelError, msg, keysAndValues)
}

// Fatal fails the test immediately.
func (l *TestLogger) Fatal(msg string, keysAndValues ...any) {
	l.tb.Helper()
	l.tb.Fatalf("FATAL %s", format(msg, keysAndValues))
}

func (l *TestLogger) record(level, msg string, keysAndValues []any) {
	l.mu.Lock()
	l.entries = append(l.entries, Entry{Level: level, Msg: msg, Fields: keysAndValues})
	l.mu.Unlock()

	l.tb.Logf("%s %s", level, format(msg, keysAndValues))
}

// format renders msg followed by key=value pairs; a trailing odd value is kept as-is.
func format(msg string, keysAndValues []any) string {
	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i < len(keysAndValues); i += 2 {
		b.WriteByte(' ')
		if i+1 == len(keysAndValues) {
			fmt.Fprintf(&b, "%v", keysAndValues[i])
			break
		}
		fmt.Fprintf(&b, "%v=%v", keysAndValues[i], keysAndValues[i+1])
	}

	return b.String()
}
