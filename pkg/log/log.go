// Package log wraps log/slog for the parser: a small
// constructor, a no-op logger for library defaults, context plumbing,
// and a capturing handler so tests can assert on emitted entries.
package log

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"log/slog"
)

// Config selects the output, level, and encoding of a new logger.
type Config struct {
	// Out receives the log stream; stderr if nil.
	Out io.Writer

	Level slog.Level
	JSON  bool // true => JSON output, false => text
}

// NewLogger creates a configured *slog.Logger.
func NewLogger(cfg Config) *slog.Logger {
	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: cfg.Level}
	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	return slog.New(handler)
}

// nopHandler discards every record.
type nopHandler struct{}

func (n *nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (n *nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (n *nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return n }
func (n *nopHandler) WithGroup(string) slog.Handler             { return n }

var _ slog.Handler = (*nopHandler)(nil)

// NewNopLogger returns a logger that discards all log events. The
// parser uses it as the default so library callers pay nothing unless
// they install a real logger.
func NewNopLogger() *slog.Logger {
	return slog.New(&nopHandler{})
}

type ctxKeyType struct{}

var ctxKey ctxKeyType

// ContextWithLogger stores lg on ctx.
func ContextWithLogger(ctx context.Context, lg *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey, lg)
}

// FromContext returns the logger stored on ctx, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return slog.Default()
	}
	if lg, ok := ctx.Value(ctxKey).(*slog.Logger); ok && lg != nil {
		return lg
	}
	return slog.Default()
}

// LoggedEntry is one record captured by a TestHandler.
type LoggedEntry struct {
	Time  time.Time
	Level slog.Level
	Msg   string
	Attrs map[string]any
}

// testingT is the subset of *testing.T the test handler needs.
type testingT interface {
	Logf(format string, args ...any)
}

// TestHandler captures structured entries at or above Level for
// assertions.
type TestHandler struct {
	mu      sync.Mutex
	Entries []LoggedEntry
	Level   slog.Level
	T       testingT
}

func NewTestHandler(t testingT) *TestHandler {
	return &TestHandler{T: t, Level: slog.LevelDebug}
}

func (h *TestHandler) Enabled(_ context.Context, l slog.Level) bool { return l >= h.Level }

func (h *TestHandler) Handle(_ context.Context, r slog.Record) error {
	e := LoggedEntry{
		Time:  r.Time,
		Level: r.Level,
		Msg:   r.Message,
		Attrs: map[string]any{},
	}
	r.Attrs(func(a slog.Attr) bool {
		e.Attrs[a.Key] = a.Value.Any()
		return true
	})

	h.mu.Lock()
	h.Entries = append(h.Entries, e)
	h.mu.Unlock()

	if h.T != nil {
		h.T.Logf("log: %s %s %v", e.Level, e.Msg, e.Attrs)
	}
	return nil
}

func (h *TestHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *TestHandler) WithGroup(string) slog.Handler      { return h }

var _ slog.Handler = (*TestHandler)(nil)

// NewTestLogger returns a logger backed by a TestHandler capturing
// records at or above level, plus the handler itself for inspecting
// what was logged.
func NewTestLogger(t testingT, level slog.Level) (*slog.Logger, *TestHandler) {
	th := NewTestHandler(t)
	th.Level = level
	return slog.New(th), th
}

// FindEntries returns a copy of the captured entries matching pred.
func FindEntries(th *TestHandler, pred func(LoggedEntry) bool) []LoggedEntry {
	th.mu.Lock()
	entries := append([]LoggedEntry(nil), th.Entries...)
	th.mu.Unlock()

	out := make([]LoggedEntry, 0)
	for _, e := range entries {
		if pred(e) {
			out = append(out, e)
		}
	}
	return out
}
