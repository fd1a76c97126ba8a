// Package logging provides the diagnostic sink used by the geometry packages.
//
// A *Logger is passed explicitly to constructors through options. A nil
// *Logger is valid and discards everything, so diagnostics never change the
// outcome of the operation that produced them.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/KoT9R/UI-lab/errs"
)

// Logger wraps slog.Logger with geometry-specific helpers.
type Logger struct {
	*slog.Logger
}

// New creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func New(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSON creates a Logger that writes JSON records to w at the given level.
// If w is nil, stderr is used.
func NewJSON(w io.Writer, level slog.Level) *Logger {
	if w == nil {
		w = os.Stderr
	}
	return New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewText creates a Logger that writes human-readable records to w at the given level.
// If w is nil, stderr is used.
func NewText(w io.Writer, level slog.Level) *Logger {
	if w == nil {
		w = os.Stderr
	}
	return New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Noop creates a Logger that discards all log output.
func Noop() *Logger {
	return New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	}))
}

// With returns a Logger that adds args to every record.
func (l *Logger) With(args ...any) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{Logger: l.Logger.With(args...)}
}

// WithOp adds an op field to the logger.
func (l *Logger) WithOp(op string) *Logger {
	return l.With("op", op)
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return l.With("dimension", dim)
}

// Debug logs at debug level. It is a no-op on a nil Logger.
func (l *Logger) Debug(msg string, args ...any) {
	if l == nil || l.Logger == nil {
		return
	}
	l.Logger.Debug(msg, args...)
}

// Info logs at info level. It is a no-op on a nil Logger.
func (l *Logger) Info(msg string, args ...any) {
	if l == nil || l.Logger == nil {
		return
	}
	l.Logger.Info(msg, args...)
}

// Warn logs at warn level. It is a no-op on a nil Logger.
func (l *Logger) Warn(msg string, args ...any) {
	if l == nil || l.Logger == nil {
		return
	}
	l.Logger.Warn(msg, args...)
}

// Result records the outcome of op and returns err unchanged.
//
// Success is logged at debug level. Failures are logged at warn level with
// the error kind attached.
func (l *Logger) Result(op string, err error) error {
	if l == nil || l.Logger == nil {
		return err
	}

	ctx := context.Background()
	if err != nil {
		l.WarnContext(ctx, op+" failed",
			"kind", errs.KindOf(err).String(),
			"error", err,
		)
	} else {
		l.DebugContext(ctx, op+" completed")
	}
	return err
}

// LevelEnabled reports whether l emits records at level. It is false for a nil Logger.
func (l *Logger) LevelEnabled(level slog.Level) bool {
	if l == nil || l.Logger == nil {
		return false
	}
	return l.Logger.Enabled(context.Background(), level)
}

// ParseLevel maps "debug", "info", "warn" and "error" to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(s))
	return level, err
}
