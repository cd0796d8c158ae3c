// Package logging wraps log/slog with skilldex's attribute vocabulary and a
// lazily-built default logger.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"
)

// Re-exported slog levels so callers don't import both packages.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Options configures a logger built by New.
type Options struct {
	// Level is the minimum level emitted.
	Level slog.Level
	// Output receives log lines; nil means os.Stderr.
	Output io.Writer
	// JSON switches from the text handler to the JSON handler.
	JSON bool
	// AddSource annotates records with file:line of the call site.
	AddSource bool
}

// DefaultOptions is the CLI baseline: text to stderr at info level.
func DefaultOptions() Options {
	return Options{Level: LevelInfo, Output: os.Stderr}
}

// New builds a slog.Logger from opts.
func New(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	ho := &slog.HandlerOptions{Level: opts.Level, AddSource: opts.AddSource}
	if opts.JSON {
		return slog.New(slog.NewJSONHandler(out, ho))
	}
	return slog.New(slog.NewTextHandler(out, ho))
}

var (
	defaultLogger *slog.Logger
	defaultOnce   sync.Once
)

// Default returns the process-wide logger, building one from DefaultOptions
// on first use.
func Default() *slog.Logger {
	defaultOnce.Do(func() {
		defaultLogger = New(DefaultOptions())
	})
	return defaultLogger
}

// SetDefault replaces the process-wide logger and slog's own default. Safe to
// call before or after the first Default().
func SetDefault(logger *slog.Logger) {
	defaultOnce.Do(func() {})
	defaultLogger = logger
	slog.SetDefault(logger)
}

// With returns the default logger extended with args.
func With(args ...any) *slog.Logger {
	return Default().With(args...)
}

// Debug logs msg at debug level on the default logger.
func Debug(msg string, args ...any) { Default().Debug(msg, args...) }

// Info logs msg at info level on the default logger.
func Info(msg string, args ...any) { Default().Info(msg, args...) }

// Warn logs msg at warn level on the default logger.
func Warn(msg string, args ...any) { Default().Warn(msg, args...) }

// Error logs msg at error level on the default logger.
func Error(msg string, args ...any) { Default().Error(msg, args...) }

type loggerKey struct{}

// NewContext stashes logger in ctx for retrieval with FromContext.
func NewContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger stored by NewContext, or nil.
func FromContext(ctx context.Context) *slog.Logger {
	l, _ := ctx.Value(loggerKey{}).(*slog.Logger)
	return l
}

// WithContext returns the context's logger when present, otherwise the
// default logger.
func WithContext(ctx context.Context) *slog.Logger {
	if l := FromContext(ctx); l != nil {
		return l
	}
	return Default()
}

// Attribute keys shared across packages so log output stays greppable.
const (
	KeySkill     = "skill"
	KeyRule      = "rule"
	KeyKind      = "kind"
	KeyPath      = "path"
	KeyQuery     = "query"
	KeyOperation = "operation"
	KeyCount     = "count"
	KeyError     = "error"
	KeyDuration  = "duration"
)

// Skill tags a record with a skill name.
func Skill(name string) slog.Attr { return slog.String(KeySkill, name) }

// Rule tags a record with a lint rule id.
func Rule(id string) slog.Attr { return slog.String(KeyRule, id) }

// Kind tags a record with a document kind.
func Kind(k string) slog.Attr { return slog.String(KeyKind, k) }

// Path tags a record with a file path.
func Path(p string) slog.Attr { return slog.String(KeyPath, p) }

// Query tags a record with a routing phrase.
func Query(q string) slog.Attr { return slog.String(KeyQuery, q) }

// Operation tags a record with the operation name.
func Operation(op string) slog.Attr { return slog.String(KeyOperation, op) }

// Count tags a record with an item count.
func Count(n int) slog.Attr { return slog.Int(KeyCount, n) }

// Err tags a record with an error; a nil error yields an empty attr.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any(KeyError, err)
}

// Timer reports the elapsed time of an operation at debug level:
//
//	defer logging.Timer("lint")()
func Timer(operation string) func() {
	start := time.Now()
	return func() {
		Default().Debug("operation completed",
			Operation(operation),
			slog.Duration(KeyDuration, time.Since(start)),
		)
	}
}
