// Package log provides structured logging for the scalarcrypto module. It
// wraps zerolog with module-scoped child loggers, mirroring the
// per-subsystem child-logger shape common in Ethereum clients, so that
// trieroot's recursive builder can emit trace-level diagnostics without
// taking a hard logging dependency on its callers.
package log

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog.Logger with module context.
type Logger struct {
	inner zerolog.Logger
}

// defaultLogger is the process-wide logger used by the package-level
// convenience functions.
var defaultLogger *Logger

func init() {
	defaultLogger = New(zerolog.InfoLevel)
}

// New creates a Logger that writes JSON to stderr at the given level.
func New(level zerolog.Level) *Logger {
	return &Logger{inner: zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()}
}

// NewWithWriter creates a Logger backed by the supplied writer. This is
// useful for testing or for writing to a custom destination.
func NewWithWriter(w zerolog.LevelWriter, level zerolog.Level) *Logger {
	return &Logger{inner: zerolog.New(w).Level(level).With().Timestamp().Logger()}
}

// SetDefault replaces the package-level default logger.
func SetDefault(l *Logger) {
	if l != nil {
		defaultLogger = l
	}
}

// Default returns the current package-level default logger.
func Default() *Logger {
	return defaultLogger
}

// Module returns a child logger with an additional "module" field. This
// is the primary way subsystems (secret, trieroot, rlptrie, ...) obtain
// their own contextual logger.
func (l *Logger) Module(name string) *Logger {
	return &Logger{inner: l.inner.With().Str("module", name).Logger()}
}

// With returns a child logger with additional key-value context. args
// must be an even number of (string key, value) pairs.
func (l *Logger) With(args ...any) *Logger {
	ctx := l.inner.With()
	ctx = applyFields(ctx, args)
	return &Logger{inner: ctx.Logger()}
}

func applyFields(ctx zerolog.Context, args []any) zerolog.Context {
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		ctx = ctx.Interface(key, args[i+1])
	}
	return ctx
}

func (l *Logger) event(e *zerolog.Event, msg string, args ...any) {
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		e = e.Interface(key, args[i+1])
	}
	e.Msg(msg)
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string, args ...any) { l.event(l.inner.Debug(), msg, args...) }

// Info logs at info level.
func (l *Logger) Info(msg string, args ...any) { l.event(l.inner.Info(), msg, args...) }

// Warn logs at warn level.
func (l *Logger) Warn(msg string, args ...any) { l.event(l.inner.Warn(), msg, args...) }

// Error logs at error level.
func (l *Logger) Error(msg string, args ...any) { l.event(l.inner.Error(), msg, args...) }

// ---------------------------------------------------------------------------
// Package-level convenience functions -- delegate to defaultLogger.
// ---------------------------------------------------------------------------

// Debug logs at debug level using the default logger.
func Debug(msg string, args ...any) { defaultLogger.Debug(msg, args...) }

// Info logs at info level using the default logger.
func Info(msg string, args ...any) { defaultLogger.Info(msg, args...) }

// Warn logs at warn level using the default logger.
func Warn(msg string, args ...any) { defaultLogger.Warn(msg, args...) }

// Error logs at error level using the default logger.
func Error(msg string, args ...any) { defaultLogger.Error(msg, args...) }
