package log

import (
	"context"
	"log/slog"
	"os"
)

// DefaultContextProvider returns the default context used by context-unaware
// logging functions.
var DefaultContextProvider = context.TODO

// defaultLog is the Logger used by the package-level functions.
var defaultLog = Make(os.Stderr)

// Config updates the default logger with the given options.
func Config(opts ...Option) {
	defaultLog = defaultLog.Wrap(opts...)
}

// Default returns the default logger.
func Default() Logger { return defaultLog }

// TraceContext logs a message at Trace level using the default logger with the
// provided context.
func TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.logContext(ctx, callerSkip, LevelTrace, msg, attrs...)
}

// Trace logs a message at Trace level using the default logger.
func Trace(msg string, attrs ...slog.Attr) {
	defaultLog.logContext(DefaultContextProvider(), callerSkip, LevelTrace, msg, attrs...)
}

// DebugContext logs a message at Debug level using the default logger with the
// provided context.
func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.logContext(ctx, callerSkip, LevelDebug, msg, attrs...)
}

// Debug logs a message at Debug level using the default logger.
func Debug(msg string, attrs ...slog.Attr) {
	defaultLog.logContext(DefaultContextProvider(), callerSkip, LevelDebug, msg, attrs...)
}

// InfoContext logs a message at Info level using the default logger with the
// provided context.
func InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.logContext(ctx, callerSkip, LevelInfo, msg, attrs...)
}

// Info logs a message at Info level using the default logger.
func Info(msg string, attrs ...slog.Attr) {
	defaultLog.logContext(DefaultContextProvider(), callerSkip, LevelInfo, msg, attrs...)
}

// WarnContext logs a message at Warn level using the default logger with the
// provided context.
func WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.logContext(ctx, callerSkip, LevelWarn, msg, attrs...)
}

// Warn logs a message at Warn level using the default logger.
func Warn(msg string, attrs ...slog.Attr) {
	defaultLog.logContext(DefaultContextProvider(), callerSkip, LevelWarn, msg, attrs...)
}

// ErrorContext logs a message at Error level using the default logger with the
// provided context.
func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.logContext(ctx, callerSkip, LevelError, msg, attrs...)
}

// Error logs a message at Error level using the default logger.
func Error(msg string, attrs ...slog.Attr) {
	defaultLog.logContext(DefaultContextProvider(), callerSkip, LevelError, msg, attrs...)
}

// With returns a new [Logger] that includes the given attributes in each log
// message using the default logger.
func With(attrs ...slog.Attr) Logger {
	return defaultLog.With(attrs...)
}
