// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// The package offers configurable time formatting, caller information,
// and output formats that are applied at logger creation time using
// functional options.
//
// # Basic Usage
//
//	logger := log.Make(os.Stdout)
//	logger.Info("session started", slog.Int("variables", 3))
//	logger.Error("evaluation failed", slog.Any("error", err))
//
// # Configuration
//
// Configure the logger using functional options:
//
//	logger := log.Make(os.Stdout,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// # Adding Attributes
//
// Attributes can be added to the logger to be included in all subsequent
// log messages using the [Logger.With] method:
//
//	logger = logger.With(slog.String("component", "repl"))
//	logger.Info("history loaded") // includes component=repl
//
// # Context-Aware Logging
//
// The package provides context-aware logging functions and methods.
// Each logging level has both a context-aware and context-unaware variant:
//
//	logger.TraceContext(ctx, "scope enter", slog.Int("depth", 1))
//	logger.Info("message without context") // uses DefaultContextProvider
//
// Context-unaware functions log with the context returned by
// [DefaultContextProvider], which is [context.TODO] by default. Either way the
// recorded source is the caller of the logging function.
//
// # Supported Levels
//
// The package supports five log levels: [LevelTrace], [LevelDebug],
// [LevelInfo], [LevelWarn], and [LevelError]. Messages below the configured
// level are discarded. The evaluator emits its per-statement and per-scope
// events at [LevelTrace].
//
// # Time Formatting
//
// Time formatting is configurable using [WithTimeLayout]. You can
// specify any named layout supported by the [time] package (such as
// "RFC3339" or "RFC3339Nano") or provide a custom layout string.
//
// # Output Formats
//
// Two output formats are supported: [FormatJSON] (default) and
// [FormatText]. Format is set at logger creation time using functional
// options.
package log
