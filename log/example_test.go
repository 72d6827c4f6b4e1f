package log_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/lleval/log"
)

func Example_basic() {
	logger := log.Make(os.Stdout)
	logger.Info("session started", slog.Int("variables", 2))
}

func Example_configuration() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelTrace),
		log.WithTimeLayout("ms"),
		log.WithCaller(true))

	logger.Trace("scope enter", slog.Int("depth", 1), slog.Bool("effective", true))
}

func Example_plainText() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatText),
		log.WithPretty(false),
		log.WithTimeLayout("none"))

	logger.Warn("history unavailable", slog.String("path", "/tmp/history"))
	// Output:
	// level=WARN msg="history unavailable" path=/tmp/history
}

func Example_withAttributes() {
	logger := log.Make(os.Stdout).With(slog.String("component", "repl"))

	logger.Info("history loaded", slog.Int("entries", 12))
	logger.Debug("filtered at the default level")
}

func Example_withContext() {
	ctx := context.Background()

	logger := log.Make(os.Stdout, log.WithLevel(log.LevelDebug))
	logger.DebugContext(ctx, "statement complete", slog.Int("statement", 3))
}
