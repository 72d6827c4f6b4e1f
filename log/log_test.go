package log

import (
	"bufio"
	"bytes"
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"testing"
)

// records decodes one JSON object per line of data.
func records(t *testing.T, data []byte) []map[string]any {
	t.Helper()

	var out []map[string]any

	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		var rec map[string]any
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			t.Fatalf("line is not JSON: %v\n%s", err, sc.Bytes())
		}

		out = append(out, rec)
	}

	return out
}

func TestMake_Defaults(t *testing.T) {
	logger := Make(&bytes.Buffer{})

	if got := logger.Level(); got != LevelInfo {
		t.Errorf("Level() = %v, want info", got)
	}

	if got := logger.Format(); got != FormatJSON {
		t.Errorf("Format() = %v, want json", got)
	}

	if logger.caller {
		t.Error("caller enabled by default")
	}

	if !logger.pretty {
		t.Error("pretty disabled by default")
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name     string
		logFunc  func(Logger, string, ...slog.Attr)
		minLevel Level
		logged   bool
	}{
		{"trace at trace", Logger.Trace, LevelTrace, true},
		{"trace at debug", Logger.Trace, LevelDebug, false},
		{"debug at debug", Logger.Debug, LevelDebug, true},
		{"debug at info", Logger.Debug, LevelInfo, false},
		{"info at info", Logger.Info, LevelInfo, true},
		{"info at warn", Logger.Info, LevelWarn, false},
		{"warn at warn", Logger.Warn, LevelWarn, true},
		{"warn at error", Logger.Warn, LevelError, false},
		{"error at trace", Logger.Error, LevelTrace, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			tt.logFunc(Make(&buf, WithLevel(tt.minLevel)), "statement complete")

			if logged := buf.Len() > 0; logged != tt.logged {
				t.Errorf("logged = %v, want %v:\n%s", logged, tt.logged, buf.String())
			}
		})
	}
}

func TestLogger_PlainLevelNames(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelTrace), WithFormat(FormatJSON), WithPretty(false))

	logger.Trace("scope enter")
	logger.Debug("scope exit")
	logger.Info("session ready")
	logger.Warn("history unavailable")
	logger.Error("evaluation failed")

	var got []string
	for _, rec := range records(t, buf.Bytes()) {
		got = append(got, rec["level"].(string))
	}

	want := []string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("levels = %v, want %v", got, want)
	}
}

func TestLogger_PrettyLevelNames(t *testing.T) {
	for _, format := range []Format{FormatText, FormatJSON} {
		t.Run(format.String(), func(t *testing.T) {
			var buf bytes.Buffer

			Make(&buf, WithLevel(LevelTrace), WithFormat(format)).Trace("scope enter")

			got := stripColor(buf.String())
			if !strings.Contains(got, "trace") || strings.Contains(got, "DEBUG-4") {
				t.Errorf("trace level rendered wrong:\n%s", got)
			}
		})
	}
}

func TestLogger_WithCaller(t *testing.T) {
	for _, enable := range []bool{true, false} {
		var buf bytes.Buffer

		Make(&buf, WithCaller(enable), WithFormat(FormatJSON), WithPretty(false)).
			Info("session ready")

		recs := records(t, buf.Bytes())
		if _, ok := recs[0]["source"]; ok != enable {
			t.Errorf("WithCaller(%v): source present = %v", enable, ok)
		}
	}
}

func TestLogger_TimeLayout(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithTimeLayout("kitchen"), WithPretty(false)).Info("tick")
	Make(&buf, WithTimeLayout("none"), WithPretty(false)).Info("tock")

	recs := records(t, buf.Bytes())

	kitchen := regexp.MustCompile(`^\d{1,2}:\d{2}(AM|PM)$`)
	if ts, _ := recs[0]["time"].(string); !kitchen.MatchString(ts) {
		t.Errorf("time = %q, want kitchen layout", ts)
	}

	if _, ok := recs[1]["time"]; ok {
		t.Errorf("time present with layout none: %v", recs[1])
	}
}

func TestLogger_Wrap(t *testing.T) {
	var buf bytes.Buffer

	base := Make(&buf, WithLevel(LevelWarn), WithPretty(false))
	wrapped := base.Wrap(WithLevel(LevelDebug))

	if base.Level() != LevelWarn || wrapped.Level() != LevelDebug {
		t.Fatalf("levels = %v, %v, want warn, debug", base.Level(), wrapped.Level())
	}

	base.Debug("dropped")
	wrapped.Debug("kept")

	recs := records(t, buf.Bytes())
	if len(recs) != 1 || recs[0]["msg"] != "kept" {
		t.Errorf("records = %v, want only the wrapped debug record", recs)
	}
}

func TestLogger_With(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		var buf bytes.Buffer

		logger := Make(&buf, WithPretty(false)).With(slog.String("component", "repl"))
		logger.Info("history loaded", slog.Int("entries", 3))

		rec := records(t, buf.Bytes())[0]
		if rec["component"] != "repl" || rec["entries"] != float64(3) {
			t.Errorf("record = %v", rec)
		}
	})

	t.Run("pretty", func(t *testing.T) {
		var buf bytes.Buffer

		logger := Make(&buf, WithFormat(FormatText)).With(slog.String("component", "repl"))
		logger.Info("history loaded", slog.Int("entries", 3))

		got := stripColor(buf.String())
		for _, want := range []string{"component=repl", "entries=3", "msg=history loaded"} {
			if !strings.Contains(got, want) {
				t.Errorf("output missing %q:\n%s", want, got)
			}
		}
	})
}

func TestLogger_ZeroValue(t *testing.T) {
	var l Logger

	l.Trace("ignored")
	l.Info("ignored")
	l.ErrorContext(t.Context(), "ignored")

	if l.Level() != DefaultLevel || l.Format() != DefaultFormat {
		t.Errorf("zero Logger reports %v, %v", l.Level(), l.Format())
	}

	if l2 := l.With(slog.String("key", "value")); l2.Logger != nil {
		t.Error("With on a zero Logger returned a live logger")
	}
}

func TestLogger_Concurrent(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithPretty(false))

	var wg sync.WaitGroup
	for i := range 100 {
		wg.Go(func() {
			logger.Info("statement complete", slog.Int("statement", i))
		})
	}
	wg.Wait()

	if got := len(records(t, buf.Bytes())); got != 100 {
		t.Errorf("records = %d, want 100", got)
	}
}

func BenchmarkLogger_TraceDisabled(b *testing.B) {
	logger := Make(&bytes.Buffer{})

	for b.Loop() {
		logger.Trace("scope enter", slog.Int("depth", 1))
	}
}

func BenchmarkLogger_Info(b *testing.B) {
	var buf bytes.Buffer

	logger := Make(&buf, WithPretty(false))

	for b.Loop() {
		buf.Reset()
		logger.Info("statement complete", slog.Int("statement", 1))
	}
}
