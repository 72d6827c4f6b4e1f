package log

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// useDefault points the package logger at buf for the duration of t.
func useDefault(t *testing.T, buf *bytes.Buffer, opts ...Option) {
	t.Helper()

	original := defaultLog
	t.Cleanup(func() { defaultLog = original })

	Config(append([]Option{WithOutput(buf), WithPretty(false), WithFormat(FormatJSON)}, opts...)...)
}

func TestPackage_LogFunctions(t *testing.T) {
	var buf bytes.Buffer

	useDefault(t, &buf, WithLevel(LevelTrace))

	ctx := t.Context()

	Trace("t", slog.String("key", "value"))
	TraceContext(ctx, "tc")
	Debug("d")
	DebugContext(ctx, "dc")
	Info("i")
	InfoContext(ctx, "ic")
	Warn("w")
	WarnContext(ctx, "wc")
	Error("e")
	ErrorContext(ctx, "ec")

	type entry struct{ Level, Msg string }

	var got []entry
	for _, rec := range records(t, buf.Bytes()) {
		got = append(got, entry{rec["level"].(string), rec["msg"].(string)})
	}

	want := []entry{
		{"TRACE", "t"}, {"TRACE", "tc"},
		{"DEBUG", "d"}, {"DEBUG", "dc"},
		{"INFO", "i"}, {"INFO", "ic"},
		{"WARN", "w"}, {"WARN", "wc"},
		{"ERROR", "e"}, {"ERROR", "ec"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}

	if first := records(t, buf.Bytes())[0]; first["key"] != "value" {
		t.Errorf("attribute missing from %v", first)
	}
}

func TestPackage_Config(t *testing.T) {
	var buf bytes.Buffer

	useDefault(t, &buf, WithLevel(LevelWarn))

	if got := Default().Level(); got != LevelWarn {
		t.Errorf("Default().Level() = %v, want warn", got)
	}

	Info("dropped")
	With(slog.String("component", "cli")).Warn("kept")

	recs := records(t, buf.Bytes())
	if len(recs) != 1 || recs[0]["msg"] != "kept" || recs[0]["component"] != "cli" {
		t.Errorf("records = %v, want the single warn record with component", recs)
	}
}
