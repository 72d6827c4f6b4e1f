package log

import (
	"bytes"
	"encoding/json"
	"runtime"
	"testing"
)

// sourceLine decodes the source line of a JSON record.
func sourceLine(t *testing.T, data []byte) (string, int) {
	t.Helper()

	var rec struct {
		Source struct {
			File string `json:"file"`
			Line int    `json:"line"`
		} `json:"source"`
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		t.Fatalf("record is not JSON: %v\n%s", err, data)
	}

	return rec.Source.File, rec.Source.Line
}

func TestLogger_CallerIsCallSite(t *testing.T) {
	original := defaultLog
	defer func() { defaultLog = original }()

	var buf bytes.Buffer

	logger := Make(&buf,
		WithFormat(FormatJSON),
		WithLevel(LevelTrace),
		WithCaller(true),
		WithPretty(false),
	)
	defaultLog = logger

	calls := []struct {
		name string
		fn   func()
	}{
		{"method", func() { logger.Info("m") }},
		{"method context", func() { logger.TraceContext(t.Context(), "mc") }},
		{"package", func() { Warn("p") }},
		{"package context", func() { DebugContext(t.Context(), "pc") }},
	}

	for _, c := range calls {
		t.Run(c.name, func(t *testing.T) {
			buf.Reset()

			_, file, _, _ := runtime.Caller(0)

			c.fn()

			got, line := sourceLine(t, buf.Bytes())
			if got != file {
				t.Errorf("source file = %q, want %q", got, file)
			}

			if line == 0 {
				t.Error("source line missing")
			}
		})
	}
}
