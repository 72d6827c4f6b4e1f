package log

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

// stripColor removes the ANSI escapes written by the pretty handlers.
func stripColor(s string) string {
	for _, c := range []string{
		colorReset, colorGray, colorRed, colorGreen,
		colorYellow, colorBlue, colorMagenta, colorCyan,
	} {
		s = strings.ReplaceAll(s, c, "")
	}

	return s
}

type positioned struct{ line, col int }

func (p positioned) LogValue() slog.Value {
	return slog.GroupValue(slog.Int("line", p.line), slog.Int("column", p.col))
}

func TestPrettyText_AttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatText), WithPretty(true), WithTimeLayout("none"))
	logger = logger.With(slog.String("session", "s1"))

	logger.Logger.WithGroup("scope").Info("enter",
		slog.Int("depth", 2),
		slog.Any("pos", positioned{3, 7}),
		slog.Any("error", errors.New("boom")),
	)

	got := stripColor(buf.String())
	for _, want := range []string{
		"level=info",
		"msg=enter",
		"session=s1",
		"scope.depth=2",
		"scope.pos.line=3",
		"scope.pos.column=7",
		"scope.error=boom",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}

	if strings.Contains(got, "time=") {
		t.Errorf("time layout \"none\" still wrote a time:\n%s", got)
	}
}

func TestPrettyJSON_TraceLevel(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf,
		WithFormat(FormatJSON),
		WithPretty(true),
		WithLevel(LevelTrace),
		WithTimeLayout("none"),
	)
	logger.Trace("statement complete", slog.Bool("ok", true), slog.Any("none", nil))

	got := stripColor(buf.String())
	for _, want := range []string{"level: trace", "msg: statement complete", "ok: true", "none: null"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}

	if !strings.HasPrefix(got, "{\n") || !strings.HasSuffix(got, "\n}\n") {
		t.Errorf("output is not a braced block:\n%s", got)
	}
}
