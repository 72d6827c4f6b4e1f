package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ANSI color codes for pretty printing.
const (
	colorReset   = "\033[0m"
	colorGray    = "\033[90m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
)

// prettyBase holds the state shared by both pretty handlers: attributes
// added with WithAttrs are stored already qualified by the open groups.
type prettyBase struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	attrs  []slog.Attr
	groups []string
}

func newPrettyBase(w io.Writer, opts *slog.HandlerOptions) prettyBase {
	return prettyBase{opts: *opts, mu: &sync.Mutex{}, w: w}
}

func (b prettyBase) Enabled(_ context.Context, level slog.Level) bool {
	return level >= b.opts.Level.Level()
}

func (b prettyBase) withAttrs(attrs []slog.Attr) prettyBase {
	q := make([]slog.Attr, 0, len(b.attrs)+len(attrs))
	q = append(q, b.attrs...)

	for _, a := range attrs {
		q = append(q, b.qualify(a))
	}

	b.attrs = q

	return b
}

func (b prettyBase) withGroup(name string) prettyBase {
	if name == "" {
		return b
	}

	b.groups = append(b.groups[:len(b.groups):len(b.groups)], name)

	return b
}

func (b prettyBase) qualify(a slog.Attr) slog.Attr {
	if len(b.groups) > 0 {
		a.Key = strings.Join(b.groups, ".") + "." + a.Key
	}

	return a
}

// header returns the time, level, source and message fields of r, in order,
// with the configured time layout applied.
func (b prettyBase) header(r slog.Record) []slog.Attr {
	var out []slog.Attr

	if !r.Time.IsZero() {
		t := slog.Time(slog.TimeKey, r.Time)
		if b.opts.ReplaceAttr != nil {
			t = b.opts.ReplaceAttr(nil, t)
		}

		if t.Key != "" {
			out = append(out, t)
		}
	}

	out = append(out, slog.String(slog.LevelKey, Level(r.Level).String()))

	if b.opts.AddSource {
		if src := r.Source(); src != nil {
			out = append(out, slog.String(slog.SourceKey,
				src.File+":"+strconv.Itoa(src.Line)))
		}
	}

	return append(out, slog.String(slog.MessageKey, r.Message))
}

// fields flattens the stored and record attributes, resolving LogValuers and
// expanding groups into dotted keys.
func (b prettyBase) fields(r slog.Record) []slog.Attr {
	out := make([]slog.Attr, 0, len(b.attrs)+r.NumAttrs())

	for _, a := range b.attrs {
		out = flatten(out, "", a)
	}

	r.Attrs(func(a slog.Attr) bool {
		out = flatten(out, "", b.qualify(a))

		return true
	})

	return out
}

func flatten(out []slog.Attr, prefix string, a slog.Attr) []slog.Attr {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return out
	}

	key := a.Key
	if prefix != "" {
		key = prefix + "." + key
	}

	if a.Value.Kind() != slog.KindGroup {
		return append(out, slog.Attr{Key: key, Value: a.Value})
	}

	// Inline groups (empty key) splice their members into the parent.
	if a.Key == "" {
		key = prefix
	}

	for _, g := range a.Value.Group() {
		out = flatten(out, key, g)
	}

	return out
}

func (b prettyBase) write(buf *bytes.Buffer) error {
	buf.WriteByte('\n')

	b.mu.Lock()
	defer b.mu.Unlock()

	_, err := b.w.Write(buf.Bytes())

	return err
}

// levelColor returns the color of a rendered level name.
func levelColor(name string) string {
	switch name {
	case "error":
		return colorRed
	case "warn":
		return colorYellow
	case "info":
		return colorGreen
	default:
		return colorBlue
	}
}

// prettyTextHandler writes one colorized key=value line per record.
type prettyTextHandler struct{ prettyBase }

func newPrettyTextHandler(w io.Writer, opts *slog.HandlerOptions) *prettyTextHandler {
	return &prettyTextHandler{newPrettyBase(w, opts)}
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	for _, a := range h.header(r) {
		h.writeAttr(buf, a, a.Key == slog.LevelKey)
	}

	for _, a := range h.fields(r) {
		h.writeAttr(buf, a, false)
	}

	return h.write(buf)
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyTextHandler{h.withAttrs(attrs)}
}

func (h *prettyTextHandler) WithGroup(name string) slog.Handler {
	return &prettyTextHandler{h.withGroup(name)}
}

func (h *prettyTextHandler) writeAttr(buf *bytes.Buffer, a slog.Attr, level bool) {
	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}

	buf.WriteString(colorGray)
	buf.WriteString(a.Key)
	buf.WriteString(colorReset)
	buf.WriteByte('=')

	if level {
		buf.WriteString(levelColor(a.Value.String()))
		buf.WriteString(a.Value.String())
		buf.WriteString(colorReset)

		return
	}

	writeValue(buf, a.Value, false)
}

// prettyJSONHandler writes one indented, colorized JSON-like object per
// record.
type prettyJSONHandler struct{ prettyBase }

func newPrettyJSONHandler(w io.Writer, opts *slog.HandlerOptions) *prettyJSONHandler {
	return &prettyJSONHandler{newPrettyBase(w, opts)}
}

func (h *prettyJSONHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)
	buf.WriteString("{")

	attrs := append(h.header(r), h.fields(r)...)
	for i, a := range attrs {
		if i > 0 {
			buf.WriteByte(',')
		}

		buf.WriteString("\n  ")
		buf.WriteString(colorGray)
		buf.WriteString(a.Key)
		buf.WriteString(colorReset)
		buf.WriteString(": ")

		if a.Key == slog.LevelKey {
			buf.WriteString(levelColor(a.Value.String()))
			buf.WriteString(a.Value.String())
			buf.WriteString(colorReset)

			continue
		}

		writeValue(buf, a.Value, true)
	}

	buf.WriteString("\n}")

	return h.write(buf)
}

func (h *prettyJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyJSONHandler{h.withAttrs(attrs)}
}

func (h *prettyJSONHandler) WithGroup(name string) slog.Handler {
	return &prettyJSONHandler{h.withGroup(name)}
}

// writeValue colors v by kind. Strings are never quoted; nil prints as null
// in JSON mode.
func writeValue(buf *bytes.Buffer, v slog.Value, json bool) {
	color, text := colorCyan, ""

	switch v.Kind() {
	case slog.KindString:
		text = v.String()

	case slog.KindInt64:
		color, text = colorYellow, strconv.FormatInt(v.Int64(), 10)

	case slog.KindUint64:
		color, text = colorYellow, strconv.FormatUint(v.Uint64(), 10)

	case slog.KindFloat64:
		color, text = colorYellow, strconv.FormatFloat(v.Float64(), 'g', -1, 64)

	case slog.KindBool:
		color, text = colorRed, "false"
		if v.Bool() {
			color, text = colorGreen, "true"
		}

	case slog.KindDuration:
		color, text = colorMagenta, v.Duration().String()

	case slog.KindTime:
		color, text = colorBlue, v.Time().Format(time.RFC3339Nano)

	default:
		switch x := v.Any().(type) {
		case nil:
			if json {
				color, text = colorGray, "null"
			} else {
				color, text = colorGray, "<nil>"
			}
		case error:
			color, text = colorRed, x.Error()
		default:
			text = fmt.Sprint(x)
		}
	}

	buf.WriteString(color)
	buf.WriteString(text)
	buf.WriteString(colorReset)
}
