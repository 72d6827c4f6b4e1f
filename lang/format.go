package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/lleval/lang/token"
)

// Format selects an output encoding.
type Format int

const (
	// FormatNative writes source syntax that evaluates back to the same
	// values.
	FormatNative Format = iota
	// FormatJSON writes JSON.
	FormatJSON
	// FormatYAML writes YAML.
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatNative:
		return "native"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Formats returns the names accepted by [ParseFormat].
func Formats() []string {
	return []string{FormatNative.String(), FormatJSON.String(), FormatYAML.String()}
}

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	for _, f := range []Format{FormatNative, FormatJSON, FormatYAML} {
		if strings.EqualFold(s, f.String()) {
			return f, nil
		}
	}

	return 0, ErrUnknownFormat.Wrap(fmt.Errorf("%q", s))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(text []byte) error {
	parsed, err := ParseFormat(string(text))
	if err != nil {
		return err
	}

	*f = parsed

	return nil
}

// Write encodes t in format f.
func (t Table) Write(ctx context.Context, w io.Writer, f Format, indent int) error {
	switch f {
	case FormatNative:
		return t.Format(ctx, w)
	case FormatJSON:
		return writeJSON(w, t.Native(), indent)
	case FormatYAML:
		return writeYAML(ctx, w, t.mapSlice(), indent)
	default:
		return ErrUnknownFormat
	}
}

// Format writes t as assignment statements, one per line, in name order.
func (t Table) Format(_ context.Context, w io.Writer) error {
	for _, k := range t.Names() {
		if _, err := fmt.Fprintf(w, "%s = %s;\n", k, t[k]); err != nil {
			return err
		}
	}

	return nil
}

// WriteValue encodes a single result in format f. The zero Value writes
// nothing.
func WriteValue(ctx context.Context, w io.Writer, v token.Value, f Format) error {
	if !v.IsValid() {
		return nil
	}

	switch f {
	case FormatNative:
		_, err := fmt.Fprintln(w, v)

		return err
	case FormatJSON:
		return writeJSON(w, v.Native(), 0)
	case FormatYAML:
		return writeYAML(ctx, w, v.Native(), 0)
	default:
		return ErrUnknownFormat
	}
}

// tokenView is the encoded form of a lexed terminal.
type tokenView struct {
	Kind   string `json:"kind"            yaml:"kind"`
	Text   string `json:"text"            yaml:"text"`
	Type   string `json:"type,omitempty"  yaml:"type,omitempty"`
	Value  any    `json:"value,omitempty" yaml:"value,omitempty"`
	Line   int    `json:"line"            yaml:"line"`
	Column int    `json:"column"          yaml:"column"`
}

// WriteTokens encodes a token stream in format f. The native format writes
// one token per line.
func WriteTokens(
	ctx context.Context,
	w io.Writer,
	tokens []*token.Terminal,
	f Format,
	indent int,
) error {
	views := make([]tokenView, len(tokens))

	for i, tok := range tokens {
		views[i] = tokenView{
			Kind:   tok.Kind.String(),
			Text:   tok.Text,
			Line:   tok.Pos.Line,
			Column: tok.Pos.Column,
		}

		if tok.Kind == token.KindConst {
			views[i].Type = tok.Value.DataType().String()
			views[i].Value = tok.Value.Native()
		}
	}

	switch f {
	case FormatNative:
		for _, v := range views {
			if _, err := fmt.Fprintf(w, "%d:%d\t%-9s %s\n",
				v.Line, v.Column, v.Kind, v.Text); err != nil {
				return err
			}
		}

		return nil
	case FormatJSON:
		return writeJSON(w, views, indent)
	case FormatYAML:
		return writeYAML(ctx, w, views, indent)
	default:
		return ErrUnknownFormat
	}
}

func writeJSON(w io.Writer, v any, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(v, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(v)
	}

	if err != nil {
		return ErrEncodeOutput.Wrap(err)
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

func writeYAML(ctx context.Context, w io.Writer, v any, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, v, opts...)
	if err != nil {
		return ErrEncodeOutput.Wrap(err)
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}
