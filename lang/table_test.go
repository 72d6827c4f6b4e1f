package lang

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/lleval/lang/token"
)

func TestReadTable(t *testing.T) {
	input := "a: 1\nb: 2.5\nc: hi\nd: true\ne: -3\n"

	got, err := ReadTable(t.Context(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadTable() error = %v", err)
	}

	want := Table{
		"a": token.Int(1),
		"b": token.Float(2.5),
		"c": token.String("hi"),
		"d": token.Bool(true),
		"e": token.Int(-3),
	}
	if diff := cmp.Diff(want, got, valueComparer); diff != "" {
		t.Errorf("ReadTable() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadTable_JSON(t *testing.T) {
	got, err := ReadTable(t.Context(), strings.NewReader(`{"name": "x", "n": 4}`))
	if err != nil {
		t.Fatalf("ReadTable() error = %v", err)
	}

	want := Table{"name": token.String("x"), "n": token.Int(4)}
	if diff := cmp.Diff(want, got, valueComparer); diff != "" {
		t.Errorf("ReadTable() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadTable_Errors(t *testing.T) {
	_, err := ReadTable(t.Context(), strings.NewReader("a:\n  nested: 1\n"))
	if !errors.Is(err, ErrInvalidValueType) {
		t.Errorf("nested value error = %v, want invalid value type", err)
	}

	_, err = ReadTable(t.Context(), strings.NewReader("- just\n- a list\n"))
	if !errors.Is(err, ErrDecodeTable) {
		t.Errorf("list error = %v, want decode error", err)
	}
}

func TestTable_Clone(t *testing.T) {
	var nilTable Table

	c := nilTable.Clone()
	if c == nil || len(c) != 0 {
		t.Errorf("Clone() of nil = %v, want empty non-nil", c)
	}

	orig := Table{"a": token.Int(1)}
	c = orig.Clone()
	c["a"] = token.Int(2)

	if !orig["a"].Equal(token.Int(1)) {
		t.Error("Clone() shares storage with the original")
	}
}

func TestTable_Write(t *testing.T) {
	tbl := Table{"b": token.String("x"), "a": token.Int(1)}

	tests := []struct {
		format Format
		indent int
		want   string
	}{
		{FormatNative, 0, "a = 1;\nb = \"x\";\n"},
		{FormatJSON, 0, `{"a":1,"b":"x"}` + "\n"},
		{FormatYAML, 2, "a: 1\nb: x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			var buf bytes.Buffer

			if err := tbl.Write(t.Context(), &buf, tt.format, tt.indent); err != nil {
				t.Fatalf("Write() error = %v", err)
			}

			if diff := cmp.Diff(tt.want, buf.String()); diff != "" {
				t.Errorf("Write() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTable_NativeRoundTrip(t *testing.T) {
	tbl := Table{
		"f": token.Float(3),
		"i": token.Int(-7),
		"s": token.String("quote \" and\nnewline"),
		"t": token.Bool(false),
	}

	var buf bytes.Buffer
	if err := tbl.Format(t.Context(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	_, got, err := Eval(t.Context(), buf.String(), nil)
	if err != nil {
		t.Fatalf("Eval(%q) error = %v", buf.String(), err)
	}

	if diff := cmp.Diff(tbl, got, valueComparer); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFormat(t *testing.T) {
	for _, name := range Formats() {
		f, err := ParseFormat(strings.ToUpper(name))
		if err != nil || f.String() != name {
			t.Errorf("ParseFormat(%q) = %v, %v", name, f, err)
		}
	}

	if _, err := ParseFormat("xml"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("ParseFormat(xml) error = %v, want unknown format", err)
	}
}

func TestWriteValue(t *testing.T) {
	var buf bytes.Buffer

	if err := WriteValue(t.Context(), &buf, token.String("hi"), FormatNative); err != nil {
		t.Fatalf("WriteValue() error = %v", err)
	}

	if err := WriteValue(t.Context(), &buf, token.Int(3), FormatJSON); err != nil {
		t.Fatalf("WriteValue() error = %v", err)
	}

	if err := WriteValue(t.Context(), &buf, token.Value{}, FormatJSON); err != nil {
		t.Fatalf("WriteValue() error = %v", err)
	}

	if got, want := buf.String(), "\"hi\"\n3\n"; got != want {
		t.Errorf("WriteValue() output = %q, want %q", got, want)
	}
}
