package lexer

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/lleval/lang/fault"
	"github.com/ardnew/lleval/lang/token"
)

var valueComparer = cmp.Comparer(func(a, b token.Value) bool { return a.Equal(b) })

func at(line, col int) token.Position {
	return token.Position{Line: line, Column: col}
}

func TestScan_Statement(t *testing.T) {
	got, err := Scan("a = 1 + 2;")
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	want := []*token.Terminal{
		token.NewVariable("a", at(1, 1)),
		token.NewDelimiter("=", at(1, 3)),
		token.NewConst("1", token.Int(1), at(1, 5)),
		token.NewDelimiter("+", at(1, 7)),
		token.NewConst("2", token.Int(2), at(1, 9)),
		token.NewDelimiter(";", at(1, 10)),
	}

	if diff := cmp.Diff(want, got, valueComparer); diff != "" {
		t.Errorf("Scan() mismatch (-want +got):\n%s", diff)
	}
}

func TestScan_Literals(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  token.Value
	}{
		{name: "decimal", input: "42", want: token.Int(42)},
		{name: "hex", input: "0x2a", want: token.Int(42)},
		{name: "binary", input: "0b101", want: token.Int(5)},
		{name: "underscore", input: "1_000", want: token.Int(1000)},
		{name: "float", input: "3.5", want: token.Float(3.5)},
		{name: "leading dot", input: ".25", want: token.Float(0.25)},
		{name: "exponent", input: "1e3", want: token.Float(1000)},
		{name: "signed exponent", input: "25e-1", want: token.Float(2.5)},
		{name: "double quoted", input: `"hi\tthere"`, want: token.String("hi\tthere")},
		{name: "single quoted", input: `'say "x"'`, want: token.String(`say "x"`)},
		{name: "escaped quote", input: `'it\'s'`, want: token.String("it's")},
		{name: "escaped double quote", input: `'a\"b'`, want: token.String(`a"b`)},
		{name: "escaped backslash", input: `'a\\'`, want: token.String(`a\`)},
		{name: "zero", input: "0", want: token.Int(0)},
		{name: "leading zero", input: "08", want: token.Int(8)},
		{name: "octal prefix", input: "0o17", want: token.Int(15)},
		{name: "true", input: "true", want: token.Bool(true)},
		{name: "false", input: "false", want: token.Bool(false)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Scan(tt.input)
			if err != nil {
				t.Fatalf("Scan(%q) error = %v", tt.input, err)
			}

			if len(got) != 1 {
				t.Fatalf("Scan(%q) = %d tokens, want 1", tt.input, len(got))
			}

			if got[0].Kind != token.KindConst {
				t.Errorf("kind = %v, want const", got[0].Kind)
			}

			if !got[0].Value.Equal(tt.want) {
				t.Errorf("value = %v, want %v", got[0].Value, tt.want)
			}

			if got[0].Text != tt.input {
				t.Errorf("text = %q, want %q", got[0].Text, tt.input)
			}
		})
	}
}

func TestScan_Words(t *testing.T) {
	tests := []struct {
		input string
		want  []token.Kind
	}{
		{input: "if else", want: []token.Kind{token.KindKeyword, token.KindKeyword}},
		{input: "max(1)", want: []token.Kind{token.KindFunction, token.KindDelimiter, token.KindConst, token.KindDelimiter}},
		{input: "max (1)", want: []token.Kind{token.KindFunction, token.KindDelimiter, token.KindConst, token.KindDelimiter}},
		{input: "max + 1", want: []token.Kind{token.KindVariable, token.KindDelimiter, token.KindConst}},
		{input: "_x1", want: []token.Kind{token.KindVariable}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks, err := Scan(tt.input)
			if err != nil {
				t.Fatalf("Scan(%q) error = %v", tt.input, err)
			}

			got := make([]token.Kind, len(toks))
			for i, tok := range toks {
				got[i] = tok.Kind
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("kinds mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScan_Delimiters(t *testing.T) {
	toks, err := Scan("a<=b==c!=d&&e||!f>=g<h>i%j")
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	var got []string

	for _, tok := range toks {
		if tok.Kind == token.KindDelimiter {
			got = append(got, tok.Text)
		}
	}

	want := []string{"<=", "==", "!=", "&&", "||", "!", ">=", "<", ">", "%"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("delimiters mismatch (-want +got):\n%s", diff)
	}
}

func TestScan_CommentsAndPositions(t *testing.T) {
	input := "# leading comment\nx = 1; // trailing\n  y;"

	toks, err := Scan(input)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	got := make([]token.Position, len(toks))
	for i, tok := range toks {
		got[i] = tok.Pos
	}

	want := []token.Position{at(2, 1), at(2, 3), at(2, 5), at(2, 6), at(3, 3), at(3, 4)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}
}

func TestScan_RuneColumns(t *testing.T) {
	toks, err := Scan(`s = "héllo" + x;`)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	got := make([]token.Position, len(toks))
	for i, tok := range toks {
		got[i] = tok.Pos
	}

	want := []token.Position{at(1, 1), at(1, 3), at(1, 5), at(1, 13), at(1, 15), at(1, 16)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}
}

func TestScan_LargeInput(t *testing.T) {
	const n = 50_000

	toks, err := Scan(strings.Repeat("a=1+2;", n))
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if len(toks) != 6*n {
		t.Fatalf("Scan() = %d tokens, want %d", len(toks), 6*n)
	}

	if last := toks[len(toks)-1]; last.Pos != at(1, 6*n) {
		t.Errorf("last position = %v, want %v", last.Pos, at(1, 6*n))
	}
}

func BenchmarkScan(b *testing.B) {
	src := strings.Repeat("total = total + f(x, 2.5) * 3; // step\n", 1000)

	for b.Loop() {
		if _, err := Scan(src); err != nil {
			b.Fatal(err)
		}
	}
}

func TestScan_Empty(t *testing.T) {
	for _, input := range []string{"", "   \n\t", "// only a comment"} {
		toks, err := Scan(input)
		if err != nil {
			t.Errorf("Scan(%q) error = %v", input, err)
		}

		if len(toks) != 0 {
			t.Errorf("Scan(%q) = %d tokens, want 0", input, len(toks))
		}
	}
}

func TestScan_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		pos   token.Position
	}{
		{name: "unknown character", input: "a = @;", pos: at(1, 5)},
		{name: "unterminated string", input: "x = \"abc", pos: at(1, 5)},
		{name: "string across newline", input: "'ab\ncd'", pos: at(1, 1)},
		{name: "bad integer", input: "0xZZ", pos: at(1, 1)},
		{name: "single ampersand", input: "a & b", pos: at(1, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Scan(tt.input)
			if err == nil {
				t.Fatalf("Scan(%q) expected error", tt.input)
			}

			if !errors.Is(err, fault.ErrSyntax) {
				t.Errorf("error %v is not a syntax error", err)
			}

			var fe *fault.Error
			if !errors.As(err, &fe) {
				t.Fatalf("error %T is not *fault.Error", err)
			}

			if fe.Pos() != tt.pos {
				t.Errorf("position = %v, want %v", fe.Pos(), tt.pos)
			}
		})
	}
}

func TestKeywords(t *testing.T) {
	if diff := cmp.Diff([]string{"else", "if"}, Keywords()); diff != "" {
		t.Errorf("Keywords() mismatch (-want +got):\n%s", diff)
	}
}
