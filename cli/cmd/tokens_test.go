package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/lleval/lang"
	"github.com/ardnew/lleval/lang/fault"
)

func TestTokens_Run(t *testing.T) {
	var buf bytes.Buffer

	tok := &Tokens{Statements: []string{"a = 1;"}, Format: lang.FormatJSON}
	if err := tok.Run(WithOutput(t.Context(), &buf)); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var views []struct {
		Text   string `json:"text"`
		Line   int    `json:"line"`
		Column int    `json:"column"`
	}
	if err := json.Unmarshal(buf.Bytes(), &views); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}

	texts := make([]string, len(views))
	for i, v := range views {
		texts[i] = v.Text
	}

	if diff := cmp.Diff([]string{"a", "=", "1", ";"}, texts); diff != "" {
		t.Errorf("token texts mismatch (-want +got):\n%s", diff)
	}

	if views[2].Line != 1 || views[2].Column != 5 {
		t.Errorf("position of %q = %d:%d, want 1:5", views[2].Text, views[2].Line, views[2].Column)
	}
}

func TestTokens_Run_Native(t *testing.T) {
	var buf bytes.Buffer

	tok := &Tokens{Statements: []string{"x;", "y;"}}
	if err := tok.Run(WithOutput(t.Context(), &buf)); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("Run() wrote %d lines, want 4:\n%s", len(lines), buf.String())
	}

	if !strings.HasPrefix(lines[2], "2:1\t") {
		t.Errorf("third line = %q, want position 2:1", lines[2])
	}
}

func TestTokens_Run_LexError(t *testing.T) {
	tok := &Tokens{Statements: []string{"a = 1 @ 2;"}}

	err := tok.Run(WithOutput(t.Context(), &bytes.Buffer{}))
	if !errors.Is(err, fault.ErrSyntax) {
		t.Errorf("Run() error = %v, want syntax error", err)
	}
}
