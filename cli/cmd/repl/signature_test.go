package repl

import (
	"strings"
	"testing"
)

func TestDetectFunctionCall(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		cursor     int
		wantName   string
		wantIndex  int
		wantInCall bool
	}{
		{"no call", "greeting", 8, "", 0, false},
		{"open paren", "max(", 4, "max", 0, true},
		{"first arg", "max(1", 5, "max", 0, true},
		{"second arg", "max(1,", 6, "max", 1, true},
		{"second arg with value", "max(1, 2", 8, "max", 1, true},
		{"space before paren", "max (1, 2", 9, "max", 1, true},
		{"closed call", "max(1, 2)", 9, "", 0, false},
		{"nested inner", "max(1, min(2", 12, "min", 0, true},
		{"nested outer after inner", "max(min(1, 2), ", 15, "max", 1, true},
		{"grouping paren", "(1 + 2", 6, "", 0, false},
		{"grouping inside call", "max((1, ", 8, "max", 0, true},
		{"if condition", "if (x > ", 8, "", 0, false},
		{"call inside if", "if (max(1, ", 11, "max", 1, true},
		{"cursor before call", "max(1, 2", 2, "", 0, false},
		{"assignment rhs", "y = abs(", 8, "abs", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectFunctionCall(tt.input, tt.cursor)
			if got.name != tt.wantName || got.argIndex != tt.wantIndex || got.inCall != tt.wantInCall {
				t.Errorf("detectFunctionCall(%q, %d) = %+v, want {name:%s argIndex:%d inCall:%v}",
					tt.input, tt.cursor, got, tt.wantName, tt.wantIndex, tt.wantInCall)
			}
		})
	}
}

func TestCountArgs(t *testing.T) {
	tests := []struct {
		list string
		want int
	}{
		{"", 0},
		{"1", 0},
		{"1, 2", 1},
		{"1, f(2, 3), ", 2},
		{"(1, 2", 0},
	}

	for _, tt := range tests {
		if got := countArgs(tt.list); got != tt.want {
			t.Errorf("countArgs(%q) = %d, want %d", tt.list, got, tt.want)
		}
	}
}

func TestRenderSignatureHint(t *testing.T) {
	tests := []struct {
		name    string
		fn      string
		params  []string
		current int
		want    string
	}{
		{"no params", "now", nil, 0, "now()"},
		{"two params", "max", []string{"int", "int"}, 1, "max(int, int)"},
		{"variadic", "pathprefix", []string{"...path"}, 3, "pathprefix(...path)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderSignatureHint(tt.fn, tt.params, tt.current)
			if !strings.Contains(got, tt.fn) {
				t.Errorf("renderSignatureHint() = %q, missing name %q", got, tt.fn)
			}

			for _, p := range tt.params {
				if !strings.Contains(got, p) {
					t.Errorf("renderSignatureHint() = %q, missing param %q", got, p)
				}
			}
		})
	}
}
