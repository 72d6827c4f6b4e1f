package lang

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/lleval/lang/token"
)

func TestScope_LookupFallsBackToParent(t *testing.T) {
	root := newRootScope(Table{"a": token.Int(1), "b": token.Int(2)})
	child := root.derive(true, 0)
	child.Set("b", token.Int(20))

	tests := []struct {
		name string
		want token.Value
		ok   bool
	}{
		{"a", token.Int(1), true},
		{"b", token.Int(20), true},
		{"c", token.Value{}, false},
	}

	for _, tt := range tests {
		got, ok := child.Lookup(tt.name)
		if ok != tt.ok || !got.Equal(tt.want) {
			t.Errorf("Lookup(%s) = %v, %v; want %v, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}

	if v, _ := root.Lookup("b"); !v.Equal(token.Int(2)) {
		t.Errorf("root b = %v, want 2 before merge", v)
	}
}

func TestScope_Merge(t *testing.T) {
	root := newRootScope(nil)
	child := root.derive(true, 3)
	child.Set("x", token.String("set"))
	child.merge()

	want := Table{"x": token.String("set")}
	if diff := cmp.Diff(want, root.vars, valueComparer); diff != "" {
		t.Errorf("root after merge (-want +got):\n%s", diff)
	}

	if child.Depth() != 1 || root.Depth() != 0 {
		t.Errorf("depths = %d, %d; want 1, 0", child.Depth(), root.Depth())
	}

	if !root.Effective() || child.mark != 3 {
		t.Errorf("root effective = %v, child mark = %d", root.Effective(), child.mark)
	}
}

func TestScope_MergeRootPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("merge of root scope did not panic")
		}
	}()

	newRootScope(nil).merge()
}
