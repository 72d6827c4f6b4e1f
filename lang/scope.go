package lang

import "github.com/ardnew/lleval/lang/token"

// Scope is one frame of the variable scope chain. Lookups fall back to the
// parent frame; assignments always write to the receiving frame.
//
// A frame entered under a false condition is ineffective: when it is popped
// its assignments are dropped and the evaluation stack is cut back to mark.
type Scope struct {
	parent    *Scope
	effective bool
	vars      Table
	mark      int
}

func newRootScope(vars Table) *Scope {
	if vars == nil {
		vars = Table{}
	}

	return &Scope{effective: true, vars: vars}
}

// derive returns a child frame with the given effectiveness and rollback
// mark.
func (s *Scope) derive(effective bool, mark int) *Scope {
	return &Scope{
		parent:    s,
		effective: effective,
		vars:      Table{},
		mark:      mark,
	}
}

// Lookup resolves name through the scope chain.
func (s *Scope) Lookup(name string) (token.Value, bool) {
	for f := s; f != nil; f = f.parent {
		if v, ok := f.vars[name]; ok {
			return v, true
		}
	}

	return token.Value{}, false
}

// Set binds name in this frame.
func (s *Scope) Set(name string, v token.Value) { s.vars[name] = v }

// Effective reports whether this frame's assignments survive its exit.
func (s *Scope) Effective() bool { return s.effective }

// Depth returns the number of frames above the root.
func (s *Scope) Depth() int {
	n := 0
	for f := s.parent; f != nil; f = f.parent {
		n++
	}

	return n
}

// merge copies this frame's locals into its parent.
func (s *Scope) merge() {
	invariant(s.parent != nil, "merge of root scope")

	for k, v := range s.vars {
		s.parent.vars[k] = v
	}
}
