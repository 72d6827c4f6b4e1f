package lang

import "fmt"

// stack is a LIFO used for the engine's working stacks. Popping or peeking an
// empty stack means the grammar and engine disagree about stack discipline,
// so it panics instead of returning an error.
type stack[T any] struct {
	name  string
	items []T
}

func newStack[T any](name string) *stack[T] {
	return &stack[T]{name: name}
}

func (s *stack[T]) push(v T) { s.items = append(s.items, v) }

func (s *stack[T]) pop() T {
	invariant(len(s.items) > 0, "pop from empty %s stack", s.name)

	n := len(s.items) - 1
	v := s.items[n]

	var zero T

	s.items[n] = zero
	s.items = s.items[:n]

	return v
}

func (s *stack[T]) peek() T {
	invariant(len(s.items) > 0, "peek at empty %s stack", s.name)

	return s.items[len(s.items)-1]
}

// top returns the last element and whether there is one.
func (s *stack[T]) top() (T, bool) {
	if len(s.items) == 0 {
		var zero T

		return zero, false
	}

	return s.items[len(s.items)-1], true
}

func (s *stack[T]) len() int { return len(s.items) }

// truncate discards everything above depth n.
func (s *stack[T]) truncate(n int) {
	invariant(n >= 0 && n <= len(s.items),
		"truncate %s stack of depth %d to %d", s.name, len(s.items), n)

	clear(s.items[n:])
	s.items = s.items[:n]
}

func (s *stack[T]) reset() { s.truncate(0) }

// invariant panics when an internal engine contract does not hold.
func invariant(cond bool, format string, args ...any) {
	if !cond {
		panic("lang: INVARIANT VIOLATION: " + fmt.Sprintf(format, args...))
	}
}
