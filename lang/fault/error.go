// Package fault defines the error taxonomy reported by lexing, parsing and
// evaluation.
package fault

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/ardnew/lleval/lang/token"
)

// Kind enumerates the user-facing error categories.
type Kind int

const (
	// KindSyntax is an unexpected token or a prematurely ended statement.
	KindSyntax Kind = iota + 1
	// KindTypeMismatch is a value of the wrong type in a typed position.
	KindTypeMismatch
	// KindVariableNotInitialized is a read of a never-assigned variable.
	KindVariableNotInitialized
	// KindArgumentsMismatch is a wrong argument count or incompatible operand.
	KindArgumentsMismatch
	// KindArithmetic is a numeric failure such as division by zero.
	KindArithmetic
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindSyntax:
		return "SyntaxError"
	case KindTypeMismatch:
		return "TypeMismatch"
	case KindVariableNotInitialized:
		return "VariableNotInitialized"
	case KindArgumentsMismatch:
		return "ArgumentsMismatch"
	case KindArithmetic:
		return "ArithmeticError"
	default:
		return "Error"
	}
}

// Predefined errors (sentinel values). Use [errors.Is] to test the kind of
// any error derived from them.
var (
	ErrSyntax                 = New(KindSyntax, "syntax error")
	ErrNotTerminated          = New(KindSyntax, "statement not properly terminated")
	ErrUndefinedFunction      = New(KindSyntax, "undefined function")
	ErrTypeMismatch           = New(KindTypeMismatch, "type mismatch")
	ErrVariableNotInitialized = New(KindVariableNotInitialized, "variable not initialized")
	ErrArgumentsMismatch      = New(KindArgumentsMismatch, "arguments mismatch")
	ErrArithmetic             = New(KindArithmetic, "arithmetic error")
)

// Error is a categorized error with an optional source position and
// attributes for structured logging. It implements both error and
// slog.LogValuer.
type Error struct {
	kind  Kind
	msg   string
	err   error          // Wrapped error (for errors.Unwrap)
	pos   token.Position // Zero when unknown
	attrs []slog.Attr    // Attributes for structured logging
}

// New creates an Error of the given kind.
func New(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

// Kind returns the error category.
func (e *Error) Kind() Kind { return e.kind }

// Pos returns the source position, which is zero when unknown.
func (e *Error) Pos() token.Position { return e.pos }

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message from the fields that are set:
	//
	//   "<msg>: <err> (at line L, column C)"
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	s := strings.Join(part, ": ")

	if e.pos.IsValid() {
		s += " (at " + e.pos.String() + ")"
	}

	return s
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is an *Error of the same kind. Sentinels with
// a more specific message (for example [ErrNotTerminated]) also require the
// message to match.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.kind != e.kind {
		return false
	}

	return t.msg == e.msg || t.msg == sentinelMsg[t.kind]
}

var sentinelMsg = map[Kind]string{
	KindSyntax:                 ErrSyntax.msg,
	KindTypeMismatch:           ErrTypeMismatch.msg,
	KindVariableNotInitialized: ErrVariableNotInitialized.msg,
	KindArgumentsMismatch:      ErrArgumentsMismatch.msg,
	KindArithmetic:             ErrArithmetic.msg,
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+5)

	attrs = append(attrs, slog.String("kind", e.kind.String()))

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	if e.pos.IsValid() {
		attrs = append(attrs,
			slog.Int("line", e.pos.Line),
			slog.Int("column", e.pos.Column),
		)
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Attrs returns a copy of the structured attributes.
func (e *Error) Attrs() []slog.Attr {
	return append([]slog.Attr(nil), e.attrs...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	c := *e
	c.err = err

	return &c
}

// Wrapf wraps a new error carrying only the given detail text.
func (e *Error) Wrapf(detail string) *Error {
	return e.Wrap(errors.New(detail))
}

// WithPosition returns a copy of e located at pos.
func (e *Error) WithPosition(pos token.Position) *Error {
	c := *e
	c.pos = pos

	return &c
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	c := *e
	c.attrs = newAttrs

	return &c
}

// At annotates err with pos. An *Error keeps its kind and gains the position
// unless it already has one; any other error becomes an
// [ErrArgumentsMismatch] wrapping it.
func At(err error, pos token.Position) error {
	if err == nil {
		return nil
	}

	var fe *Error
	if errors.As(err, &fe) {
		if fe.pos.IsValid() {
			return fe
		}

		return fe.WithPosition(pos)
	}

	return ErrArgumentsMismatch.Wrap(err).WithPosition(pos)
}

// KindOf returns the kind of the first *Error in err's chain, or zero.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.kind
	}

	return 0
}
