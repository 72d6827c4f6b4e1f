// Package library provides the operators and functions invoked by execution
// slots of the bundled grammar.
//
// Operators work on resolved [token.Value] operands. Integer and float
// operands mix freely: the result is INT only when every operand is INT.
// Strings concatenate with '+' and compare lexically. Failures are
// [fault.ErrArgumentsMismatch] for incompatible operands and
// [fault.ErrArithmetic] for division or modulo by zero; the caller annotates
// them with a source position.
//
// A [Runner] binds function names. It provides the native functions
//
//	typeof(x)                 the DataType name of x
//	env(name)                 the process environment variable, or ""
//	pathprefix(list, item...) list with items prepended, PATH-style
//
// and every expr-lang builtin, compiled on first use for each argument type
// signature.
package library
