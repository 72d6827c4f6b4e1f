// Package lang evaluates a small expression language with a single-pass,
// table-driven LL(1) parser that executes semantic actions while it derives.
//
// # Stacks
//
// An [Analyzer] never builds a parse tree. It drives seven working stacks:
//
//   - syntax: grammar symbols still to be derived
//   - evaluation: computed values and variable references
//   - operator: matched operator delimiters awaiting execution
//   - function: matched function names awaiting their call
//   - argument: evaluation depth at each pending function name
//   - scope: the chain of variable frames
//   - condition: the truth value of each enclosing if/else
//
// The first five are reset at each statement; scopes and conditions persist
// for the whole run.
//
// # Statements
//
// Each statement derives the grammar's start symbol. Terminals are matched
// against the lookahead; execution slots run an operator or function
// immediately; controller slots manage conditions and scopes. The value left
// on top of the evaluation stack becomes the statement's result, and the
// last result is the run's result.
//
// # Conditionals
//
// Both branches of an if/else are parsed and evaluated. A branch entered
// under a false condition runs in an ineffective [Scope]: on exit its
// assignments are dropped and the evaluation stack is cut back to where the
// branch began.
//
// # Example
//
//	s := lang.NewSession(nil)
//	v, err := s.Eval(ctx, `x = 5; if (x > 3) { y = x * 2; } else { y = 0; }`)
//	// v is 10 and s.Variables() holds x = 5 and y = 10.
//
// # Errors
//
// Parse and evaluation failures are *fault.Error values positioned at the
// offending token. Input and output failures use [Error].
package lang
