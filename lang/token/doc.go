// Package token defines the closed symbol model shared by the lexer, the
// grammar and the parser engine: terminals, nonterminals, execution slots
// and controller slots, plus the runtime [Value] type carried by constants
// and computed on the evaluation stack.
package token
