package grammar

import (
	"sync"

	"github.com/ardnew/lleval/lang/library"
	"github.com/ardnew/lleval/lang/token"
)

// Slot constructors for grammar productions.

// Const matches any literal.
func Const() *token.Terminal { return &token.Terminal{Kind: token.KindConst} }

// Var matches any variable name.
func Var() *token.Terminal { return &token.Terminal{Kind: token.KindVariable} }

// Fn matches any function name.
func Fn() *token.Terminal { return &token.Terminal{Kind: token.KindFunction} }

// Delim matches the punctuation s.
func Delim(s string) *token.Terminal {
	return &token.Terminal{Kind: token.KindDelimiter, Text: s}
}

// Op matches the punctuation s and records the matched token for the
// execution slot that follows it.
func Op(s string) *token.Terminal {
	return &token.Terminal{Kind: token.KindDelimiter, Text: s, Operator: true}
}

// Key matches the keyword s.
func Key(s string) *token.Terminal {
	return &token.Terminal{Kind: token.KindKeyword, Text: s}
}

var (
	defaultOnce    sync.Once
	defaultGrammar *Grammar
)

// Default returns the bundled grammar with a [library.NewRunner] function
// runner. It is built once and shared.
func Default() *Grammar {
	defaultOnce.Do(func() {
		g, err := Standard(library.NewRunner())
		if err != nil {
			panic("grammar: bundled grammar: " + err.Error())
		}

		defaultGrammar = g
	})

	return defaultGrammar
}

// Standard builds the bundled expression grammar, binding function calls
// through r.
func Standard(r token.FunctionRunner) (*Grammar, error) {
	b := New()

	var (
		statement = b.NT("Statement")
		ifStmt    = b.NT("IfStmt")
		block     = b.NT("Block")
		stmts     = b.NT("Stmts")
		elseOpt   = b.NT("ElseOpt")
		elseBody  = b.NT("ElseBody")
		expr      = b.NT("Expr")
		assignOpt = b.NT("AssignOpt")
		or        = b.NT("Or")
		orTail    = b.NT("OrTail")
		and       = b.NT("And")
		andTail   = b.NT("AndTail")
		eq        = b.NT("Eq")
		eqTail    = b.NT("EqTail")
		rel       = b.NT("Rel")
		relTail   = b.NT("RelTail")
		add       = b.NT("Add")
		addTail   = b.NT("AddTail")
		mul       = b.NT("Mul")
		mulTail   = b.NT("MulTail")
		unary     = b.NT("Unary")
		primary   = b.NT("Primary")
		args      = b.NT("Args")
		argTail   = b.NT("ArgTail")
	)

	ctl := token.Ctl
	exec := token.Exec

	// Statements and conditional blocks.
	b.Rule(statement, ifStmt).
		Rule(statement, expr, Delim(";")).
		Rule(statement, Delim(";"))

	b.Rule(ifStmt, Key("if"), Delim("("), expr, Delim(")"),
		ctl(token.IfCondition), block, elseOpt, ctl(token.EndIf))

	b.Rule(block, Delim("{"), ctl(token.NewContext), stmts,
		ctl(token.EndContext), Delim("}"))

	b.Rule(stmts, statement, stmts).
		Rule(stmts)

	b.Rule(elseOpt, Key("else"), ctl(token.ElseCondition), elseBody).
		Rule(elseOpt)

	b.Rule(elseBody, block).
		Rule(elseBody, ctl(token.NewContext), ifStmt, ctl(token.EndContext))

	// Expressions, lowest precedence first.
	b.Rule(expr, or, assignOpt)

	b.Rule(assignOpt, Op("="), expr, exec(library.Assign)).
		Rule(assignOpt)

	binary := func(head, tail, operand *token.Nonterminal, ops map[string]token.Operator, order ...string) {
		b.Rule(head, operand, tail)

		for _, sym := range order {
			b.Rule(tail, Op(sym), operand, exec(ops[sym]), tail)
		}

		b.Rule(tail)
	}

	binary(or, orTail, and, map[string]token.Operator{"||": library.Or}, "||")
	binary(and, andTail, eq, map[string]token.Operator{"&&": library.And}, "&&")
	binary(eq, eqTail, rel, map[string]token.Operator{
		"==": library.Eq,
		"!=": library.Ne,
	}, "==", "!=")
	binary(rel, relTail, add, map[string]token.Operator{
		"<":  library.Lt,
		"<=": library.Le,
		">":  library.Gt,
		">=": library.Ge,
	}, "<", "<=", ">", ">=")
	binary(add, addTail, mul, map[string]token.Operator{
		"+": library.Add,
		"-": library.Sub,
	}, "+", "-")
	binary(mul, mulTail, unary, map[string]token.Operator{
		"*": library.Mul,
		"/": library.Div,
		"%": library.Mod,
	}, "*", "/", "%")

	b.Rule(unary, Op("-"), unary, exec(library.Neg)).
		Rule(unary, Op("!"), unary, exec(library.Not)).
		Rule(unary, primary)

	b.Rule(primary, Const()).
		Rule(primary, Var()).
		Rule(primary, Fn(), Delim("("), args, Delim(")"), token.Call(r)).
		Rule(primary, Delim("("), expr, Delim(")"))

	b.Rule(args, expr, argTail).
		Rule(args)

	b.Rule(argTail, Delim(","), expr, argTail).
		Rule(argTail)

	return b.Build(statement)
}
