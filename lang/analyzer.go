package lang

import (
	"context"
	"log/slog"

	"github.com/ardnew/lleval/lang/fault"
	"github.com/ardnew/lleval/lang/grammar"
	"github.com/ardnew/lleval/lang/token"
	"github.com/ardnew/lleval/log"
)

// Grammar supplies the start symbol of a predictive grammar. Nonterminals
// reached from it carry their own production tables.
type Grammar interface {
	Start() *token.Nonterminal
}

// Analyzer is a single-pass predictive parser that evaluates while it
// derives. Execution and controller slots in the grammar run as soon as they
// reach the top of the syntax stack; no parse tree is built.
//
// An Analyzer is not safe for concurrent use. Each Analyze call starts from a
// fresh root scope.
type Analyzer struct {
	grammar Grammar
	logger  log.Logger

	// Reset at the start of every statement.
	syntax   *stack[token.Symbol]
	eval     *stack[token.Valuable]
	ops      *stack[*token.Terminal]
	funcs    *stack[*token.Terminal]
	argStart *stack[int]

	// Live for a whole run.
	scopes *stack[*Scope]
	conds  *stack[bool]

	root   *Scope
	result token.Valuable

	// Position of the last matched operand or operator.
	operand token.Position
}

// NewAnalyzer returns an Analyzer for the bundled grammar unless
// [WithGrammar] selects another.
func NewAnalyzer(opts ...Option) *Analyzer {
	var o options

	applyOptions(&o, opts...)

	g := o.grammar
	if g == nil {
		if o.runner != nil {
			built, err := grammar.Standard(o.runner)
			invariant(err == nil, "bundled grammar: %v", err)

			g = built
		} else {
			g = grammar.Default()
		}
	}

	return &Analyzer{
		grammar:  g,
		logger:   o.logger,
		syntax:   newStack[token.Symbol]("syntax"),
		eval:     newStack[token.Valuable]("evaluation"),
		ops:      newStack[*token.Terminal]("operator"),
		funcs:    newStack[*token.Terminal]("function"),
		argStart: newStack[int]("argument"),
		scopes:   newStack[*Scope]("scope"),
		conds:    newStack[bool]("condition"),
		root:     newRootScope(nil),
	}
}

// Analyze parses and evaluates tokens statement by statement, starting from a
// copy of vars. It returns the value of the last statement that left one on
// the evaluation stack, which may be an unbound [*token.Variable], or nil when
// no statement produced a value.
//
// A failure aborts the run. Assignments already applied to the root scope, or
// to blocks still open whose chain to the root is effective, remain visible
// through [Analyzer.Variables].
func (a *Analyzer) Analyze(
	ctx context.Context,
	tokens []*token.Terminal,
	vars Table,
) (token.Valuable, error) {
	a.root = newRootScope(vars.Clone())
	a.result = nil

	a.scopes.reset()
	a.scopes.push(a.root)
	a.conds.reset()

	in := &input{tokens: tokens}

	a.logger.TraceContext(ctx, "analyze start",
		slog.Int("tokens", len(tokens)),
		slog.Int("variables", len(a.root.vars)),
	)

	for n := 1; !in.done(); n++ {
		if err := a.statement(ctx, in); err != nil {
			a.salvage()
			a.logger.TraceContext(ctx, "analyze failed",
				slog.Int("statement", n),
				slog.Any("error", err),
			)

			return nil, err
		}

		a.logger.TraceContext(ctx, "statement complete",
			slog.Int("statement", n),
			slog.Any("result", a.result),
		)
	}

	invariant(a.scopes.len() == 1, "scope stack depth %d after run", a.scopes.len())
	invariant(a.conds.len() == 0, "condition stack depth %d after run", a.conds.len())

	return a.result, nil
}

// Variables returns a copy of the root scope's table from the most recent
// run, including a run that failed.
func (a *Analyzer) Variables() Table { return a.root.vars.Clone() }

// Result returns the result of the most recent run.
func (a *Analyzer) Result() token.Valuable { return a.result }

// statement derives one start symbol. The lookahead that ends the statement
// is left unconsumed for the next one.
func (a *Analyzer) statement(ctx context.Context, in *input) error {
	a.syntax.reset()
	a.eval.reset()
	a.ops.reset()
	a.funcs.reset()
	a.argStart.reset()

	start := a.grammar.Start()
	first := in.next

	a.syntax.push(start)

	for a.syntax.len() > 0 {
		la := in.peek()

		switch sym := a.syntax.pop().(type) {
		case *token.Nonterminal:
			prod, ok := sym.Production(la)
			if !ok {
				return unexpected(la, sym.Name)
			}

			for i := len(prod) - 1; i >= 0; i-- {
				a.syntax.push(prod[i])
			}

		case *token.Terminal:
			if !sym.Matches(la) {
				return unexpected(la, sym.Class().String())
			}

			a.match(sym, la)
			in.advance()

		case token.Execution:
			if err := a.execute(sym); err != nil {
				return err
			}

		case token.Controller:
			if err := a.control(ctx, sym.Action); err != nil {
				return err
			}

		default:
			invariant(false, "unknown symbol %T", sym)
		}
	}

	// A statement that consumed nothing would be derived again forever.
	if in.next == first && !in.done() {
		return unexpected(in.peek(), start.Name)
	}

	if top, ok := a.eval.top(); ok {
		a.result = top
	}

	return nil
}

// salvage closes the scopes left open by a failed statement. Effective frames
// are merged down into the root up to the first ineffective one; that frame
// and everything above it are discarded.
func (a *Analyzer) salvage() {
	frames := a.scopes.items

	keep := len(frames)
	for i, s := range frames {
		if !s.effective {
			keep = i

			break
		}
	}

	for i := keep - 1; i > 0; i-- {
		frames[i].merge()
	}

	a.scopes.truncate(1)
	a.conds.reset()
}

// match applies the side effect of a matched terminal.
func (a *Analyzer) match(slot, tok *token.Terminal) {
	switch tok.Kind {
	case token.KindConst:
		a.eval.push(tok.Value)
		a.operand = tok.Pos

	case token.KindVariable:
		v, ok := a.scope().Lookup(tok.Text)
		a.eval.push(token.Bind(tok.Text, tok.Pos, v, ok))
		a.operand = tok.Pos

	case token.KindDelimiter:
		if slot.Operator {
			a.ops.push(tok)
			a.operand = tok.Pos
		}

	case token.KindFunction:
		a.funcs.push(tok)
		a.argStart.push(a.eval.len())
		a.operand = tok.Pos

	case token.KindKeyword, token.KindEnd:
	}
}

func (a *Analyzer) scope() *Scope { return a.scopes.peek() }

func unexpected(la *token.Terminal, expected string) error {
	if la.Kind == token.KindEnd {
		return fault.ErrNotTerminated.WithPosition(la.Pos).
			With(slog.String("expected", expected))
	}

	return fault.ErrSyntax.Wrapf("unexpected "+la.String()).
		WithPosition(la.Pos).
		With(slog.String("expected", expected))
}

// input is the token cursor. Once tokens run out the lookahead becomes an
// end-of-input terminal at the last token's position so that ε-productions
// and trailing actions can still be selected.
type input struct {
	tokens []*token.Terminal
	next   int
}

func (in *input) done() bool { return in.next >= len(in.tokens) }

func (in *input) peek() *token.Terminal {
	if in.next < len(in.tokens) {
		return in.tokens[in.next]
	}

	var pos token.Position
	if n := len(in.tokens); n > 0 {
		pos = in.tokens[n-1].Pos
	}

	return token.EndAt(pos)
}

func (in *input) advance() {
	if in.next < len(in.tokens) {
		in.next++
	}
}
