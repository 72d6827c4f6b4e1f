package lang

import (
	"log/slog"

	"github.com/ardnew/lleval/lang/fault"
	"github.com/ardnew/lleval/lang/token"
)

func (a *Analyzer) execute(e token.Execution) error {
	if e.Operator != nil {
		return a.operate(e.Operator)
	}

	invariant(e.Runner != nil, "execution slot without operator or runner")

	return a.call(e.Runner)
}

// operate pops the operator's arguments and its delimiter token, then pushes
// the result. An assignment also writes the result to the current scope.
func (a *Analyzer) operate(op token.Operator) error {
	args := a.popArgs(op.Arity())
	tok := a.ops.pop()

	_, assigns := op.(token.Assigner)

	for i, arg := range args {
		if assigns && i == 0 {
			continue
		}

		if err := requireBound(arg); err != nil {
			return err
		}
	}

	v, err := op.Execute(args)
	if err != nil {
		return fault.At(err, tok.Pos)
	}

	if assigns {
		if target, ok := args[0].(*token.Variable); ok {
			a.scope().Set(target.Name, v)
		}
	}

	a.eval.push(v)

	return nil
}

// call invokes the innermost pending function with every value pushed since
// its name was matched.
func (a *Analyzer) call(r token.FunctionRunner) error {
	tok := a.funcs.pop()
	start := a.argStart.pop()

	fn, err := r.Bind(tok.Text)
	if err != nil {
		return fault.At(err, tok.Pos)
	}

	args := a.popArgs(a.eval.len() - start)

	for _, arg := range args {
		if err := requireBound(arg); err != nil {
			return err
		}
	}

	v, err := fn.Execute(args)
	if err != nil {
		return fault.At(err, tok.Pos)
	}

	a.eval.push(v)

	return nil
}

// popArgs pops n values so that the deepest becomes args[0].
func (a *Analyzer) popArgs(n int) []token.Valuable {
	args := make([]token.Valuable, n)
	for i := n - 1; i >= 0; i-- {
		args[i] = a.eval.pop()
	}

	return args
}

func requireBound(v token.Valuable) error {
	if _, ok := v.Resolve(); ok {
		return nil
	}

	return notInitialized(v)
}

func notInitialized(v token.Valuable) error {
	tv, ok := v.(*token.Variable)
	if !ok {
		return fault.ErrVariableNotInitialized
	}

	return fault.ErrVariableNotInitialized.Wrapf(tv.Name).
		WithPosition(tv.Pos).
		With(slog.String("variable", tv.Name))
}
