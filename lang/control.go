package lang

import (
	"context"
	"log/slog"

	"github.com/ardnew/lleval/lang/fault"
	"github.com/ardnew/lleval/lang/token"
)

// control runs a condition or scope action.
func (a *Analyzer) control(ctx context.Context, action token.Control) error {
	switch action {
	case token.IfCondition:
		cond, err := condition(a.eval.pop(), a.operand)
		if err != nil {
			return err
		}

		a.conds.push(cond)

	case token.ElseCondition:
		a.conds.push(!a.conds.pop())

	case token.EndIf:
		a.conds.pop()

	case token.NewContext:
		s := a.scope().derive(a.conds.peek(), a.eval.len())
		a.scopes.push(s)

		a.logger.TraceContext(ctx, "scope enter",
			slog.Int("depth", s.Depth()),
			slog.Bool("effective", s.effective),
		)

	case token.EndContext:
		s := a.scopes.pop()
		invariant(s != a.root, "pop of root scope")

		if s.effective {
			s.merge()
		} else {
			a.eval.truncate(s.mark)
		}

		a.logger.TraceContext(ctx, "scope exit",
			slog.Int("depth", s.Depth()),
			slog.Bool("effective", s.effective),
			slog.Int("locals", len(s.vars)),
		)

	default:
		invariant(false, "unknown control action %v", action)
	}

	return nil
}

// condition resolves an if-condition to a boolean. A type mismatch is
// positioned at the variable itself, or else at pos.
func condition(v token.Valuable, pos token.Position) (bool, error) {
	val, ok := v.Resolve()
	if !ok {
		return false, notInitialized(v)
	}

	if val.DataType() != token.TypeBool {
		if tv, isVar := v.(*token.Variable); isVar {
			pos = tv.Pos
		}

		return false, fault.ErrTypeMismatch.
			Wrapf("condition is "+val.DataType().String()+", want BOOL").
			WithPosition(pos).
			With(slog.String("type", val.DataType().String()))
	}

	return val.Bool(), nil
}
