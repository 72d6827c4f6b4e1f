package library

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ardnew/lleval/lang/fault"
	"github.com/ardnew/lleval/lang/token"
)

// Operator implements [token.Operator] over resolved argument values.
type Operator struct {
	symbol string
	arity  int
	eval   func(args []token.Value) (token.Value, error)
}

// Symbol returns the operator's source spelling.
func (o *Operator) Symbol() string { return o.symbol }

// Arity returns the number of operands.
func (o *Operator) Arity() int { return o.arity }

// Execute resolves args and applies the operator.
func (o *Operator) Execute(args []token.Valuable) (token.Value, error) {
	vals, err := resolveAll(o.symbol, o.arity, args)
	if err != nil {
		return token.Value{}, err
	}

	return o.eval(vals)
}

// String returns the operator symbol.
func (o *Operator) String() string { return o.symbol }

// assignment is the '=' operator. Its first operand is the target variable,
// which may be unbound.
type assignment struct{}

func (assignment) Symbol() string { return "=" }
func (assignment) Arity() int     { return 2 }
func (assignment) AssignsTarget() {}
func (assignment) String() string { return "=" }

func (assignment) Execute(args []token.Valuable) (token.Value, error) {
	if len(args) != 2 {
		return token.Value{}, arityError("=", 2, len(args))
	}

	if _, ok := args[0].(*token.Variable); !ok {
		return token.Value{}, fault.ErrArgumentsMismatch.
			Wrapf("left side of assignment is not a variable")
	}

	v, ok := args[1].Resolve()
	if !ok {
		return token.Value{}, unresolved(args[1])
	}

	return v, nil
}

// Operators of the bundled grammar.
var (
	Assign token.Assigner = assignment{}

	Or  = logical("||", func(a, b bool) bool { return a || b })
	And = logical("&&", func(a, b bool) bool { return a && b })

	Eq = &Operator{symbol: "==", arity: 2, eval: equality("==", true)}
	Ne = &Operator{symbol: "!=", arity: 2, eval: equality("!=", false)}

	Lt = ordering("<", func(c int) bool { return c < 0 })
	Le = ordering("<=", func(c int) bool { return c <= 0 })
	Gt = ordering(">", func(c int) bool { return c > 0 })
	Ge = ordering(">=", func(c int) bool { return c >= 0 })

	Add = &Operator{symbol: "+", arity: 2, eval: add}
	Sub = arithmetic("-",
		func(a, b int64) (int64, error) { return a - b, nil },
		func(a, b float64) (float64, error) { return a - b, nil })
	Mul = arithmetic("*",
		func(a, b int64) (int64, error) { return a * b, nil },
		func(a, b float64) (float64, error) { return a * b, nil })
	Div = arithmetic("/",
		func(a, b int64) (int64, error) {
			if b == 0 {
				return 0, divisionByZero("/")
			}

			return a / b, nil
		},
		func(a, b float64) (float64, error) {
			if b == 0 {
				return 0, divisionByZero("/")
			}

			return a / b, nil
		})
	Mod = &Operator{symbol: "%", arity: 2, eval: mod}

	Neg = &Operator{symbol: "-", arity: 1, eval: neg}
	Not = &Operator{symbol: "!", arity: 1, eval: not}
)

func resolveAll(sym string, arity int, args []token.Valuable) ([]token.Value, error) {
	if len(args) != arity {
		return nil, arityError(sym, arity, len(args))
	}

	vals := make([]token.Value, len(args))

	for i, a := range args {
		v, ok := a.Resolve()
		if !ok {
			return nil, unresolved(a)
		}

		vals[i] = v
	}

	return vals, nil
}

func logical(sym string, fn func(a, b bool) bool) *Operator {
	return &Operator{
		symbol: sym,
		arity:  2,
		eval: func(args []token.Value) (token.Value, error) {
			a, b := args[0], args[1]
			if a.DataType() != token.TypeBool || b.DataType() != token.TypeBool {
				return token.Value{}, operandError(sym, a, b)
			}

			return token.Bool(fn(a.Bool(), b.Bool())), nil
		},
	}
}

func equality(sym string, want bool) func([]token.Value) (token.Value, error) {
	return func(args []token.Value) (token.Value, error) {
		a, b := args[0], args[1]

		switch {
		case a.DataType().IsNumeric() && b.DataType().IsNumeric():
			c, _ := compare(a, b)

			return token.Bool((c == 0) == want), nil

		case a.DataType() == b.DataType():
			return token.Bool(a.Equal(b) == want), nil

		default:
			return token.Value{}, operandError(sym, a, b)
		}
	}
}

func ordering(sym string, test func(int) bool) *Operator {
	return &Operator{
		symbol: sym,
		arity:  2,
		eval: func(args []token.Value) (token.Value, error) {
			c, ok := compare(args[0], args[1])
			if !ok {
				return token.Value{}, operandError(sym, args[0], args[1])
			}

			return token.Bool(test(c)), nil
		},
	}
}

// compare orders two numbers (with INT/FLOAT promotion) or two strings.
func compare(a, b token.Value) (int, bool) {
	switch {
	case a.DataType() == token.TypeInt && b.DataType() == token.TypeInt:
		return cmpOrdered(a.Int(), b.Int()), true
	case a.DataType().IsNumeric() && b.DataType().IsNumeric():
		return cmpOrdered(a.Float(), b.Float()), true
	case a.DataType() == token.TypeString && b.DataType() == token.TypeString:
		return strings.Compare(a.Str(), b.Str()), true
	default:
		return 0, false
	}
}

func cmpOrdered[T int64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func add(args []token.Value) (token.Value, error) {
	a, b := args[0], args[1]

	if a.DataType() == token.TypeString || b.DataType() == token.TypeString {
		return token.String(text(a) + text(b)), nil
	}

	return arith("+", a, b,
		func(x, y int64) (int64, error) { return x + y, nil },
		func(x, y float64) (float64, error) { return x + y, nil })
}

func mod(args []token.Value) (token.Value, error) {
	a, b := args[0], args[1]
	if a.DataType() != token.TypeInt || b.DataType() != token.TypeInt {
		return token.Value{}, operandError("%", a, b)
	}

	if b.Int() == 0 {
		return token.Value{}, divisionByZero("%")
	}

	return token.Int(a.Int() % b.Int()), nil
}

func neg(args []token.Value) (token.Value, error) {
	switch a := args[0]; a.DataType() {
	case token.TypeInt:
		return token.Int(-a.Int()), nil
	case token.TypeFloat:
		return token.Float(-a.Float()), nil
	default:
		return token.Value{}, fault.ErrArgumentsMismatch.
			Wrapf(fmt.Sprintf("operator -: cannot negate %s", a.DataType())).
			With(slog.String("operator", "-"))
	}
}

func not(args []token.Value) (token.Value, error) {
	a := args[0]
	if a.DataType() != token.TypeBool {
		return token.Value{}, fault.ErrArgumentsMismatch.
			Wrapf(fmt.Sprintf("operator !: cannot negate %s", a.DataType())).
			With(slog.String("operator", "!"))
	}

	return token.Bool(!a.Bool()), nil
}

func arithmetic(
	sym string,
	ints func(a, b int64) (int64, error),
	floats func(a, b float64) (float64, error),
) *Operator {
	return &Operator{
		symbol: sym,
		arity:  2,
		eval: func(args []token.Value) (token.Value, error) {
			return arith(sym, args[0], args[1], ints, floats)
		},
	}
}

// arith applies ints when both operands are INT and floats when either is
// FLOAT.
func arith(
	sym string,
	a, b token.Value,
	ints func(a, b int64) (int64, error),
	floats func(a, b float64) (float64, error),
) (token.Value, error) {
	switch {
	case a.DataType() == token.TypeInt && b.DataType() == token.TypeInt:
		r, err := ints(a.Int(), b.Int())
		if err != nil {
			return token.Value{}, err
		}

		return token.Int(r), nil

	case a.DataType().IsNumeric() && b.DataType().IsNumeric():
		r, err := floats(a.Float(), b.Float())
		if err != nil {
			return token.Value{}, err
		}

		return token.Float(r), nil

	default:
		return token.Value{}, operandError(sym, a, b)
	}
}

// text renders a value for string concatenation.
func text(v token.Value) string {
	if v.DataType() == token.TypeString {
		return v.Str()
	}

	return v.String()
}

func operandError(sym string, a, b token.Value) error {
	return fault.ErrArgumentsMismatch.
		Wrapf(fmt.Sprintf("operator %s: cannot apply to %s and %s",
			sym, a.DataType(), b.DataType())).
		With(slog.String("operator", sym))
}

func arityError(name string, want, got int) error {
	return fault.ErrArgumentsMismatch.
		Wrapf(fmt.Sprintf("%s: want %d arguments, got %d", name, want, got)).
		With(slog.String("operator", name))
}

func divisionByZero(sym string) error {
	return fault.ErrArithmetic.Wrapf("division by zero").
		With(slog.String("operator", sym))
}

func unresolved(v token.Valuable) error {
	err := fault.ErrVariableNotInitialized
	if tv, ok := v.(*token.Variable); ok {
		return err.Wrapf(tv.Name).WithPosition(tv.Pos).
			With(slog.String("variable", tv.Name))
	}

	return err
}
