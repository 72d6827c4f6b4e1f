package library

import (
	"fmt"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/ardnew/mung"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/builtin"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/lleval/lang/fault"
	"github.com/ardnew/lleval/lang/token"
)

// Func is a native function over resolved arguments.
type Func func(args []token.Value) (token.Value, error)

// Runner resolves function names for [token.Execution] call slots. Native
// functions take precedence over expr-lang builtins of the same name.
//
// A Runner is safe for concurrent use once constructed.
type Runner struct {
	native   map[string]Func
	lookup   func(string) (string, bool)
	builtins bool
	programs sync.Map // builtin call signature → *vm.Program
}

// Option configures a [Runner].
type Option func(*Runner)

// WithFunc registers a native function, replacing any existing one.
func WithFunc(name string, fn Func) Option {
	return func(r *Runner) { r.native[name] = fn }
}

// WithLookupEnv sets the environment lookup used by env(name).
func WithLookupEnv(lookup func(string) (string, bool)) Option {
	return func(r *Runner) { r.lookup = lookup }
}

// WithBuiltins enables or disables expr-lang builtin functions.
func WithBuiltins(enabled bool) Option {
	return func(r *Runner) { r.builtins = enabled }
}

// NewRunner returns a Runner with the native functions typeof, env and
// pathprefix, and the expr-lang builtins.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		native:   make(map[string]Func),
		lookup:   os.LookupEnv,
		builtins: true,
	}

	r.native["typeof"] = typeOf
	r.native["env"] = r.env
	r.native["pathprefix"] = pathPrefix

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Bind implements [token.FunctionRunner].
func (r *Runner) Bind(name string) (token.Function, error) {
	if fn, ok := r.native[name]; ok {
		return &callable{name: name, fn: fn}, nil
	}

	if r.builtins {
		if _, ok := builtin.Index[name]; ok {
			return &callable{name: name, fn: r.builtin(name)}, nil
		}
	}

	return nil, fault.ErrUndefinedFunction.Wrapf(name).
		With(slog.String("function", name))
}

// Names returns every bindable function name in sorted order.
func (r *Runner) Names() []string {
	names := slices.Collect(maps.Keys(r.native))

	if r.builtins {
		for name := range builtin.Index {
			if _, ok := r.native[name]; !ok {
				names = append(names, name)
			}
		}
	}

	slices.Sort(names)

	return names
}

// builtin returns a Func that evaluates the expr-lang builtin name. Programs
// are compiled once per argument type signature.
func (r *Runner) builtin(name string) Func {
	return func(args []token.Value) (token.Value, error) {
		env := make(map[string]any, len(args))
		params := make([]string, len(args))
		types := make([]string, len(args))

		for i, a := range args {
			key := "a" + strconv.Itoa(i)
			env[key] = exprNative(a)
			params[i] = key
			types[i] = a.DataType().String()
		}

		sig := name + "(" + strings.Join(types, ",") + ")"

		var program *vm.Program

		if cached, ok := r.programs.Load(sig); ok {
			program = cached.(*vm.Program)
		} else {
			source := name + "(" + strings.Join(params, ", ") + ")"

			compiled, err := expr.Compile(source, expr.Env(env))
			if err != nil {
				return token.Value{}, fault.ErrArgumentsMismatch.Wrap(err).
					With(slog.String("function", name))
			}

			r.programs.Store(sig, compiled)
			program = compiled
		}

		out, err := vm.Run(program, env)
		if err != nil {
			return token.Value{}, fault.ErrArgumentsMismatch.Wrap(err).
				With(slog.String("function", name))
		}

		v, ok := token.FromNative(out)
		if !ok {
			return token.Value{}, fault.ErrArgumentsMismatch.
				Wrapf(fmt.Sprintf("%s: unsupported result type %T", name, out)).
				With(slog.String("function", name))
		}

		return v, nil
	}
}

// exprNative converts a Value to the Go type expr-lang expects. Integers are
// passed as int so that builtins like abs and max keep integer results.
func exprNative(v token.Value) any {
	if v.DataType() == token.TypeInt {
		return int(v.Int())
	}

	return v.Native()
}

func (r *Runner) env(args []token.Value) (token.Value, error) {
	if err := expect("env", args, token.TypeString); err != nil {
		return token.Value{}, err
	}

	s, _ := r.lookup(args[0].Str())

	return token.String(s), nil
}

func typeOf(args []token.Value) (token.Value, error) {
	if len(args) != 1 {
		return token.Value{}, arityError("typeof", 1, len(args))
	}

	return token.String(args[0].DataType().String()), nil
}

// pathPrefix prepends items to a PATH-style list, removing duplicates.
func pathPrefix(args []token.Value) (token.Value, error) {
	if len(args) == 0 {
		return token.Value{}, arityError("pathprefix", 1, 0)
	}

	items := make([]string, len(args))

	for i, a := range args {
		if a.DataType() != token.TypeString {
			return token.Value{}, fault.ErrArgumentsMismatch.
				Wrapf(fmt.Sprintf("pathprefix: argument %d is %s, want STRING",
					i+1, a.DataType())).
				With(slog.String("function", "pathprefix"))
		}

		items[i] = a.Str()
	}

	s := mung.Make(
		mung.WithSubjectItems(items[0]),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(items[1:]...),
	).String()

	return token.String(s), nil
}

func expect(name string, args []token.Value, types ...token.DataType) error {
	if len(args) != len(types) {
		return arityError(name, len(types), len(args))
	}

	for i, t := range types {
		if args[i].DataType() != t {
			return fault.ErrArgumentsMismatch.
				Wrapf(fmt.Sprintf("%s: argument %d is %s, want %s",
					name, i+1, args[i].DataType(), t)).
				With(slog.String("function", name))
		}
	}

	return nil
}

// callable adapts a Func to [token.Function].
type callable struct {
	name string
	fn   Func
}

func (c *callable) Execute(args []token.Valuable) (token.Value, error) {
	vals := make([]token.Value, len(args))

	for i, a := range args {
		v, ok := a.Resolve()
		if !ok {
			return token.Value{}, unresolved(a)
		}

		vals[i] = v
	}

	return c.fn(vals)
}

func (c *callable) String() string { return c.name }
