package library

import (
	"reflect"

	"github.com/expr-lang/expr/builtin"
)

// nativeParams names the parameters of the bundled native functions.
var nativeParams = map[string][]string{
	"typeof":     {"value"},
	"env":        {"name"},
	"pathprefix": {"...path"},
}

// Signature returns the parameter names of the function bound to name. A
// leading "..." marks a variadic parameter. Functions registered with
// [WithFunc] report a single variadic "args" parameter.
func (r *Runner) Signature(name string) ([]string, bool) {
	if _, ok := r.native[name]; ok {
		if params, ok := nativeParams[name]; ok {
			return params, true
		}

		return []string{"...args"}, true
	}

	if !r.builtins {
		return nil, false
	}

	idx, ok := builtin.Index[name]
	if !ok {
		return nil, false
	}

	fn := builtin.Builtins[idx]
	if len(fn.Types) == 0 {
		return []string{"...args"}, true
	}

	return typeParams(fn.Types[0]), true
}

// typeParams describes the inputs of a function type by kind.
func typeParams(t reflect.Type) []string {
	if t.Kind() != reflect.Func {
		return []string{"...args"}
	}

	params := make([]string, t.NumIn())

	for i := range params {
		in := t.In(i)
		if t.IsVariadic() && i == len(params)-1 {
			params[i] = "..." + kindName(in.Elem())

			continue
		}

		params[i] = kindName(in)
	}

	return params
}

func kindName(t reflect.Type) string {
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "int"
	case reflect.Float32, reflect.Float64:
		return "float"
	case reflect.Bool:
		return "bool"
	case reflect.Pointer:
		return kindName(t.Elem())
	default:
		return "value"
	}
}
