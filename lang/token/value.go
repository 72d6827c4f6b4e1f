package token

import (
	"math"
	"strconv"
	"strings"
)

// DataType tags the runtime type of a [Value].
type DataType int

const (
	// TypeInvalid is the zero DataType. It tags the zero [Value] and unresolved
	// variables.
	TypeInvalid DataType = iota

	// TypeInt represents a signed 64-bit integer.
	TypeInt

	// TypeFloat represents a 64-bit floating-point number.
	TypeFloat

	// TypeString represents a string.
	TypeString

	// TypeBool represents a boolean.
	TypeBool
)

// String returns the upper-case name of the data type.
func (t DataType) String() string {
	switch t {
	case TypeInt:
		return "INT"
	case TypeFloat:
		return "FLOAT"
	case TypeString:
		return "STRING"
	case TypeBool:
		return "BOOL"
	default:
		return "INVALID"
	}
}

// IsNumeric reports whether t is [TypeInt] or [TypeFloat].
func (t DataType) IsNumeric() bool {
	return t == TypeInt || t == TypeFloat
}

// Valuable is any entry of the evaluation stack: a computed [Value] or a
// [*Variable] that may or may not be bound.
type Valuable interface {
	// Resolve returns the runtime value. The second result is false only for
	// a variable never assigned in any reachable scope.
	Resolve() (Value, bool)

	// DataType returns the tag of the resolved value, or [TypeInvalid].
	DataType() DataType
}

// Value is an immutable runtime value.
type Value struct {
	typ DataType
	i   int64
	f   float64
	s   string
	b   bool
}

// Int returns an integer value.
func Int(i int64) Value { return Value{typ: TypeInt, i: i} }

// Float returns a floating-point value.
func Float(f float64) Value { return Value{typ: TypeFloat, f: f} }

// String returns a string value.
func String(s string) Value { return Value{typ: TypeString, s: s} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{typ: TypeBool, b: b} }

// Resolve implements [Valuable]. A Value is always resolved.
func (v Value) Resolve() (Value, bool) { return v, true }

// DataType implements [Valuable].
func (v Value) DataType() DataType { return v.typ }

// IsValid reports whether v was built by one of the constructors.
func (v Value) IsValid() bool { return v.typ != TypeInvalid }

// Int returns the integer payload. Floats are truncated.
func (v Value) Int() int64 {
	if v.typ == TypeFloat {
		return int64(v.f)
	}

	return v.i
}

// Float returns the numeric payload as a float64.
func (v Value) Float() float64 {
	if v.typ == TypeInt {
		return float64(v.i)
	}

	return v.f
}

// Str returns the string payload.
func (v Value) Str() string { return v.s }

// Bool returns the boolean payload.
func (v Value) Bool() bool { return v.b }

// Native returns the payload as a plain Go value: int64, float64, string,
// bool, or nil for the zero Value.
func (v Value) Native() any {
	switch v.typ {
	case TypeInt:
		return v.i
	case TypeFloat:
		return v.f
	case TypeString:
		return v.s
	case TypeBool:
		return v.b
	default:
		return nil
	}
}

// Equal reports whether v and w hold the same type and payload.
func (v Value) Equal(w Value) bool {
	if v.typ != w.typ {
		return false
	}

	switch v.typ {
	case TypeInt:
		return v.i == w.i
	case TypeFloat:
		return v.f == w.f || (math.IsNaN(v.f) && math.IsNaN(w.f))
	case TypeString:
		return v.s == w.s
	case TypeBool:
		return v.b == w.b
	default:
		return true
	}
}

// String formats the value the way it would be written in source, with
// strings quoted.
func (v Value) String() string {
	switch v.typ {
	case TypeInt:
		return strconv.FormatInt(v.i, 10)
	case TypeFloat:
		s := strconv.FormatFloat(v.f, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eIN") {
			s += ".0"
		}

		return s
	case TypeString:
		return strconv.Quote(v.s)
	case TypeBool:
		return strconv.FormatBool(v.b)
	default:
		return "<invalid>"
	}
}

// FromNative converts a plain Go value into a Value. It reports false for
// unsupported types.
func FromNative(x any) (Value, bool) {
	switch n := x.(type) {
	case Value:
		return n, n.IsValid()
	case int:
		return Int(int64(n)), true
	case int8:
		return Int(int64(n)), true
	case int16:
		return Int(int64(n)), true
	case int32:
		return Int(int64(n)), true
	case int64:
		return Int(n), true
	case uint:
		return Int(int64(n)), true
	case uint8:
		return Int(int64(n)), true
	case uint16:
		return Int(int64(n)), true
	case uint32:
		return Int(int64(n)), true
	case uint64:
		if n > math.MaxInt64 {
			return Float(float64(n)), true
		}

		return Int(int64(n)), true
	case float32:
		return Float(float64(n)), true
	case float64:
		return Float(n), true
	case string:
		return String(n), true
	case bool:
		return Bool(n), true
	default:
		return Value{}, false
	}
}

// Variable is the evaluation-stack entry pushed when a variable terminal is
// matched. The binding is captured at match time and never shared with the
// source token.
type Variable struct {
	Name  string
	Pos   Position
	value Value
	bound bool
}

// Bind returns a Variable for name at pos. The binding is set when ok is
// true.
func Bind(name string, pos Position, value Value, ok bool) *Variable {
	return &Variable{
		Name:  name,
		Pos:   pos,
		value: value,
		bound: ok && value.IsValid(),
	}
}

// Resolve implements [Valuable].
func (v *Variable) Resolve() (Value, bool) { return v.value, v.bound }

// DataType implements [Valuable].
func (v *Variable) DataType() DataType {
	if !v.bound {
		return TypeInvalid
	}

	return v.value.typ
}

// String returns the variable name.
func (v *Variable) String() string { return v.Name }
