package lang

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/lleval/lang/token"
)

// Table maps variable names to values. It seeds and receives the root scope
// of an [Analyzer] run, which is how successive runs share variables.
type Table map[string]token.Value

// Clone returns a shallow copy of t. The clone of a nil Table is empty, not
// nil.
func (t Table) Clone() Table {
	c := make(Table, len(t))
	maps.Copy(c, t)

	return c
}

// Names returns the variable names in sorted order.
func (t Table) Names() []string {
	return slices.Sorted(maps.Keys(t))
}

// Native converts t to a map of plain Go values.
func (t Table) Native() map[string]any {
	m := make(map[string]any, len(t))
	for k, v := range t {
		m[k] = v.Native()
	}

	return m
}

// mapSlice returns t as an ordered YAML mapping.
func (t Table) mapSlice() yaml.MapSlice {
	ms := make(yaml.MapSlice, 0, len(t))
	for _, k := range t.Names() {
		ms = append(ms, yaml.MapItem{Key: k, Value: t[k].Native()})
	}

	return ms
}

// TableFromNative converts a map of plain Go values. Values must be integers,
// floats, strings or booleans.
func TableFromNative(m map[string]any) (Table, error) {
	t := make(Table, len(m))

	for k, x := range m {
		v, ok := token.FromNative(x)
		if !ok {
			return nil, ErrInvalidValueType.
				Wrap(fmt.Errorf("variable %q has unsupported type %T", k, x)).
				With(slog.String("variable", k))
		}

		t[k] = v
	}

	return t, nil
}

// ReadTable decodes a YAML (or JSON) mapping of variable names to scalar
// values.
func ReadTable(ctx context.Context, r io.Reader) (Table, error) {
	data, err := ReadSource(ctx, r)
	if err != nil {
		return nil, err
	}

	var m map[string]any

	if err := yaml.UnmarshalContext(ctx, []byte(data), &m); err != nil {
		return nil, ErrDecodeTable.Wrap(err)
	}

	return TableFromNative(m)
}
