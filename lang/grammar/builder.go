// Package grammar builds LL(1) production tables for the parser engine.
package grammar

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/ardnew/lleval/lang/fault"
	"github.com/ardnew/lleval/lang/token"
)

// ErrConflict is returned by [Builder.Build] when two productions of a
// nonterminal share a lookahead class.
var ErrConflict = fault.New(fault.KindSyntax, "grammar is not LL(1)")

// ErrUndefined is returned by [Builder.Build] when a nonterminal is used
// without any production.
var ErrUndefined = fault.New(fault.KindSyntax, "nonterminal has no productions")

// Rule is a single production.
type Rule struct {
	Head *token.Nonterminal
	Body []token.Symbol
}

// String renders the rule as "Head → body".
func (r Rule) String() string {
	var sb strings.Builder

	sb.WriteString(r.Head.Name)
	sb.WriteString(" →")

	if len(r.Body) == 0 {
		sb.WriteString(" ε")
	}

	for _, s := range r.Body {
		sb.WriteByte(' ')
		sb.WriteString(symbolString(s))
	}

	return sb.String()
}

func symbolString(s token.Symbol) string {
	switch s := s.(type) {
	case *token.Terminal:
		return s.Class().String()
	case *token.Nonterminal:
		return s.Name
	case token.Execution:
		return s.String()
	case token.Controller:
		return s.String()
	default:
		return fmt.Sprint(s)
	}
}

// Builder collects productions. A Builder and the nonterminals it creates
// are consumed by a single call to Build.
type Builder struct {
	byName map[string]*token.Nonterminal
	order  []*token.Nonterminal
	rules  []Rule
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{byName: make(map[string]*token.Nonterminal)}
}

// NT returns the nonterminal called name, creating it on first use.
func (b *Builder) NT(name string) *token.Nonterminal {
	if nt, ok := b.byName[name]; ok {
		return nt
	}

	nt := token.NewNonterminal(name)
	b.byName[name] = nt
	b.order = append(b.order, nt)

	return nt
}

// Rule appends the production nt → body. An empty body is ε.
func (b *Builder) Rule(nt *token.Nonterminal, body ...token.Symbol) *Builder {
	b.rules = append(b.rules, Rule{Head: nt, Body: body})

	return b
}

// Build computes FIRST and FOLLOW sets over terminal classes and fills the
// production table of every nonterminal. Execution and controller slots are
// transparent to both sets.
func (b *Builder) Build(start *token.Nonterminal) (*Grammar, error) {
	g := &Grammar{
		start:  start,
		rules:  b.rules,
		order:  b.order,
		first:  make(map[*token.Nonterminal]classSet),
		follow: make(map[*token.Nonterminal]classSet),
		null:   make(map[*token.Nonterminal]bool),
	}

	defined := make(map[*token.Nonterminal]bool)
	for _, r := range b.rules {
		defined[r.Head] = true
	}

	for _, r := range b.rules {
		for _, s := range r.Body {
			if nt, ok := s.(*token.Nonterminal); ok && !defined[nt] {
				return nil, ErrUndefined.Wrapf(nt.Name).
					With(slog.String("rule", r.String()))
			}
		}
	}

	if !defined[start] {
		return nil, ErrUndefined.Wrapf(start.Name)
	}

	for nt := range defined {
		g.first[nt] = classSet{}
		g.follow[nt] = classSet{}
	}

	g.computeFirst()
	g.computeFollow()

	if err := g.fill(); err != nil {
		return nil, err
	}

	return g, nil
}

type classSet map[token.Class]bool

// addAll adds every class of o to s and reports whether s grew.
func (s classSet) addAll(o classSet) bool {
	grew := false

	for c := range o {
		if !s[c] {
			s[c] = true
			grew = true
		}
	}

	return grew
}

func (s classSet) sorted() []string {
	out := make([]string, 0, len(s))
	for c := range s {
		out = append(out, c.String())
	}

	slices.Sort(out)

	return out
}

// sequence returns FIRST of syms and whether syms can derive ε.
func (g *Grammar) sequence(syms []token.Symbol) (classSet, bool) {
	out := classSet{}

	for _, s := range syms {
		switch s := s.(type) {
		case *token.Terminal:
			out[s.Class()] = true

			return out, false

		case *token.Nonterminal:
			out.addAll(g.first[s])

			if !g.null[s] {
				return out, false
			}
		}
	}

	return out, true
}

func (g *Grammar) computeFirst() {
	for changed := true; changed; {
		changed = false

		for _, r := range g.rules {
			first, nullable := g.sequence(r.Body)

			if g.first[r.Head].addAll(first) {
				changed = true
			}

			if nullable && !g.null[r.Head] {
				g.null[r.Head] = true
				changed = true
			}
		}
	}
}

func (g *Grammar) computeFollow() {
	g.follow[g.start][token.Class{Kind: token.KindEnd}] = true

	for changed := true; changed; {
		changed = false

		for _, r := range g.rules {
			for i, s := range r.Body {
				nt, ok := s.(*token.Nonterminal)
				if !ok {
					continue
				}

				rest, nullable := g.sequence(r.Body[i+1:])

				if g.follow[nt].addAll(rest) {
					changed = true
				}

				if nullable && g.follow[nt].addAll(g.follow[r.Head]) {
					changed = true
				}
			}
		}
	}
}

func (g *Grammar) fill() error {
	for _, r := range g.rules {
		first, nullable := g.sequence(r.Body)

		predict := classSet{}
		predict.addAll(first)

		if nullable {
			predict.addAll(g.follow[r.Head])
		}

		for _, c := range sortedClasses(predict) {
			if !r.Head.Define(c, r.Body) {
				return ErrConflict.
					Wrapf(fmt.Sprintf("%s on %s", r.Head.Name, c)).
					With(slog.String("rule", r.String()))
			}
		}
	}

	return nil
}

func sortedClasses(s classSet) []token.Class {
	out := make([]token.Class, 0, len(s))
	for c := range s {
		out = append(out, c)
	}

	slices.SortFunc(out, func(a, b token.Class) int {
		if a.Kind != b.Kind {
			return int(a.Kind) - int(b.Kind)
		}

		return strings.Compare(a.Text, b.Text)
	})

	return out
}

// Grammar is a built LL(1) grammar.
type Grammar struct {
	start  *token.Nonterminal
	rules  []Rule
	order  []*token.Nonterminal
	first  map[*token.Nonterminal]classSet
	follow map[*token.Nonterminal]classSet
	null   map[*token.Nonterminal]bool
}

// Start returns the start symbol.
func (g *Grammar) Start() *token.Nonterminal { return g.start }

// Rules returns the productions in definition order.
func (g *Grammar) Rules() []Rule { return slices.Clone(g.rules) }

// Productions renders every rule, one per line.
func (g *Grammar) Productions() []string {
	out := make([]string, len(g.rules))
	for i, r := range g.rules {
		out[i] = r.String()
	}

	return out
}

// Nonterminals returns the nonterminals in order of first use.
func (g *Grammar) Nonterminals() []*token.Nonterminal { return slices.Clone(g.order) }

// First returns the sorted FIRST set of nt.
func (g *Grammar) First(nt *token.Nonterminal) []string { return g.first[nt].sorted() }

// Follow returns the sorted FOLLOW set of nt.
func (g *Grammar) Follow(nt *token.Nonterminal) []string { return g.follow[nt].sorted() }

// Nullable reports whether nt derives ε.
func (g *Grammar) Nullable(nt *token.Nonterminal) bool { return g.null[nt] }
