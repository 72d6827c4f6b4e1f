package token

import (
	"fmt"
	"strings"
)

// Position identifies a location in source text. Line and Column are 1-based;
// the zero Position is unknown.
type Position struct {
	Line   int `json:"line"   yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

// IsValid reports whether p refers to a real source location.
func (p Position) IsValid() bool { return p.Line > 0 }

// String formats p as "line L, column C".
func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// Symbol is a grammar symbol: exactly one of [*Terminal], [*Nonterminal],
// [Execution] or [Controller].
type Symbol interface {
	symbol()
}

func (*Terminal) symbol()    {}
func (*Nonterminal) symbol() {}
func (Execution) symbol()    {}
func (Controller) symbol()   {}

// Kind classifies a [Terminal].
type Kind int

const (
	// KindConst is a literal value.
	KindConst Kind = iota
	// KindVariable is a variable name.
	KindVariable
	// KindDelimiter is punctuation, including operator symbols.
	KindDelimiter
	// KindFunction is a function name in call position.
	KindFunction
	// KindKeyword is a reserved word.
	KindKeyword
	// KindEnd marks exhausted input. The lexer never produces it.
	KindEnd
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindConst:
		return "const"
	case KindVariable:
		return "variable"
	case KindDelimiter:
		return "delimiter"
	case KindFunction:
		return "function"
	case KindKeyword:
		return "keyword"
	case KindEnd:
		return "end"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Class is the grammar category of a terminal. Delimiters and keywords are
// distinguished by text; every other kind forms a single class.
type Class struct {
	Kind Kind
	Text string
}

// String formats the class for diagnostics.
func (c Class) String() string {
	switch c.Kind {
	case KindDelimiter, KindKeyword:
		return "'" + c.Text + "'"
	case KindEnd:
		return "end of input"
	default:
		return strings.ToUpper(c.Kind.String())
	}
}

// Terminal is a leaf grammar symbol. Lexed terminals carry their text,
// position and (for constants) literal value. Terminals placed in grammar
// productions are slots; Operator marks delimiter slots whose match must be
// recorded for a later [Execution].
type Terminal struct {
	Kind     Kind     `json:"kind"`
	Text     string   `json:"text"`
	Value    Value    `json:"-"`
	Pos      Position `json:"pos"`
	Operator bool     `json:"-"`
}

// Class returns the grammar category of t.
func (t *Terminal) Class() Class {
	switch t.Kind {
	case KindDelimiter, KindKeyword:
		return Class{Kind: t.Kind, Text: t.Text}
	default:
		return Class{Kind: t.Kind}
	}
}

// Matches reports grammar-level equality of slot t and lookahead la.
func (t *Terminal) Matches(la *Terminal) bool {
	return la != nil && t.Class() == la.Class()
}

// String formats the terminal for diagnostics.
func (t *Terminal) String() string {
	switch t.Kind {
	case KindEnd:
		return "end of input"
	case KindConst:
		if t.Value.IsValid() {
			return t.Value.String()
		}

		return "CONST"
	default:
		if t.Text == "" {
			return strings.ToUpper(t.Kind.String())
		}

		return t.Text
	}
}

// NewConst returns a lexed constant.
func NewConst(text string, v Value, pos Position) *Terminal {
	return &Terminal{Kind: KindConst, Text: text, Value: v, Pos: pos}
}

// NewVariable returns a lexed variable name.
func NewVariable(name string, pos Position) *Terminal {
	return &Terminal{Kind: KindVariable, Text: name, Pos: pos}
}

// NewDelimiter returns a lexed delimiter.
func NewDelimiter(text string, pos Position) *Terminal {
	return &Terminal{Kind: KindDelimiter, Text: text, Pos: pos}
}

// NewFunction returns a lexed function name.
func NewFunction(name string, pos Position) *Terminal {
	return &Terminal{Kind: KindFunction, Text: name, Pos: pos}
}

// NewKeyword returns a lexed keyword.
func NewKeyword(word string, pos Position) *Terminal {
	return &Terminal{Kind: KindKeyword, Text: word, Pos: pos}
}

// EndAt returns an end-of-input terminal positioned at pos.
func EndAt(pos Position) *Terminal {
	return &Terminal{Kind: KindEnd, Pos: pos}
}

// Nonterminal is a grammar symbol expanded through a production selected by
// the lookahead class. Its table is populated by a grammar builder.
type Nonterminal struct {
	Name  string
	table map[Class][]Symbol
}

// NewNonterminal returns a nonterminal with an empty production table.
func NewNonterminal(name string) *Nonterminal {
	return &Nonterminal{Name: name, table: make(map[Class][]Symbol)}
}

// Production returns the symbols that replace n when la is the lookahead.
func (n *Nonterminal) Production(la *Terminal) ([]Symbol, bool) {
	if la == nil {
		return nil, false
	}

	prod, ok := n.table[la.Class()]

	return prod, ok
}

// Define installs prod for lookahead class c. It reports false, leaving the
// table unchanged, when c already selects a production.
func (n *Nonterminal) Define(c Class, prod []Symbol) bool {
	if _, exists := n.table[c]; exists {
		return false
	}

	n.table[c] = prod

	return true
}

// Lookaheads returns the number of classes with a production.
func (n *Nonterminal) Lookaheads() int { return len(n.table) }

// String returns the nonterminal name.
func (n *Nonterminal) String() string { return n.Name }

// Operator is a fixed-arity operation referenced by an [Execution] slot.
type Operator interface {
	Symbol() string
	Arity() int
	Execute(args []Valuable) (Value, error)
}

// Assigner is implemented by operators whose first argument is an assignment
// target. The target may be unbound, and the result is written back to it.
type Assigner interface {
	Operator
	AssignsTarget()
}

// Function is a callable bound by a [FunctionRunner].
type Function interface {
	Execute(args []Valuable) (Value, error)
}

// FunctionRunner resolves function names to callables.
type FunctionRunner interface {
	Bind(name string) (Function, error)
}

// Execution is a production slot that immediately runs an operator or
// function when reached. Exactly one field is set.
type Execution struct {
	Operator Operator
	Runner   FunctionRunner
}

// Exec returns an Execution slot for op.
func Exec(op Operator) Execution { return Execution{Operator: op} }

// Call returns an Execution slot that invokes the pending function through r.
func Call(r FunctionRunner) Execution { return Execution{Runner: r} }

// String formats the slot for grammar listings.
func (e Execution) String() string {
	if e.Operator != nil {
		return "«" + e.Operator.Symbol() + "»"
	}

	return "«call»"
}

// Control enumerates the scope and condition actions.
type Control int

const (
	// IfCondition pops a boolean from the evaluation stack onto the condition
	// stack.
	IfCondition Control = iota
	// ElseCondition negates the top of the condition stack.
	ElseCondition
	// EndIf pops the condition stack.
	EndIf
	// NewContext pushes a scope whose effectiveness is the top condition.
	NewContext
	// EndContext pops a scope, merging or discarding its effects.
	EndContext
)

// String returns the action name.
func (c Control) String() string {
	switch c {
	case IfCondition:
		return "IfCondition"
	case ElseCondition:
		return "ElseCondition"
	case EndIf:
		return "EndIf"
	case NewContext:
		return "NewContext"
	case EndContext:
		return "EndContext"
	default:
		return fmt.Sprintf("Control(%d)", int(c))
	}
}

// Controller is a production slot that immediately runs a control action.
type Controller struct {
	Action Control
}

// Ctl returns a Controller slot for action.
func Ctl(action Control) Controller { return Controller{Action: action} }

// String formats the slot for grammar listings.
func (c Controller) String() string { return "«" + c.Action.String() + "»" }
