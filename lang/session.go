package lang

import (
	"context"
	"io"
	"log/slog"
	"slices"

	"github.com/ardnew/lleval/lang/token"
	"github.com/ardnew/lleval/log"
)

// Session threads one variable table through successive evaluations: each
// Eval starts from the table left by the previous one.
type Session struct {
	analyzer *Analyzer
	vars     Table
	logger   log.Logger
	opts     []Option
}

// NewSession returns a Session seeded with a copy of vars.
func NewSession(vars Table, opts ...Option) *Session {
	var o options

	applyOptions(&o, opts...)

	return &Session{
		analyzer: NewAnalyzer(opts...),
		vars:     vars.Clone(),
		logger:   o.logger,
		opts:     opts,
	}
}

// Eval tokenizes and evaluates source. It returns the last statement's
// value, or the zero [token.Value] when no statement produced one. A result
// that is a never-assigned variable is reported as
// [fault.ErrVariableNotInitialized].
//
// The session table is updated even when evaluation fails, keeping every
// assignment that reached the root scope.
func (s *Session) Eval(ctx context.Context, source string) (token.Value, error) {
	tokens, err := Tokenize(ctx, source, s.opts...)
	if err != nil {
		return token.Value{}, err
	}

	res, err := s.analyzer.Analyze(ctx, tokens, s.vars)
	s.vars = s.analyzer.Variables()

	if err != nil {
		s.logger.DebugContext(ctx, "evaluation failed", slog.Any("error", err))

		return token.Value{}, err
	}

	if res == nil {
		return token.Value{}, nil
	}

	if err := requireBound(res); err != nil {
		return token.Value{}, err
	}

	v, _ := res.Resolve()

	return v, nil
}

// EvalReader reads all of r and evaluates it.
func (s *Session) EvalReader(ctx context.Context, r io.Reader) (token.Value, error) {
	source, err := ReadSource(ctx, r)
	if err != nil {
		return token.Value{}, err
	}

	return s.Eval(ctx, source)
}

// Variables returns a copy of the session table.
func (s *Session) Variables() Table { return s.vars.Clone() }

// Lookup returns the value of a session variable.
func (s *Session) Lookup(name string) (token.Value, bool) {
	v, ok := s.vars[name]

	return v, ok
}

// Options returns the options the session was created with.
func (s *Session) Options() []Option { return slices.Clone(s.opts) }

// Reset replaces the session table with a copy of vars.
func (s *Session) Reset(vars Table) { s.vars = vars.Clone() }

// Eval evaluates source once against a copy of vars and returns the result
// together with the resulting table.
func Eval(
	ctx context.Context,
	source string,
	vars Table,
	opts ...Option,
) (token.Value, Table, error) {
	s := NewSession(vars, opts...)
	v, err := s.Eval(ctx, source)

	return v, s.Variables(), err
}
