package lang

import (
	"github.com/ardnew/lleval/lang/token"
	"github.com/ardnew/lleval/log"
)

// options holds configuration shared by [Analyzer] and [Session].
type options struct {
	grammar Grammar
	runner  token.FunctionRunner
	logger  log.Logger
}

// Option configures an [Analyzer] or [Session].
type Option func(*options)

// WithGrammar replaces the bundled grammar.
func WithGrammar(g Grammar) Option {
	return func(o *options) {
		o.grammar = g
	}
}

// WithRunner builds the bundled grammar around a custom function runner. It
// has no effect together with [WithGrammar].
func WithRunner(r token.FunctionRunner) Option {
	return func(o *options) {
		o.runner = r
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// applyOptions applies functional options.
func applyOptions(o *options, opts ...Option) {
	for _, opt := range opts {
		opt(o)
	}
}
