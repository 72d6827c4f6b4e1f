package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/lleval/lang"
)

// Tokens prints the token stream of the input without evaluating it.
type Tokens struct {
	Statements []string `arg:"" help:"Statements to scan after the source files" name:"statements" optional:""`

	Format lang.Format `default:"native" enum:"native,json,yaml" help:"Output format"                          short:"o"`
	Indent int         `default:"2"                              help:"Indent width for JSON and YAML output" short:"i"`
}

// Run executes the tokens command.
func (t *Tokens) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	attr := slog.String("command", "tokens")

	source, err := readInput(ctx, t.Statements)
	if err != nil {
		return ErrReadSource.Wrap(err).With(attr)
	}

	toks, err := lang.Tokenize(ctx, source)
	if err != nil {
		return ErrEvaluate.Wrap(err).With(attr)
	}

	err = lang.WriteTokens(ctx, outputFrom(ctx), toks, t.Format, t.Indent)
	if err != nil {
		return ErrWriteOutput.Wrap(err).With(attr)
	}

	return nil
}
