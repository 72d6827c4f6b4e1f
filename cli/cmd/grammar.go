package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ardnew/lleval/lang/grammar"
)

// Grammar prints the productions of the bundled grammar.
type Grammar struct {
	Sets bool `help:"Also print the FIRST and FOLLOW sets of each nonterminal" short:"x"`
}

// Run executes the grammar command.
func (g *Grammar) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	err = g.write(ctx, grammar.Default())
	if err != nil {
		return ErrWriteOutput.Wrap(err).With(slog.String("command", "grammar"))
	}

	return nil
}

func (g *Grammar) write(ctx context.Context, gr *grammar.Grammar) error {
	out := outputFrom(ctx)

	for i, p := range gr.Productions() {
		if _, err := fmt.Fprintf(out, "%3d  %s\n", i+1, p); err != nil {
			return err
		}
	}

	if !g.Sets {
		return nil
	}

	for _, nt := range gr.Nonterminals() {
		nullable := ""
		if gr.Nullable(nt) {
			nullable = "  nullable"
		}

		_, err := fmt.Fprintf(out, "\n%s%s\n  FIRST  = { %s }\n  FOLLOW = { %s }\n",
			nt.Name, nullable,
			strings.Join(gr.First(nt), " "),
			strings.Join(gr.Follow(nt), " "),
		)
		if err != nil {
			return err
		}
	}

	return nil
}
