package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/lleval/cli/cmd/repl"
	"github.com/ardnew/lleval/lang"
	"github.com/ardnew/lleval/lang/library"
	"github.com/ardnew/lleval/log"
)

// Repl starts an interactive session. Source files, when given, are
// evaluated first and seed the session's variables.
type Repl struct {
	Vars    string `help:"Seed the variable table from a YAML file" placeholder:"FILE" type:"existingfile"`
	History string `default:"${history}"                             help:"History file (empty disables persistence)" placeholder:"FILE" type:"path"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	attr := slog.String("command", "repl")

	vars, err := loadTable(ctx, r.Vars)
	if err != nil {
		return err
	}

	runner := library.NewRunner()
	session := lang.NewSession(vars,
		lang.WithRunner(runner),
		lang.WithLogger(log.Default()),
	)

	if src := sourceFilesFrom(ctx); src != nil {
		_, err = session.EvalReader(ctx, src)
		if err != nil {
			return ErrEvaluate.Wrap(err).With(attr, slog.Any("sources", src.Names()))
		}
	}

	return repl.Run(ctx, session, runner, r.History, log.Default())
}
