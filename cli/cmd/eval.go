package cmd

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/ardnew/lleval/lang"
	"github.com/ardnew/lleval/log"
)

// Eval evaluates statements from the source files followed by any statements
// given as arguments. With neither, statements are read from stdin.
type Eval struct {
	Statements []string `arg:"" help:"Statements to evaluate after the source files" name:"statements" optional:""`

	Vars   string      `help:"Seed the variable table from a YAML file"   placeholder:"FILE" type:"existingfile"`
	Save   string      `help:"Write the final variable table as YAML"     placeholder:"FILE" type:"path"`
	Format lang.Format `default:"native" enum:"native,json,yaml"          help:"Output format"                   short:"o"`
	Table  bool        `help:"Print the variable table instead of the result" short:"t"`
	Indent int         `default:"2"                                       help:"Indent width for JSON and YAML output" short:"i"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	attr := slog.String("command", "eval")

	vars, err := loadTable(ctx, e.Vars)
	if err != nil {
		return err
	}

	source, err := readInput(ctx, e.Statements)
	if err != nil {
		return ErrReadSource.Wrap(err).With(attr)
	}

	session := lang.NewSession(vars, lang.WithLogger(log.Default()))

	result, evalErr := session.Eval(ctx, source)

	// The table survives a failed run, so it is saved either way.
	if e.Save != "" {
		err = saveTable(ctx, e.Save, session.Variables(), e.Indent)
		if err != nil {
			return err
		}
	}

	if evalErr != nil {
		return ErrEvaluate.Wrap(evalErr).With(attr)
	}

	out := outputFrom(ctx)

	if e.Table {
		err = session.Variables().Write(ctx, out, e.Format, e.Indent)
	} else {
		err = lang.WriteValue(ctx, out, result, e.Format)
	}

	if err != nil {
		return ErrWriteOutput.Wrap(err).With(attr)
	}

	return nil
}

// readInput concatenates the --source inputs and args, one per line. Stdin
// is read when both are empty.
func readInput(ctx context.Context, args []string) (string, error) {
	var b strings.Builder

	if src := sourceFilesFrom(ctx); src != nil {
		text, err := lang.ReadSource(ctx, src)
		if err != nil {
			return "", err
		}

		b.WriteString(text)
	}

	if len(args) > 0 {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}

		b.WriteString(strings.Join(args, "\n"))
	}

	if b.Len() == 0 && sourceFilesFrom(ctx) == nil {
		return lang.ReadSource(ctx, os.Stdin)
	}

	return b.String(), nil
}

// loadTable reads a YAML variable table from path. An empty path yields an
// empty table.
func loadTable(ctx context.Context, path string) (lang.Table, error) {
	if path == "" {
		return lang.Table{}, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, ErrReadVars.Wrap(err).With(slog.String("file", path))
	}
	defer file.Close()

	vars, err := lang.ReadTable(ctx, file)
	if err != nil {
		return nil, ErrReadVars.Wrap(err).With(slog.String("file", path))
	}

	log.DebugContext(ctx, "variable table loaded",
		slog.String("file", path),
		slog.Int("count", len(vars)),
	)

	return vars, nil
}

// saveTable writes vars as YAML to path, replacing any existing file.
func saveTable(ctx context.Context, path string, vars lang.Table, indent int) error {
	file, err := os.Create(path)
	if err != nil {
		return ErrWriteVars.Wrap(err).With(slog.String("file", path))
	}
	defer file.Close()

	err = vars.Write(ctx, file, lang.FormatYAML, indent)
	if err != nil {
		return ErrWriteVars.Wrap(err).With(slog.String("file", path))
	}

	log.DebugContext(ctx, "variable table saved",
		slog.String("file", path),
		slog.Int("count", len(vars)),
	)

	return nil
}
