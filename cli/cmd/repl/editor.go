package repl

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/lleval/lang"
	"github.com/ardnew/lleval/log"
)

const defaultEditor = "vi"

// editTableCommand implements [tea.ExecCommand] for the edit-evaluate-retry
// loop. It writes the session's variable table as assignment statements to a
// temp file, opens the user's editor, and evaluates the result into a fresh
// table. On failure the user is prompted to re-edit; declining exits the
// program.
type editTableCommand struct {
	vars    lang.Table
	opts    []lang.Option
	ctxFunc func() context.Context
	result  lang.Table
	logger  log.Logger
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editTableCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editTableCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editTableCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit-evaluate-retry loop. If the user declines to re-edit,
// it returns [ErrEditDeclined].
func (c *editTableCommand) Run() error {
	ctx := c.ctxFunc()

	var buf bytes.Buffer
	if err := c.vars.Format(ctx, &buf); err != nil {
		return fmt.Errorf("format table: %w", err)
	}

	content := buf.String()

	// Create a single temp file for the entire loop.
	f, err := os.CreateTemp(os.TempDir(), "lleval-repl-*.ll")
	if err != nil {
		return err
	}

	tmpPath := f.Name()

	defer os.Remove(tmpPath)

	if err := f.Chmod(0o600); err != nil {
		f.Close()

		return err
	}

	f.Close()

	for {
		if err := os.WriteFile(tmpPath, []byte(content), 0o600); err != nil {
			return err
		}

		data, err := runEditor(ctx, c.stdin, c.stdout, c.stderr, tmpPath)
		if err != nil {
			return err
		}

		// User cleared the content; treat as cancelled edit.
		if strings.TrimSpace(string(data)) == "" {
			return nil
		}

		_, vars, evalErr := lang.Eval(ctx, string(data), nil, c.opts...)
		c.logger.TraceContext(
			ctx,
			"editor eval attempt",
			slog.Int("content_length", len(data)),
			slog.Bool("success", evalErr == nil),
		)

		if evalErr == nil {
			c.result = vars

			return nil
		}

		fmt.Fprintf(c.stderr, "\nEvaluation error: %s\n", evalErr)
		fmt.Fprintf(c.stdout, "Re-edit? [Y/n] ")

		scanner := bufio.NewScanner(c.stdin)
		if !scanner.Scan() {
			return ErrEditDeclined
		}

		response := strings.TrimSpace(strings.ToLower(scanner.Text()))
		if response == "n" || response == "no" {
			return ErrEditDeclined
		}

		// Keep the failed content for the next editor iteration.
		content = string(data)
	}
}

// runEditor launches the user's editor on the given file path and returns the
// edited file content.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	path string,
) ([]byte, error) {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = defaultEditor
	}

	cmd := exec.CommandContext(ctx, editor, path)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		return nil, err
	}

	return os.ReadFile(path)
}
