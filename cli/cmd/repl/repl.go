package repl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/lleval/lang"
	"github.com/ardnew/lleval/log"
)

// Functions describes the callable names offered for completion.
type Functions interface {
	Names() []string
	Signature(name string) ([]string, bool)
}

// editTableMsg is sent when table editing completes successfully.
type editTableMsg struct{ vars lang.Table }

// editCancelledMsg is sent when the user cleared the editor content.
type editCancelledMsg struct{}

// editDeclinedMsg is sent when the user declined to re-edit after an
// evaluation error.
type editDeclinedMsg struct{}

// editErrorMsg is sent when the edit process encounters a non-evaluation
// error.
type editErrorMsg struct{ err error }

const (
	evalPrompt    = "➜ "
	ctrlPrompt    = " :"
	commandPrefix = ":"
)

func helpMessage() string {
	return `
: Commands (press Esc to toggle mode, or prefix with ':'):

  help     Print this cruft
  vars     List session variables
  edit     Edit the variable table in external $EDITOR
  reset    Discard all session variables
  clear    Clear screen
  quit     Exit REPL

Usage:
  Type statements to evaluate them; a missing trailing ';' is added
  Variables assigned at the top level persist between lines
  Completions appear automatically as you type
  Press Tab / Shift-Tab to cycle through candidates
  Use Up/Down arrows for history navigation (mode switches automatically)
  Use Shift+Up/Shift+Down for history navigation within current mode only
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// inputMode represents the current input mode.
type inputMode int

const (
	modeEval inputMode = iota
	modeCtrl
)

// prefix returns the history file prefix of the mode.
func (m inputMode) prefix() string {
	if m == modeCtrl {
		return "C:"
	}

	return "E:"
}

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

// formatCommand formats the echo line with prompt and input styled.
func formatCommand(mode inputMode, input string) string {
	if mode == modeCtrl {
		return ctrlPromptStyle.Render(ctrlPrompt) + inputStyle.Render(input)
	}

	return promptStyle.Render(evalPrompt) + inputStyle.Render(input)
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc      func() context.Context
	input        textinput.Model
	session      *lang.Session
	funcs        Functions
	logger       log.Logger
	history      *History
	historyIdx   int
	matches      fuzzy.Matches // current fuzzy match results
	candidates   []string      // backing candidate list
	wordStart    int           // byte offset of current word start
	wordEnd      int           // byte offset of current word end
	suggIdx      int           // selected candidate index
	tabActive    bool          // whether user is tab-cycling
	preTabText   string        // input text before tab-cycling began
	preTabCursor int           // cursor position before tab-cycling began
	width        int           // terminal width for ellipsization
	quitting     bool
	mode         inputMode
	evalText     string
	evalCursor   int
	ctrlText     string
	ctrlCursor   int
}

// Run starts the REPL over session. Function names and signatures for
// completion come from funcs, which may be nil. History is persisted to
// historyPath unless it is empty.
func Run(
	ctx context.Context,
	session *lang.Session,
	funcs Functions,
	historyPath string,
	logger log.Logger,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if session == nil {
		return ErrNoSession
	}

	history := NewHistory(historyPath)
	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "could not load history",
			slog.String("path", historyPath),
			slog.Any("error", err),
		)
	}

	logger.TraceContext(
		ctx,
		"repl start",
		slog.String("history", historyPath),
		slog.Int("history_count", history.Len()),
		slog.Int("variable_count", len(session.Variables())),
	)

	m := newModel(ctx, session, funcs, history, logger)

	p := tea.NewProgram(m, tea.WithContext(ctx))
	_, err = p.Run()

	return err
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	session *lang.Session,
	funcs Functions,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(evalPrompt)
	ti.Focus()
	ti.CharLimit = 4096
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		session:    session,
		funcs:      funcs,
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
		mode:       modeEval,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(evalPrompt) - 2

		return m, nil

	case editTableMsg:
		m.session.Reset(msg.vars)
		m.logger.TraceContext(
			m.ctxFunc(),
			"repl edit complete",
			slog.Int("variable_count", len(msg.vars)),
		)

		return m, tea.Println(resultStyle.Render("✔ variables updated"))

	case editCancelledMsg:
		return m, tea.Println(hintStyle.Render("edit cancelled"))

	case editDeclinedMsg:
		m.quitting = true

		return m, tea.Quit

	case editErrorMsg:
		return m, tea.Println(errorStyle.Render("error: " + msg.err.Error()))
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	input := m.input.Value()
	call := detectFunctionCall(input, m.input.Position())

	switch {
	case m.historyIdx < m.history.Len():
		hint := fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len())
		b.WriteString(hintStyle.Render(hint))

	case strings.TrimSpace(input) == "":
		hint := "Type statements or press Esc for commands"
		if m.mode == modeCtrl {
			hint = "Type: " + strings.Join(ctrlCommands, ", ") + " (press Esc to return)"
		}

		b.WriteString(hintStyle.Render(hint))

	case len(m.matches) > 0:
		b.WriteString(m.renderCandidateBar())

	case call.inCall && m.mode == modeEval && m.funcs != nil:
		if params, ok := m.funcs.Signature(call.name); ok {
			b.WriteString(renderSignatureHint(call.name, params, call.argIndex))
		}
	}

	b.WriteString("\n")

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		refreshMatches(&m, false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if !m.tabActive || len(m.matches) == 0 {
			return m.executeInput()
		}
		// Lock in the current tab candidate without executing.
		m.tabActive = false
		refreshMatches(&m, true)

		return m, nil

	case tea.KeyTab:
		return m.cycle(1)

	case tea.KeyShiftTab:
		return m.cycle(-1)

	case tea.KeyUp:
		return m.historyStep(-1, false)

	case tea.KeyDown:
		return m.historyStep(1, false)

	case tea.KeyShiftUp:
		return m.historyStep(-1, true)

	case tea.KeyShiftDown:
		return m.historyStep(1, true)

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			refreshMatches(&m, false)

			return m, nil
		}

		return m.toggleMode()

	case tea.KeyRunes:
		// Space is a "breaking" key while tab-cycling.
		if m.tabActive && msg.String() == " " {
			m.tabActive = false
		}

		var cmd tea.Cmd

		m.historyIdx = m.history.Len()
		m.input, cmd = m.input.Update(msg)
		refreshMatches(&m, true)

		return m, cmd
	}

	// For any other key (backspace, delete, arrows, etc.),
	// update input and recompute matches without auto-confirm.
	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m, false)

	return m, cmd
}

// cycle moves the tab selection by step, wrapping at either end.
func (m model) cycle(step int) (model, tea.Cmd) {
	if len(m.matches) == 0 {
		return m, nil
	}

	// Single candidate: complete and confirm immediately.
	if len(m.matches) == 1 {
		replaceCurrentWord(&m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m, nil
	}

	if m.tabActive {
		m.suggIdx = (m.suggIdx + step + len(m.matches)) % len(m.matches)
	} else {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()

		m.suggIdx = 0
		if step < 0 {
			m.suggIdx = len(m.matches) - 1
		}
	}

	replaceCurrentWord(&m, m.matches[m.suggIdx].Str)

	return m, nil
}

// replaceCurrentWord replaces the current word boundaries in the input with
// the given replacement text and repositions the cursor.
func replaceCurrentWord(m *model, replacement string) {
	input := m.input.Value()
	newInput := input[:m.wordStart] + replacement + input[m.wordEnd:]
	newCursor := m.wordStart + len(replacement)

	m.input.SetValue(newInput)
	m.input.SetCursor(newCursor)

	m.wordEnd = newCursor
}

// refreshMatches recomputes fuzzy matches for the current input state.
// When autoConfirm is true it also auto-confirms the completion when exactly
// one candidate remains and the typed word already equals that candidate.
func refreshMatches(m *model, autoConfirm bool) {
	m.matches, m.candidates, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}

	if !autoConfirm || len(m.matches) != 1 {
		return
	}

	candidate := m.matches[0].Str
	if m.input.Value()[m.wordStart:m.wordEnd] == candidate {
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil
	}
}

// terminate appends the statement terminator when input does not already
// end a statement or a block.
func terminate(input string) string {
	if strings.HasSuffix(input, ";") || strings.HasSuffix(input, "}") {
		return input
	}

	return input + ";"
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	mode := m.mode
	if cmd, ok := strings.CutPrefix(input, commandPrefix); ok {
		mode, input = modeCtrl, strings.TrimSpace(cmd)
	}

	// Reset both mode inputs after submission
	m.evalText, m.evalCursor = "", 0
	m.ctrlText, m.ctrlCursor = "", 0
	m.input.SetValue("")
	m.matches = nil

	_, _ = m.history.Write(input, mode)
	m.historyIdx = m.history.Len()

	if mode == modeCtrl {
		return m.executeCommand(input)
	}

	ctx := m.ctxFunc()
	echo := tea.Println(formatCommand(modeEval, input))

	result, err := m.session.Eval(ctx, terminate(input))

	m.logger.TraceContext(ctx, "repl eval",
		slog.String("input", input),
		slog.Bool("success", err == nil),
	)

	if err != nil {
		return m, tea.Sequence(
			echo,
			tea.Println(errorStyle.Render("error: "+err.Error())),
		)
	}

	if !result.IsValid() {
		return m, echo
	}

	return m, tea.Sequence(echo, tea.Println(resultStyle.Render(result.String())))
}

func (m model) executeCommand(input string) (model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}

	echo := tea.Println(formatCommand(modeCtrl, input))

	m.logger.TraceContext(
		m.ctxFunc(),
		"repl command",
		slog.String("command", parts[0]),
		slog.Any("args", parts[1:]),
	)

	switch parts[0] {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echo, tea.Println(helpMessage()))

	case "v", "vars":
		return m, tea.Sequence(echo, tea.Println(m.listVariables()))

	case "r", "reset":
		m.session.Reset(nil)

		return m, tea.Sequence(echo, tea.Println(hintStyle.Render("variables cleared")))

	case "c", "clear":
		return m, tea.ClearScreen

	case "e", "edit":
		return m, tea.Sequence(echo, m.editTable())

	default:
		return m, tea.Println(
			errorStyle.Render("Unknown command: " + parts[0] + " (try 'help')"),
		)
	}
}

// editTable returns a command that suspends the program while the variable
// table is edited.
func (m model) editTable() tea.Cmd {
	cmd := &editTableCommand{
		vars:    m.session.Variables(),
		opts:    m.session.Options(),
		ctxFunc: m.ctxFunc,
		logger:  m.logger,
	}

	return tea.Exec(cmd, func(err error) tea.Msg {
		if errors.Is(err, ErrEditDeclined) {
			return editDeclinedMsg{}
		}

		if err != nil {
			return editErrorMsg{err: err}
		}

		if cmd.result == nil {
			return editCancelledMsg{}
		}

		return editTableMsg{vars: cmd.result}
	})
}

// listVariables renders the session table as assignment statements.
func (m model) listVariables() string {
	vars := m.session.Variables()
	if len(vars) == 0 {
		return hintStyle.Render("  (no variables)")
	}

	var b strings.Builder

	for _, name := range vars.Names() {
		fmt.Fprintf(&b, "  %s %s %s\n",
			name, hintStyle.Render("="), resultStyle.Render(vars[name].String()))
	}

	return strings.TrimRight(b.String(), "\n")
}

// historyStep moves through history by step. When sameMode is set, entries
// of the other mode are skipped; otherwise the mode follows the entry.
func (m model) historyStep(step int, sameMode bool) (model, tea.Cmd) {
	for i := m.historyIdx + step; i >= 0 && i < m.history.Len(); i += step {
		entry, err := m.history.GetEntry(i)
		if err != nil {
			break
		}

		if sameMode && entry.Mode != m.mode {
			continue
		}

		if entry.Mode != m.mode {
			m, _ = m.switchToMode(entry.Mode)
		}

		m.historyIdx = i
		m.input.SetValue(entry.Line)
		m.input.SetCursor(len(entry.Line))
		refreshMatches(&m, false)

		return m, nil
	}

	// Stepping past the newest entry returns to an empty line.
	if step > 0 && m.historyIdx < m.history.Len() {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		refreshMatches(&m, false)
	}

	return m, nil
}

// toggleMode switches between eval and control modes, preserving input state.
func (m model) toggleMode() (model, tea.Cmd) {
	if m.mode == modeEval {
		return m.switchToMode(modeCtrl)
	}

	return m.switchToMode(modeEval)
}

// switchToMode switches to the specified mode, preserving input state.
func (m model) switchToMode(mode inputMode) (model, tea.Cmd) {
	if m.mode == modeEval {
		m.evalText = m.input.Value()
		m.evalCursor = m.input.Position()
	} else {
		m.ctrlText = m.input.Value()
		m.ctrlCursor = m.input.Position()
	}

	m.mode = mode
	if mode == modeEval {
		m.input.Prompt = promptStyle.Render(evalPrompt)
		m.input.SetValue(m.evalText)
		m.input.SetCursor(m.evalCursor)
	} else {
		m.input.Prompt = ctrlPromptStyle.Render(ctrlPrompt)
		m.input.SetValue(m.ctrlText)
		m.input.SetCursor(m.ctrlCursor)
	}

	refreshMatches(&m, false)

	return m, nil
}
