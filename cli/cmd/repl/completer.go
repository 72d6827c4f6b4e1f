package repl

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/lleval/lang/lexer"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{"help", "vars", "edit", "reset", "clear", "quit"}

// isWordBoundary returns true if the rune is a word delimiter for completion
// purposes: whitespace, quotes, and the language's operator and punctuation
// characters.
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t', '"', '\'',
		'(', ')', '{', '}',
		'+', '-', '*', '/', '%',
		'<', '>', '=', '!',
		'&', '|', ',', ':', ';':
		return true
	}

	return false
}

// wordBounds returns the current word at the cursor position and its byte
// boundaries within input.
// Returns an empty word when the cursor sits on a boundary (after a space,
// after an operator, start of line, etc.).
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	// Walk backward from cursor to find word start.
	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	// Walk forward from cursor to find word end.
	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// evalCandidates returns every name that may appear in a statement: session
// variables, functions, keywords and boolean literals. Duplicates are
// removed.
func (m model) evalCandidates() []string {
	names := m.session.Variables().Names()

	if m.funcs != nil {
		names = append(names, m.funcs.Names()...)
	}

	names = append(names, lexer.Keywords()...)
	names = append(names, "true", "false")

	slices.Sort(names)

	return slices.Compact(names)
}

// computeMatches returns fuzzy matches for the word under the cursor.
// It returns the matches (ranked best-first), the candidate list, and the word
// boundaries. An empty word yields no matches so the hint line stays visible.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	candidates []string,
	wordStart, wordEnd int,
) {
	input := m.input.Value()
	cursor := m.input.Position()

	word, ws, we := wordBounds(input, cursor)
	wordStart, wordEnd = ws, we

	if word == "" {
		return nil, nil, wordStart, wordEnd
	}

	if m.mode == modeCtrl || strings.HasPrefix(input, commandPrefix) {
		candidates = ctrlCommands
	} else {
		candidates = m.evalCandidates()
	}

	if len(candidates) == 0 {
		return nil, nil, wordStart, wordEnd
	}

	matches = fuzzy.Find(word, candidates)

	return matches, candidates, wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within the given terminal width. Each candidate is rendered with its matched
// characters highlighted. The selected candidate (when tabbing) uses the
// selected style.
func (m model) renderCandidateBar() string {
	if len(m.matches) == 0 || m.width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range m.matches {
		selected := m.tabActive && i == m.suggIdx
		rendered := m.renderCandidate(match, selected)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		// Check if adding this candidate would exceed width.
		if used+entryWidth+ellipsisWidth > m.width && i > 0 {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted. Functions are displayed with a "()" suffix.
func (m model) renderCandidate(match fuzzy.Match, selected bool) string {
	baseStyle := suggestionStyle
	highlightStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("4")).
		Bold(true)

	if selected {
		baseStyle = selectedStyle
		highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4")).
			Bold(true)
	}

	matchSet := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matchSet[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		ch := string(r)
		if matchSet[i] {
			b.WriteString(highlightStyle.Render(ch))
		} else {
			b.WriteString(baseStyle.Render(ch))
		}
	}

	// Suffix is display-only and never inserted on completion.
	if m.isFunction(match.Str) {
		b.WriteString(baseStyle.Render("()"))
	}

	return b.String()
}

// isFunction reports whether name is bound to a function rather than a
// session variable.
func (m model) isFunction(name string) bool {
	if m.funcs == nil {
		return false
	}

	if _, ok := m.session.Lookup(name); ok {
		return false
	}

	_, ok := m.funcs.Signature(name)

	return ok
}
