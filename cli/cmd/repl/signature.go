package repl

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

// signatureHintStyle styles for parameter hints.
var (
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("6")).
				Bold(true)
	currentParamStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11")).
				Bold(true)
)

// functionCall represents a detected function call in the input.
type functionCall struct {
	name     string
	argIndex int  // 0-based
	inCall   bool // cursor is inside the parameter list
}

func isIdentRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// detectFunctionCall analyzes the input to determine if the cursor is inside
// a function call's parameter list. Parentheses not preceded by an identifier
// are grouping, not calls, and are skipped over.
func detectFunctionCall(input string, cursor int) functionCall {
	if cursor > len(input) {
		cursor = len(input)
	}

	depth := 0

	for i := cursor - 1; i >= 0; i-- {
		switch input[i] {
		case ')':
			depth++

			continue
		case '(':
			if depth > 0 {
				depth--

				continue
			}
		default:
			continue
		}

		// Unmatched '(' before the cursor: check for a function name.
		nameEnd := strings.TrimRight(input[:i], " \t")
		nameStart := len(nameEnd)

		for nameStart > 0 {
			r, size := utf8.DecodeLastRuneInString(nameEnd[:nameStart])
			if !isIdentRune(r) {
				break
			}

			nameStart -= size
		}

		name := nameEnd[nameStart:]
		if name == "" || name == "if" {
			// Grouping or condition parenthesis; keep looking outward.
			continue
		}

		return functionCall{
			name:     name,
			argIndex: countArgs(input[i+1 : cursor]),
			inCall:   true,
		}
	}

	return functionCall{}
}

// countArgs counts the commas at nesting depth zero of a partial argument
// list.
func countArgs(list string) int {
	n, depth := 0, 0

	for _, ch := range list {
		switch ch {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				n++
			}
		}
	}

	return n
}

// renderSignatureHint renders the function signature with the current
// parameter highlighted.
func renderSignatureHint(name string, params []string, current int) string {
	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(name))
	b.WriteString(signatureStyle.Render("("))

	for i, param := range params {
		if i > 0 {
			b.WriteString(signatureStyle.Render(", "))
		}

		// Variadic parameters stay highlighted for every trailing argument.
		variadic := strings.HasPrefix(param, "...")
		if (variadic && current >= i) || (!variadic && current == i) {
			b.WriteString(currentParamStyle.Render(param))
		} else {
			b.WriteString(signatureStyle.Render(param))
		}
	}

	b.WriteString(signatureStyle.Render(")"))

	return b.String()
}
