// Package lexer converts source text into classified terminal tokens.
package lexer

import (
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ardnew/lleval/lang/fault"
	"github.com/ardnew/lleval/lang/token"
)

// Keywords recognized by the scanner. The literals true and false are
// constants, not keywords.
var keywords = map[string]bool{
	"if":   true,
	"else": true,
}

// Keywords returns the reserved words.
func Keywords() []string {
	return slices.Sorted(maps.Keys(keywords))
}

// delimiters lists every punctuation token, longest first so that two-byte
// operators win over their one-byte prefixes.
var delimiters = []string{
	"==", "!=", "<=", ">=", "&&", "||",
	"+", "-", "*", "/", "%", "=", "<", ">", "!",
	"(", ")", "{", "}", ",", ";",
}

// Scan tokenizes src.
func Scan(src string) ([]*token.Terminal, error) {
	s := &scanner{
		input: src,
		pos:   0,
		line:  1,
		col:   1,
	}

	return s.scanAll()
}

// scanner holds the scanner state.
type scanner struct {
	input string
	pos   int
	line  int
	col   int
}

func (s *scanner) scanAll() ([]*token.Terminal, error) {
	var out []*token.Terminal

	for {
		s.skipWhitespaceAndComments()

		if s.eof() {
			return out, nil
		}

		tok, err := s.next()
		if err != nil {
			return nil, err
		}

		out = append(out, tok)
	}
}

func (s *scanner) next() (*token.Terminal, error) {
	pos := s.position()
	ch := s.peek()

	switch {
	case isDigit(ch) || (ch == '.' && isDigit(s.peekAt(1))):
		return s.scanNumber(pos)

	case ch == '"' || ch == '\'':
		return s.scanString(pos)

	case isIdentifierStart(ch):
		return s.scanWord(pos), nil
	}

	for _, d := range delimiters {
		if s.hasPrefix(d) {
			s.advanceN(len(d))

			return token.NewDelimiter(d, pos), nil
		}
	}

	return nil, fault.ErrSyntax.
		Wrapf("unexpected character " + strconv.QuoteRune(rune(ch))).
		WithPosition(pos)
}

// scanNumber scans an integer (decimal, 0x, 0o or 0b) or a decimal float
// with optional fraction and exponent.
func (s *scanner) scanNumber(pos token.Position) (*token.Terminal, error) {
	start := s.pos
	isFloat := false
	prefixed := s.peek() == '0' && strings.ContainsRune("xXoObB", rune(s.peekAt(1)))

	if prefixed {
		s.advanceN(2)

		for isAlnum(s.peek()) || s.peek() == '_' {
			s.advance()
		}
	} else {
		for isDigit(s.peek()) || s.peek() == '_' {
			s.advance()
		}

		if s.peek() == '.' && isDigit(s.peekAt(1)) {
			isFloat = true

			s.advance()

			for isDigit(s.peek()) || s.peek() == '_' {
				s.advance()
			}
		}

		if s.peek() == 'e' || s.peek() == 'E' {
			sign := s.peekAt(1) == '+' || s.peekAt(1) == '-'
			if isDigit(s.peekAt(1)) || (sign && isDigit(s.peekAt(2))) {
				isFloat = true

				s.advanceN(2)

				for isDigit(s.peek()) {
					s.advance()
				}
			}
		}
	}

	text := s.input[start:s.pos]

	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fault.ErrSyntax.Wrap(err).WithPosition(pos).
				With(slog.String("literal", text))
		}

		return token.NewConst(text, token.Float(f), pos), nil
	}

	i, err := parseInt(text, prefixed)
	if err != nil {
		return nil, fault.ErrSyntax.Wrap(err).WithPosition(pos).
			With(slog.String("literal", text))
	}

	return token.NewConst(text, token.Int(i), pos), nil
}

// scanString scans a quoted string. Escapes follow Go syntax, and \' is
// accepted in both quote styles. Single-quoted strings may contain any number
// of characters.
func (s *scanner) scanString(pos token.Position) (*token.Terminal, error) {
	start := s.pos
	quote := s.peek()

	s.advance()

	var body strings.Builder

	for {
		if s.eof() || s.peek() == '\n' {
			return nil, fault.ErrSyntax.Wrapf("unterminated string").
				WithPosition(pos)
		}

		ch := s.peek()
		if ch == quote {
			s.advance()

			break
		}

		s.advance()

		switch {
		case ch == '"':
			body.WriteString(`\"`)

		case ch != '\\':
			body.WriteByte(ch)

		case s.peek() == '\'':
			body.WriteByte('\'')
			s.advance()

		case !s.eof() && s.peek() != '\n':
			body.WriteByte(ch)
			body.WriteByte(s.peek())
			s.advance()
		}
	}

	text := s.input[start:s.pos]

	// The body is requoted with double quotes so strconv handles both styles.
	str, err := strconv.Unquote(`"` + body.String() + `"`)
	if err != nil {
		return nil, fault.ErrSyntax.Wrap(err).WithPosition(pos).
			With(slog.String("literal", text))
	}

	return token.NewConst(text, token.String(str), pos), nil
}

// scanWord scans an identifier and classifies it as a boolean constant, a
// keyword, a function (when followed by '(') or a variable.
func (s *scanner) scanWord(pos token.Position) *token.Terminal {
	start := s.pos

	for isIdentifierPart(s.peek()) {
		s.advance()
	}

	word := s.input[start:s.pos]

	switch {
	case word == "true" || word == "false":
		return token.NewConst(word, token.Bool(word == "true"), pos)

	case keywords[word]:
		return token.NewKeyword(word, pos)

	case s.nextNonBlank() == '(':
		return token.NewFunction(word, pos)

	default:
		return token.NewVariable(word, pos)
	}
}

// skipWhitespaceAndComments skips blanks, newlines, and '#' or '//' line
// comments.
func (s *scanner) skipWhitespaceAndComments() {
	for !s.eof() {
		ch := s.peek()

		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			s.advance()

		case ch == '#' || (ch == '/' && s.peekAt(1) == '/'):
			for !s.eof() && s.peek() != '\n' {
				s.advance()
			}

		default:
			return
		}
	}
}

// nextNonBlank returns the next byte that is not a space or tab without
// consuming anything.
func (s *scanner) nextNonBlank() byte {
	for i := s.pos; i < len(s.input); i++ {
		if ch := s.input[i]; ch != ' ' && ch != '\t' {
			return ch
		}
	}

	return 0
}

func (s *scanner) eof() bool { return s.pos >= len(s.input) }

func (s *scanner) peek() byte { return s.peekAt(0) }

func (s *scanner) peekAt(n int) byte {
	if s.pos+n >= len(s.input) {
		return 0
	}

	return s.input[s.pos+n]
}

func (s *scanner) hasPrefix(p string) bool {
	return strings.HasPrefix(s.input[s.pos:], p)
}

func (s *scanner) advance() {
	if s.eof() {
		return
	}

	switch ch := s.input[s.pos]; {
	case ch == '\n':
		s.line++
		s.col = 1
	case !utf8.RuneStart(ch):
		// Columns count runes.
	default:
		s.col++
	}

	s.pos++
}

func (s *scanner) advanceN(n int) {
	for range n {
		s.advance()
	}
}

func (s *scanner) position() token.Position {
	return token.Position{Line: s.line, Column: s.col}
}

// parseInt parses an integer literal. Unprefixed literals are always decimal,
// so a leading zero does not select octal.
func parseInt(text string, prefixed bool) (int64, error) {
	if !prefixed {
		text = strings.TrimLeft(text, "0")
		if text == "" || text[0] == '_' {
			text = "0" + text
		}
	}

	return strconv.ParseInt(text, 0, 64)
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isAlnum(ch byte) bool {
	return isDigit(ch) || (ch|0x20 >= 'a' && ch|0x20 <= 'z')
}

func isIdentifierStart(ch byte) bool {
	return ch == '_' || (ch|0x20 >= 'a' && ch|0x20 <= 'z')
}

func isIdentifierPart(ch byte) bool {
	return isIdentifierStart(ch) || isDigit(ch)
}
