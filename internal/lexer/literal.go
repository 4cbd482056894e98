package lexer

import (
	"strconv"
	"strings"
	"unicode/utf8"

	lexerrors "github.com/orizon-lang/smac/internal/errors"
)

// IntLiteralMatcher matches decimal literals and hexadecimal or binary
// literals prefixed by 0x or 0b. The lexeme is always the base-10 text of
// the value, so 0x1A and 26 produce the same lexeme.
type IntLiteralMatcher struct{}

func (IntLiteralMatcher) Name() string { return "int-literal" }

// Match implements Matcher.
func (IntLiteralMatcher) Match(t *Tokenizer) (Token, bool, error) {
	start := t.LastPosition()

	base, prefix := 10, 0
	if c, ok := t.PeekN(0); ok && c == '0' {
		switch next, _ := t.PeekN(1); next {
		case 'x':
			base, prefix = 16, 2
		case 'b':
			base, prefix = 2, 2
		}
	}

	n := prefix
	for {
		c, ok := t.PeekN(n)
		if !ok || !isDigit(c, base) {
			break
		}
		n++
	}
	if n == prefix {
		// Nothing consumed yet, so a bare "0x" is declined as a whole.
		return Token{}, false, nil
	}

	text, _ := t.PeekString(n)
	digits := text[prefix:]
	t.Advance(n)

	value, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return Token{}, false, lexerrors.NumericOverflow(start, text, base)
	}
	return emit(t, TokenIntLiteral, start, strconv.FormatUint(value, 10)), true, nil
}

func isDigit(c rune, base int) bool {
	switch base {
	case 2:
		return c == '0' || c == '1'
	case 16:
		return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
	default:
		return '0' <= c && c <= '9'
	}
}

// StringLiteralMatcher matches double-quoted strings, which support the
// escapes \\ \" \n \r \t, and single-quoted strings, which are taken
// verbatim. Content of exactly one character is reported as a char literal.
type StringLiteralMatcher struct{}

func (StringLiteralMatcher) Name() string { return "string-literal" }

// Match implements Matcher.
func (StringLiteralMatcher) Match(t *Tokenizer) (Token, bool, error) {
	start := t.LastPosition()
	delimiter, ok := t.PeekN(0)
	if !ok || (delimiter != '"' && delimiter != '\'') {
		return Token{}, false, nil
	}
	t.Advance(1)

	var content strings.Builder
	escaped := false
scan:
	for {
		c, err := t.Next()
		if err != nil {
			return Token{}, false, lexerrors.UnterminatedLiteral(start, delimiter)
		}

		switch {
		case delimiter == '\'':
			if c == '\'' {
				break scan
			}
			content.WriteRune(c)
		case escaped:
			r, ok := unescape(c)
			if !ok {
				pos := t.LastPosition()
				pos.Offset--
				return Token{}, false, lexerrors.InvalidEscape(pos, c)
			}
			content.WriteRune(r)
			escaped = false
		case c == '\\':
			escaped = true
		case c == '"':
			break scan
		default:
			content.WriteRune(c)
		}
	}

	s := content.String()
	kind := TokenStringLiteral
	if utf8.RuneCountInString(s) == 1 {
		kind = TokenCharLiteral
	}
	return emit(t, kind, start, s), true, nil
}

func unescape(c rune) (rune, bool) {
	switch c {
	case '\\', '"':
		return c, true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	}
	return 0, false
}
