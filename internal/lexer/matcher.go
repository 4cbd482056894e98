package lexer

import (
	"fmt"
	"unicode"

	"github.com/orizon-lang/smac/internal/position"
)

//go:generate mockgen -source=matcher.go -destination=matcher_mock_test.go -package=lexer_test

// Matcher attempts to consume one token from the front of the remaining
// input. A matcher that returns ok == false must leave the tokenizer offset
// exactly where it found it; one that returns ok == true must have consumed
// exactly the characters of its token. A non-nil error ends lexing.
type Matcher interface {
	Match(t *Tokenizer) (tok Token, ok bool, err error)
}

// MatcherFunc adapts a function to the Matcher interface.
type MatcherFunc func(t *Tokenizer) (Token, bool, error)

// Match calls f(t).
func (f MatcherFunc) Match(t *Tokenizer) (Token, bool, error) {
	return f(t)
}

// namer is implemented by matchers that want a readable name in diagnostics.
type namer interface {
	Name() string
}

func matcherName(m Matcher) string {
	if n, ok := m.(namer); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", m)
}

// emit builds a token that spans from start to the tokenizer's current position.
func emit(t *Tokenizer, kind TokenType, start position.Position, lexeme string) Token {
	tok := NewToken(kind, t.LastPosition(), lexeme)
	tok.Start = start
	return tok
}

// WhitespaceMatcher consumes a maximal run of whitespace. The resulting
// token has an empty lexeme; only the fact that whitespace occurred is kept.
type WhitespaceMatcher struct{}

func (WhitespaceMatcher) Name() string { return "whitespace" }

// Match implements Matcher.
func (WhitespaceMatcher) Match(t *Tokenizer) (Token, bool, error) {
	start := t.LastPosition()
	n := 0
	for {
		c, ok := t.PeekN(n)
		if !ok || !unicode.IsSpace(c) {
			break
		}
		n++
	}
	if n == 0 {
		return Token{}, false, nil
	}
	t.Advance(n)
	return emit(t, TokenWhitespace, start, ""), true, nil
}

// IdentifierMatcher matches an alphabetic character or underscore followed
// by any run of alphabetic characters, digits, underscores, '?' and '!'.
// Alphabetic follows the Unicode Alphabetic property, so combining vowel
// signs and letter numbers are part of an identifier.
type IdentifierMatcher struct{}

func (IdentifierMatcher) Name() string { return "identifier" }

// Match implements Matcher.
func (IdentifierMatcher) Match(t *Tokenizer) (Token, bool, error) {
	start := t.LastPosition()
	first, ok := t.PeekN(0)
	if !ok || !IsIdentifierStart(first) {
		return Token{}, false, nil
	}
	n := 1
	for {
		c, ok := t.PeekN(n)
		if !ok || !isIdentifierRune(c) {
			break
		}
		n++
	}
	ident, _ := t.PeekString(n)
	t.Advance(n)
	return emit(t, TokenIdentifier, start, ident), true, nil
}

// IsIdentifierStart reports whether c can begin an identifier.
func IsIdentifierStart(c rune) bool {
	return c == '_' || isAlphabetic(c)
}

func isIdentifierRune(c rune) bool {
	switch c {
	case '_', '?', '!':
		return true
	}
	return isAlphabetic(c) || unicode.IsNumber(c)
}

// isAlphabetic approximates the Unicode Alphabetic property, which the
// unicode package does not export as a single table.
func isAlphabetic(c rune) bool {
	return unicode.In(c, unicode.Letter, unicode.Nl, unicode.Other_Alphabetic)
}

// ConstantMatcher matches a fixed list of strings, all reported with the
// same token type. Constants are tried in order and the first one that
// matches wins, so a constant must be listed before any shorter constant
// that is a prefix of it ("==" before "=").
type ConstantMatcher struct {
	kind      TokenType
	constants []string
	lengths   []int
}

// NewConstantMatcher creates a matcher for constants of the given kind.
// Empty strings are ignored since they would match without consuming input.
func NewConstantMatcher(kind TokenType, constants ...string) *ConstantMatcher {
	m := &ConstantMatcher{kind: kind}
	for _, c := range constants {
		if c == "" {
			continue
		}
		m.constants = append(m.constants, c)
		m.lengths = append(m.lengths, len([]rune(c)))
	}
	return m
}

func (m *ConstantMatcher) Name() string { return "constant(" + string(m.kind) + ")" }

// Kind returns the token type reported for every constant.
func (m *ConstantMatcher) Kind() TokenType { return m.kind }

// Constants returns the constants in match order.
func (m *ConstantMatcher) Constants() []string {
	return append([]string(nil), m.constants...)
}

// Match implements Matcher.
func (m *ConstantMatcher) Match(t *Tokenizer) (Token, bool, error) {
	start := t.LastPosition()
	for i, constant := range m.constants {
		window, ok := t.PeekString(m.lengths[i])
		if !ok || window != constant {
			continue
		}
		t.Advance(m.lengths[i])
		return emit(t, m.kind, start, constant), true, nil
	}
	return Token{}, false, nil
}
