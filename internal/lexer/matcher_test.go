package lexer

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lexerrors "github.com/orizon-lang/smac/internal/errors"
)

const TokenSymbol TokenType = "SYMBOL"

// matchOnce runs m at the start of input and reports the token and the
// cursor offset afterwards.
func matchOnce(t *testing.T, m Matcher, input string) (Token, bool, int) {
	t.Helper()
	tk := NewTokenizer(input)
	tok, ok, err := m.Match(tk)
	require.NoError(t, err)
	return tok, ok, tk.Offset()
}

func TestMatchers(t *testing.T) {
	tests := []struct {
		name          string
		matcher       Matcher
		input         string
		expectedOk    bool
		expectedType  TokenType
		expectedValue string
		expectedEnd   int
	}{
		{"whitespace run", WhitespaceMatcher{}, " \t\n x", true, TokenWhitespace, "", 4},
		{"whitespace declines", WhitespaceMatcher{}, "x ", false, "", "", 0},
		{"whitespace on empty input", WhitespaceMatcher{}, "", false, "", "", 0},

		{"decimal", IntLiteralMatcher{}, "42)", true, TokenIntLiteral, "42", 2},
		{"leading zeros", IntLiteralMatcher{}, "007", true, TokenIntLiteral, "7", 3},
		{"zero", IntLiteralMatcher{}, "0", true, TokenIntLiteral, "0", 1},
		{"hex", IntLiteralMatcher{}, "0x1A", true, TokenIntLiteral, "26", 4},
		{"hex mixed case", IntLiteralMatcher{}, "0xfF g", true, TokenIntLiteral, "255", 4},
		{"binary", IntLiteralMatcher{}, "0b101", true, TokenIntLiteral, "5", 5},
		{"binary stops at non-binary digit", IntLiteralMatcher{}, "0b1012", true, TokenIntLiteral, "5", 5},
		{"max uint64", IntLiteralMatcher{}, "18446744073709551615", true, TokenIntLiteral, "18446744073709551615", 20},
		{"bare hex prefix declines", IntLiteralMatcher{}, "0x", false, "", "", 0},
		{"hex prefix without digits declines", IntLiteralMatcher{}, "0xg", false, "", "", 0},
		{"letters decline", IntLiteralMatcher{}, "abc", false, "", "", 0},
		{"non-ascii digits decline", IntLiteralMatcher{}, "٣", false, "", "", 0},

		{"double quoted", StringLiteralMatcher{}, `"hello" x`, true, TokenStringLiteral, "hello", 7},
		{"single char collapses", StringLiteralMatcher{}, `"h"`, true, TokenCharLiteral, "h", 3},
		{"single quoted char", StringLiteralMatcher{}, `'c'`, true, TokenCharLiteral, "c", 3},
		{"empty string", StringLiteralMatcher{}, `""`, true, TokenStringLiteral, "", 2},
		{"multibyte char", StringLiteralMatcher{}, `'é'`, true, TokenCharLiteral, "é", 3},
		{"escapes translated", StringLiteralMatcher{}, `"a\nb"`, true, TokenStringLiteral, "a\nb", 6},
		{"all escapes", StringLiteralMatcher{}, `"\\\"\r\t"`, true, TokenStringLiteral, "\\\"\r\t", 10},
		{"escaped quote only", StringLiteralMatcher{}, `"\""`, true, TokenCharLiteral, `"`, 4},
		{"single quoted is raw", StringLiteralMatcher{}, `'a\nb'`, true, TokenStringLiteral, `a\nb`, 6},
		{"single quote ends at next quote", StringLiteralMatcher{}, `'it''s'`, true, TokenStringLiteral, "it", 4},
		{"double quote inside single", StringLiteralMatcher{}, `'say "hi"'`, true, TokenStringLiteral, `say "hi"`, 10},
		{"string declines", StringLiteralMatcher{}, "abc", false, "", "", 0},

		{"identifier", IdentifierMatcher{}, "working? rest", true, TokenIdentifier, "working?", 8},
		{"leading underscore", IdentifierMatcher{}, "_works", true, TokenIdentifier, "_works", 6},
		{"bang and question", IdentifierMatcher{}, "wo_ork!?)", true, TokenIdentifier, "wo_ork!?", 8},
		{"digits after first", IdentifierMatcher{}, "x1y2", true, TokenIdentifier, "x1y2", 4},
		{"unicode letters", IdentifierMatcher{}, "größe", true, TokenIdentifier, "größe", 5},
		{"combining vowel sign", IdentifierMatcher{}, "กิน x", true, TokenIdentifier, "กิน", 3},
		{"letter number first", IdentifierMatcher{}, "Ⅻx", true, TokenIdentifier, "Ⅻx", 2},
		{"vowel sign first declines", IdentifierMatcher{}, "\u0e34x", false, "", "", 0},
		{"digit first declines", IdentifierMatcher{}, "1x", false, "", "", 0},
		{"bang first declines", IdentifierMatcher{}, "!x", false, "", "", 0},

		{"constant", NewConstantMatcher(TokenSymbol, "(", ")"), ")(", true, TokenSymbol, ")", 1},
		{"constant order wins", NewConstantMatcher(TokenSymbol, "==", "="), "==", true, TokenSymbol, "==", 2},
		{"shorter constant near end", NewConstantMatcher(TokenSymbol, "==", "="), "=", true, TokenSymbol, "=", 1},
		{"prefix listed first shadows", NewConstantMatcher(TokenSymbol, "=", "=="), "==", true, TokenSymbol, "=", 1},
		{"keyword", NewConstantMatcher("KEYWORD", "let", "lambda"), "lambda x", true, "KEYWORD", "lambda", 6},
		{"constant declines", NewConstantMatcher(TokenSymbol, "(", ")"), "x", false, "", "", 0},
		{"constant needs enough input", NewConstantMatcher(TokenSymbol, "->"), "-", false, "", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, ok, end := matchOnce(t, tt.matcher, tt.input)

			assert.Equal(t, tt.expectedOk, ok)
			assert.Equal(t, tt.expectedEnd, end)
			if !tt.expectedOk {
				return
			}
			assert.Equal(t, tt.expectedType, tok.Type)
			assert.Equal(t, tt.expectedValue, tok.Lexeme)
			assert.Equal(t, tt.expectedEnd, tok.Pos.Offset, "tokens are stamped with the last position")
			assert.Equal(t, 0, tok.Start.Offset)
		})
	}
}

func TestIntLiteralOverflow(t *testing.T) {
	tests := []string{
		"18446744073709551616",
		"0x10000000000000000",
		"0b" + strings.Repeat("1", 65),
	}

	for i, input := range tests {
		tk := NewTokenizer(input)
		_, ok, err := IntLiteralMatcher{}.Match(tk)

		assert.Falsef(t, ok, "tests[%d]", i)
		require.Errorf(t, err, "tests[%d]", i)
		assert.Truef(t, errors.Is(err, lexerrors.ErrNumericOverflow), "tests[%d] - got %v", i, err)

		var se *lexerrors.StandardError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, input, se.Context["text"])
		assert.Equal(t, 0, se.Pos.Offset)
	}
}

func TestStringLiteralInvalidEscape(t *testing.T) {
	tk := NewTokenizer(`"ab\q"`)
	_, ok, err := StringLiteralMatcher{}.Match(tk)

	assert.False(t, ok)
	require.Error(t, err)
	assert.True(t, errors.Is(err, lexerrors.ErrInvalidEscape))

	var se *lexerrors.StandardError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 'q', se.Context["char"])
	assert.Equal(t, 4, se.Pos.Offset, "reported at the escaped character")
}

func TestStringLiteralUnterminated(t *testing.T) {
	tests := []string{
		`"abc`,
		`'abc`,
		`"abc\"`,
		`"abc\`,
		`"`,
	}

	for i, input := range tests {
		tk := NewTokenizer(input)
		_, ok, err := StringLiteralMatcher{}.Match(tk)

		assert.Falsef(t, ok, "tests[%d]", i)
		assert.Truef(t, errors.Is(err, lexerrors.ErrUnterminatedLiteral), "tests[%d] - got %v", i, err)
	}
}

func TestConstantMatcherIgnoresEmptyConstants(t *testing.T) {
	m := NewConstantMatcher(TokenSymbol, "", "(", "")

	assert.Equal(t, []string{"("}, m.Constants())
	assert.Equal(t, TokenSymbol, m.Kind())

	_, ok, end := matchOnce(t, m, "x")
	assert.False(t, ok)
	assert.Equal(t, 0, end)
}

func TestConstantMatcherMultiRuneConstant(t *testing.T) {
	m := NewConstantMatcher(TokenSymbol, "→", "λ")
	tok, ok, end := matchOnce(t, m, "λx")

	assert.True(t, ok)
	assert.Equal(t, "λ", tok.Lexeme)
	assert.Equal(t, 1, end)
}

func TestMatcherFunc(t *testing.T) {
	var m Matcher = MatcherFunc(func(tk *Tokenizer) (Token, bool, error) {
		start := tk.LastPosition()
		if r, ok := tk.PeekN(0); !ok || r != '#' {
			return Token{}, false, nil
		}
		tk.Advance(1)
		return emit(tk, "HASH", start, "#"), true, nil
	})

	tok, ok, end := matchOnce(t, m, "#!")
	assert.True(t, ok)
	assert.Equal(t, TokenType("HASH"), tok.Type)
	assert.Equal(t, 1, end)
}

func TestMatcherNames(t *testing.T) {
	assert.Equal(t, "whitespace", matcherName(WhitespaceMatcher{}))
	assert.Equal(t, "constant(SYMBOL)", matcherName(NewConstantMatcher(TokenSymbol)))
	assert.Equal(t, "lexer.MatcherFunc", matcherName(MatcherFunc(nil)))
}
