package lexer

import (
	"fmt"

	"github.com/orizon-lang/smac/internal/position"
)

// TokenType classifies a token. The set is open: the built-in matchers use
// the constants below, and callers declare their own kinds for ConstantMatcher.
type TokenType string

// Built-in token types.
const (
	TokenWhitespace    TokenType = "WHITESPACE"
	TokenIntLiteral    TokenType = "INT_LITERAL"
	TokenCharLiteral   TokenType = "CHAR_LITERAL"
	TokenStringLiteral TokenType = "STRING_LITERAL"
	TokenIdentifier    TokenType = "IDENTIFIER"
)

// String returns a string representation of the token type
func (tt TokenType) String() string {
	if tt == "" {
		return "UNKNOWN"
	}
	return string(tt)
}

// Token represents a lexical token with position information
type Token struct {
	Type   TokenType
	Lexeme string

	// Pos is the cursor position after the token was consumed.
	Pos position.Position
	// Start is the cursor position before the token was consumed.
	Start position.Position
}

// NewToken creates a token stamped with the last position only.
func NewToken(kind TokenType, pos position.Position, lexeme string) Token {
	return Token{Type: kind, Pos: pos, Start: pos, Lexeme: lexeme}
}

// Span returns the range of input the token was matched from.
func (t Token) Span() position.Span {
	return position.Span{Start: t.Start, End: t.Pos}
}

// String returns a string representation of the token
func (t Token) String() string {
	return fmt.Sprintf("{Type: %s, Lexeme: %q, Pos: %s}", t.Type, t.Lexeme, t.Pos)
}
