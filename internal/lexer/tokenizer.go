package lexer

import (
	"fmt"
	"io"

	lexerrors "github.com/orizon-lang/smac/internal/errors"
	"github.com/orizon-lang/smac/internal/position"
)

// Tokenizer is the character cursor over one input. It knows nothing about
// tokens; matchers drive it through lookahead and consumption. The offset
// only ever moves forward.
type Tokenizer struct {
	input    []rune
	offset   int
	filename string
}

// NewTokenizer creates a tokenizer over src.
func NewTokenizer(src string) *Tokenizer {
	return NewTokenizerWithFilename(src, "")
}

// NewTokenizerWithFilename creates a tokenizer whose positions carry filename.
func NewTokenizerWithFilename(src, filename string) *Tokenizer {
	return &Tokenizer{input: []rune(src), filename: filename}
}

// ReadTokenizer reads all of r and creates a tokenizer over it.
func ReadTokenizer(r io.Reader, filename string) (*Tokenizer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return NewTokenizerWithFilename(string(data), filename), nil
}

// Peek returns the current character without consuming it.
func (t *Tokenizer) Peek() (rune, error) {
	if t.End() {
		return 0, lexerrors.EndOfInput(t.LastPosition())
	}
	return t.input[t.offset], nil
}

// PeekN returns the character k positions ahead of the current one.
// ok is false when that position lies beyond the end of input.
func (t *Tokenizer) PeekN(k int) (r rune, ok bool) {
	i := t.offset + k
	if k < 0 || i >= len(t.input) {
		return 0, false
	}
	return t.input[i], true
}

// PeekString returns the next n characters without consuming them.
// ok is false when fewer than n characters remain.
func (t *Tokenizer) PeekString(n int) (s string, ok bool) {
	if n < 0 || t.offset+n > len(t.input) {
		return "", false
	}
	return string(t.input[t.offset : t.offset+n]), true
}

// Next consumes and returns the current character.
func (t *Tokenizer) Next() (rune, error) {
	r, err := t.Peek()
	if err != nil {
		return 0, err
	}
	t.offset++
	return r, nil
}

// Advance consumes up to n characters without inspecting them and returns
// how many were consumed.
func (t *Tokenizer) Advance(n int) int {
	if n <= 0 {
		return 0
	}
	n = min(n, t.Remaining())
	t.offset += n
	return n
}

// End reports whether no characters remain.
func (t *Tokenizer) End() bool {
	return t.offset >= len(t.input)
}

// Remaining returns the number of unconsumed characters.
func (t *Tokenizer) Remaining() int {
	return len(t.input) - t.offset
}

// Offset returns the current character offset.
func (t *Tokenizer) Offset() int {
	return t.offset
}

// LastPosition returns the current position, used to stamp new tokens.
func (t *Tokenizer) LastPosition() position.Position {
	return position.Position{Filename: t.filename, Offset: t.offset}
}

// Filename returns the name positions are stamped with.
func (t *Tokenizer) Filename() string {
	return t.filename
}
