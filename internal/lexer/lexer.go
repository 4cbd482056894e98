// Package lexer implements a composable lexical analyzer: a character cursor
// (Tokenizer) driven by an ordered list of pluggable Matchers.
//
// A Lexer tries its matchers in registration order at each position and
// commits to the first one that produces a token. Registration order is
// therefore a priority order. Lexing stops at the end of input or at the
// first error; a Lexer is not restartable.
package lexer

import (
	"errors"
	"fmt"
	"io"
	"iter"

	lexerrors "github.com/orizon-lang/smac/internal/errors"
)

// ErrLexerStarted is returned when matchers are registered after the first
// token has been requested.
var ErrLexerStarted = errors.New("lexer: matchers must be registered before lexing starts")

type state int

const (
	stateConfiguring state = iota
	stateRunning
	stateDone
)

// Lexer represents the lexical analyzer driving one Tokenizer.
type Lexer struct {
	tokenizer *Tokenizer
	matchers  []Matcher
	state     state
	err       error
	count     int
}

// New creates a lexer over t with the given matchers, in priority order.
// An invalid matcher list is reported by the first call to Next.
func New(t *Tokenizer, matchers ...Matcher) *Lexer {
	l := &Lexer{tokenizer: t}
	if err := l.Register(matchers...); err != nil {
		l.fail(err)
	}
	return l
}

// Register appends matchers after those already registered.
func (l *Lexer) Register(matchers ...Matcher) error {
	if l.state != stateConfiguring {
		return ErrLexerStarted
	}
	for i, m := range matchers {
		if m == nil {
			return fmt.Errorf("lexer: matcher %d is nil", i)
		}
	}
	l.matchers = append(l.matchers, matchers...)
	return nil
}

// Matchers returns the registered matchers in priority order.
func (l *Lexer) Matchers() []Matcher {
	return append([]Matcher(nil), l.matchers...)
}

// Tokenizer returns the cursor the lexer drives.
func (l *Lexer) Tokenizer() *Tokenizer {
	return l.tokenizer
}

// Count returns the number of tokens produced so far.
func (l *Lexer) Count() int {
	return l.count
}

// Err returns the error that stopped lexing, if any.
func (l *Lexer) Err() error {
	return l.err
}

// Next returns the next token. It returns io.EOF once the input is
// exhausted, and keeps returning the same error after a failure.
func (l *Lexer) Next() (Token, error) {
	if l.state == stateDone {
		if l.err != nil {
			return Token{}, l.err
		}
		return Token{}, io.EOF
	}
	l.state = stateRunning

	t := l.tokenizer
	if t.End() {
		l.state = stateDone
		return Token{}, io.EOF
	}

	start := t.LastPosition()
	for _, m := range l.matchers {
		tok, ok, err := m.Match(t)
		if err != nil {
			return l.fail(err)
		}

		moved := t.Offset() - start.Offset
		if !ok {
			if moved != 0 {
				return l.fail(lexerrors.MatcherContract(start, matcherName(m),
					fmt.Sprintf("declined after consuming %d characters", moved)))
			}
			continue
		}
		if moved <= 0 {
			return l.fail(lexerrors.MatcherContract(start, matcherName(m),
				"produced a token without consuming input"))
		}

		tok.Start = start
		l.count++
		return tok, nil
	}

	ch, _ := t.Peek()
	return l.fail(lexerrors.UnrecognizedInput(start, ch))
}

func (l *Lexer) fail(err error) (Token, error) {
	l.state = stateDone
	l.err = err
	return Token{}, err
}

// All returns the token stream as a lazy sequence. A failure is yielded
// once, as the final element, with a zero Token.
func (l *Lexer) All() iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		for {
			tok, err := l.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(Token{}, err)
				return
			}
			if !yield(tok, nil) {
				return
			}
		}
	}
}

// Collect drains the lexer. On failure it returns the tokens produced
// before the failure together with the error.
func (l *Lexer) Collect() ([]Token, error) {
	var tokens []Token
	for tok, err := range l.All() {
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}
