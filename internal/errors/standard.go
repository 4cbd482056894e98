// Package errors provides the categorised error values reported by the smac lexer.
package errors

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/orizon-lang/smac/internal/position"
)

// ErrorCategory represents different categories of errors
type ErrorCategory string

const (
	CategoryInput    ErrorCategory = "INPUT"
	CategoryLiteral  ErrorCategory = "LITERAL"
	CategoryOverflow ErrorCategory = "OVERFLOW"
	CategoryInternal ErrorCategory = "INTERNAL"
)

// Error codes. Two StandardErrors with the same code match under errors.Is.
const (
	CodeEndOfInput          = "END_OF_INPUT"
	CodeUnrecognizedInput   = "UNRECOGNIZED_INPUT"
	CodeInvalidEscape       = "INVALID_ESCAPE_SEQUENCE"
	CodeNumericOverflow     = "NUMERIC_OVERFLOW"
	CodeUnterminatedLiteral = "UNTERMINATED_LITERAL"
	CodeMatcherContract     = "MATCHER_CONTRACT"
)

// Sentinels for errors.Is checks.
var (
	ErrEndOfInput          = &StandardError{Category: CategoryInput, Code: CodeEndOfInput, Message: "end of input"}
	ErrUnrecognizedInput   = &StandardError{Category: CategoryInput, Code: CodeUnrecognizedInput, Message: "unrecognized input"}
	ErrInvalidEscape       = &StandardError{Category: CategoryLiteral, Code: CodeInvalidEscape, Message: "invalid escape sequence"}
	ErrNumericOverflow     = &StandardError{Category: CategoryOverflow, Code: CodeNumericOverflow, Message: "numeric overflow"}
	ErrUnterminatedLiteral = &StandardError{Category: CategoryLiteral, Code: CodeUnterminatedLiteral, Message: "unterminated literal"}
	ErrMatcherContract     = &StandardError{Category: CategoryInternal, Code: CodeMatcherContract, Message: "matcher contract violated"}
)

// StandardError provides a consistent error format
type StandardError struct {
	Category ErrorCategory
	Code     string
	Message  string
	Pos      position.Position
	Context  map[string]interface{}
	Caller   string
}

// Error implements the error interface
func (e *StandardError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s:%s] %s", e.Category, e.Code, e.Message)
	if e.Code != CodeEndOfInput || e.Pos.Offset > 0 {
		fmt.Fprintf(&b, " at %s", e.Pos)
	}
	return b.String()
}

// Is reports whether target is a StandardError with the same code.
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// NewStandardError creates a new standardized error
func NewStandardError(category ErrorCategory, code, message string, pos position.Position, context map[string]interface{}) *StandardError {
	pc, _, _, ok := runtime.Caller(2)
	caller := "unknown"
	if ok {
		if fn := runtime.FuncForPC(pc); fn != nil {
			caller = fn.Name()
		}
	}

	return &StandardError{
		Category: category,
		Code:     code,
		Message:  message,
		Pos:      pos,
		Context:  context,
		Caller:   caller,
	}
}

// EndOfInput reports a read past the last character.
func EndOfInput(pos position.Position) *StandardError {
	return NewStandardError(CategoryInput, CodeEndOfInput, "end of input", pos, nil)
}

// UnrecognizedInput reports that no matcher accepts ch at pos.
func UnrecognizedInput(pos position.Position, ch rune) *StandardError {
	return NewStandardError(CategoryInput, CodeUnrecognizedInput,
		fmt.Sprintf("no matcher accepts %q", ch),
		pos, map[string]interface{}{"char": ch})
}

// InvalidEscape reports an unknown backslash escape inside a string literal.
func InvalidEscape(pos position.Position, ch rune) *StandardError {
	return NewStandardError(CategoryLiteral, CodeInvalidEscape,
		fmt.Sprintf("invalid character escape: \\%c", ch),
		pos, map[string]interface{}{"char": ch})
}

// NumericOverflow reports an integer literal that does not fit in a uint64.
func NumericOverflow(pos position.Position, text string, base int) *StandardError {
	return NewStandardError(CategoryOverflow, CodeNumericOverflow,
		fmt.Sprintf("integer literal %q (base %d) does not fit in 64 bits", text, base),
		pos, map[string]interface{}{"text": text, "base": base})
}

// UnterminatedLiteral reports a string literal with no closing delimiter.
func UnterminatedLiteral(pos position.Position, delimiter rune) *StandardError {
	return NewStandardError(CategoryLiteral, CodeUnterminatedLiteral,
		fmt.Sprintf("literal opened with %c is never closed", delimiter),
		pos, map[string]interface{}{"delimiter": delimiter})
}

// MatcherContract reports a matcher that declined after consuming input or
// produced a token without consuming any.
func MatcherContract(pos position.Position, matcher, details string) *StandardError {
	return NewStandardError(CategoryInternal, CodeMatcherContract,
		fmt.Sprintf("matcher %s %s", matcher, details),
		pos, map[string]interface{}{"matcher": matcher})
}
