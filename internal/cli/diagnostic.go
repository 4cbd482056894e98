package cli

import (
	"errors"
	"fmt"
	"strings"

	lexerrors "github.com/orizon-lang/smac/internal/errors"
	"github.com/orizon-lang/smac/internal/position"
)

// FormatDiagnostic renders a lexing error against the source it came from.
// Errors without a position are rendered as a single line.
func FormatDiagnostic(err error, source string, color bool) string {
	paint := func(code, s string) string {
		if !color {
			return s
		}
		return code + s + colorReset
	}

	var se *lexerrors.StandardError
	if !errors.As(err, &se) {
		return paint(colorRed, "error") + ": " + err.Error() + "\n"
	}

	h := position.NewHighlighter(source)
	line, col := h.LineOf(se.Pos.Offset)

	name := se.Pos.Filename
	if name == "" {
		name = "<input>"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", paint(colorBold+colorRed, "error["+se.Code+"]"), se.Message)
	fmt.Fprintf(&b, "  --> %s:%d:%d\n", name, line, col)

	span := position.Span{Start: se.Pos, End: se.Pos}
	if se.Code == lexerrors.CodeUnterminatedLiteral {
		span.End.Offset = len([]rune(source))
	}
	b.WriteString(paint(colorGray, h.Highlight(span)))
	return b.String()
}
