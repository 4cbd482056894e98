package position

import (
	"fmt"
	"strings"
)

// Highlighter renders input snippets with a caret marker, for diagnostics.
// It works on character offsets and computes line numbers only for display.
type Highlighter struct {
	source []rune
	// Context is the number of lines shown before the marked line.
	Context int
}

// NewHighlighter creates a highlighter over source.
func NewHighlighter(source string) *Highlighter {
	return &Highlighter{source: []rune(source), Context: 1}
}

// LineOf returns the 1-based line and column of a character offset.
func (h *Highlighter) LineOf(offset int) (line, column int) {
	line, column = 1, 1
	for i := 0; i < offset && i < len(h.source); i++ {
		if h.source[i] == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}
	return line, column
}

// lines splits the source keeping rune indexing.
func (h *Highlighter) lines() [][]rune {
	var out [][]rune
	start := 0
	for i, r := range h.source {
		if r == '\n' {
			out = append(out, h.source[start:i])
			start = i + 1
		}
	}
	return append(out, h.source[start:])
}

// Highlight returns the lines around span with the span marked by carets.
// An empty span is marked with a single caret.
func (h *Highlighter) Highlight(span Span) string {
	if !span.IsValid() {
		return "Invalid span"
	}

	lines := h.lines()
	line, col := h.LineOf(span.Start.Offset)
	if line > len(lines) {
		line = len(lines)
	}

	var result strings.Builder
	first := max(1, line-h.Context)
	for n := first; n <= line; n++ {
		result.WriteString(fmt.Sprintf("%4d | %s\n", n, string(lines[n-1])))
	}

	width := max(1, span.Length())
	if rest := len(lines[line-1]) - col + 1; width > rest && rest > 0 {
		width = rest
	}

	result.WriteString("     | ")
	for i := 1; i < col; i++ {
		// Keep tabs so the caret lines up with the rendered source.
		if i <= len(lines[line-1]) && lines[line-1][i-1] == '\t' {
			result.WriteString("\t")
		} else {
			result.WriteString(" ")
		}
	}
	result.WriteString(strings.Repeat("^", width))
	result.WriteString("\n")

	return result.String()
}

// HighlightPosition marks a single position.
func (h *Highlighter) HighlightPosition(pos Position) string {
	return h.Highlight(Span{Start: pos, End: pos})
}
