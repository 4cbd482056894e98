// Package position provides source position tracking for the smac lexer.
// A position is an opaque character offset into one input; line and column
// are only derived on demand when a diagnostic is rendered.
package position

import (
	"fmt"
	"path/filepath"
)

// Position represents a single point in an input stream.
type Position struct {
	Filename string // Source name, empty for anonymous input
	Offset   int    // 0-based character (rune) offset
}

// At returns an anonymous position at offset.
func At(offset int) Position {
	return Position{Offset: offset}
}

// IsValid returns true if the position is valid
func (p Position) IsValid() bool {
	return p.Offset >= 0
}

// String returns a string representation of the position
func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s@%d", filepath.Base(p.Filename), p.Offset)
	}
	return fmt.Sprintf("@%d", p.Offset)
}

// Before returns true if this position comes before other
func (p Position) Before(other Position) bool {
	if p.Filename != other.Filename {
		return p.Filename < other.Filename
	}
	return p.Offset < other.Offset
}

// After returns true if this position comes after other
func (p Position) After(other Position) bool {
	if p.Filename != other.Filename {
		return p.Filename > other.Filename
	}
	return p.Offset > other.Offset
}

// Span represents a range of input between two positions
type Span struct {
	Start Position // Starting position (inclusive)
	End   Position // Ending position (exclusive)
}

// IsValid returns true if the span is valid
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid() &&
		s.Start.Filename == s.End.Filename &&
		s.Start.Offset <= s.End.Offset
}

// String returns a string representation of the span
func (s Span) String() string {
	if s.Start.Filename != "" {
		return fmt.Sprintf("%s@%d-%d", filepath.Base(s.Start.Filename), s.Start.Offset, s.End.Offset)
	}
	return fmt.Sprintf("@%d-%d", s.Start.Offset, s.End.Offset)
}

// Contains returns true if the span contains the given position
func (s Span) Contains(pos Position) bool {
	if !s.IsValid() || !pos.IsValid() {
		return false
	}
	if s.Start.Filename != pos.Filename {
		return false
	}
	return s.Start.Offset <= pos.Offset && pos.Offset < s.End.Offset
}

// Length returns the number of characters covered by the span.
func (s Span) Length() int {
	if !s.IsValid() {
		return 0
	}
	return s.End.Offset - s.Start.Offset
}
