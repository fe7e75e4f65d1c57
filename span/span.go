// Package span holds the half-open byte range shared by every other
// package in this module (tokens, AST nodes, diagnostics, completion
// ranges). Keeping it leaf-level avoids import cycles between lexer,
// parser, semantic and ide.
package span

import "fmt"

// Span is a half-open byte range [Start, End) into the original source
// text. A zero-width span (Start == End) is valid and denotes an
// insertion point.
type Span struct {
	Start uint32
	End   uint32
}

// New builds a Span, panicking if end precedes start.
func New(start, end uint32) Span {
	if end < start {
		panic(fmt.Sprintf("span: end %d precedes start %d", end, start))
	}
	return Span{Start: start, End: end}
}

// At returns a zero-width span at pos.
func At(pos uint32) Span {
	return Span{Start: pos, End: pos}
}

// Len returns the byte length of the span.
func (s Span) Len() uint32 {
	return s.End - s.Start
}

// IsEmpty reports whether the span has zero width.
func (s Span) IsEmpty() bool {
	return s.Start == s.End
}

// To returns the smallest span covering both s and other, regardless of
// their relative order.
func (s Span) To(other Span) Span {
	start := s.Start
	if other.Start < start {
		start = other.Start
	}
	end := s.End
	if other.End > end {
		end = other.End
	}
	return Span{Start: start, End: end}
}

// Contains reports whether pos falls within [Start, End).
func (s Span) Contains(pos uint32) bool {
	return pos >= s.Start && pos < s.End
}

// Intersects reports whether s and other share any byte, treating a
// zero-width span as touching only spans that strictly contain its
// position.
func (s Span) Intersects(other Span) bool {
	return s.Start < other.End && s.End > other.Start
}

// ClampToLen clamps the span to a maximum length, used when a caller
// supplies an out-of-range cursor position.
func ClampToLen(s Span, n uint32) Span {
	start, end := s.Start, s.End
	if start > n {
		start = n
	}
	if end > n {
		end = n
	}
	if end < start {
		end = start
	}
	return Span{Start: start, End: end}
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}
