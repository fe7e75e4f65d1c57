// Package sourcemap converts byte offsets into the source text into
// editor-friendly coordinates: 1-based line/column pairs for diagnostic
// rendering, and UTF-16 code unit offsets for the editor-binding layer
// (which this module does not itself implement, but whose one
// load-bearing primitive — byte-to-UTF-16 conversion — belongs here).
package sourcemap

import "unicode/utf8"

// SourceMap precomputes line start offsets for a source string so
// repeated LineCol lookups don't rescan from the beginning each time.
type SourceMap struct {
	source      string
	lineStarts  []uint32 // byte offset of the first byte of each line
}

// New builds a SourceMap over source.
func New(source string) *SourceMap {
	starts := []uint32{0}
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			starts = append(starts, uint32(i+1))
		}
	}
	return &SourceMap{source: source, lineStarts: starts}
}

// ClampToCharBoundary moves pos backward until it lands on a UTF-8
// character boundary, never past the start of the string. Used to make
// lookups safe against byte offsets that split a multi-byte rune (which
// can happen with caller-supplied cursor positions).
func ClampToCharBoundary(s string, pos uint32) uint32 {
	if pos > uint32(len(s)) {
		pos = uint32(len(s))
	}
	for pos > 0 && pos < uint32(len(s)) && !utf8.RuneStart(s[pos]) {
		pos--
	}
	return pos
}

// LineCol returns the 1-based line and column for a byte offset. The
// column counts Unicode scalar values (runes) from the start of the
// line, not bytes, so a multi-byte character before pos only advances
// the column by one.
func (m *SourceMap) LineCol(pos uint32) (line, col int) {
	pos = ClampToCharBoundary(m.source, pos)

	lo, hi := 0, len(m.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if m.lineStarts[mid] <= pos {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	lineStart := m.lineStarts[lo]
	runes := utf8.RuneCountInString(m.source[lineStart:pos])
	return lo + 1, runes + 1
}

// ByteOffsetToUTF16 converts a byte offset in s into the number of
// UTF-16 code units that precede it, the coordinate system used by the
// Language Server Protocol's Position type. A surrogate-pair-producing
// rune (outside the Basic Multilingual Plane) counts as two units.
func ByteOffsetToUTF16(s string, byteOffset uint32) uint32 {
	byteOffset = ClampToCharBoundary(s, byteOffset)
	var units uint32
	for i := 0; uint32(i) < byteOffset; {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r > 0xFFFF {
			units += 2
		} else {
			units++
		}
		i += size
	}
	return units
}
