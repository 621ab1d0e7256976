// Package position maps between raw byte offsets and editor protocol
// line/column coordinates. Editor protocols address text in UTF-16 code
// units while everything else in this server is byte-oriented, so every
// feature that reports or consumes a position goes through an Index.
package position

import (
	"sort"
	"unicode"
	"unicode/utf8"
)

// Place is a zero-based line and UTF-16 column pair.
type Place struct {
	Line      int
	Character int
}

// Span is a half-open byte range [Start, End) in the source text.
type Span struct {
	Start int
	End   int
}

func (s Span) Len() int {
	return s.End - s.Start
}

// Index is built once per buffer revision and answers offset/position
// queries in O(log lines) plus O(line length) for the UTF-16 conversion.
// It never errors: out-of-range input is clamped to the nearest valid
// location, since editors routinely send positions for a text state that
// no longer exists.
type Index struct {
	text string
	// byte offset of the start of each line, strictly increasing,
	// lineStarts[0] == 0
	lineStarts []int
}

// NewIndex scans text once for line terminators and records line starts.
func NewIndex(text string) *Index {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Index{text: text, lineStarts: starts}
}

// Text returns the source the index was built from.
func (ix *Index) Text() string {
	return ix.text
}

// LineCount returns the number of lines, at least 1.
func (ix *Index) LineCount() int {
	return len(ix.lineStarts)
}

// LineSpan returns the byte range of line, including its trailing
// newline. Lines past the end collapse to an empty span at EOF.
func (ix *Index) LineSpan(line int) Span {
	if line < 0 {
		line = 0
	}
	if line >= len(ix.lineStarts) {
		return Span{Start: len(ix.text), End: len(ix.text)}
	}
	end := len(ix.text)
	if line+1 < len(ix.lineStarts) {
		end = ix.lineStarts[line+1]
	}
	return Span{Start: ix.lineStarts[line], End: end}
}

// ClampOffset snaps offset into the buffer and, if it lands inside a
// multi-byte code point, moves it back to the code point's first byte.
func (ix *Index) ClampOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(ix.text) {
		return len(ix.text)
	}
	for offset > 0 && offset < len(ix.text) && !utf8.RuneStart(ix.text[offset]) {
		offset--
	}
	return offset
}

// OffsetToPosition converts a byte offset to a zero-based line and
// UTF-16 column. The offset is clamped, never rejected.
func (ix *Index) OffsetToPosition(offset int) Place {
	offset = ix.ClampOffset(offset)

	// first line whose start is strictly greater than offset, minus one
	line := sort.Search(len(ix.lineStarts), func(i int) bool {
		return ix.lineStarts[i] > offset
	}) - 1

	col := utf16Length(ix.text[ix.lineStarts[line]:offset])
	return Place{Line: line, Character: col}
}

// PositionToOffset converts a zero-based line and UTF-16 column to a
// byte offset. A line past the buffer maps to the end-of-buffer offset;
// a column past the line's UTF-16 width maps to the line's end (before
// the newline). The result is always on a code point boundary.
func (ix *Index) PositionToOffset(p Place) int {
	if p.Line < 0 {
		return 0
	}
	if p.Line >= len(ix.lineStarts) {
		return len(ix.text)
	}

	span := ix.LineSpan(p.Line)
	end := span.End
	if end > span.Start && ix.text[end-1] == '\n' {
		end--
	}

	offset := span.Start
	units := 0
	for offset < end {
		if units >= p.Character {
			break
		}
		r, size := utf8.DecodeRuneInString(ix.text[offset:])
		units += utf16RuneWidth(r)
		offset += size
	}
	return offset
}

// UTF16Length reports the UTF-16 code unit count of the byte range
// [start, end), clamped to the buffer.
func (ix *Index) UTF16Length(start, end int) int {
	if start < 0 {
		start = 0
	}
	if end > len(ix.text) {
		end = len(ix.text)
	}
	if start >= end {
		return 0
	}
	return utf16Length(ix.text[start:end])
}

func utf16Length(s string) int {
	n := 0
	for _, r := range s {
		n += utf16RuneWidth(r)
	}
	return n
}

// utf16RuneWidth counts surrogate pairs as 2 and everything else,
// including the replacement rune produced for invalid bytes, as 1. This
// matches the protocol's code unit counting rule exactly.
func utf16RuneWidth(r rune) int {
	if r >= 0x10000 && r <= unicode.MaxRune {
		return 2
	}
	return 1
}
