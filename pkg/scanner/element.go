package scanner

import (
	"strings"
)

// ElementAt classifies what sits under the cursor. Whole-line markers
// (comment, metadata, section) win over inline elements; otherwise the
// nearest unclosed '@', '#' or '~' before the cursor on the same line
// is taken and its end found by a bounded forward scan.
func ElementAt(text string, offset int) (Element, bool) {
	if offset < 0 || offset >= len(text) {
		return Element{}, false
	}

	lineStart := 0
	if i := strings.LastIndexByte(text[:offset], '\n'); i >= 0 {
		lineStart = i + 1
	}
	lineEnd := len(text)
	if i := strings.IndexByte(text[offset:], '\n'); i >= 0 {
		lineEnd = offset + i
	}
	line := text[lineStart:lineEnd]

	if el, ok := classifyLine(line, lineStart); ok {
		return el, true
	}

	// nearest still-open marker before the cursor
	before := text[lineStart:offset]
	best := -1
	for i := len(before) - 1; i >= 0; i-- {
		if _, ok := markerKind(before[i]); !ok {
			continue
		}
		// a '}' after the marker means its element is already closed
		if strings.IndexByte(before[i:], '}') >= 0 {
			continue
		}
		best = lineStart + i
		break
	}
	if best < 0 {
		return Element{}, false
	}

	kind, _ := markerKind(text[best])
	end := elementEnd(text, best+1)
	return Element{Kind: kind, Start: best, End: end, Text: text[best:end]}, true
}

// elementEnd scans forward from just past a marker. Outside braces the
// element ends at the first space or line terminator; a '{' switches to
// brace mode, which ends at the matching '}'. An unterminated brace
// group is bounded at the end of the line.
func elementEnd(text string, start int) int {
	inBraces := false
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '{':
			inBraces = true
		case '}':
			if inBraces {
				return i + 1
			}
		case ' ', '\t':
			if !inBraces {
				return i
			}
		case '\n', '\r':
			return i
		}
	}
	return len(text)
}
