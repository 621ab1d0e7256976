package scanner

import (
	"strings"
)

// Elements walks the whole buffer once, left to right, and returns
// every recognized element span in ascending offset order. Spans do not
// overlap. Markers found inside an open brace group are not
// re-interpreted, and no element crosses a line terminator.
func Elements(text string) []Element {
	var out []Element

	inFrontMatter := false
	lineStart := 0
	for lineStart <= len(text) {
		lineEnd := len(text)
		if i := strings.IndexByte(text[lineStart:], '\n'); i >= 0 {
			lineEnd = lineStart + i
		}
		line := text[lineStart:lineEnd]
		trimmed := strings.TrimRight(line, " \t\r")

		switch {
		case isFence(trimmed) && (lineStart == 0 || inFrontMatter):
			// front matter opens with a fence on the first line and
			// closes with the next fence; dash runs elsewhere are
			// ordinary comments
			out = append(out, Element{
				Kind:  KindFrontMatter,
				Start: lineStart,
				End:   lineStart + len(trimmed),
				Text:  trimmed,
			})
			inFrontMatter = lineStart == 0

		case inFrontMatter:
			// raw front matter content, not recipe markup

		default:
			if el, ok := classifyLine(line, lineStart); ok {
				out = append(out, el)
			} else {
				out = append(out, lineElements(line, lineStart)...)
			}
		}

		if lineEnd >= len(text) {
			break
		}
		lineStart = lineEnd + 1
	}

	return out
}

// lineElements scans one line for inline '@', '#' and '~' elements.
func lineElements(line string, base int) []Element {
	var out []Element

	for i := 0; i < len(line); {
		// a dash pair outside braces comments out the rest of the line
		if line[i] == '-' && i+1 < len(line) && line[i+1] == '-' {
			text := strings.TrimRight(line[i:], " \t\r")
			out = append(out, Element{
				Kind:  KindComment,
				Start: base + i,
				End:   base + i + len(text),
				Text:  text,
			})
			break
		}

		kind, ok := markerKind(line[i])
		if !ok {
			i++
			continue
		}

		start := i
		i++
		// bare name run
		for i < len(line) && isNameByte(line[i]) {
			i++
		}
		// optional brace group, consumed verbatim to the closing brace
		// or the end of the line
		if i < len(line) && line[i] == '{' {
			i++
			for i < len(line) && line[i] != '}' {
				i++
			}
			if i < len(line) {
				i++ // the '}'
			}
		}

		out = append(out, Element{
			Kind:  kind,
			Start: base + start,
			End:   base + i,
			Text:  line[start:i],
		})
	}

	return out
}
