// Package scanner recognizes recipe markup elements in raw text without
// a grammar. It is a deliberately small tagged state machine: scans are
// single-line in scope and the backward completion scan is bounded by a
// fixed window. These limits are part of the contract, not an accident;
// anything needing real structure goes through the recipe parser instead.
package scanner

import (
	"strings"
	"unicode/utf8"
)

// Kind classifies a recognized element span.
type Kind int

const (
	KindIngredient Kind = iota
	KindCookware
	KindTimer
	KindSection
	KindMetadata
	KindComment
	KindFrontMatter
)

func (k Kind) String() string {
	switch k {
	case KindIngredient:
		return "ingredient"
	case KindCookware:
		return "cookware"
	case KindTimer:
		return "timer"
	case KindSection:
		return "section"
	case KindMetadata:
		return "metadata"
	case KindComment:
		return "comment"
	case KindFrontMatter:
		return "front-matter"
	default:
		return "unknown"
	}
}

// Element is a recognized marker occurrence: its kind, the half-open
// byte range [Start, End) and the enclosed text including the marker.
type Element struct {
	Kind  Kind
	Start int
	End   int
	Text  string
}

// Name strips the marker prefix and any brace suffix from the element
// text, e.g. "@onion{2}" -> "onion".
func (e Element) Name() string {
	s := strings.TrimLeft(e.Text, "@#~")
	if i := strings.IndexByte(s, '{'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// Body returns the text between the element's braces, or "" when the
// element has none.
func (e Element) Body() string {
	open := strings.IndexByte(e.Text, '{')
	if open < 0 {
		return ""
	}
	body := e.Text[open+1:]
	if i := strings.IndexByte(body, '}'); i >= 0 {
		body = body[:i]
	}
	return body
}

func markerKind(b byte) (Kind, bool) {
	switch b {
	case '@':
		return KindIngredient, true
	case '#':
		return KindCookware, true
	case '~':
		return KindTimer, true
	}
	return 0, false
}

// isNameByte reports whether b continues a bare (unbraced) element name.
// Multi-byte code points are always accepted; recipe names are prose.
func isNameByte(b byte) bool {
	return b == '_' || b >= utf8.RuneSelf ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// classifyLine recognizes whole-line elements. lineStart is the byte
// offset of the line within the buffer; line excludes the terminator.
// Whole-line kinds take priority over inline markers on the same line.
func classifyLine(line string, lineStart int) (Element, bool) {
	trimmed := strings.TrimRight(line, " \t\r")

	if strings.HasPrefix(trimmed, "--") {
		return Element{Kind: KindComment, Start: lineStart, End: lineStart + len(trimmed), Text: trimmed}, true
	}
	if strings.HasPrefix(trimmed, ">>") {
		return Element{Kind: KindMetadata, Start: lineStart, End: lineStart + len(trimmed), Text: trimmed}, true
	}
	if len(trimmed) > 1 && strings.HasPrefix(trimmed, "=") && strings.HasSuffix(trimmed, "=") {
		return Element{Kind: KindSection, Start: lineStart, End: lineStart + len(trimmed), Text: trimmed}, true
	}
	return Element{}, false
}

// isFence reports whether line is a front matter fence: three or more
// '-' characters and nothing else.
func isFence(line string) bool {
	if len(line) < 3 {
		return false
	}
	for i := 0; i < len(line); i++ {
		if line[i] != '-' {
			return false
		}
	}
	return true
}
