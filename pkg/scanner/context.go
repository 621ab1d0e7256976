package scanner

import (
	"strings"
	"unicode/utf8"
)

// ContextWindow bounds the backward completion scan. It is a
// performance heuristic, not a proven bound: a marker further than this
// from the cursor on one very long line will not be found.
const ContextWindow = 200

// ContextKind tags what the user is in the middle of typing.
type ContextKind int

const (
	// ContextIngredient is an ingredient name being typed after '@'.
	ContextIngredient ContextKind = iota
	// ContextCookware is a cookware name being typed after '#'.
	ContextCookware
	// ContextTimer is a timer being typed after '~'.
	ContextTimer
	// ContextUnit is a unit name being typed after '%' inside braces.
	ContextUnit
	// ContextQuantity is a quantity being typed inside an open brace
	// group with no '%' yet.
	ContextQuantity
)

func (k ContextKind) String() string {
	switch k {
	case ContextIngredient:
		return "ingredient"
	case ContextCookware:
		return "cookware"
	case ContextTimer:
		return "timer"
	case ContextUnit:
		return "unit"
	case ContextQuantity:
		return "quantity"
	default:
		return "unknown"
	}
}

// CompletionContext describes the active element at the cursor during
// completion, with the prefix text typed since the marker.
type CompletionContext struct {
	Kind   ContextKind
	Prefix string
}

// ContextAt scans backward from offset for the nearest marker that is
// still open. The scan stops at a line boundary or after ContextWindow
// bytes. A '}' met before any marker means the element is already
// closed and there is no active context.
func ContextAt(text string, offset int) (CompletionContext, bool) {
	if offset > len(text) {
		offset = len(text)
	}
	if offset < 0 {
		offset = 0
	}
	before := text[:offset]

	start := len(before) - ContextWindow
	if start < 0 {
		start = 0
	}
	// snap forward to a code point boundary
	for start < len(before) && !utf8.RuneStart(before[start]) {
		start++
	}
	window := before[start:]

	for i := len(window); i > 0; {
		r, size := utf8.DecodeLastRuneInString(window[:i])
		i -= size

		switch r {
		case '}':
			// nearest element is closed, nothing is being typed
			return CompletionContext{}, false

		case '\n', '\r':
			return CompletionContext{}, false

		case '%':
			rest := window[i+1:]
			return CompletionContext{Kind: ContextUnit, Prefix: strings.TrimSpace(rest)}, true

		case '{':
			// inside an open brace group with no '%' so far; it only
			// counts if a marker opens the group on this line
			if openedByMarker(window[:i]) {
				return CompletionContext{Kind: ContextQuantity}, true
			}
			return CompletionContext{}, false

		case '@':
			return CompletionContext{Kind: ContextIngredient, Prefix: window[i+1:]}, true

		case '#':
			return CompletionContext{Kind: ContextCookware, Prefix: window[i+1:]}, true

		case '~':
			return CompletionContext{Kind: ContextTimer, Prefix: window[i+1:]}, true
		}
	}

	return CompletionContext{}, false
}

// openedByMarker reports whether a '@', '#' or '~' precedes the open
// brace on the same line.
func openedByMarker(before string) bool {
	for i := len(before) - 1; i >= 0; i-- {
		switch before[i] {
		case '@', '#', '~':
			return true
		case '\n', '\r':
			return false
		}
	}
	return false
}
