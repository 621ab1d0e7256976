package semtok

// TokenType indexes into the legend. The order is wire format: clients
// cache the legend from initialize, so existing indices never move.
// Quantity, Unit and MetadataValue are reserved slots that the
// tokenizer does not emit yet.
type TokenType uint32

const (
	TokenIngredient TokenType = iota
	TokenCookware
	TokenTimer
	TokenQuantity // reserved
	TokenUnit     // reserved
	TokenComment
	TokenMetadataKey
	TokenMetadataValue // reserved
	TokenSection
)

// LegendTypes returns the protocol token type names, ordered to match
// the TokenType indices.
func LegendTypes() []string {
	return []string{
		"variable",  // 0: ingredients (@)
		"class",     // 1: cookware (#)
		"function",  // 2: timers (~)
		"number",    // 3: quantities
		"string",    // 4: units
		"comment",   // 5: comments
		"keyword",   // 6: metadata keys
		"property",  // 7: metadata values
		"namespace", // 8: sections
	}
}

// LegendModifiers returns the protocol token modifier names. None are
// used.
func LegendModifiers() []string {
	return []string{}
}

// Token is one highlighted span, positioned in protocol coordinates:
// zero-based line, UTF-16 start column and UTF-16 length.
type Token struct {
	Line   uint32
	Start  uint32
	Length uint32
	Type   TokenType
}
