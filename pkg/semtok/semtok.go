// Package semtok emits semantic highlighting tokens for recipe markup.
// One pass over the buffer classifies every marker occurrence; the
// result is delta-encoded the way the protocol wants it.
package semtok

import (
	"context"

	"github.com/rs/zerolog"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/recipelang/recipels/pkg/position"
	"github.com/recipelang/recipels/pkg/scanner"
)

// ScanText tokenizes the whole buffer. Tokens come back in ascending
// line/column order with no overlaps; zero-length spans are dropped.
func ScanText(ctx context.Context, text string, ix *position.Index) []Token {
	var tokens []Token

	for _, el := range scanner.Elements(text) {
		length := ix.UTF16Length(el.Start, el.End)
		if length == 0 {
			continue
		}
		tt, ok := tokenType(el.Kind)
		if !ok {
			continue
		}
		place := ix.OffsetToPosition(el.Start)
		tokens = append(tokens, Token{
			Line:   uint32(place.Line),
			Start:  uint32(place.Character),
			Length: uint32(length),
			Type:   tt,
		})
	}

	zerolog.Ctx(ctx).Trace().Int("tokens", len(tokens)).Msg("tokenized buffer")
	return tokens
}

func tokenType(k scanner.Kind) (TokenType, bool) {
	switch k {
	case scanner.KindIngredient:
		return TokenIngredient, true
	case scanner.KindCookware:
		return TokenCookware, true
	case scanner.KindTimer:
		return TokenTimer, true
	case scanner.KindComment:
		return TokenComment, true
	case scanner.KindMetadata, scanner.KindFrontMatter:
		return TokenMetadataKey, true
	case scanner.KindSection:
		return TokenSection, true
	}
	return 0, false
}

// Encode lays tokens out in the protocol's relative form: each token is
// [deltaLine, deltaStart, length, type, modifiers] against the previous
// token's position.
func Encode(tokens []Token) []protocol.UInteger {
	data := make([]protocol.UInteger, 0, len(tokens)*5)

	var prevLine, prevStart uint32
	for _, tok := range tokens {
		deltaLine := tok.Line - prevLine
		deltaStart := tok.Start
		if deltaLine == 0 {
			deltaStart = tok.Start - prevStart
		}

		data = append(data,
			protocol.UInteger(deltaLine),
			protocol.UInteger(deltaStart),
			protocol.UInteger(tok.Length),
			protocol.UInteger(tok.Type),
			0,
		)

		prevLine = tok.Line
		prevStart = tok.Start
	}

	return data
}
