package position

import (
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ToProtocol converts a Place to a protocol position.
func ToProtocol(p Place) protocol.Position {
	return protocol.Position{
		Line:      uint32(p.Line),
		Character: uint32(p.Character),
	}
}

// FromProtocol converts a protocol position to a byte offset, clamped.
func FromProtocol(ix *Index, p protocol.Position) int {
	return ix.PositionToOffset(Place{Line: int(p.Line), Character: int(p.Character)})
}

// SpanToRange converts a byte span to a protocol range.
func SpanToRange(ix *Index, s Span) protocol.Range {
	return protocol.Range{
		Start: ToProtocol(ix.OffsetToPosition(s.Start)),
		End:   ToProtocol(ix.OffsetToPosition(s.End)),
	}
}
