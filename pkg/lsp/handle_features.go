package lsp

import (
	"github.com/google/uuid"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/recipelang/recipels/pkg/aisle"
	"github.com/recipelang/recipels/pkg/completion"
	"github.com/recipelang/recipels/pkg/hover"
	"github.com/recipelang/recipels/pkg/outline"
	"github.com/recipelang/recipels/pkg/position"
	"github.com/recipelang/recipels/pkg/semtok"
	"github.com/recipelang/recipels/pkg/session"
)

func (s *Server) textDocumentCompletion(glspCtx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	doc, ok := s.sessions.Get(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	offset := position.FromProtocol(doc.Index, params.Position)

	var others []*session.Document
	for _, snap := range s.sessions.Snapshots() {
		if snap.URI != doc.URI {
			others = append(others, snap)
		}
	}

	items := completion.Items(s.ctx, doc, offset, others, s.aisleSnapshot())
	if items == nil {
		return nil, nil
	}
	return items, nil
}

func (s *Server) textDocumentHover(glspCtx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc, ok := s.sessions.Get(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	offset := position.FromProtocol(doc.Index, params.Position)
	return hover.Resolve(s.ctx, doc, offset, s.aisleSnapshot()), nil
}

func (s *Server) textDocumentDocumentSymbol(glspCtx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	doc, ok := s.sessions.Get(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	syms := outline.Symbols(doc)
	if syms == nil {
		return nil, nil
	}
	return syms, nil
}

func (s *Server) textDocumentSemanticTokensFull(glspCtx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc, ok := s.sessions.Get(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}

	tokens := semtok.ScanText(s.ctx, doc.Content, doc.Index)
	resultID := uuid.NewString()
	return &protocol.SemanticTokens{
		ResultID: &resultID,
		Data:     semtok.Encode(tokens),
	}, nil
}

func (s *Server) aisleSnapshot() *aisle.Table {
	if s.aisle == nil {
		return nil
	}
	return s.aisle.Snapshot()
}
