package lsp

import (
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/recipelang/recipels/pkg/diagnostic"
	"github.com/recipelang/recipels/pkg/position"
	"github.com/recipelang/recipels/pkg/session"
)

func (s *Server) textDocumentDidOpen(glspCtx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	doc := s.sessions.Open(s.ctx,
		params.TextDocument.URI,
		params.TextDocument.Version,
		params.TextDocument.LanguageID,
		params.TextDocument.Text)
	s.publishDiagnostics(glspCtx, params.TextDocument.URI, doc)
	return nil
}

func (s *Server) textDocumentDidChange(glspCtx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}

	content, ok := s.applyChanges(params.TextDocument.URI, params.ContentChanges)
	if !ok {
		return nil
	}

	doc, ok := s.sessions.Update(s.ctx, params.TextDocument.URI, params.TextDocument.Version, content)
	if !ok {
		return nil
	}
	s.publishDiagnostics(glspCtx, params.TextDocument.URI, doc)
	return nil
}

// applyChanges folds the change events into the new buffer content.
// The server advertises full sync, but clients that send incremental
// events anyway are accommodated by splicing against the stored
// snapshot's position index.
func (s *Server) applyChanges(uri string, changes []any) (string, bool) {
	content := ""
	if doc, ok := s.sessions.Get(uri); ok {
		content = doc.Content
	}

	for _, raw := range changes {
		switch change := raw.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			content = change.Text
		case protocol.TextDocumentContentChangeEvent:
			if change.Range == nil {
				content = change.Text
				continue
			}
			ix := position.NewIndex(content)
			start := position.FromProtocol(ix, change.Range.Start)
			end := position.FromProtocol(ix, change.Range.End)
			var b strings.Builder
			b.Grow(len(content) - (end - start) + len(change.Text))
			b.WriteString(content[:start])
			b.WriteString(change.Text)
			b.WriteString(content[end:])
			content = b.String()
		default:
			s.logger().Warn().
				Str("uri", uri).
				Type("event", raw).
				Msg("dropping unrecognized content change event")
			return "", false
		}
	}
	return content, true
}

func (s *Server) textDocumentDidSave(glspCtx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if doc, ok := s.sessions.Get(params.TextDocument.URI); ok {
		s.publishDiagnostics(glspCtx, params.TextDocument.URI, doc)
	}
	return nil
}

func (s *Server) textDocumentDidClose(glspCtx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.sessions.Close(s.ctx, params.TextDocument.URI)
	// clear any diagnostics still shown for the closed buffer
	glspCtx.Notify("textDocument/publishDiagnostics", protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (s *Server) publishDiagnostics(glspCtx *glsp.Context, uri string, doc *session.Document) {
	diags := diagnostic.ForDocument(doc)
	s.logger().Debug().
		Str("uri", uri).
		Int("count", len(diags)).
		Msg("publishing diagnostics")
	glspCtx.Notify("textDocument/publishDiagnostics", protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diags,
	})
}
