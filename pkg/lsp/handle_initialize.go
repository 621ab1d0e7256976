package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/recipelang/recipels/pkg/aisle"
	"github.com/recipelang/recipels/pkg/semtok"
	"github.com/recipelang/recipels/pkg/session"
)

// completionTriggers are the characters that open or continue an
// element and therefore warrant a fresh completion request.
var completionTriggers = []string{"@", "#", "~", "%", "{"}

func (s *Server) initialize(glspCtx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	if params.RootURI != nil {
		s.workspace = session.NormalizeURI(*params.RootURI)
	} else if params.RootPath != nil {
		s.workspace = *params.RootPath
	}
	s.logger().Info().
		Str("server_id", s.id).
		Str("workspace", s.workspace).
		Msg("initializing")

	capabilities := s.handler.CreateServerCapabilities()

	syncKind := protocol.TextDocumentSyncKindFull
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: &protocol.True,
		Change:    &syncKind,
		Save:      &protocol.SaveOptions{IncludeText: &protocol.False},
	}
	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: completionTriggers,
	}
	capabilities.SemanticTokensProvider = &protocol.SemanticTokensOptions{
		Legend: protocol.SemanticTokensLegend{
			TokenTypes:     semtok.LegendTypes(),
			TokenModifiers: semtok.LegendModifiers(),
		},
		Full: true,
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &s.version,
		},
	}, nil
}

// onInitialized loads the workspace aisle configuration and starts
// watching it for edits. Both are best-effort: a workspace without an
// aisle file still gets every feature except aisle-backed completion.
func (s *Server) onInitialized(glspCtx *glsp.Context, params *protocol.InitializedParams) error {
	s.initialized = true
	if s.workspace == "" {
		s.logger().Debug().Msg("no workspace root, skipping aisle configuration")
		return nil
	}

	s.aisle = aisle.NewStore(s.fs, s.workspace)
	s.aisle.Reload(s.ctx)
	go s.aisle.Watch(s.ctx)
	return nil
}

func (s *Server) onShutdown(glspCtx *glsp.Context) error {
	s.logger().Info().Str("server_id", s.id).Msg("shutdown requested")
	s.shutdown = true
	return nil
}

func (s *Server) setTrace(glspCtx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}
