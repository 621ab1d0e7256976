// Package lsp wires the session store, aisle configuration and the
// feature resolvers into a language server speaking the editor
// protocol over stdio.
package lsp

import (
	"context"

	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
	"gitlab.com/tozd/go/errors"

	"github.com/recipelang/recipels/pkg/aisle"
	"github.com/recipelang/recipels/pkg/recipe"
	"github.com/recipelang/recipels/pkg/session"
)

const serverName = "recipels"

// Server holds the per-process language server state. One instance
// serves one editor connection.
type Server struct {
	// id distinguishes concurrent server instances in shared logs
	id      string
	ctx     context.Context
	version string

	sessions *session.Manager
	aisle    *aisle.Store
	handler  *protocol.Handler
	fs       afero.Fs

	workspace   string
	initialized bool
	shutdown    bool
}

// NewServer builds a server bound to ctx. The context carries the
// logger and outlives individual requests; cancelling it stops the
// aisle file watcher.
func NewServer(ctx context.Context, version string) *Server {
	s := &Server{
		id:       xid.New().String(),
		ctx:      ctx,
		version:  version,
		sessions: session.NewManager(recipe.NewMarkupParser()),
		fs:       afero.NewOsFs(),
	}
	s.handler = &protocol.Handler{
		Initialize:                     s.initialize,
		Initialized:                    s.onInitialized,
		Shutdown:                       s.onShutdown,
		SetTrace:                       s.setTrace,
		TextDocumentDidOpen:            s.textDocumentDidOpen,
		TextDocumentDidChange:          s.textDocumentDidChange,
		TextDocumentDidSave:            s.textDocumentDidSave,
		TextDocumentDidClose:           s.textDocumentDidClose,
		TextDocumentCompletion:         s.textDocumentCompletion,
		TextDocumentHover:              s.textDocumentHover,
		TextDocumentDocumentSymbol:     s.textDocumentDocumentSymbol,
		TextDocumentSemanticTokensFull: s.textDocumentSemanticTokensFull,
	}
	return s
}

// RunStdio serves the connection on stdin/stdout until the client
// disconnects.
func (s *Server) RunStdio() error {
	zerolog.Ctx(s.ctx).Info().
		Str("server_id", s.id).
		Str("version", s.version).
		Msg("starting language server on stdio")

	if err := server.NewServer(s.handler, serverName, false).RunStdio(); err != nil {
		return errors.Errorf("serving stdio: %w", err)
	}
	return nil
}

func (s *Server) logger() *zerolog.Logger {
	return zerolog.Ctx(s.ctx)
}
