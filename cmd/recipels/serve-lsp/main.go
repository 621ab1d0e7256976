package serve_lsp

import (
	"context"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"gitlab.com/tozd/go/errors"

	"github.com/recipelang/recipels/pkg/lsp"
)

type Handler struct {
	debug bool
}

func NewServeLSPCommand() *cobra.Command {
	me := &Handler{}

	cmd := &cobra.Command{
		Use:   "serve-lsp",
		Short: "start the language server on stdin/stdout",
	}

	cmd.Flags().BoolVar(&me.debug, "debug", false, "enable debug logging")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return me.Run(cmd.Context())
	}

	return cmd
}

func (me *Handler) Run(ctx context.Context) error {
	level := zerolog.InfoLevel
	rpcVerbosity := 1
	if me.debug {
		level = zerolog.TraceLevel
		rpcVerbosity = 2
	}

	// stdout carries the protocol; everything we log goes to stderr
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Str("component", "lsp-server").
		Timestamp().
		Logger()
	ctx = logger.WithContext(ctx)

	// rpc-level logging from the transport library
	commonlog.Configure(rpcVerbosity, nil)

	server := lsp.NewServer(ctx, version())
	if err := server.RunStdio(); err != nil {
		return errors.Errorf("running language server: %w", err)
	}

	return nil
}

func version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "dev"
	}
	return info.Main.Version
}
