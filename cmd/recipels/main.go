package main

import (
	"context"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	serve_lsp "github.com/recipelang/recipels/cmd/recipels/serve-lsp"
	"gitlab.com/tozd/go/errors"
)

func main() {
	if err := run(); err != nil {
		println(err.Error())
		os.Exit(1)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "recipels",
		Short: "A language server for recipe markup",
		Long: `recipels speaks the language server protocol for recipe markup:
@ingredient, #cookware and ~timer elements, =Section= headers,
>> metadata lines, -- comments and YAML front matter.

Editors connect over stdio and get completion, hover, document
symbols, semantic highlighting and diagnostics for open buffers.`,
		Example: "  recipels serve-lsp --debug",
	}

	rootCmd.Version = "unknown"
	if info, ok := debug.ReadBuildInfo(); ok {
		rootCmd.Version = info.Main.Version
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:    "raw-version",
		Hidden: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(rootCmd.Version)
		},
	})

	rootCmd.AddCommand(serve_lsp.NewServeLSPCommand())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		return errors.Errorf("failed to execute command: %w", err)
	}

	return nil
}
