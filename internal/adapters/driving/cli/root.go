// Package cli implements the grokipedia-mcp command line.
//
// The root command wires driven adapters into the core services on first
// use. Tests replace the package-level services with mocks before running
// a command.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/grokipedia-mcp/internal/core/ports/driving"
	"github.com/custodia-labs/grokipedia-mcp/internal/logger"
)

// annotationNoSetup marks commands that run without configuration.
const annotationNoSetup = "no-setup"

var version = "dev"

var (
	verbose      bool
	configDir    string
	articlesFile string
)

var (
	settingsService driving.SettingsService
	articleService  driving.ArticleService
	mirrorService   driving.MirrorService
)

var rootCmd = &cobra.Command{
	Use:   "grokipedia-mcp",
	Short: "Grokipedia MCP server",
	Long: `grokipedia-mcp serves Grokipedia articles to AI assistants over the
Model Context Protocol. The same lookups are available from the command line.

Articles are read from the live Grokipedia API by default. Set source.kind
to "mirror" to read from a local SQLite mirror instead, or pass --articles
to load a JSON Lines dump into memory.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if cmd.Annotations[annotationNoSetup] != "" {
			return nil
		}
		return initSettings()
	},
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		return closeResources()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log requests to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.grokipedia-mcp)")
	rootCmd.PersistentFlags().StringVar(&articlesFile, "articles", "", "serve articles from a JSON Lines file held in memory")
}

// Execute runs the root command. Interrupts cancel the command context.
func Execute(v string) error {
	if v != "" {
		version = v
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	// Post-run hooks are skipped when a command fails.
	if cerr := closeResources(); err == nil {
		err = cerr
	}
	return err
}
