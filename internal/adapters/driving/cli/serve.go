package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/grokipedia-mcp/internal/adapters/driving/mcp"
	"github.com/custodia-labs/grokipedia-mcp/internal/core/domain"
	"github.com/custodia-labs/grokipedia-mcp/internal/logger"
)

var (
	serveTransport string
	serveHost      string
	servePort      int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default the server communicates over stdio using JSON-RPC, which is what
desktop assistants expect. The sse and streamable-http transports listen on
--host and --port instead.

Settings are resolved from defaults, then config.toml, then these flags,
then the environment (MCP_TRANSPORT, MCP_HOST, MCP_PORT).

Examples:
  # Stdio mode (default)
  grokipedia-mcp serve

  # Streamable HTTP on port 8080
  grokipedia-mcp serve --transport streamable-http --port 8080

Desktop assistant configuration:
  {
    "mcpServers": {
      "grokipedia": {
        "command": "/path/to/grokipedia-mcp",
        "args": ["serve"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveTransport, "transport", "t", string(domain.TransportStdio),
		"transport: stdio, sse or streamable-http")
	serveCmd.Flags().StringVar(&serveHost, "host", "0.0.0.0", "listen host for HTTP transports")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8888, "listen port for HTTP transports")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	settings, err := resolveSettings(serveOverrides(cmd))
	if err != nil {
		return err
	}

	svc, err := articles(cmd.Context(), serveOverrides(cmd))
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(&mcp.Ports{Articles: svc, Prompts: prompts(cmd.Context())})
	if err != nil {
		return err
	}

	transport := settings.Server.Transport
	logger.Info("Starting %s %s on %s", mcp.Name, mcp.Version, transport.Description())
	if transport.IsHTTP() {
		cmd.PrintErrf("MCP server listening on http://%s:%d (%s)\n",
			settings.Server.Host, settings.Server.Port, transport)
	}

	if err := server.Serve(cmd.Context(), transport, settings.Server.Host, settings.Server.Port); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}

// serveOverrides applies only the flags the user actually set, so values
// from config.toml survive flag defaults.
func serveOverrides(cmd *cobra.Command) settingsOverride {
	flags := cmd.Flags()
	return func(s *domain.AppSettings) {
		if flags.Changed("transport") {
			s.Server.Transport = domain.Transport(serveTransport)
		}
		if flags.Changed("host") {
			s.Server.Host = serveHost
		}
		if flags.Changed("port") {
			s.Server.Port = servePort
		}
	}
}
