package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/grokipedia-mcp/internal/adapters/driving/mcp"
)

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print the version number",
	Annotations: map[string]string{annotationNoSetup: "true"},
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("grokipedia-mcp version %s (MCP server %s)\n", version, mcp.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
