// Command grokipedia-mcp serves Grokipedia articles over the Model Context
// Protocol.
package main

import (
	"os"

	"github.com/custodia-labs/grokipedia-mcp/internal/adapters/driven/config/env"
	"github.com/custodia-labs/grokipedia-mcp/internal/adapters/driving/cli"
	"github.com/custodia-labs/grokipedia-mcp/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := env.LoadDotEnv(); err != nil {
		logger.Error("%v", err)
	}

	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
