package mcp

import (
	"github.com/custodia-labs/grokipedia-mcp/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Articles backs every tool and resource.
	Articles driving.ArticleService

	// Prompts supplies prompt templates. Optional; the built-in templates
	// are served when nil.
	Prompts driving.PromptService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p == nil || p.Articles == nil {
		return ErrMissingArticleService
	}
	return nil
}
