package driving

import "github.com/custodia-labs/grokipedia-mcp/internal/core/domain"

// PromptService renders the prompt templates offered to MCP clients.
type PromptService interface {
	// List returns every prompt with its current template text.
	List() []domain.PromptTemplate

	// Render fills the named template with args.
	// Returns an error matching domain.ErrNotFound for unknown names.
	Render(name string, args map[string]string) (string, error)
}
