package services

import (
	"fmt"

	"github.com/custodia-labs/grokipedia-mcp/internal/core/domain"
	"github.com/custodia-labs/grokipedia-mcp/internal/core/ports/driven"
	"github.com/custodia-labs/grokipedia-mcp/internal/core/ports/driving"
	"github.com/custodia-labs/grokipedia-mcp/internal/logger"
)

// Ensure PromptService implements the interface.
var _ driving.PromptService = (*PromptService)(nil)

// PromptService serves prompt templates, preferring user-edited text from
// the store over the built-in defaults.
type PromptService struct {
	store driven.PromptStore
}

// NewPromptService creates a prompt service. A nil store serves the
// built-in templates only.
func NewPromptService(store driven.PromptStore) *PromptService {
	return &PromptService{store: store}
}

// List returns every prompt with its current template text.
func (s *PromptService) List() []domain.PromptTemplate {
	prompts := domain.DefaultPrompts()
	for i := range prompts {
		prompts[i].Text = s.text(prompts[i])
	}
	return prompts
}

// Render fills the named template with args. Missing arguments take their
// defaults.
func (s *PromptService) Render(name string, args map[string]string) (string, error) {
	p, ok := domain.FindPrompt(name)
	if !ok {
		return "", fmt.Errorf("prompt %q: %w", name, domain.ErrNotFound)
	}
	p.Text = s.text(p)
	return p.Render(args), nil
}

func (s *PromptService) text(p domain.PromptTemplate) string {
	if s.store == nil {
		return p.Text
	}
	text, err := s.store.Load(p.Name)
	if err != nil || text == "" {
		logger.Warn("prompt %s: using built-in text: %v", p.Name, err)
		return p.Text
	}
	return text
}
