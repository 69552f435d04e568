package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/grokipedia-mcp/internal/core/domain"
	"github.com/custodia-labs/grokipedia-mcp/internal/logger"
)

// registerPrompts registers the research prompts. Templates come from the
// prompt service when one is wired, otherwise from the built-in set.
func (s *Server) registerPrompts() {
	prompts := domain.DefaultPrompts()
	if s.ports.Prompts != nil {
		prompts = s.ports.Prompts.List()
	}

	for _, p := range prompts {
		args := make([]*mcp.PromptArgument, 0, len(p.Arguments))
		for _, a := range p.Arguments {
			args = append(args, &mcp.PromptArgument{Name: a.Name, Description: a.Description})
		}

		s.server.AddPrompt(&mcp.Prompt{
			Name:        p.Name,
			Description: p.Description,
			Arguments:   args,
		}, s.promptHandler(p))
	}
}

func (s *Server) promptHandler(p domain.PromptTemplate) mcp.PromptHandler {
	return func(_ context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		var args map[string]string
		if req != nil && req.Params != nil {
			args = req.Params.Arguments
		}

		text := p.Render(args)
		if s.ports.Prompts != nil {
			rendered, err := s.ports.Prompts.Render(p.Name, args)
			if err != nil {
				logger.Warn("prompt %s: %v", p.Name, err)
			} else {
				text = rendered
			}
		}
		return userPrompt(p.Title, text), nil
	}
}

func userPrompt(description, text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Description: description,
		Messages: []*mcp.PromptMessage{{
			Role:    "user",
			Content: &mcp.TextContent{Text: text},
		}},
	}
}
