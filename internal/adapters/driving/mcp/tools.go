package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/grokipedia-mcp/internal/core/domain"
	"github.com/custodia-labs/grokipedia-mcp/internal/core/services"
	"github.com/custodia-labs/grokipedia-mcp/internal/logger"
)

// Tool names.
const (
	ToolSearch           = "search"
	ToolGetPage          = "get_page"
	ToolGetPageContent   = "get_page_content"
	ToolGetPageCitations = "get_page_citations"
	ToolGetRelatedPages  = "get_related_pages"
	ToolGetPageSections  = "get_page_sections"
	ToolGetPageSection   = "get_page_section"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query    string `json:"query" jsonschema:"search query string"`
	Limit    *int   `json:"limit,omitempty" jsonschema:"maximum number of results (default 12)"`
	Offset   *int   `json:"offset,omitempty" jsonschema:"pagination offset (default 0)"`
	SortBy   string `json:"sort_by,omitempty" jsonschema:"sort results by 'relevance' or 'views' (default relevance)"`
	MinViews *int64 `json:"min_views,omitempty" jsonschema:"minimum view count filter"`
}

// PageInput is the input schema for the get_page tool.
type PageInput struct {
	Slug             string `json:"slug" jsonschema:"article identifier, e.g. Machine_learning"`
	MaxContentLength *int   `json:"max_content_length,omitempty" jsonschema:"maximum content length in characters (default 5000)"`
}

// ContentInput is the input schema for the get_page_content tool.
type ContentInput struct {
	Slug      string `json:"slug" jsonschema:"article identifier"`
	MaxLength *int   `json:"max_length,omitempty" jsonschema:"maximum content length in characters (default 10000)"`
}

// CitationsInput is the input schema for the get_page_citations tool.
type CitationsInput struct {
	Slug  string `json:"slug" jsonschema:"article identifier"`
	Limit *int   `json:"limit,omitempty" jsonschema:"maximum number of citations (default all)"`
}

// RelatedInput is the input schema for the get_related_pages tool.
type RelatedInput struct {
	Slug  string `json:"slug" jsonschema:"article identifier"`
	Limit *int   `json:"limit,omitempty" jsonschema:"maximum number of related pages (default 10)"`
}

// SectionsInput is the input schema for the get_page_sections tool.
type SectionsInput struct {
	Slug string `json:"slug" jsonschema:"article identifier"`
}

// SectionInput is the input schema for the get_page_section tool.
type SectionInput struct {
	Slug          string `json:"slug" jsonschema:"article identifier"`
	SectionHeader string `json:"section_header" jsonschema:"heading of the section, matched case-insensitively"`
	MaxLength     *int   `json:"max_length,omitempty" jsonschema:"maximum section length in characters (default 5000)"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolSearch,
		Description: "Search for articles in Grokipedia with optional filtering and sorting.",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolGetPage,
		Description: "Get complete page information including metadata, content preview, and citations summary.",
	}, s.handleGetPage)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolGetPageContent,
		Description: "Get only the article content without citations or metadata.",
	}, s.handleGetPageContent)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolGetPageCitations,
		Description: "Get the citations list for a specific page.",
	}, s.handleGetPageCitations)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolGetRelatedPages,
		Description: "Get pages that are linked from the specified page.",
	}, s.handleGetRelatedPages)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolGetPageSections,
		Description: "Get a list of all section headers in an article.",
	}, s.handleGetPageSections)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolGetPageSection,
		Description: "Extract a specific section from an article by header name.",
	}, s.handleGetPageSection)
}

func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, domain.SearchPage, error) {
	page, err := s.ports.Articles.Search(ctx, domain.SearchRequest{
		Query:    input.Query,
		Limit:    input.Limit,
		Offset:   input.Offset,
		SortBy:   domain.SortOrder(input.SortBy),
		MinViews: input.MinViews,
	})
	if err != nil {
		return nil, domain.SearchPage{}, err
	}
	return textResult(renderSearch(page)), *page, nil
}

func (s *Server) handleGetPage(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input PageInput,
) (*mcp.CallToolResult, domain.PageOverview, error) {
	page, err := s.ports.Articles.GetPage(ctx, domain.PageRequest{
		Slug:             input.Slug,
		MaxContentLength: input.MaxContentLength,
	})
	if err != nil {
		return nil, domain.PageOverview{}, err
	}
	if page.ContentTruncated {
		warn(ctx, req, ToolGetPage, fmt.Sprintf(
			"Content truncated from %d to %d chars. Use get_page_content tool for full content access.",
			page.OriginalLength, services.ShownLength(page.Content)))
	}
	return textResult(renderOverview(page)), *page, nil
}

func (s *Server) handleGetPageContent(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input ContentInput,
) (*mcp.CallToolResult, domain.PageContent, error) {
	content, err := s.ports.Articles.GetPageContent(ctx, domain.ContentRequest{
		Slug:      input.Slug,
		MaxLength: input.MaxLength,
	})
	if err != nil {
		return nil, domain.PageContent{}, err
	}
	if content.Truncated {
		warn(ctx, req, ToolGetPageContent, fmt.Sprintf(
			"Content truncated from %d to %d chars. Use max_length parameter to adjust.",
			content.OriginalLength, services.ShownLength(content.Content)))
	}
	return textResult(renderContent(content)), *content, nil
}

func (s *Server) handleGetPageCitations(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CitationsInput,
) (*mcp.CallToolResult, domain.CitationList, error) {
	citations, err := s.ports.Articles.GetPageCitations(ctx, domain.CitationsRequest{
		Slug:  input.Slug,
		Limit: input.Limit,
	})
	if err != nil {
		return nil, domain.CitationList{}, err
	}
	return textResult(renderCitations(citations)), *citations, nil
}

func (s *Server) handleGetRelatedPages(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RelatedInput,
) (*mcp.CallToolResult, domain.RelatedList, error) {
	related, err := s.ports.Articles.GetRelatedPages(ctx, domain.RelatedRequest{
		Slug:  input.Slug,
		Limit: input.Limit,
	})
	if err != nil {
		return nil, domain.RelatedList{}, err
	}
	return textResult(renderRelated(related)), *related, nil
}

func (s *Server) handleGetPageSections(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SectionsInput,
) (*mcp.CallToolResult, domain.SectionList, error) {
	sections, err := s.ports.Articles.GetPageSections(ctx, domain.SectionsRequest{Slug: input.Slug})
	if err != nil {
		return nil, domain.SectionList{}, err
	}
	return textResult(renderSections(sections)), *sections, nil
}

func (s *Server) handleGetPageSection(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input SectionInput,
) (*mcp.CallToolResult, domain.SectionContent, error) {
	section, err := s.ports.Articles.GetPageSection(ctx, domain.SectionRequest{
		Slug:          input.Slug,
		SectionHeader: input.SectionHeader,
		MaxLength:     input.MaxLength,
	})
	if err != nil {
		return nil, domain.SectionContent{}, err
	}
	if section.Truncated {
		warn(ctx, req, ToolGetPageSection, fmt.Sprintf(
			"Section content truncated from %d to %d chars",
			section.OriginalLength, services.ShownLength(section.Content)))
	}
	return textResult(renderSection(section)), *section, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// warn forwards a warning to the client log when a session is attached.
// Clients that have not set a log level receive nothing.
func warn(ctx context.Context, req *mcp.CallToolRequest, tool, msg string) {
	logger.Warn("%s: %s", tool, msg)
	if req == nil || req.Session == nil {
		return
	}
	if err := req.Session.Log(ctx, &mcp.LoggingMessageParams{
		Level:  "warning",
		Logger: tool,
		Data:   msg,
	}); err != nil {
		logger.Debug("forwarding warning to client: %v", err)
	}
}
