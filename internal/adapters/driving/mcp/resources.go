package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/grokipedia-mcp/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for Grokipedia resources.
	uriScheme = "grokipedia://"

	pagesPrefix     = uriScheme + "pages/"
	sectionsSuffix  = "/sections"
	mimeMarkdown    = "text/markdown"
	mimeJSON        = "application/json"
	fullBodyMaxSize = math.MaxInt32
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Template for an article body.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: pagesPrefix + "{slug}",
		Name:        "page",
		Description: "Markdown body of a Grokipedia article",
		MIMEType:    mimeMarkdown,
	}, s.handlePageResource)

	// Template for an article outline.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: pagesPrefix + "{slug}" + sectionsSuffix,
		Name:        "page-sections",
		Description: "Section outline of a Grokipedia article",
		MIMEType:    mimeJSON,
	}, s.handleSectionsResource)
}

// handlePageResource returns the full article body.
func (s *Server) handlePageResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	uri := req.Params.URI
	slug := extractSlug(uri)
	if slug == "" || strings.HasSuffix(uri, sectionsSuffix) {
		return s.handleSectionsResource(ctx, req)
	}

	maxLength := fullBodyMaxSize
	content, err := s.ports.Articles.GetPageContent(ctx, domain.ContentRequest{Slug: slug, MaxLength: &maxLength})
	if err != nil {
		return nil, resourceError(uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeMarkdown,
			Text:     content.Content,
		}},
	}, nil
}

// handleSectionsResource returns the heading outline as JSON.
func (s *Server) handleSectionsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	uri := req.Params.URI
	if !strings.HasSuffix(uri, sectionsSuffix) {
		return nil, mcp.ResourceNotFoundError(uri)
	}
	slug := extractSlug(strings.TrimSuffix(uri, sectionsSuffix))
	if slug == "" {
		return nil, mcp.ResourceNotFoundError(uri)
	}

	sections, err := s.ports.Articles.GetPageSections(ctx, domain.SectionsRequest{Slug: slug})
	if err != nil {
		return nil, resourceError(uri, err)
	}

	data, err := json.MarshalIndent(sections, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling sections: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeJSON,
			Text:     string(data),
		}},
	}, nil
}

// extractSlug returns the unescaped slug of grokipedia://pages/{slug}.
// Returns "" when uri has another shape.
func extractSlug(uri string) string {
	rest, ok := strings.CutPrefix(uri, pagesPrefix)
	if !ok || rest == "" || strings.Contains(rest, "/") {
		return ""
	}
	slug, err := url.PathUnescape(rest)
	if err != nil {
		return ""
	}
	return slug
}

func resourceError(uri string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return mcp.ResourceNotFoundError(uri)
	}
	return err
}
