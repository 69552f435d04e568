package grokipedia

import (
	"github.com/custodia-labs/grokipedia-mcp/internal/core/domain"
)

// API paths relative to the base URL.
const (
	searchPath = "/api/full-text-search"
	pagePath   = "/api/page"
)

// The API has used both camelCase and snake_case field names; the wire
// types accept either and prefer camelCase.

type searchResponse struct {
	Results []searchHit `json:"results"`
}

type searchHit struct {
	Slug                string  `json:"slug"`
	Title               string  `json:"title"`
	Snippet             string  `json:"snippet"`
	RelevanceScore      float64 `json:"relevanceScore"`
	RelevanceScoreSnake float64 `json:"relevance_score"`
	ViewCount           int64   `json:"viewCount"`
	ViewCountSnake      int64   `json:"view_count"`
}

func (h searchHit) toDomain() domain.SearchResult {
	return domain.SearchResult{
		Slug:           h.Slug,
		Title:          h.Title,
		Snippet:        plainText(h.Snippet),
		RelevanceScore: firstNonZero(h.RelevanceScore, h.RelevanceScoreSnake),
		ViewCount:      firstNonZero(h.ViewCount, h.ViewCountSnake),
	}
}

type pageResponse struct {
	Found bool      `json:"found"`
	Page  *wirePage `json:"page"`
}

type wirePage struct {
	Slug             string               `json:"slug"`
	Title            string               `json:"title"`
	Content          string               `json:"content"`
	Description      string               `json:"description"`
	Citations        []domain.Citation    `json:"citations"`
	LinkedPages      []domain.RelatedLink `json:"linkedPages"`
	LinkedPagesSnake []domain.RelatedLink `json:"linked_pages"`
	ViewCount        int64                `json:"viewCount"`
	ViewCountSnake   int64                `json:"view_count"`
}

func (p *wirePage) toDomain() *domain.Article {
	links := p.LinkedPages
	if len(links) == 0 {
		links = p.LinkedPagesSnake
	}
	if links == nil {
		links = []domain.RelatedLink{}
	}

	citations := p.Citations
	if citations == nil {
		citations = []domain.Citation{}
	}

	return &domain.Article{
		Slug:         p.Slug,
		Title:        p.Title,
		Description:  plainText(p.Description),
		Content:      p.Content,
		Citations:    citations,
		RelatedLinks: links,
		ViewCount:    firstNonZero(p.ViewCount, p.ViewCountSnake),
	}
}

func firstNonZero[T int64 | float64](a, b T) T {
	if a != 0 {
		return a
	}
	return b
}
