package driven

import (
	"context"

	"github.com/custodia-labs/grokipedia-mcp/internal/core/domain"
)

// ArticleSource is the fetch collaborator behind every article operation.
// Implementations must be safe for concurrent use.
type ArticleSource interface {
	// Search returns article summaries matching query, in relevance order.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)

	// FetchArticle returns the article identified by slug.
	// Returns an error matching domain.ErrNotFound when the slug is unknown.
	FetchArticle(ctx context.Context, slug string, opts domain.FetchOptions) (*domain.Article, error)
}

// IdentifierLister is an optional capability of an ArticleSource.
// It returns known articles whose identifiers are plausibly near slug.
type IdentifierLister interface {
	ListIdentifiersNear(ctx context.Context, slug string, limit int) ([]domain.ArticleRef, error)
}
