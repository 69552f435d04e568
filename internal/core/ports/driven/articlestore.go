package driven

import (
	"context"

	"github.com/custodia-labs/grokipedia-mcp/internal/core/domain"
)

// ArticleStore persists full articles for offline use.
type ArticleStore interface {
	// SaveArticle stores or replaces an article by slug.
	SaveArticle(ctx context.Context, article *domain.Article) error

	// DeleteArticle removes an article. Missing slugs are not an error.
	DeleteArticle(ctx context.Context, slug string) error

	// CountArticles returns the number of stored articles.
	CountArticles(ctx context.Context) (int, error)
}

// ArticleIndex is a full-text index over article titles and bodies.
type ArticleIndex interface {
	// Index adds or replaces an article.
	Index(article *domain.Article) error

	// Remove deletes an article from the index.
	Remove(slug string) error

	// Search returns ranked hits.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]IndexHit, error)

	// Near returns articles whose identifiers approximately match slug,
	// tolerating misspelt tokens.
	Near(ctx context.Context, slug string, limit int) ([]IndexHit, error)

	// Slugs lists every indexed article.
	Slugs(ctx context.Context) ([]string, error)

	// Close releases index resources.
	Close() error
}

// IndexHit is one ranked match from an ArticleIndex.
type IndexHit struct {
	Slug  string
	Title string
	Score float64
}
