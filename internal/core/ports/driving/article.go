package driving

import (
	"context"

	"github.com/custodia-labs/grokipedia-mcp/internal/core/domain"
)

// ArticleService exposes the article operations to external actors.
//
// Errors match one of domain.ErrInvalidArgument, domain.ErrNotFound or
// domain.ErrUpstream. Article misses are *domain.ArticleNotFoundError
// carrying suggestions; section misses are *domain.SectionNotFoundError.
type ArticleService interface {
	// Search finds articles matching a query.
	Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchPage, error)

	// GetPage returns an overview with a bounded content preview.
	GetPage(ctx context.Context, req domain.PageRequest) (*domain.PageOverview, error)

	// GetPageContent returns the article body only.
	GetPageContent(ctx context.Context, req domain.ContentRequest) (*domain.PageContent, error)

	// GetPageCitations returns the article's citations.
	GetPageCitations(ctx context.Context, req domain.CitationsRequest) (*domain.CitationList, error)

	// GetRelatedPages returns the pages the article links to.
	GetRelatedPages(ctx context.Context, req domain.RelatedRequest) (*domain.RelatedList, error)

	// GetPageSections returns the article's heading outline.
	GetPageSections(ctx context.Context, req domain.SectionsRequest) (*domain.SectionList, error)

	// GetPageSection returns one section by case-insensitive heading match.
	GetPageSection(ctx context.Context, req domain.SectionRequest) (*domain.SectionContent, error)
}
