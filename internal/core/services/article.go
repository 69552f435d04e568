package services

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/grokipedia-mcp/internal/core/domain"
	"github.com/custodia-labs/grokipedia-mcp/internal/core/ports/driven"
	"github.com/custodia-labs/grokipedia-mcp/internal/core/ports/driving"
	"github.com/custodia-labs/grokipedia-mcp/internal/logger"
)

// Ensure ArticleService implements the interface.
var _ driving.ArticleService = (*ArticleService)(nil)

// Operation names used in logs and upstream errors.
const (
	OpSearch           = "search"
	OpGetPage          = "get_page"
	OpGetPageContent   = "get_page_content"
	OpGetPageCitations = "get_page_citations"
	OpGetRelatedPages  = "get_related_pages"
	OpGetPageSections  = "get_page_sections"
	OpGetPageSection   = "get_page_section"
)

// ArticleService validates requests, fetches articles from the source and
// shapes them into bounded views.
//
// It holds no mutable state and is safe for concurrent use.
type ArticleService struct {
	source driven.ArticleSource
}

// NewArticleService creates a new article service over source.
func NewArticleService(source driven.ArticleSource) *ArticleService {
	return &ArticleService{source: source}
}

// Search finds articles matching the query.
// The source is asked for twice the limit so filtering by view count still
// leaves a full page in most cases.
func (s *ArticleService) Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchPage, error) {
	log := begin(OpSearch)

	req.Query = strings.TrimSpace(req.Query)
	req.SortBy = domain.SortOrder(strings.TrimSpace(string(req.SortBy)))
	if err := validateRequest(req); err != nil {
		log.Debug("rejected: %v", err)
		return nil, err
	}

	limit := domain.IntOr(req.Limit, domain.DefaultSearchLimit)
	offset := domain.IntOr(req.Offset, 0)
	sortBy := req.SortBy
	if sortBy == "" {
		sortBy = domain.SortByRelevance
	}
	log.Debug("query=%q limit=%d offset=%d sort=%s", req.Query, limit, offset, sortBy)

	results, err := s.source.Search(ctx, req.Query, domain.SearchOptions{
		Limit:  limit * domain.SearchOverfetchMultiplier,
		Offset: offset,
	})
	if err != nil {
		log.Warn("search failed: %v", err)
		return nil, &domain.UpstreamError{Op: OpSearch, Err: err}
	}
	log.Debug("source returned %d results", len(results))

	filtered := make([]domain.SearchResult, 0, len(results))
	for _, r := range results {
		if req.MinViews != nil && r.ViewCount < *req.MinViews {
			continue
		}
		snippet, _, err := Truncate(r.Snippet, domain.DefaultSnippetMaxLength)
		if err != nil {
			return nil, err
		}
		r.Snippet = snippet
		filtered = append(filtered, r)
	}

	if sortBy == domain.SortByViews {
		sort.SliceStable(filtered, func(i, j int) bool {
			if filtered[i].ViewCount != filtered[j].ViewCount {
				return filtered[i].ViewCount > filtered[j].ViewCount
			}
			return filtered[i].Slug < filtered[j].Slug
		})
	}

	if len(filtered) > limit {
		filtered = filtered[:limit]
	}

	log.Info("%d results for %q", len(filtered), req.Query)
	return ResultPage(req.Query, sortBy, req.MinViews, filtered), nil
}

// GetPage returns an overview of the article.
func (s *ArticleService) GetPage(ctx context.Context, req domain.PageRequest) (*domain.PageOverview, error) {
	log := begin(OpGetPage)
	req.Slug = strings.TrimSpace(req.Slug)
	if err := validateRequest(req); err != nil {
		log.Debug("rejected: %v", err)
		return nil, err
	}

	article, err := s.fetch(ctx, log, OpGetPage, req.Slug, true)
	if err != nil {
		return nil, err
	}
	return Overview(article, domain.IntOr(req.MaxContentLength, domain.DefaultMaxContentLength))
}

// GetPageContent returns the article body.
func (s *ArticleService) GetPageContent(ctx context.Context, req domain.ContentRequest) (*domain.PageContent, error) {
	log := begin(OpGetPageContent)
	req.Slug = strings.TrimSpace(req.Slug)
	if err := validateRequest(req); err != nil {
		log.Debug("rejected: %v", err)
		return nil, err
	}

	article, err := s.fetch(ctx, log, OpGetPageContent, req.Slug, true)
	if err != nil {
		return nil, err
	}
	return Content(article, domain.IntOr(req.MaxLength, domain.DefaultContentMaxLength))
}

// GetPageCitations returns the article's citations, all of them unless a
// limit is given.
func (s *ArticleService) GetPageCitations(ctx context.Context, req domain.CitationsRequest) (*domain.CitationList, error) {
	log := begin(OpGetPageCitations)
	req.Slug = strings.TrimSpace(req.Slug)
	if err := validateRequest(req); err != nil {
		log.Debug("rejected: %v", err)
		return nil, err
	}

	article, err := s.fetch(ctx, log, OpGetPageCitations, req.Slug, false)
	if err != nil {
		return nil, err
	}
	return Citations(article, domain.IntOr(req.Limit, 0)), nil
}

// GetRelatedPages returns the pages the article links to.
func (s *ArticleService) GetRelatedPages(ctx context.Context, req domain.RelatedRequest) (*domain.RelatedList, error) {
	log := begin(OpGetRelatedPages)
	req.Slug = strings.TrimSpace(req.Slug)
	if err := validateRequest(req); err != nil {
		log.Debug("rejected: %v", err)
		return nil, err
	}

	article, err := s.fetch(ctx, log, OpGetRelatedPages, req.Slug, false)
	if err != nil {
		return nil, err
	}
	return Related(article, domain.IntOr(req.Limit, domain.DefaultRelatedLimit)), nil
}

// GetPageSections returns the article's heading outline.
func (s *ArticleService) GetPageSections(ctx context.Context, req domain.SectionsRequest) (*domain.SectionList, error) {
	log := begin(OpGetPageSections)
	req.Slug = strings.TrimSpace(req.Slug)
	if err := validateRequest(req); err != nil {
		log.Debug("rejected: %v", err)
		return nil, err
	}

	article, err := s.fetch(ctx, log, OpGetPageSections, req.Slug, true)
	if err != nil {
		return nil, err
	}
	return SectionOutline(article), nil
}

// GetPageSection returns the content of one section.
func (s *ArticleService) GetPageSection(ctx context.Context, req domain.SectionRequest) (*domain.SectionContent, error) {
	log := begin(OpGetPageSection)
	req.Slug = strings.TrimSpace(req.Slug)
	req.SectionHeader = strings.TrimSpace(req.SectionHeader)
	if err := validateRequest(req); err != nil {
		log.Debug("rejected: %v", err)
		return nil, err
	}

	article, err := s.fetch(ctx, log, OpGetPageSection, req.Slug, true)
	if err != nil {
		return nil, err
	}

	section, err := Section(article, req.SectionHeader, domain.IntOr(req.MaxLength, domain.DefaultSectionMaxLength))
	if err != nil {
		log.Debug("%v", err)
		return nil, err
	}
	return section, nil
}

// begin returns a log entry tagged with a fresh request id.
func begin(op string) logger.Entry {
	return logger.With("req", uuid.NewString()[:8], "op", op)
}

// fetch loads the article exactly once. A miss becomes an
// ArticleNotFoundError with suggestions; any other failure is upstream.
func (s *ArticleService) fetch(
	ctx context.Context, log logger.Entry, op, slug string, includeContent bool,
) (*domain.Article, error) {
	log.Debug("fetching %q", slug)

	article, err := s.source.FetchArticle(ctx, slug, domain.FetchOptions{IncludeContent: includeContent})
	switch {
	case err == nil && article != nil:
		log.Info("retrieved %q", article.Title)
		return article, nil
	case err == nil, errors.Is(err, domain.ErrNotFound):
		log.Warn("page not found: %s", slug)
		suggestions := Suggest(slug, s.universe(ctx, log, slug), domain.DefaultSuggestionCount)
		log.Debug("%d suggestions", len(suggestions))
		return nil, &domain.ArticleNotFoundError{Slug: slug, Suggestions: suggestions}
	default:
		log.Warn("fetch failed: %v", err)
		return nil, &domain.UpstreamError{Op: op, Err: err}
	}
}

// universe gathers candidate identifiers near slug. Errors are logged and
// produce an empty universe.
func (s *ArticleService) universe(ctx context.Context, log logger.Entry, slug string) []domain.ArticleRef {
	if lister, ok := s.source.(driven.IdentifierLister); ok {
		refs, err := lister.ListIdentifiersNear(ctx, slug, domain.DefaultSuggestionUniverse)
		if err != nil {
			log.Debug("identifier listing failed: %v", err)
			return nil
		}
		return refs
	}

	query := strings.ReplaceAll(slug, "_", " ")
	results, err := s.source.Search(ctx, query, domain.SearchOptions{Limit: domain.DefaultSuggestionUniverse})
	if err != nil {
		log.Debug("suggestion search failed: %v", err)
		return nil
	}

	refs := make([]domain.ArticleRef, len(results))
	for i, r := range results {
		refs[i] = domain.ArticleRef{Slug: r.Slug, Title: r.Title}
	}
	return refs
}
