package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/grokipedia-mcp/internal/core/domain"
	"github.com/custodia-labs/grokipedia-mcp/internal/core/ports/driven"
)

// Ensure ArticleStore implements the interfaces.
var (
	_ driven.ArticleStore     = (*ArticleStore)(nil)
	_ driven.ArticleSource    = (*ArticleStore)(nil)
	_ driven.IdentifierLister = (*ArticleStore)(nil)
)

// ArticleStore is an in-memory article collection that also serves as an
// ArticleSource. Search and ListIdentifiersNear go through the attached
// full-text index.
type ArticleStore struct {
	mu       sync.RWMutex
	articles map[string]domain.Article
	index    driven.ArticleIndex
}

// NewArticleStore creates a new in-memory article store over index.
func NewArticleStore(index driven.ArticleIndex) *ArticleStore {
	return &ArticleStore{
		articles: make(map[string]domain.Article),
		index:    index,
	}
}

// SaveArticle stores or replaces an article.
func (s *ArticleStore) SaveArticle(_ context.Context, article *domain.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.index.Index(article); err != nil {
		return fmt.Errorf("index article: %w", err)
	}
	s.articles[article.Slug] = *article
	return nil
}

// DeleteArticle removes an article.
func (s *ArticleStore) DeleteArticle(_ context.Context, slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.articles[slug]; !ok {
		return nil
	}
	if err := s.index.Remove(slug); err != nil {
		return fmt.Errorf("unindex article: %w", err)
	}
	delete(s.articles, slug)
	return nil
}

// CountArticles returns the number of stored articles.
func (s *ArticleStore) CountArticles(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.articles), nil
}

// FetchArticle returns a copy of the stored article.
func (s *ArticleStore) FetchArticle(_ context.Context, slug string, opts domain.FetchOptions) (*domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	article, ok := s.articles[slug]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if !opts.IncludeContent {
		article.Content = ""
	}
	article.Citations = append([]domain.Citation(nil), article.Citations...)
	article.RelatedLinks = append([]domain.RelatedLink(nil), article.RelatedLinks...)
	return &article, nil
}

// Search returns articles matching query.
func (s *ArticleStore) Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	hits, err := s.index.Search(ctx, query, opts)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	results := make([]domain.SearchResult, 0, len(hits))
	for _, h := range hits {
		if a, ok := s.articles[h.Slug]; ok {
			results = append(results, toResult(&a, h.Score))
		}
	}
	return results, nil
}

// ListIdentifiersNear returns stored articles whose identifiers resemble slug.
func (s *ArticleStore) ListIdentifiersNear(ctx context.Context, slug string, limit int) ([]domain.ArticleRef, error) {
	hits, err := s.index.Near(ctx, slug, limit)
	if err != nil {
		return nil, err
	}
	refs := make([]domain.ArticleRef, len(hits))
	for i, h := range hits {
		refs[i] = domain.ArticleRef{Slug: h.Slug, Title: h.Title}
	}
	return refs, nil
}

func toResult(a *domain.Article, score float64) domain.SearchResult {
	return domain.SearchResult{
		Slug:           a.Slug,
		Title:          a.Title,
		Snippet:        a.Excerpt(),
		RelevanceScore: score,
		ViewCount:      a.ViewCount,
	}
}
