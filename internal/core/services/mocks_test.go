package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/grokipedia-mcp/internal/core/domain"
)

// --- Mock implementations ---

// mockSource implements driven.ArticleSource for testing.
type mockSource struct {
	mu            sync.Mutex
	articles      map[string]*domain.Article
	results       []domain.SearchResult
	searchErr     error
	fetchErr      error
	fetchCalls    int
	searchCalls   int
	lastSearch    domain.SearchOptions
	lastFetch     domain.FetchOptions
	fetchedSlugs  []string
	returnNilPage bool
}

func newMockSource(articles ...*domain.Article) *mockSource {
	m := &mockSource{articles: make(map[string]*domain.Article)}
	for _, a := range articles {
		m.articles[a.Slug] = a
	}
	return m
}

func (m *mockSource) Search(_ context.Context, _ string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchCalls++
	m.lastSearch = opts
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	results := m.results
	if opts.Limit > 0 && opts.Limit < len(results) {
		results = results[:opts.Limit]
	}
	return results, nil
}

func (m *mockSource) FetchArticle(_ context.Context, slug string, opts domain.FetchOptions) (*domain.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchCalls++
	m.lastFetch = opts
	m.fetchedSlugs = append(m.fetchedSlugs, slug)
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	if m.returnNilPage {
		return nil, nil
	}
	a, ok := m.articles[slug]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	if !opts.IncludeContent {
		cp.Content = ""
	}
	return &cp, nil
}

// mockListingSource adds driven.IdentifierLister to mockSource.
type mockListingSource struct {
	*mockSource
	refs    []domain.ArticleRef
	listErr error
}

func (m *mockListingSource) ListIdentifiersNear(_ context.Context, _ string, limit int) ([]domain.ArticleRef, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	if limit < len(m.refs) {
		return m.refs[:limit], nil
	}
	return m.refs, nil
}

// mockArticleStore implements driven.ArticleStore for testing.
type mockArticleStore struct {
	mu        sync.Mutex
	articles  map[string]domain.Article
	saveErr   error
	deleteErr error
}

func newMockArticleStore() *mockArticleStore {
	return &mockArticleStore{articles: make(map[string]domain.Article)}
}

func (m *mockArticleStore) SaveArticle(_ context.Context, article *domain.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.articles[article.Slug] = *article
	return nil
}

func (m *mockArticleStore) DeleteArticle(_ context.Context, slug string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.articles, slug)
	return nil
}

func (m *mockArticleStore) CountArticles(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.articles), nil
}

// mockConfigStore implements driven.ConfigStore for testing.
type mockConfigStore struct {
	data    map[string]any
	saveErr error
	setErr  error
}

func newMockConfigStore() *mockConfigStore {
	return &mockConfigStore{data: make(map[string]any)}
}

func (m *mockConfigStore) Get(key string) (any, bool) {
	v, ok := m.data[key]
	return v, ok
}

func (m *mockConfigStore) GetString(key string) string {
	s, _ := m.data[key].(string)
	return s
}

func (m *mockConfigStore) GetInt(key string) int {
	switch v := m.data[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	}
	return 0
}

func (m *mockConfigStore) GetFloat(key string) float64 {
	switch v := m.data[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}

func (m *mockConfigStore) Set(key string, value any) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func (m *mockConfigStore) Save() error { return m.saveErr }
func (m *mockConfigStore) Load() error { return nil }
func (m *mockConfigStore) Path() string {
	return "/tmp/config.toml"
}

// --- Fixtures ---

const machineLearningBody = `Intro paragraph before any heading.

# Machine learning

Machine learning is a field of study.

## History

Early work began in the 1950s.

### Perceptron

The perceptron was introduced in 1958.

## Applications

Used in vision and language.

# References

See citations.`

func machineLearning() *domain.Article {
	return &domain.Article{
		Slug:        "Machine_learning",
		Title:       "Machine learning",
		Description: "Study of algorithms that learn from data",
		Content:     machineLearningBody,
		Citations: []domain.Citation{
			{ID: "1", Title: "Samuel 1959", URL: "https://example.org/1"},
			{ID: "2", Title: "Mitchell 1997", URL: "https://example.org/2"},
			{ID: "3", Title: "Bishop 2006", URL: "https://example.org/3"},
			{ID: "4", Title: "Goodfellow 2016", URL: "https://example.org/4"},
			{ID: "5", Title: "Murphy 2012", URL: "https://example.org/5"},
			{ID: "6", Title: "Hastie 2009", URL: "https://example.org/6"},
		},
		RelatedLinks: []domain.RelatedLink{
			{Title: "Deep learning", Slug: "Deep_learning"},
			{Title: "Statistics", Slug: "Statistics"},
			{Title: "Artificial intelligence", Slug: "Artificial_intelligence"},
		},
		ViewCount: 1500,
	}
}

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }
