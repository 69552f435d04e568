package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/grokipedia-mcp/internal/core/domain"
	"github.com/custodia-labs/grokipedia-mcp/internal/core/ports/driven"
)

// Ensure ArticleStore implements the interfaces.
var (
	_ driven.ArticleStore     = (*ArticleStore)(nil)
	_ driven.ArticleSource    = (*ArticleStore)(nil)
	_ driven.IdentifierLister = (*ArticleStore)(nil)
)

// ArticleStore persists articles and serves them as an ArticleSource.
type ArticleStore struct {
	store *Store
}

// SaveArticle stores or replaces an article and indexes it.
func (s *ArticleStore) SaveArticle(ctx context.Context, article *domain.Article) error {
	citations, err := json.Marshal(nonNil(article.Citations))
	if err != nil {
		return fmt.Errorf("marshalling citations: %w", err)
	}
	links, err := json.Marshal(nonNil(article.RelatedLinks))
	if err != nil {
		return fmt.Errorf("marshalling related links: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO articles (slug, title, description, content, citations, related_links, view_count, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			content = excluded.content,
			citations = excluded.citations,
			related_links = excluded.related_links,
			view_count = excluded.view_count,
			updated_at = excluded.updated_at
	`, article.Slug, article.Title, article.Description, article.Content,
		string(citations), string(links), article.ViewCount, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("saving article: %w", err)
	}

	if err := s.store.index.Index(article); err != nil {
		return fmt.Errorf("indexing article: %w", err)
	}
	return nil
}

// DeleteArticle removes an article and its index entry.
func (s *ArticleStore) DeleteArticle(ctx context.Context, slug string) error {
	if _, err := s.store.db.ExecContext(ctx, `DELETE FROM articles WHERE slug = ?`, slug); err != nil {
		return fmt.Errorf("deleting article: %w", err)
	}
	if err := s.store.index.Remove(slug); err != nil {
		return fmt.Errorf("unindexing article: %w", err)
	}
	return nil
}

// CountArticles returns the number of mirrored articles.
func (s *ArticleStore) CountArticles(ctx context.Context) (int, error) {
	var n int
	if err := s.store.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM articles`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting articles: %w", err)
	}
	return n, nil
}

// FetchArticle loads an article by slug.
func (s *ArticleStore) FetchArticle(ctx context.Context, slug string, opts domain.FetchOptions) (*domain.Article, error) {
	content := "''"
	if opts.IncludeContent {
		content = "content"
	}

	//nolint:gosec // G202: the only interpolated value is one of two constants.
	row := s.store.db.QueryRowContext(ctx, `
		SELECT slug, title, description, `+content+`, citations, related_links, view_count
		FROM articles WHERE slug = ?
	`, slug)

	return scanArticle(row)
}

// Search queries the index and loads the matching rows.
func (s *ArticleStore) Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	hits, err := s.store.index.Search(ctx, query, opts)
	if err != nil {
		return nil, err
	}

	results := make([]domain.SearchResult, 0, len(hits))
	for _, h := range hits {
		article, err := s.FetchArticle(ctx, h.Slug, domain.FetchOptions{IncludeContent: true})
		if errors.Is(err, domain.ErrNotFound) {
			continue // Index ahead of the table; the next open resyncs it
		}
		if err != nil {
			return nil, err
		}
		results = append(results, domain.SearchResult{
			Slug:           article.Slug,
			Title:          article.Title,
			Snippet:        article.Excerpt(),
			RelevanceScore: h.Score,
			ViewCount:      article.ViewCount,
		})
	}
	return results, nil
}

// ListIdentifiersNear returns mirrored articles with similar identifiers.
func (s *ArticleStore) ListIdentifiersNear(ctx context.Context, slug string, limit int) ([]domain.ArticleRef, error) {
	hits, err := s.store.index.Near(ctx, slug, limit)
	if err != nil {
		return nil, err
	}
	refs := make([]domain.ArticleRef, 0, len(hits))
	for _, h := range hits {
		var found int
		err := s.store.db.QueryRowContext(ctx, `SELECT 1 FROM articles WHERE slug = ?`, h.Slug).Scan(&found)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("checking %s: %w", h.Slug, err)
		}
		refs = append(refs, domain.ArticleRef{Slug: h.Slug, Title: h.Title})
	}
	return refs, nil
}

// slugs returns the set of stored slugs.
func (s *ArticleStore) slugs(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.store.db.QueryContext(ctx, `SELECT slug FROM articles`)
	if err != nil {
		return nil, fmt.Errorf("listing articles: %w", err)
	}
	defer rows.Close()

	set := make(map[string]struct{})
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, fmt.Errorf("scanning slug: %w", err)
		}
		set[slug] = struct{}{}
	}
	return set, rows.Err()
}

// reindex adds the given stored articles to the index.
func (s *ArticleStore) reindex(ctx context.Context, slugs map[string]struct{}) error {
	for slug := range slugs {
		article, err := s.FetchArticle(ctx, slug, domain.FetchOptions{IncludeContent: true})
		if err != nil {
			return err
		}
		if err := s.store.index.Index(article); err != nil {
			return fmt.Errorf("indexing article: %w", err)
		}
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (*domain.Article, error) {
	var (
		a         domain.Article
		citations string
		links     string
	)
	err := row.Scan(&a.Slug, &a.Title, &a.Description, &a.Content, &citations, &links, &a.ViewCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning article: %w", err)
	}

	if err := json.Unmarshal([]byte(citations), &a.Citations); err != nil {
		return nil, fmt.Errorf("unmarshalling citations of %s: %w", a.Slug, err)
	}
	if err := json.Unmarshal([]byte(links), &a.RelatedLinks); err != nil {
		return nil, fmt.Errorf("unmarshalling related links of %s: %w", a.Slug, err)
	}
	return &a, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
