// Package index provides a full-text article index backed by bleve.
// It implements the driven.ArticleIndex interface and serves search and
// near-miss identifier lookups for the offline sources.
package index

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/custodia-labs/grokipedia-mcp/internal/core/domain"
	"github.com/custodia-labs/grokipedia-mcp/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.ArticleIndex = (*Index)(nil)

// Indexed field names.
const (
	fieldTitle       = "title"
	fieldSlug        = "slug_terms"
	fieldDescription = "description"
	fieldContent     = "content"
)

// maxFuzziness is the largest edit distance bleve accepts for fuzzy terms.
const maxFuzziness = 2

var errClosed = errors.New("index: closed")

// Index is a bleve index over article slugs, titles and bodies.
type Index struct {
	mu    sync.RWMutex
	index bleve.Index
	path  string
}

// New opens the index at path, creating it when missing.
// An empty path creates an in-memory index.
func New(path string) (*Index, error) {
	if path == "" {
		idx, err := bleve.NewMemOnly(newMapping())
		if err != nil {
			return nil, fmt.Errorf("index: create in-memory: %w", err)
		}
		return &Index{index: idx}, nil
	}

	idx, err := bleve.Open(path)
	if errors.Is(err, bleve.ErrorIndexPathDoesNotExist) {
		idx, err = bleve.New(path, newMapping())
	}
	if err != nil {
		return nil, fmt.Errorf("index: open %s: %w", path, err)
	}
	return &Index{index: idx, path: path}, nil
}

func newMapping() mapping.IndexMapping {
	title := bleve.NewTextFieldMapping()
	title.Store = true

	text := bleve.NewTextFieldMapping()
	text.Store = false
	text.IncludeTermVectors = false

	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt(fieldTitle, title)
	doc.AddFieldMappingsAt(fieldSlug, text)
	doc.AddFieldMappingsAt(fieldDescription, text)
	doc.AddFieldMappingsAt(fieldContent, text)

	m := bleve.NewIndexMapping()
	m.DefaultMapping = doc
	return m
}

// Index adds or replaces an article.
func (i *Index) Index(article *domain.Article) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.index == nil {
		return errClosed
	}

	doc := map[string]any{
		fieldTitle:       article.Title,
		fieldSlug:        slugTerms(article.Slug),
		fieldDescription: article.Description,
		fieldContent:     article.Content,
	}
	if err := i.index.Index(article.Slug, doc); err != nil {
		return fmt.Errorf("index: add %s: %w", article.Slug, err)
	}
	return nil
}

// Remove deletes an article from the index.
func (i *Index) Remove(slug string) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.index == nil {
		return errClosed
	}
	if err := i.index.Delete(slug); err != nil {
		return fmt.Errorf("index: remove %s: %w", slug, err)
	}
	return nil
}

// Search runs a match query over every field.
func (i *Index) Search(ctx context.Context, q string, opts domain.SearchOptions) ([]driven.IndexHit, error) {
	if strings.TrimSpace(q) == "" {
		return []driven.IndexHit{}, nil
	}

	titleQuery := bleve.NewMatchQuery(q)
	titleQuery.SetField(fieldTitle)
	titleQuery.SetBoost(2)

	slugQuery := bleve.NewMatchQuery(slugTerms(q))
	slugQuery.SetField(fieldSlug)

	bodyQuery := bleve.NewMatchQuery(q)
	bodyQuery.SetField(fieldContent)

	descQuery := bleve.NewMatchQuery(q)
	descQuery.SetField(fieldDescription)

	return i.run(ctx, bleve.NewDisjunctionQuery(titleQuery, slugQuery, bodyQuery, descQuery), opts.Limit, opts.Offset)
}

// Near finds articles whose slug or title terms are within a small edit
// distance of the terms of slug.
func (i *Index) Near(ctx context.Context, slug string, limit int) ([]driven.IndexHit, error) {
	terms := strings.Fields(slugTerms(slug))
	if len(terms) == 0 {
		return []driven.IndexHit{}, nil
	}

	queries := make([]query.Query, 0, len(terms)*2)
	for _, term := range terms {
		for _, field := range []string{fieldSlug, fieldTitle} {
			fq := bleve.NewFuzzyQuery(term)
			fq.SetField(field)
			fq.SetFuzziness(min(maxFuzziness, len([]rune(term))/3))
			queries = append(queries, fq)
		}
	}

	return i.run(ctx, bleve.NewDisjunctionQuery(queries...), limit, 0)
}

func (i *Index) run(ctx context.Context, q query.Query, limit, offset int) ([]driven.IndexHit, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if i.index == nil {
		return nil, errClosed
	}
	if limit <= 0 {
		limit = domain.DefaultSearchLimit
	}

	req := bleve.NewSearchRequestOptions(q, limit, offset, false)
	req.Fields = []string{fieldTitle}

	res, err := i.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("index: search: %w", err)
	}

	hits := make([]driven.IndexHit, 0, len(res.Hits))
	for _, h := range res.Hits {
		title, _ := h.Fields[fieldTitle].(string)
		hits = append(hits, driven.IndexHit{Slug: h.ID, Title: title, Score: h.Score})
	}
	return hits, nil
}

// Slugs returns the identifiers of all indexed articles in no particular
// order.
func (i *Index) Slugs(ctx context.Context) ([]string, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if i.index == nil {
		return nil, errClosed
	}
	n, err := i.index.DocCount()
	if err != nil {
		return nil, fmt.Errorf("index: count: %w", err)
	}
	slugs := make([]string, 0, n)
	if n == 0 {
		return slugs, nil
	}

	req := bleve.NewSearchRequestOptions(bleve.NewMatchAllQuery(), int(n), 0, false)
	res, err := i.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("index: list: %w", err)
	}
	for _, h := range res.Hits {
		slugs = append(slugs, h.ID)
	}
	return slugs, nil
}

// Path returns the on-disk location, or "" for in-memory indexes.
func (i *Index) Path() string {
	return i.path
}

// Close releases the index. Further calls fail.
func (i *Index) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.index == nil {
		return nil
	}
	err := i.index.Close()
	i.index = nil
	return err
}

// slugTerms lower-cases s and replaces separators with spaces so that
// "Machine_learning" indexes as "machine learning".
func slugTerms(s string) string {
	return strings.Join(strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}), " ")
}
