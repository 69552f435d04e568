package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/grokipedia-mcp/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, string) {
	t.Helper()

	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() { _ = store.Close() })
	return store, dir
}

func testArticle(slug string) *domain.Article {
	return &domain.Article{
		Slug:        slug,
		Title:       "Machine learning",
		Description: "Field of study in artificial intelligence.",
		Content:     "# Machine learning\n\nAlgorithms that learn from data.\n\n## History\n\nEarly work.",
		Citations: []domain.Citation{
			{ID: "1", Title: "Source one", URL: "https://example.test/1"},
		},
		RelatedLinks: []domain.RelatedLink{
			{Title: "Deep learning", Slug: "Deep_learning"},
			{Title: "Statistics"},
		},
		ViewCount: 1200,
	}
}

func TestNewStore_CreatesFiles(t *testing.T) {
	store, dir := setupTestStore(t)

	assert.Equal(t, filepath.Join(dir, dbFileName), store.Path())
	_, err := os.Stat(store.Path())
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, indexDirName))
	assert.NoError(t, err)
}

func TestNewStore_DirectoryCreation(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "mirror")

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewStore_Migrations(t *testing.T) {
	store, _ := setupTestStore(t)

	var version int
	err := store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, 1, version)

	var name string
	err = store.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='articles'").Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "articles", name)
}

func TestNewStore_Reopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.ArticleStore().SaveArticle(ctx, testArticle("Machine_learning")))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	n, err := reopened.ArticleStore().CountArticles(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestNewStore_RebuildsMissingIndex(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.ArticleStore().SaveArticle(ctx, testArticle("Machine_learning")))
	require.NoError(t, store.Close())

	require.NoError(t, os.RemoveAll(filepath.Join(dir, indexDirName)))

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	results, err := reopened.ArticleStore().Search(ctx, "algorithms", domain.SearchOptions{Limit: 5})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Machine_learning", results[0].Slug)
}

func TestNewStore_ResyncsIndexWithEqualCounts(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)
	articles := store.ArticleStore()
	require.NoError(t, articles.SaveArticle(ctx, testArticle("Machine_learning")))
	require.NoError(t, articles.SaveArticle(ctx, &domain.Article{Slug: "Botany", Title: "Botany", Content: "Plants."}))

	// One row disappears behind the index's back and another is never
	// indexed, leaving two rows and two index entries.
	_, err = store.db.ExecContext(ctx, `DELETE FROM articles WHERE slug = ?`, "Machine_learning")
	require.NoError(t, err)
	require.NoError(t, articles.SaveArticle(ctx, &domain.Article{Slug: "Zoology", Title: "Zoology", Content: "Animals and their study."}))
	require.NoError(t, store.index.Remove("Zoology"))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	slugs, err := reopened.index.Slugs(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Botany", "Zoology"}, slugs)

	results, err := reopened.ArticleStore().Search(ctx, "animals", domain.SearchOptions{Limit: 5})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Zoology", results[0].Slug)
}

func TestArticleStore_SaveAndFetch(t *testing.T) {
	store, _ := setupTestStore(t)
	articles := store.ArticleStore()
	ctx := context.Background()

	want := testArticle("Machine_learning")
	require.NoError(t, articles.SaveArticle(ctx, want))

	got, err := articles.FetchArticle(ctx, "Machine_learning", domain.FetchOptions{IncludeContent: true})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestArticleStore_FetchWithoutContent(t *testing.T) {
	store, _ := setupTestStore(t)
	articles := store.ArticleStore()
	ctx := context.Background()

	require.NoError(t, articles.SaveArticle(ctx, testArticle("Machine_learning")))

	got, err := articles.FetchArticle(ctx, "Machine_learning", domain.FetchOptions{})
	require.NoError(t, err)
	assert.Empty(t, got.Content)
	assert.Len(t, got.Citations, 1)
	assert.Len(t, got.RelatedLinks, 2)
}

func TestArticleStore_FetchNotFound(t *testing.T) {
	store, _ := setupTestStore(t)

	_, err := store.ArticleStore().FetchArticle(context.Background(), "Nope", domain.FetchOptions{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestArticleStore_SlugIsCaseSensitive(t *testing.T) {
	store, _ := setupTestStore(t)
	articles := store.ArticleStore()
	ctx := context.Background()

	require.NoError(t, articles.SaveArticle(ctx, testArticle("Machine_learning")))

	_, err := articles.FetchArticle(ctx, "machine_learning", domain.FetchOptions{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestArticleStore_Upsert(t *testing.T) {
	store, _ := setupTestStore(t)
	articles := store.ArticleStore()
	ctx := context.Background()

	a := testArticle("Machine_learning")
	require.NoError(t, articles.SaveArticle(ctx, a))
	a.ViewCount = 5
	a.Citations = nil
	require.NoError(t, articles.SaveArticle(ctx, a))

	n, err := articles.CountArticles(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := articles.FetchArticle(ctx, "Machine_learning", domain.FetchOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.ViewCount)
	assert.Empty(t, got.Citations)
	assert.NotNil(t, got.Citations)
}

func TestArticleStore_Delete(t *testing.T) {
	store, _ := setupTestStore(t)
	articles := store.ArticleStore()
	ctx := context.Background()

	require.NoError(t, articles.SaveArticle(ctx, testArticle("Machine_learning")))
	require.NoError(t, articles.DeleteArticle(ctx, "Machine_learning"))
	require.NoError(t, articles.DeleteArticle(ctx, "Machine_learning"))

	n, err := articles.CountArticles(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	results, err := articles.Search(ctx, "algorithms", domain.SearchOptions{Limit: 5})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestArticleStore_Search(t *testing.T) {
	store, _ := setupTestStore(t)
	articles := store.ArticleStore()
	ctx := context.Background()

	require.NoError(t, articles.SaveArticle(ctx, testArticle("Machine_learning")))
	require.NoError(t, articles.SaveArticle(ctx, &domain.Article{
		Slug:    "Botany",
		Title:   "Botany",
		Content: "Plants and their study.",
	}))

	results, err := articles.Search(ctx, "machine learning", domain.SearchOptions{Limit: 5})
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "Machine_learning", results[0].Slug)
	assert.Equal(t, "Field of study in artificial intelligence.", results[0].Snippet)
	assert.Equal(t, int64(1200), results[0].ViewCount)
}

func TestArticleStore_ListIdentifiersNear(t *testing.T) {
	store, _ := setupTestStore(t)
	articles := store.ArticleStore()
	ctx := context.Background()

	require.NoError(t, articles.SaveArticle(ctx, testArticle("Machine_learning")))

	refs, err := articles.ListIdentifiersNear(ctx, "Machne_learning", 10)
	require.NoError(t, err)
	require.NotEmpty(t, refs)
	assert.Equal(t, domain.ArticleRef{Slug: "Machine_learning", Title: "Machine learning"}, refs[0])
}

func TestArticleStore_ListIdentifiersNear_SkipsMissingRows(t *testing.T) {
	store, _ := setupTestStore(t)
	articles := store.ArticleStore()
	ctx := context.Background()

	require.NoError(t, articles.SaveArticle(ctx, testArticle("Machine_learning")))
	_, err := store.db.ExecContext(ctx, `DELETE FROM articles WHERE slug = ?`, "Machine_learning")
	require.NoError(t, err)

	refs, err := articles.ListIdentifiersNear(ctx, "Machne_learning", 10)
	require.NoError(t, err)
	assert.Empty(t, refs)
}
