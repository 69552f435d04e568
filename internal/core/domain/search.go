package domain

// SortOrder controls how search results are ordered.
type SortOrder string

// Available sort orders.
const (
	// SortByRelevance keeps the order delivered by the article source.
	SortByRelevance SortOrder = "relevance"

	// SortByViews orders results by view count, most viewed first.
	SortByViews SortOrder = "views"
)

// String returns the string representation.
func (s SortOrder) String() string {
	return string(s)
}

// SearchOptions configures a query against an article source.
type SearchOptions struct {
	// Limit is the maximum number of results.
	Limit int

	// Offset is the number of results to skip.
	Offset int
}

// SearchResult represents a single search hit.
type SearchResult struct {
	// Slug identifies the matched article.
	Slug string `json:"slug"`

	// Title is the article title.
	Title string `json:"title"`

	// Snippet is a short excerpt around the match.
	Snippet string `json:"snippet"`

	// RelevanceScore is query dependent and never stored on the article.
	RelevanceScore float64 `json:"relevance_score"`

	// ViewCount is the article popularity.
	ViewCount int64 `json:"view_count"`
}
