package domain

// Views are the bounded, agent-facing projections of an Article.
// Lengths count grapheme clusters, not bytes.

// SearchPage is the result of a search.
type SearchPage struct {
	Query    string         `json:"query"`
	SortBy   SortOrder      `json:"sort_by"`
	MinViews *int64         `json:"min_views,omitempty"`
	Results  []SearchResult `json:"results"`
	Count    int            `json:"count"`
}

// CitationSummary is the title and URL of a citation.
type CitationSummary struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// PageOverview summarises an article with a bounded content preview.
type PageOverview struct {
	Slug             string            `json:"slug"`
	Title            string            `json:"title"`
	Description      string            `json:"description,omitempty"`
	Content          string            `json:"content"`
	ContentLength    int               `json:"content_length"`
	ContentTruncated bool              `json:"content_truncated"`
	OriginalLength   int               `json:"original_length"`
	ViewCount        int64             `json:"view_count"`
	CitationCount    int               `json:"citation_count"`
	Citations        []CitationSummary `json:"citations"`
	RelatedCount     int               `json:"related_count"`
}

// PageContent is an article body without citations or links.
type PageContent struct {
	Slug           string `json:"slug"`
	Title          string `json:"title"`
	Content        string `json:"content"`
	ContentLength  int    `json:"content_length"`
	Truncated      bool   `json:"truncated"`
	OriginalLength int    `json:"original_length"`
}

// SectionList is an article's heading outline.
type SectionList struct {
	Slug     string           `json:"slug"`
	Title    string           `json:"title"`
	Sections []SectionHeading `json:"sections"`
	Count    int              `json:"count"`
}

// SectionContent is the content of one section.
type SectionContent struct {
	Slug           string `json:"slug"`
	Title          string `json:"title"`
	Requested      string `json:"section_header"`
	Heading        string `json:"matched_header"`
	Level          int    `json:"level"`
	Content        string `json:"section_content"`
	ContentLength  int    `json:"content_length"`
	Truncated      bool   `json:"truncated"`
	OriginalLength int    `json:"original_length"`
}

// CitationList is a possibly limited list of citations.
// Both counts are always set so callers can detect truncation.
type CitationList struct {
	Slug          string     `json:"slug"`
	Title         string     `json:"title"`
	Citations     []Citation `json:"citations"`
	TotalCount    int        `json:"total_count"`
	ReturnedCount int        `json:"returned_count"`
	Limited       bool       `json:"limited"`
}

// RelatedList is a possibly limited list of linked pages.
type RelatedList struct {
	Slug          string        `json:"slug"`
	Title         string        `json:"title"`
	Related       []RelatedLink `json:"related_pages"`
	TotalCount    int           `json:"total_count"`
	ReturnedCount int           `json:"returned_count"`
	Limited       bool          `json:"limited"`
}
