package domain

// Operation defaults.
const (
	DefaultSearchLimit        = 12
	DefaultMaxContentLength   = 5000
	DefaultContentMaxLength   = 10000
	DefaultSectionMaxLength   = 5000
	DefaultRelatedLimit       = 10
	DefaultOverviewCitations  = 5
	DefaultSnippetMaxLength   = 300
	DefaultSuggestionUniverse = 10
	SearchOverfetchMultiplier = 2
)

// Requests carry `validate` tags understood by the service layer.
// Optional numeric parameters are pointers so an explicit zero can be
// rejected instead of being mistaken for "not given".

// SearchRequest asks for articles matching a query.
type SearchRequest struct {
	Query    string    `json:"query" validate:"required"`
	Limit    *int      `json:"limit,omitempty" validate:"omitnil,gt=0"`
	Offset   *int      `json:"offset,omitempty" validate:"omitnil,gte=0"`
	SortBy   SortOrder `json:"sort_by,omitempty" validate:"omitempty,oneof=relevance views"`
	MinViews *int64    `json:"min_views,omitempty" validate:"omitnil,gte=0"`
}

// PageRequest asks for an article overview.
type PageRequest struct {
	Slug             string `json:"slug" validate:"required"`
	MaxContentLength *int   `json:"max_content_length,omitempty" validate:"omitnil,gt=0"`
}

// ContentRequest asks for an article body only.
type ContentRequest struct {
	Slug      string `json:"slug" validate:"required"`
	MaxLength *int   `json:"max_length,omitempty" validate:"omitnil,gt=0"`
}

// CitationsRequest asks for an article's citations. A nil limit means all.
type CitationsRequest struct {
	Slug  string `json:"slug" validate:"required"`
	Limit *int   `json:"limit,omitempty" validate:"omitnil,gt=0"`
}

// RelatedRequest asks for the pages an article links to.
type RelatedRequest struct {
	Slug  string `json:"slug" validate:"required"`
	Limit *int   `json:"limit,omitempty" validate:"omitnil,gt=0"`
}

// SectionsRequest asks for an article's heading outline.
type SectionsRequest struct {
	Slug string `json:"slug" validate:"required"`
}

// SectionRequest asks for one section of an article by heading.
type SectionRequest struct {
	Slug          string `json:"slug" validate:"required"`
	SectionHeader string `json:"section_header" validate:"required"`
	MaxLength     *int   `json:"max_length,omitempty" validate:"omitnil,gt=0"`
}

// IntOr returns *p, or def when p is nil.
func IntOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}
