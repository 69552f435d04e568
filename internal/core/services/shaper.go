package services

import (
	"github.com/custodia-labs/grokipedia-mcp/internal/core/domain"
)

// The functions below project an article onto the bounded views returned
// to callers. They never mutate the article and never return nil slices.

// Overview builds a PageOverview with content cut to maxContentLength.
func Overview(a *domain.Article, maxContentLength int) (*domain.PageOverview, error) {
	content, truncated, err := Truncate(a.Content, maxContentLength)
	if err != nil {
		return nil, err
	}

	citations := make([]domain.CitationSummary, 0, min(len(a.Citations), domain.DefaultOverviewCitations))
	for _, c := range a.Citations {
		if len(citations) == domain.DefaultOverviewCitations {
			break
		}
		citations = append(citations, domain.CitationSummary{Title: c.Title, URL: c.URL})
	}

	return &domain.PageOverview{
		Slug:             a.Slug,
		Title:            a.Title,
		Description:      a.Description,
		Content:          content,
		ContentLength:    Length(content),
		ContentTruncated: truncated,
		OriginalLength:   Length(a.Content),
		ViewCount:        a.ViewCount,
		CitationCount:    len(a.Citations),
		Citations:        citations,
		RelatedCount:     len(a.RelatedLinks),
	}, nil
}

// Content builds a PageContent with the body cut to maxLength.
func Content(a *domain.Article, maxLength int) (*domain.PageContent, error) {
	content, truncated, err := Truncate(a.Content, maxLength)
	if err != nil {
		return nil, err
	}
	return &domain.PageContent{
		Slug:           a.Slug,
		Title:          a.Title,
		Content:        content,
		ContentLength:  Length(content),
		Truncated:      truncated,
		OriginalLength: Length(a.Content),
	}, nil
}

// SectionOutline lists the article's headings in body order.
func SectionOutline(a *domain.Article) *domain.SectionList {
	entries := IndexSections(a.Content)
	sections := make([]domain.SectionHeading, len(entries))
	for i, e := range entries {
		sections[i] = e.Outline()
	}
	return &domain.SectionList{
		Slug:     a.Slug,
		Title:    a.Title,
		Sections: sections,
		Count:    len(sections),
	}
}

// Section returns the content under the first heading matching header.
func Section(a *domain.Article, header string, maxLength int) (*domain.SectionContent, error) {
	entries := IndexSections(a.Content)
	entry, ok := FindSection(entries, header)
	if !ok {
		return nil, &domain.SectionNotFoundError{
			Slug:      a.Slug,
			Heading:   header,
			Available: Headings(entries),
		}
	}

	full := SectionText(a.Content, entry)
	content, truncated, err := Truncate(full, maxLength)
	if err != nil {
		return nil, err
	}

	return &domain.SectionContent{
		Slug:           a.Slug,
		Title:          a.Title,
		Requested:      header,
		Heading:        entry.Heading,
		Level:          entry.Level,
		Content:        content,
		ContentLength:  Length(content),
		Truncated:      truncated,
		OriginalLength: Length(full),
	}, nil
}

// Citations returns the first limit citations; limit <= 0 means all.
func Citations(a *domain.Article, limit int) *domain.CitationList {
	returned := take(a.Citations, limit)
	return &domain.CitationList{
		Slug:          a.Slug,
		Title:         a.Title,
		Citations:     returned,
		TotalCount:    len(a.Citations),
		ReturnedCount: len(returned),
		Limited:       len(returned) < len(a.Citations),
	}
}

// Related returns the first limit linked pages in delivery order.
func Related(a *domain.Article, limit int) *domain.RelatedList {
	returned := take(a.RelatedLinks, limit)
	return &domain.RelatedList{
		Slug:          a.Slug,
		Title:         a.Title,
		Related:       returned,
		TotalCount:    len(a.RelatedLinks),
		ReturnedCount: len(returned),
		Limited:       len(returned) < len(a.RelatedLinks),
	}
}

// ResultPage wraps search results with the parameters that produced them.
func ResultPage(query string, sortBy domain.SortOrder, minViews *int64, results []domain.SearchResult) *domain.SearchPage {
	if results == nil {
		results = make([]domain.SearchResult, 0)
	}
	return &domain.SearchPage{
		Query:    query,
		SortBy:   sortBy,
		MinViews: minViews,
		Results:  results,
		Count:    len(results),
	}
}

// take copies at most limit items of s into a fresh non-nil slice.
func take[T any](s []T, limit int) []T {
	n := len(s)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]T, n)
	copy(out, s)
	return out
}
