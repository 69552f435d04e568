package mcp

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/grokipedia-mcp/internal/core/domain"
	"github.com/custodia-labs/grokipedia-mcp/internal/core/services"
)

// previewLength caps the body shown in the get_page text block. The
// structured content carries up to max_content_length.
const previewLength = 1000

// The render functions produce the human-readable text block of each tool
// result. Structured content is the view itself.

func renderSearch(p *domain.SearchPage) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d results for '%s'", p.Count, p.Query)
	if p.SortBy == domain.SortByViews {
		b.WriteString(" (sorted by views)")
	}
	if p.MinViews != nil && *p.MinViews > 0 {
		fmt.Fprintf(&b, " (min views: %d)", *p.MinViews)
	}
	b.WriteString("\n\n")

	for i, r := range p.Results {
		fmt.Fprintf(&b, "%d. %s\n", i+1, r.Title)
		fmt.Fprintf(&b, "   Slug: %s\n", r.Slug)
		fmt.Fprintf(&b, "   Snippet: %s\n", r.Snippet)
		fmt.Fprintf(&b, "   Relevance: %.3f\n", r.RelevanceScore)
		fmt.Fprintf(&b, "   Views: %d\n\n", r.ViewCount)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderOverview(o *domain.PageOverview) string {
	lines := []string{"# " + o.Title, "", "**Slug:** " + o.Slug}

	if o.Description != "" {
		lines = append(lines, "", "**Description:** "+o.Description)
	}

	if o.Content != "" {
		preview, cut, err := services.Truncate(o.Content, previewLength)
		if err != nil {
			preview = o.Content
		}
		lines = append(lines, "", "## Content Preview", "", preview)

		shown := 0
		switch {
		case cut:
			shown = previewLength
		case o.ContentTruncated:
			shown = services.ShownLength(o.Content)
		}
		if shown > 0 {
			lines = append(lines, "", fmt.Sprintf("... (showing first %d of %d chars)", shown, o.OriginalLength))
		}
	}

	if o.CitationCount > 0 {
		lines = append(lines, "", fmt.Sprintf("## Citations (%d total)", o.CitationCount), "")
		for i, c := range o.Citations {
			lines = append(lines, fmt.Sprintf("%d. %s: %s", i+1, c.Title, c.URL))
		}
		if more := o.CitationCount - len(o.Citations); more > 0 {
			lines = append(lines, fmt.Sprintf("... and %d more", more))
		}
	}

	if o.RelatedCount > 0 {
		lines = append(lines, "", fmt.Sprintf("Related pages: %d (use get_related_pages)", o.RelatedCount))
	}
	return strings.Join(lines, "\n")
}

func renderContent(c *domain.PageContent) string {
	text := fmt.Sprintf("# %s\n\n%s", c.Title, c.Content)
	if c.Truncated {
		text += fmt.Sprintf("\n\n... (truncated at %d of %d chars)", services.ShownLength(c.Content), c.OriginalLength)
	}
	return text
}

func renderCitations(c *domain.CitationList) string {
	if c.TotalCount == 0 {
		return fmt.Sprintf("# %s\n\nNo citations found.", c.Title)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", c.Title)
	if c.Limited {
		fmt.Fprintf(&b, "Showing %d of %d citations:\n\n", c.ReturnedCount, c.TotalCount)
	} else {
		fmt.Fprintf(&b, "Found %d citations:\n\n", c.TotalCount)
	}

	for i, cit := range c.Citations {
		fmt.Fprintf(&b, "%d. **%s**\n", i+1, cit.Title)
		fmt.Fprintf(&b, "   URL: %s\n", cit.URL)
		if cit.Description != "" {
			fmt.Fprintf(&b, "   Description: %s\n", cit.Description)
		}
		b.WriteString("\n")
	}
	if c.Limited {
		fmt.Fprintf(&b, "... and %d more citations", c.TotalCount-c.ReturnedCount)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderRelated(r *domain.RelatedList) string {
	if r.TotalCount == 0 {
		return fmt.Sprintf("# %s\n\nNo related pages found.", r.Title)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", r.Title)
	if r.Limited {
		fmt.Fprintf(&b, "Showing %d of %d related pages:\n\n", r.ReturnedCount, r.TotalCount)
	} else {
		fmt.Fprintf(&b, "Found %d related pages:\n\n", r.TotalCount)
	}

	for i, link := range r.Related {
		fmt.Fprintf(&b, "%d. %s\n", i+1, link.Title)
		if link.Slug != "" {
			fmt.Fprintf(&b, "   Slug: %s\n", link.Slug)
		}
		b.WriteString("\n")
	}
	if r.Limited {
		fmt.Fprintf(&b, "... and %d more", r.TotalCount-r.ReturnedCount)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderSections(s *domain.SectionList) string {
	if s.Count == 0 {
		return fmt.Sprintf("# %s\n\nNo section headers found.", s.Title)
	}

	lines := []string{"# " + s.Title, "", fmt.Sprintf("Found %d sections:", s.Count), ""}
	for i, h := range s.Sections {
		indent := strings.Repeat("  ", h.Level-1)
		lines = append(lines, fmt.Sprintf("%d. %s%s (Level %d)", i+1, indent, h.Heading, h.Level))
	}
	return strings.Join(lines, "\n")
}

func renderSection(s *domain.SectionContent) string {
	text := fmt.Sprintf("# %s\n## %s\n\n%s", s.Title, s.Heading, s.Content)
	if s.Truncated {
		text += fmt.Sprintf("\n\n... (truncated at %d of %d chars)", services.ShownLength(s.Content), s.OriginalLength)
	}
	return text
}
