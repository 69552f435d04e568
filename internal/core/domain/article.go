package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Article is a read-only snapshot of one encyclopedia page.
// The body is never modified after it has been fetched.
type Article struct {
	// Slug is the stable, unique, case-sensitive identifier.
	Slug string `json:"slug"`

	// Title is the display title.
	Title string `json:"title"`

	// Description is an optional one-line summary.
	Description string `json:"description,omitempty"`

	// Content is the markdown body. Empty when fetched without content.
	Content string `json:"content,omitempty"`

	// Citations lists the article's sources in original order.
	Citations []Citation `json:"citations"`

	// RelatedLinks lists the pages linked from this article in original order.
	RelatedLinks []RelatedLink `json:"related_links"`

	// ViewCount is the article popularity.
	ViewCount int64 `json:"view_count"`
}

// Ref returns the identifier pair used by the suggestion universe.
func (a *Article) Ref() ArticleRef {
	return ArticleRef{Slug: a.Slug, Title: a.Title}
}

// Excerpt returns a short plain summary for search listings: the
// description when present, otherwise the first paragraph of the body that
// is not a heading.
func (a *Article) Excerpt() string {
	if a.Description != "" {
		return a.Description
	}
	for _, para := range strings.Split(a.Content, "\n\n") {
		para = strings.TrimSpace(para)
		if para != "" && !strings.HasPrefix(para, "#") {
			return strings.Join(strings.Fields(para), " ")
		}
	}
	return ""
}

// Citation is one source cited by an article.
type Citation struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// RelatedLink points from an article to another page.
// The slug need not resolve to a fetchable article.
type RelatedLink struct {
	Title string `json:"title"`
	Slug  string `json:"slug,omitempty"`
}

// UnmarshalJSON accepts either a bare title string or a {title, slug} object.
func (l *RelatedLink) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var title string
		if err := json.Unmarshal(data, &title); err != nil {
			return fmt.Errorf("decoding related link title: %w", err)
		}
		*l = RelatedLink{Title: title}
		return nil
	}

	type plain RelatedLink
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("decoding related link: %w", err)
	}
	*l = RelatedLink(p)
	return nil
}

// ArticleRef is a slug and title pair naming a known article.
type ArticleRef struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// FetchOptions controls what an article source returns.
type FetchOptions struct {
	// IncludeContent requests the article body. Operations that only
	// need citations or links leave it false.
	IncludeContent bool
}
