package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelatedLink_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected RelatedLink
	}{
		{
			name:     "bare title",
			input:    `"Deep learning"`,
			expected: RelatedLink{Title: "Deep learning"},
		},
		{
			name:     "object",
			input:    `{"title":"Deep learning","slug":"Deep_learning"}`,
			expected: RelatedLink{Title: "Deep learning", Slug: "Deep_learning"},
		},
		{
			name:     "object without slug",
			input:    `{"title":"Statistics"}`,
			expected: RelatedLink{Title: "Statistics"},
		},
		{
			name:     "leading whitespace",
			input:    `  "Padded"`,
			expected: RelatedLink{Title: "Padded"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var link RelatedLink
			require.NoError(t, json.Unmarshal([]byte(tt.input), &link))
			assert.Equal(t, tt.expected, link)
		})
	}
}

func TestRelatedLink_UnmarshalJSON_MixedList(t *testing.T) {
	var links []RelatedLink
	err := json.Unmarshal([]byte(`["A", {"title":"B","slug":"B_page"}]`), &links)

	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, "A", links[0].Title)
	assert.Equal(t, "B_page", links[1].Slug)
}

func TestRelatedLink_UnmarshalJSON_Invalid(t *testing.T) {
	var link RelatedLink
	err := json.Unmarshal([]byte(`42`), &link)
	assert.Error(t, err)
}

func TestArticle_Ref(t *testing.T) {
	a := &Article{Slug: "Go", Title: "Go language"}
	assert.Equal(t, ArticleRef{Slug: "Go", Title: "Go language"}, a.Ref())
}

func TestSuggestionCandidate_Label(t *testing.T) {
	assert.Equal(t, "Machine learning (Machine_learning)",
		SuggestionCandidate{Slug: "Machine_learning", Title: "Machine learning"}.Label())
	assert.Equal(t, "Go", SuggestionCandidate{Slug: "Go"}.Label())
	assert.Equal(t, "Go", SuggestionCandidate{Slug: "Go", Title: "Go"}.Label())
}

func TestIntOr(t *testing.T) {
	v := 7
	assert.Equal(t, 7, IntOr(&v, 3))
	assert.Equal(t, 3, IntOr(nil, 3))
}

func TestArticle_Excerpt(t *testing.T) {
	tests := []struct {
		name     string
		article  Article
		expected string
	}{
		{
			name:     "description wins",
			article:  Article{Description: "Short.", Content: "Body."},
			expected: "Short.",
		},
		{
			name:     "first paragraph after heading",
			article:  Article{Content: "# Title\n\nFirst  line\nwraps here.\n\nSecond."},
			expected: "First line wraps here.",
		},
		{
			name:     "empty",
			article:  Article{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.article.Excerpt())
		})
	}
}
