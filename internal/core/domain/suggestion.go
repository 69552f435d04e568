package domain

import "fmt"

// DefaultSuggestionCount is the number of alternatives offered on a miss.
const DefaultSuggestionCount = 5

// SuggestionCandidate is an alternative slug offered after a failed lookup.
type SuggestionCandidate struct {
	Slug  string  `json:"slug"`
	Title string  `json:"title,omitempty"`
	Score float64 `json:"score"`
}

// Label renders the candidate as "Title (slug)", or the bare slug when
// the title is unknown.
func (c SuggestionCandidate) Label() string {
	if c.Title == "" || c.Title == c.Slug {
		return c.Slug
	}
	return fmt.Sprintf("%s (%s)", c.Title, c.Slug)
}
