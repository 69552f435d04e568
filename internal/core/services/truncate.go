package services

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/custodia-labs/grokipedia-mcp/internal/core/domain"
)

// TruncationMarker is appended to text cut by Truncate.
// It is a single grapheme cluster and does not count toward the limit.
const TruncationMarker = "…"

// Truncate returns at most maxLength grapheme clusters of text.
//
// When text is longer, the first maxLength clusters are returned followed by
// TruncationMarker and truncated is true. The marker may fuse with the last
// kept cluster, so use ShownLength rather than Length to report how much of
// the text was kept. Clusters are never split, which keeps combining
// sequences, emoji and multi-byte runes intact.
func Truncate(text string, maxLength int) (result string, truncated bool, err error) {
	if maxLength <= 0 {
		return "", false, &domain.InvalidArgumentError{
			Param:  "max_length",
			Reason: "must be greater than 0",
		}
	}

	// Fast path: a string with no more bytes than the limit cannot
	// have more clusters than the limit.
	if len(text) <= maxLength {
		return text, false, nil
	}

	state := -1
	rest := text
	for n := 0; n < maxLength; n++ {
		if rest == "" {
			return text, false, nil
		}
		_, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
	}
	if rest == "" {
		return text, false, nil
	}

	return text[:len(text)-len(rest)] + TruncationMarker, true, nil
}

// Length returns the number of grapheme clusters in text.
func Length(text string) int {
	return uniseg.GraphemeClusterCount(text)
}

// ShownLength returns the number of clusters of the source text kept in a
// Truncate result, not counting TruncationMarker.
func ShownLength(result string) int {
	return Length(strings.TrimSuffix(result, TruncationMarker))
}
