package services

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	snowballeng "github.com/kljensen/snowball/english"

	"github.com/custodia-labs/grokipedia-mcp/internal/core/domain"
	"github.com/custodia-labs/grokipedia-mcp/internal/logger"
)

// minTokenSimilarity is the edit-distance similarity below which two
// distinct tokens are treated as unrelated.
const minTokenSimilarity = 0.7

type token struct {
	text string
	stem string
}

// Suggest ranks universe by similarity to the identifier that failed to
// resolve and returns up to n candidates with a positive score.
//
// Candidates are ordered by score descending then slug ascending. The failed
// identifier itself and duplicate slugs are dropped. Suggest never fails; an
// unexpected panic yields an empty list.
func Suggest(failed string, universe []domain.ArticleRef, n int) (out []domain.SuggestionCandidate) {
	out = make([]domain.SuggestionCandidate, 0)
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("suggestions for %q abandoned: %v", failed, r)
			out = make([]domain.SuggestionCandidate, 0)
		}
	}()

	if n <= 0 {
		n = domain.DefaultSuggestionCount
	}

	query := tokenize(failed)
	if len(query) == 0 {
		return out
	}

	seen := map[string]bool{failed: true}
	for _, ref := range universe {
		if ref.Slug == "" || seen[ref.Slug] {
			continue
		}
		seen[ref.Slug] = true

		score := similarity(query, tokenize(ref.Slug))
		if ref.Title != "" {
			score = max(score, similarity(query, tokenize(ref.Title)))
		}
		if score <= 0 {
			continue
		}
		out = append(out, domain.SuggestionCandidate{
			Slug:  ref.Slug,
			Title: ref.Title,
			Score: score,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Slug < out[j].Slug
	})

	if len(out) > n {
		out = out[:n]
	}
	return out
}

// tokenize lower-cases s and splits it on every rune that is not a letter
// or digit.
func tokenize(s string) []token {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := make([]token, len(fields))
	for i, f := range fields {
		tokens[i] = token{text: f, stem: snowballeng.Stem(f, false)}
	}
	return tokens
}

// similarity is a soft Jaccard index. Each query token is greedily paired
// with its most similar unused candidate token.
func similarity(query, candidate []token) float64 {
	if len(query) == 0 || len(candidate) == 0 {
		return 0
	}

	used := make([]bool, len(candidate))
	var matched float64
	for _, q := range query {
		best, bestIdx := 0.0, -1
		for i, c := range candidate {
			if used[i] {
				continue
			}
			if s := tokenSimilarity(q, c); s > best {
				best, bestIdx = s, i
			}
		}
		if bestIdx >= 0 {
			used[bestIdx] = true
			matched += best
		}
	}

	return matched / (float64(len(query)+len(candidate)) - matched)
}

func tokenSimilarity(a, b token) float64 {
	if a.text == b.text || a.stem == b.stem {
		return 1
	}
	longest := max(utf8.RuneCountInString(a.text), utf8.RuneCountInString(b.text))
	if longest == 0 {
		return 0
	}
	sim := 1 - float64(levenshtein.ComputeDistance(a.text, b.text))/float64(longest)
	if sim < minTokenSimilarity {
		return 0
	}
	return sim
}
