package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/grokipedia-mcp/internal/core/domain"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		maxLength     int
		want          string
		wantTruncated bool
	}{
		{name: "shorter than limit", text: "abc", maxLength: 5, want: "abc"},
		{name: "exactly at limit", text: "abcde", maxLength: 5, want: "abcde"},
		{name: "longer than limit", text: "abcdefgh", maxLength: 5, want: "abcde…", wantTruncated: true},
		{name: "empty text", text: "", maxLength: 1, want: ""},
		{name: "multi-byte runes fit", text: "héllo", maxLength: 5, want: "héllo"},
		{name: "multi-byte runes cut", text: "ünïcödé", maxLength: 3, want: "ünï…", wantTruncated: true},
		{name: "combining sequence kept whole", text: "e\u0301e\u0301e\u0301", maxLength: 2, want: "e\u0301e\u0301…", wantTruncated: true},
		{name: "emoji kept whole", text: "👍🏽👍🏽👍🏽", maxLength: 1, want: "👍🏽…", wantTruncated: true},
		{name: "flag sequence", text: "🇫🇷🇩🇪", maxLength: 2, want: "🇫🇷🇩🇪"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, truncated, err := Truncate(tt.text, tt.maxLength)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantTruncated, truncated)
		})
	}
}

func TestTruncate_NonPositiveLimit(t *testing.T) {
	for _, limit := range []int{0, -1} {
		_, _, err := Truncate("text", limit)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	}
}

func TestTruncate_PrefixProperty(t *testing.T) {
	text := strings.Repeat("Grokipedia ", 50)

	got, truncated, err := Truncate(text, 42)
	require.NoError(t, err)
	require.True(t, truncated)

	kept := strings.TrimSuffix(got, TruncationMarker)
	assert.True(t, strings.HasPrefix(text, kept))
	assert.Equal(t, 42, Length(kept))
	assert.Equal(t, 43, Length(got))
}

func TestTruncate_Idempotent(t *testing.T) {
	first, _, err := Truncate("abcdefgh", 5)
	require.NoError(t, err)

	// The marker adds one cluster, so a limit of 6 keeps the result intact.
	second, truncated, err := Truncate(first, 6)
	require.NoError(t, err)
	assert.False(t, truncated)
	assert.Equal(t, first, second)
}

func TestLength(t *testing.T) {
	assert.Equal(t, 0, Length(""))
	assert.Equal(t, 5, Length("hello"))
	assert.Equal(t, 1, Length("e\u0301"))
	assert.Equal(t, 1, Length("👍🏽"))
}

func TestShownLength(t *testing.T) {
	// U+0600 is a prepended mark, so the marker joins its cluster.
	fused, truncated, err := Truncate("ab\u0600\ncdef", 3)
	require.NoError(t, err)
	require.True(t, truncated)
	assert.Equal(t, "ab\u0600…", fused)
	assert.Equal(t, 3, Length(fused))
	assert.Equal(t, 3, ShownLength(fused))

	plain, _, err := Truncate("hello world", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, ShownLength(plain))

	assert.Equal(t, 3, ShownLength("abc"))
}
