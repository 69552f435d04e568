package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/grokipedia-mcp/internal/core/domain"
)

// mockPromptStore implements driven.PromptStore for testing.
type mockPromptStore struct {
	prompts map[string]string
	err     error
}

func (m *mockPromptStore) Load(name string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	text, ok := m.prompts[name]
	if !ok {
		return "", errors.New("no such prompt")
	}
	return text, nil
}

func (m *mockPromptStore) Reload() {}

func TestPromptService_List_BuiltIn(t *testing.T) {
	svc := NewPromptService(nil)

	prompts := svc.List()

	require.Len(t, prompts, 4)
	names := make([]string, len(prompts))
	for i, p := range prompts {
		names[i] = p.Name
	}
	assert.Equal(t, []string{
		domain.PromptResearchTopic,
		domain.PromptFindSources,
		domain.PromptExploreRelated,
		domain.PromptCompareTopics,
	}, names)
}

func TestPromptService_List_PrefersStore(t *testing.T) {
	store := &mockPromptStore{prompts: map[string]string{
		domain.PromptFindSources: "Find me sources.",
	}}
	svc := NewPromptService(store)

	prompts := svc.List()

	assert.Equal(t, "Find me sources.", prompts[1].Text)
	assert.Contains(t, prompts[0].Text, "What topic would you like to research?")
}

func TestPromptService_Render_Defaults(t *testing.T) {
	svc := NewPromptService(nil)

	text, err := svc.Render(domain.PromptCompareTopics, nil)

	require.NoError(t, err)
	assert.Contains(t, text, "Retrieve articles for both Topic 1 and Topic 2")
}

func TestPromptService_Render_CustomTemplate(t *testing.T) {
	store := &mockPromptStore{prompts: map[string]string{
		domain.PromptCompareTopics: "{topic2} versus {topic1}",
	}}
	svc := NewPromptService(store)

	text, err := svc.Render(domain.PromptCompareTopics, map[string]string{"topic1": "Go", "topic2": "Rust"})

	require.NoError(t, err)
	assert.Equal(t, "Rust versus Go", text)
}

func TestPromptService_Render_StoreErrorFallsBack(t *testing.T) {
	svc := NewPromptService(&mockPromptStore{err: errors.New("disk gone")})

	text, err := svc.Render(domain.PromptExploreRelated, nil)

	require.NoError(t, err)
	assert.Contains(t, text, "Which topic would you like to explore?")
}

func TestPromptService_Render_Unknown(t *testing.T) {
	svc := NewPromptService(nil)

	_, err := svc.Render("write_poem", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
