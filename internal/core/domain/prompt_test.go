package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPromptTemplate_Render(t *testing.T) {
	p, ok := FindPrompt(PromptCompareTopics)
	assert.True(t, ok)

	tests := []struct {
		name string
		args map[string]string
		want string
	}{
		{"both given", map[string]string{"topic1": "Go", "topic2": "Rust"}, "both Go and Rust"},
		{"defaults", nil, "both Topic 1 and Topic 2"},
		{"empty uses default", map[string]string{"topic1": "", "topic2": "Zig"}, "both Topic 1 and Zig"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, p.Render(tt.args), tt.want)
		})
	}
}

func TestPromptTemplate_Render_NoArguments(t *testing.T) {
	p := PromptTemplate{Text: "literal {topic1}"}

	assert.Equal(t, "literal {topic1}", p.Render(map[string]string{"topic1": "Go"}))
}

func TestFindPrompt_Unknown(t *testing.T) {
	_, ok := FindPrompt("nope")
	assert.False(t, ok)
}
