package domain

import "strings"

// Prompt names served by the MCP server.
const (
	PromptResearchTopic  = "research_topic"
	PromptFindSources    = "find_sources"
	PromptExploreRelated = "explore_related"
	PromptCompareTopics  = "compare_topics"
)

// PromptArgument is a named placeholder in a prompt template.
// Placeholders are written {name} in the template text.
type PromptArgument struct {
	Name        string
	Description string
	Default     string
}

// PromptTemplate is a canned user message offered to MCP clients.
type PromptTemplate struct {
	Name string

	// Description is shown when clients list prompts.
	Description string

	// Title describes a rendered prompt.
	Title string

	Text      string
	Arguments []PromptArgument
}

// Render substitutes arguments into the template. Missing or empty
// arguments take their defaults; unknown placeholders are left alone.
func (p PromptTemplate) Render(args map[string]string) string {
	if len(p.Arguments) == 0 {
		return p.Text
	}

	pairs := make([]string, 0, 2*len(p.Arguments))
	for _, a := range p.Arguments {
		v := args[a.Name]
		if v == "" {
			v = a.Default
		}
		pairs = append(pairs, "{"+a.Name+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(p.Text)
}

// DefaultPrompts returns the built-in prompt templates in display order.
func DefaultPrompts() []PromptTemplate {
	return []PromptTemplate{
		{
			Name:        PromptResearchTopic,
			Description: "Research a topic by searching and retrieving detailed information",
			Title:       "Research a topic",
			Text: `I'll help you research a topic from Grokipedia. Please provide the topic you want to research.

I will:
1. Search for articles related to your topic
2. Retrieve the most relevant article
3. Provide a comprehensive overview including related pages and citations

What topic would you like to research?`,
		},
		{
			Name:        PromptFindSources,
			Description: "Find authoritative sources and citations for a topic",
			Title:       "Find sources",
			Text: `I'll help you find sources and citations for a topic from Grokipedia.

I will:
1. Search for articles on your topic
2. Retrieve citation information
3. List all source materials with URLs

What topic do you need sources for?`,
		},
		{
			Name:        PromptExploreRelated,
			Description: "Explore topics related to a specific article",
			Title:       "Explore related topics",
			Text: `I'll help you explore related topics and discover connections in Grokipedia.

I will:
1. Get the page you're interested in
2. Find all related/linked pages
3. Show you connections and suggest further reading

Which topic would you like to explore?`,
		},
		{
			Name:        PromptCompareTopics,
			Description: "Compare two topics side by side",
			Title:       "Compare two topics",
			Text: `I'll help you compare two topics from Grokipedia.

I will:
1. Retrieve articles for both {topic1} and {topic2}
2. Compare their content, key points, and citations
3. Highlight similarities and differences

Please provide the two topics you want to compare (or confirm the suggestions above).`,
			Arguments: []PromptArgument{
				{Name: "topic1", Description: `first topic (default "Topic 1")`, Default: "Topic 1"},
				{Name: "topic2", Description: `second topic (default "Topic 2")`, Default: "Topic 2"},
			},
		},
	}
}

// FindPrompt returns the built-in template with the given name.
func FindPrompt(name string) (PromptTemplate, bool) {
	for _, p := range DefaultPrompts() {
		if p.Name == name {
			return p, true
		}
	}
	return PromptTemplate{}, false
}
