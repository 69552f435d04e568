// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// ArticleService is the façade behind every MCP tool: it validates a
// request, fetches the article once and shapes it into a bounded view.
// MirrorService fills the offline store, SettingsService manages
// persisted configuration and PromptService serves the MCP prompts.
package services
