// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - ArticleSource: Searches and fetches articles (Grokipedia API or mirror)
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil or absent - the application degrades gracefully:
//
//   - IdentifierLister: Narrows the suggestion universe after a miss.
//     Without it, suggestions fall back to a search by the failed slug.
//   - ArticleStore: Writable article persistence. Only the mirror commands need it.
//   - ArticleIndex: Full-text index used by local sources to answer searches.
//   - PromptStore: User-edited prompt templates. Built-ins are served without it.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
