// Package domain defines the core business entities for grokipedia-mcp.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Article: A fetched encyclopedia article with citations and links
//   - SectionEntry: One heading of an article body and the spans it covers
//   - SearchResult: A ranked search hit
//   - SuggestionCandidate: An alternative offered when a lookup fails
//   - Requests and views: The input and output shape of each operation
//   - PromptTemplate: A canned prompt offered to MCP clients
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
