// Package sqlite provides the offline article mirror.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. Article rows are stored in a single table; citations and
// related links are kept as JSON columns. A bleve index beside the database
// answers search and near-miss identifier queries, so the mirror implements
// driven.ArticleStore, driven.ArticleSource and driven.IdentifierLister.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the mirror is stored under ~/.grokipedia-mcp/mirror
// (mirror.db and index.bleve).
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
