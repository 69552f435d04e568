package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/grokipedia-mcp/internal/adapters/driven/index"
	"github.com/custodia-labs/grokipedia-mcp/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/grokipedia-mcp/internal/core/ports/driven"
	"github.com/custodia-labs/grokipedia-mcp/internal/logger"
)

// File names inside the data directory.
const (
	dbFileName    = "mirror.db"
	indexDirName  = "index.bleve"
	defaultSubdir = "mirror"
)

// Store is the SQLite-backed article mirror. Article rows live in the
// database; a bleve index next to it serves search and near-miss lookups.
type Store struct {
	db    *sql.DB
	path  string
	index driven.ArticleIndex
}

// DefaultDir returns ~/.grokipedia-mcp/mirror.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".grokipedia-mcp", defaultSubdir), nil
}

// NewStore opens or creates a mirror in dataDir.
// If dataDir is empty, defaults to ~/.grokipedia-mcp/mirror.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dataDir = dir
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFileName)

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	idx, err := index.New(filepath.Join(dataDir, indexDirName))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("opening search index: %w", err)
	}
	s.index = idx

	if err := s.syncIndex(context.Background()); err != nil {
		s.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the index and the database connection.
func (s *Store) Close() error {
	var idxErr error
	if s.index != nil {
		idxErr = s.index.Close()
	}
	if err := s.db.Close(); err != nil {
		return err
	}
	return idxErr
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// ArticleStore returns the article repository backed by this store.
func (s *Store) ArticleStore() *ArticleStore {
	return &ArticleStore{store: s}
}

// syncIndex makes the search index hold exactly the slugs in the articles
// table. They drift apart after a crash between a row write and its index
// write, or when the database is edited by hand.
func (s *Store) syncIndex(ctx context.Context) error {
	missing, err := s.ArticleStore().slugs(ctx)
	if err != nil {
		return err
	}
	indexed, err := s.index.Slugs(ctx)
	if err != nil {
		return fmt.Errorf("listing index: %w", err)
	}

	stale := 0
	for _, slug := range indexed {
		if _, ok := missing[slug]; ok {
			delete(missing, slug)
			continue
		}
		if err := s.index.Remove(slug); err != nil {
			return fmt.Errorf("unindexing %s: %w", slug, err)
		}
		stale++
	}
	if stale == 0 && len(missing) == 0 {
		return nil
	}

	logger.Info("Resyncing mirror index (%d stale, %d missing)", stale, len(missing))
	return s.ArticleStore().reindex(ctx, missing)
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_articles.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}
