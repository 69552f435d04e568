package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/grokipedia-mcp/internal/core/domain"
	"github.com/custodia-labs/grokipedia-mcp/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptDirName is the prompt directory inside the config directory.
const PromptDirName = "prompts"

const promptExt = ".txt"

// PromptStore serves prompt templates from <dir>/<name>.txt.
//
// The directory is populated with the built-in templates on first use, never
// overwriting a file the user already has. A missing file, or a directory
// that cannot be created, falls back to the built-in text.
type PromptStore struct {
	dir string

	setup    sync.Once
	setupErr error

	mu    sync.RWMutex
	cache map[string]string
}

// NewPromptStore creates a prompt store rooted at dir, or at
// ~/.grokipedia-mcp/prompts when dir is empty. No files are touched until
// the first Load.
func NewPromptStore(dir string) (*PromptStore, error) {
	if dir == "" {
		base, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(base, PromptDirName)
	}
	return &PromptStore{dir: dir, cache: make(map[string]string)}, nil
}

// Load returns the template text for name, trimmed of surrounding space.
func (s *PromptStore) Load(name string) (string, error) {
	builtin, known := domain.FindPrompt(name)

	s.setup.Do(s.populate)
	if s.setupErr != nil {
		if known {
			return builtin.Text, nil
		}
		return "", fmt.Errorf("load prompt %q: %w", name, s.setupErr)
	}

	s.mu.RLock()
	text, cached := s.cache[name]
	s.mu.RUnlock()
	if cached {
		return text, nil
	}

	data, err := os.ReadFile(s.path(name))
	switch {
	case err == nil:
		text = strings.TrimSpace(string(data))
	case known:
		text = builtin.Text
	default:
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.cache[name]; ok {
		return prev, nil
	}
	s.cache[name] = text
	return text, nil
}

// Reload drops cached templates so the next Load reads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	clear(s.cache)
	s.mu.Unlock()
}

// Dir returns the prompt directory.
func (s *PromptStore) Dir() string {
	return s.dir
}

func (s *PromptStore) path(name string) string {
	return filepath.Join(s.dir, name+promptExt)
}

// populate creates the directory, one file per built-in template and a
// README. Existing files are left alone.
func (s *PromptStore) populate() {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		s.setupErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	for _, p := range domain.DefaultPrompts() {
		if err := writeIfMissing(s.path(p.Name), p.Text); err != nil {
			s.setupErr = fmt.Errorf("create default prompt %q: %w", p.Name, err)
			return
		}
	}

	if err := writeIfMissing(filepath.Join(s.dir, "README.md"), promptReadme()); err != nil {
		s.setupErr = fmt.Errorf("create prompt readme: %w", err)
	}
}

func writeIfMissing(path, content string) error {
	_, err := os.Stat(path)
	if !errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return os.WriteFile(path, []byte(content), 0600)
}

func promptReadme() string {
	var b strings.Builder
	b.WriteString("# Grokipedia MCP Prompts\n\n")
	b.WriteString("This directory contains the prompts offered to MCP clients.\n\n")
	b.WriteString("## Files\n\n")
	for _, p := range domain.DefaultPrompts() {
		fmt.Fprintf(&b, "- `%s%s` - %s\n", p.Name, promptExt, p.Title)
	}
	b.WriteString(`
## Customisation

Edit any file to change what clients receive. A running server picks up
changes on the next request. Delete a file to restore the built-in text.

## Placeholders
`)
	for _, p := range domain.DefaultPrompts() {
		if len(p.Arguments) == 0 {
			continue
		}
		names := make([]string, 0, len(p.Arguments))
		for _, a := range p.Arguments {
			names = append(names, "`{"+a.Name+"}`")
		}
		fmt.Fprintf(&b, "\n`%s%s` uses %s, replaced with the arguments supplied by the client.\n",
			p.Name, promptExt, strings.Join(names, " and "))
	}
	return b.String()
}
