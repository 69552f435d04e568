package file

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/grokipedia-mcp/internal/logger"
)

// Watch clears the prompt cache whenever a template file in the prompt
// directory is created, edited or removed. It blocks until ctx is done.
func (s *PromptStore) Watch(ctx context.Context) error {
	s.setup.Do(s.populate)
	if s.setupErr != nil {
		return s.setupErr
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create prompt watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(s.dir); err != nil {
		return fmt.Errorf("watch %s: %w", s.dir, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if isTemplateChange(event) {
				logger.Debug("prompt template changed: %s", filepath.Base(event.Name))
				s.Reload()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("prompt watcher: %v", err)
		}
	}
}

// isTemplateChange reports whether event touches a template file. Chmod
// alone and files other than *.txt are ignored.
func isTemplateChange(event fsnotify.Event) bool {
	if filepath.Ext(event.Name) != promptExt {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}
