package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/grokipedia-mcp/internal/adapters/driven/config/env"
	"github.com/custodia-labs/grokipedia-mcp/internal/adapters/driven/config/file"
	"github.com/custodia-labs/grokipedia-mcp/internal/adapters/driven/grokipedia"
	"github.com/custodia-labs/grokipedia-mcp/internal/adapters/driven/index"
	"github.com/custodia-labs/grokipedia-mcp/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/grokipedia-mcp/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/grokipedia-mcp/internal/core/domain"
	"github.com/custodia-labs/grokipedia-mcp/internal/core/ports/driven"
	"github.com/custodia-labs/grokipedia-mcp/internal/core/ports/driving"
	"github.com/custodia-labs/grokipedia-mcp/internal/core/services"
	"github.com/custodia-labs/grokipedia-mcp/internal/logger"
)

// closers release resources opened while wiring a command.
var closers []func() error

// settingsOverride adjusts settings from command flags. Overrides apply
// after the config file and before the environment.
type settingsOverride func(*domain.AppSettings)

// promptStore opens the prompts directory beside config.toml.
func promptStore() (*file.PromptStore, error) {
	dir := ""
	if configDir != "" {
		dir = filepath.Join(configDir, file.PromptDirName)
	}
	return file.NewPromptStore(dir)
}

// prompts serves the user-edited prompt templates, falling back to the
// built-ins when the directory is unusable. Edits are picked up until ctx
// is done.
func prompts(ctx context.Context) driving.PromptService {
	store, err := promptStore()
	if err != nil {
		logger.Warn("prompt templates: %v", err)
		return services.NewPromptService(nil)
	}

	go func() {
		if err := store.Watch(ctx); err != nil {
			logger.Warn("prompt templates will not reload: %v", err)
		}
	}()
	return services.NewPromptService(store)
}

func initSettings() error {
	if settingsService != nil {
		return nil
	}

	store, err := file.NewConfigStore(configDir)
	switch {
	case err == nil:
		settingsService = services.NewSettingsService(store)
	case configDir == "":
		// No home directory: run on defaults and the environment.
		logger.Warn("config unavailable, settings will not persist: %v", err)
		settingsService = services.NewSettingsService(memory.NewConfigStore())
	default:
		return fmt.Errorf("opening config: %w", err)
	}
	return nil
}

// resolveSettings layers defaults, the config file, flag overrides and the
// environment, then validates the result.
func resolveSettings(overrides ...settingsOverride) (*domain.AppSettings, error) {
	if settingsService == nil {
		return nil, errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	for _, override := range overrides {
		override(settings)
	}
	if err := env.Apply(settings); err != nil {
		return nil, err
	}
	if err := services.ValidateSettings(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// articles returns the article service, building it from settings on
// first use.
func articles(ctx context.Context, overrides ...settingsOverride) (driving.ArticleService, error) {
	if articleService != nil {
		return articleService, nil
	}

	settings, err := resolveSettings(overrides...)
	if err != nil {
		return nil, err
	}

	source, err := openSource(ctx, settings)
	if err != nil {
		return nil, err
	}
	articleService = services.NewArticleService(source)
	return articleService, nil
}

// mirror returns the mirror service. Pulls read from the API configured
// in settings regardless of source.kind.
func mirror() (driving.MirrorService, error) {
	if mirrorService != nil {
		return mirrorService, nil
	}

	settings, err := resolveSettings()
	if err != nil {
		return nil, err
	}

	store, err := openMirror(settings)
	if err != nil {
		return nil, err
	}
	mirrorService = services.NewMirrorService(newClient(settings.API), store.ArticleStore())
	return mirrorService, nil
}

func openSource(ctx context.Context, settings *domain.AppSettings) (driven.ArticleSource, error) {
	if articlesFile != "" {
		return loadArticles(ctx, articlesFile)
	}

	switch settings.Source.Kind {
	case domain.SourceKindMirror:
		store, err := openMirror(settings)
		if err != nil {
			return nil, err
		}
		return store.ArticleStore(), nil
	default:
		logger.Debug("Using Grokipedia API at %s", settings.API.BaseURL)
		return newClient(settings.API), nil
	}
}

func newClient(api domain.APISettings) *grokipedia.Client {
	return grokipedia.NewClient(grokipedia.Config{
		BaseURL:           api.BaseURL,
		Timeout:           api.Timeout(),
		RequestsPerSecond: api.RequestsPerSecond,
		Burst:             api.Burst,
		MaxRetries:        api.MaxRetries,
		UserAgent:         api.UserAgent,
	})
}

func openMirror(settings *domain.AppSettings) (*sqlite.Store, error) {
	store, err := sqlite.NewStore(settings.Source.MirrorPath)
	if err != nil {
		return nil, fmt.Errorf("opening mirror: %w", err)
	}
	logger.Debug("Using mirror at %s", store.Path())
	closers = append(closers, store.Close)
	return store, nil
}

// loadArticles imports a JSON Lines dump into an in-memory store backed by
// an in-memory search index.
func loadArticles(ctx context.Context, path string) (*memory.ArticleStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening articles file: %w", err)
	}
	defer func() { _ = f.Close() }()

	idx, err := index.New("")
	if err != nil {
		return nil, err
	}
	closers = append(closers, idx.Close)

	store := memory.NewArticleStore(idx)
	report, err := services.NewMirrorService(nil, store).Import(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	logger.Info("Loaded %d articles from %s (%d skipped)", report.Imported, path, report.Skipped)
	return store, nil
}

// closeResources releases everything opened by the last command and
// forgets the services built on top of it.
func closeResources() error {
	if len(closers) == 0 {
		return nil
	}

	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	closers = nil
	articleService = nil
	mirrorService = nil
	return errors.Join(errs...)
}
