package services

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/grokipedia-mcp/internal/core/domain"
	"github.com/custodia-labs/grokipedia-mcp/internal/core/ports/driven"
	"github.com/custodia-labs/grokipedia-mcp/internal/core/ports/driving"
	"github.com/custodia-labs/grokipedia-mcp/internal/logger"
)

// Ensure MirrorService implements the interface.
var _ driving.MirrorService = (*MirrorService)(nil)

const (
	// DefaultPullConcurrency is used when Pull is given no concurrency.
	DefaultPullConcurrency = 4

	// maxImportLine bounds a single JSON Lines record.
	maxImportLine = 32 << 20
)

// MirrorService copies articles into the local store.
type MirrorService struct {
	upstream driven.ArticleSource
	store    driven.ArticleStore
}

// NewMirrorService creates a mirror service. upstream may be nil when only
// Import and Count are used.
func NewMirrorService(upstream driven.ArticleSource, store driven.ArticleStore) *MirrorService {
	return &MirrorService{upstream: upstream, store: store}
}

// Import reads one JSON article per line. Blank lines, malformed records
// and records without a slug are skipped.
func (s *MirrorService) Import(ctx context.Context, r io.Reader) (*driving.ImportReport, error) {
	logger.Section("Mirror import")
	report := &driving.ImportReport{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxImportLine)

	line := 0
	for scanner.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return report, err
		}

		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			report.Skipped++
			continue
		}

		var article domain.Article
		if err := json.Unmarshal([]byte(raw), &article); err != nil {
			logger.Warn("import: line %d: %v", line, err)
			report.Skipped++
			continue
		}
		article.Slug = strings.TrimSpace(article.Slug)
		if article.Slug == "" {
			logger.Warn("import: line %d: missing slug", line)
			report.Skipped++
			continue
		}
		if article.Title == "" {
			article.Title = strings.ReplaceAll(article.Slug, "_", " ")
		}

		if err := s.store.SaveArticle(ctx, &article); err != nil {
			return report, fmt.Errorf("saving %s: %w", article.Slug, err)
		}
		report.Imported++
	}
	if err := scanner.Err(); err != nil {
		return report, fmt.Errorf("reading import: line %d: %w", line+1, err)
	}

	logger.Info("import: %d imported, %d skipped", report.Imported, report.Skipped)
	return report, nil
}

// Pull fetches slugs from upstream with bounded concurrency and stores
// each one. Unknown slugs are reported as missing; other per-slug failures
// are collected without aborting the run.
func (s *MirrorService) Pull(ctx context.Context, slugs []string, concurrency int) (*driving.PullReport, error) {
	if s.upstream == nil {
		return nil, errors.New("mirror: no upstream source configured")
	}
	if concurrency <= 0 {
		concurrency = DefaultPullConcurrency
	}
	logger.Section("Mirror pull")

	report := &driving.PullReport{
		Stored:  []string{},
		Missing: []string{},
		Failed:  make(map[string]error),
	}
	var mu sync.Mutex

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, slug := range dedupe(slugs) {
		g.Go(func() error {
			article, err := s.upstream.FetchArticle(gCtx, slug, domain.FetchOptions{IncludeContent: true})
			if err == nil && article != nil {
				err = s.store.SaveArticle(gCtx, article)
			}

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil && article == nil, errors.Is(err, domain.ErrNotFound):
				logger.Debug("pull: %s not found", slug)
				report.Missing = append(report.Missing, slug)
			case err != nil:
				if ctxErr := gCtx.Err(); ctxErr != nil {
					return ctxErr
				}
				logger.Warn("pull: %s: %v", slug, err)
				report.Failed[slug] = err
			default:
				logger.Debug("pull: stored %s", slug)
				report.Stored = append(report.Stored, slug)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return report, err
	}

	sort.Strings(report.Stored)
	sort.Strings(report.Missing)
	logger.Info("pull: %d stored, %d missing, %d failed",
		len(report.Stored), len(report.Missing), len(report.Failed))
	return report, nil
}

// Remove deletes slugs from the store. Unknown slugs are ignored, so the
// result counts only articles that were present.
func (s *MirrorService) Remove(ctx context.Context, slugs []string) (int, error) {
	before, err := s.store.CountArticles(ctx)
	if err != nil {
		return 0, err
	}
	for _, slug := range dedupe(slugs) {
		if err := s.store.DeleteArticle(ctx, slug); err != nil {
			return 0, fmt.Errorf("removing %s: %w", slug, err)
		}
		logger.Debug("remove: %s", slug)
	}
	after, err := s.store.CountArticles(ctx)
	if err != nil {
		return 0, err
	}
	logger.Info("remove: %d removed", before-after)
	return before - after, nil
}

// Count returns the number of mirrored articles.
func (s *MirrorService) Count(ctx context.Context) (int, error) {
	return s.store.CountArticles(ctx)
}

// dedupe drops blank and repeated slugs, keeping first occurrences.
func dedupe(slugs []string) []string {
	seen := make(map[string]struct{}, len(slugs))
	out := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		slug = strings.TrimSpace(slug)
		if slug == "" {
			continue
		}
		if _, ok := seen[slug]; ok {
			continue
		}
		seen[slug] = struct{}{}
		out = append(out, slug)
	}
	return out
}
