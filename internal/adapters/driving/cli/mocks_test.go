package cli

import (
	"context"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/grokipedia-mcp/internal/core/domain"
	"github.com/custodia-labs/grokipedia-mcp/internal/core/ports/driving"
)

// mockArticleService records requests and returns canned views.
type mockArticleService struct {
	err error

	lastSearch   domain.SearchRequest
	lastPage     domain.PageRequest
	lastContent  domain.ContentRequest
	lastCitation domain.CitationsRequest
	lastRelated  domain.RelatedRequest
	lastSection  domain.SectionRequest
}

func (m *mockArticleService) Search(_ context.Context, req domain.SearchRequest) (*domain.SearchPage, error) {
	m.lastSearch = req
	if m.err != nil {
		return nil, m.err
	}
	if req.Query == "nothing" {
		return &domain.SearchPage{Query: req.Query, SortBy: domain.SortByRelevance, Results: []domain.SearchResult{}}, nil
	}
	return &domain.SearchPage{
		Query:  req.Query,
		SortBy: domain.SortByRelevance,
		Results: []domain.SearchResult{
			{Slug: "Go_(programming_language)", Title: "Go (programming language)", Snippet: "Go is a language", RelevanceScore: 0.9, ViewCount: 1200},
			{Slug: "Gopher", Title: "Gopher", RelevanceScore: 0.4, ViewCount: 30},
		},
		Count: 2,
	}, nil
}

func (m *mockArticleService) GetPage(_ context.Context, req domain.PageRequest) (*domain.PageOverview, error) {
	m.lastPage = req
	if m.err != nil {
		return nil, m.err
	}
	return &domain.PageOverview{
		Slug:             req.Slug,
		Title:            "Go",
		Description:      "A programming language",
		Content:          "# Go\n\nGo is a…",
		ContentLength:    14,
		ContentTruncated: true,
		OriginalLength:   400,
		ViewCount:        1200,
		CitationCount:    7,
		Citations:        []domain.CitationSummary{{Title: "Spec", URL: "https://go.dev/ref/spec"}},
		RelatedCount:     3,
	}, nil
}

func (m *mockArticleService) GetPageContent(_ context.Context, req domain.ContentRequest) (*domain.PageContent, error) {
	m.lastContent = req
	if m.err != nil {
		return nil, m.err
	}
	return &domain.PageContent{
		Slug:           req.Slug,
		Title:          "Go",
		Content:        "# Go\n\nGo is a language.",
		ContentLength:  23,
		OriginalLength: 23,
	}, nil
}

func (m *mockArticleService) GetPageCitations(_ context.Context, req domain.CitationsRequest) (*domain.CitationList, error) {
	m.lastCitation = req
	if m.err != nil {
		return nil, m.err
	}
	return &domain.CitationList{
		Slug:          req.Slug,
		Title:         "Go",
		Citations:     []domain.Citation{{ID: "1", Title: "Spec", URL: "https://go.dev/ref/spec", Description: "Language reference"}},
		TotalCount:    1,
		ReturnedCount: 1,
	}, nil
}

func (m *mockArticleService) GetRelatedPages(_ context.Context, req domain.RelatedRequest) (*domain.RelatedList, error) {
	m.lastRelated = req
	if m.err != nil {
		return nil, m.err
	}
	return &domain.RelatedList{
		Slug:          req.Slug,
		Title:         "Go",
		Related:       []domain.RelatedLink{{Title: "Rust", Slug: "Rust_(programming_language)"}, {Title: "C"}},
		TotalCount:    4,
		ReturnedCount: 2,
		Limited:       true,
	}, nil
}

func (m *mockArticleService) GetPageSections(_ context.Context, req domain.SectionsRequest) (*domain.SectionList, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.SectionList{
		Slug:  req.Slug,
		Title: "Go",
		Sections: []domain.SectionHeading{
			{Level: 1, Heading: "Go"},
			{Level: 2, Heading: "History"},
			{Level: 3, Heading: "Origins"},
		},
		Count: 3,
	}, nil
}

func (m *mockArticleService) GetPageSection(_ context.Context, req domain.SectionRequest) (*domain.SectionContent, error) {
	m.lastSection = req
	if m.err != nil {
		return nil, m.err
	}
	return &domain.SectionContent{
		Slug:           req.Slug,
		Title:          "Go",
		Requested:      req.SectionHeader,
		Heading:        "History",
		Level:          2,
		Content:        "## History\n\nDesigned at Google…",
		ContentLength:  31,
		Truncated:      true,
		OriginalLength: 45,
	}, nil
}

// mockMirrorService counts imported lines and reports pulls.
type mockMirrorService struct {
	imported    string
	pulled      []string
	concurrency int
	pullReport  *driving.PullReport
	removed     []string
	removeErr   error
	count       int
}

func (m *mockMirrorService) Import(_ context.Context, r io.Reader) (*driving.ImportReport, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	m.imported = string(data)

	report := &driving.ImportReport{}
	for _, line := range strings.Split(m.imported, "\n") {
		switch {
		case strings.TrimSpace(line) == "":
		case strings.HasPrefix(line, "{"):
			report.Imported++
		default:
			report.Skipped++
		}
	}
	return report, nil
}

func (m *mockMirrorService) Pull(_ context.Context, slugs []string, concurrency int) (*driving.PullReport, error) {
	m.pulled = slugs
	m.concurrency = concurrency
	if m.pullReport != nil {
		return m.pullReport, nil
	}
	return &driving.PullReport{Stored: slugs, Missing: []string{}, Failed: map[string]error{}}, nil
}

func (m *mockMirrorService) Remove(_ context.Context, slugs []string) (int, error) {
	if m.removeErr != nil {
		return 0, m.removeErr
	}
	m.removed = slugs
	return len(slugs), nil
}

func (m *mockMirrorService) Count(_ context.Context) (int, error) {
	return m.count, nil
}

// mockSettingsService keeps settings in memory.
type mockSettingsService struct {
	settings domain.AppSettings
	set      map[string]string
}

func newMockSettingsService() *mockSettingsService {
	return &mockSettingsService{settings: domain.DefaultAppSettings(), set: map[string]string{}}
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(settings *domain.AppSettings) error {
	m.settings = *settings
	return nil
}

func (m *mockSettingsService) Set(key, value string) error {
	switch key {
	case "server.transport":
		m.settings.Server.Transport = domain.Transport(value)
	case "source.kind":
		m.settings.Source.Kind = domain.SourceKind(value)
	case "api.base_url":
		m.settings.API.BaseURL = value
	case "server.port", "api.burst":
	default:
		return &domain.InvalidArgumentError{Param: key, Reason: "unknown setting"}
	}
	m.set[key] = value
	return nil
}

func (m *mockSettingsService) Keys() []string {
	return []string{"api.base_url", "server.transport", "source.kind"}
}

func (m *mockSettingsService) Validate() error { return nil }

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// testServices exposes the mocks installed by setupTestServices.
type testServices struct {
	articles *mockArticleService
	mirror   *mockMirrorService
	settings *mockSettingsService
}

// setupTestServices installs mock services and returns a cleanup function
// that restores the previous ones and resets command flags.
func setupTestServices() (*testServices, func()) {
	prevSettings, prevArticles, prevMirror := settingsService, articleService, mirrorService

	ts := &testServices{
		articles: &mockArticleService{},
		mirror:   &mockMirrorService{},
		settings: newMockSettingsService(),
	}
	settingsService = ts.settings
	articleService = ts.articles
	mirrorService = ts.mirror

	return ts, func() {
		_ = closeResources()
		settingsService, articleService, mirrorService = prevSettings, prevArticles, prevMirror
		resetFlags(rootCmd)
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}
}

// resetFlags restores every flag to its default so one test's flags do not
// leak into the next Execute.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}
