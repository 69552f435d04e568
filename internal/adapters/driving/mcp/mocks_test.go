package mcp

import (
	"context"

	"github.com/custodia-labs/grokipedia-mcp/internal/core/domain"
)

// mockArticleService is a mock implementation of driving.ArticleService.
type mockArticleService struct {
	page     *domain.SearchPage
	overview *domain.PageOverview
	content  *domain.PageContent
	cites    *domain.CitationList
	related  *domain.RelatedList
	sections *domain.SectionList
	section  *domain.SectionContent
	err      error

	lastSearch  domain.SearchRequest
	lastContent domain.ContentRequest
	lastSection domain.SectionRequest
}

func (m *mockArticleService) Search(_ context.Context, req domain.SearchRequest) (*domain.SearchPage, error) {
	m.lastSearch = req
	return m.page, m.err
}

func (m *mockArticleService) GetPage(_ context.Context, _ domain.PageRequest) (*domain.PageOverview, error) {
	return m.overview, m.err
}

func (m *mockArticleService) GetPageContent(_ context.Context, req domain.ContentRequest) (*domain.PageContent, error) {
	m.lastContent = req
	return m.content, m.err
}

func (m *mockArticleService) GetPageCitations(_ context.Context, _ domain.CitationsRequest) (*domain.CitationList, error) {
	return m.cites, m.err
}

func (m *mockArticleService) GetRelatedPages(_ context.Context, _ domain.RelatedRequest) (*domain.RelatedList, error) {
	return m.related, m.err
}

func (m *mockArticleService) GetPageSections(_ context.Context, _ domain.SectionsRequest) (*domain.SectionList, error) {
	return m.sections, m.err
}

func (m *mockArticleService) GetPageSection(_ context.Context, req domain.SectionRequest) (*domain.SectionContent, error) {
	m.lastSection = req
	return m.section, m.err
}
