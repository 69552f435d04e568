package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/grokipedia-mcp/internal/core/domain"
)

// connect starts server on an in-memory transport and returns a client
// session talking to it.
func connect(t *testing.T, server *Server) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	clientSession, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = clientSession.Close() })

	return clientSession
}

func newTestServer(t *testing.T, articles *mockArticleService) *Server {
	t.Helper()
	server, err := NewServer(&Ports{Articles: articles})
	require.NoError(t, err)
	return server
}

func TestNewServer(t *testing.T) {
	t.Run("nil article service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingArticleService)
	})

	t.Run("nil ports returns error", func(t *testing.T) {
		_, err := NewServer(nil)
		assert.ErrorIs(t, err, ErrMissingArticleService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, err := NewServer(&Ports{Articles: &mockArticleService{}})
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestServer_ListsCapabilities(t *testing.T) {
	session := connect(t, newTestServer(t, &mockArticleService{}))
	ctx := context.Background()

	tools, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	names := make([]string, 0, len(tools.Tools))
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{
		ToolSearch, ToolGetPage, ToolGetPageContent, ToolGetPageCitations,
		ToolGetRelatedPages, ToolGetPageSections, ToolGetPageSection,
	}, names)

	prompts, err := session.ListPrompts(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, prompts.Prompts, 4)

	templates, err := session.ListResourceTemplates(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, templates.ResourceTemplates, 2)

	init := session.InitializeResult()
	require.NotNil(t, init)
	assert.Equal(t, Instructions, init.Instructions)
	assert.Equal(t, Name, init.ServerInfo.Name)
}

func TestServer_Serve_UnknownTransport(t *testing.T) {
	server := newTestServer(t, &mockArticleService{})

	err := server.Serve(context.Background(), domain.Transport("carrier-pigeon"), "localhost", 0)
	assert.ErrorIs(t, err, ErrUnknownTransport)
}

func TestPorts_Validate(t *testing.T) {
	t.Run("nil article service returns error", func(t *testing.T) {
		ports := &Ports{}
		assert.ErrorIs(t, ports.Validate(), ErrMissingArticleService)
	})

	t.Run("article service is valid", func(t *testing.T) {
		ports := &Ports{Articles: &mockArticleService{}}
		assert.NoError(t, ports.Validate())
	})
}
