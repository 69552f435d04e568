package mcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/grokipedia-mcp/internal/core/domain"
	"github.com/custodia-labs/grokipedia-mcp/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Name is the implementation name announced to clients.
const Name = "Grokipedia"

// Instructions describe the server to connecting clients.
const Instructions = "MCP server for searching and retrieving content from Grokipedia, a wiki-style knowledge base."

// shutdownTimeout bounds graceful shutdown of the HTTP transports.
const shutdownTimeout = 5 * time.Second

// Server is the MCP server for Grokipedia.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer creates a new MCP server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	impl := &mcp.Implementation{
		Name:    Name,
		Version: Version,
	}

	s := &Server{
		ports:  ports,
		server: mcp.NewServer(impl, &mcp.ServerOptions{Instructions: Instructions}),
	}

	s.registerTools()
	s.registerPrompts()
	s.registerResources()

	return s, nil
}

// Serve runs the server on the given transport. host and port are used by
// the HTTP transports only.
func (s *Server) Serve(ctx context.Context, transport domain.Transport, host string, port int) error {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	switch transport {
	case domain.TransportStdio:
		return s.Run(ctx)
	case domain.TransportSSE:
		return s.RunSSE(ctx, addr)
	case domain.TransportStreamableHTTP:
		return s.RunHTTP(ctx, addr)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownTransport, transport)
	}
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	logger.Info("serving MCP over stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP starts the MCP server over streamable HTTP on the specified address.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)
	logger.Info("serving MCP over streamable HTTP on %s", addr)
	return listenAndServe(ctx, addr, handler)
}

// RunSSE starts the MCP server over HTTP with server-sent events.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) RunSSE(ctx context.Context, addr string) error {
	handler := mcp.NewSSEHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)
	logger.Info("serving MCP over SSE on %s", addr)
	return listenAndServe(ctx, addr, handler)
}

func listenAndServe(ctx context.Context, addr string, handler http.Handler) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
