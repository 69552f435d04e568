// Package mcp exposes the article operations as an MCP (Model Context
// Protocol) server: seven tools, four research prompts and two resource
// templates, over stdio, SSE or streamable HTTP.
package mcp

import "errors"

// ErrMissingArticleService is returned when the article service is not provided.
var ErrMissingArticleService = errors.New("mcp: article service is required")

// ErrUnknownTransport is returned by Serve for an unrecognised transport.
var ErrUnknownTransport = errors.New("mcp: unknown transport")
