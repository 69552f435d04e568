package domain

import "time"

const unknownDescription = "Unknown"

// Transport defines how the MCP server talks to its client.
type Transport string

// Available transports.
const (
	// TransportStdio exchanges JSON-RPC over stdin and stdout.
	TransportStdio Transport = "stdio"

	// TransportSSE serves the legacy HTTP + server-sent events transport.
	TransportSSE Transport = "sse"

	// TransportStreamableHTTP serves the streamable HTTP transport.
	TransportStreamableHTTP Transport = "streamable-http"
)

// IsValid returns true if the transport is recognised.
func (t Transport) IsValid() bool {
	switch t {
	case TransportStdio, TransportSSE, TransportStreamableHTTP:
		return true
	default:
		return false
	}
}

// IsHTTP returns true if the transport listens on a network address.
func (t Transport) IsHTTP() bool {
	return t == TransportSSE || t == TransportStreamableHTTP
}

// String returns the string representation.
func (t Transport) String() string {
	return string(t)
}

// Description returns a human-readable description of the transport.
func (t Transport) Description() string {
	switch t {
	case TransportStdio:
		return "Stdio (for desktop assistants)"
	case TransportSSE:
		return "SSE (HTTP with server-sent events)"
	case TransportStreamableHTTP:
		return "Streamable HTTP"
	default:
		return unknownDescription
	}
}

// SourceKind identifies where articles are read from.
type SourceKind string

// Available source kinds.
const (
	// SourceKindAPI reads from the live Grokipedia API.
	SourceKindAPI SourceKind = "api"

	// SourceKindMirror reads from the local SQLite mirror.
	SourceKindMirror SourceKind = "mirror"
)

// IsValid returns true if the source kind is recognised.
func (k SourceKind) IsValid() bool {
	return k == SourceKindAPI || k == SourceKindMirror
}

// String returns the string representation.
func (k SourceKind) String() string {
	return string(k)
}

// Description returns a human-readable description of the source kind.
func (k SourceKind) Description() string {
	switch k {
	case SourceKindAPI:
		return "Grokipedia API (network)"
	case SourceKindMirror:
		return "Local mirror (SQLite)"
	default:
		return unknownDescription
	}
}

// APISettings configures the upstream HTTP client.
type APISettings struct {
	// BaseURL is the API root, without trailing slash.
	BaseURL string

	// TimeoutSeconds bounds each HTTP request.
	TimeoutSeconds int

	// RequestsPerSecond is the sustained client-side rate limit.
	RequestsPerSecond float64

	// Burst is the rate limiter bucket size.
	Burst int

	// MaxRetries bounds retries of 429 and 5xx responses.
	MaxRetries int

	// UserAgent is sent with every request.
	UserAgent string
}

// Timeout returns TimeoutSeconds as a duration.
func (s APISettings) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// ServerSettings configures the MCP server.
type ServerSettings struct {
	Transport Transport
	Host      string
	Port      int
}

// SourceSettings selects the article source.
type SourceSettings struct {
	Kind SourceKind

	// MirrorPath is the directory holding the SQLite mirror.
	// Empty means the default under the config directory.
	MirrorPath string
}

// AppSettings holds all application settings.
type AppSettings struct {
	API    APISettings
	Server ServerSettings
	Source SourceSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		API: APISettings{
			BaseURL:           "https://grokipedia.com",
			TimeoutSeconds:    30,
			RequestsPerSecond: 5,
			Burst:             10,
			MaxRetries:        3,
			UserAgent:         "grokipedia-mcp",
		},
		Server: ServerSettings{
			Transport: TransportStdio,
			Host:      "0.0.0.0",
			Port:      8888,
		},
		Source: SourceSettings{
			Kind: SourceKindAPI,
		},
	}
}

// AllTransports returns all available transports.
func AllTransports() []Transport {
	return []Transport{
		TransportStdio,
		TransportSSE,
		TransportStreamableHTTP,
	}
}

// AllSourceKinds returns all available source kinds.
func AllSourceKinds() []SourceKind {
	return []SourceKind{
		SourceKindAPI,
		SourceKindMirror,
	}
}
