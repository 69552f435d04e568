package cli

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/grokipedia-mcp/internal/core/domain"
)

func TestSettingsShowCmd(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := runRoot(t, "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "[API]")
	assert.Contains(t, out, "Base URL: https://grokipedia.com")
	assert.Contains(t, out, "Rate limit: 5 req/s (burst 10)")
	assert.Contains(t, out, "Transport: Stdio (for desktop assistants)")
	assert.NotContains(t, out, "Listen:")
	assert.Contains(t, out, "Kind: Grokipedia API (network)")
	assert.Contains(t, out, "Configuration is valid.")
}

func TestSettingsShowCmd_AppliesEnvironment(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	t.Setenv("MCP_TRANSPORT", "sse")
	t.Setenv("MCP_PORT", "9100")

	out, err := runRoot(t, "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "Transport: SSE (HTTP with server-sent events)")
	assert.Contains(t, out, "Listen: 0.0.0.0:9100")
}

func TestSettingsShowCmd_WarnsOnInvalid(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.settings.settings.Source.Kind = "ftp"

	out, err := runRoot(t, "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Warning: invalid source.kind")
}

func TestSettingsSetCmd(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	out, err := runRoot(t, "settings", "set", "source.kind", "mirror")

	require.NoError(t, err)
	assert.Contains(t, out, "source.kind = mirror")
	assert.Equal(t, domain.SourceKindMirror, ts.settings.settings.Source.Kind)
}

func TestSettingsSetCmd_UnknownKey(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := runRoot(t, "settings", "set", "colour", "blue")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to set colour")
}

func TestSettingsKeysCmd(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := runRoot(t, "settings", "keys")

	require.NoError(t, err)
	assert.Equal(t, "api.base_url\nserver.transport\nsource.kind\n", out)
}

func TestSettingsEnvCmd(t *testing.T) {
	out, err := runRoot(t, "settings", "env")
	defer rootCmd.SetArgs(nil)

	require.NoError(t, err)
	assert.Contains(t, out, "MCP_TRANSPORT")
	assert.Contains(t, out, "GROKIPEDIA_BASE_URL")
}

func TestSettingsPromptsCmd(t *testing.T) {
	configDir = t.TempDir()
	defer func() { configDir = "" }()

	out, err := runRoot(t, "settings", "prompts")

	require.NoError(t, err)
	dir := filepath.Join(configDir, "prompts")
	assert.Contains(t, out, "Prompt templates in "+dir)
	assert.Contains(t, out, "compare_topics.txt")
	assert.Contains(t, out, "Compare two topics side by side")
	assert.FileExists(t, filepath.Join(dir, "research_topic.txt"))
}

func TestSettingsWizardCmd_HTTPAndMirror(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	// Streamable HTTP on 9000, then the mirror source.
	rootCmd.SetIn(strings.NewReader("3\n9000\n2\n"))
	out, err := runRoot(t, "settings", "wizard")

	require.NoError(t, err)
	assert.Contains(t, out, "Set transport to: Streamable HTTP")
	assert.Contains(t, out, "Set source to: Local mirror (SQLite)")
	assert.Contains(t, out, "All settings are valid and saved.")
	assert.Equal(t, "streamable-http", ts.settings.set["server.transport"])
	assert.Equal(t, "9000", ts.settings.set["server.port"])
	assert.Equal(t, "mirror", ts.settings.set["source.kind"])
	assert.NotContains(t, ts.settings.set, "api.base_url")
}

func TestSettingsWizardCmd_DefaultsOnEmptyInput(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	rootCmd.SetIn(strings.NewReader(""))
	out, err := runRoot(t, "settings", "wizard")

	require.NoError(t, err)
	assert.Contains(t, out, "Set transport to: Stdio (for desktop assistants)")
	assert.Contains(t, out, "Enter API base URL [https://grokipedia.com]:")
	assert.Equal(t, "stdio", ts.settings.set["server.transport"])
	assert.Equal(t, "api", ts.settings.set["source.kind"])
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		maxVal     int
		defaultVal int
		expected   int
	}{
		{
			name:       "Empty input returns default",
			input:      "",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Valid choice within range",
			input:      "3",
			maxVal:     5,
			defaultVal: 1,
			expected:   3,
		},
		{
			name:       "Choice below minimum returns default",
			input:      "0",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Choice above maximum returns default",
			input:      "6",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Invalid input returns default",
			input:      "abc",
			maxVal:     5,
			defaultVal: 2,
			expected:   2,
		},
		{
			name:       "Maximum value is valid",
			input:      "5",
			maxVal:     5,
			defaultVal: 1,
			expected:   5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseChoice(tt.input, tt.maxVal, tt.defaultVal)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestIndexOf(t *testing.T) {
	transports := domain.AllTransports()

	assert.Equal(t, 1, indexOf(transports, domain.TransportSSE))
	assert.Equal(t, 0, indexOf(transports, domain.Transport("carrier-pigeon")))
}
