// Package env overlays environment variables onto application settings.
//
// A .env file in the working directory is loaded first when present;
// variables already set in the process environment win over it.
package env

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/custodia-labs/grokipedia-mcp/internal/core/domain"
)

// DotEnvFile is the default dotenv file name.
const DotEnvFile = ".env"

// overlay lists every variable that can override a setting.
// Fields are pre-filled from the current settings, so variables that are
// not set leave them untouched.
type overlay struct {
	BaseURL        string  `env:"GROKIPEDIA_BASE_URL" env-description:"Grokipedia API base URL"`
	TimeoutSeconds int     `env:"GROKIPEDIA_TIMEOUT_SECONDS" env-description:"HTTP request timeout in seconds"`
	RPS            float64 `env:"GROKIPEDIA_RPS" env-description:"Client-side request rate limit per second"`
	Source         string  `env:"GROKIPEDIA_SOURCE" env-description:"Article source: api or mirror"`
	MirrorPath     string  `env:"GROKIPEDIA_MIRROR_PATH" env-description:"Directory of the offline mirror"`
	Transport      string  `env:"MCP_TRANSPORT" env-description:"MCP transport: stdio, sse or streamable-http"`
	Host           string  `env:"MCP_HOST" env-description:"Listen host for HTTP transports"`
	Port           int     `env:"MCP_PORT" env-description:"Listen port for HTTP transports"`
}

// LoadDotEnv loads variables from the given files, or .env when none are
// named. Missing files are ignored.
func LoadDotEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{DotEnvFile}
	}
	for _, name := range filenames {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", name, err)
		}
	}
	return nil
}

// Apply overrides settings with any variables present in the environment.
func Apply(settings *domain.AppSettings) error {
	o := overlay{
		BaseURL:        settings.API.BaseURL,
		TimeoutSeconds: settings.API.TimeoutSeconds,
		RPS:            settings.API.RequestsPerSecond,
		Source:         settings.Source.Kind.String(),
		MirrorPath:     settings.Source.MirrorPath,
		Transport:      settings.Server.Transport.String(),
		Host:           settings.Server.Host,
		Port:           settings.Server.Port,
	}

	if err := cleanenv.ReadEnv(&o); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}

	settings.API.BaseURL = o.BaseURL
	settings.API.TimeoutSeconds = o.TimeoutSeconds
	settings.API.RequestsPerSecond = o.RPS
	settings.Source.Kind = domain.SourceKind(o.Source)
	settings.Source.MirrorPath = o.MirrorPath
	settings.Server.Transport = domain.Transport(o.Transport)
	settings.Server.Host = o.Host
	settings.Server.Port = o.Port
	return nil
}

// Usage describes the supported environment variables.
func Usage() (string, error) {
	header := "Environment variables:"
	return cleanenv.GetDescription(&overlay{}, &header)
}
