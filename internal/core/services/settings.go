package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/grokipedia-mcp/internal/core/domain"
	"github.com/custodia-labs/grokipedia-mcp/internal/core/ports/driven"
	"github.com/custodia-labs/grokipedia-mcp/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyAPIBaseURL        = "api.base_url"
	KeyAPITimeoutSeconds = "api.timeout_seconds"
	KeyAPIRPS            = "api.requests_per_second"
	KeyAPIBurst          = "api.burst"
	KeyAPIMaxRetries     = "api.max_retries"
	KeyAPIUserAgent      = "api.user_agent"
	KeyServerTransport   = "server.transport"
	KeyServerHost        = "server.host"
	KeyServerPort        = "server.port"
	KeySourceKind        = "source.kind"
	KeyMirrorPath        = "mirror.path"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
// Missing or unrecognised values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		API: domain.APISettings{
			BaseURL:           strings.TrimRight(s.getString(KeyAPIBaseURL, defaults.API.BaseURL), "/"),
			TimeoutSeconds:    s.getInt(KeyAPITimeoutSeconds, defaults.API.TimeoutSeconds),
			RequestsPerSecond: s.getFloat(KeyAPIRPS, defaults.API.RequestsPerSecond),
			Burst:             s.getInt(KeyAPIBurst, defaults.API.Burst),
			MaxRetries:        s.getInt(KeyAPIMaxRetries, defaults.API.MaxRetries),
			UserAgent:         s.getString(KeyAPIUserAgent, defaults.API.UserAgent),
		},
		Server: domain.ServerSettings{
			Transport: s.getTransport(defaults.Server.Transport),
			Host:      s.getString(KeyServerHost, defaults.Server.Host),
			Port:      s.getInt(KeyServerPort, defaults.Server.Port),
		},
		Source: domain.SourceSettings{
			Kind:       s.getSourceKind(defaults.Source.Kind),
			MirrorPath: s.configStore.GetString(KeyMirrorPath), // No default - resolved by the mirror store
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{KeyAPIBaseURL, settings.API.BaseURL},
		{KeyAPITimeoutSeconds, settings.API.TimeoutSeconds},
		{KeyAPIRPS, settings.API.RequestsPerSecond},
		{KeyAPIBurst, settings.API.Burst},
		{KeyAPIMaxRetries, settings.API.MaxRetries},
		{KeyAPIUserAgent, settings.API.UserAgent},
		{KeyServerTransport, settings.Server.Transport.String()},
		{KeyServerHost, settings.Server.Host},
		{KeyServerPort, settings.Server.Port},
		{KeySourceKind, settings.Source.Kind.String()},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	if settings.Source.MirrorPath != "" {
		if err := s.configStore.Set(KeyMirrorPath, settings.Source.MirrorPath); err != nil {
			return fmt.Errorf("save %s: %w", KeyMirrorPath, err)
		}
	}

	return nil
}

// Set parses value according to key and stores it.
func (s *SettingsService) Set(key, value string) error {
	value = strings.TrimSpace(value)

	var parsed any
	switch key {
	case KeyAPIBaseURL:
		if err := requestValidator().Var(value, "required,url"); err != nil {
			return fmt.Errorf("invalid %s: %q is not a URL", key, value)
		}
		parsed = strings.TrimRight(value, "/")
	case KeyAPIUserAgent, KeyServerHost, KeyMirrorPath:
		parsed = value
	case KeyAPITimeoutSeconds, KeyAPIBurst, KeyServerPort:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid %s: %q must be a positive integer", key, value)
		}
		parsed = n
	case KeyAPIMaxRetries:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid %s: %q must be a non-negative integer", key, value)
		}
		parsed = n
	case KeyAPIRPS:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("invalid %s: %q must be a positive number", key, value)
		}
		parsed = f
	case KeyServerTransport:
		if !domain.Transport(value).IsValid() {
			return fmt.Errorf("invalid %s: %q (expected one of %v)", key, value, domain.AllTransports())
		}
		parsed = value
	case KeySourceKind:
		if !domain.SourceKind(value).IsValid() {
			return fmt.Errorf("invalid %s: %q (expected one of %v)", key, value, domain.AllSourceKinds())
		}
		parsed = value
	default:
		return fmt.Errorf("unknown setting: %s", key)
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns every supported setting key in display order.
func (s *SettingsService) Keys() []string {
	return []string{
		KeyAPIBaseURL,
		KeyAPITimeoutSeconds,
		KeyAPIRPS,
		KeyAPIBurst,
		KeyAPIMaxRetries,
		KeyAPIUserAgent,
		KeyServerTransport,
		KeyServerHost,
		KeyServerPort,
		KeySourceKind,
		KeyMirrorPath,
	}
}

// Validate checks if current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return ValidateSettings(settings)
}

// ValidateSettings checks settings that may come from any layer, including
// environment overrides applied after Get.
func ValidateSettings(settings *domain.AppSettings) error {
	if err := requestValidator().Var(settings.API.BaseURL, "required,url"); err != nil {
		return fmt.Errorf("invalid %s: %q is not a URL", KeyAPIBaseURL, settings.API.BaseURL)
	}
	if settings.API.TimeoutSeconds <= 0 {
		return fmt.Errorf("invalid %s: must be positive", KeyAPITimeoutSeconds)
	}
	if settings.API.RequestsPerSecond <= 0 {
		return fmt.Errorf("invalid %s: must be positive", KeyAPIRPS)
	}
	if !settings.Server.Transport.IsValid() {
		return fmt.Errorf("invalid %s: %q", KeyServerTransport, settings.Server.Transport)
	}
	if settings.Server.Port <= 0 || settings.Server.Port > 65535 {
		return fmt.Errorf("invalid %s: %d", KeyServerPort, settings.Server.Port)
	}
	if !settings.Source.Kind.IsValid() {
		return fmt.Errorf("invalid %s: %q", KeySourceKind, settings.Source.Kind)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getInt honours an explicit zero so api.max_retries = 0 disables retries.
func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getTransport(defaultVal domain.Transport) domain.Transport {
	t := domain.Transport(s.configStore.GetString(KeyServerTransport))
	if !t.IsValid() {
		return defaultVal
	}
	return t
}

func (s *SettingsService) getSourceKind(defaultVal domain.SourceKind) domain.SourceKind {
	k := domain.SourceKind(s.configStore.GetString(KeySourceKind))
	if !k.IsValid() {
		return defaultVal
	}
	return k
}
