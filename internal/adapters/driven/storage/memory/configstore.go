package memory

import (
	"sync"

	"github.com/custodia-labs/grokipedia-mcp/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps settings in a map. The CLI falls back to it when no
// config directory can be created, so values last for one process.
type ConfigStore struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewConfigStore creates an empty in-memory config store.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{values: make(map[string]any)}
}

// Get retrieves a configuration value by key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	return val, ok
}

// GetString returns the value for key if it is a string.
func (s *ConfigStore) GetString(key string) string {
	val, _ := s.Get(key)
	str, _ := val.(string)
	return str
}

// GetInt returns the numeric value for key, truncated to an int.
func (s *ConfigStore) GetInt(key string) int {
	return int(s.number(key))
}

// GetFloat returns the numeric value for key. Integers are widened.
func (s *ConfigStore) GetFloat(key string) float64 {
	return s.number(key)
}

// number converts the numeric kinds SettingsService stores. Anything else
// reads as zero.
func (s *ConfigStore) number(key string) float64 {
	val, _ := s.Get(key)
	switch v := val.(type) {
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case float64:
		return v
	default:
		return 0
	}
}

// Set stores a configuration value.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()
	return nil
}

// Save is a no-op; values only live in memory.
func (s *ConfigStore) Save() error { return nil }

// Load is a no-op; there is nothing to read back.
func (s *ConfigStore) Load() error { return nil }

// Path reports ":memory:" since no file backs the store.
func (s *ConfigStore) Path() string { return ":memory:" }
