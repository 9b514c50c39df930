package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Cache backend names accepted in the tool configuration.
const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
	CacheBackendNone  = "none"
)

// ToolConfig holds user preferences for the CLI itself, as opposed to the
// per-gallery YAML configuration passed to generate. It is read from
// ~/.config/vegagallery/config.toml when present.
type ToolConfig struct {
	// Output is the default output directory for generate.
	Output string `toml:"output"`

	Cache CacheConfig `toml:"cache"`
	Serve ServeConfig `toml:"serve"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	// Backend is one of "file" (default), "redis" or "none".
	Backend string `toml:"backend"`

	// RedisURL is the connection URL for the redis backend.
	RedisURL string `toml:"redis_url"`
}

// ServeConfig holds defaults for the serve command.
type ServeConfig struct {
	// Addr is the default listen address.
	Addr string `toml:"addr"`

	// RateLimit is the per-second request budget. Zero disables throttling.
	RateLimit float64 `toml:"rate_limit"`
}

// DefaultToolConfig returns the built-in CLI preferences.
func DefaultToolConfig() ToolConfig {
	return ToolConfig{
		Cache: CacheConfig{Backend: CacheBackendFile},
		Serve: ServeConfig{Addr: "localhost:8080"},
	}
}

// LoadToolConfig reads the user's tool configuration, falling back to the
// defaults when the file is missing or malformed. CLI startup never fails on
// a bad preferences file.
func LoadToolConfig() ToolConfig {
	cfg := DefaultToolConfig()
	dir, err := configDir()
	if err != nil {
		return cfg
	}
	path := filepath.Join(dir, "config.toml")
	if _, err := os.Stat(path); err != nil {
		return cfg
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return DefaultToolConfig()
	}
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = CacheBackendFile
	}
	if cfg.Serve.Addr == "" {
		cfg.Serve.Addr = "localhost:8080"
	}
	return cfg
}
