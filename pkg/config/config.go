// Package config loads geneagraph's TOML configuration file.
//
// The file lives at $XDG_CONFIG_HOME/geneagraph/config.toml (falling back to
// ~/.config/geneagraph/config.toml) and every field is optional:
//
//	base_url = "https://www.mathgenealogy.org"
//
//	[cache]
//	backend = "file"   # "file", "redis", or "none"
//	ttl_hours = 168
//	dir = ""           # empty means the XDG cache directory
//
//	[redis]
//	addr = "localhost:6379"
//	password = ""
//	db = 0
//
// A missing file is not an error; [Load] returns [Default] in that case.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Cache backend names accepted in the config file.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the root of the TOML configuration.
type Config struct {
	// BaseURL is the Math Genealogy Project endpoint. Overridable mainly
	// for mirrors and tests.
	BaseURL string `toml:"base_url"`

	Cache CacheConfig `toml:"cache"`
	Redis RedisConfig `toml:"redis"`
}

// CacheConfig selects and tunes the record cache.
type CacheConfig struct {
	Backend  string `toml:"backend"`
	TTLHours int    `toml:"ttl_hours"`
	Dir      string `toml:"dir"`
}

// RedisConfig holds connection settings for the redis backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// TTL returns the cache time-to-live as a duration.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLHours) * time.Hour
}

// Default returns the configuration used when no file exists: file-backed
// caching for one week against the canonical Math Genealogy endpoint.
func Default() Config {
	return Config{
		BaseURL: "https://www.mathgenealogy.org",
		Cache: CacheConfig{
			Backend:  BackendFile,
			TTLHours: 24 * 7,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
	}
}

// Load reads the configuration from path. An empty path means the default
// location; a missing file yields [Default] without error. Fields absent
// from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		var err error
		if path, err = defaultPath(); err != nil {
			return cfg, nil
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := validate(cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func validate(cfg Config) error {
	switch cfg.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return fmt.Errorf("unknown cache backend %q (must be %q, %q, or %q)",
			cfg.Cache.Backend, BackendFile, BackendRedis, BackendNone)
	}
	if cfg.Cache.TTLHours < 0 {
		return fmt.Errorf("cache ttl_hours must not be negative, got %d", cfg.Cache.TTLHours)
	}
	if cfg.BaseURL == "" {
		return fmt.Errorf("base_url must not be empty")
	}
	return nil
}

// defaultPath returns the XDG config file location.
func defaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "geneagraph", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "geneagraph", "config.toml"), nil
}
