// Package config provides configuration loading from YAML files.
package config

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Snapshot backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Config represents the application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Admin    AdminConfig    `yaml:"admin"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	Script   ScriptConfig   `yaml:"script"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Spotify  SpotifyConfig  `yaml:"spotify"`
	Ingest   IngestConfig   `yaml:"ingest"`
}

// ServerConfig represents server configuration.
type ServerConfig struct {
	Addr  string      `yaml:"addr" default:":8080"`
	Hooks HooksConfig `yaml:"hooks"`
}

// HooksConfig represents lifecycle hooks configuration.
type HooksConfig struct {
	OnStarted []string `yaml:"on_started"`
	OnStopped []string `yaml:"on_stopped"`
}

// AdminConfig represents admin-related configuration.
type AdminConfig struct {
	Token string `yaml:"token" validate:"required"`
}

// SnapshotConfig selects where catalog state is persisted.
type SnapshotConfig struct {
	Backend             string `yaml:"backend" default:"file" validate:"oneof=file redis"`
	Path                string `yaml:"path" default:"spotifum.json"`
	RedisURL            string `yaml:"redis_url" default:"redis://localhost:6379/0"`
	RedisKey            string `yaml:"redis_key" default:"spotifum:state"`
	AutosaveIntervalSec int    `yaml:"autosave_interval_sec" default:"60" validate:"gte=0"`
}

// ScriptConfig points at the admin seed script run on an empty catalog.
type ScriptConfig struct {
	Path string `yaml:"path"`
}

// CatalogConfig tunes the catalog.
type CatalogConfig struct {
	PasswordCost      int `yaml:"password_cost" default:"10" validate:"gte=4,lte=31"`
	DefaultRandomSize int `yaml:"default_random_size" default:"10" validate:"gte=1"`
}

// SpotifyConfig represents Spotify API configuration.
// Credentials are optional; ingest is unavailable without them.
type SpotifyConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RefreshToken string `yaml:"refresh_token"`
	Market       string `yaml:"market" validate:"omitempty,len=2" default:"PT"`
}

// Enabled reports whether every Spotify credential is set.
func (s SpotifyConfig) Enabled() bool {
	return s.ClientID != "" && s.ClientSecret != "" && s.RefreshToken != ""
}

// IngestConfig represents Spotify playlist ingest configuration.
type IngestConfig struct {
	DefaultCountry     string           `yaml:"default_country" default:"Unknown"`
	ExplicitMinimumAge int              `yaml:"explicit_minimum_age" default:"18" validate:"gte=0"`
	Resolvers          []ResolverConfig `yaml:"resolvers" validate:"dive"`
	// Filters is keyed by filter name.
	Filters map[string]FilterConfig `yaml:"filters"`
}

// FilterConfig represents a track filter's configuration.
type FilterConfig struct {
	Enabled  bool           `yaml:"enabled"`
	Settings map[string]any `yaml:"settings,omitempty"`
}

// IsFilterEnabled checks if a filter is enabled.
func (c IngestConfig) IsFilterEnabled(filterName string) bool {
	if f, ok := c.Filters[filterName]; ok {
		return f.Enabled
	}
	return false
}

// ResolverConfig represents a single genre resolver configuration.
type ResolverConfig struct {
	Type        string         `yaml:"type" validate:"required"`
	DisplayName string         `yaml:"display_name" validate:"required"`
	Settings    map[string]any `yaml:"settings"`
}

// Load loads configuration from a YAML file.
// Environment variables take precedence over file values for sensitive fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}
	return Parse(data)
}

// Parse builds a configuration from YAML bytes.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}

	cfg.overrideFromEnv()

	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

// overrideFromEnv overrides config values with environment variables.
func (c *Config) overrideFromEnv() {
	if v := os.Getenv("SPOTIFY_CLIENT_ID"); v != "" {
		c.Spotify.ClientID = v
	}
	if v := os.Getenv("SPOTIFY_CLIENT_SECRET"); v != "" {
		c.Spotify.ClientSecret = v
	}
	if v := os.Getenv("SPOTIFY_REFRESH_TOKEN"); v != "" {
		c.Spotify.RefreshToken = v
	}
	if v := os.Getenv("LASTFM_API_KEY"); v != "" {
		for i := range c.Ingest.Resolvers {
			if c.Ingest.Resolvers[i].Type == "lastfm" {
				if c.Ingest.Resolvers[i].Settings == nil {
					c.Ingest.Resolvers[i].Settings = make(map[string]any)
				}
				c.Ingest.Resolvers[i].Settings["api_key"] = v
			}
		}
	}
	if v := os.Getenv("ADMIN_TOKEN"); v != "" {
		c.Admin.Token = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		c.Snapshot.RedisURL = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}

	switch c.Snapshot.Backend {
	case BackendFile:
		if c.Snapshot.Path == "" {
			return errors.New("snapshot path is required for the file backend")
		}
	case BackendRedis:
		if c.Snapshot.RedisURL == "" || c.Snapshot.RedisKey == "" {
			return errors.New("snapshot redis_url and redis_key are required for the redis backend")
		}
	}

	return nil
}
