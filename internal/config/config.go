// Package config provides configuration loading for the trainhub CLI.
//
// Configuration is file-based (trainhub.yaml) with environment variable
// overrides under the TRAINHUB_ prefix. Everything has a working
// default: a config file is only needed to point the client at a
// non-default portal deployment or to relocate the credential files.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is the top-level configuration for the trainhub CLI.
type Config struct {
	// API configures the portal REST endpoint.
	API APIConfig `yaml:"api" mapstructure:"api"`

	// Credentials configures where the session credential tiers live.
	Credentials CredentialsConfig `yaml:"credentials" mapstructure:"credentials"`

	// Cache configures the local catalog cache.
	Cache CacheConfig `yaml:"cache" mapstructure:"cache"`

	// LogLevel sets the slog level: debug, info, warn, error.
	LogLevel string `yaml:"log_level" mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// APIConfig configures the portal REST endpoint.
type APIConfig struct {
	// BaseURL is the portal API base, e.g. "http://localhost:8080/api".
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"required,url"`

	// Timeout is the per-request timeout as a duration string, e.g. "10s".
	Timeout string `yaml:"timeout" mapstructure:"timeout" validate:"omitempty,duration"`
}

// CredentialsConfig configures the credential tier file locations.
// Empty values select the platform defaults (user config dir for the
// durable tier, per-boot runtime dir for the ephemeral tier).
type CredentialsConfig struct {
	// DurablePath is the durable-tier credential file.
	DurablePath string `yaml:"durable_path" mapstructure:"durable_path"`

	// EphemeralPath is the ephemeral-tier credential file.
	EphemeralPath string `yaml:"ephemeral_path" mapstructure:"ephemeral_path"`
}

// CacheConfig configures the local catalog cache.
type CacheConfig struct {
	// Path is the SQLite database file. Empty selects the platform
	// default under the user config dir.
	Path string `yaml:"path" mapstructure:"path"`
}

// SetDefaults applies default values for optional fields.
func (c *Config) SetDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = "http://localhost:8080/api"
	}
	if c.API.Timeout == "" {
		c.API.Timeout = "10s"
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
}

// APITimeout parses the configured request timeout. Call after
// Validate; an unparsable value returns an error anyway as a guard.
func (c *Config) APITimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid api.timeout %q: %w", c.API.Timeout, err)
	}
	return d, nil
}

// ConfigFileUsed returns the path to the configuration file that was
// loaded. Returns an empty string if no config file was found (env vars
// only mode).
func ConfigFileUsed() string {
	return viper.ConfigFileUsed()
}
