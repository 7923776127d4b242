// Package config provides configuration loading and management for
// resolvctl. The config file supplies defaults for register commands; all
// values can be overridden per invocation with flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/munichmade/resolvctl/internal/paths"
	"gopkg.in/yaml.v3"
)

// Config represents the complete resolvctl configuration.
type Config struct {
	// Prefix namespaces the ownership marker ("# managed by <prefix>")
	// and the <PREFIX>_RESOLVER_DIR environment override.
	Prefix string `yaml:"prefix"`

	Resolver ResolverConfig `yaml:"resolver"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ResolverConfig holds defaults for newly registered entries.
type ResolverConfig struct {
	Nameserver  string `yaml:"nameserver"`
	Port        uint16 `yaml:"port"`
	SearchOrder uint32 `yaml:"search_order"`
}

// LoggingConfig configures logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns a Config with sensible default values. The default
// nameserver points at a local resolver on a non-privileged port, the
// common setup for development DNS servers.
func Default() *Config {
	return &Config{
		Prefix: "resolvctl",
		Resolver: ResolverConfig{
			Nameserver:  "127.0.0.1",
			Port:        5353,
			SearchOrder: 1,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads the configuration from the default config file.
// If the file doesn't exist, it creates a default configuration file.
func Load() (*Config, error) {
	return LoadFromFile(paths.ConfigFile())
}

// LoadFromFile reads the configuration from the specified file path.
// If the file doesn't exist, it creates a default configuration file.
func LoadFromFile(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		if err := cfg.SaveToFile(path); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults and overlay with file values.
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveToFile(paths.ConfigFile())
}

// SaveToFile writes the configuration to the specified file path.
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Prefix == "" {
		return fmt.Errorf("prefix must not be empty")
	}
	if c.Resolver.Nameserver == "" {
		return fmt.Errorf("resolver.nameserver must not be empty")
	}
	if c.Resolver.Port == 0 {
		return fmt.Errorf("resolver.port must not be zero")
	}
	if c.Resolver.SearchOrder == 0 {
		return fmt.Errorf("resolver.search_order must not be zero")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}

	return nil
}
