package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Prefix != "resolvctl" {
		t.Errorf("Prefix = %q, want %q", cfg.Prefix, "resolvctl")
	}
	if cfg.Resolver.Nameserver != "127.0.0.1" {
		t.Errorf("Resolver.Nameserver = %q, want %q", cfg.Resolver.Nameserver, "127.0.0.1")
	}
	if cfg.Resolver.Port != 5353 {
		t.Errorf("Resolver.Port = %d, want 5353", cfg.Resolver.Port)
	}
	if cfg.Resolver.SearchOrder != 1 {
		t.Errorf("Resolver.SearchOrder = %d, want 1", cfg.Resolver.SearchOrder)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "empty prefix",
			modify:  func(c *Config) { c.Prefix = "" },
			wantErr: true,
		},
		{
			name:    "empty nameserver",
			modify:  func(c *Config) { c.Resolver.Nameserver = "" },
			wantErr: true,
		},
		{
			name:    "zero port",
			modify:  func(c *Config) { c.Resolver.Port = 0 },
			wantErr: true,
		},
		{
			name:    "zero search order",
			modify:  func(c *Config) { c.Resolver.SearchOrder = 0 },
			wantErr: true,
		},
		{
			name:    "invalid log level",
			modify:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "valid log level debug",
			modify:  func(c *Config) { c.Logging.Level = "debug" },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile_CreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if cfg.Prefix != "resolvctl" {
		t.Errorf("Prefix = %q, want default", cfg.Prefix)
	}

	// A default file must now exist on disk.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("default config file not written: %v", err)
	}
	if !strings.Contains(string(data), "nameserver: 127.0.0.1") {
		t.Errorf("default config file missing nameserver, got:\n%s", data)
	}
}

func TestLoadFromFile_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "prefix: myapp\nresolver:\n  port: 5553\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if cfg.Prefix != "myapp" {
		t.Errorf("Prefix = %q, want %q", cfg.Prefix, "myapp")
	}
	if cfg.Resolver.Port != 5553 {
		t.Errorf("Resolver.Port = %d, want 5553", cfg.Resolver.Port)
	}
	// Unset values keep their defaults.
	if cfg.Resolver.Nameserver != "127.0.0.1" {
		t.Errorf("Resolver.Nameserver = %q, want default", cfg.Resolver.Nameserver)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want default", cfg.Logging.Level)
	}
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("prefix: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFromFile(path); err == nil {
		t.Error("LoadFromFile() with invalid YAML should fail")
	}
}

func TestLoadFromFile_InvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("prefix: \"\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFromFile(path); err == nil {
		t.Error("LoadFromFile() with empty prefix should fail validation")
	}
}

func TestSaveToFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Prefix = "roundtrip"
	cfg.Resolver.Port = 9953

	if err := cfg.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if loaded.Prefix != "roundtrip" || loaded.Resolver.Port != 9953 {
		t.Errorf("loaded config = %+v, want saved values", loaded)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("config file mode = %v, want 0600", info.Mode().Perm())
	}
}
