// Package paths provides XDG Base Directory Specification compliant path
// resolution for resolvctl. On macOS it falls back to standard macOS
// locations when XDG variables are not set; when running as root it uses
// system-wide paths instead.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

const appName = "resolvctl"

// Paths holds all resolved paths for the application.
type Paths struct {
	// ConfigDir is the directory for configuration files.
	// XDG: $XDG_CONFIG_HOME/resolvctl or ~/.config/resolvctl
	ConfigDir string

	// DataDir is the directory for persistent data and logs.
	// XDG: $XDG_DATA_HOME/resolvctl or ~/.local/share/resolvctl
	// macOS fallback: ~/Library/Application Support/resolvctl
	DataDir string

	// ConfigFile is the path to the main configuration file.
	ConfigFile string

	// LogFile is the path to the log file.
	LogFile string
}

var (
	defaultPaths *Paths
	pathsOnce    sync.Once
)

// Default returns the default paths for the current system.
// The result is cached after the first call.
func Default() *Paths {
	pathsOnce.Do(func() {
		defaultPaths = resolve()
	})
	return defaultPaths
}

func resolve() *Paths {
	p := &Paths{}

	// Commands that touch /etc/resolver run under sudo; use system-wide
	// paths there so config does not end up in root's home.
	if os.Geteuid() == 0 {
		p.ConfigDir = "/etc/" + appName
		p.DataDir = "/var/lib/" + appName
	} else {
		home := homeDir()
		p.ConfigDir = resolveConfigDir(home)
		p.DataDir = resolveDataDir(home)
	}

	p.ConfigFile = filepath.Join(p.ConfigDir, "config.yaml")
	p.LogFile = filepath.Join(p.DataDir, appName+".log")

	return p
}

func resolveConfigDir(home string) string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	// Same default on macOS and Linux.
	return filepath.Join(home, ".config", appName)
}

func resolveDataDir(home string) string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Application Support", appName)
	}
	return filepath.Join(home, ".local", "share", appName)
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	return "/"
}

// EnsureDirectories creates all necessary directories with proper
// permissions.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.ConfigDir, p.DataDir} {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	return nil
}

// Reset clears the cached default paths.
// Useful for testing with different environment variables.
func Reset() {
	defaultPaths = nil
	pathsOnce = sync.Once{}
}

// ConfigFile returns the main configuration file path.
func ConfigFile() string {
	return Default().ConfigFile
}

// LogFile returns the log file path.
func LogFile() string {
	return Default().LogFile
}
