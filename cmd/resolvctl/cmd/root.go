// Package cmd provides the CLI commands for resolvctl.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/munichmade/resolvctl/internal/config"
	"github.com/munichmade/resolvctl/internal/logging"
	"github.com/munichmade/resolvctl/internal/privilege"
	"github.com/munichmade/resolvctl/internal/registry"
)

// Build-time variables set via ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "resolvctl",
	Short: "Manage macOS /etc/resolver DNS override entries",
	Long: `resolvctl manages per-domain DNS resolver files under /etc/resolver.

Each file routes queries for a domain suffix to a specific nameserver and
port. Files created by resolvctl carry an ownership marker, so resolvctl
never deletes entries created by other tools (e.g., dnsmasq), and records
the creating process ID, so entries left behind by crashed processes can
be swept with 'resolvctl cleanup'.

Writing to /etc/resolver requires root; commands that modify entries
re-execute themselves under sudo when needed.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("resolvctl version {{.Version}}\ncommit: %s\nbuilt: %s\n", Commit, BuildDate))
}

// loadConfig loads the application config and wires up logging, exiting on
// failure.
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	logging.Setup(logging.ParseLevel(cfg.Logging.Level), nil)
	return cfg
}

// newRegistry builds the registry for the configured prefix.
func newRegistry(cfg *config.Config) *registry.Registry {
	return registry.New(cfg.Prefix)
}

// requireWriteAccess elevates to root when the registry targets the real
// /etc/resolver directory. Test and per-user directories (via the
// <PREFIX>_RESOLVER_DIR override) need no elevation.
func requireWriteAccess(reg *registry.Registry, reason string) {
	if reg.Dir() != registry.DefaultDir {
		return
	}
	if err := privilege.RequireRoot(reason); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// fail prints an error and exits, appending a sudo hint for permission
// failures.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	if registry.IsPermissionDenied(err) {
		fmt.Fprintln(os.Stderr, "Permission denied. Re-run with sudo.")
	}
	os.Exit(1)
}
