package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/munichmade/resolvctl/internal/registry"
)

var (
	registerNameserver  string
	registerPort        uint16
	registerSearchOrder uint32
	registerPermanent   bool
)

var registerCmd = &cobra.Command{
	Use:   "register <domain>...",
	Short: "Register resolver entries for one or more domains",
	Long: `Register resolver entries routing the given domain suffixes to a
nameserver. Defaults for nameserver, port, and search order come from the
config file and can be overridden with flags.

By default the entry is transient: it records this process's PID and is
removed by 'resolvctl cleanup' once the process has exited. Use
--permanent for entries that should survive until explicitly
unregistered.

Registering an existing domain replaces its entry (last writer wins).

Examples:
  sudo resolvctl register myapp.local
  sudo resolvctl register myapp.local docker.internal --port 5553
  sudo resolvctl register myapp.local --permanent`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		reg := newRegistry(cfg)

		nameserver := cfg.Resolver.Nameserver
		if cmd.Flags().Changed("nameserver") {
			nameserver = registerNameserver
		}
		port := cfg.Resolver.Port
		if cmd.Flags().Changed("port") {
			port = registerPort
		}
		order := cfg.Resolver.SearchOrder
		if cmd.Flags().Changed("search-order") {
			order = registerSearchOrder
		}

		requireWriteAccess(reg, fmt.Sprintf("writing resolver files to %s", reg.Dir()))

		for _, domain := range args {
			entry := registry.NewEntry(domain, nameserver, port).WithSearchOrder(order)

			var err error
			if registerPermanent {
				err = reg.RegisterPermanent(entry)
			} else {
				err = reg.Register(entry, os.Getpid())
			}
			if err != nil {
				fail(err)
			}

			fmt.Printf("Registered *.%s -> %s:%d\n", domain, nameserver, port)
		}
	},
}

func init() {
	registerCmd.Flags().StringVarP(&registerNameserver, "nameserver", "n", "", "nameserver IP (default from config)")
	registerCmd.Flags().Uint16VarP(&registerPort, "port", "p", 0, "nameserver port (default from config)")
	registerCmd.Flags().Uint32Var(&registerSearchOrder, "search-order", 0, "search order, lower wins (default from config)")
	registerCmd.Flags().BoolVar(&registerPermanent, "permanent", false, "register without a PID; exempt from cleanup")
	rootCmd.AddCommand(registerCmd)
}
