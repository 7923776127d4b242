package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/munichmade/resolvctl/internal/registry"
)

var unregisterAll bool

var unregisterCmd = &cobra.Command{
	Use:   "unregister [domain...]",
	Short: "Remove resolver entries",
	Long: `Remove resolver entries for one or more domains.

Only entries carrying resolvctl's ownership marker are removed; files
created by other tools are reported and skipped. Unregistering a domain
that has no entry is a no-op.

Examples:
  sudo resolvctl unregister myapp.local
  sudo resolvctl unregister myapp.local docker.internal
  sudo resolvctl unregister --all`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		reg := newRegistry(cfg)

		domains := args
		if unregisterAll {
			managed, err := reg.List()
			if err != nil {
				fail(err)
			}
			if len(managed) == 0 {
				fmt.Println("No managed entries to remove.")
				return
			}
			domains = managed
		} else if len(domains) == 0 {
			fmt.Fprintln(os.Stderr, "Error: specify domains to unregister or use --all")
			os.Exit(1)
		}

		requireWriteAccess(reg, fmt.Sprintf("removing resolver files from %s", reg.Dir()))

		for _, domain := range domains {
			err := reg.Unregister(domain)
			switch {
			case registry.IsNotManaged(err):
				fmt.Printf("Skipping *.%s (not managed by %s)\n", domain, cfg.Prefix)
			case err != nil:
				fail(err)
			default:
				fmt.Printf("Unregistered *.%s\n", domain)
			}
		}
	},
}

func init() {
	unregisterCmd.Flags().BoolVar(&unregisterAll, "all", false, "remove all managed entries")
	rootCmd.AddCommand(unregisterCmd)
}
