package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var listAll bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered domains",
	Long: `List domains with a resolvctl-managed resolver entry.

With --all, every resolver file in the directory is shown, including
entries created by other tools.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		reg := newRegistry(cfg)

		if listAll {
			domains, err := reg.ListAll()
			if err != nil {
				fail(err)
			}
			if len(domains) == 0 {
				fmt.Printf("No resolver files found in %s\n", reg.Dir())
				return
			}

			sort.Strings(domains)
			fmt.Println("All resolver files:")
			for _, domain := range domains {
				managed := ""
				if reg.IsRegistered(domain) {
					managed = fmt.Sprintf(" (%s)", cfg.Prefix)
				}
				fmt.Printf("  *.%s%s\n", domain, managed)
			}
			return
		}

		domains, err := reg.List()
		if err != nil {
			fail(err)
		}
		if len(domains) == 0 {
			fmt.Println("No domains registered.")
			fmt.Println("Run 'resolvctl register <domain>' to add one.")
			return
		}

		sort.Strings(domains)
		fmt.Println("Registered domains:")
		for _, domain := range domains {
			fmt.Printf("  *.%s\n", domain)
		}
	},
}

func init() {
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "show all resolver files, not just managed ones")
	rootCmd.AddCommand(listCmd)
}
