package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove entries left behind by dead processes",
	Long: `Remove resolver entries whose creating process is no longer running.

Entries registered with --permanent carry no PID and are never touched,
and neither are files created by other tools. Run this after a crash, or
on startup of a process that registers entries.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		reg := newRegistry(cfg)

		requireWriteAccess(reg, fmt.Sprintf("removing orphaned resolver files from %s", reg.Dir()))

		removed, err := reg.CleanupOrphaned()
		if err != nil {
			fail(err)
		}

		switch removed {
		case 0:
			fmt.Println("No orphaned entries found.")
		case 1:
			fmt.Println("Removed 1 orphaned entry.")
		default:
			fmt.Printf("Removed %d orphaned entries.\n", removed)
		}
	},
}

func init() {
	rootCmd.AddCommand(cleanupCmd)
}
