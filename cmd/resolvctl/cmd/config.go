package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/munichmade/resolvctl/internal/config"
	"github.com/munichmade/resolvctl/internal/paths"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `View and manage the resolvctl configuration file.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current configuration file contents.`,
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(paths.ConfigFile())
		if err != nil {
			if os.IsNotExist(err) {
				fmt.Printf("No config file at %s (defaults apply).\n", paths.ConfigFile())
				fmt.Println("Run 'resolvctl config init' to create one.")
				return
			}
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(string(data))
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(paths.ConfigFile())
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long:  `Write a configuration file with default values, unless one already exists.`,
	Run: func(cmd *cobra.Command, args []string) {
		path := paths.ConfigFile()
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("Config file already exists at %s\n", path)
			return
		}

		if err := config.Default().SaveToFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote default config to %s\n", path)
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
