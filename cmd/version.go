package cmd

import (
	"fmt"

	cobra "github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long:  `Display version information for toolgate.`,
	Run: func(cmd *cobra.Command, args []string) {
		info := GetVersionInfo()
		fmt.Printf("toolgate version %s\n", info.Version)
		fmt.Printf("commit: %s\n", info.Commit)
		fmt.Printf("built at: %s\n", info.Date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
