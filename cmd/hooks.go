package cmd

import (
	"fmt"

	cobra "github.com/spf13/cobra"
)

var hooksCmd = &cobra.Command{
	Use:   "hooks",
	Short: "Inspect tool hooks",
}

var hooksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the hooks registered from the configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := newContainer(cmd, false)
		if err != nil {
			return err
		}
		defer closeContainer(c)

		registrations := c.GetHooks().List()
		if len(registrations) == 0 {
			fmt.Println("No hooks configured")
			return nil
		}

		for _, h := range registrations {
			matcher := h.Matcher
			if matcher == "" {
				matcher = "*"
			}
			fmt.Printf("%-3d %-11s %-20s %-8s %s\n", h.Sequence, h.Event, matcher, h.Source, h.Action.Describe())
		}
		return nil
	},
}

func init() {
	hooksCmd.AddCommand(hooksListCmd)
	rootCmd.AddCommand(hooksCmd)
}
