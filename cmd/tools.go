package cmd

import (
	"encoding/json"
	"fmt"

	domain "github.com/inference-gateway/toolgate/internal/domain"
	cobra "github.com/spf13/cobra"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Inspect built-in tools and how policy treats them",
}

var toolsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the built-in tools and their effect",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := newContainer(cmd, false)
		if err != nil {
			return err
		}
		defer closeContainer(c)

		registry := c.GetToolRegistry()
		for _, name := range registry.List() {
			fmt.Printf("%-20s %s\n", name, registry.EffectOf(name))
		}
		return nil
	},
}

var toolsCheckCmd = &cobra.Command{
	Use:   "check <tool>",
	Short: "Show the policy decision for a tool call without running it",
	Long: `Evaluate a tool call against the loaded policies and the workspace trust
state, and print the decision with its source. Nothing is executed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		server, _ := cmd.Flags().GetString("server")
		rawArgs, _ := cmd.Flags().GetString("args")

		req := domain.ToolCallRequest{ID: "check", ToolName: args[0], ServerName: server, Sequence: 1}
		if rawArgs != "" {
			if err := json.Unmarshal([]byte(rawArgs), &req.Args); err != nil {
				return fmt.Errorf("invalid --args JSON: %w", err)
			}
		}

		c, _, err := newContainer(cmd, false)
		if err != nil {
			return err
		}
		defer closeContainer(c)

		ctx := cmd.Context()
		if err := loadPolicies(ctx, c); err != nil {
			return err
		}

		trust := c.GetTrustResolver().Resolve(ctx, c.WorkspaceRoot())
		effect := c.GetToolRegistry().EffectOf(req.QualifiedName())

		decision := c.GetEngine().Decide(req, effect, trust)
		fmt.Printf("%s: %s\n", req.QualifiedName(), decision.Decision)
		if src := decision.Source.String(); src != "" {
			fmt.Printf("  source:    %s\n", src)
		}
		if decision.Rationale != "" {
			fmt.Printf("  rationale: %s\n", decision.Rationale)
		}
		fmt.Printf("  effect:    %s\n", effect)
		fmt.Printf("  trusted:   %t\n", trust.WorkspaceTrusted)
		return nil
	},
}

func init() {
	toolsCheckCmd.Flags().String("server", "", "MCP server the tool belongs to")
	toolsCheckCmd.Flags().String("args", "", "tool arguments as a JSON object")

	toolsCmd.AddCommand(toolsListCmd, toolsCheckCmd)
	rootCmd.AddCommand(toolsCmd)
}
