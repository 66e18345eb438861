package cmd

import (
	"fmt"
	"strings"

	container "github.com/inference-gateway/toolgate/internal/container"
	domain "github.com/inference-gateway/toolgate/internal/domain"
	ui "github.com/inference-gateway/toolgate/internal/ui"
	cobra "github.com/spf13/cobra"
)

var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Inspect and accept policy directories",
	Long: `Manage the policy directories toolgate loads rules from.

Policy files are only loaded after their content hash has been accepted.
Use check to see which directories are new or changed, and accept to record
their current content as reviewed.`,
}

var policyCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Compare policy directories with their accepted hashes",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := newContainer(cmd, false)
		if err != nil {
			return err
		}
		defer closeContainer(c)

		for _, target := range c.PolicyTargets() {
			result, err := c.GetIntegrityManager().CheckIntegrity(cmd.Context(), target.Scope, target.Identifier, target.Dir)
			if err != nil {
				fmt.Printf("%s %-9s %s: %v\n", ui.CrossMark(), target.Scope, target.Dir, err)
				continue
			}
			icon := ui.CheckMark()
			if result.Status != domain.IntegrityMatch {
				icon = ui.CrossMark()
			}
			fmt.Printf("%s %-9s %-7s %d files  %s\n", icon, target.Scope, result.Status, result.FileCount, target.Dir)
		}
		return nil
	},
}

var policyAcceptCmd = &cobra.Command{
	Use:   "accept",
	Short: "Accept the current content of new or changed policy directories",
	RunE: func(cmd *cobra.Command, args []string) error {
		scope, _ := cmd.Flags().GetString("scope")

		c, _, err := newContainer(cmd, false)
		if err != nil {
			return err
		}
		defer closeContainer(c)

		accepted := 0
		for _, target := range selectTargets(c, scope) {
			m := c.GetIntegrityManager()
			result, err := m.CheckIntegrity(cmd.Context(), target.Scope, target.Identifier, target.Dir)
			if err != nil {
				return fmt.Errorf("failed to check %s policies: %w", target.Scope, err)
			}
			if result.Status == domain.IntegrityMatch {
				continue
			}
			if err := m.AcceptIntegrity(cmd.Context(), target.Scope, target.Identifier, result.Hash); err != nil {
				return fmt.Errorf("failed to accept %s policies: %w", target.Scope, err)
			}
			accepted++
			fmt.Printf("%s accepted %s policies in %s (%d files)\n", ui.CheckMark(), target.Scope, target.Dir, result.FileCount)
		}

		if accepted == 0 {
			fmt.Println("All policy directories match their accepted hashes")
		}
		return nil
	},
}

var policyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show accepted hashes, workspace trust and the active rules",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := newContainer(cmd, false)
		if err != nil {
			return err
		}
		defer closeContainer(c)

		ctx := cmd.Context()
		trust := c.GetTrustResolver().Resolve(ctx, c.WorkspaceRoot())
		fmt.Printf("Workspace: %s (trusted: %t)\n\n", trust.WorkspaceRoot, trust.WorkspaceTrusted)

		records, err := c.GetStore().ListRecords(ctx)
		if err != nil {
			return fmt.Errorf("failed to list integrity records: %w", err)
		}
		fmt.Println("Accepted policy hashes:")
		if len(records) == 0 {
			fmt.Println("  none")
		}
		for _, r := range records {
			fmt.Printf("  %-9s %s  %s  (%d accepted)\n", r.Scope, shortHash(r.AcceptedHash), r.Identifier, len(r.History))
		}

		if _, err := c.LoadPolicies(ctx); err != nil {
			return err
		}
		fmt.Println("\nActive layers:")
		for _, layer := range c.GetRuleStore().Layers() {
			fmt.Printf("  %-9s %-40s %d rules\n", layer.Scope, layer.Identifier, len(layer.Rules))
		}
		return nil
	},
}

var policyTrustCmd = &cobra.Command{
	Use:   "trust",
	Short: "Mark the workspace as trusted",
	Long: `Mark the workspace as trusted. Mutating tools in an untrusted workspace
always require confirmation, whatever the policy rules say.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		revoke, _ := cmd.Flags().GetBool("revoke")

		c, _, err := newContainer(cmd, false)
		if err != nil {
			return err
		}
		defer closeContainer(c)

		if err := c.GetTrustResolver().SetTrust(cmd.Context(), c.WorkspaceRoot(), !revoke); err != nil {
			return fmt.Errorf("failed to update workspace trust: %w", err)
		}

		if revoke {
			fmt.Printf("%s %s is no longer trusted\n", ui.CheckMark(), c.WorkspaceRoot())
		} else {
			fmt.Printf("%s %s is trusted\n", ui.CheckMark(), c.WorkspaceRoot())
		}
		return nil
	},
}

func init() {
	policyAcceptCmd.Flags().String("scope", "", "only accept this scope (global, extension, workspace)")
	policyTrustCmd.Flags().Bool("revoke", false, "revoke trust instead of granting it")

	policyCmd.AddCommand(policyCheckCmd, policyAcceptCmd, policyStatusCmd, policyTrustCmd)
	rootCmd.AddCommand(policyCmd)
}

func selectTargets(c *container.ServiceContainer, scope string) []container.PolicyTarget {
	all := c.PolicyTargets()
	if scope == "" {
		return all
	}

	var out []container.PolicyTarget
	for _, t := range all {
		if strings.EqualFold(string(t.Scope), scope) {
			out = append(out, t)
		}
	}
	return out
}

func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
