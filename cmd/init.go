package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	config "github.com/inference-gateway/toolgate/config"
	ui "github.com/inference-gateway/toolgate/internal/ui"
	cobra "github.com/spf13/cobra"
)

const (
	configFileName    = "config.yaml"
	gitignoreFileName = ".gitignore"
	policyFileName    = "policy.yaml"
)

const gitignoreContent = `# Local state written by toolgate
logs/*.log
integrity.jsonl
integrity.db
`

const samplePolicy = `# Rules are evaluated in order, global before extension before workspace.
# The first rule matching a tool decides: allow, deny or ask_user.
rules:
  - tool: read_file
    decision: allow
  - tool: list_directory
    decision: allow
  - tool: run_shell_command
    decision: ask_user
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize toolgate configuration and policies",
	Long: `Initialize a workspace with a .toolgate directory holding the configuration
file, a .gitignore for local state and a sample policy file.

With --userspace the files are written to ~/.toolgate instead and the policy
file becomes part of the global scope.

The sample policy is new content: it must be accepted (interactively or with
"toolgate policy accept") before its rules are loaded.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initializeProject(cmd)
	},
}

func init() {
	initCmd.Flags().Bool("overwrite", false, "Overwrite existing files if they already exist")
	initCmd.Flags().Bool("userspace", false, "Initialize configuration in user home directory (~/.toolgate/)")
	initCmd.Flags().Bool("skip-policy", false, "Skip writing the sample policy file")
	rootCmd.AddCommand(initCmd)
}

func initializeProject(cmd *cobra.Command) error {
	overwrite, _ := cmd.Flags().GetBool("overwrite")
	userspace, _ := cmd.Flags().GetBool("userspace")
	skipPolicy, _ := cmd.Flags().GetBool("skip-policy")

	cfg := config.DefaultConfig()

	baseDir := config.ConfigDirName
	policyDir := cfg.Policy.WorkspaceDir
	if userspace {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}
		baseDir = filepath.Join(homeDir, config.ConfigDirName)
		policyDir = config.ExpandPath(cfg.Policy.GlobalDir)
	}

	configPath := filepath.Join(baseDir, configFileName)
	gitignorePath := filepath.Join(baseDir, gitignoreFileName)
	policyPath := filepath.Join(policyDir, policyFileName)

	created := []string{configPath, gitignorePath}
	if !skipPolicy {
		created = append(created, policyPath)
	}

	if !overwrite {
		if err := validateFilesNotExist(created...); err != nil {
			return err
		}
	}

	if err := cfg.Save(configPath); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	if err := os.WriteFile(gitignorePath, []byte(gitignoreContent), 0644); err != nil {
		return fmt.Errorf("failed to create .gitignore file: %w", err)
	}
	if !skipPolicy {
		if err := os.MkdirAll(policyDir, 0755); err != nil {
			return fmt.Errorf("failed to create policy directory: %w", err)
		}
		if err := os.WriteFile(policyPath, []byte(samplePolicy), 0644); err != nil {
			return fmt.Errorf("failed to create policy file: %w", err)
		}
	}

	scopeDesc := "workspace"
	if userspace {
		scopeDesc = "userspace"
	}

	fmt.Printf("%s Initialized toolgate %s configuration\n", ui.CheckMark(), scopeDesc)
	for _, path := range created {
		fmt.Printf("   Created: %s\n", path)
	}
	fmt.Println("")
	fmt.Println("Next steps:")
	fmt.Println("  • Review the policy rules, then: toolgate policy accept")
	fmt.Println("  • Trust this workspace: toolgate policy trust")
	fmt.Println("  • Run a turn: toolgate run turn.yaml")
	return nil
}

func validateFilesNotExist(paths ...string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --overwrite to replace)", path)
		}
	}
	return nil
}
