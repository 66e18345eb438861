package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	config "github.com/inference-gateway/toolgate/config"
	domain "github.com/inference-gateway/toolgate/internal/domain"
	policy "github.com/inference-gateway/toolgate/internal/services/policy"
	ui "github.com/inference-gateway/toolgate/internal/ui"
	cobra "github.com/spf13/cobra"
	yaml "gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage toolgate configuration",
	Long:  `Manage the toolgate configuration file.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration after the file and TOOLGATE_* environment
overrides have been merged.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		return showConfig(appConfig, format)
	},
}

var setModelCmd = &cobra.Command{
	Use:   "set-model [MODEL_NAME]",
	Short: "Set the model used by the prompt command",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadAndUpdateConfig(cmd, func(c *config.Config) error {
			c.Agent.Model = args[0]
			return nil
		}); err != nil {
			return err
		}
		fmt.Printf("%s Model set to: %s\n", ui.CheckMark(), args[0])
		return nil
	},
}

var configRulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage the policy rules kept in the configuration file",
	Long: `Manage the inline policy rules of the configuration file. They form the
first global layer and are evaluated before any policy directory.`,
}

var configRulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the inline policy rules",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(appConfig.Policy.Rules) == 0 {
			fmt.Println("No inline rules configured")
			return nil
		}
		for i, r := range appConfig.Policy.Rules {
			name := r.Tool
			if r.Server != "" {
				name = r.Server + "/" + r.Tool
			}
			fmt.Printf("%3d  %-30s %s\n", i, name, decisionLabel(r.Decision))
		}
		return nil
	},
}

var configRulesAddCmd = &cobra.Command{
	Use:   "add TOOL DECISION",
	Short: "Append an inline policy rule",
	Long: `Append an inline policy rule. DECISION is allow, deny or ask_user.
TOOL is an exact tool name or "*" for every tool.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		server, _ := cmd.Flags().GetString("server")
		rule := config.RuleConfig{Tool: args[0], Server: server, Decision: args[1]}

		if _, err := policy.RulesFromConfig([]config.RuleConfig{rule}); err != nil {
			return err
		}

		if _, err := loadAndUpdateConfig(cmd, func(c *config.Config) error {
			c.Policy.Rules = append(c.Policy.Rules, rule)
			return nil
		}); err != nil {
			return err
		}
		fmt.Printf("%s Added rule %s → %s\n", ui.CheckMark(), rule.Tool, rule.Decision)
		return nil
	},
}

var configRulesRemoveCmd = &cobra.Command{
	Use:   "remove INDEX",
	Short: "Remove an inline policy rule by its list index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid rule index %q", args[0])
		}

		if _, err := loadAndUpdateConfig(cmd, func(c *config.Config) error {
			if index < 0 || index >= len(c.Policy.Rules) {
				return fmt.Errorf("rule index %d out of range", index)
			}
			c.Policy.Rules = append(c.Policy.Rules[:index], c.Policy.Rules[index+1:]...)
			return nil
		}); err != nil {
			return err
		}
		fmt.Printf("%s Removed rule %d\n", ui.CheckMark(), index)
		return nil
	},
}

var configTrustedFoldersCmd = &cobra.Command{
	Use:   "trust-folder PATH",
	Short: "Trust every workspace under PATH",
	Long: `Add PATH to policy.trusted_folders. Workspaces inside a trusted folder are
trusted unless "toolgate policy trust --revoke" stored an explicit flag.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadAndUpdateConfig(cmd, func(c *config.Config) error {
			for _, f := range c.Policy.TrustedFolders {
				if f == args[0] {
					return nil
				}
			}
			c.Policy.TrustedFolders = append(c.Policy.TrustedFolders, args[0])
			return nil
		}); err != nil {
			return err
		}
		fmt.Printf("%s Trusted folder added: %s\n", ui.CheckMark(), args[0])
		return nil
	},
}

func init() {
	configShowCmd.Flags().StringP("format", "f", "yaml", "Output format (yaml, json)")
	configRulesAddCmd.Flags().String("server", "", "MCP server the rule applies to")

	configRulesCmd.AddCommand(configRulesListCmd, configRulesAddCmd, configRulesRemoveCmd)
	configCmd.AddCommand(configShowCmd, setModelCmd, configRulesCmd, configTrustedFoldersCmd)

	rootCmd.AddCommand(configCmd)
}

func showConfig(cfg *config.Config, format string) error {
	switch format {
	case "json":
		out, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		fmt.Println(string(out))
	case "yaml", "":
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		fmt.Print(string(out))
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
	return nil
}

// loadAndUpdateConfig applies updateFn to the config file named by --config
// and writes it back
func loadAndUpdateConfig(cmd *cobra.Command, updateFn func(*config.Config) error) (*config.Config, error) {
	flag, _ := cmd.Flags().GetString("config")
	configPath := config.GetConfigPath(flag)

	cfg, _, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := updateFn(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Save(configPath); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}
	return cfg, nil
}

func decisionLabel(value string) string {
	d, err := domain.ParseDecision(value)
	if err != nil {
		return value
	}
	return d.String()
}
