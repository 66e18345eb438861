package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	config "github.com/inference-gateway/toolgate/config"
	container "github.com/inference-gateway/toolgate/internal/container"
	logger "github.com/inference-gateway/toolgate/internal/logger"
	ui "github.com/inference-gateway/toolgate/internal/ui"
	cobra "github.com/spf13/cobra"
	viper "github.com/spf13/viper"
	gotenv "github.com/subosito/gotenv"
)

var (
	// V is the viper instance the configuration was loaded from
	V *viper.Viper

	appConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "toolgate",
	Short: "Execution control plane for AI coding agents",
	Long: `toolgate decides whether each tool call an AI agent proposes may run.

It evaluates calls against layered policy rules and workspace trust, refuses
to load policy files whose content changed since they were last accepted,
runs calls in ordered waves with one confirmation prompt at a time, and lets
hooks and user hints steer a turn while it is in flight.`,
	SilenceUsage: true,
}

func Execute() {
	defer logger.Close()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", fmt.Sprintf("config file (default is %s)", config.DefaultConfigPath))
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringP("workspace", "w", "", "workspace root (default is tools.workspace_root)")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "never prompt; confirmations hard-stop the turn")

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if err := gotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
	}

	verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
	configFlag, _ := rootCmd.PersistentFlags().GetString("config")
	configPath := config.GetConfigPath(configFlag)

	cfg, v, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config from %s: %v\n", configPath, err)
		os.Exit(1)
	}

	logger.Init(verbose || cfg.Logging.Debug, cfg.Logging.Dir)

	appConfig = cfg
	V = v
}

// newContainer wires the services for a command. When interactive is
// requested and allowed, the terminal prompter is the front-end.
func newContainer(cmd *cobra.Command, interactive bool) (*container.ServiceContainer, *ui.Prompter, error) {
	workspace, _ := cmd.Flags().GetString("workspace")
	nonInteractive, _ := cmd.Flags().GetBool("non-interactive")

	opts := container.Options{WorkspaceRoot: workspace}

	var prompter *ui.Prompter
	if interactive && !nonInteractive && appConfig.Scheduler.Interactive {
		prompter = ui.NewPrompter(os.Stdin, os.Stderr, 0)
		opts.Frontend = prompter
	}

	c, err := container.NewServiceContainer(appConfig, opts)
	if err != nil {
		return nil, nil, err
	}
	return c, prompter, nil
}

// loadPolicies runs the integrity gate and prints what did not load
func loadPolicies(ctx context.Context, c *container.ServiceContainer) error {
	loads, err := c.LoadPolicies(ctx)
	if err != nil {
		return err
	}
	for _, l := range loads {
		if l.Err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %s policies in %s not loaded: %v\n", l.Target.Scope, l.Target.Dir, l.Err)
		}
		if l.Result.AutoAccepted {
			fmt.Fprintf(os.Stderr, "Warning: auto-accepted %s policies in %s (%s)\n", l.Target.Scope, l.Target.Dir, l.Result.Status)
		}
	}
	return nil
}

func closeContainer(c *container.ServiceContainer) {
	if err := c.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close storage: %v\n", err)
	}
}
