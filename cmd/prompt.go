package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	logger "github.com/inference-gateway/toolgate/internal/logger"
	steering "github.com/inference-gateway/toolgate/internal/services/steering"
	ui "github.com/inference-gateway/toolgate/internal/ui"
	cobra "github.com/spf13/cobra"
)

var promptCmd = &cobra.Command{
	Use:   "prompt [prompt text]",
	Short: "Run one agent turn against the inference gateway",
	Long: `Send a prompt to the configured model and run the tool calls it proposes
through the control plane until it answers without tool calls.

Lines typed while the turn is running are sent to the model as hints; they
are acknowledged before any further tool calls.

Examples:
  toolgate prompt "Add a main function to main.go"
  toolgate prompt --model "openai/gpt-4o" "Explain the failing test"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		model, _ := cmd.Flags().GetString("model")
		return runPrompt(cmd, strings.Join(args, " "), model)
	},
}

func init() {
	promptCmd.Flags().StringP("model", "m", "", "model to use as provider/model (default is agent.model)")
	rootCmd.AddCommand(promptCmd)
}

func runPrompt(cmd *cobra.Command, text, model string) error {
	if model != "" {
		appConfig.Agent.Model = model
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, prompter, err := newContainer(cmd, true)
	if err != nil {
		return err
	}
	defer closeContainer(c)

	transport, err := c.NewGatewayTransport()
	if err != nil {
		return err
	}

	if err := loadPolicies(ctx, c); err != nil {
		return err
	}
	if err := c.StartWatcher(ctx); err != nil {
		logger.Warn("Policy watcher not started", "error", err)
	}

	controller := c.GetSteering()
	if prompter != nil {
		prompter.SetIdleHandler(func(line string) {
			if err := controller.AddUserHint(controller.ActiveTurn(), line); err != nil {
				logger.Debug("Hint ignored", "error", err)
			}
		})
	}

	loop := c.NewLoop(transport)
	report, err := loop.Run(ctx, text)

	reporter := ui.NewReporter(os.Stdout, 0)
	if report != nil {
		for _, w := range report.Waves {
			reporter.WaveResult(w)
			reporter.Hints(w.Hints)
		}
	}

	if err != nil {
		if steering.IsCancelled(err) {
			fmt.Fprintln(os.Stderr, "Turn cancelled")
			return nil
		}
		return err
	}

	if report.Content != "" {
		fmt.Println()
		fmt.Println(report.Content)
	}
	return nil
}
