package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	uuid "github.com/google/uuid"
	domain "github.com/inference-gateway/toolgate/internal/domain"
	logger "github.com/inference-gateway/toolgate/internal/logger"
	ui "github.com/inference-gateway/toolgate/internal/ui"
	cobra "github.com/spf13/cobra"
	yaml "gopkg.in/yaml.v3"
)

var runCmd = &cobra.Command{
	Use:   "run <turn-file>",
	Short: "Run a batch of proposed tool calls through the control plane",
	Long: `Run the tool calls of one turn, read from a YAML or JSON file ("-" for stdin).

Each call is checked against policy and workspace trust, then executed in
ordered waves. Calls that need confirmation are prompted one at a time.
Lines typed while no question is waiting are sent to the turn as hints.

Example turn file:
  calls:
    - tool: read_file
      args: {file_path: main.go}
    - tool: write_file
      args: {file_path: main.go, content: "package main\n"}`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		return runTurnFile(cmd, args[0], asJSON)
	},
}

func init() {
	runCmd.Flags().Bool("json", false, "print wave results as JSON lines")
	rootCmd.AddCommand(runCmd)
}

type turnFile struct {
	TurnID string         `yaml:"turn_id"`
	Calls  []turnFileCall `yaml:"calls"`
}

type turnFileCall struct {
	ID     string         `yaml:"id"`
	Tool   string         `yaml:"tool"`
	Server string         `yaml:"server"`
	Args   map[string]any `yaml:"args"`
}

func readTurnFile(r io.Reader) (string, []domain.ToolCallRequest, error) {
	var tf turnFile
	if err := yaml.NewDecoder(r).Decode(&tf); err != nil {
		return "", nil, fmt.Errorf("failed to parse turn file: %w", err)
	}
	if len(tf.Calls) == 0 {
		return "", nil, fmt.Errorf("turn file has no calls")
	}

	turnID := tf.TurnID
	if turnID == "" {
		turnID = uuid.New().String()
	}

	requests := make([]domain.ToolCallRequest, len(tf.Calls))
	for i, c := range tf.Calls {
		if c.Tool == "" {
			return "", nil, fmt.Errorf("call %d has no tool", i+1)
		}
		id := c.ID
		if id == "" {
			id = fmt.Sprintf("call_%d", i+1)
		}
		requests[i] = domain.ToolCallRequest{
			ID:         id,
			ToolName:   c.Tool,
			ServerName: c.Server,
			Args:       c.Args,
			TurnID:     turnID,
			Sequence:   i + 1,
		}
	}
	return turnID, requests, nil
}

func runTurnFile(cmd *cobra.Command, path string, asJSON bool) error {
	var in io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open turn file: %w", err)
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	turnID, requests, err := readTurnFile(in)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, prompter, err := newContainer(cmd, path != "-")
	if err != nil {
		return err
	}
	defer closeContainer(c)

	if err := loadPolicies(ctx, c); err != nil {
		return err
	}
	if err := c.StartWatcher(ctx); err != nil {
		logger.Warn("Policy watcher not started", "error", err)
	}

	controller := c.GetSteering()
	controller.BeginTurn(turnID)
	defer controller.EndTurn(turnID)

	if prompter != nil {
		prompter.SetIdleHandler(func(line string) {
			if err := controller.AddUserHint(turnID, line); err != nil {
				logger.Debug("Hint ignored", "error", err)
			}
		})
	}

	reporter := ui.NewReporter(os.Stdout, 0)
	encoder := json.NewEncoder(os.Stdout)

	for res := range c.GetScheduler().SubmitTurn(ctx, turnID, requests) {
		if asJSON {
			if err := encoder.Encode(res); err != nil {
				return fmt.Errorf("failed to encode wave result: %w", err)
			}
			continue
		}
		reporter.WaveResult(res)
		reporter.Hints(res.Hints)
	}
	return nil
}
