package tools

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	config "github.com/inference-gateway/toolgate/config"
	domain "github.com/inference-gateway/toolgate/internal/domain"
	logger "github.com/inference-gateway/toolgate/internal/logger"
	zap "go.uber.org/zap"
)

const defaultShellTimeout = 120 * time.Second

// ShellTool runs a command through sh in the workspace root
type ShellTool struct {
	root    string
	timeout time.Duration
}

// NewShellTool creates the run_shell_command executor
func NewShellTool(cfg config.ToolsConfig) *ShellTool {
	timeout := time.Duration(cfg.ShellTimeout) * time.Second
	if timeout <= 0 {
		timeout = defaultShellTimeout
	}
	return &ShellTool{root: cfg.WorkspaceRoot, timeout: timeout}
}

func (t *ShellTool) Name() string { return "run_shell_command" }

func (t *ShellTool) Effect() domain.Effect { return domain.EffectMutating }

// Definition returns the tool definition for the model
func (t *ShellTool) Definition() domain.ToolDefinition {
	return domain.ToolDefinition{
		Name:        t.Name(),
		Description: "Execute a shell command in the workspace. Every call is subject to the execution policy.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"command": map[string]any{
					"type":        "string",
					"description": "The command to execute",
				},
				"dir_path": map[string]any{
					"type":        "string",
					"description": "Working directory relative to the workspace root",
				},
			},
			"required": []string{"command"},
		},
	}
}

// Execute runs the command and returns its combined output
func (t *ShellTool) Execute(ctx context.Context, req domain.ToolCallRequest) (*domain.ToolResult, error) {
	command, err := stringArg(req.Args, "command", true)
	if err != nil {
		return nil, err
	}
	dirArg, err := stringArg(req.Args, "dir_path", false)
	if err != nil {
		return nil, err
	}
	if dirArg == "" {
		dirArg = "."
	}
	dir, err := resolvePath(t.root, dirArg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = dir
	cmd.WaitDelay = time.Second

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	start := time.Now()
	err = cmd.Run()
	out := strings.TrimRight(output.String(), "\n")

	logger.FromContext(ctx).Debug("Shell command finished",
		zap.String("call", req.ID),
		zap.String("dir", dir),
		zap.Bool("approved", domain.IsToolApproved(ctx)),
		zap.Duration("elapsed", time.Since(start)),
		zap.Error(err),
	)

	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("command timed out after %s", t.timeout)
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("command exited with code %d: %s", exitErr.ExitCode(), out)
		}
		return nil, fmt.Errorf("command failed: %w", err)
	}

	return &domain.ToolResult{
		Output: out,
		Data: map[string]any{
			"command":   command,
			"exit_code": 0,
			"duration":  time.Since(start).String(),
			"approved":  domain.IsToolApproved(ctx),
		},
	}, nil
}
