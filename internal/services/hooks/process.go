package hooks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	domain "github.com/inference-gateway/toolgate/internal/domain"
	logger "github.com/inference-gateway/toolgate/internal/logger"
	zap "go.uber.org/zap"
)

// DefaultProcessTimeout bounds a process hook without an explicit timeout
const DefaultProcessTimeout = 10 * time.Second

// denyExitCode makes a process hook veto the call; stderr becomes the reason
const denyExitCode = 2

// runProcess executes a ProcessAction with the input as JSON on stdin.
// stdout may carry a JSON HookOutput; exit code 2 denies.
func runProcess(ctx context.Context, action domain.ProcessAction, input domain.HookInput) (*domain.HookOutput, error) {
	timeout := action.Timeout
	if timeout <= 0 {
		timeout = DefaultProcessTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var cmd *exec.Cmd
	if len(action.Args) > 0 {
		cmd = exec.CommandContext(ctx, action.Command, action.Args...)
	} else {
		cmd = exec.CommandContext(ctx, "sh", "-c", action.Command)
	}

	payload, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal hook input: %w", err)
	}
	cmd.Stdin = bytes.NewReader(payload)
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	started := time.Now()
	err = cmd.Run()
	logger.FromContext(ctx).Debug("Hook process finished",
		zap.String("command", action.Command),
		zap.String("tool", input.ToolName),
		zap.Duration("elapsed", time.Since(started)),
		zap.Error(err),
	)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == denyExitCode {
			reason := strings.TrimSpace(stderr.String())
			if reason == "" {
				reason = fmt.Sprintf("blocked by hook %s", action.Command)
			}
			return &domain.HookOutput{Decision: domain.HookDecisionDeny, Reason: reason}, nil
		}
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("hook timed out after %s", timeout)
		}
		return nil, fmt.Errorf("hook command failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	out := bytes.TrimSpace(stdout.Bytes())
	if len(out) == 0 {
		return nil, nil
	}

	var parsed domain.HookOutput
	if err := json.Unmarshal(out, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse hook output: %w", err)
	}
	return &parsed, nil
}
