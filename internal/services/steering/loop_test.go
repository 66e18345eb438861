package steering

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	config "github.com/inference-gateway/toolgate/config"
	domain "github.com/inference-gateway/toolgate/internal/domain"
	policy "github.com/inference-gateway/toolgate/internal/services/policy"
	scheduler "github.com/inference-gateway/toolgate/internal/services/scheduler"
	tools "github.com/inference-gateway/toolgate/internal/services/tools"
	mocksdomain "github.com/inference-gateway/toolgate/tests/mocks/domain"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
	goleak "go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type loopFixture struct {
	loop      *Loop
	steering  *Controller
	sched     *scheduler.Scheduler
	transport *mocksdomain.FakeModelTransport
	handler   *mocksdomain.FakeConfirmationHandler
	write     *mocksdomain.FakeToolExecutor
	read      *mocksdomain.FakeToolExecutor
}

func newLoopFixture(t *testing.T, steeringCfg config.SteeringConfig) *loopFixture {
	t.Helper()

	rules := policy.NewRuleStore()
	rules.ReplaceLayer(policy.Layer{Scope: domain.ScopeGlobal, Identifier: "settings", Rules: []domain.PolicyRule{
		{ToolName: "write_file", Decision: domain.DecisionAskUser, Scope: domain.ScopeGlobal, Source: "settings"},
	}})

	registry := tools.NewEmptyRegistry()
	write := &mocksdomain.FakeToolExecutor{}
	write.NameReturns("write_file")
	write.EffectReturns(domain.EffectMutating)
	write.ExecuteReturns(&domain.ToolResult{Output: "Created main.go (12 bytes)"}, nil)
	read := &mocksdomain.FakeToolExecutor{}
	read.NameReturns("read_file")
	read.EffectReturns(domain.EffectReadOnly)
	read.ExecuteReturns(&domain.ToolResult{Output: "package main"}, nil)
	require.NoError(t, registry.Register(write))
	require.NoError(t, registry.Register(read))

	handler := &mocksdomain.FakeConfirmationHandler{}
	handler.ConfirmToolReturns(domain.ConfirmationApprove, nil)

	queue := scheduler.NewConfirmationQueue()
	sched := scheduler.NewScheduler(policy.NewEngine(rules, nil), registry, nil, queue, handler, scheduler.Options{Interactive: true, MaxParallel: 4})
	sched.SetTrustFunc(func(context.Context) domain.TrustState {
		return domain.TrustState{WorkspaceTrusted: true, WorkspaceRoot: "/w"}
	})

	controller := NewController(queue, steeringCfg)
	sched.SetHintSource(controller)

	transport := &mocksdomain.FakeModelTransport{}
	defs := []domain.ToolDefinition{{Name: "read_file"}, {Name: "write_file"}}
	loop := NewLoop(transport, sched, controller, defs, config.AgentConfig{MaxTurns: 5, SystemPrompt: "You are careful."})
	sched.SetObserver(loop)

	return &loopFixture{loop: loop, steering: controller, sched: sched, transport: transport, handler: handler, write: write, read: read}
}

func toolCall(name, path string) domain.ToolCallRequest {
	return domain.ToolCallRequest{ToolName: name, Args: map[string]any{"file_path": path}}
}

func lastMessage(req domain.ModelRequest) domain.Message {
	return req.Messages[len(req.Messages)-1]
}

func TestLoop_HintDuringPendingConfirmationIsAcknowledgedFirst(t *testing.T) {
	f := newLoopFixture(t, config.SteeringConfig{})

	f.transport.GenerateReturnsOnCall(0, &domain.ModelResponse{
		Content:   "Writing the file, then reading the config.",
		ToolCalls: []domain.ToolCallRequest{toolCall("write_file", "main.go"), toolCall("read_file", "config.yaml")},
	}, nil)
	f.transport.GenerateReturnsOnCall(1, &domain.ModelResponse{Content: "Understood, I will use tabs from now on."}, nil)

	f.handler.ConfirmToolCalls(func(ctx context.Context, entry domain.ConfirmationEntry) (domain.ConfirmationAction, error) {
		assert.Eventually(t, func() bool {
			return f.loop.State() == domain.TurnAwaitingToolConfirmation
		}, 2*time.Second, 5*time.Millisecond)
		assert.NoError(t, f.steering.AddUserHint(entry.TurnID, "use tabs, not spaces"))
		return domain.ConfirmationApprove, nil
	})

	report, err := f.loop.Run(context.Background(), "create main.go")
	require.NoError(t, err)

	assert.Equal(t, 1, f.write.ExecuteCallCount(), "the approved write still runs")
	assert.Equal(t, 0, f.read.ExecuteCallCount(), "no further tool call before the model sees the hint")
	assert.Equal(t, 1, report.Steered)
	assert.Equal(t, domain.TurnIdle, report.FinalState)
	assert.Equal(t, domain.TurnIdle, f.loop.State())
	assert.Equal(t, "Understood, I will use tabs from now on.", report.Content)

	require.Equal(t, 2, f.transport.GenerateCallCount())
	_, second := f.transport.GenerateArgsForCall(1)
	hintMsg := lastMessage(second)
	assert.Equal(t, domain.RoleUser, hintMsg.Role)
	assert.Contains(t, hintMsg.Content, "use tabs, not spaces")

	outcomes := report.Outcomes()
	require.Len(t, outcomes, 2)
	assert.Equal(t, domain.OutcomeSuccess, outcomes[0].Status)
	assert.Equal(t, domain.OutcomeCancelled, outcomes[1].Status)

	var toolMsgs int
	for _, m := range second.Messages {
		if m.Role == domain.RoleTool {
			toolMsgs++
		}
	}
	assert.Equal(t, 2, toolMsgs, "every proposed call gets a tool message")
}

func TestLoop_HintDuringGenerationPreemptsToolCalls(t *testing.T) {
	f := newLoopFixture(t, config.SteeringConfig{})

	f.transport.GenerateCalls(func(ctx context.Context, req domain.ModelRequest) (*domain.ModelResponse, error) {
		if f.transport.GenerateCallCount() == 1 {
			require.NoError(t, f.steering.AddUserHint(req.TurnID, "only read, do not write"))
			return &domain.ModelResponse{ToolCalls: []domain.ToolCallRequest{toolCall("write_file", "a.go")}}, nil
		}
		return &domain.ModelResponse{Content: "OK, read-only from here."}, nil
	})

	report, err := f.loop.Run(context.Background(), "fix a.go")
	require.NoError(t, err)

	assert.Equal(t, 0, f.write.ExecuteCallCount())
	assert.Equal(t, 0, f.handler.ConfirmToolCallCount())
	assert.Equal(t, 1, report.Steered)
	assert.Empty(t, report.Waves)
}

func TestLoop_CarryoverPrependedToNextMessage(t *testing.T) {
	f := newLoopFixture(t, config.SteeringConfig{})
	f.transport.GenerateReturns(&domain.ModelResponse{Content: "done"}, nil)

	require.NoError(t, f.steering.AddUserHint("", "prefer small commits"))

	report, err := f.loop.Run(context.Background(), "refactor the parser")
	require.NoError(t, err)

	_, req := f.transport.GenerateArgsForCall(0)
	first := lastMessage(req)
	assert.Equal(t, domain.RoleUser, first.Role)
	assert.True(t, strings.HasPrefix(first.Content, FormatHints([]domain.Hint{{Text: "prefer small commits"}})))
	assert.True(t, strings.HasSuffix(first.Content, "refactor the parser"))
	assert.Len(t, report.HintsServed, 1)
	assert.Equal(t, domain.RoleSystem, req.Messages[0].Role)
	assert.Len(t, req.Tools, 2)
}

func TestLoop_ToolResultsFeedNextGeneration(t *testing.T) {
	f := newLoopFixture(t, config.SteeringConfig{})
	f.transport.GenerateReturnsOnCall(0, &domain.ModelResponse{ToolCalls: []domain.ToolCallRequest{toolCall("read_file", "main.go")}}, nil)
	f.transport.GenerateReturnsOnCall(1, &domain.ModelResponse{Content: "It is a main package."}, nil)

	report, err := f.loop.Run(context.Background(), "what is main.go?")
	require.NoError(t, err)

	assert.Equal(t, 1, report.Iterations)
	_, second := f.transport.GenerateArgsForCall(1)
	msg := lastMessage(second)
	assert.Equal(t, domain.RoleTool, msg.Role)
	assert.Equal(t, "package main", msg.Content)
	_, first := f.transport.GenerateArgsForCall(0)
	assert.Len(t, first.Messages, 2)
}

func TestLoop_IterationLimit(t *testing.T) {
	f := newLoopFixture(t, config.SteeringConfig{})
	f.loop.cfg.MaxTurns = 2
	f.transport.GenerateReturns(&domain.ModelResponse{ToolCalls: []domain.ToolCallRequest{toolCall("read_file", "x")}}, nil)

	report, err := f.loop.Run(context.Background(), "loop forever")
	require.NoError(t, err)

	assert.Equal(t, 2, report.Iterations)
	assert.Equal(t, 2, f.transport.GenerateCallCount())
	assert.Equal(t, domain.TurnIdle, report.FinalState)
}

func TestLoop_GenerationError(t *testing.T) {
	f := newLoopFixture(t, config.SteeringConfig{})
	f.transport.GenerateReturns(nil, errors.New("gateway unavailable"))

	report, err := f.loop.Run(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gateway unavailable")
	assert.Equal(t, domain.TurnError, report.FinalState)
	assert.Equal(t, domain.TurnIdle, f.loop.State())
}

func TestLoop_Cancelled(t *testing.T) {
	f := newLoopFixture(t, config.SteeringConfig{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f.transport.GenerateReturns(&domain.ModelResponse{ToolCalls: []domain.ToolCallRequest{toolCall("write_file", "a.go")}}, nil)
	f.handler.ConfirmToolCalls(func(c context.Context, entry domain.ConfirmationEntry) (domain.ConfirmationAction, error) {
		cancel()
		<-c.Done()
		return domain.ConfirmationCancel, nil
	})

	report, err := f.loop.Run(ctx, "write a.go")
	assert.True(t, IsCancelled(err))
	assert.Equal(t, domain.TurnCancelled, report.FinalState)
	assert.Equal(t, 0, f.write.ExecuteCallCount())
	require.Len(t, report.Outcomes(), 1)
	assert.Equal(t, domain.OutcomeCancelled, report.Outcomes()[0].Status)
}

func TestLoop_InterruptPendingConfirmation(t *testing.T) {
	f := newLoopFixture(t, config.SteeringConfig{InterruptPendingConfirmation: true})

	f.transport.GenerateReturnsOnCall(0, &domain.ModelResponse{ToolCalls: []domain.ToolCallRequest{toolCall("write_file", "a.go")}}, nil)
	f.transport.GenerateReturnsOnCall(1, &domain.ModelResponse{Content: "Stopped, what should I change?"}, nil)

	f.handler.ConfirmToolCalls(func(ctx context.Context, entry domain.ConfirmationEntry) (domain.ConfirmationAction, error) {
		assert.NoError(t, f.steering.AddUserHint(entry.TurnID, "wrong file"))
		<-ctx.Done()
		return domain.ConfirmationCancel, nil
	})

	report, err := f.loop.Run(context.Background(), "edit a.go")
	require.NoError(t, err)

	assert.Equal(t, 0, f.write.ExecuteCallCount())
	assert.Equal(t, 1, report.Steered)
	require.Len(t, report.Outcomes(), 1)
	assert.Equal(t, domain.OutcomeCancelled, report.Outcomes()[0].Status)
}
