package steering

import (
	"context"
	"errors"
	"fmt"
	"strings"

	uuid "github.com/google/uuid"
	config "github.com/inference-gateway/toolgate/config"
	domain "github.com/inference-gateway/toolgate/internal/domain"
	logger "github.com/inference-gateway/toolgate/internal/logger"
)

// TurnScheduler runs the tool calls of a turn wave by wave
type TurnScheduler interface {
	SubmitTurn(ctx context.Context, turnID string, requests []domain.ToolCallRequest) <-chan domain.WaveResult
}

// TurnReport summarizes one user turn
type TurnReport struct {
	TurnID      string
	Content     string
	Waves       []domain.WaveResult
	Iterations  int
	Steered     int
	FinalState  domain.TurnState
	HintsServed []domain.Hint
}

// Outcomes flattens the outcomes of every wave
func (r *TurnReport) Outcomes() []domain.ToolCallOutcome {
	var out []domain.ToolCallOutcome
	for _, w := range r.Waves {
		out = append(out, w.Outcomes...)
	}
	return out
}

type waveEvent struct {
	turnID string
	wave   int
	state  domain.WaveState
}

// Loop drives a user turn: generate, schedule tool calls, feed results and
// steering hints back to the model until it answers without tool calls.
type Loop struct {
	transport domain.ModelTransport
	scheduler TurnScheduler
	steering  *Controller
	tools     []domain.ToolDefinition
	cfg       config.AgentConfig

	sm      *TurnStateMachine
	events  chan waveEvent
	history []domain.Message
}

// NewLoop creates a turn loop. Register the loop as the scheduler's
// WaveObserver so confirmation waits are reflected in its state.
func NewLoop(transport domain.ModelTransport, scheduler TurnScheduler, steering *Controller, tools []domain.ToolDefinition, cfg config.AgentConfig) *Loop {
	l := &Loop{
		transport: transport,
		scheduler: scheduler,
		steering:  steering,
		tools:     tools,
		cfg:       cfg,
		sm:        NewTurnStateMachine(),
		events:    make(chan waveEvent, 128),
	}
	if cfg.SystemPrompt != "" {
		l.history = append(l.history, domain.Message{Role: domain.RoleSystem, Content: cfg.SystemPrompt})
	}
	return l
}

// OnWaveState implements domain.WaveObserver
func (l *Loop) OnWaveState(turnID string, wave int, state domain.WaveState) {
	select {
	case l.events <- waveEvent{turnID: turnID, wave: wave, state: state}:
	default:
		logger.Debug("Dropping wave event, loop is not listening", "turn", turnID, "wave", wave, "state", state)
	}
}

// State returns the current turn state
func (l *Loop) State() domain.TurnState {
	return l.sm.Current()
}

// History returns the conversation so far
func (l *Loop) History() []domain.Message {
	return append([]domain.Message(nil), l.history...)
}

// Run processes one user message to completion
func (l *Loop) Run(ctx context.Context, userText string) (*TurnReport, error) {
	turnID := uuid.New().String()
	tc := &TurnContext{TurnID: turnID, MaxIterations: l.cfg.MaxTurns}
	report := &TurnReport{TurnID: turnID}

	if l.sm.Current() != domain.TurnIdle {
		l.sm.Reset()
	}
	l.drainStale()

	l.steering.BeginTurn(turnID)
	defer l.steering.EndTurn(turnID)

	if carried := l.steering.TakeCarryover(); len(carried) > 0 {
		userText = FormatHints(carried) + "\n\n" + userText
		report.HintsServed = append(report.HintsServed, carried...)
	}
	l.history = append(l.history, domain.Message{Role: domain.RoleUser, Content: userText})

	if err := l.sm.Transition(tc, domain.TurnGenerating); err != nil {
		return report, err
	}

	logger.Info("Turn started", "turn", turnID)

	for {
		if ctx.Err() != nil {
			return l.cancel(tc, report, ctx.Err())
		}

		resp, err := l.transport.Generate(ctx, domain.ModelRequest{TurnID: turnID, Messages: l.History(), Tools: l.tools})
		if err != nil {
			if ctx.Err() != nil {
				return l.cancel(tc, report, ctx.Err())
			}
			return l.fail(tc, report, fmt.Errorf("generation failed: %w", err))
		}

		calls := l.stamp(turnID, resp.ToolCalls)
		l.history = append(l.history, domain.Message{Role: domain.RoleAssistant, Content: resp.Content, ToolCalls: calls})
		report.Content = resp.Content

		tc.ToolCalls = calls
		tc.PendingHints = l.steering.DrainHints(turnID)

		if len(tc.PendingHints) > 0 {
			for _, c := range calls {
				l.history = append(l.history, toolMessage(domain.ToolCallOutcome{Request: c, Status: domain.OutcomeCancelled, Error: "steered by user hint"}))
			}
			if err := l.steer(tc, report); err != nil {
				return l.fail(tc, report, err)
			}
			continue
		}

		if len(calls) == 0 {
			if err := l.sm.Transition(tc, domain.TurnIdle); err != nil {
				return l.fail(tc, report, err)
			}
			report.FinalState = domain.TurnIdle
			logger.Info("Turn completed", "turn", turnID, "iterations", report.Iterations, "steered", report.Steered)
			return report, nil
		}

		if err := l.sm.Transition(tc, domain.TurnExecutingTools); err != nil {
			return l.fail(tc, report, err)
		}

		hints := l.execute(ctx, tc, report, calls)
		tc.Iterations++
		report.Iterations = tc.Iterations

		if ctx.Err() != nil {
			return l.cancel(tc, report, ctx.Err())
		}

		tc.PendingHints = append(hints, l.steering.DrainHints(turnID)...)
		if len(tc.PendingHints) > 0 {
			if err := l.steer(tc, report); err != nil {
				return l.fail(tc, report, err)
			}
			continue
		}

		if l.sm.CanTransition(tc, domain.TurnIdle) {
			_ = l.sm.Transition(tc, domain.TurnIdle)
			report.FinalState = domain.TurnIdle
			logger.Warn("Turn stopped at iteration limit", "turn", turnID, "iterations", tc.Iterations)
			return report, nil
		}
		if err := l.sm.Transition(tc, domain.TurnGenerating); err != nil {
			return l.fail(tc, report, err)
		}
	}
}

// execute submits the calls and waits for every wave, tracking confirmation
// waits as messages. Hints come back on the wave results.
func (l *Loop) execute(ctx context.Context, tc *TurnContext, report *TurnReport, calls []domain.ToolCallRequest) []domain.Hint {
	results := l.scheduler.SubmitTurn(ctx, tc.TurnID, calls)
	var hints []domain.Hint

	for {
		select {
		case r, ok := <-results:
			if !ok {
				return hints
			}
			report.Waves = append(report.Waves, r)
			for _, o := range r.Outcomes {
				l.history = append(l.history, toolMessage(o))
			}
			hints = append(hints, r.Hints...)
			if r.Final {
				l.drainEvents(tc)
				return hints
			}

		case ev := <-l.events:
			l.onWaveEvent(tc, ev)
		}
	}
}

func (l *Loop) onWaveEvent(tc *TurnContext, ev waveEvent) {
	if ev.turnID != tc.TurnID {
		return
	}
	switch ev.state {
	case domain.WaveAwaitingConfirmation:
		_ = l.sm.Transition(tc, domain.TurnAwaitingToolConfirmation)
	case domain.WaveExecuting:
		if l.sm.Current() == domain.TurnAwaitingToolConfirmation {
			_ = l.sm.Transition(tc, domain.TurnExecutingTools)
		}
	}
}

// drainEvents applies wave events still buffered after the final result
func (l *Loop) drainEvents(tc *TurnContext) {
	for {
		select {
		case ev := <-l.events:
			l.onWaveEvent(tc, ev)
		default:
			return
		}
	}
}

// drainStale discards notifications left over from earlier turns
func (l *Loop) drainStale() {
	for {
		select {
		case <-l.events:
		default:
			return
		}
	}
}

// steer hands the pending hints to the model as the next user message
func (l *Loop) steer(tc *TurnContext, report *TurnReport) error {
	if err := l.sm.Transition(tc, domain.TurnSteered); err != nil {
		return err
	}
	report.Steered++
	report.HintsServed = append(report.HintsServed, tc.PendingHints...)
	l.history = append(l.history, domain.Message{Role: domain.RoleUser, Content: FormatHints(tc.PendingHints)})

	logger.Info("Turn steered by user hint", "turn", tc.TurnID, "hints", len(tc.PendingHints))

	tc.PendingHints = nil
	return l.sm.Transition(tc, domain.TurnGenerating)
}

func (l *Loop) cancel(tc *TurnContext, report *TurnReport, err error) (*TurnReport, error) {
	_ = l.sm.Transition(tc, domain.TurnCancelled)
	report.FinalState = domain.TurnCancelled
	_ = l.sm.Transition(tc, domain.TurnIdle)
	logger.Info("Turn cancelled", "turn", tc.TurnID)
	return report, err
}

func (l *Loop) fail(tc *TurnContext, report *TurnReport, err error) (*TurnReport, error) {
	_ = l.sm.Transition(tc, domain.TurnError)
	report.FinalState = domain.TurnError
	_ = l.sm.Transition(tc, domain.TurnIdle)
	logger.Error("Turn failed", "turn", tc.TurnID, "error", err)
	return report, err
}

// stamp fills in turn, ordering and id fields the transport may leave empty
func (l *Loop) stamp(turnID string, calls []domain.ToolCallRequest) []domain.ToolCallRequest {
	out := make([]domain.ToolCallRequest, len(calls))
	for i, c := range calls {
		c.TurnID = turnID
		c.Sequence = i + 1
		if c.ID == "" {
			c.ID = "call_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
		}
		out[i] = c
	}
	return out
}

func toolMessage(o domain.ToolCallOutcome) domain.Message {
	var content string
	switch o.Status {
	case domain.OutcomeSuccess:
		content = o.Output
	case domain.OutcomeDenied:
		content = "Tool call denied: " + o.Error
	case domain.OutcomeCancelled:
		content = "Tool call not executed: " + o.Error
	default:
		content = "Tool call failed: " + o.Error
	}
	if o.SystemMessage != "" {
		content += "\n\n" + o.SystemMessage
	}
	return domain.Message{Role: domain.RoleTool, Content: content, ToolCallID: o.Request.ID}
}

// IsCancelled reports whether err ended a turn through cancellation
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
