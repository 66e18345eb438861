package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	domain "github.com/inference-gateway/toolgate/internal/domain"
	logger "github.com/inference-gateway/toolgate/internal/logger"
	errgroup "golang.org/x/sync/errgroup"
)

// runWave drives one wave to a terminal state for every member. A non-empty
// stop reason ends the turn after this wave.
func (s *Scheduler) runWave(ctx context.Context, turnID string, plan *plannedWave) ([]domain.ToolCallOutcome, string) {
	outcomes := make([]domain.ToolCallOutcome, 0, plan.members())

	for _, c := range plan.denied {
		outcomes = append(outcomes, s.deny(ctx, c, plan.index, denialMessage(c.decision), ""))
	}

	var stop string
	switch {
	case len(plan.calls) == 0:
	case plan.parallel:
		s.notify(turnID, plan.index, domain.WaveExecuting)
		outcomes = append(outcomes, s.runParallel(ctx, plan)...)
	default:
		var o domain.ToolCallOutcome
		o, stop = s.runSingle(ctx, turnID, plan.index, plan.calls[0])
		outcomes = append(outcomes, o)
	}

	sort.SliceStable(outcomes, func(i, j int) bool {
		return outcomes[i].Request.Sequence < outcomes[j].Request.Sequence
	})
	return outcomes, stop
}

// runParallel executes read-only ALLOW calls concurrently. A failing member
// never aborts its siblings.
func (s *Scheduler) runParallel(ctx context.Context, plan *plannedWave) []domain.ToolCallOutcome {
	outcomes := make([]domain.ToolCallOutcome, len(plan.calls))

	var g errgroup.Group
	if s.opts.MaxParallel > 0 {
		g.SetLimit(s.opts.MaxParallel)
	}
	for i, c := range plan.calls {
		g.Go(func() error {
			if ctx.Err() != nil {
				outcomes[i] = cancelled(c, plan.index, "turn cancelled")
				return nil
			}
			outcomes[i] = s.guardedExecute(ctx, c, plan.index)
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

// runSingle resolves a wave holding one call that is mutating or needs
// confirmation
func (s *Scheduler) runSingle(ctx context.Context, turnID string, index int, c plannedCall) (domain.ToolCallOutcome, string) {
	switch c.decision.Decision {
	case domain.DecisionDeny:
		return s.deny(ctx, c, index, denialMessage(c.decision), ""), ""
	case domain.DecisionAllow:
		s.notify(turnID, index, domain.WaveExecuting)
		return s.guardedExecute(ctx, c, index), ""
	}

	before := s.fireBefore(ctx, c.req)
	if before.Denied() {
		return s.deny(ctx, c, index, before.Reason, before.SystemMessage), ""
	}

	res, err := s.confirm(ctx, turnID, index, c)
	if err != nil {
		reason := err.Error()
		o := s.deny(ctx, c, index, reason, before.SystemMessage)
		return o, reason
	}

	switch res.Action {
	case domain.ConfirmationApprove:
		s.notify(turnID, index, domain.WaveExecuting)
		return s.execute(domain.WithToolApproved(ctx), c, index, before.SystemMessage), ""
	case domain.ConfirmationDeny:
		reason := res.Reason
		if reason == "" {
			reason = "denied by user"
		}
		return s.deny(ctx, c, index, reason, before.SystemMessage), ""
	default:
		reason := res.Reason
		if reason == "" {
			reason = "confirmation cancelled"
		}
		return cancelled(c, index, reason), reason
	}
}

// errHardStop ends a non-interactive turn at the first unapproved confirmation
var errHardStop = errors.New("confirmation required but the session is non-interactive")

// confirm resolves an ASK_USER call through pre-approval, the queue and the
// front-end
func (s *Scheduler) confirm(ctx context.Context, turnID string, index int, c plannedCall) (domain.ConfirmationResolution, error) {
	if s.isPreApproved(c.req) {
		logger.Info("Tool call pre-approved", "turn", turnID, "tool", c.req.QualifiedName(), "rationale", c.decision.Rationale)
		return domain.ConfirmationResolution{Action: domain.ConfirmationApprove, Reason: "pre-approved"}, nil
	}

	if !s.opts.Interactive {
		logger.Warn("Stopping non-interactive turn at confirmation", "turn", turnID, "tool", c.req.QualifiedName(), "rationale", c.decision.Rationale)
		return domain.ConfirmationResolution{}, fmt.Errorf("%w: %s", errHardStop, c.req.QualifiedName())
	}

	ticket := s.queue.Enqueue(c.req, c.decision)

	select {
	case <-ticket.Active():
	case res := <-ticket.Done():
		return res, nil
	case <-ctx.Done():
		s.queue.withdraw(ticket, domain.ConfirmationResolution{Action: domain.ConfirmationCancel, Reason: "turn cancelled"})
		return domain.ConfirmationResolution{Action: domain.ConfirmationCancel, Reason: "turn cancelled"}, nil
	}

	s.notify(turnID, index, domain.WaveAwaitingConfirmation)
	logger.Info("Awaiting confirmation", "turn", turnID, "entry", ticket.Entry.ID, "tool", c.req.QualifiedName())

	askCtx, cancelAsk := context.WithCancel(ctx)
	defer cancelAsk()
	if s.handler != nil {
		go s.ask(askCtx, ticket)
	}

	var timeout <-chan time.Time
	if s.opts.ConfirmationTimeout > 0 {
		timer := time.NewTimer(s.opts.ConfirmationTimeout)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case res := <-ticket.Done():
		return res, nil
	case <-timeout:
		res := domain.ConfirmationResolution{Action: domain.ConfirmationDeny, Reason: fmt.Sprintf("confirmation timed out after %s", s.opts.ConfirmationTimeout)}
		s.queue.withdraw(ticket, res)
		return <-ticket.Done(), nil
	case <-ctx.Done():
		s.queue.withdraw(ticket, domain.ConfirmationResolution{Action: domain.ConfirmationCancel, Reason: "turn cancelled"})
		return <-ticket.Done(), nil
	}
}

// ask forwards the active entry to the front-end and resolves it with the answer
func (s *Scheduler) ask(ctx context.Context, ticket *Ticket) {
	action, err := s.handler.ConfirmTool(ctx, ticket.Entry)
	if ctx.Err() != nil {
		return
	}
	res := domain.ConfirmationResolution{Action: action}
	if err != nil {
		logger.Error("Confirmation front-end failed", "entry", ticket.Entry.ID, "error", err)
		res = domain.ConfirmationResolution{Action: domain.ConfirmationDeny, Reason: fmt.Sprintf("confirmation failed: %v", err)}
	}
	if err := s.queue.Resolve(ticket.Entry.ID, res); err != nil && !errors.Is(err, domain.ErrEntryNotFound) {
		logger.Error("Failed to resolve confirmation", "entry", ticket.Entry.ID, "error", err)
	}
}

// guardedExecute runs the BeforeTool hooks and then the call
func (s *Scheduler) guardedExecute(ctx context.Context, c plannedCall, index int) domain.ToolCallOutcome {
	before := s.fireBefore(ctx, c.req)
	if before.Denied() {
		return s.deny(ctx, c, index, before.Reason, before.SystemMessage)
	}
	return s.execute(ctx, c, index, before.SystemMessage)
}

// execute runs the executor and the AfterTool hooks
func (s *Scheduler) execute(ctx context.Context, c plannedCall, index int, beforeMessage string) domain.ToolCallOutcome {
	start := time.Now()
	o := domain.ToolCallOutcome{Request: c.req, Decision: c.decision, Wave: index}

	result, err := s.invoke(ctx, c.req)
	o.Duration = time.Since(start)

	switch {
	case err != nil && ctx.Err() != nil:
		o.Status = domain.OutcomeCancelled
		o.Error = "turn cancelled"
	case err != nil:
		o.Status = domain.OutcomeFailed
		o.Error = err.Error()
		logger.Warn("Tool call failed", "tool", c.req.QualifiedName(), "call", c.req.ID, "error", err)
	default:
		o.Status = domain.OutcomeSuccess
		if result != nil {
			o.Output = result.Output
		}
	}

	after := s.fireAfter(ctx, o)
	o.SystemMessage = joinMessages(beforeMessage, after)
	return o
}

func (s *Scheduler) invoke(ctx context.Context, req domain.ToolCallRequest) (result *domain.ToolResult, err error) {
	exec, ok := s.tools.Get(req.QualifiedName())
	if !ok {
		return nil, &domain.ToolExecutionError{ToolName: req.QualifiedName(), CallID: req.ID, Err: domain.ErrUnknownTool}
	}

	defer func() {
		if p := recover(); p != nil {
			result = nil
			err = &domain.ToolExecutionError{ToolName: req.QualifiedName(), CallID: req.ID, Err: fmt.Errorf("panic: %v", p)}
		}
	}()

	result, err = exec.Execute(ctx, req)
	if err != nil {
		return nil, &domain.ToolExecutionError{ToolName: req.QualifiedName(), CallID: req.ID, Err: err}
	}
	return result, nil
}

// deny resolves a call as DENIED; the AfterTool hooks still fire
func (s *Scheduler) deny(ctx context.Context, c plannedCall, index int, reason, beforeMessage string) domain.ToolCallOutcome {
	decision := c.decision
	if decision.Decision != domain.DecisionDeny {
		decision = domain.ToolCallDecision{Decision: domain.DecisionDeny, Source: decision.Source, Rationale: reason}
	}
	o := domain.ToolCallOutcome{
		Request:  c.req,
		Decision: decision,
		Status:   domain.OutcomeDenied,
		Error:    reason,
		Wave:     index,
	}

	logger.Info("Tool call denied", "tool", c.req.QualifiedName(), "call", c.req.ID, "reason", reason)

	after := s.fireAfter(ctx, o)
	o.SystemMessage = joinMessages(beforeMessage, after)
	return o
}

func cancelled(c plannedCall, index int, reason string) domain.ToolCallOutcome {
	return domain.ToolCallOutcome{
		Request:  c.req,
		Decision: c.decision,
		Status:   domain.OutcomeCancelled,
		Error:    reason,
		Wave:     index,
	}
}

func (s *Scheduler) fireBefore(ctx context.Context, req domain.ToolCallRequest) domain.BeforeToolResult {
	if s.hooks == nil {
		return domain.BeforeToolResult{}
	}
	return s.hooks.FireBeforeToolEvent(ctx, req.QualifiedName(), hookInput(req))
}

func (s *Scheduler) fireAfter(ctx context.Context, o domain.ToolCallOutcome) string {
	if s.hooks == nil {
		return ""
	}
	input := hookInput(o.Request)
	input.Status = o.Status.String()
	input.Error = o.Error
	return s.hooks.FireAfterToolEvent(context.WithoutCancel(ctx), o.Request.QualifiedName(), input, o.Output)
}
