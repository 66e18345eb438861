package scheduler

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	domain "github.com/inference-gateway/toolgate/internal/domain"
	logger "github.com/inference-gateway/toolgate/internal/logger"
	zap "go.uber.org/zap"
)

// Decider renders a policy decision for one request
type Decider interface {
	Decide(req domain.ToolCallRequest, effect domain.Effect, trust domain.TrustState) domain.ToolCallDecision
}

// HookRunner fires the tool lifecycle hooks
type HookRunner interface {
	FireBeforeToolEvent(ctx context.Context, name string, input domain.HookInput) domain.BeforeToolResult
	FireAfterToolEvent(ctx context.Context, name string, input domain.HookInput, output string) string
}

// TrustFunc reports the current trust state. It is called for every request.
type TrustFunc func(ctx context.Context) domain.TrustState

// Scheduler partitions a turn's tool calls into waves and runs them in order.
// Waves of one turn are strictly sequential: wave N+1 is not evaluated until
// every member of wave N is terminal.
type Scheduler struct {
	engine  Decider
	tools   domain.ToolRegistry
	hooks   HookRunner
	queue   *ConfirmationQueue
	handler domain.ConfirmationHandler
	opts    Options

	trust       TrustFunc
	observer    domain.WaveObserver
	hints       domain.HintSource
	preApproved map[string]bool

	turnsMu sync.Mutex
	turns   map[string]*turnLock
}

type turnLock struct {
	mu   sync.Mutex
	refs int
}

// NewScheduler creates a scheduler. hooks and handler may be nil.
func NewScheduler(
	engine Decider,
	tools domain.ToolRegistry,
	hooks HookRunner,
	queue *ConfirmationQueue,
	handler domain.ConfirmationHandler,
	opts Options,
) *Scheduler {
	if queue == nil {
		queue = NewConfirmationQueue()
	}
	pre := make(map[string]bool, len(opts.PreApprovedTools))
	for _, name := range opts.PreApprovedTools {
		pre[name] = true
	}
	return &Scheduler{
		engine:      engine,
		tools:       tools,
		hooks:       hooks,
		queue:       queue,
		handler:     handler,
		opts:        opts,
		trust:       func(context.Context) domain.TrustState { return domain.TrustState{} },
		preApproved: pre,
		turns:       make(map[string]*turnLock),
	}
}

// SetTrustFunc sets how the trust state of a turn is resolved
func (s *Scheduler) SetTrustFunc(fn TrustFunc) { s.trust = fn }

// SetObserver registers the wave state observer
func (s *Scheduler) SetObserver(o domain.WaveObserver) { s.observer = o }

// SetHintSource registers where steering hints are drained from
func (s *Scheduler) SetHintSource(h domain.HintSource) { s.hints = h }

// Queue returns the confirmation queue
func (s *Scheduler) Queue() *ConfirmationQueue { return s.queue }

// SubmitTurn schedules requests and returns a channel of wave-complete
// batches. The last result has Final set and the channel is then closed.
// Submissions for the same turn run one after another.
func (s *Scheduler) SubmitTurn(ctx context.Context, turnID string, requests []domain.ToolCallRequest) <-chan domain.WaveResult {
	out := make(chan domain.WaveResult, len(requests)+1)

	pending := append([]domain.ToolCallRequest(nil), requests...)
	sort.SliceStable(pending, func(i, j int) bool { return pending[i].Sequence < pending[j].Sequence })

	go func() {
		defer close(out)

		lock := s.acquire(turnID)
		defer s.release(turnID, lock)

		s.runTurn(ctx, turnID, pending, out)
	}()

	return out
}

// RunTurn is the blocking form of SubmitTurn
func (s *Scheduler) RunTurn(ctx context.Context, turnID string, requests []domain.ToolCallRequest) []domain.WaveResult {
	var results []domain.WaveResult
	for r := range s.SubmitTurn(ctx, turnID, requests) {
		results = append(results, r)
	}
	return results
}

func (s *Scheduler) acquire(turnID string) *turnLock {
	s.turnsMu.Lock()
	l, ok := s.turns[turnID]
	if !ok {
		l = &turnLock{}
		s.turns[turnID] = l
	}
	l.refs++
	s.turnsMu.Unlock()

	l.mu.Lock()
	return l
}

func (s *Scheduler) release(turnID string, l *turnLock) {
	l.mu.Unlock()

	s.turnsMu.Lock()
	l.refs--
	if l.refs == 0 {
		delete(s.turns, turnID)
	}
	s.turnsMu.Unlock()
}

func (s *Scheduler) runTurn(ctx context.Context, turnID string, pending []domain.ToolCallRequest, out chan<- domain.WaveResult) {
	ctx = logger.With(ctx, zap.String("turn", turnID))
	index := 0

	logger.Debug("Turn submitted", "turn", turnID, "requests", len(pending))

	if len(pending) == 0 {
		out <- domain.WaveResult{TurnID: turnID, Hints: s.drainHints(turnID), Final: true}
		return
	}

	for len(pending) > 0 {
		if ctx.Err() != nil {
			out <- s.discard(turnID, index, pending, "turn cancelled")
			return
		}

		index++
		s.notify(turnID, index, domain.WavePending)
		s.notify(turnID, index, domain.WaveEvaluating)

		var plan *plannedWave
		plan, pending = s.nextWave(ctx, index, pending)

		logger.Debug("Wave planned",
			"turn", turnID,
			"wave", index,
			"parallel", plan.parallel,
			"calls", len(plan.calls),
			"denied", len(plan.denied),
		)

		outcomes, stop := s.runWave(ctx, turnID, plan)
		s.notify(turnID, index, domain.WaveResolved)

		result := domain.WaveResult{TurnID: turnID, Index: index, Outcomes: outcomes}

		if ctx.Err() != nil && len(pending) > 0 {
			result.Outcomes = append(result.Outcomes, cancelAll(pending, index, "turn cancelled")...)
			pending = nil
		}

		if stop != "" && len(pending) > 0 {
			result.Outcomes = append(result.Outcomes, cancelAll(pending, index, stop)...)
			pending = nil
		}

		if hints := s.drainHints(turnID); len(hints) > 0 {
			result.Hints = hints
			if len(pending) > 0 {
				logger.Info("Turn steered, discarding remaining calls", "turn", turnID, "wave", index, "discarded", len(pending), "hints", len(hints))
				result.Outcomes = append(result.Outcomes, cancelAll(pending, index, "steered by user hint")...)
				pending = nil
			}
		}

		result.Final = len(pending) == 0
		out <- result
	}
}

func (s *Scheduler) discard(turnID string, index int, pending []domain.ToolCallRequest, reason string) domain.WaveResult {
	logger.Info("Discarding queued calls", "turn", turnID, "count", len(pending), "reason", reason)
	return domain.WaveResult{
		TurnID:   turnID,
		Index:    index,
		Outcomes: cancelAll(pending, index, reason),
		Final:    true,
	}
}

func cancelAll(reqs []domain.ToolCallRequest, wave int, reason string) []domain.ToolCallOutcome {
	out := make([]domain.ToolCallOutcome, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, domain.ToolCallOutcome{
			Request: r,
			Status:  domain.OutcomeCancelled,
			Error:   reason,
			Wave:    wave,
		})
	}
	return out
}

func (s *Scheduler) drainHints(turnID string) []domain.Hint {
	if s.hints == nil {
		return nil
	}
	return s.hints.DrainHints(turnID)
}

func (s *Scheduler) notify(turnID string, wave int, state domain.WaveState) {
	if s.observer != nil {
		s.observer.OnWaveState(turnID, wave, state)
	}
}

func (s *Scheduler) isPreApproved(req domain.ToolCallRequest) bool {
	return s.preApproved[req.ToolName] || s.preApproved[req.QualifiedName()]
}

func hookInput(req domain.ToolCallRequest) domain.HookInput {
	return domain.HookInput{
		ToolName:   req.ToolName,
		ServerName: req.ServerName,
		TurnID:     req.TurnID,
		Args:       req.ArgsJSON(),
	}
}

func joinMessages(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n")
}

func denialMessage(d domain.ToolCallDecision) string {
	if d.Rationale == "" {
		return fmt.Sprintf("denied by %s", d.Source)
	}
	return d.Rationale
}
