package steering

import (
	"fmt"
	"sync"

	domain "github.com/inference-gateway/toolgate/internal/domain"
	logger "github.com/inference-gateway/toolgate/internal/logger"
)

// TurnContext is the data transition guards look at
type TurnContext struct {
	TurnID        string
	ToolCalls     []domain.ToolCallRequest
	PendingHints  []domain.Hint
	Iterations    int
	MaxIterations int
}

// StateGuard decides whether a transition may fire
type StateGuard func(tc *TurnContext) bool

type stateTransition struct {
	to    domain.TurnState
	guard StateGuard
}

// TurnStateMachine is the explicit state machine of one agent turn loop
type TurnStateMachine struct {
	mu          sync.RWMutex
	current     domain.TurnState
	previous    domain.TurnState
	transitions map[domain.TurnState][]stateTransition
}

// NewTurnStateMachine creates a state machine in Idle
func NewTurnStateMachine() *TurnStateMachine {
	sm := &TurnStateMachine{
		current:     domain.TurnIdle,
		transitions: make(map[domain.TurnState][]stateTransition),
	}
	sm.registerTransitions()
	return sm
}

func (sm *TurnStateMachine) registerTransitions() {
	sm.add(domain.TurnIdle, domain.TurnGenerating, nil)

	sm.add(domain.TurnGenerating, domain.TurnSteered, hasHints)
	sm.add(domain.TurnGenerating, domain.TurnExecutingTools, func(tc *TurnContext) bool {
		return len(tc.ToolCalls) > 0 && !hasHints(tc)
	})
	sm.add(domain.TurnGenerating, domain.TurnIdle, func(tc *TurnContext) bool {
		return len(tc.ToolCalls) == 0 && !hasHints(tc)
	})

	sm.add(domain.TurnExecutingTools, domain.TurnAwaitingToolConfirmation, nil)
	sm.add(domain.TurnAwaitingToolConfirmation, domain.TurnExecutingTools, nil)

	for _, from := range []domain.TurnState{domain.TurnExecutingTools, domain.TurnAwaitingToolConfirmation} {
		sm.add(from, domain.TurnSteered, hasHints)
		sm.add(from, domain.TurnGenerating, func(tc *TurnContext) bool {
			return !hasHints(tc) && !maxIterationsReached(tc)
		})
		sm.add(from, domain.TurnIdle, func(tc *TurnContext) bool {
			return !hasHints(tc) && maxIterationsReached(tc)
		})
	}

	sm.add(domain.TurnSteered, domain.TurnGenerating, nil)

	sm.add(domain.TurnCancelled, domain.TurnIdle, nil)
	sm.add(domain.TurnError, domain.TurnIdle, nil)

	for state := domain.TurnIdle; state <= domain.TurnError; state++ {
		if state != domain.TurnCancelled {
			sm.add(state, domain.TurnCancelled, nil)
		}
		if state != domain.TurnError {
			sm.add(state, domain.TurnError, nil)
		}
	}
}

func (sm *TurnStateMachine) add(from, to domain.TurnState, guard StateGuard) {
	sm.transitions[from] = append(sm.transitions[from], stateTransition{to: to, guard: guard})
}

// Transition moves to target if a transition exists and its guard passes
func (sm *TurnStateMachine) Transition(tc *TurnContext, target domain.TurnState) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	t := sm.find(sm.current, target)
	if t == nil {
		return fmt.Errorf("invalid transition from %s to %s", sm.current, target)
	}
	if t.guard != nil && !t.guard(tc) {
		return fmt.Errorf("guard failed for transition %s -> %s", sm.current, target)
	}

	sm.previous = sm.current
	sm.current = target

	logger.Debug("Turn state changed", "turn", tc.TurnID, "from", sm.previous, "to", sm.current)
	return nil
}

// CanTransition reports whether Transition would succeed
func (sm *TurnStateMachine) CanTransition(tc *TurnContext, target domain.TurnState) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	t := sm.find(sm.current, target)
	return t != nil && (t.guard == nil || t.guard(tc))
}

func (sm *TurnStateMachine) find(from, to domain.TurnState) *stateTransition {
	for _, t := range sm.transitions[from] {
		if t.to == to {
			return &t
		}
	}
	return nil
}

// Current returns the current state
func (sm *TurnStateMachine) Current() domain.TurnState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.current
}

// Previous returns the state before the last transition
func (sm *TurnStateMachine) Previous() domain.TurnState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.previous
}

// Reset forces the machine back to Idle
func (sm *TurnStateMachine) Reset() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.previous = sm.current
	sm.current = domain.TurnIdle
}

func hasHints(tc *TurnContext) bool {
	return len(tc.PendingHints) > 0
}

func maxIterationsReached(tc *TurnContext) bool {
	return tc.MaxIterations > 0 && tc.Iterations >= tc.MaxIterations
}
