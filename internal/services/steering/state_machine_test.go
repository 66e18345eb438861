package steering

import (
	"testing"

	domain "github.com/inference-gateway/toolgate/internal/domain"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

func TestTurnStateMachine_HappyPath(t *testing.T) {
	sm := NewTurnStateMachine()
	tc := &TurnContext{TurnID: "t1", MaxIterations: 5}

	require.NoError(t, sm.Transition(tc, domain.TurnGenerating))

	tc.ToolCalls = []domain.ToolCallRequest{{ToolName: "write_file"}}
	require.NoError(t, sm.Transition(tc, domain.TurnExecutingTools))
	require.NoError(t, sm.Transition(tc, domain.TurnAwaitingToolConfirmation))
	require.NoError(t, sm.Transition(tc, domain.TurnExecutingTools))

	tc.Iterations = 1
	require.NoError(t, sm.Transition(tc, domain.TurnGenerating))

	tc.ToolCalls = nil
	require.NoError(t, sm.Transition(tc, domain.TurnIdle))
	assert.Equal(t, domain.TurnIdle, sm.Current())
	assert.Equal(t, domain.TurnGenerating, sm.Previous())
}

func TestTurnStateMachine_Guards(t *testing.T) {
	tests := []struct {
		name   string
		from   []domain.TurnState
		tc     TurnContext
		target domain.TurnState
		ok     bool
	}{
		{
			name:   "steered needs hints",
			from:   []domain.TurnState{domain.TurnGenerating},
			target: domain.TurnSteered,
			ok:     false,
		},
		{
			name:   "steered with hints",
			from:   []domain.TurnState{domain.TurnGenerating},
			tc:     TurnContext{PendingHints: []domain.Hint{{Text: "x"}}},
			target: domain.TurnSteered,
			ok:     true,
		},
		{
			name:   "tools never run while hints are pending",
			from:   []domain.TurnState{domain.TurnGenerating},
			tc:     TurnContext{ToolCalls: []domain.ToolCallRequest{{}}, PendingHints: []domain.Hint{{Text: "x"}}},
			target: domain.TurnExecutingTools,
			ok:     false,
		},
		{
			name:   "regenerate blocked at iteration limit",
			from:   []domain.TurnState{domain.TurnGenerating, domain.TurnExecutingTools},
			tc:     TurnContext{ToolCalls: []domain.ToolCallRequest{{}}, Iterations: 2, MaxIterations: 2},
			target: domain.TurnGenerating,
			ok:     false,
		},
		{
			name:   "idle at iteration limit",
			from:   []domain.TurnState{domain.TurnGenerating, domain.TurnExecutingTools},
			tc:     TurnContext{ToolCalls: []domain.ToolCallRequest{{}}, Iterations: 2, MaxIterations: 2},
			target: domain.TurnIdle,
			ok:     true,
		},
		{
			name:   "confirmation only while executing",
			from:   []domain.TurnState{domain.TurnGenerating},
			target: domain.TurnAwaitingToolConfirmation,
			ok:     false,
		},
		{
			name:   "cancel from anywhere",
			from:   []domain.TurnState{domain.TurnGenerating, domain.TurnSteered},
			target: domain.TurnCancelled,
			ok:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := NewTurnStateMachine()
			walk := &TurnContext{ToolCalls: []domain.ToolCallRequest{{}}, PendingHints: []domain.Hint{{Text: "x"}}}
			for _, s := range tt.from {
				if s == domain.TurnSteered {
					require.NoError(t, sm.Transition(walk, s))
					continue
				}
				if s == domain.TurnExecutingTools {
					require.NoError(t, sm.Transition(&TurnContext{ToolCalls: []domain.ToolCallRequest{{}}}, s))
					continue
				}
				require.NoError(t, sm.Transition(&TurnContext{}, s))
			}

			tc := tt.tc
			assert.Equal(t, tt.ok, sm.CanTransition(&tc, tt.target))
			err := sm.Transition(&tc, tt.target)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestTurnStateMachine_Reset(t *testing.T) {
	sm := NewTurnStateMachine()
	require.NoError(t, sm.Transition(&TurnContext{}, domain.TurnGenerating))
	require.NoError(t, sm.Transition(&TurnContext{}, domain.TurnError))

	sm.Reset()
	assert.Equal(t, domain.TurnIdle, sm.Current())
	assert.Equal(t, domain.TurnError, sm.Previous())
}
