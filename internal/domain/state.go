package domain

import (
	"time"
)

// WaveState is the lifecycle of a single wave
type WaveState int

const (
	WavePending WaveState = iota
	WaveEvaluating
	WaveExecuting
	WaveAwaitingConfirmation
	WaveResolved
)

func (s WaveState) String() string {
	switch s {
	case WavePending:
		return "Pending"
	case WaveEvaluating:
		return "Evaluating"
	case WaveExecuting:
		return "Executing"
	case WaveAwaitingConfirmation:
		return "AwaitingConfirmation"
	case WaveResolved:
		return "Resolved"
	default:
		return "Unknown"
	}
}

// Wave is an ordered set of requests executed together. A wave is either a
// parallel batch of read-only ALLOW calls or a single call.
type Wave struct {
	Index    int
	Requests []ToolCallRequest
	Parallel bool
}

// WaveResult is reported once every member of a wave is terminal
type WaveResult struct {
	TurnID   string
	Index    int
	Outcomes []ToolCallOutcome
	// Hints queued while the wave was in flight; when non-empty the rest of
	// the turn was discarded so the model sees them first
	Hints []Hint
	// Final is set on the last result of a turn
	Final bool
}

// ConfirmationAction is a front-end's answer to a confirmation entry
type ConfirmationAction int

const (
	ConfirmationApprove ConfirmationAction = iota
	ConfirmationDeny
	ConfirmationCancel
)

func (a ConfirmationAction) String() string {
	switch a {
	case ConfirmationApprove:
		return "approve"
	case ConfirmationDeny:
		return "deny"
	case ConfirmationCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// ConfirmationEntry is the single pending request at the head of a turn's queue
type ConfirmationEntry struct {
	ID        string
	TurnID    string
	Request   ToolCallRequest
	Decision  ToolCallDecision
	CreatedAt time.Time
}

// ConfirmationResolution records how an entry was resolved
type ConfirmationResolution struct {
	Action ConfirmationAction
	Reason string
}

// Hint is a user instruction injected into an in-flight turn
type Hint struct {
	TurnID     string
	Text       string
	ReceivedAt time.Time
}

// TurnState is the state of the agent turn loop
type TurnState int

const (
	TurnIdle TurnState = iota
	TurnGenerating
	TurnExecutingTools
	TurnAwaitingToolConfirmation
	TurnSteered
	TurnCancelled
	TurnError
)

func (s TurnState) String() string {
	switch s {
	case TurnIdle:
		return "Idle"
	case TurnGenerating:
		return "Generating"
	case TurnExecutingTools:
		return "ExecutingTools"
	case TurnAwaitingToolConfirmation:
		return "AwaitingToolConfirmation"
	case TurnSteered:
		return "Steered"
	case TurnCancelled:
		return "Cancelled"
	case TurnError:
		return "Error"
	default:
		return "Unknown"
	}
}
