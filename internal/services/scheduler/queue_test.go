package scheduler

import (
	"testing"
	"time"

	domain "github.com/inference-gateway/toolgate/internal/domain"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

func queued(turn string, seq int) domain.ToolCallRequest {
	return domain.ToolCallRequest{ID: "c" + string(rune('0'+seq)), ToolName: "write_file", TurnID: turn, Sequence: seq}
}

func isClosed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func TestConfirmationQueue_OneActivePerTurn(t *testing.T) {
	q := NewConfirmationQueue()

	first := q.Enqueue(queued("t1", 1), domain.ToolCallDecision{Decision: domain.DecisionAskUser})
	second := q.Enqueue(queued("t1", 2), domain.ToolCallDecision{Decision: domain.DecisionAskUser})

	assert.True(t, isClosed(first.Active()))
	assert.False(t, isClosed(second.Active()), "later entries queue behind the active one")
	assert.Equal(t, 2, q.Len("t1"))

	active, ok := q.Active("t1")
	require.True(t, ok)
	assert.Equal(t, first.Entry.ID, active.ID)

	assert.ErrorIs(t, q.Resolve(second.Entry.ID, domain.ConfirmationResolution{Action: domain.ConfirmationApprove}), domain.ErrEntryNotFound)

	require.NoError(t, q.Resolve(first.Entry.ID, domain.ConfirmationResolution{Action: domain.ConfirmationDeny, Reason: "no"}))
	res := <-first.Done()
	assert.Equal(t, domain.ConfirmationDeny, res.Action)
	assert.Equal(t, "no", res.Reason)

	assert.True(t, isClosed(second.Active()))
	active, ok = q.Active("t1")
	require.True(t, ok)
	assert.Equal(t, second.Entry.ID, active.ID)

	require.NoError(t, q.Resolve(second.Entry.ID, domain.ConfirmationResolution{Action: domain.ConfirmationApprove}))
	assert.ErrorIs(t, q.Resolve(second.Entry.ID, domain.ConfirmationResolution{}), domain.ErrEntryNotFound)
	assert.Equal(t, 0, q.Len("t1"))
}

func TestConfirmationQueue_TurnsAreIndependent(t *testing.T) {
	q := NewConfirmationQueue()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	q.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	b := q.Enqueue(queued("b", 1), domain.ToolCallDecision{})
	a := q.Enqueue(queued("a", 1), domain.ToolCallDecision{})

	assert.True(t, isClosed(a.Active()))
	assert.True(t, isClosed(b.Active()))

	pending := q.Pending()
	require.Len(t, pending, 2)
	assert.Equal(t, "b", pending[0].TurnID)
	assert.Equal(t, "a", pending[1].TurnID)
}

func TestConfirmationQueue_CancelTurn(t *testing.T) {
	q := NewConfirmationQueue()
	first := q.Enqueue(queued("t1", 1), domain.ToolCallDecision{})
	second := q.Enqueue(queued("t1", 2), domain.ToolCallDecision{})
	other := q.Enqueue(queued("t2", 1), domain.ToolCallDecision{})

	assert.Equal(t, 2, q.CancelTurn("t1", "aborted"))
	assert.Equal(t, 0, q.CancelTurn("t1", "aborted"))

	for _, tk := range []*Ticket{first, second} {
		res := <-tk.Done()
		assert.Equal(t, domain.ConfirmationCancel, res.Action)
		assert.Equal(t, "aborted", res.Reason)
	}

	_, ok := q.Active("t2")
	assert.True(t, ok)
	assert.ErrorIs(t, q.Resolve(first.Entry.ID, domain.ConfirmationResolution{}), domain.ErrEntryNotFound)
	require.NoError(t, q.Resolve(other.Entry.ID, domain.ConfirmationResolution{Action: domain.ConfirmationApprove}))
}

func TestConfirmationQueue_WithdrawActivatesNext(t *testing.T) {
	q := NewConfirmationQueue()
	first := q.Enqueue(queued("t1", 1), domain.ToolCallDecision{})
	second := q.Enqueue(queued("t1", 2), domain.ToolCallDecision{})

	q.withdraw(first, domain.ConfirmationResolution{Action: domain.ConfirmationDeny, Reason: "timed out"})

	assert.Equal(t, "timed out", (<-first.Done()).Reason)
	assert.True(t, isClosed(second.Active()))
	assert.Equal(t, 1, q.Len("t1"))
}
