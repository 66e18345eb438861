package scheduler

import (
	"sort"
	"sync"
	"time"

	uuid "github.com/google/uuid"
	domain "github.com/inference-gateway/toolgate/internal/domain"
	logger "github.com/inference-gateway/toolgate/internal/logger"
)

// Ticket is the scheduler's handle on a queued confirmation entry
type Ticket struct {
	Entry domain.ConfirmationEntry

	active chan struct{}
	done   chan domain.ConfirmationResolution
	once   sync.Once
}

// Active is closed once the entry reaches the head of its turn's queue
func (t *Ticket) Active() <-chan struct{} { return t.active }

// Done delivers the resolution exactly once
func (t *Ticket) Done() <-chan domain.ConfirmationResolution { return t.done }

func (t *Ticket) resolve(res domain.ConfirmationResolution) bool {
	resolved := false
	t.once.Do(func() {
		t.done <- res
		resolved = true
	})
	return resolved
}

// ConfirmationQueue keeps a FIFO of confirmation entries per turn. Only the
// head of each turn's queue is active and visible to the front-end; later
// entries wait behind it.
type ConfirmationQueue struct {
	mu    sync.Mutex
	turns map[string][]*Ticket
	now   func() time.Time
}

// NewConfirmationQueue creates an empty queue
func NewConfirmationQueue() *ConfirmationQueue {
	return &ConfirmationQueue{
		turns: make(map[string][]*Ticket),
		now:   time.Now,
	}
}

// Enqueue appends an entry for the request's turn
func (q *ConfirmationQueue) Enqueue(req domain.ToolCallRequest, decision domain.ToolCallDecision) *Ticket {
	q.mu.Lock()
	defer q.mu.Unlock()

	t := &Ticket{
		Entry: domain.ConfirmationEntry{
			ID:        uuid.New().String(),
			TurnID:    req.TurnID,
			Request:   req,
			Decision:  decision,
			CreatedAt: q.now(),
		},
		active: make(chan struct{}),
		done:   make(chan domain.ConfirmationResolution, 1),
	}

	q.turns[req.TurnID] = append(q.turns[req.TurnID], t)
	if len(q.turns[req.TurnID]) == 1 {
		close(t.active)
	} else {
		logger.Debug("Confirmation queued behind active entry", "turn", req.TurnID, "entry", t.Entry.ID, "depth", len(q.turns[req.TurnID]))
	}
	return t
}

// Active returns the head entry of a turn
func (q *ConfirmationQueue) Active(turnID string) (domain.ConfirmationEntry, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	entries := q.turns[turnID]
	if len(entries) == 0 {
		return domain.ConfirmationEntry{}, false
	}
	return entries[0].Entry, true
}

// Pending returns the active entry of every turn, oldest first
func (q *ConfirmationQueue) Pending() []domain.ConfirmationEntry {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]domain.ConfirmationEntry, 0, len(q.turns))
	for _, entries := range q.turns {
		if len(entries) > 0 {
			out = append(out, entries[0].Entry)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// Len returns the number of entries queued for a turn, active one included
func (q *ConfirmationQueue) Len(turnID string) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.turns[turnID])
}

// Resolve answers the active entry with id. Queued entries that are not yet
// active cannot be resolved.
func (q *ConfirmationQueue) Resolve(entryID string, res domain.ConfirmationResolution) error {
	q.mu.Lock()
	var target *Ticket
	for _, entries := range q.turns {
		if len(entries) > 0 && entries[0].Entry.ID == entryID {
			target = entries[0]
			break
		}
	}
	if target != nil {
		q.removeLocked(target)
	}
	q.mu.Unlock()

	if target == nil || !target.resolve(res) {
		return domain.ErrEntryNotFound
	}

	logger.Info("Confirmation resolved", "entry", entryID, "turn", target.Entry.TurnID, "tool", target.Entry.Request.QualifiedName(), "action", res.Action)
	return nil
}

// CancelTurn resolves every entry of a turn as cancelled and returns how many
// were pending
func (q *ConfirmationQueue) CancelTurn(turnID, reason string) int {
	q.mu.Lock()
	entries := q.turns[turnID]
	delete(q.turns, turnID)
	q.mu.Unlock()

	for _, t := range entries {
		t.resolve(domain.ConfirmationResolution{Action: domain.ConfirmationCancel, Reason: reason})
	}
	return len(entries)
}

// withdraw removes a ticket without resolving it through the front-end
func (q *ConfirmationQueue) withdraw(t *Ticket, res domain.ConfirmationResolution) {
	q.mu.Lock()
	q.removeLocked(t)
	q.mu.Unlock()
	t.resolve(res)
}

func (q *ConfirmationQueue) removeLocked(t *Ticket) {
	entries := q.turns[t.Entry.TurnID]
	for i, e := range entries {
		if e != t {
			continue
		}
		entries = append(entries[:i:i], entries[i+1:]...)
		if i == 0 && len(entries) > 0 {
			close(entries[0].active)
		}
		break
	}
	if len(entries) == 0 {
		delete(q.turns, t.Entry.TurnID)
		return
	}
	q.turns[t.Entry.TurnID] = entries
}
