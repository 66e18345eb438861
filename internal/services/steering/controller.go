package steering

import (
	"errors"
	"strings"
	"sync"
	"time"

	config "github.com/inference-gateway/toolgate/config"
	domain "github.com/inference-gateway/toolgate/internal/domain"
	logger "github.com/inference-gateway/toolgate/internal/logger"
)

// ErrEmptyHint is returned for blank hints
var ErrEmptyHint = errors.New("hint text is empty")

// PendingCanceller cancels the pending confirmation of a turn
type PendingCanceller interface {
	CancelTurn(turnID, reason string) int
}

// Controller queues user hints against in-flight turns. Hints for an active
// turn are drained by the scheduler at wave boundaries; hints for anything
// else are carried over to the next user message. No hint is ever dropped.
type Controller struct {
	mu        sync.Mutex
	active    map[string]bool
	queued    map[string][]domain.Hint
	carryover []domain.Hint
	latest    string

	pending   PendingCanceller
	interrupt bool
	now       func() time.Time
}

// NewController creates a steering controller. pending may be nil.
func NewController(pending PendingCanceller, cfg config.SteeringConfig) *Controller {
	return &Controller{
		active:    make(map[string]bool),
		queued:    make(map[string][]domain.Hint),
		pending:   pending,
		interrupt: cfg.InterruptPendingConfirmation,
		now:       time.Now,
	}
}

// BeginTurn marks a turn as in flight
func (c *Controller) BeginTurn(turnID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active[turnID] = true
	c.latest = turnID
}

// EndTurn marks a turn as finished. Hints still queued for it are carried over.
func (c *Controller) EndTurn(turnID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.active, turnID)
	if c.latest == turnID {
		c.latest = ""
	}
	if left := c.queued[turnID]; len(left) > 0 {
		c.carryover = append(c.carryover, left...)
		delete(c.queued, turnID)
		logger.Debug("Carrying hints over to the next message", "turn", turnID, "hints", len(left))
	}
}

// ActiveTurn returns the most recently started turn still in flight, or ""
func (c *Controller) ActiveTurn() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.latest
}

// AddUserHint queues text against turnID. Hints for a turn that is not in
// flight are carried over to the next user message.
func (c *Controller) AddUserHint(turnID, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyHint
	}

	hint := domain.Hint{TurnID: turnID, Text: text, ReceivedAt: c.now()}

	c.mu.Lock()
	active := c.active[turnID]
	if active {
		c.queued[turnID] = append(c.queued[turnID], hint)
	} else {
		c.carryover = append(c.carryover, hint)
	}
	c.mu.Unlock()

	if !active {
		logger.Info("No turn in flight, hint carried over", "turn", turnID)
		return nil
	}

	logger.Info("Hint queued for in-flight turn", "turn", turnID)

	if c.interrupt && c.pending != nil {
		if n := c.pending.CancelTurn(turnID, "interrupted by user hint"); n > 0 {
			logger.Info("Pending confirmation interrupted by hint", "turn", turnID)
		}
	}
	return nil
}

// DrainHints returns and clears the hints queued for a turn
func (c *Controller) DrainHints(turnID string) []domain.Hint {
	c.mu.Lock()
	defer c.mu.Unlock()

	hints := c.queued[turnID]
	delete(c.queued, turnID)
	return hints
}

// TakeCarryover returns and clears the hints waiting for the next user message
func (c *Controller) TakeCarryover() []domain.Hint {
	c.mu.Lock()
	defer c.mu.Unlock()

	hints := c.carryover
	c.carryover = nil
	return hints
}

// FormatHints renders hints as model input
func FormatHints(hints []domain.Hint) string {
	if len(hints) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("The user sent guidance while you were working. Acknowledge it and adjust your plan before calling any more tools:\n")
	for _, h := range hints {
		b.WriteString("- ")
		b.WriteString(h.Text)
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}
