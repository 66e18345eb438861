package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	domain "github.com/inference-gateway/toolgate/internal/domain"
	logger "github.com/inference-gateway/toolgate/internal/logger"
	wordwrap "github.com/muesli/reflow/wordwrap"
)

const (
	defaultWidth   = 80
	maxValueLength = 200
)

// Prompter is the terminal front-end. It answers tool confirmations and
// policy update reviews by reading one line per question from in.
type Prompter struct {
	out    io.Writer
	width  int
	styles *promptStyles

	// one question on screen at a time
	mu sync.Mutex

	in        *bufio.Reader
	startOnce sync.Once
	lines     chan string
	readErr   error

	idleMu sync.RWMutex
	idle   func(line string)
}

// NewPrompter creates a prompter reading answers from in and rendering to out
func NewPrompter(in io.Reader, out io.Writer, width int) *Prompter {
	if width <= 0 {
		width = defaultWidth
	}
	return &Prompter{
		out:    out,
		width:  width,
		styles: newPromptStyles(),
		in:     bufio.NewReader(in),
		lines:  make(chan string),
	}
}

// SetIdleHandler routes lines typed while no question is waiting to fn,
// e.g. steering hints. Input is read from the moment the handler is set.
func (p *Prompter) SetIdleHandler(fn func(line string)) {
	p.idleMu.Lock()
	p.idle = fn
	p.idleMu.Unlock()
	p.startOnce.Do(func() { go p.readLoop() })
}

// ConfirmTool implements domain.ConfirmationHandler
func (p *Prompter) ConfirmTool(ctx context.Context, entry domain.ConfirmationEntry) (domain.ConfirmationAction, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, _ = fmt.Fprintln(p.out, p.RenderConfirmation(entry))

	for {
		_, _ = fmt.Fprint(p.out, p.styles.options.Render("Approve? [y]es / [n]o / [c]ancel turn: "))

		line, err := p.readLine(ctx)
		if err != nil {
			return domain.ConfirmationDeny, err
		}

		if action, ok := parseConfirmation(line); ok {
			logger.Debug("Confirmation answered", "entry", entry.ID, "action", action)
			return action, nil
		}
		_, _ = fmt.Fprintln(p.out, p.styles.helpText.Render(fmt.Sprintf("Unrecognized answer %q", line)))
	}
}

// ConfirmPolicyUpdate implements domain.PolicyUpdateConfirmer. Anything but
// an explicit yes rejects the update.
func (p *Prompter) ConfirmPolicyUpdate(ctx context.Context, req domain.PolicyUpdateConfirmationRequest) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, _ = fmt.Fprintln(p.out, p.RenderPolicyUpdate(req))
	_, _ = fmt.Fprint(p.out, p.styles.options.Render("Load these policies? [y/N]: "))

	line, err := p.readLine(ctx)
	if err != nil {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// RenderConfirmation renders the box shown for a pending tool call
func (p *Prompter) RenderConfirmation(entry domain.ConfirmationEntry) string {
	var b strings.Builder
	inner := p.width - 4

	b.WriteString(p.styles.title.Render("Tool confirmation required"))
	b.WriteString("\n\n")
	b.WriteString(p.styles.toolName.Render(entry.Request.QualifiedName()))
	b.WriteString("\n")

	keys := make([]string, 0, len(entry.Request.Args))
	for k := range entry.Request.Args {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		value := truncate(fmt.Sprintf("%v", entry.Request.Args[k]), maxValueLength)
		b.WriteString("  ")
		b.WriteString(p.styles.argumentKey.Render(k + ":"))
		b.WriteString(" ")
		b.WriteString(p.styles.argumentValue.Render(wordwrap.String(value, inner-len(k)-4)))
		b.WriteString("\n")
	}

	if entry.Decision.Rationale != "" {
		b.WriteString("\n")
		b.WriteString(p.styles.rationale.Render(wordwrap.String(entry.Decision.Rationale, inner)))
		b.WriteString("\n")
	}
	if src := entry.Decision.Source.String(); src != "" {
		b.WriteString(p.styles.helpText.Render("decided by " + src))
	}

	return p.styles.container.Width(p.width).Render(strings.TrimRight(b.String(), "\n"))
}

// RenderPolicyUpdate renders the review box for a new or changed policy directory
func (p *Prompter) RenderPolicyUpdate(req domain.PolicyUpdateConfirmationRequest) string {
	var b strings.Builder
	inner := p.width - 4

	title := "New policies found"
	if req.Status == domain.IntegrityChanged {
		title = "Policies changed since last accepted"
	}
	b.WriteString(p.styles.warning.Render(title))
	b.WriteString("\n\n")

	fields := [][2]string{
		{"scope", string(req.Scope)},
		{"identifier", req.Identifier},
		{"directory", req.PolicyDir},
		{"files", fmt.Sprintf("%d", req.FileCount)},
		{"hash", truncate(req.Hash, 16)},
	}
	for _, f := range fields {
		if f[1] == "" {
			continue
		}
		b.WriteString(p.styles.argumentKey.Render(f[0] + ":"))
		b.WriteString(" ")
		b.WriteString(p.styles.argumentValue.Render(f[1]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(p.styles.helpText.Render(wordwrap.String("Rejecting keeps the previously accepted policies active. Review the files before accepting.", inner)))

	return p.styles.container.Width(p.width).Render(b.String())
}

// readLine returns the next input line or ctx's error. A single reader
// goroutine feeds lines so a cancelled question never swallows the answer
// meant for the next one.
func (p *Prompter) readLine(ctx context.Context) (string, error) {
	p.startOnce.Do(func() { go p.readLoop() })

	select {
	case line, ok := <-p.lines:
		if !ok {
			if p.readErr != nil {
				return "", p.readErr
			}
			return "", io.EOF
		}
		return line, nil
	case <-ctx.Done():
		_, _ = fmt.Fprintln(p.out)
		return "", ctx.Err()
	}
}

func (p *Prompter) readLoop() {
	defer close(p.lines)
	for {
		line, err := p.in.ReadString('\n')
		if line != "" || err == nil {
			p.dispatch(strings.TrimRight(line, "\r\n"))
		}
		if err != nil {
			if err != io.EOF {
				p.readErr = err
			}
			return
		}
	}
}

// dispatch hands line to a waiting question, or to the idle handler when
// nobody is asking
func (p *Prompter) dispatch(line string) {
	select {
	case p.lines <- line:
		return
	default:
	}

	p.idleMu.RLock()
	idle := p.idle
	p.idleMu.RUnlock()

	if idle != nil {
		if strings.TrimSpace(line) != "" {
			idle(line)
		}
		return
	}
	p.lines <- line
}

func parseConfirmation(answer string) (domain.ConfirmationAction, bool) {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", "a", "approve":
		return domain.ConfirmationApprove, true
	case "n", "no", "d", "deny":
		return domain.ConfirmationDeny, true
	case "c", "cancel":
		return domain.ConfirmationCancel, true
	default:
		return 0, false
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
