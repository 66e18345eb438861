package ui

import (
	"fmt"
	"io"
	"strings"

	domain "github.com/inference-gateway/toolgate/internal/domain"
	wordwrap "github.com/muesli/reflow/wordwrap"
)

// Reporter prints wave results as they arrive
type Reporter struct {
	out    io.Writer
	width  int
	styles *promptStyles
}

// NewReporter creates a reporter writing to out
func NewReporter(out io.Writer, width int) *Reporter {
	if width <= 0 {
		width = defaultWidth
	}
	return &Reporter{out: out, width: width, styles: newPromptStyles()}
}

// WaveResult prints one resolved wave
func (r *Reporter) WaveResult(res domain.WaveResult) {
	_, _ = fmt.Fprintln(r.out, r.RenderWaveResult(res))
}

// Hints prints the hints that ended a wave early
func (r *Reporter) Hints(hints []domain.Hint) {
	for _, h := range hints {
		_, _ = fmt.Fprintln(r.out, r.styles.warning.Render("hint: ")+wordwrap.String(h.Text, r.width-6))
	}
}

// RenderWaveResult renders a wave as one line per outcome
func (r *Reporter) RenderWaveResult(res domain.WaveResult) string {
	var b strings.Builder
	b.WriteString(r.styles.title.Render(fmt.Sprintf("wave %d", res.Index)))
	for _, o := range res.Outcomes {
		b.WriteString("\n  ")
		b.WriteString(r.RenderOutcome(o))
	}
	return b.String()
}

// RenderOutcome renders a single outcome with its status colour
func (r *Reporter) RenderOutcome(o domain.ToolCallOutcome) string {
	status := o.Status.String()
	switch o.Status {
	case domain.OutcomeSuccess:
		status = r.styles.success.Render(status)
	case domain.OutcomeDenied:
		status = r.styles.denied.Render(status)
	case domain.OutcomeCancelled:
		status = r.styles.cancelled.Render(status)
	default:
		status = r.styles.failure.Render(status)
	}

	line := fmt.Sprintf("%-9s %s", status, r.styles.toolName.Render(o.Request.QualifiedName()))
	if o.Error != "" {
		line += " " + r.styles.helpText.Render(truncate(o.Error, maxValueLength))
	}
	if o.SystemMessage != "" {
		line += "\n    " + r.styles.rationale.Render(wordwrap.String(o.SystemMessage, r.width-6))
	}
	return line
}
