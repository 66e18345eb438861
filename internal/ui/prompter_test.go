package ui

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	domain "github.com/inference-gateway/toolgate/internal/domain"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

func confirmationEntry() domain.ConfirmationEntry {
	return domain.ConfirmationEntry{
		ID:     "e1",
		TurnID: "t1",
		Request: domain.ToolCallRequest{
			ToolName: "write_file",
			Args:     map[string]any{"file_path": "main.go", "content": "package main"},
		},
		Decision: domain.ToolCallDecision{
			Decision:  domain.DecisionAskUser,
			Source:    domain.DecisionSource{Kind: domain.SourceRule, Name: "write_file"},
			Rationale: "write_file requires confirmation",
		},
	}
}

func TestPrompter_ConfirmTool(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  domain.ConfirmationAction
	}{
		{name: "yes", input: "y\n", want: domain.ConfirmationApprove},
		{name: "no", input: "no\n", want: domain.ConfirmationDeny},
		{name: "cancel", input: "c\n", want: domain.ConfirmationCancel},
		{name: "reprompts on garbage", input: "maybe\nYES\n", want: domain.ConfirmationApprove},
		{name: "no trailing newline", input: "n", want: domain.ConfirmationDeny},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tt.input), &out, 60)

			action, err := p.ConfirmTool(context.Background(), confirmationEntry())
			require.NoError(t, err)
			assert.Equal(t, tt.want, action)
			assert.Contains(t, out.String(), "write_file")
			assert.Contains(t, out.String(), "main.go")
		})
	}
}

func TestPrompter_ConfirmTool_EOF(t *testing.T) {
	p := NewPrompter(strings.NewReader(""), io.Discard, 60)

	action, err := p.ConfirmTool(context.Background(), confirmationEntry())
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, domain.ConfirmationDeny, action)
}

func TestPrompter_ConfirmTool_Cancelled(t *testing.T) {
	reader, writer := io.Pipe()
	defer func() { _ = writer.Close() }()

	p := NewPrompter(reader, io.Discard, 60)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := p.ConfirmTool(ctx, confirmationEntry())
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	go func() { _, _ = writer.Write([]byte("y\n")) }()
	action, err := p.ConfirmTool(context.Background(), confirmationEntry())
	require.NoError(t, err)
	assert.Equal(t, domain.ConfirmationApprove, action, "the answer goes to the next question")
}

func TestPrompter_ConfirmPolicyUpdate(t *testing.T) {
	req := domain.PolicyUpdateConfirmationRequest{
		Scope:      domain.ScopeWorkspace,
		Identifier: "/work/project",
		PolicyDir:  "/work/project/.toolgate/policies",
		Status:     domain.IntegrityChanged,
		Hash:       "0123456789abcdef0123456789abcdef",
		FileCount:  2,
	}

	var out bytes.Buffer
	ok, err := NewPrompter(strings.NewReader("yes\n"), &out, 70).ConfirmPolicyUpdate(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, out.String(), "Policies changed since last accepted")
	assert.Contains(t, out.String(), "0123456789abcdef")
	assert.NotContains(t, out.String(), "0123456789abcdef0")

	ok, err = NewPrompter(strings.NewReader("\n"), io.Discard, 70).ConfirmPolicyUpdate(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, ok, "empty answer rejects")
}

func TestParseConfirmation(t *testing.T) {
	for answer, want := range map[string]domain.ConfirmationAction{
		"y": domain.ConfirmationApprove, " Approve ": domain.ConfirmationApprove,
		"d": domain.ConfirmationDeny, "DENY": domain.ConfirmationDeny,
		"cancel": domain.ConfirmationCancel,
	} {
		got, ok := parseConfirmation(answer)
		assert.True(t, ok, answer)
		assert.Equal(t, want, got, answer)
	}

	_, ok := parseConfirmation("")
	assert.False(t, ok)
}

func TestReporter_RenderWaveResult(t *testing.T) {
	r := NewReporter(io.Discard, 80)
	rendered := r.RenderWaveResult(domain.WaveResult{
		Index: 2,
		Outcomes: []domain.ToolCallOutcome{
			{Request: domain.ToolCallRequest{ToolName: "read_file"}, Status: domain.OutcomeSuccess},
			{Request: domain.ToolCallRequest{ToolName: "query", ServerName: "db"}, Status: domain.OutcomeDenied, Error: "denied by policy"},
		},
	})

	assert.Contains(t, rendered, "wave 2")
	assert.Contains(t, rendered, "SUCCESS")
	assert.Contains(t, rendered, "db/query")
	assert.Contains(t, rendered, "denied by policy")
}

func TestPrompter_IdleLinesBecomeHints(t *testing.T) {
	reader, writer := io.Pipe()
	defer func() { _ = writer.Close() }()

	hints := make(chan string, 2)
	p := NewPrompter(reader, io.Discard, 60)
	p.SetIdleHandler(func(line string) { hints <- line })

	_, err := writer.Write([]byte("use tabs\n\n"))
	require.NoError(t, err)

	select {
	case h := <-hints:
		assert.Equal(t, "use tabs", h)
	case <-time.After(2 * time.Second):
		t.Fatal("hint not delivered")
	}
	assert.Empty(t, hints, "blank lines are dropped")
}
