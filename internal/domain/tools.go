package domain

import (
	"context"
	"encoding/json"
	"time"
)

// Effect is the static side-effect tag a tool executor declares
type Effect int

const (
	EffectReadOnly Effect = iota
	EffectMutating
)

func (e Effect) String() string {
	if e == EffectReadOnly {
		return "read-only"
	}
	return "mutating"
}

// ToolCallRequest is produced by the model response parser and never mutated afterwards
type ToolCallRequest struct {
	ID         string         `json:"id"`
	ToolName   string         `json:"tool"`
	ServerName string         `json:"server,omitempty"`
	Args       map[string]any `json:"args,omitempty"`
	TurnID     string         `json:"turn_id"`
	Sequence   int            `json:"sequence"`
}

// QualifiedName returns server/tool for MCP tools and the bare name otherwise
func (r ToolCallRequest) QualifiedName() string {
	if r.ServerName != "" {
		return r.ServerName + "/" + r.ToolName
	}
	return r.ToolName
}

// ArgsJSON renders the arguments as compact JSON
func (r ToolCallRequest) ArgsJSON() json.RawMessage {
	if len(r.Args) == 0 {
		return json.RawMessage("{}")
	}
	data, err := json.Marshal(r.Args)
	if err != nil {
		return json.RawMessage("{}")
	}
	return data
}

// ToolResult is what an executor hands back on success
type ToolResult struct {
	Output string
	Data   any
}

//counterfeiter:generate -o ../../tests/mocks/domain/fake_tool_executor.go . ToolExecutor

// ToolExecutor performs the actual effect of a tool call
type ToolExecutor interface {
	Name() string
	Effect() Effect
	Execute(ctx context.Context, req ToolCallRequest) (*ToolResult, error)
}

// ToolRegistry resolves executors by tool name
type ToolRegistry interface {
	Get(name string) (ToolExecutor, bool)
	EffectOf(name string) Effect
	List() []string
}

// OutcomeStatus is the terminal state of one tool call
type OutcomeStatus int

const (
	OutcomeSuccess OutcomeStatus = iota
	OutcomeFailed
	OutcomeDenied
	OutcomeCancelled
)

func (s OutcomeStatus) String() string {
	switch s {
	case OutcomeSuccess:
		return "SUCCESS"
	case OutcomeFailed:
		return "FAILED"
	case OutcomeDenied:
		return "DENIED"
	case OutcomeCancelled:
		return "CANCELLED"
	default:
		return "UNKNOWN"
	}
}

// ToolCallOutcome is the terminal result of a request within a wave
type ToolCallOutcome struct {
	Request       ToolCallRequest
	Decision      ToolCallDecision
	Status        OutcomeStatus
	Output        string
	Error         string
	SystemMessage string
	Wave          int
	Duration      time.Duration
}

// Succeeded is a shorthand used by callers and tests
func (o ToolCallOutcome) Succeeded() bool {
	return o.Status == OutcomeSuccess
}

// ToolDefinition describes a tool to the model
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// DescribedTool is implemented by executors that can describe themselves to the model
type DescribedTool interface {
	Definition() ToolDefinition
}
