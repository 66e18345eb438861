package domain

import (
	"context"
	"encoding/json"
	"time"
)

// HookEvent names a lifecycle event hooks can subscribe to
type HookEvent string

const (
	HookBeforeTool HookEvent = "BeforeTool"
	HookAfterTool  HookEvent = "AfterTool"
)

// HookSource records who owns a registration
type HookSource string

const (
	HookSourceConfig  HookSource = "config"
	HookSourceRuntime HookSource = "runtime"
)

// HookDecision is a hook's verdict on a BeforeTool event
type HookDecision string

const (
	HookDecisionNone  HookDecision = ""
	HookDecisionAllow HookDecision = "allow"
	HookDecisionDeny  HookDecision = "deny"
)

// HookInput is the payload handed to a hook action
type HookInput struct {
	Event      HookEvent       `json:"event"`
	ToolName   string          `json:"tool_name"`
	ServerName string          `json:"server_name,omitempty"`
	TurnID     string          `json:"turn_id,omitempty"`
	Args       json.RawMessage `json:"args"`
	Output     string          `json:"output,omitempty"`
	Status     string          `json:"status,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// HookOutput is what a hook action may return
type HookOutput struct {
	Decision      HookDecision `json:"decision,omitempty"`
	Reason        string       `json:"reason,omitempty"`
	SystemMessage string       `json:"systemMessage,omitempty"`
}

// HookAction is a tagged variant: RuntimeAction or ProcessAction
type HookAction interface {
	hookAction()
	Describe() string
}

// HookCallback is an in-process hook
type HookCallback func(ctx context.Context, input HookInput) (*HookOutput, error)

// RuntimeAction runs an in-process callback
type RuntimeAction struct {
	Name     string
	Callback HookCallback
}

func (RuntimeAction) hookAction() {}

// Describe returns a short label for listings
func (a RuntimeAction) Describe() string {
	if a.Name == "" {
		return "runtime callback"
	}
	return "runtime:" + a.Name
}

// ProcessAction runs an external command
type ProcessAction struct {
	Command string
	Args    []string
	Timeout time.Duration
}

func (ProcessAction) hookAction() {}

// Describe returns a short label for listings
func (a ProcessAction) Describe() string {
	return "process:" + a.Command
}

// HookRegistration binds an action to an event and matcher
type HookRegistration struct {
	ID       string
	Event    HookEvent
	Matcher  string
	Action   HookAction
	Source   HookSource
	Sequence uint64
}

// BeforeToolResult aggregates the BeforeTool hooks for one call
type BeforeToolResult struct {
	Decision      HookDecision
	Reason        string
	SystemMessage string
	HookID        string
}

// Denied reports whether a hook vetoed the call
func (r BeforeToolResult) Denied() bool {
	return r.Decision == HookDecisionDeny
}
