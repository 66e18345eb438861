package domain

import (
	"context"
)

//go:generate go tool counterfeiter -generate

//counterfeiter:generate -o ../../tests/mocks/domain/fake_confirmation_handler.go . ConfirmationHandler

// ConfirmationHandler is the interactive front-end that answers tool confirmations
type ConfirmationHandler interface {
	ConfirmTool(ctx context.Context, entry ConfirmationEntry) (ConfirmationAction, error)
}

//counterfeiter:generate -o ../../tests/mocks/domain/fake_policy_update_confirmer.go . PolicyUpdateConfirmer

// PolicyUpdateConfirmer is asked before new or changed policies take effect
type PolicyUpdateConfirmer interface {
	ConfirmPolicyUpdate(ctx context.Context, req PolicyUpdateConfirmationRequest) (bool, error)
}

// MessageRole is the author of a conversation message
type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleTool      MessageRole = "tool"
)

// Message is a transport-neutral conversation entry
type Message struct {
	Role       MessageRole
	Content    string
	ToolCalls  []ToolCallRequest
	ToolCallID string
}

// ModelRequest is one generation call
type ModelRequest struct {
	TurnID   string
	Messages []Message
	Tools    []ToolDefinition
}

// ModelResponse carries the assistant text and any requested tool calls
type ModelResponse struct {
	Content   string
	ToolCalls []ToolCallRequest
}

//counterfeiter:generate -o ../../tests/mocks/domain/fake_model_transport.go . ModelTransport

// ModelTransport supplies ordered tool call requests and consumes hints as input content
type ModelTransport interface {
	Generate(ctx context.Context, req ModelRequest) (*ModelResponse, error)
}

// WaveObserver is notified of wave state changes
type WaveObserver interface {
	OnWaveState(turnID string, wave int, state WaveState)
}

// HintSource hands queued steering hints to the scheduler at wave boundaries
type HintSource interface {
	DrainHints(turnID string) []Hint
}
