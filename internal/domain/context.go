package domain

import "context"

// ContextKey is the type used for context keys in the application
type ContextKey string

// ToolApprovedKey is set when a tool execution was explicitly approved by the user
const ToolApprovedKey ContextKey = "tool_approved"

// WithToolApproved marks the context of an approved execution
func WithToolApproved(ctx context.Context) context.Context {
	return context.WithValue(ctx, ToolApprovedKey, true)
}

// IsToolApproved reports whether the execution was approved by the user
func IsToolApproved(ctx context.Context) bool {
	approved, ok := ctx.Value(ToolApprovedKey).(bool)
	return ok && approved
}
