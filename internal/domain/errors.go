package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEntryNotFound is returned when resolving a confirmation entry that is not pending
	ErrEntryNotFound = errors.New("confirmation entry not found")

	// ErrIntegrityBlocked is returned when new or changed policies were not accepted
	ErrIntegrityBlocked = errors.New("policy update not accepted")

	// ErrUnknownTool is returned by the tool registry for unregistered tools
	ErrUnknownTool = errors.New("unknown tool")
)

// PolicyLoadError reports a malformed rule file. The previous rule set stays active.
type PolicyLoadError struct {
	Source string
	// Index is the zero-based rule position, or -1 for file-level errors
	Index  int
	Err    error
}

func (e *PolicyLoadError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("failed to load policy %s (rule %d): %v", e.Source, e.Index+1, e.Err)
	}
	return fmt.Sprintf("failed to load policy %s: %v", e.Source, e.Err)
}

func (e *PolicyLoadError) Unwrap() error { return e.Err }

// IntegrityCheckError reports a hashing or read failure. Policies are not loaded.
type IntegrityCheckError struct {
	Scope      PolicyScope
	Identifier string
	PolicyDir  string
	Err        error
}

func (e *IntegrityCheckError) Error() string {
	return fmt.Sprintf("integrity check failed for %s policies (%s) in %s: %v", e.Scope, e.Identifier, e.PolicyDir, e.Err)
}

func (e *IntegrityCheckError) Unwrap() error { return e.Err }

// ToolExecutionError is recorded on the failing call's outcome only
type ToolExecutionError struct {
	ToolName string
	CallID   string
	Err      error
}

func (e *ToolExecutionError) Error() string {
	return fmt.Sprintf("tool %s failed: %v", e.ToolName, e.Err)
}

func (e *ToolExecutionError) Unwrap() error { return e.Err }

// HookError is raised by a hook action; it is logged and ignored for control flow
type HookError struct {
	HookID string
	Event  HookEvent
	Err    error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("hook %s (%s) failed: %v", e.HookID, e.Event, e.Err)
}

func (e *HookError) Unwrap() error { return e.Err }
