package domain

import (
	"fmt"
	"strings"
)

// Decision is the verdict rendered for a single tool call
type Decision int

const (
	DecisionAllow Decision = iota
	DecisionDeny
	DecisionAskUser
)

func (d Decision) String() string {
	switch d {
	case DecisionAllow:
		return "ALLOW"
	case DecisionDeny:
		return "DENY"
	case DecisionAskUser:
		return "ASK_USER"
	default:
		return "UNKNOWN"
	}
}

// ParseDecision parses the configuration spelling of a decision
func ParseDecision(value string) (Decision, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "allow":
		return DecisionAllow, nil
	case "deny":
		return DecisionDeny, nil
	case "ask_user", "ask-user", "ask":
		return DecisionAskUser, nil
	default:
		return DecisionDeny, fmt.Errorf("unknown decision %q", value)
	}
}

// PolicyScope identifies the layer a rule (or an integrity record) belongs to
type PolicyScope string

const (
	ScopeGlobal    PolicyScope = "global"
	ScopeExtension PolicyScope = "extension"
	ScopeWorkspace PolicyScope = "workspace"
)

// Precedence orders scopes inside a rule set; lower values are consulted first
func (s PolicyScope) Precedence() int {
	switch s {
	case ScopeGlobal:
		return 0
	case ScopeExtension:
		return 1
	case ScopeWorkspace:
		return 2
	default:
		return 3
	}
}

// ParseScope parses a scope name
func ParseScope(value string) (PolicyScope, error) {
	switch PolicyScope(strings.ToLower(strings.TrimSpace(value))) {
	case ScopeGlobal:
		return ScopeGlobal, nil
	case ScopeExtension:
		return ScopeExtension, nil
	case ScopeWorkspace:
		return ScopeWorkspace, nil
	default:
		return "", fmt.Errorf("unknown policy scope %q", value)
	}
}

// MatchKind is the closed set of ways a rule can match a tool call
type MatchKind int

const (
	MatchWildcard MatchKind = iota
	MatchToolName
	MatchExact
)

func (k MatchKind) String() string {
	switch k {
	case MatchWildcard:
		return "wildcard"
	case MatchToolName:
		return "tool"
	case MatchExact:
		return "tool+server"
	default:
		return "unknown"
	}
}

// WildcardTool matches every tool name
const WildcardTool = "*"

// PolicyRule is a single loaded rule. Rules are immutable once loaded.
type PolicyRule struct {
	ToolName   string
	ServerName string
	Decision   Decision
	Scope      PolicyScope
	Source     string
}

// Kind returns how specific the rule is
func (r PolicyRule) Kind() MatchKind {
	if r.ToolName == WildcardTool {
		return MatchWildcard
	}
	if r.ServerName != "" {
		return MatchExact
	}
	return MatchToolName
}

// Matches reports whether the rule applies to the given request
func (r PolicyRule) Matches(req ToolCallRequest) bool {
	switch r.Kind() {
	case MatchWildcard:
		return true
	case MatchExact:
		return r.ToolName == req.ToolName && r.ServerName == req.ServerName
	default:
		return r.ToolName == req.ToolName
	}
}

// Pattern renders the rule's match pattern for rationales and listings
func (r PolicyRule) Pattern() string {
	if r.ServerName != "" {
		return r.ServerName + "/" + r.ToolName
	}
	return r.ToolName
}

func (r PolicyRule) String() string {
	return fmt.Sprintf("%s %s (%s, %s)", r.Pattern(), r.Decision, r.Scope, r.Source)
}

// DecisionSourceKind identifies what produced a decision
type DecisionSourceKind string

const (
	SourceRule    DecisionSourceKind = "rule"
	SourceDefault DecisionSourceKind = "default"
	SourceChecker DecisionSourceKind = "checker"
	SourceHook    DecisionSourceKind = "hook"
	SourceUser    DecisionSourceKind = "user"
)

// DecisionSource tags a decision with the rule, checker or hook behind it
type DecisionSource struct {
	Kind DecisionSourceKind
	Name string
}

func (s DecisionSource) String() string {
	if s.Name == "" {
		return string(s.Kind)
	}
	return string(s.Kind) + ":" + s.Name
}

// ToolCallDecision is computed fresh for every request and never cached
type ToolCallDecision struct {
	Decision  Decision
	Source    DecisionSource
	Rationale string
}

// TrustState carries the workspace trust flags consulted by the policy engine
type TrustState struct {
	WorkspaceTrusted bool
	WorkspaceRoot    string
}
