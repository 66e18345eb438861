package policy

import (
	"fmt"

	domain "github.com/inference-gateway/toolgate/internal/domain"
)

// Evaluate renders a decision for one request. It is pure: the same inputs
// always produce the same decision and nothing is mutated.
//
// The first matching rule at the highest specificity wins. Without a match an
// untrusted workspace asks the user, a trusted workspace allows read-only
// tools, and everything else is denied.
func Evaluate(req domain.ToolCallRequest, effect domain.Effect, rules *RuleSet, trust domain.TrustState) domain.ToolCallDecision {
	if rule, ok := rules.Match(req); ok {
		return domain.ToolCallDecision{
			Decision: rule.Decision,
			Source:   domain.DecisionSource{Kind: domain.SourceRule, Name: rule.Source},
			Rationale: fmt.Sprintf("%s rule %q (%s) from %s",
				rule.Scope, rule.Pattern(), rule.Kind(), rule.Source),
		}
	}

	switch {
	case !trust.WorkspaceTrusted:
		return domain.ToolCallDecision{
			Decision:  domain.DecisionAskUser,
			Source:    domain.DecisionSource{Kind: domain.SourceDefault, Name: "untrusted-workspace"},
			Rationale: fmt.Sprintf("no rule matches %s and the workspace is not trusted", req.QualifiedName()),
		}
	case effect == domain.EffectReadOnly:
		return domain.ToolCallDecision{
			Decision:  domain.DecisionAllow,
			Source:    domain.DecisionSource{Kind: domain.SourceDefault, Name: "trusted-read-only"},
			Rationale: fmt.Sprintf("%s is read-only in a trusted workspace", req.QualifiedName()),
		}
	default:
		return domain.ToolCallDecision{
			Decision:  domain.DecisionDeny,
			Source:    domain.DecisionSource{Kind: domain.SourceDefault, Name: "no-matching-rule"},
			Rationale: fmt.Sprintf("no rule allows %s", req.QualifiedName()),
		}
	}
}

// Engine evaluates requests against the live rule store and runs safety checkers
type Engine struct {
	store    *RuleStore
	checkers *CheckerRegistry
}

// NewEngine creates an engine over store. checkers may be nil.
func NewEngine(store *RuleStore, checkers *CheckerRegistry) *Engine {
	return &Engine{store: store, checkers: checkers}
}

// Decide evaluates req against the current rule set, then lets the checkers tighten it
func (e *Engine) Decide(req domain.ToolCallRequest, effect domain.Effect, trust domain.TrustState) domain.ToolCallDecision {
	decision := Evaluate(req, effect, e.store.Current(), trust)
	return e.checkers.Apply(req, decision, trust)
}

// Rules returns the active rule set
func (e *Engine) Rules() *RuleSet {
	return e.store.Current()
}

// Store returns the underlying rule store
func (e *Engine) Store() *RuleStore {
	return e.store
}
