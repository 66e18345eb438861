package policy

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	domain "github.com/inference-gateway/toolgate/internal/domain"
)

// SafetyChecker inspects a request after rule evaluation. It returns a
// replacement decision and true when it wants to tighten the verdict.
type SafetyChecker interface {
	Name() string
	Check(req domain.ToolCallRequest, current domain.ToolCallDecision, trust domain.TrustState) (domain.ToolCallDecision, bool)
}

// CheckerRegistry owns one instance per checker. It is built once by the
// container and handed to the engine.
type CheckerRegistry struct {
	mu       sync.RWMutex
	checkers []SafetyChecker
	byName   map[string]SafetyChecker
}

// NewCheckerRegistry creates a registry with the given checkers
func NewCheckerRegistry(checkers ...SafetyChecker) *CheckerRegistry {
	r := &CheckerRegistry{byName: make(map[string]SafetyChecker)}
	for _, c := range checkers {
		_ = r.Register(c)
	}
	return r
}

// NewDefaultCheckerRegistry creates a registry with the built-in checkers
func NewDefaultCheckerRegistry() *CheckerRegistry {
	return NewCheckerRegistry(NewWorkspacePathChecker())
}

// Register adds a checker; names must be unique
func (r *CheckerRegistry) Register(c SafetyChecker) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[c.Name()]; exists {
		return fmt.Errorf("checker %s already registered", c.Name())
	}
	r.byName[c.Name()] = c
	r.checkers = append(r.checkers, c)
	return nil
}

// Get returns the checker registered under name
func (r *CheckerRegistry) Get(name string) (SafetyChecker, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byName[name]
	return c, ok
}

// Names lists registered checkers in registration order
func (r *CheckerRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.checkers))
	for _, c := range r.checkers {
		names = append(names, c.Name())
	}
	return names
}

// Apply runs every checker in order. A DENY is returned untouched and a
// checker result is only taken when it is stricter than the current one.
func (r *CheckerRegistry) Apply(req domain.ToolCallRequest, decision domain.ToolCallDecision, trust domain.TrustState) domain.ToolCallDecision {
	if r == nil {
		return decision
	}

	r.mu.RLock()
	checkers := append([]SafetyChecker(nil), r.checkers...)
	r.mu.RUnlock()

	for _, c := range checkers {
		if decision.Decision == domain.DecisionDeny {
			return decision
		}
		next, changed := c.Check(req, decision, trust)
		if !changed || !Stricter(next.Decision, decision.Decision) {
			continue
		}
		if next.Source.Kind == "" {
			next.Source = domain.DecisionSource{Kind: domain.SourceChecker, Name: c.Name()}
		}
		decision = next
	}
	return decision
}

// Stricter reports whether a is more restrictive than b (DENY > ASK_USER > ALLOW)
func Stricter(a, b domain.Decision) bool {
	return strictness(a) > strictness(b)
}

func strictness(d domain.Decision) int {
	switch d {
	case domain.DecisionAllow:
		return 0
	case domain.DecisionAskUser:
		return 1
	default:
		return 2
	}
}

// WorkspacePathChecker asks the user before file tools touch paths outside the workspace root
type WorkspacePathChecker struct {
	argKeys []string
}

// NewWorkspacePathChecker creates the workspace-path checker
func NewWorkspacePathChecker() *WorkspacePathChecker {
	return &WorkspacePathChecker{argKeys: []string{"path", "file_path", "dir_path"}}
}

func (c *WorkspacePathChecker) Name() string { return "workspace-path" }

func (c *WorkspacePathChecker) Check(req domain.ToolCallRequest, current domain.ToolCallDecision, trust domain.TrustState) (domain.ToolCallDecision, bool) {
	if current.Decision != domain.DecisionAllow || trust.WorkspaceRoot == "" {
		return current, false
	}

	root, err := filepath.Abs(trust.WorkspaceRoot)
	if err != nil {
		return current, false
	}

	for _, key := range c.argKeys {
		raw, ok := req.Args[key].(string)
		if !ok || raw == "" {
			continue
		}
		target := raw
		if !filepath.IsAbs(target) {
			target = filepath.Join(root, target)
		}
		if !withinRoot(root, filepath.Clean(target)) {
			return domain.ToolCallDecision{
				Decision:  domain.DecisionAskUser,
				Source:    domain.DecisionSource{Kind: domain.SourceChecker, Name: c.Name()},
				Rationale: fmt.Sprintf("%s argument %q resolves outside the workspace %s", key, raw, root),
			}, true
		}
	}
	return current, false
}

func withinRoot(root, target string) bool {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
