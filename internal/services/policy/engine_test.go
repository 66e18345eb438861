package policy

import (
	"fmt"
	"math/rand"
	"testing"

	domain "github.com/inference-gateway/toolgate/internal/domain"
	assert "github.com/stretchr/testify/assert"
)

func rule(tool, server string, d domain.Decision, scope domain.PolicyScope) domain.PolicyRule {
	return domain.PolicyRule{ToolName: tool, ServerName: server, Decision: d, Scope: scope, Source: "test.yaml"}
}

func request(tool, server string) domain.ToolCallRequest {
	return domain.ToolCallRequest{ID: "call-1", ToolName: tool, ServerName: server, TurnID: "turn-1"}
}

var trusted = domain.TrustState{WorkspaceTrusted: true, WorkspaceRoot: "/w"}
var untrusted = domain.TrustState{WorkspaceTrusted: false, WorkspaceRoot: "/w"}

func TestEvaluate_Specificity(t *testing.T) {
	tests := []struct {
		name  string
		rules []domain.PolicyRule
		req   domain.ToolCallRequest
		want  domain.Decision
	}{
		{
			name: "exact beats tool name",
			rules: []domain.PolicyRule{
				rule("query", "", domain.DecisionDeny, domain.ScopeGlobal),
				rule("query", "db", domain.DecisionAllow, domain.ScopeWorkspace),
			},
			req:  request("query", "db"),
			want: domain.DecisionAllow,
		},
		{
			name: "tool name beats wildcard",
			rules: []domain.PolicyRule{
				rule("*", "", domain.DecisionAllow, domain.ScopeGlobal),
				rule("run_shell_command", "", domain.DecisionDeny, domain.ScopeWorkspace),
			},
			req:  request("run_shell_command", ""),
			want: domain.DecisionDeny,
		},
		{
			name: "exact rule for another server does not match",
			rules: []domain.PolicyRule{
				rule("query", "db", domain.DecisionAllow, domain.ScopeGlobal),
				rule("*", "", domain.DecisionAskUser, domain.ScopeGlobal),
			},
			req:  request("query", "other"),
			want: domain.DecisionAskUser,
		},
		{
			name: "first rule at the same specificity wins",
			rules: []domain.PolicyRule{
				rule("write_file", "", domain.DecisionAskUser, domain.ScopeGlobal),
				rule("write_file", "", domain.DecisionAllow, domain.ScopeGlobal),
			},
			req:  request("write_file", ""),
			want: domain.DecisionAskUser,
		},
		{
			name: "wildcard matches anything",
			rules: []domain.PolicyRule{
				rule("*", "", domain.DecisionDeny, domain.ScopeGlobal),
			},
			req:  request("anything", "srv"),
			want: domain.DecisionDeny,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := NewRuleSet(Layer{Scope: domain.ScopeGlobal, Identifier: domain.GlobalIdentifier, Rules: tt.rules})
			got := Evaluate(tt.req, domain.EffectMutating, set, untrusted)
			assert.Equal(t, tt.want, got.Decision)
			assert.Equal(t, domain.SourceRule, got.Source.Kind)
			assert.NotEmpty(t, got.Rationale)
		})
	}
}

func TestEvaluate_ScopePrecedence(t *testing.T) {
	set := NewRuleSet(
		Layer{Scope: domain.ScopeWorkspace, Identifier: "/w", Rules: []domain.PolicyRule{
			rule("write_file", "", domain.DecisionAllow, domain.ScopeWorkspace),
		}},
		Layer{Scope: domain.ScopeGlobal, Identifier: domain.GlobalIdentifier, Rules: []domain.PolicyRule{
			rule("write_file", "", domain.DecisionAskUser, domain.ScopeGlobal),
		}},
	)

	got := Evaluate(request("write_file", ""), domain.EffectMutating, set, trusted)
	assert.Equal(t, domain.DecisionAskUser, got.Decision, "global rules are consulted before workspace rules")
}

func TestEvaluate_Defaults(t *testing.T) {
	tests := []struct {
		name   string
		effect domain.Effect
		trust  domain.TrustState
		want   domain.Decision
	}{
		{"untrusted read-only asks", domain.EffectReadOnly, untrusted, domain.DecisionAskUser},
		{"untrusted mutating asks", domain.EffectMutating, untrusted, domain.DecisionAskUser},
		{"trusted read-only allows", domain.EffectReadOnly, trusted, domain.DecisionAllow},
		{"trusted mutating denies", domain.EffectMutating, trusted, domain.DecisionDeny},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(request("list_directory", ""), tt.effect, EmptyRuleSet, tt.trust)
			assert.Equal(t, tt.want, got.Decision)
			assert.Equal(t, domain.SourceDefault, got.Source.Kind)
		})
	}
}

func TestEvaluate_NilRuleSet(t *testing.T) {
	got := Evaluate(request("read_file", ""), domain.EffectReadOnly, nil, trusted)
	assert.Equal(t, domain.DecisionAllow, got.Decision)
}

// A DENY match is never overridden by a later, less specific ALLOW rule.
func TestEvaluate_DenyNeverOverriddenByLessSpecificAllow(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tools := []string{"read_file", "write_file", "query"}
	servers := []string{"", "db", "web"}
	decisions := []domain.Decision{domain.DecisionAllow, domain.DecisionDeny, domain.DecisionAskUser}
	scopes := []domain.PolicyScope{domain.ScopeGlobal, domain.ScopeExtension, domain.ScopeWorkspace}

	for iter := 0; iter < 500; iter++ {
		var rules []domain.PolicyRule
		for n := rng.Intn(8); n >= 0; n-- {
			tool := tools[rng.Intn(len(tools))]
			server := servers[rng.Intn(len(servers))]
			if rng.Intn(5) == 0 {
				tool, server = domain.WildcardTool, ""
			}
			rules = append(rules, rule(tool, server, decisions[rng.Intn(3)], scopes[rng.Intn(3)]))
		}
		req := request(tools[rng.Intn(len(tools))], servers[rng.Intn(len(servers))])
		set := NewRuleSet(Layer{Scope: domain.ScopeGlobal, Identifier: fmt.Sprint(iter), Rules: rules})

		got := Evaluate(req, domain.EffectReadOnly, set, trusted)

		best := -1
		denyAtBest := false
		for _, r := range rules {
			if !r.Matches(req) {
				continue
			}
			kind := int(r.Kind())
			if kind > best {
				best = kind
				denyAtBest = r.Decision == domain.DecisionDeny
			}
		}
		if denyAtBest {
			assert.Equal(t, domain.DecisionDeny, got.Decision, "iteration %d: rules %v request %s", iter, rules, req.QualifiedName())
		}
	}
}

func TestEngine_CheckersOnlyTighten(t *testing.T) {
	store := NewRuleStore()
	store.ReplaceLayer(Layer{Scope: domain.ScopeGlobal, Identifier: domain.GlobalIdentifier, Rules: []domain.PolicyRule{
		rule("read_file", "", domain.DecisionAllow, domain.ScopeGlobal),
		rule("run_shell_command", "", domain.DecisionDeny, domain.ScopeGlobal),
	}})
	engine := NewEngine(store, NewCheckerRegistry(NewWorkspacePathChecker(), loosenChecker{}))

	t.Run("outside path downgrades allow to ask", func(t *testing.T) {
		req := request("read_file", "")
		req.Args = map[string]any{"file_path": "/etc/passwd"}
		got := engine.Decide(req, domain.EffectReadOnly, trusted)
		assert.Equal(t, domain.DecisionAskUser, got.Decision)
		assert.Equal(t, domain.DecisionSource{Kind: domain.SourceChecker, Name: "workspace-path"}, got.Source)
	})

	t.Run("inside path keeps allow", func(t *testing.T) {
		req := request("read_file", "")
		req.Args = map[string]any{"file_path": "src/main.go"}
		got := engine.Decide(req, domain.EffectReadOnly, trusted)
		assert.Equal(t, domain.DecisionAllow, got.Decision)
	})

	t.Run("relative escape is caught", func(t *testing.T) {
		req := request("read_file", "")
		req.Args = map[string]any{"path": "../other/secret"}
		got := engine.Decide(req, domain.EffectReadOnly, trusted)
		assert.Equal(t, domain.DecisionAskUser, got.Decision)
	})

	t.Run("deny is terminal", func(t *testing.T) {
		got := engine.Decide(request("run_shell_command", ""), domain.EffectMutating, trusted)
		assert.Equal(t, domain.DecisionDeny, got.Decision)
		assert.Equal(t, domain.SourceRule, got.Source.Kind)
	})
}

// loosenChecker tries to promote every decision to ALLOW
type loosenChecker struct{}

func (loosenChecker) Name() string { return "loosen" }

func (loosenChecker) Check(req domain.ToolCallRequest, current domain.ToolCallDecision, trust domain.TrustState) (domain.ToolCallDecision, bool) {
	return domain.ToolCallDecision{Decision: domain.DecisionAllow, Rationale: "loosened"}, true
}

func TestCheckerRegistry(t *testing.T) {
	r := NewDefaultCheckerRegistry()
	assert.Equal(t, []string{"workspace-path"}, r.Names())

	err := r.Register(NewWorkspacePathChecker())
	assert.Error(t, err)

	c, ok := r.Get("workspace-path")
	assert.True(t, ok)
	assert.Equal(t, "workspace-path", c.Name())

	var nilRegistry *CheckerRegistry
	d := domain.ToolCallDecision{Decision: domain.DecisionAllow}
	assert.Equal(t, d, nilRegistry.Apply(request("x", ""), d, trusted))
}

func TestStricter(t *testing.T) {
	assert.True(t, Stricter(domain.DecisionDeny, domain.DecisionAskUser))
	assert.True(t, Stricter(domain.DecisionAskUser, domain.DecisionAllow))
	assert.False(t, Stricter(domain.DecisionAllow, domain.DecisionAskUser))
	assert.False(t, Stricter(domain.DecisionDeny, domain.DecisionDeny))
}
