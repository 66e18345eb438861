package hooks

import (
	"context"
	"errors"
	"testing"
	"time"

	config "github.com/inference-gateway/toolgate/config"
	domain "github.com/inference-gateway/toolgate/internal/domain"
	logger "github.com/inference-gateway/toolgate/internal/logger"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

func callback(name string, out *domain.HookOutput, err error, calls *[]string) domain.RuntimeAction {
	return domain.RuntimeAction{
		Name: name,
		Callback: func(ctx context.Context, input domain.HookInput) (*domain.HookOutput, error) {
			*calls = append(*calls, name)
			return out, err
		},
	}
}

func TestRuntime_BeforeToolOrderAndShortCircuit(t *testing.T) {
	r := NewRuntime()
	var calls []string

	_, err := r.RegisterHook(callback("first", &domain.HookOutput{SystemMessage: "noted"}, nil, &calls), domain.HookBeforeTool, "")
	require.NoError(t, err)
	denyID, err := r.RegisterHook(callback("deny", &domain.HookOutput{Decision: domain.HookDecisionDeny, Reason: "no listing"}, nil, &calls), domain.HookBeforeTool, "list_directory")
	require.NoError(t, err)
	_, err = r.RegisterHook(callback("never", nil, nil, &calls), domain.HookBeforeTool, "*")
	require.NoError(t, err)

	result := r.FireBeforeToolEvent(context.Background(), "list_directory", domain.HookInput{ToolName: "list_directory"})

	assert.Equal(t, []string{"first", "deny"}, calls)
	assert.True(t, result.Denied())
	assert.Equal(t, "no listing", result.Reason)
	assert.Equal(t, denyID, result.HookID)
	assert.Equal(t, "noted", result.SystemMessage)
}

func TestRuntime_MatcherSelectsTools(t *testing.T) {
	r := NewRuntime()
	var calls []string
	_, err := r.RegisterHook(callback("files", nil, nil, &calls), domain.HookBeforeTool, "read_file|write_file")
	require.NoError(t, err)
	_, err = r.RegisterHook(callback("db", nil, nil, &calls), domain.HookBeforeTool, "db/query")
	require.NoError(t, err)

	r.FireBeforeToolEvent(context.Background(), "write_file", domain.HookInput{ToolName: "write_file"})
	r.FireBeforeToolEvent(context.Background(), "list_directory", domain.HookInput{ToolName: "list_directory"})
	r.FireBeforeToolEvent(context.Background(), "db/query", domain.HookInput{ToolName: "query", ServerName: "db"})

	assert.Equal(t, []string{"files", "db"}, calls)
}

func TestRuntime_ErrorsAreLoggedAndIgnored(t *testing.T) {
	logs, restore := logger.Observe()
	defer restore()

	r := NewRuntime()
	var calls []string
	_, err := r.RegisterHook(callback("broken", nil, errors.New("boom"), &calls), domain.HookBeforeTool, "")
	require.NoError(t, err)
	_, err = r.RegisterHook(domain.RuntimeAction{Name: "panics", Callback: func(ctx context.Context, input domain.HookInput) (*domain.HookOutput, error) {
		panic("bad hook")
	}}, domain.HookBeforeTool, "")
	require.NoError(t, err)
	_, err = r.RegisterHook(callback("after", nil, nil, &calls), domain.HookBeforeTool, "")
	require.NoError(t, err)

	result := r.FireBeforeToolEvent(context.Background(), "read_file", domain.HookInput{})

	assert.False(t, result.Denied())
	assert.Equal(t, []string{"broken", "after"}, calls)
	assert.Len(t, logs.FilterMessage("Hook failed, continuing").All(), 2)
}

func TestRuntime_AfterToolCollectsMessagesAndIgnoresDeny(t *testing.T) {
	r := NewRuntime()
	var seen domain.HookInput
	_, err := r.RegisterHook(domain.RuntimeAction{Name: "audit", Callback: func(ctx context.Context, input domain.HookInput) (*domain.HookOutput, error) {
		seen = input
		return &domain.HookOutput{Decision: domain.HookDecisionDeny, SystemMessage: "audited"}, nil
	}}, domain.HookAfterTool, "")
	require.NoError(t, err)

	msg := r.FireAfterToolEvent(context.Background(), "read_file", domain.HookInput{ToolName: "read_file", Status: "success"}, "contents")

	assert.Equal(t, "audited", msg)
	assert.Equal(t, domain.HookAfterTool, seen.Event)
	assert.Equal(t, "contents", seen.Output)
}

func TestRuntime_ReloadKeepsRuntimeHooks(t *testing.T) {
	r := NewRuntime()
	var calls []string
	runtimeID, err := r.RegisterHook(callback("runtime", nil, nil, &calls), domain.HookBeforeTool, "")
	require.NoError(t, err)

	require.NoError(t, r.ReloadConfigHooks(config.HooksConfig{
		BeforeTool: []config.HookConfig{{Matcher: "write_file", Command: "true"}},
		AfterTool:  []config.HookConfig{{Command: "true"}},
	}))
	assert.Len(t, r.List(), 3)

	require.NoError(t, r.ReloadConfigHooks(config.HooksConfig{
		BeforeTool: []config.HookConfig{{Matcher: "read_file", Command: "true", Timeout: 5}},
	}))

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, runtimeID, list[0].ID)
	assert.Equal(t, domain.HookSourceRuntime, list[0].Source)
	assert.Equal(t, domain.HookSourceConfig, list[1].Source)
	assert.Equal(t, "read_file", list[1].Matcher)
	assert.Equal(t, domain.ProcessAction{Command: "true", Timeout: 5 * time.Second}, list[1].Action)

	err = r.ReloadConfigHooks(config.HooksConfig{BeforeTool: []config.HookConfig{{Matcher: "a b", Command: "true"}}})
	assert.Error(t, err)
	assert.Len(t, r.List(), 2, "invalid definitions leave the registry untouched")
}

func TestRuntime_RegisterValidation(t *testing.T) {
	r := NewRuntime()

	_, err := r.RegisterHook(nil, domain.HookBeforeTool, "")
	assert.Error(t, err)

	_, err = r.RegisterHook(domain.RuntimeAction{Name: "nil"}, domain.HookBeforeTool, "")
	assert.Error(t, err)

	_, err = r.RegisterHook(domain.ProcessAction{}, domain.HookBeforeTool, "")
	assert.Error(t, err)

	_, err = r.RegisterHook(domain.ProcessAction{Command: "true"}, domain.HookEvent("SessionStart"), "")
	assert.Error(t, err)

	_, err = r.RegisterHook(domain.ProcessAction{Command: "true"}, domain.HookBeforeTool, "read_*")
	assert.Error(t, err)
}

func TestRuntime_Unregister(t *testing.T) {
	r := NewRuntime()
	var calls []string
	id, err := r.RegisterHook(callback("gone", nil, nil, &calls), domain.HookBeforeTool, "")
	require.NoError(t, err)

	assert.True(t, r.Unregister(id))
	assert.False(t, r.Unregister(id))

	r.FireBeforeToolEvent(context.Background(), "read_file", domain.HookInput{})
	assert.Empty(t, calls)
}

func TestMatchTool(t *testing.T) {
	tests := []struct {
		matcher string
		tool    string
		qual    string
		want    bool
	}{
		{"", "read_file", "read_file", true},
		{"*", "query", "db/query", true},
		{"read_file", "read_file", "read_file", true},
		{"read_file", "read_files", "read_files", false},
		{"a|b|c", "b", "b", true},
		{"a|b|c", "d", "d", false},
		{"query", "query", "db/query", true},
		{"db/query", "query", "db/query", true},
		{"web/query", "query", "db/query", false},
	}

	for _, tt := range tests {
		t.Run(tt.matcher+"->"+tt.qual, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchTool(tt.matcher, tt.tool, tt.qual))
		})
	}
}
