package tools

import (
	"context"
	"testing"

	config "github.com/inference-gateway/toolgate/config"
	domain "github.com/inference-gateway/toolgate/internal/domain"
	mocksdomain "github.com/inference-gateway/toolgate/tests/mocks/domain"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

func TestRegistry_ReferenceTools(t *testing.T) {
	r := NewRegistry(config.ToolsConfig{WorkspaceRoot: t.TempDir()})

	assert.Equal(t, []string{"list_directory", "read_file", "run_shell_command", "write_file"}, r.List())

	effects := map[string]domain.Effect{
		"read_file":         domain.EffectReadOnly,
		"list_directory":    domain.EffectReadOnly,
		"write_file":        domain.EffectMutating,
		"run_shell_command": domain.EffectMutating,
	}
	for name, want := range effects {
		assert.Equal(t, want, r.EffectOf(name), name)
	}

	defs := r.Definitions()
	require.Len(t, defs, 4)
	for _, d := range defs {
		assert.NotEmpty(t, d.Description, d.Name)
		assert.Equal(t, "object", d.Parameters["type"], d.Name)
	}
}

func TestRegistry_UnknownToolIsMutating(t *testing.T) {
	r := NewEmptyRegistry()

	_, ok := r.Get("mystery")
	assert.False(t, ok)
	assert.Equal(t, domain.EffectMutating, r.EffectOf("mystery"))
}

func TestRegistry_Register(t *testing.T) {
	r := NewEmptyRegistry()

	fake := &mocksdomain.FakeToolExecutor{}
	fake.NameReturns("lookup")
	fake.EffectReturns(domain.EffectReadOnly)
	fake.ExecuteReturns(&domain.ToolResult{Output: "ok"}, nil)

	require.NoError(t, r.Register(fake))
	assert.Error(t, r.Register(fake))

	exec, ok := r.Get("lookup")
	require.True(t, ok)
	res, err := exec.Execute(context.Background(), domain.ToolCallRequest{ToolName: "lookup"})
	require.NoError(t, err)
	assert.Equal(t, "ok", res.Output)
	assert.Equal(t, domain.EffectReadOnly, r.EffectOf("lookup"))
	assert.Empty(t, r.Definitions(), "fakes carry no definition")
}

func TestParams(t *testing.T) {
	args := map[string]any{"s": "v", "n": float64(3), "bad": true}

	s, err := stringArg(args, "s", true)
	require.NoError(t, err)
	assert.Equal(t, "v", s)

	_, err = stringArg(args, "missing", true)
	assert.EqualError(t, err, "missing required parameter: missing")

	_, err = stringArg(args, "bad", false)
	assert.Error(t, err)

	n, ok, err := intArg(args, "n")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	_, ok, err = intArg(args, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = intArg(args, "s")
	assert.Error(t, err)
}
