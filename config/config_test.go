package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("gateway defaults", func(t *testing.T) {
		if cfg.Gateway.URL != "http://localhost:8080" {
			t.Errorf("Expected gateway URL to be 'http://localhost:8080', got %q", cfg.Gateway.URL)
		}
	})
	t.Run("policy defaults", func(t *testing.T) {
		if cfg.Policy.WorkspaceDir != ".toolgate/policies" {
			t.Errorf("Expected workspace policy dir '.toolgate/policies', got %q", cfg.Policy.WorkspaceDir)
		}
		if len(cfg.Policy.Rules) != 2 {
			t.Errorf("Expected 2 default rules, got %d", len(cfg.Policy.Rules))
		}
	})
	t.Run("integrity defaults", func(t *testing.T) {
		if !cfg.Integrity.AutoAcceptNonInteractive {
			t.Error("Expected non-interactive auto-accept to be enabled by default")
		}
	})
	t.Run("scheduler defaults", func(t *testing.T) {
		if !cfg.Scheduler.Interactive {
			t.Error("Expected interactive scheduling by default")
		}
		if cfg.Scheduler.ConfirmationTimeout != 300 {
			t.Errorf("Expected confirmation timeout 300, got %d", cfg.Scheduler.ConfirmationTimeout)
		}
	})
	t.Run("storage defaults", func(t *testing.T) {
		if cfg.Storage.Type != "jsonl" {
			t.Errorf("Expected jsonl storage, got %q", cfg.Storage.Type)
		}
	})
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		configYAML  string
		validator   func(t *testing.T, cfg *Config)
		expectError bool
	}{
		{
			name: "overrides merge onto defaults",
			configYAML: `
policy:
  workspace_dir: policies
  rules:
    - tool: run_shell_command
      decision: deny
hooks:
  before_tool:
    - matcher: "write_file|replace"
      command: ./check.sh
      timeout: 5
scheduler:
  interactive: false
  pre_approved_tools: [write_file]
`,
			validator: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "policies", cfg.Policy.WorkspaceDir)
				require.Len(t, cfg.Policy.Rules, 1)
				assert.Equal(t, "deny", cfg.Policy.Rules[0].Decision)
				require.Len(t, cfg.Hooks.BeforeTool, 1)
				assert.Equal(t, 5, cfg.Hooks.BeforeTool[0].Timeout)
				assert.False(t, cfg.Scheduler.Interactive)
				assert.Equal(t, []string{"write_file"}, cfg.Scheduler.PreApprovedTools)
				assert.Equal(t, 8, cfg.Scheduler.MaxParallel)
				assert.Equal(t, "jsonl", cfg.Storage.Type)
			},
		},
		{
			name: "unsupported storage type",
			configYAML: `
storage:
  type: etcd
`,
			expectError: true,
		},
		{
			name: "hook without command",
			configYAML: `
hooks:
  after_tool:
    - matcher: "*"
`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, v, err := Load(writeConfig(t, tt.configYAML))
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, v)
			tt.validator(t, cfg)
		})
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Policy, cfg.Policy)
}

func TestLoadEnvironmentOverride(t *testing.T) {
	t.Setenv("TOOLGATE_STORAGE_TYPE", "memory")
	t.Setenv("TOOLGATE_GATEWAY_API_KEY", "secret")

	cfg, _, err := Load(writeConfig(t, "gateway:\n  url: http://gw:8080\n"))
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Storage.Type)
	assert.Equal(t, "secret", cfg.Gateway.APIKey)
	assert.Equal(t, "http://gw:8080", cfg.Gateway.URL)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Scheduler.PreApprovedTools = []string{"write_file"}

	require.NoError(t, cfg.Save(path))

	loaded, _, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Scheduler, loaded.Scheduler)
	assert.Equal(t, cfg.Policy.Rules, loaded.Policy.Rules)
}

func TestWorkspacePolicyDir(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, filepath.Join("/repo", ".toolgate", "policies"), cfg.WorkspacePolicyDir("/repo"))

	cfg.Policy.WorkspaceDir = "/etc/toolgate"
	assert.Equal(t, "/etc/toolgate", cfg.WorkspacePolicyDir("/repo"))
}
