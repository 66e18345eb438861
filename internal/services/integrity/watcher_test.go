package integrity

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	config "github.com/inference-gateway/toolgate/config"
	domain "github.com/inference-gateway/toolgate/internal/domain"
	storage "github.com/inference-gateway/toolgate/internal/infra/storage"
	policy "github.com/inference-gateway/toolgate/internal/services/policy"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

func TestWatcher_DebouncesBurstIntoOneReload(t *testing.T) {
	dir := t.TempDir()
	var reloads atomic.Int32

	w, err := NewWatcher([]WatchTarget{{Scope: domain.ScopeWorkspace, Identifier: dir, Dir: dir}}, 100*time.Millisecond,
		func(ctx context.Context, target WatchTarget) {
			assert.Equal(t, dir, target.Dir)
			reloads.Add(1)
		})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)
	defer w.Stop()

	for i := 0; i < 5; i++ {
		writePolicy(t, dir, "a.yaml", basePolicy)
	}
	writePolicy(t, dir, "notes.txt", "ignored")

	require.Eventually(t, func() bool { return reloads.Load() >= 1 }, 3*time.Second, 20*time.Millisecond)
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), reloads.Load())
}

func TestWatcher_ReloadRunsGate(t *testing.T) {
	dir := t.TempDir()
	rules := policy.NewRuleStore()
	m := NewManager(storage.NewMemoryStorage(), rules, nil, false, config.IntegrityConfig{AutoAcceptNonInteractive: true})

	w, err := NewWatcher([]WatchTarget{{Scope: domain.ScopeWorkspace, Identifier: dir, Dir: dir}}, 50*time.Millisecond, LoaderReload(m))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)
	defer w.Stop()

	writePolicy(t, dir, "a.yaml", shellPolicy)

	require.Eventually(t, func() bool { return rules.Current().Len() == 1 }, 3*time.Second, 20*time.Millisecond)
}

func TestWatcher_NestedPolicyFiles(t *testing.T) {
	dir := t.TempDir()
	writePolicy(t, dir, "team/a.yaml", basePolicy)

	rules := policy.NewRuleStore()
	m := NewManager(storage.NewMemoryStorage(), rules, nil, false, config.IntegrityConfig{AutoAcceptNonInteractive: true})
	_, err := m.LoadPolicies(context.Background(), domain.ScopeWorkspace, dir, dir)
	require.NoError(t, err)
	require.Equal(t, 1, rules.Current().Len())

	w, err := NewWatcher([]WatchTarget{{Scope: domain.ScopeWorkspace, Identifier: dir, Dir: dir}}, 50*time.Millisecond, LoaderReload(m))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)
	defer w.Stop()

	writePolicy(t, dir, "team/a.yaml", basePolicy+shellPolicy[len("rules:\n"):])
	require.Eventually(t, func() bool { return rules.Current().Len() == 2 }, 3*time.Second, 20*time.Millisecond)

	writePolicy(t, dir, "team/infra/b.yaml", "rules:\n  - tool: write_file\n    decision: ask_user\n")
	require.Eventually(t, func() bool { return rules.Current().Len() == 3 }, 3*time.Second, 20*time.Millisecond)
}

func TestWatcher_DirectoryCreatedAfterStart(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, ".toolgate", "policies")

	rules := policy.NewRuleStore()
	m := NewManager(storage.NewMemoryStorage(), rules, nil, false, config.IntegrityConfig{AutoAcceptNonInteractive: true})

	w, err := NewWatcher([]WatchTarget{{Scope: domain.ScopeWorkspace, Identifier: root, Dir: dir}}, 50*time.Millisecond, LoaderReload(m))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)
	defer w.Stop()

	require.NoError(t, os.MkdirAll(dir, 0755))
	writePolicy(t, dir, "policy.yaml", shellPolicy)

	require.Eventually(t, func() bool { return rules.Current().Len() == 1 }, 3*time.Second, 20*time.Millisecond)
}

func TestWithin(t *testing.T) {
	assert.True(t, within("/p", "/p/a.yaml"))
	assert.True(t, within("/p", "/p/team/a.yaml"))
	assert.False(t, within("/p", "/p"))
	assert.False(t, within("/p", "/policies/a.yaml"))
	assert.False(t, within("/p/team", "/p"))
}
