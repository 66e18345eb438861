package policy

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	config "github.com/inference-gateway/toolgate/config"
	storage "github.com/inference-gateway/toolgate/internal/infra/storage"
	mocksdomain "github.com/inference-gateway/toolgate/tests/mocks/domain"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

func TestTrustResolver(t *testing.T) {
	ctx := context.Background()
	trustedDir := t.TempDir()
	otherDir := t.TempDir()

	store := storage.NewMemoryStorage()
	resolver := NewTrustResolver(store, config.PolicyConfig{TrustedFolders: []string{trustedDir}})

	t.Run("trusted folder covers subdirectories", func(t *testing.T) {
		state := resolver.Resolve(ctx, filepath.Join(trustedDir, "project"))
		assert.True(t, state.WorkspaceTrusted)
		assert.Equal(t, filepath.Join(trustedDir, "project"), state.WorkspaceRoot)
	})

	t.Run("unknown folder is untrusted", func(t *testing.T) {
		assert.False(t, resolver.Resolve(ctx, otherDir).WorkspaceTrusted)
	})

	t.Run("stored flag wins over settings", func(t *testing.T) {
		require.NoError(t, resolver.SetTrust(ctx, trustedDir, false))
		assert.False(t, resolver.Resolve(ctx, trustedDir).WorkspaceTrusted)

		require.NoError(t, resolver.SetTrust(ctx, otherDir, true))
		assert.True(t, resolver.Resolve(ctx, otherDir).WorkspaceTrusted)
	})
}

func TestTrustResolver_StoreErrorIsUntrusted(t *testing.T) {
	store := &mocksdomain.FakeIntegrityStore{}
	store.GetTrustReturns(true, true, errors.New("connection refused"))

	dir := t.TempDir()
	resolver := NewTrustResolver(store, config.PolicyConfig{TrustedFolders: []string{dir}})

	assert.False(t, resolver.Resolve(context.Background(), dir).WorkspaceTrusted)
}
