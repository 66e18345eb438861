package policy

import (
	"context"
	"fmt"
	"path/filepath"

	config "github.com/inference-gateway/toolgate/config"
	domain "github.com/inference-gateway/toolgate/internal/domain"
	logger "github.com/inference-gateway/toolgate/internal/logger"
)

// TrustResolver reads workspace trust flags. A stored flag wins over
// the trusted_folders list from the settings file.
type TrustResolver struct {
	store          domain.IntegrityStore
	trustedFolders []string
}

// NewTrustResolver creates a resolver backed by store
func NewTrustResolver(store domain.IntegrityStore, cfg config.PolicyConfig) *TrustResolver {
	folders := make([]string, 0, len(cfg.TrustedFolders))
	for _, f := range cfg.TrustedFolders {
		abs, err := filepath.Abs(config.ExpandPath(f))
		if err != nil {
			logger.Warn("Ignoring trusted folder", "folder", f, "error", err)
			continue
		}
		folders = append(folders, abs)
	}
	return &TrustResolver{store: store, trustedFolders: folders}
}

// Resolve returns the trust state of workspaceRoot. Lookup errors resolve untrusted.
func (r *TrustResolver) Resolve(ctx context.Context, workspaceRoot string) domain.TrustState {
	root, err := filepath.Abs(workspaceRoot)
	if err != nil {
		root = workspaceRoot
	}
	state := domain.TrustState{WorkspaceRoot: root}

	if r.store != nil {
		trusted, found, err := r.store.GetTrust(ctx, root)
		if err != nil {
			logger.Warn("Failed to read workspace trust, treating as untrusted", "workspace", root, "error", err)
			return state
		}
		if found {
			state.WorkspaceTrusted = trusted
			return state
		}
	}

	for _, folder := range r.trustedFolders {
		if withinRoot(folder, root) {
			state.WorkspaceTrusted = true
			break
		}
	}
	return state
}

// SetTrust stores an explicit trust flag for workspaceRoot
func (r *TrustResolver) SetTrust(ctx context.Context, workspaceRoot string, trusted bool) error {
	root, err := filepath.Abs(workspaceRoot)
	if err != nil {
		return fmt.Errorf("failed to resolve workspace path: %w", err)
	}
	if err := r.store.SetTrust(ctx, root, trusted); err != nil {
		return err
	}
	logger.Info("Workspace trust updated", "workspace", root, "trusted", trusted)
	return nil
}
