package integrity

import (
	"context"
	"fmt"
	"sync"

	config "github.com/inference-gateway/toolgate/config"
	domain "github.com/inference-gateway/toolgate/internal/domain"
	logger "github.com/inference-gateway/toolgate/internal/logger"
	policy "github.com/inference-gateway/toolgate/internal/services/policy"
)

// LoadResult reports what the gate did for one policy directory
type LoadResult struct {
	Status    domain.IntegrityStatus
	Hash      string
	FileCount int
	RuleCount int
	// Loaded is false when the update was rejected or blocked
	Loaded bool
	// AutoAccepted is set when a non-interactive run accepted the hash
	AutoAccepted bool
}

// Manager hashes policy directories, compares them with the accepted hashes
// and only publishes rules that have been accepted.
type Manager struct {
	store       domain.IntegrityStore
	rules       *policy.RuleStore
	confirmer   domain.PolicyUpdateConfirmer
	interactive bool
	autoAccept  bool

	// serializes check+accept+publish per process
	mu sync.Mutex
}

// NewManager creates an integrity manager. confirmer is required in interactive mode.
func NewManager(store domain.IntegrityStore, rules *policy.RuleStore, confirmer domain.PolicyUpdateConfirmer, interactive bool, cfg config.IntegrityConfig) *Manager {
	return &Manager{
		store:       store,
		rules:       rules,
		confirmer:   confirmer,
		interactive: interactive,
		autoAccept:  cfg.AutoAcceptNonInteractive,
	}
}

// CheckIntegrity hashes policyDir and compares it with the last accepted hash
func (m *Manager) CheckIntegrity(ctx context.Context, scope domain.PolicyScope, identifier, policyDir string) (domain.IntegrityResult, error) {
	_, result, err := m.check(ctx, scope, identifier, policyDir)
	return result, err
}

func (m *Manager) check(ctx context.Context, scope domain.PolicyScope, identifier, policyDir string) (*Snapshot, domain.IntegrityResult, error) {
	snap, err := ReadSnapshot(policyDir)
	if err != nil {
		return nil, domain.IntegrityResult{}, &domain.IntegrityCheckError{Scope: scope, Identifier: identifier, PolicyDir: policyDir, Err: err}
	}

	rec, err := m.store.GetRecord(ctx, scope, identifier)
	if err != nil {
		return nil, domain.IntegrityResult{}, &domain.IntegrityCheckError{
			Scope: scope, Identifier: identifier, PolicyDir: policyDir,
			Err: fmt.Errorf("failed to read accepted hash: %w", err),
		}
	}

	result := domain.IntegrityResult{Hash: snap.Hash, FileCount: snap.FileCount()}
	switch {
	case rec == nil || rec.AcceptedHash == "":
		result.Status = domain.IntegrityNew
	case rec.AcceptedHash == snap.Hash:
		result.Status = domain.IntegrityMatch
	default:
		result.Status = domain.IntegrityChanged
	}

	logger.Debug("Policy integrity checked",
		"scope", scope,
		"identifier", identifier,
		"dir", policyDir,
		"status", result.Status,
		"files", result.FileCount,
	)
	return snap, result, nil
}

// AcceptIntegrity records hash as accepted for scope+identifier
func (m *Manager) AcceptIntegrity(ctx context.Context, scope domain.PolicyScope, identifier, hash string) error {
	if err := m.store.AcceptHash(ctx, scope, identifier, hash); err != nil {
		return fmt.Errorf("failed to accept policy hash: %w", err)
	}
	logger.Info("Policy hash accepted", "scope", scope, "identifier", identifier, "hash", shortHash(hash))
	return nil
}

// RejectIntegrity logs the rejection; the accepted hash is left untouched
func (m *Manager) RejectIntegrity(ctx context.Context, scope domain.PolicyScope, identifier, hash string) {
	logger.Warn("Policy update rejected, keeping previously accepted policies",
		"scope", scope,
		"identifier", identifier,
		"hash", shortHash(hash),
	)
}

// LoadPolicies runs the integrity gate for one policy directory and, when the
// content is accepted, publishes its rules as the scope+identifier layer.
// A hashing failure loads nothing. A blocked or rejected update returns an
// error wrapping ErrIntegrityBlocked and keeps the previous layer.
func (m *Manager) LoadPolicies(ctx context.Context, scope domain.PolicyScope, identifier, policyDir string) (LoadResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap, result, err := m.check(ctx, scope, identifier, policyDir)
	if err != nil {
		logger.Error("Policy integrity check failed, policies not loaded", "scope", scope, "dir", policyDir, "error", err)
		return LoadResult{}, err
	}

	out := LoadResult{Status: result.Status, Hash: result.Hash, FileCount: result.FileCount}

	needsReview := NeedsReview(result)
	if needsReview {
		accepted, auto, err := m.confirm(ctx, scope, identifier, policyDir, result)
		if err != nil {
			return out, err
		}
		if !accepted {
			m.RejectIntegrity(ctx, scope, identifier, result.Hash)
			return out, fmt.Errorf("%s policies in %s: %w", scope, policyDir, domain.ErrIntegrityBlocked)
		}
		out.AutoAccepted = auto
	}

	rules, err := policy.LoadRules(scope, snap.Files)
	if err != nil {
		logger.Error("Failed to parse policies, previous rules stay active", "scope", scope, "dir", policyDir, "error", err)
		return out, err
	}

	if needsReview {
		if err := m.AcceptIntegrity(ctx, scope, identifier, result.Hash); err != nil {
			return out, err
		}
	}

	m.rules.ReplaceLayer(policy.Layer{Scope: scope, Identifier: identifier, Rules: rules})
	out.Loaded = true
	out.RuleCount = len(rules)

	logger.Info("Policies loaded", "scope", scope, "identifier", identifier, "rules", len(rules), "status", result.Status)
	return out, nil
}

// confirm decides whether a NEW or CHANGED directory may be loaded
func (m *Manager) confirm(ctx context.Context, scope domain.PolicyScope, identifier, policyDir string, result domain.IntegrityResult) (accepted, auto bool, err error) {
	if !m.interactive {
		if !m.autoAccept {
			logger.Warn("Policy update requires review; auto-accept is disabled for non-interactive runs",
				"scope", scope, "dir", policyDir, "status", result.Status)
			return false, false, nil
		}
		logger.Warn("Auto-accepting policy update in non-interactive mode",
			"scope", scope,
			"identifier", identifier,
			"dir", policyDir,
			"status", result.Status,
			"files", result.FileCount,
			"hash", shortHash(result.Hash),
		)
		return true, true, nil
	}

	if m.confirmer == nil {
		logger.Warn("No front-end to confirm policy update", "scope", scope, "dir", policyDir)
		return false, false, nil
	}

	ok, err := m.confirmer.ConfirmPolicyUpdate(ctx, domain.PolicyUpdateConfirmationRequest{
		Scope:      scope,
		Identifier: identifier,
		PolicyDir:  policyDir,
		Status:     result.Status,
		Hash:       result.Hash,
		FileCount:  result.FileCount,
	})
	if err != nil {
		return false, false, fmt.Errorf("failed to confirm policy update: %w", err)
	}
	return ok, false, nil
}

// NeedsReview reports whether a result must be accepted before loading.
// MATCH loads directly; NEW with zero files has nothing to load.
func NeedsReview(result domain.IntegrityResult) bool {
	switch result.Status {
	case domain.IntegrityMatch:
		return false
	case domain.IntegrityNew:
		return result.FileCount > 0
	default:
		return true
	}
}

func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
