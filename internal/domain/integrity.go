package domain

import (
	"context"
	"time"
)

// IntegrityStatus is the result of comparing a policy directory against its accepted hash
type IntegrityStatus int

const (
	IntegrityMatch IntegrityStatus = iota
	IntegrityNew
	IntegrityChanged
)

func (s IntegrityStatus) String() string {
	switch s {
	case IntegrityMatch:
		return "MATCH"
	case IntegrityNew:
		return "NEW"
	case IntegrityChanged:
		return "CHANGED"
	default:
		return "UNKNOWN"
	}
}

// GlobalIdentifier is the identifier used for the global policy scope
const GlobalIdentifier = "global"

// IntegrityResult is returned by an integrity check
type IntegrityResult struct {
	Status    IntegrityStatus
	Hash      string
	FileCount int
}

// AcceptedHash is one entry of an integrity record's acceptance history
type AcceptedHash struct {
	Hash       string    `json:"hash"`
	AcceptedAt time.Time `json:"accepted_at"`
}

// IntegrityRecord is the persisted acceptance state for one scope and identifier
type IntegrityRecord struct {
	Scope        PolicyScope    `json:"scope"`
	Identifier   string         `json:"identifier"`
	AcceptedHash string         `json:"accepted_hash"`
	History      []AcceptedHash `json:"history"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// Key returns the storage key for the record
func (r IntegrityRecord) Key() string {
	return IntegrityKey(r.Scope, r.Identifier)
}

// IntegrityKey builds the storage key for a scope and identifier
func IntegrityKey(scope PolicyScope, identifier string) string {
	return string(scope) + ":" + identifier
}

// PolicyUpdateConfirmationRequest is raised to the interactive front-end before
// new or changed policies take effect
type PolicyUpdateConfirmationRequest struct {
	Scope      PolicyScope
	Identifier string
	PolicyDir  string
	Status     IntegrityStatus
	Hash       string
	FileCount  int
}

//counterfeiter:generate -o ../../tests/mocks/domain/fake_integrity_store.go . IntegrityStore

// IntegrityStore persists accepted policy hashes and workspace trust flags.
// Reads may happen concurrently; writes only happen on explicit accept or trust.
type IntegrityStore interface {
	// GetRecord returns the record for scope+identifier, or nil when none exists
	GetRecord(ctx context.Context, scope PolicyScope, identifier string) (*IntegrityRecord, error)

	// AcceptHash records hash as the accepted hash for scope+identifier
	AcceptHash(ctx context.Context, scope PolicyScope, identifier, hash string) error

	// ListRecords returns all integrity records
	ListRecords(ctx context.Context) ([]IntegrityRecord, error)

	// GetTrust returns the trust flag for a workspace path and whether one is stored
	GetTrust(ctx context.Context, workspace string) (trusted bool, found bool, err error)

	// SetTrust stores the trust flag for a workspace path
	SetTrust(ctx context.Context, workspace string, trusted bool) error

	// Close closes the storage connection
	Close() error

	// Health checks if the storage is healthy and reachable
	Health(ctx context.Context) error
}
