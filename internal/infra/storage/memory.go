package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	domain "github.com/inference-gateway/toolgate/internal/domain"
)

// MemoryStorage implements IntegrityStore in memory.
// Accepted hashes are lost when the process exits.
type MemoryStorage struct {
	records map[string]domain.IntegrityRecord
	trust   map[string]bool
	mutex   sync.RWMutex
	now     func() time.Time
}

// NewMemoryStorage creates a new in-memory storage instance
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		records: make(map[string]domain.IntegrityRecord),
		trust:   make(map[string]bool),
		now:     time.Now,
	}
}

// GetRecord returns the record for scope+identifier
func (m *MemoryStorage) GetRecord(ctx context.Context, scope domain.PolicyScope, identifier string) (*domain.IntegrityRecord, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	rec, ok := m.records[domain.IntegrityKey(scope, identifier)]
	if !ok {
		return nil, nil
	}
	return copyRecord(rec), nil
}

// AcceptHash records hash as the accepted hash
func (m *MemoryStorage) AcceptHash(ctx context.Context, scope domain.PolicyScope, identifier, hash string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	key := domain.IntegrityKey(scope, identifier)
	var prev *domain.IntegrityRecord
	if rec, ok := m.records[key]; ok {
		prev = &rec
	}
	m.records[key] = applyAccept(prev, scope, identifier, hash, m.now())
	return nil
}

// ListRecords returns all records ordered by key
func (m *MemoryStorage) ListRecords(ctx context.Context) ([]domain.IntegrityRecord, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	out := make([]domain.IntegrityRecord, 0, len(m.records))
	for _, rec := range m.records {
		out = append(out, *copyRecord(rec))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out, nil
}

// GetTrust returns the stored trust flag for a workspace
func (m *MemoryStorage) GetTrust(ctx context.Context, workspace string) (bool, bool, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	trusted, ok := m.trust[workspace]
	return trusted, ok, nil
}

// SetTrust stores the trust flag for a workspace
func (m *MemoryStorage) SetTrust(ctx context.Context, workspace string, trusted bool) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.trust[workspace] = trusted
	return nil
}

// Close is a no-op for memory storage
func (m *MemoryStorage) Close() error {
	return nil
}

// Health always succeeds for memory storage
func (m *MemoryStorage) Health(ctx context.Context) error {
	return nil
}
