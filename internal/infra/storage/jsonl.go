package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	config "github.com/inference-gateway/toolgate/config"
	domain "github.com/inference-gateway/toolgate/internal/domain"
	logger "github.com/inference-gateway/toolgate/internal/logger"
)

const (
	jsonlFormatVersion = 1
	jsonlFileName      = "integrity.jsonl"

	lineTypeAccept = "accept"
	lineTypeTrust  = "trust"
)

// JsonlStorage implements IntegrityStore as an append-only JSONL log.
// The log is replayed into memory on open; every write appends one line.
type JsonlStorage struct {
	path    string
	mu      sync.RWMutex
	records map[string]domain.IntegrityRecord
	trust   map[string]bool
	now     func() time.Time
}

// logLine is a single entry of the JSONL log
type logLine struct {
	Version    int                `json:"v"`
	Type       string             `json:"type"`
	Scope      domain.PolicyScope `json:"scope,omitempty"`
	Identifier string             `json:"identifier,omitempty"`
	Hash       string             `json:"hash,omitempty"`
	Workspace  string             `json:"workspace,omitempty"`
	Trusted    bool               `json:"trusted,omitempty"`
	Time       time.Time          `json:"time"`
}

// NewJsonlStorage creates a new JSONL storage instance
func NewJsonlStorage(cfg config.JsonlConfig) (*JsonlStorage, error) {
	dir := config.ExpandPath(cfg.Path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create integrity directory: %w", err)
	}

	s := &JsonlStorage{
		path:    filepath.Join(dir, jsonlFileName),
		records: make(map[string]domain.IntegrityRecord),
		trust:   make(map[string]bool),
		now:     time.Now,
	}

	if err := s.replay(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *JsonlStorage) replay() error {
	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open integrity log: %w", err)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var line logLine
		if err := json.Unmarshal(scanner.Bytes(), &line); err != nil {
			logger.Warn("Skipping malformed integrity log line", "path", s.path, "line", lineNo, "error", err)
			continue
		}
		s.apply(line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read integrity log: %w", err)
	}
	return nil
}

func (s *JsonlStorage) apply(line logLine) {
	switch line.Type {
	case lineTypeAccept:
		key := domain.IntegrityKey(line.Scope, line.Identifier)
		var prev *domain.IntegrityRecord
		if rec, ok := s.records[key]; ok {
			prev = &rec
		}
		s.records[key] = applyAccept(prev, line.Scope, line.Identifier, line.Hash, line.Time)
	case lineTypeTrust:
		s.trust[line.Workspace] = line.Trusted
	}
}

func (s *JsonlStorage) append(line logLine) error {
	line.Version = jsonlFormatVersion
	data, err := json.Marshal(line)
	if err != nil {
		return fmt.Errorf("failed to marshal integrity log line: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open integrity log: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to append integrity log: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("failed to sync integrity log: %w", err)
	}

	s.apply(line)
	return nil
}

// GetRecord returns the record for scope+identifier
func (s *JsonlStorage) GetRecord(ctx context.Context, scope domain.PolicyScope, identifier string) (*domain.IntegrityRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[domain.IntegrityKey(scope, identifier)]
	if !ok {
		return nil, nil
	}
	return copyRecord(rec), nil
}

// AcceptHash appends an accept line
func (s *JsonlStorage) AcceptHash(ctx context.Context, scope domain.PolicyScope, identifier, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.append(logLine{
		Type:       lineTypeAccept,
		Scope:      scope,
		Identifier: identifier,
		Hash:       hash,
		Time:       s.now().UTC(),
	})
}

// ListRecords returns all records ordered by key
func (s *JsonlStorage) ListRecords(ctx context.Context) ([]domain.IntegrityRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.IntegrityRecord, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, *copyRecord(rec))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out, nil
}

// GetTrust returns the stored trust flag for a workspace
func (s *JsonlStorage) GetTrust(ctx context.Context, workspace string) (bool, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trusted, ok := s.trust[workspace]
	return trusted, ok, nil
}

// SetTrust appends a trust line
func (s *JsonlStorage) SetTrust(ctx context.Context, workspace string, trusted bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.append(logLine{
		Type:      lineTypeTrust,
		Workspace: workspace,
		Trusted:   trusted,
		Time:      s.now().UTC(),
	})
}

// Close is a no-op; every write is synced
func (s *JsonlStorage) Close() error {
	return nil
}

// Health checks that the log directory is writable
func (s *JsonlStorage) Health(ctx context.Context) error {
	testFile := filepath.Join(filepath.Dir(s.path), ".write_test")
	if err := os.WriteFile(testFile, []byte("test"), 0600); err != nil {
		return fmt.Errorf("integrity directory not writable: %w", err)
	}
	_ = os.Remove(testFile)
	return nil
}
