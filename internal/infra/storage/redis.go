package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	redis "github.com/go-redis/redis/v8"
	config "github.com/inference-gateway/toolgate/config"
	domain "github.com/inference-gateway/toolgate/internal/domain"
	logger "github.com/inference-gateway/toolgate/internal/logger"
)

const redisMaxRetries = 5

// RedisStorage implements IntegrityStore using Redis.
// Records are JSON values; trust flags live in a single hash.
type RedisStorage struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// NewRedisStorage creates a new Redis storage instance
func NewRedisStorage(cfg config.RedisConfig) (*RedisStorage, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		DB:       cfg.Database,
		Password: cfg.Password,
		Username: cfg.Username,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "toolgate"
	}

	logger.Debug("Connected to Redis integrity store", "addr", client.Options().Addr, "prefix", prefix)
	return newRedisStorageWithClient(client, prefix), nil
}

func newRedisStorageWithClient(client *redis.Client, prefix string) *RedisStorage {
	return &RedisStorage{client: client, prefix: prefix, now: time.Now}
}

func (s *RedisStorage) recordKey(key string) string {
	return fmt.Sprintf("%s:integrity:%s", s.prefix, key)
}

func (s *RedisStorage) indexKey() string {
	return s.prefix + ":integrity:index"
}

func (s *RedisStorage) trustKey() string {
	return s.prefix + ":trust"
}

// GetRecord returns the record for scope+identifier
func (s *RedisStorage) GetRecord(ctx context.Context, scope domain.PolicyScope, identifier string) (*domain.IntegrityRecord, error) {
	data, err := s.client.Get(ctx, s.recordKey(domain.IntegrityKey(scope, identifier))).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load integrity record: %w", err)
	}

	var rec domain.IntegrityRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal integrity record: %w", err)
	}
	return &rec, nil
}

// AcceptHash updates the record under WATCH so concurrent accepts do not lose history
func (s *RedisStorage) AcceptHash(ctx context.Context, scope domain.PolicyScope, identifier, hash string) error {
	key := domain.IntegrityKey(scope, identifier)
	rkey := s.recordKey(key)

	txf := func(tx *redis.Tx) error {
		var prev *domain.IntegrityRecord
		data, err := tx.Get(ctx, rkey).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
		case err != nil:
			return err
		default:
			var rec domain.IntegrityRecord
			if err := json.Unmarshal(data, &rec); err != nil {
				return fmt.Errorf("failed to unmarshal integrity record: %w", err)
			}
			prev = &rec
		}

		next := applyAccept(prev, scope, identifier, hash, s.now().UTC())
		encoded, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("failed to marshal integrity record: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, rkey, encoded, 0)
			pipe.SAdd(ctx, s.indexKey(), key)
			return nil
		})
		return err
	}

	for i := 0; i < redisMaxRetries; i++ {
		err := s.client.Watch(ctx, txf, rkey)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return fmt.Errorf("failed to accept integrity hash: %w", err)
	}
	return fmt.Errorf("failed to accept integrity hash: too many concurrent updates for %s", key)
}

// ListRecords returns all records ordered by key
func (s *RedisStorage) ListRecords(ctx context.Context) ([]domain.IntegrityRecord, error) {
	keys, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read integrity index: %w", err)
	}
	sort.Strings(keys)

	pipe := s.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(keys))
	for i, key := range keys {
		cmds[i] = pipe.Get(ctx, s.recordKey(key))
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to load integrity records: %w", err)
	}

	records := make([]domain.IntegrityRecord, 0, len(keys))
	for i, cmd := range cmds {
		data, err := cmd.Bytes()
		if errors.Is(err, redis.Nil) {
			logger.Warn("Integrity index references missing record", "key", keys[i])
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load integrity record %s: %w", keys[i], err)
		}
		var rec domain.IntegrityRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal integrity record %s: %w", keys[i], err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// GetTrust returns the stored trust flag for a workspace
func (s *RedisStorage) GetTrust(ctx context.Context, workspace string) (bool, bool, error) {
	val, err := s.client.HGet(ctx, s.trustKey(), workspace).Result()
	if errors.Is(err, redis.Nil) {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("failed to read workspace trust: %w", err)
	}
	trusted, err := strconv.ParseBool(val)
	if err != nil {
		return false, false, fmt.Errorf("invalid trust flag for %s: %w", workspace, err)
	}
	return trusted, true, nil
}

// SetTrust stores the trust flag for a workspace
func (s *RedisStorage) SetTrust(ctx context.Context, workspace string, trusted bool) error {
	if err := s.client.HSet(ctx, s.trustKey(), workspace, strconv.FormatBool(trusted)).Err(); err != nil {
		return fmt.Errorf("failed to store workspace trust: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (s *RedisStorage) Close() error {
	return s.client.Close()
}

// Health pings Redis
func (s *RedisStorage) Health(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
