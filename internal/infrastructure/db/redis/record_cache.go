package redis

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/securevault/vault-system/internal/core/domain"
)

const defaultRecordTTL = 5 * time.Minute

// RecordCache keeps sealed rows in Redis. Only ciphertext is cached, never
// the opened document.
// Key format: vault:record:<column>:<hex blind index>
type RecordCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRecordCache creates a RecordCache wrapping the given Redis client.
func NewRecordCache(client *redis.Client, ttl time.Duration) *RecordCache {
	if ttl <= 0 {
		ttl = defaultRecordTTL
	}
	return &RecordCache{client: client, ttl: ttl}
}

// Get returns the cached row for index, if present.
func (c *RecordCache) Get(ctx context.Context, column domain.IndexColumn, index []byte) (*domain.SealedRecord, bool, error) {
	raw, err := c.client.Get(ctx, c.key(column, index)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("record cache get: %w", err)
	}

	var rec domain.SealedRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, false, fmt.Errorf("record cache decode: %w", err)
	}
	return &rec, true, nil
}

// Put caches rec under its blind index for column (expires after ttl).
func (c *RecordCache) Put(ctx context.Context, column domain.IndexColumn, rec *domain.SealedRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("record cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(column, rec.Index(column)), raw, c.ttl).Err()
}

// TTL reports how long cached rows live.
func (c *RecordCache) TTL() time.Duration { return c.ttl }

// Ping is the readiness probe for the cache.
func (c *RecordCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the underlying client.
func (c *RecordCache) Close() error {
	return c.client.Close()
}

func (c *RecordCache) key(column domain.IndexColumn, index []byte) string {
	return fmt.Sprintf("vault:record:%s:%s", column, hex.EncodeToString(index))
}
