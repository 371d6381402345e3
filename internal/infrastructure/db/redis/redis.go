package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultTimeout = 5 * time.Second

	// DefaultAddr is the local Redis used when no address is configured.
	DefaultAddr = "localhost:6379"

	// Cache calls sit on the search path and must give up quickly; a miss
	// falls through to the record store.
	opTimeout = 500 * time.Millisecond

	clientName = "secure-vault"
)

// Config captures the settings for the sealed record cache.
type Config struct {
	Addr    string
	DB      int
	TTL     time.Duration
	Timeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.TTL <= 0 {
		c.TTL = defaultRecordTTL
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	return c
}

func (c Config) options() *redis.Options {
	return &redis.Options{
		Addr:         c.Addr,
		DB:           c.DB,
		ClientName:   clientName,
		DialTimeout:  c.Timeout,
		ReadTimeout:  opTimeout,
		WriteTimeout: opTimeout,
		MaxRetries:   1,
	}
}

// Connect opens the record cache and validates connectivity with a ping.
func Connect(ctx context.Context, cfg Config) (*RecordCache, error) {
	cfg = cfg.withDefaults()
	client := redis.NewClient(cfg.options())

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}

	return NewRecordCache(client, cfg.TTL), nil
}
