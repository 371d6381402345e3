package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	defaultTimeout = 10 * time.Second
	indexTimeout   = 30 * time.Second

	// DefaultDatabase is the database the vault rows were first loaded into.
	DefaultDatabase = "hackathon"

	appName = "secure-vault"
)

// Config captures the settings for the vault's MongoDB store.
type Config struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration
}

func (c Config) withDefaults() Config {
	if c.Database == "" {
		c.Database = DefaultDatabase
	}
	if c.Collection == "" {
		c.Collection = DefaultCollection
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	return c
}

// Store is a connected vault database with its record repository.
type Store struct {
	client  *mongo.Client
	Records *RecordRepository
	cfg     Config
}

// Connect dials MongoDB, pings the primary, and creates the blind index
// lookups on the record collection. Server selection is bounded by the
// configured timeout so an unreachable cluster fails startup instead of
// stalling it.
func Connect(ctx context.Context, cfg Config) (*Store, error) {
	cfg = cfg.withDefaults()

	connectCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName).
		SetServerSelectionTimeout(cfg.Timeout)

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	repo := NewRecordRepository(client.Database(cfg.Database), cfg.Collection)

	indexCtx, cancelIndex := context.WithTimeout(ctx, indexTimeout)
	defer cancelIndex()
	if err := repo.EnsureIndexes(indexCtx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo indexes on %s.%s: %w", cfg.Database, cfg.Collection, err)
	}

	return &Store{client: client, Records: repo, cfg: cfg}, nil
}

// Database reports the database name in use.
func (s *Store) Database() string { return s.cfg.Database }

// Collection reports the record collection name in use.
func (s *Store) Collection() string { return s.cfg.Collection }

// Ping is the readiness probe for the store.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
