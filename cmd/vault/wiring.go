package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/securevault/vault-system/internal/api/handler"
	"github.com/securevault/vault-system/internal/core/ports"
	"github.com/securevault/vault-system/internal/infrastructure/config"
	"github.com/securevault/vault-system/internal/infrastructure/crypto"
	"github.com/securevault/vault-system/internal/infrastructure/db/memory"
	vaultmongo "github.com/securevault/vault-system/internal/infrastructure/db/mongo"
	"github.com/securevault/vault-system/internal/infrastructure/queue"
)

// loadKeys builds the blind indexer and the sealer from hex keys.
func loadKeys(keys config.KeyConfig) (*crypto.BlindIndexer, *crypto.Sealer, error) {
	encKey, err := crypto.ParseHexKey("ENCRYPTION_KEY_HEX", keys.EncryptionKeyHex)
	if err != nil {
		return nil, nil, err
	}
	idxKey, err := crypto.ParseHexKey("INDEX_KEY_HEX", keys.IndexKeyHex)
	if err != nil {
		return nil, nil, err
	}
	sealer, err := crypto.NewSealer(encKey)
	if err != nil {
		return nil, nil, err
	}
	return crypto.NewBlindIndexer(idxKey), sealer, nil
}

type store struct {
	repo   ports.RecordRepository
	checks map[string]handler.Checker
	close  func()
}

// openStore connects the configured record store.
func openStore(ctx context.Context, kind string, cfg config.MongoConfig, log zerolog.Logger) (*store, error) {
	if kind == config.StoreMemory {
		log.Warn().Msg("using in-memory record store; records are lost on exit")
		return &store{
			repo:   memory.NewRecordRepository(),
			checks: map[string]handler.Checker{},
			close:  func() {},
		}, nil
	}

	db, err := vaultmongo.Connect(ctx, vaultmongo.Config{
		URI:        cfg.URI,
		Database:   cfg.Database,
		Collection: cfg.Collection,
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("database", db.Database()).Str("collection", db.Collection()).Msg("connected to mongodb")

	return &store{
		repo:   db.Records,
		checks: map[string]handler.Checker{"mongodb": db.Ping},
		close: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := db.Close(ctx); err != nil {
				log.Warn().Err(err).Msg("mongodb disconnect")
			}
		},
	}, nil
}

// importRecords seals and stores records through the worker dispatcher.
// Cancelling ctx stops the import; the summary still reports what was done.
func importRecords(ctx context.Context, svc ports.VaultService, records []ports.ImportInput, workers int, log zerolog.Logger) (queue.Summary, error) {
	d := queue.NewDispatcher(workers, svc, log)
	d.Start(ctx)
	enqueueErr := d.EnqueueBatch(ctx, records)
	sum := d.Wait()

	ev := log.Info()
	if enqueueErr != nil || sum.Skipped > 0 {
		ev = log.Warn().AnErr("cause", enqueueErr)
	}
	ev.Int("records", len(records)).
		Int64("imported", sum.Imported).
		Int64("failed", sum.Failed).
		Int64("skipped", sum.Skipped).
		Msg("seeding finished")

	if enqueueErr != nil {
		return sum, fmt.Errorf("import interrupted: %w", enqueueErr)
	}
	return sum, nil
}
