package ports

import (
	"context"

	"github.com/securevault/vault-system/internal/core/domain"
)

// RecordRepository persists sealed vault records.
type RecordRepository interface {
	// FindByIndex returns the first record whose blind index in column equals
	// index, or domain.ErrRecordNotFound.
	FindByIndex(ctx context.Context, column domain.IndexColumn, index []byte) (*domain.SealedRecord, error)
	Insert(ctx context.Context, record *domain.SealedRecord) error
}

// RecordCache keeps recently found sealed records close to the service.
type RecordCache interface {
	Get(ctx context.Context, column domain.IndexColumn, index []byte) (*domain.SealedRecord, bool, error)
	Put(ctx context.Context, column domain.IndexColumn, record *domain.SealedRecord) error
}
