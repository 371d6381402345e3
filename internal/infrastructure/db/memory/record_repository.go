// Package memory holds an in-process record store for development and tests.
package memory

import (
	"bytes"
	"context"
	"sync"

	"github.com/securevault/vault-system/internal/core/domain"
)

// RecordRepository keeps sealed rows in insertion order.
type RecordRepository struct {
	mu   sync.RWMutex
	rows []domain.SealedRecord
}

func NewRecordRepository() *RecordRepository {
	return &RecordRepository{}
}

func (r *RecordRepository) FindByIndex(_ context.Context, column domain.IndexColumn, index []byte) (*domain.SealedRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.rows {
		if bytes.Equal(r.rows[i].Index(column), index) {
			rec := cloneRecord(r.rows[i])
			return &rec, nil
		}
	}
	return nil, domain.ErrRecordNotFound
}

func (r *RecordRepository) Insert(_ context.Context, rec *domain.SealedRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rows = append(r.rows, cloneRecord(*rec))
	return nil
}

// Len reports how many rows are stored.
func (r *RecordRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rows)
}

func cloneRecord(rec domain.SealedRecord) domain.SealedRecord {
	return domain.SealedRecord{
		AccountIndex: bytes.Clone(rec.AccountIndex),
		NameIndex:    bytes.Clone(rec.NameIndex),
		Ciphertext:   bytes.Clone(rec.Ciphertext),
		Nonce:        bytes.Clone(rec.Nonce),
		AuthTag:      bytes.Clone(rec.AuthTag),
	}
}
