package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/iancoleman/orderedmap"
	"github.com/rs/zerolog"

	"github.com/securevault/vault-system/internal/api/metrics"
	"github.com/securevault/vault-system/internal/core/domain"
	"github.com/securevault/vault-system/internal/core/ports"
)

type vaultService struct {
	repo    ports.RecordRepository
	cache   ports.RecordCache
	indexer ports.BlindIndexer
	sealer  ports.Sealer
	log     zerolog.Logger
}

// NewVaultService returns a VaultService implementation. cache may be nil.
func NewVaultService(
	repo ports.RecordRepository,
	cache ports.RecordCache,
	indexer ports.BlindIndexer,
	sealer ports.Sealer,
	log zerolog.Logger,
) ports.VaultService {
	return &vaultService{
		repo:    repo,
		cache:   cache,
		indexer: indexer,
		sealer:  sealer,
		log:     log,
	}
}

// Search finds one record by blind index, opens it, and discloses its data
// only to the admin role. The role is whatever the caller claims.
func (s *vaultService) Search(ctx context.Context, in ports.SearchInput) (*ports.SearchResult, error) {
	start := time.Now()
	role := domain.ParseRole(in.Role)

	res, err := s.search(ctx, in, role)

	result := searchResultLabel(err)
	metrics.SearchesTotal.WithLabelValues(fieldLabel(in.Field), string(role), result).Inc()
	metrics.SearchDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
	return res, err
}

func (s *vaultService) search(ctx context.Context, in ports.SearchInput, role domain.Role) (*ports.SearchResult, error) {
	if in.Field == "" || in.Value == "" {
		return nil, domain.ErrMissingQuery
	}

	// 1. Route the field to its blind index column.
	column, value, err := resolveField(domain.SearchField(in.Field), in.Value)
	if err != nil {
		s.log.Warn().Str("field", in.Field).Msg("unsupported search field")
		return nil, err
	}

	// 2. Find the sealed record.
	rec, err := s.find(ctx, column, s.indexer.Index(value))
	if err != nil {
		return nil, err
	}

	// 3. Open it.
	plaintext, err := s.sealer.Open(rec.Ciphertext, rec.Nonce, rec.AuthTag)
	if err != nil {
		metrics.DecryptFailuresTotal.Inc()
		s.log.Error().Err(err).Str("column", string(column)).Msg("failed to open record")
		return nil, fmt.Errorf("search: %w", domain.ErrDecryptionFailed)
	}
	data, err := decodeRecord(plaintext)
	if err != nil {
		metrics.DecryptFailuresTotal.Inc()
		s.log.Error().Err(err).Str("column", string(column)).Msg("opened record is not a JSON object")
		return nil, fmt.Errorf("search: %w", domain.ErrDecryptionFailed)
	}

	// 4. Disclose by claimed role.
	out := &ports.SearchResult{Role: string(role)}
	if role.Privileged() {
		out.Data = data
		metrics.DisclosuresTotal.WithLabelValues(string(role), "full").Inc()
	} else {
		metrics.DisclosuresTotal.WithLabelValues(string(role), "redacted").Inc()
	}

	s.log.Info().
		Str("field", in.Field).
		Str("role", string(role)).
		Bool("disclosed", out.Data != nil).
		Msg("record found")

	return out, nil
}

// find consults the cache before the store. Cache failures never fail a search.
func (s *vaultService) find(ctx context.Context, column domain.IndexColumn, index []byte) (*domain.SealedRecord, error) {
	if s.cache != nil {
		rec, ok, err := s.cache.Get(ctx, column, index)
		switch {
		case err != nil:
			metrics.RecordCacheTotal.WithLabelValues("error").Inc()
			s.log.Warn().Err(err).Msg("record cache read failed, using store")
		case ok:
			metrics.RecordCacheTotal.WithLabelValues("hit").Inc()
			return rec, nil
		default:
			metrics.RecordCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	rec, err := s.repo.FindByIndex(ctx, column, index)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("find record: %w: %w", domain.ErrStoreUnavailable, err)
	}

	if s.cache != nil {
		if err := s.cache.Put(ctx, column, rec); err != nil {
			s.log.Warn().Err(err).Msg("failed to cache record")
		}
	}
	return rec, nil
}

// Import seals one plaintext record and stores it under both blind indexes.
func (s *vaultService) Import(ctx context.Context, in ports.ImportInput) error {
	if in.AccountID == "" || in.CustomerName == "" || in.Data == nil {
		metrics.RecordsImportedTotal.WithLabelValues("invalid").Inc()
		return fmt.Errorf("import: %w", domain.ErrMissingQuery)
	}

	plaintext, err := json.Marshal(in.Data)
	if err != nil {
		metrics.RecordsImportedTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("import: encode data: %w", err)
	}

	ciphertext, nonce, tag, err := s.sealer.Seal(plaintext)
	if err != nil {
		metrics.RecordsImportedTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("import: seal: %w", err)
	}

	rec := &domain.SealedRecord{
		AccountIndex: s.indexer.Index(in.AccountID),
		NameIndex:    s.indexer.Index(NormalizeName(in.CustomerName)),
		Ciphertext:   ciphertext,
		Nonce:        nonce,
		AuthTag:      tag,
	}
	if err := s.repo.Insert(ctx, rec); err != nil {
		metrics.RecordsImportedTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("import: insert: %w", err)
	}

	metrics.RecordsImportedTotal.WithLabelValues("ok").Inc()
	s.log.Debug().Str("account_id", in.AccountID).Msg("record imported")
	return nil
}

// decodeRecord parses opened plaintext, which must be a JSON object.
func decodeRecord(plaintext []byte) (*orderedmap.OrderedMap, error) {
	if !bytes.HasPrefix(bytes.TrimSpace(plaintext), []byte("{")) {
		return nil, errors.New("record plaintext is not a JSON object")
	}
	data := orderedmap.New()
	if err := json.Unmarshal(plaintext, data); err != nil {
		return nil, err
	}
	return data, nil
}

func resolveField(field domain.SearchField, value string) (domain.IndexColumn, string, error) {
	switch field {
	case domain.FieldCustomerName, domain.FieldName:
		return domain.IndexName, NormalizeName(value), nil
	case domain.FieldAccountID:
		return domain.IndexAccountID, value, nil
	default:
		return "", "", fmt.Errorf("search: %w", domain.ErrInvalidField)
	}
}

func fieldLabel(field string) string {
	switch domain.SearchField(field) {
	case domain.FieldAccountID, domain.FieldCustomerName, domain.FieldName:
		return field
	default:
		return "other"
	}
}

func searchResultLabel(err error) string {
	switch {
	case err == nil:
		return "found"
	case errors.Is(err, domain.ErrRecordNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrMissingQuery), errors.Is(err, domain.ErrInvalidField):
		return "invalid"
	default:
		return "error"
	}
}
