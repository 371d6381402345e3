package ports

import (
	"context"

	"github.com/securevault/vault-system/internal/core/domain"
)

// RecordLookup issues one remote secure-search call. Every path, including
// transport failures, collapses into exactly one Outcome.
type RecordLookup interface {
	Lookup(ctx context.Context, req domain.SearchRequest) domain.Outcome
}
