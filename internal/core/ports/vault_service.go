package ports

import (
	"context"

	"github.com/iancoleman/orderedmap"
)

// SearchInput is the DTO passed from the transport layer to VaultService.
type SearchInput struct {
	Field string
	Value string
	// Role is the caller's own claim; it is normalised but never verified.
	Role string
}

// SearchResult is returned for a found record. Data is nil unless the
// caller's role is privileged.
type SearchResult struct {
	Role string
	Data *orderedmap.OrderedMap
}

// ImportInput carries one plaintext record to be sealed and stored.
type ImportInput struct {
	AccountID    string
	CustomerName string
	Data         *orderedmap.OrderedMap
}

// VaultService defines the secure-search use cases.
type VaultService interface {
	Search(ctx context.Context, in SearchInput) (*SearchResult, error)
	Import(ctx context.Context, in ImportInput) error
}
