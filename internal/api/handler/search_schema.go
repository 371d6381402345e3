package handler

import (
	"strconv"
	"strings"

	"github.com/iancoleman/orderedmap"

	"github.com/securevault/vault-system/internal/core/domain"
)

// --- Request / Response types ---

// searchQuery is the normalised request body. Field and value arrive as
// loosely typed JSON and are folded to text before validation.
type searchQuery struct {
	Field string `validate:"required"`
	Value string `validate:"required"`
	Role  string
}

type searchResponse struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message"`
	Data    *orderedmap.OrderedMap `json:"data,omitempty"`
}

func newSearchQuery(payload map[string]any) searchQuery {
	q := searchQuery{
		Field: text(payload["field"]),
		Value: text(payload["value"]),
		Role:  string(domain.RoleUser),
	}
	if raw, ok := payload["role"]; ok {
		q.Role = strings.ToLower(strings.TrimSpace(text(raw)))
	}
	return q
}

// text renders a scalar JSON value the way it is hashed. Numbers use their
// shortest decimal form, so 0 is a valid value and 1.0 hashes as "1".
// Anything that is not a string or a number counts as absent.
func text(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}
