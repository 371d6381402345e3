package domain

import "errors"

// SearchField selects which blind index a lookup is matched against.
type SearchField string

const (
	FieldAccountID    SearchField = "account_id"
	FieldCustomerName SearchField = "customer_name"
	// FieldName is accepted by the service as an alias of FieldCustomerName.
	FieldName SearchField = "name"
)

var (
	ErrEmptyPayload   = errors.New("no data provided")
	ErrMissingQuery   = errors.New("missing field or value")
	ErrInvalidField   = errors.New("invalid search field")
	ErrSearchInFlight = errors.New("a search is already in flight")
)

// Label returns the form label shown for the field.
func (f SearchField) Label() string {
	switch f {
	case FieldAccountID:
		return "Account ID"
	case FieldCustomerName, FieldName:
		return "Customer Name"
	default:
		return string(f)
	}
}

// Other returns the opposite search mode of the terminal selector.
func (f SearchField) Other() SearchField {
	if f == FieldAccountID {
		return FieldCustomerName
	}
	return FieldAccountID
}

// SearchQuery is the predicate collected by the search form.
type SearchQuery struct {
	Field SearchField
	Value string
}

// SearchRequest is the wire body of a secure-search call. Role is the
// client's own assertion and is not verified by anyone.
type SearchRequest struct {
	Field SearchField `json:"field"`
	Value string      `json:"value"`
	Role  Role        `json:"role"`
}
