package domain

import "fmt"

// OutcomeKind discriminates the Outcome union.
type OutcomeKind int

const (
	OutcomeNone OutcomeKind = iota
	OutcomeNotFound
	OutcomeFailure
	OutcomeSuccess
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeNotFound:
		return "not_found"
	case OutcomeFailure:
		return "failure"
	case OutcomeSuccess:
		return "success"
	default:
		return "none"
	}
}

// ConnectionFailedMessage is surfaced when the lookup never produced a
// usable HTTP response.
const ConnectionFailedMessage = "CONNECTION_FAILED: BACKEND_OFFLINE"

// Outcome is the single recorded result of a lookup. Exactly one of
// {not found, failure, success} is set, or none before the first search.
type Outcome struct {
	Kind OutcomeKind
	// Error is the user-facing failure text (OutcomeFailure only).
	Error string
	// StatusCode is the HTTP status of a failed call, 0 for transport errors.
	StatusCode int
	// Body is the decoded 2xx response body, kept as-is (OutcomeSuccess only).
	Body any
}

func NotFound() Outcome {
	return Outcome{Kind: OutcomeNotFound}
}

// StatusFailure records a non-2xx, non-404 response.
func StatusFailure(code int) Outcome {
	return Outcome{
		Kind:       OutcomeFailure,
		Error:      fmt.Sprintf("ERROR: SYSTEM_FAILURE_CODE_%d", code),
		StatusCode: code,
	}
}

// ConnectionFailure records a call that failed before a response was read.
func ConnectionFailure() Outcome {
	return Outcome{Kind: OutcomeFailure, Error: ConnectionFailedMessage}
}

func Success(body any) Outcome {
	return Outcome{Kind: OutcomeSuccess, Body: body}
}

// HasResult reports whether a non-error result is recorded.
func (o Outcome) HasResult() bool {
	return o.Kind == OutcomeNotFound || o.Kind == OutcomeSuccess
}

// HasError reports whether an error is recorded.
func (o Outcome) HasError() bool {
	return o.Kind == OutcomeFailure
}
