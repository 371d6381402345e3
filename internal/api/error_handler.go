package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/securevault/vault-system/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// notFoundResponse is the body of a search that matched no record.
type notFoundResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes and envelopes.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, any) {
	// Echo's own errors (router 404/405, body limit, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	switch {
	case errors.Is(err, domain.ErrEmptyPayload):
		return http.StatusBadRequest, errorResponse{Error: "No data provided"}
	case errors.Is(err, domain.ErrMissingQuery):
		return http.StatusBadRequest, errorResponse{Error: "Missing field or value"}
	case errors.Is(err, domain.ErrInvalidField):
		return http.StatusBadRequest, errorResponse{Error: "Invalid search field"}
	case errors.Is(err, domain.ErrRecordNotFound):
		return http.StatusNotFound, notFoundResponse{Status: "not_found", Message: "Data not found"}
	case errors.Is(err, domain.ErrDecryptionFailed):
		return http.StatusInternalServerError, errorResponse{Error: "Decryption failed"}
	case errors.Is(err, domain.ErrStoreUnavailable):
		log.Error().Err(err).Str("path", c.Path()).Msg("record store failure")
		return http.StatusInternalServerError, errorResponse{Error: "Database error"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "Internal server error"}
}
