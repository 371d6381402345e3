package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/securevault/vault-system/internal/core/domain"
	"github.com/securevault/vault-system/internal/core/ports"
)

const searchSuccessMessage = "Search successful"

type SearchHandler struct {
	service ports.VaultService
	binder  echo.DefaultBinder
}

func NewSearchHandler(service ports.VaultService) *SearchHandler {
	return &SearchHandler{service: service}
}

// Search looks up one sealed record by blind index.
//
// Errors are returned to the HTTP error handler, which owns the status
// mapping and the response envelope.
func (h *SearchHandler) Search(c echo.Context) error {
	var payload map[string]any
	if err := h.binder.BindBody(c, &payload); err != nil || len(payload) == 0 {
		return domain.ErrEmptyPayload
	}

	q := newSearchQuery(payload)
	if err := c.Validate(&q); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMissingQuery, err)
	}

	res, err := h.service.Search(c.Request().Context(), ports.SearchInput{
		Field: q.Field,
		Value: q.Value,
		Role:  q.Role,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, searchResponse{
		Status:  "ok",
		Message: searchSuccessMessage,
		Data:    res.Data,
	})
}
