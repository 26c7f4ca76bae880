package api

import (
	"github.com/labstack/echo/v4"

	"github.com/dbspend360/dbspend360/internal/store"
)

// IngestionHandler serves the ingestion pipeline's audit and error logs for
// the ops view.
type IngestionHandler struct {
	store *store.Store
}

// NewIngestionHandler creates a new ingestion handler
func NewIngestionHandler(s *store.Store) *IngestionHandler {
	return &IngestionHandler{
		store: s,
	}
}

// ListAudit handles GET /api/v1/ingestion/audit
func (h *IngestionHandler) ListAudit(c echo.Context) error {
	limit, err := parseLimit(c, 50, 500)
	if err != nil {
		return ErrorFromTaxonomy(c, err)
	}

	records, err := h.store.Audit.ListAudit(c.Request().Context(), limit)
	if err != nil {
		return ErrorStore(c, err)
	}

	return SuccessOK(c, records)
}

// ListErrors handles GET /api/v1/ingestion/errors
func (h *IngestionHandler) ListErrors(c echo.Context) error {
	limit, err := parseLimit(c, 50, 500)
	if err != nil {
		return ErrorFromTaxonomy(c, err)
	}

	records, err := h.store.Audit.ListErrors(c.Request().Context(), limit)
	if err != nil {
		return ErrorStore(c, err)
	}

	return SuccessOK(c, records)
}
