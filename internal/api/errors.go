package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dbspend360/dbspend360/pkg/types"
)

// ErrorResponse represents a standard API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// NewErrorResponse creates a new error response
func NewErrorResponse(code, message string) *ErrorResponse {
	return &ErrorResponse{
		Error:   code,
		Message: message,
	}
}

// ErrorBadRequest returns a 400 Bad Request error with the given code
func ErrorBadRequest(c echo.Context, code, message string) error {
	return c.JSON(http.StatusBadRequest, NewErrorResponse(code, message))
}

// ErrorNotFound returns a 404 Not Found error
func ErrorNotFound(c echo.Context, message string) error {
	return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", message))
}

// ErrorUpstream returns a 503 Service Unavailable error
func ErrorUpstream(c echo.Context, message string) error {
	return c.JSON(http.StatusServiceUnavailable, NewErrorResponse("upstream_unavailable", message))
}

// ErrorInternal returns a 500 Internal Server Error
func ErrorInternal(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", message))
}

// ErrorFromTaxonomy maps a typed domain error onto its HTTP response. Every
// taxonomy kind keeps a distinct machine-checkable error code; nothing is
// collapsed into a generic failure.
func ErrorFromTaxonomy(c echo.Context, err error) error {
	switch {
	case errors.Is(err, types.ErrInvalidRange):
		return ErrorBadRequest(c, "invalid_range", err.Error())
	case errors.Is(err, types.ErrInvalidPage):
		return ErrorBadRequest(c, "invalid_page", err.Error())
	case errors.Is(err, types.ErrMixedCurrency):
		return ErrorBadRequest(c, "mixed_currency", err.Error())
	case errors.Is(err, types.ErrValidation):
		return ErrorBadRequest(c, "validation_failed", err.Error())
	case errors.Is(err, types.ErrNotFound):
		return ErrorNotFound(c, err.Error())
	case errors.Is(err, types.ErrUpstreamUnavailable):
		return ErrorUpstream(c, "cost record store or insight service unavailable")
	default:
		return ErrorInternal(c, err.Error())
	}
}
