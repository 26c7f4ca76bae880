package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbspend360/dbspend360/pkg/types"
)

func TestErrorFromTaxonomy(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid range", types.ErrInvalidRange, http.StatusBadRequest, "invalid_range"},
		{"invalid page", types.ErrInvalidPage, http.StatusBadRequest, "invalid_page"},
		{"mixed currency", types.ErrMixedCurrency, http.StatusBadRequest, "mixed_currency"},
		{"validation", types.ErrValidation, http.StatusBadRequest, "validation_failed"},
		{"not found", types.ErrNotFound, http.StatusNotFound, "not_found"},
		{"upstream", types.ErrUpstreamUnavailable, http.StatusServiceUnavailable, "upstream_unavailable"},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			require.NoError(t, ErrorFromTaxonomy(c, tc.err))
			assert.Equal(t, tc.wantStatus, rec.Code)

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.wantCode, body.Error)
		})
	}

	t.Run("wrapped errors keep their mapping", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := fmt.Errorf("%w: start_date 2025-02-01 is after end_date 2025-01-01", types.ErrInvalidRange)
		require.NoError(t, ErrorFromTaxonomy(c, err))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("upstream message does not leak the cause", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := fmt.Errorf("%w: dial tcp 10.0.0.5:5432: connection refused", types.ErrUpstreamUnavailable)
		require.NoError(t, ErrorFromTaxonomy(c, err))

		var body ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.NotContains(t, body.Message, "10.0.0.5")
	})
}
