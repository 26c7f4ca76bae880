package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dbspend360/dbspend360/pkg/types"
)

// SuccessOK returns a 200 OK response
func SuccessOK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

// ErrorStore maps a store failure onto the taxonomy: missing rows stay
// NotFound, anything else is an unavailable upstream. The underlying cause
// goes to the logs, not the user-facing message.
func ErrorStore(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, types.ErrNotFound) {
		return ErrorFromTaxonomy(c, err)
	}
	log.Printf("store error on %s: %v", c.Path(), err)
	return ErrorUpstream(c, "cost record store unavailable")
}

// parseDateRange extracts and validates start_date/end_date query params.
func parseDateRange(c echo.Context) (types.DateRange, error) {
	startStr := c.QueryParam("start_date")
	endStr := c.QueryParam("end_date")
	if startStr == "" || endStr == "" {
		return types.DateRange{}, fmt.Errorf("%w: start_date and end_date are required", types.ErrValidation)
	}

	start, err := types.ParseDate(startStr)
	if err != nil {
		return types.DateRange{}, fmt.Errorf("%w: %v", types.ErrValidation, err)
	}
	end, err := types.ParseDate(endStr)
	if err != nil {
		return types.DateRange{}, fmt.Errorf("%w: %v", types.ErrValidation, err)
	}

	dr := types.NewDateRange(start, end)
	if err := dr.Validate(); err != nil {
		return types.DateRange{}, err
	}

	return dr, nil
}

// parseSpendFilter extracts the full spend filter from the query string.
// Defaults: page 1, per_page 50. Out-of-bound values are rejected by
// SpendFilter.Validate, not clamped.
func parseSpendFilter(c echo.Context) (types.SpendFilter, error) {
	dr, err := parseDateRange(c)
	if err != nil {
		return types.SpendFilter{}, err
	}

	f := types.SpendFilter{
		Range:   dr,
		JobName: c.QueryParam("job_name"),
		Page:    1,
		PerPage: types.DefaultPerPage,
	}

	if pageStr := c.QueryParam("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil {
			return types.SpendFilter{}, fmt.Errorf("%w: page %q is not an integer", types.ErrValidation, pageStr)
		}
		f.Page = page
	}

	if perPageStr := c.QueryParam("per_page"); perPageStr != "" {
		perPage, err := strconv.Atoi(perPageStr)
		if err != nil {
			return types.SpendFilter{}, fmt.Errorf("%w: per_page %q is not an integer", types.ErrValidation, perPageStr)
		}
		f.PerPage = perPage
	}

	if err := f.Validate(); err != nil {
		return types.SpendFilter{}, err
	}

	return f, nil
}

// parseLimit extracts a bounded limit query param with a default.
func parseLimit(c echo.Context, def, max int) (int, error) {
	limitStr := c.QueryParam("limit")
	if limitStr == "" {
		return def, nil
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		return 0, fmt.Errorf("%w: limit %q is not an integer", types.ErrValidation, limitStr)
	}
	if limit < 1 || limit > max {
		return 0, fmt.Errorf("%w: limit must be in [1,%d], got %d", types.ErrValidation, max, limit)
	}

	return limit, nil
}
