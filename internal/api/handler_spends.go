package api

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dbspend360/dbspend360/internal/cache"
	"github.com/dbspend360/dbspend360/internal/config"
	"github.com/dbspend360/dbspend360/internal/rollup"
	"github.com/dbspend360/dbspend360/internal/store"
	"github.com/dbspend360/dbspend360/pkg/types"
)

// SpendHandler handles run-cost and aggregation endpoints
type SpendHandler struct {
	store        *store.Store
	cache        *cache.Cache // nil disables memoization
	appConfig    *config.AppConfig
	queryTimeout time.Duration
}

// NewSpendHandler creates a new spend handler
func NewSpendHandler(s *store.Store, c *cache.Cache, appCfg *config.AppConfig) *SpendHandler {
	return &SpendHandler{
		store:        s,
		cache:        c,
		appConfig:    appCfg,
		queryTimeout: appCfg.QueryTimeout(),
	}
}

func (h *SpendHandler) queryContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), h.queryTimeout)
}

// List handles GET /api/v1/spends
func (h *SpendHandler) List(c echo.Context) error {
	f, err := parseSpendFilter(c)
	if err != nil {
		return ErrorFromTaxonomy(c, err)
	}

	ctx, cancel := h.queryContext(c)
	defer cancel()

	runs, total, err := h.store.Spends.List(ctx, f)
	if err != nil {
		return ErrorStore(c, err)
	}

	return SuccessOK(c, types.NewPage(runs, total, f.Page, f.PerPage))
}

// ListGrouped handles GET /api/v1/spends/grouped
func (h *SpendHandler) ListGrouped(c echo.Context) error {
	f, err := parseSpendFilter(c)
	if err != nil {
		return ErrorFromTaxonomy(c, err)
	}

	ctx, cancel := h.queryContext(c)
	defer cancel()

	jobIDs, runsByJob, total, err := h.store.Spends.ListGrouped(ctx, f)
	if err != nil {
		return ErrorStore(c, err)
	}

	rollups := make([]types.JobRollup, 0, len(jobIDs))
	for _, jobID := range jobIDs {
		jr, err := rollup.Rollup(runsByJob[jobID])
		if err != nil {
			return ErrorFromTaxonomy(c, err)
		}
		rollups = append(rollups, jr)
	}

	return SuccessOK(c, types.NewPage(rollups, total, f.Page, f.PerPage))
}

// Summary handles GET /api/v1/spends/summary. Responses are memoized per
// date range; a cache failure degrades to a direct store read.
func (h *SpendHandler) Summary(c echo.Context) error {
	dr, err := parseDateRange(c)
	if err != nil {
		return ErrorFromTaxonomy(c, err)
	}

	ctx, cancel := h.queryContext(c)
	defer cancel()

	key := cache.SummaryKey(dr)
	if h.cache != nil {
		var cached types.SummaryMetrics
		hit, err := h.cache.Get(ctx, key, &cached)
		if err != nil {
			log.Printf("summary cache read failed: %v", err)
		}
		if hit {
			return SuccessOK(c, cached)
		}
	}

	runs, err := h.store.Spends.ListRange(ctx, dr)
	if err != nil {
		return ErrorStore(c, err)
	}

	summary, err := rollup.Summarize(runs, dr.Days())
	if err != nil {
		return ErrorFromTaxonomy(c, err)
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, key, summary); err != nil {
			log.Printf("summary cache write failed: %v", err)
		}
	}

	return SuccessOK(c, summary)
}

// Top handles GET /api/v1/spends/top
func (h *SpendHandler) Top(c echo.Context) error {
	dr, err := parseDateRange(c)
	if err != nil {
		return ErrorFromTaxonomy(c, err)
	}

	limit, err := parseLimit(c, 5, 20)
	if err != nil {
		return ErrorFromTaxonomy(c, err)
	}

	ctx, cancel := h.queryContext(c)
	defer cancel()

	runs, err := h.store.Spends.TopJobs(ctx, dr, limit)
	if err != nil {
		return ErrorStore(c, err)
	}

	return SuccessOK(c, runs)
}

// Breakdown handles GET /api/v1/jobs/:job_id/breakdown
func (h *SpendHandler) Breakdown(c echo.Context) error {
	jobID := c.Param("job_id")
	runID := c.QueryParam("run_id")
	if runID == "" {
		return ErrorFromTaxonomy(c, fmt.Errorf("%w: run_id is required", types.ErrValidation))
	}

	ctx, cancel := h.queryContext(c)
	defer cancel()

	run, err := h.store.Spends.Get(ctx, jobID, runID)
	if err != nil {
		return ErrorStore(c, err)
	}

	return SuccessOK(c, rollup.Breakdown(*run, h.appConfig.CostLabels()))
}

// Export handles GET /api/v1/spends/export, streaming the filtered range as
// CSV. Gated by the export feature flag.
func (h *SpendHandler) Export(c echo.Context) error {
	if !h.appConfig.Features.Export {
		return ErrorNotFound(c, "export is not enabled")
	}

	dr, err := parseDateRange(c)
	if err != nil {
		return ErrorFromTaxonomy(c, err)
	}

	ctx, cancel := h.queryContext(c)
	defer cancel()

	runs, err := h.store.Spends.ListRange(ctx, dr)
	if err != nil {
		return ErrorStore(c, err)
	}

	labels := h.appConfig.CostLabels()
	filename := fmt.Sprintf("job-spends_%s_%s.csv", dr.StartDate, dr.EndDate)

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Response().WriteHeader(http.StatusOK)

	w := csv.NewWriter(c.Response())
	header := []string{"job_id", "job_name", "run_id", "cluster_id", "usage_date", labels.Compute, labels.Platform, "total_cost", "currency"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, run := range runs {
		name := ""
		if run.JobName != nil {
			name = *run.JobName
		}
		record := []string{
			run.JobID,
			name,
			run.RunID,
			run.ClusterID,
			run.UsageDate.String(),
			strconv.FormatFloat(run.ComputeCost, 'f', -1, 64),
			strconv.FormatFloat(run.PlatformCost, 'f', -1, 64),
			strconv.FormatFloat(run.TotalCost(), 'f', -1, 64),
			run.Currency,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
