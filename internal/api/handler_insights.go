package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dbspend360/dbspend360/internal/config"
	"github.com/dbspend360/dbspend360/internal/insight"
	"github.com/dbspend360/dbspend360/internal/rollup"
	"github.com/dbspend360/dbspend360/internal/store"
	"github.com/dbspend360/dbspend360/internal/workspace"
	"github.com/dbspend360/dbspend360/pkg/types"
)

// InsightHandler serves LLM-generated cost and cluster analysis.
type InsightHandler struct {
	store     *store.Store
	workspace *workspace.Client // nil when the workspace is not configured
	insights  *insight.Service  // nil when the workspace is not configured
	appConfig *config.AppConfig
}

// NewInsightHandler creates a new insight handler
func NewInsightHandler(s *store.Store, ws *workspace.Client, svc *insight.Service, appCfg *config.AppConfig) *InsightHandler {
	return &InsightHandler{
		store:     s,
		workspace: ws,
		insights:  svc,
		appConfig: appCfg,
	}
}

// CostInsightRequest identifies the run to analyze.
type CostInsightRequest struct {
	JobID string `json:"job_id" validate:"required"`
	RunID string `json:"run_id" validate:"required"`
}

// ClusterInsightRequest identifies the cluster to analyze.
type ClusterInsightRequest struct {
	ClusterID string `json:"cluster_id" validate:"required"`
}

// InsightResponse carries generated analysis text with correlation ids.
type InsightResponse struct {
	ID          string    `json:"id"`
	RequestID   string    `json:"request_id"`
	Insight     string    `json:"insight"`
	GeneratedAt time.Time `json:"generated_at"`
}

func newInsightResponse(text string) *InsightResponse {
	return &InsightResponse{
		ID:          types.GenerateInsightID(),
		RequestID:   uuid.New().String(),
		Insight:     text,
		GeneratedAt: time.Now().UTC(),
	}
}

// AnalyzeCost handles POST /api/v1/insights/cost
func (h *InsightHandler) AnalyzeCost(c echo.Context) error {
	if !h.appConfig.Features.Insights || h.insights == nil {
		return ErrorNotFound(c, "insights are not enabled")
	}

	var req CostInsightRequest
	if err := c.Bind(&req); err != nil {
		return ErrorBadRequest(c, "validation_failed", "Invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return ErrorBadRequest(c, "validation_failed", err.Error())
	}

	ctx := c.Request().Context()

	run, err := h.store.Spends.Get(ctx, req.JobID, req.RunID)
	if err != nil {
		return ErrorStore(c, err)
	}

	breakdown := rollup.Breakdown(*run, h.appConfig.CostLabels())
	text, err := h.insights.AnalyzeCost(ctx, breakdown)
	if err != nil {
		return ErrorFromTaxonomy(c, err)
	}

	return SuccessOK(c, newInsightResponse(text))
}

// AnalyzeCluster handles POST /api/v1/insights/cluster
func (h *InsightHandler) AnalyzeCluster(c echo.Context) error {
	if !h.appConfig.Features.ClusterAnalysis || h.insights == nil || h.workspace == nil {
		return ErrorNotFound(c, "cluster analysis is not enabled")
	}

	var req ClusterInsightRequest
	if err := c.Bind(&req); err != nil {
		return ErrorBadRequest(c, "validation_failed", "Invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return ErrorBadRequest(c, "validation_failed", err.Error())
	}

	ctx := c.Request().Context()

	details, err := h.workspace.GetCluster(ctx, req.ClusterID)
	if err != nil {
		return ErrorFromTaxonomy(c, err)
	}

	text, err := h.insights.AnalyzeCluster(ctx, *details)
	if err != nil {
		return ErrorFromTaxonomy(c, err)
	}

	return SuccessOK(c, newInsightResponse(text))
}
