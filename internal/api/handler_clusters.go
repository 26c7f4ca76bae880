package api

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/dbspend360/dbspend360/internal/workspace"
	"github.com/dbspend360/dbspend360/pkg/types"
)

// ClusterHandler serves cluster configuration snapshots and the workspace
// host used for outbound links.
type ClusterHandler struct {
	workspace *workspace.Client // nil when the workspace is not configured
}

// NewClusterHandler creates a new cluster handler
func NewClusterHandler(ws *workspace.Client) *ClusterHandler {
	return &ClusterHandler{
		workspace: ws,
	}
}

// Get handles GET /api/v1/clusters/:id
func (h *ClusterHandler) Get(c echo.Context) error {
	if h.workspace == nil {
		return ErrorUpstream(c, "workspace is not configured")
	}

	id := c.Param("id")
	if id == "" {
		return ErrorFromTaxonomy(c, fmt.Errorf("%w: cluster id is required", types.ErrValidation))
	}

	details, err := h.workspace.GetCluster(c.Request().Context(), id)
	if err != nil {
		return ErrorFromTaxonomy(c, err)
	}

	return SuccessOK(c, details)
}

// Host handles GET /api/v1/workspace
func (h *ClusterHandler) Host(c echo.Context) error {
	if h.workspace == nil {
		return ErrorUpstream(c, "workspace is not configured")
	}

	return SuccessOK(c, map[string]string{
		"workspace_host": h.workspace.Host(),
	})
}
