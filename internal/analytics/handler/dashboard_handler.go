package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/modaworks/vesti/internal/analytics/service"
)

type DashboardHandler struct {
	svc *service.DashboardService
}

func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Summary GET /dashboard/summary
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.svc.GetSummary(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, summary)
}

// Breakdown GET /dashboard/breakdown?dim=gender&limit=10
func (h *DashboardHandler) Breakdown(c *gin.Context) {
	dim := c.Query("dim")
	if dim == "" {
		BadRequest(c, "dim 파라미터가 필요합니다")
		return
	}

	limit := 10
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 50 {
			limit = v
		}
	}

	rows, err := h.svc.GetBreakdown(c.Request.Context(), dim, limit)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Success(c, rows)
}

// Heatmap GET /dashboard/heatmap?x=item&y=material
func (h *DashboardHandler) Heatmap(c *gin.Context) {
	x := c.Query("x")
	y := c.Query("y")
	if x == "" || y == "" {
		BadRequest(c, "x, y 파라미터가 필요합니다")
		return
	}

	heatmap, err := h.svc.GetHeatmap(c.Request.Context(), x, y)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Success(c, heatmap)
}
