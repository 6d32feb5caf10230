package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/modaworks/vesti/internal/analytics/service"
)

type RankingHandler struct {
	svc *service.RankingService
}

func NewRankingHandler(svc *service.RankingService) *RankingHandler {
	return &RankingHandler{svc: svc}
}

// Combinations GET /rankings/combinations?metric=total_qty&order=best&limit=10
func (h *RankingHandler) Combinations(c *gin.Context) {
	metric := c.DefaultQuery("metric", service.MetricTotalQty)
	order := c.DefaultQuery("order", "best")

	limit := 10
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil {
			limit = v
		}
	}

	stats, err := h.svc.RankCombinations(metric, order, limit)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Success(c, stats)
}
