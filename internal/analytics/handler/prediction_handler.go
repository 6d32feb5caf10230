package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/modaworks/vesti/internal/analytics/predictor"
	"github.com/modaworks/vesti/internal/analytics/service"
)

type PredictionHandler struct {
	svc *service.PredictionService
}

func NewPredictionHandler(svc *service.PredictionService) *PredictionHandler {
	return &PredictionHandler{svc: svc}
}

// Combination POST /predict/combination
// 로컬 규칙 기반 계단식 예측
func (h *PredictionHandler) Combination(c *gin.Context) {
	var target predictor.Target
	if err := c.ShouldBindJSON(&target); err != nil {
		BadRequest(c, err.Error())
		return
	}

	result, err := h.svc.PredictCombination(target)
	if err != nil {
		NotFound(c, err.Error())
		return
	}
	Success(c, result)
}

// Remote POST /predict/remote
// 외부 모델 서비스 프록시
func (h *PredictionHandler) Remote(c *gin.Context) {
	var target predictor.Target
	if err := c.ShouldBindJSON(&target); err != nil {
		BadRequest(c, err.Error())
		return
	}

	resp, err := h.svc.PredictRemote(c.Request.Context(), target)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, resp)
}
