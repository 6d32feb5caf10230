package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/modaworks/vesti/internal/analytics/service"
)

type AssistantHandler struct {
	svc *service.AssistantService
}

func NewAssistantHandler(svc *service.AssistantService) *AssistantHandler {
	return &AssistantHandler{svc: svc}
}

type AskRequest struct {
	Question string `json:"question" binding:"required"`
}

// Ask POST /assistant/ask
func (h *AssistantHandler) Ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	answer, err := h.svc.Ask(c.Request.Context(), req.Question)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, answer)
}

// Insight GET /insight
func (h *AssistantHandler) Insight(c *gin.Context) {
	resp, err := h.svc.GenerateInsight(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, resp)
}
