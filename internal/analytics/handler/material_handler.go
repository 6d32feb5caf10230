package handler

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/modaworks/vesti/internal/analytics/repository"
	"github.com/modaworks/vesti/internal/analytics/service"
)

type MaterialHandler struct {
	svc          *service.MaterialService
	dashboardSvc *service.DashboardService
}

func NewMaterialHandler(svc *service.MaterialService, dashboardSvc *service.DashboardService) *MaterialHandler {
	return &MaterialHandler{svc: svc, dashboardSvc: dashboardSvc}
}

// Create POST /materials
func (h *MaterialHandler) Create(c *gin.Context) {
	var req service.CreateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	m, err := h.svc.Create(c.Request.Context(), req, GetUserID(c))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Created(c, m)
}

// Get GET /materials/:id
func (h *MaterialHandler) Get(c *gin.Context) {
	m, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		NotFound(c, "소재가 없습니다")
		return
	}
	Success(c, m)
}

// List GET /materials
func (h *MaterialHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	params := repository.MaterialListParams{
		Structure: c.Query("structure"),
		Supplier:  c.Query("supplier"),
		Keyword:   c.Query("keyword"),
		Page:      page,
		Size:      pageSize,
	}
	materials, total, err := h.svc.List(params)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, NewListResponse(materials, page, pageSize, total))
}

// Update PUT /materials/:id
func (h *MaterialHandler) Update(c *gin.Context) {
	var req service.UpdateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	m, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		NotFound(c, err.Error())
		return
	}
	Success(c, m)
}

// Delete DELETE /materials/:id
func (h *MaterialHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		NotFound(c, err.Error())
		return
	}
	Success(c, nil)
}

// DeleteAll DELETE /materials?confirm=true
func (h *MaterialHandler) DeleteAll(c *gin.Context) {
	if c.Query("confirm") != "true" {
		BadRequest(c, "전체 삭제는 confirm=true가 필요합니다")
		return
	}
	if err := h.svc.DeleteAll(c.Request.Context()); err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, nil)
}

// GetBlend GET /materials/:id/blend
func (h *MaterialHandler) GetBlend(c *gin.Context) {
	shares, err := h.svc.GetBlendShares(c.Param("id"))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Success(c, shares)
}

// Import POST /materials/import (multipart: file, xlsx만)
func (h *MaterialHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "파일을 업로드해 주세요")
		return
	}

	if ext := strings.ToLower(filepath.Ext(fileHeader.Filename)); ext != ".xlsx" {
		BadRequest(c, "xlsx 파일만 지원합니다")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		BadRequest(c, "파일을 열 수 없습니다: "+err.Error())
		return
	}
	defer file.Close()

	f, err := excelize.OpenReader(file)
	if err != nil {
		BadRequest(c, "Excel 파일을 해석할 수 없습니다: "+err.Error())
		return
	}
	defer f.Close()

	result, err := h.svc.ImportMaterialsXLSX(f, GetUserID(c))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Success(c, result)
}

// Export GET /materials/export
func (h *MaterialHandler) Export(c *gin.Context) {
	f, err := h.svc.ExportMaterialsXLSX()
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	defer f.Close()
	writeXLSX(c, f, fmt.Sprintf("소재데이터_%s.xlsx", time.Now().Format("20060102")))
}

// Template GET /materials/template
func (h *MaterialHandler) Template(c *gin.Context) {
	f, err := service.MaterialTemplate()
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	defer f.Close()
	writeXLSX(c, f, "소재데이터_양식.xlsx")
}

// Analysis GET /materials/analysis
func (h *MaterialHandler) Analysis(c *gin.Context) {
	stats, err := h.dashboardSvc.GetMaterialStats(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, stats)
}

// AnalysisDetail GET /materials/analysis/:name
func (h *MaterialHandler) AnalysisDetail(c *gin.Context) {
	detail, err := h.dashboardSvc.GetMaterialDetail(c.Request.Context(), c.Param("name"), h.svc)
	if err != nil {
		NotFound(c, err.Error())
		return
	}
	Success(c, detail)
}
