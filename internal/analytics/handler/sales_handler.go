package handler

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/modaworks/vesti/internal/analytics/repository"
	"github.com/modaworks/vesti/internal/analytics/service"
)

type SalesHandler struct {
	svc *service.SalesService
}

func NewSalesHandler(svc *service.SalesService) *SalesHandler {
	return &SalesHandler{svc: svc}
}

// Create POST /sales
func (h *SalesHandler) Create(c *gin.Context) {
	var req service.CreateSalesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	record, err := h.svc.Create(c.Request.Context(), req, GetUserID(c))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Created(c, record)
}

// Get GET /sales/:id
func (h *SalesHandler) Get(c *gin.Context) {
	record, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		NotFound(c, "판매 레코드가 없습니다")
		return
	}
	Success(c, record)
}

// List GET /sales
func (h *SalesHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	params := repository.SalesListParams{
		Manufacturing: c.Query("manufacturing"),
		MaterialName:  c.Query("material"),
		Keyword:       c.Query("keyword"),
		Page:          page,
		Size:          pageSize,
	}
	records, total, err := h.svc.List(params)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, NewListResponse(records, page, pageSize, total))
}

// Update PUT /sales/:id
func (h *SalesHandler) Update(c *gin.Context) {
	var req service.UpdateSalesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	record, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		NotFound(c, err.Error())
		return
	}
	Success(c, record)
}

// Delete DELETE /sales/:id
func (h *SalesHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		NotFound(c, err.Error())
		return
	}
	Success(c, nil)
}

// DeleteAll DELETE /sales?confirm=true
// 복구 불가 작업이라 confirm 파라미터를 요구한다
func (h *SalesHandler) DeleteAll(c *gin.Context) {
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

// Import POST /sales/import (multipart: file)
func (h *SalesHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "파일을 업로드해 주세요")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		BadRequest(c, "파일을 열 수 없습니다: "+err.Error())
		return
	}
	defer file.Close()

	userID := GetUserID(c)
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))

	var result *service.ImportResult
	switch ext {
	case ".xlsx":
		f, err := excelize.OpenReader(file)
		if err != nil {
			BadRequest(c, "Excel 파일을 해석할 수 없습니다: "+err.Error())
			return
		}
		defer f.Close()
		result, err = h.svc.ImportSalesXLSX(f, userID)
		if err != nil {
			BadRequest(c, err.Error())
			return
		}
	case ".csv":
		data, err := io.ReadAll(file)
		if err != nil {
			BadRequest(c, "파일 읽기 실패: "+err.Error())
			return
		}
		result, err = h.svc.ImportSalesCSV(data, userID)
		if err != nil {
			BadRequest(c, err.Error())
			return
		}
	default:
		BadRequest(c, "xlsx 또는 csv 파일만 지원합니다")
		return
	}

	Success(c, result)
}

// Export GET /sales/export?format=xlsx|csv
func (h *SalesHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "xlsx")
	filename := fmt.Sprintf("판매데이터_%s", time.Now().Format("20060102"))

	switch format {
	case "xlsx":
		f, err := h.svc.ExportSalesXLSX()
		if err != nil {
			InternalError(c, err.Error())
			return
		}
		defer f.Close()
		writeXLSX(c, f, filename+".xlsx")
	case "csv":
		data, err := h.svc.ExportSalesCSV()
		if err != nil {
			InternalError(c, err.Error())
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+".csv"))
		c.Data(200, "text/csv; charset=utf-8", data)
	default:
		BadRequest(c, "format은 xlsx 또는 csv여야 합니다")
	}
}

// Template GET /sales/template
func (h *SalesHandler) Template(c *gin.Context) {
	f, err := service.SalesTemplate()
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	defer f.Close()
	writeXLSX(c, f, "판매데이터_양식.xlsx")
}

// writeXLSX xlsx 파일을 첨부파일로 스트리밍한다
func writeXLSX(c *gin.Context, f *excelize.File, filename string) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Transfer-Encoding", "binary")
	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "파일 전송 실패: "+err.Error())
	}
}
