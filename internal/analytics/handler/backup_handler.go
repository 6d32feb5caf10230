package handler

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/modaworks/vesti/internal/analytics/service"
)

type BackupHandler struct {
	svc *service.BackupService
}

func NewBackupHandler(svc *service.BackupService) *BackupHandler {
	return &BackupHandler{svc: svc}
}

// Create POST /backups
func (h *BackupHandler) Create(c *gin.Context) {
	info, err := h.svc.CreateSnapshot(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Created(c, info)
}

// List GET /backups
func (h *BackupHandler) List(c *gin.Context) {
	backups, err := h.svc.ListSnapshots(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, backups)
}

// Download GET /backups/download?key=backups/snapshot_xxx.xlsx
func (h *BackupHandler) Download(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		BadRequest(c, "key 파라미터가 필요합니다")
		return
	}

	obj, err := h.svc.DownloadSnapshot(c.Request.Context(), key)
	if err != nil {
		NotFound(c, err.Error())
		return
	}
	defer obj.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=\"snapshot.xlsx\"")
	if _, err := io.Copy(c.Writer, obj); err != nil {
		InternalError(c, "파일 전송 실패: "+err.Error())
	}
}
