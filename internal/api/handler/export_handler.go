package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"campus-event/backend/internal/service"
	"campus-event/backend/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 管理端报表导出 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportBookings 导出预订明细
// GET /api/v1/admin/export/bookings
func (h *ExportHandler) ExportBookings(c *gin.Context) {
	buf, err := h.exportSvc.ExportBookings(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	filename := fmt.Sprintf("bookings_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ExportRoomUtilisation 导出教室使用统计
// GET /api/v1/admin/export/utilisation
func (h *ExportHandler) ExportRoomUtilisation(c *gin.Context) {
	buf, err := h.exportSvc.ExportRoomUtilisation(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	filename := fmt.Sprintf("room_utilisation_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
