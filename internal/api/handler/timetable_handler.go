package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"campus-event/backend/internal/dto"
	"campus-event/backend/internal/service"
	"campus-event/backend/pkg/response"
)

// TimetableHandler 固定课表模块 HTTP 处理器
type TimetableHandler struct {
	timetableSvc service.TimetableService
}

// NewTimetableHandler 创建 TimetableHandler
func NewTimetableHandler(timetableSvc service.TimetableService) *TimetableHandler {
	return &TimetableHandler{timetableSvc: timetableSvc}
}

// CreateEntry 创建固定课表条目
// POST /api/v1/timetable
func (h *TimetableHandler) CreateEntry(c *gin.Context) {
	var req dto.CreateTimetableEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	entry, err := h.timetableSvc.CreateEntry(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidClockWindow):
			response.BadRequest(c, 13001, "时间窗口无效")
		case errors.Is(err, service.ErrRoomNotFound):
			response.NotFound(c, 12004, "教室不存在")
		case errors.Is(err, service.ErrTimetableSlotOccupied):
			response.Conflict(c, 13002, "该时段已有固定课程")
		default:
			response.InternalError(c)
		}
		return
	}
	response.Created(c, entry)
}

// DaySchedule 教室某日固定课表
// GET /api/v1/rooms/:id/timetable?day=1
func (h *TimetableHandler) DaySchedule(c *gin.Context) {
	day, err := strconv.Atoi(c.Query("day"))
	if err != nil || day < 1 || day > 7 {
		response.BadRequest(c, 10001, "day 必须为 1-7")
		return
	}

	entries, svcErr := h.timetableSvc.DaySchedule(c.Request.Context(), c.Param("id"), day)
	if svcErr != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, entries)
}

// WeekSchedule 教室整周固定课表
// GET /api/v1/rooms/:id/timetable/week
func (h *TimetableHandler) WeekSchedule(c *gin.Context) {
	entries, err := h.timetableSvc.WeekSchedule(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, entries)
}

// WeekScheduleICS 教室整周固定课表导出为 iCalendar
// GET /api/v1/rooms/:id/timetable/week.ics
func (h *TimetableHandler) WeekScheduleICS(c *gin.Context) {
	ics, err := h.timetableSvc.WeekScheduleICS(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="timetable.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(ics))
}

// DeactivateEntry 停用课表条目（学期结束/调课）
// DELETE /api/v1/timetable/:id
func (h *TimetableHandler) DeactivateEntry(c *gin.Context) {
	if err := h.timetableSvc.DeactivateEntry(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrTimetableEntryNotFound) {
			response.NotFound(c, 13003, "课表条目不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}
