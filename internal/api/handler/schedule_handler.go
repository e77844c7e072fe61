package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"campus-event/backend/internal/dto"
	"campus-event/backend/internal/service"
	"campus-event/backend/pkg/response"
)

// ScheduleHandler 日程/可用性查询 HTTP 处理器
type ScheduleHandler struct {
	scheduleSvc     service.ScheduleService
	availabilitySvc service.AvailabilityService
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(scheduleSvc service.ScheduleService, availabilitySvc service.AvailabilityService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc, availabilitySvc: availabilitySvc}
}

// AvailableSlots 教室当日空闲标准时段
// GET /api/v1/rooms/:id/slots?date=2026-09-01
func (h *ScheduleHandler) AvailableSlots(c *gin.Context) {
	var req dto.AvailableSlotsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "date 必须为 YYYY-MM-DD 格式")
		return
	}
	date, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		response.BadRequest(c, 10001, "date 必须为 YYYY-MM-DD 格式")
		return
	}

	slots, err := h.scheduleSvc.AvailableSlots(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, slots)
}

// DaySchedule 教室当日合并日程（固定课程 + 生效预订）
// GET /api/v1/rooms/:id/schedule?date=2026-09-01
func (h *ScheduleHandler) DaySchedule(c *gin.Context) {
	var req dto.AvailableSlotsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "date 必须为 YYYY-MM-DD 格式")
		return
	}
	date, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		response.BadRequest(c, 10001, "date 必须为 YYYY-MM-DD 格式")
		return
	}

	items, err := h.scheduleSvc.CombinedDaySchedule(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, items)
}

// CheckConflict 教室指定时段冲突检查
// GET /api/v1/rooms/:id/conflict?date=2026-09-01&start=09:00&end=10:00
func (h *ScheduleHandler) CheckConflict(c *gin.Context) {
	date, err := time.ParseInLocation("2006-01-02", c.Query("date"), time.Local)
	if err != nil {
		response.BadRequest(c, 10001, "date 必须为 YYYY-MM-DD 格式")
		return
	}

	conflict, err := h.scheduleSvc.HasBookingConflict(
		c.Request.Context(), c.Param("id"), date, c.Query("start"), c.Query("end"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidClockWindow) {
			response.BadRequest(c, 13001, "时间窗口无效")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"conflict": conflict})
}

// BatchAvailability 批量教室可用性查询
// POST /api/v1/rooms/availability
func (h *ScheduleHandler) BatchAvailability(c *gin.Context) {
	var req dto.BatchAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}
	start, err := time.Parse(time.RFC3339, req.Start)
	if err != nil {
		response.BadRequest(c, 10001, "start 必须为 RFC3339 格式")
		return
	}
	end, err := time.Parse(time.RFC3339, req.End)
	if err != nil {
		response.BadRequest(c, 10001, "end 必须为 RFC3339 格式")
		return
	}
	if !end.After(start) {
		response.BadRequest(c, 13001, "时间窗口无效")
		return
	}

	result, err := h.availabilitySvc.BatchAvailability(c.Request.Context(), req.RoomIDs, start, end)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, dto.BatchAvailabilityResponse{Availability: result})
}
