package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"campus-event/backend/internal/dto"
	"campus-event/backend/internal/model"
	"campus-event/backend/internal/service"
	"campus-event/backend/pkg/response"
)

// BookingHandler 预订请求模块 HTTP 处理器
type BookingHandler struct {
	bookingSvc service.BookingService
}

// NewBookingHandler 创建 BookingHandler
func NewBookingHandler(bookingSvc service.BookingService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc}
}

// Create 创建预订请求
// POST /api/v1/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	booking, err := h.bookingSvc.CreateRequest(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingSourceInvalid):
			response.BadRequest(c, 14001, "必须且只能提供活动ID或会议时间之一")
		case errors.Is(err, service.ErrBookingWindowInvalid):
			response.BadRequest(c, 14002, "时间窗口无效")
		case errors.Is(err, service.ErrEventNotFound):
			response.NotFound(c, 15001, "活动不存在")
		case errors.Is(err, service.ErrRoomNotFound):
			response.NotFound(c, 12004, "教室不存在")
		default:
			response.InternalError(c)
		}
		return
	}
	response.Created(c, toBookingResponse(booking))
}

// Get 查询预订请求详情
// GET /api/v1/bookings/:id
func (h *BookingHandler) Get(c *gin.Context) {
	booking, err := h.bookingSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			response.NotFound(c, 14003, "预订请求不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, toBookingResponse(booking))
}

// ListMine 我的预订请求
// GET /api/v1/bookings/mine
func (h *BookingHandler) ListMine(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	bookings, err := h.bookingSvc.ListMine(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, toBookingResponses(bookings))
}

// ListByStatus 按状态查询预订请求（管理端）
// GET /api/v1/admin/bookings?status=PENDING
func (h *BookingHandler) ListByStatus(c *gin.Context) {
	status := c.DefaultQuery("status", model.BookingStatusPending)
	switch status {
	case model.BookingStatusPending, model.BookingStatusApproved,
		model.BookingStatusConfirmed, model.BookingStatusRejected:
	default:
		response.BadRequest(c, 10001, "status 无效")
		return
	}

	bookings, err := h.bookingSvc.ListByStatus(c.Request.Context(), status)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, toBookingResponses(bookings))
}

// ListStuck 超时未处理的待审批请求（管理端巡检）
// GET /api/v1/admin/bookings/stuck
func (h *BookingHandler) ListStuck(c *gin.Context) {
	bookings, err := h.bookingSvc.ListStuckPending(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, toBookingResponses(bookings))
}

// Cancel 撤回本人的待审批请求
// POST /api/v1/bookings/:id/cancel
func (h *BookingHandler) Cancel(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	err := h.bookingSvc.Cancel(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			response.NotFound(c, 14003, "预订请求不存在")
		case errors.Is(err, service.ErrBookingNotOwner):
			response.Forbidden(c, 14004, "无权操作他人的预订请求")
		case errors.Is(err, service.ErrBookingNotPending):
			response.Conflict(c, 14005, "请求已处理，无法撤回")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, nil)
}

// Approve 管理员批准并指定教室
// POST /api/v1/admin/bookings/:id/approve
func (h *BookingHandler) Approve(c *gin.Context) {
	adminID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ApproveBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	err := h.bookingSvc.AdminApprove(c.Request.Context(), c.Param("id"), req.RoomID, adminID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			response.NotFound(c, 14003, "预订请求不存在")
		case errors.Is(err, service.ErrRoomNotFound):
			response.NotFound(c, 12004, "教室不存在")
		case errors.Is(err, service.ErrBookingNotPending):
			response.Conflict(c, 14005, "请求已处理")
		case errors.Is(err, service.ErrBookingWindowInvalid):
			response.BadRequest(c, 14002, "请求缺少有效时间窗口")
		case errors.Is(err, service.ErrBookingConflict):
			response.Conflict(c, 14006, "教室在该时段已被占用")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, nil)
}

// Reject 管理员驳回
// POST /api/v1/admin/bookings/:id/reject
func (h *BookingHandler) Reject(c *gin.Context) {
	adminID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	err := h.bookingSvc.AdminReject(c.Request.Context(), c.Param("id"), adminID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			response.NotFound(c, 14003, "预订请求不存在")
		case errors.Is(err, service.ErrBookingNotPending):
			response.Conflict(c, 14005, "请求已处理")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, nil)
}

// DirectBook 教师直订
// POST /api/v1/bookings/direct
func (h *BookingHandler) DirectBook(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.DirectBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	booking, err := h.bookingSvc.DirectBook(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingWindowInvalid):
			response.BadRequest(c, 14002, "时间窗口无效")
		case errors.Is(err, service.ErrRoomNotFound):
			response.NotFound(c, 12004, "教室不存在")
		case errors.Is(err, service.ErrBookingConflict):
			response.Conflict(c, 14006, "教室在该时段已被占用")
		default:
			response.InternalError(c)
		}
		return
	}
	response.Created(c, toBookingResponse(booking))
}

// ── 响应转换 ──

func toBookingResponse(b *model.BookingRequest) dto.BookingResponse {
	resp := dto.BookingResponse{
		ID:             b.RequestID,
		Status:         b.Status,
		EventID:        b.EventID,
		Pref1RoomID:    b.Pref1RoomID,
		Pref2RoomID:    b.Pref2RoomID,
		Pref3RoomID:    b.Pref3RoomID,
		RequestedBy:    b.RequestedBy,
		ApprovedBy:     b.ApprovedBy,
		RequestedAt:    b.RequestedAt,
		ApprovedAt:     b.ApprovedAt,
		ConfirmedAt:    b.ConfirmedAt,
		MeetingPurpose: b.MeetingPurpose,
	}
	if b.Event != nil {
		resp.EventTitle = b.Event.Title
		start, end := b.Event.StartTime, b.Event.EndTime
		resp.WindowStart, resp.WindowEnd = &start, &end
	} else if b.MeetingStart != nil && b.MeetingEnd != nil {
		resp.WindowStart, resp.WindowEnd = b.MeetingStart, b.MeetingEnd
	}
	if b.AllocatedRoom != nil {
		resp.AllocatedRoom = &dto.RoomBrief{
			ID:         b.AllocatedRoom.RoomID,
			RoomNumber: b.AllocatedRoom.RoomNumber,
			Name:       b.AllocatedRoom.Name,
		}
	}
	return resp
}

func toBookingResponses(bookings []model.BookingRequest) []dto.BookingResponse {
	resp := make([]dto.BookingResponse, 0, len(bookings))
	for i := range bookings {
		resp = append(resp, toBookingResponse(&bookings[i]))
	}
	return resp
}
