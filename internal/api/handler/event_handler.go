package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"campus-event/backend/internal/dto"
	"campus-event/backend/internal/model"
	"campus-event/backend/internal/service"
	"campus-event/backend/pkg/response"
)

// EventHandler 活动模块 HTTP 处理器
type EventHandler struct {
	eventSvc service.EventService
}

// NewEventHandler 创建 EventHandler
func NewEventHandler(eventSvc service.EventService) *EventHandler {
	return &EventHandler{eventSvc: eventSvc}
}

// Create 创建活动
// POST /api/v1/events
func (h *EventHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	event, err := h.eventSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrEventWindowInvalid) {
			response.BadRequest(c, 15002, "活动时间窗口无效")
			return
		}
		response.InternalError(c)
		return
	}
	response.Created(c, toEventResponse(event))
}

// Get 查询活动
// GET /api/v1/events/:id
func (h *EventHandler) Get(c *gin.Context) {
	event, err := h.eventSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.NotFound(c, 15001, "活动不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, toEventResponse(event))
}

// List 活动列表
// GET /api/v1/events
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.eventSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	resp := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		resp = append(resp, toEventResponse(&events[i]))
	}
	response.OK(c, resp)
}

func toEventResponse(e *model.Event) dto.EventResponse {
	return dto.EventResponse{
		ID:          e.EventID,
		Title:       e.Title,
		Description: e.Description,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Location:    e.Location,
		CreatedBy:   e.CreatedBy,
	}
}
