package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"campus-event/backend/internal/dto"
	"campus-event/backend/internal/service"
	"campus-event/backend/pkg/response"
)

// NotificationHandler 站内通知 HTTP 处理器
type NotificationHandler struct {
	notificationSvc service.NotificationService
}

// NewNotificationHandler 创建 NotificationHandler
func NewNotificationHandler(notificationSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

// ListMine 我的通知列表
// GET /api/v1/notifications
func (h *NotificationHandler) ListMine(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	list, err := h.notificationSvc.ListMine(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	resp := make([]dto.NotificationResponse, 0, len(list))
	for i := range list {
		n := &list[i]
		resp = append(resp, dto.NotificationResponse{
			ID:        n.NotificationID,
			Title:     n.Title,
			Content:   n.Content,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}
	response.OK(c, resp)
}

// MarkRead 标记通知已读
// POST /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	err := h.notificationSvc.MarkRead(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			response.NotFound(c, 16001, "通知不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}
