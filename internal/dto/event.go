package dto

import "time"

// ── 活动模块 DTO ──

// CreateEventRequest 创建活动请求
type CreateEventRequest struct {
	Title       string    `json:"title"       binding:"required,min=2,max=200"`
	Description string    `json:"description" binding:"omitempty,max=2000"`
	StartTime   time.Time `json:"start_time"  binding:"required"`
	EndTime     time.Time `json:"end_time"    binding:"required"`
}

// EventResponse 活动响应
type EventResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Location    string    `json:"location"`
	CreatedBy   *string   `json:"created_by,omitempty"`
}
