package dto

import "time"

// ── 通知模块 DTO ──

// NotificationResponse 站内通知响应
type NotificationResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
