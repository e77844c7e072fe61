package dto

import "time"

// ── 预订模块 DTO ──

// CreateBookingRequest 创建预订请求
// 活动预订传 event_id；独立会议传 meeting_* 三件套。二者必须恰好提供其一
type CreateBookingRequest struct {
	EventID        *string    `json:"event_id"        binding:"omitempty,uuid"`
	Pref1RoomID    *string    `json:"pref1_room_id"   binding:"omitempty,uuid"`
	Pref2RoomID    *string    `json:"pref2_room_id"   binding:"omitempty,uuid"`
	Pref3RoomID    *string    `json:"pref3_room_id"   binding:"omitempty,uuid"`
	MeetingStart   *time.Time `json:"meeting_start"`
	MeetingEnd     *time.Time `json:"meeting_end"`
	MeetingPurpose string     `json:"meeting_purpose" binding:"omitempty,max=500"`
}

// ApproveBookingRequest 管理员审批请求
type ApproveBookingRequest struct {
	RoomID string `json:"room_id" binding:"required,uuid"`
}

// DirectBookingRequest 教师直订请求：冲突检查通过后立即 APPROVED
type DirectBookingRequest struct {
	RoomID         string    `json:"room_id"         binding:"required,uuid"`
	MeetingStart   time.Time `json:"meeting_start"   binding:"required"`
	MeetingEnd     time.Time `json:"meeting_end"     binding:"required"`
	MeetingPurpose string    `json:"meeting_purpose" binding:"omitempty,max=500"`
}

// BookingResponse 预订请求响应
type BookingResponse struct {
	ID             string      `json:"id"`
	Status         string      `json:"status"`
	EventID        *string     `json:"event_id,omitempty"`
	EventTitle     string      `json:"event_title,omitempty"`
	AllocatedRoom  *RoomBrief  `json:"allocated_room,omitempty"`
	Pref1RoomID    *string     `json:"pref1_room_id,omitempty"`
	Pref2RoomID    *string     `json:"pref2_room_id,omitempty"`
	Pref3RoomID    *string     `json:"pref3_room_id,omitempty"`
	RequestedBy    string      `json:"requested_by"`
	ApprovedBy     *string     `json:"approved_by,omitempty"`
	RequestedAt    time.Time   `json:"requested_at"`
	ApprovedAt     *time.Time  `json:"approved_at,omitempty"`
	ConfirmedAt    *time.Time  `json:"confirmed_at,omitempty"`
	WindowStart    *time.Time  `json:"window_start,omitempty"`
	WindowEnd      *time.Time  `json:"window_end,omitempty"`
	MeetingPurpose string      `json:"meeting_purpose,omitempty"`
}
