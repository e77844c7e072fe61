package dto

// ── 课表/可用性查询 DTO ──

// AvailableSlotsRequest 空闲时段查询参数
type AvailableSlotsRequest struct {
	Date string `form:"date" binding:"required,datetime=2006-01-02"`
}

// ScheduleItemResponse 合并日程条目（固定课程 + 预订）
type ScheduleItemResponse struct {
	Type      string `json:"type"` // FIXED_CLASS | BOOKING
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle,omitempty"`
	StartTime string `json:"start_time"` // "HH:MM"
	EndTime   string `json:"end_time"`
	Faculty   string `json:"faculty,omitempty"`
}

// BatchAvailabilityRequest 批量可用性查询请求
type BatchAvailabilityRequest struct {
	RoomIDs []string `json:"room_ids" binding:"required,min=1,dive,uuid"`
	Start   string   `json:"start"    binding:"required"` // RFC3339
	End     string   `json:"end"      binding:"required"`
}

// BatchAvailabilityResponse 批量可用性查询响应
type BatchAvailabilityResponse struct {
	Availability map[string]bool `json:"availability"` // roomID → 是否可用
}
