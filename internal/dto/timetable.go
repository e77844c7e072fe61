package dto

// ── 固定课表模块 DTO ──

// CreateTimetableEntryRequest 创建固定课表条目请求
// 时间为 "HH:MM" 格式的当日时刻
type CreateTimetableEntryRequest struct {
	RoomID     string `json:"room_id"     binding:"required,uuid"`
	DayOfWeek  int    `json:"day_of_week" binding:"required,min=1,max=7"`
	StartTime  string `json:"start_time"  binding:"required"`
	EndTime    string `json:"end_time"    binding:"required"`
	CourseName string `json:"course_name" binding:"required,min=1,max=100"`
	CourseCode string `json:"course_code" binding:"omitempty,max=30"`
	Section    string `json:"section"     binding:"omitempty,max=20"`
	Semester   string `json:"semester"    binding:"omitempty,max=30"`
	Batch      string `json:"batch"       binding:"omitempty,max=30"`
	Faculty    string `json:"faculty"     binding:"omitempty,max=100"`
}

// TimetableEntryResponse 固定课表条目响应
type TimetableEntryResponse struct {
	ID         string `json:"id"`
	RoomID     string `json:"room_id"`
	DayOfWeek  int    `json:"day_of_week"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	CourseName string `json:"course_name"`
	CourseCode string `json:"course_code,omitempty"`
	Section    string `json:"section,omitempty"`
	Semester   string `json:"semester,omitempty"`
	Faculty    string `json:"faculty,omitempty"`
	IsActive   bool   `json:"is_active"`
}
