package dto

// ── 教学楼/楼层/教室模块 DTO ──

// CreateBuildingRequest 创建教学楼请求
type CreateBuildingRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
	Code string `json:"code" binding:"required,min=1,max=20"`
}

// CreateFloorRequest 创建楼层请求
type CreateFloorRequest struct {
	BuildingID string `json:"building_id" binding:"required,uuid"`
	Level      int    `json:"level"       binding:"required,min=-5,max=100"`
	Name       string `json:"name"        binding:"omitempty,max=50"`
}

// CreateRoomRequest 创建教室请求
type CreateRoomRequest struct {
	FloorID    string `json:"floor_id"    binding:"required,uuid"`
	RoomNumber string `json:"room_number" binding:"required,min=1,max=20"`
	Name       string `json:"name"        binding:"omitempty,max=100"`
	Type       string `json:"type"        binding:"omitempty,oneof=CLASSROOM LAB AUDITORIUM SEMINAR MEETING"`
	Capacity   int    `json:"capacity"    binding:"omitempty,min=1"`
	Amenities  string `json:"amenities"   binding:"omitempty,max=500"`
}

// UpdateRoomRequest 更新教室请求（身份字段不可变）
type UpdateRoomRequest struct {
	Name     *string `json:"name"      binding:"omitempty,max=100"`
	Type     *string `json:"type"      binding:"omitempty,oneof=CLASSROOM LAB AUDITORIUM SEMINAR MEETING"`
	Capacity *int    `json:"capacity"  binding:"omitempty,min=1"`
	IsActive *bool   `json:"is_active"`
}

// BuildingResponse 教学楼响应
type BuildingResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Code     string          `json:"code"`
	IsActive bool            `json:"is_active"`
	Floors   []FloorResponse `json:"floors,omitempty"`
}

// FloorResponse 楼层响应
type FloorResponse struct {
	ID         string         `json:"id"`
	BuildingID string         `json:"building_id"`
	Level      int            `json:"level"`
	Name       string         `json:"name,omitempty"`
	Rooms      []RoomResponse `json:"rooms,omitempty"`
}

// RoomResponse 教室响应
type RoomResponse struct {
	ID         string `json:"id"`
	FloorID    string `json:"floor_id"`
	RoomNumber string `json:"room_number"`
	Name       string `json:"name,omitempty"`
	Type       string `json:"type"`
	Capacity   int    `json:"capacity,omitempty"`
	Amenities  string `json:"amenities,omitempty"`
	IsActive   bool   `json:"is_active"`
}

// RoomBrief 教室简要信息（嵌入预订响应）
type RoomBrief struct {
	ID         string `json:"id"`
	RoomNumber string `json:"room_number"`
	Name       string `json:"name,omitempty"`
}
