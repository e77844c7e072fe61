package model

import "time"

// ── 预订请求状态机 ──
//
// PENDING --(分配)--> APPROVED --(确认)--> CONFIRMED
// PENDING --(驳回/取消)--> REJECTED
// CONFIRMED 与 REJECTED 为终态

const (
	BookingStatusPending   = "PENDING"
	BookingStatusApproved  = "APPROVED"
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusRejected  = "REJECTED"
)

// ApprovedByAuto 自动分配审批人哨兵值，区分人工审批与调度任务审批
const ApprovedByAuto = "AUTO"

// BookingRequest 教室预订请求 — 对应 booking_requests
//
// 时间来源二选一：关联活动（窗口取活动起止）或独立会议（meeting_* 字段）。
// 不变式：AllocatedRoomID 为空 当且仅当 状态为 PENDING 或 REJECTED。
type BookingRequest struct {
	RequestID       string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"request_id"`
	EventID         *string    `gorm:"type:uuid"                                      json:"event_id,omitempty"`
	Pref1RoomID     *string    `gorm:"type:uuid"                                      json:"pref1_room_id,omitempty"`
	Pref2RoomID     *string    `gorm:"type:uuid"                                      json:"pref2_room_id,omitempty"`
	Pref3RoomID     *string    `gorm:"type:uuid"                                      json:"pref3_room_id,omitempty"`
	AllocatedRoomID *string    `gorm:"type:uuid"                                      json:"allocated_room_id,omitempty"`
	Status          string     `gorm:"type:varchar(20);not null;default:'PENDING'"    json:"status"`
	RequestedBy     string     `gorm:"type:uuid;not null"                             json:"requested_by"`
	ApprovedBy      *string    `gorm:"type:varchar(50)"                               json:"approved_by,omitempty"`
	RequestedAt     time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"requested_at"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	ConfirmedAt     *time.Time `json:"confirmed_at,omitempty"`
	MeetingStart    *time.Time `json:"meeting_start,omitempty"`
	MeetingEnd      *time.Time `json:"meeting_end,omitempty"`
	MeetingPurpose  string     `gorm:"type:varchar(500)" json:"meeting_purpose,omitempty"`
	BaseModel

	// 关联
	Event         *Event `gorm:"foreignKey:EventID;references:EventID"          json:"event,omitempty"`
	Pref1         *Room  `gorm:"foreignKey:Pref1RoomID;references:RoomID"       json:"pref1,omitempty"`
	Pref2         *Room  `gorm:"foreignKey:Pref2RoomID;references:RoomID"       json:"pref2,omitempty"`
	Pref3         *Room  `gorm:"foreignKey:Pref3RoomID;references:RoomID"       json:"pref3,omitempty"`
	AllocatedRoom *Room  `gorm:"foreignKey:AllocatedRoomID;references:RoomID"   json:"allocated_room,omitempty"`
}

// TableName 指定表名
func (BookingRequest) TableName() string { return "booking_requests" }

// PreferredRoomIDs 按优先级返回非空的偏好教室ID（严格顺序 pref1 → pref2 → pref3）
func (r *BookingRequest) PreferredRoomIDs() []string {
	var ids []string
	for _, p := range []*string{r.Pref1RoomID, r.Pref2RoomID, r.Pref3RoomID} {
		if p != nil && *p != "" {
			ids = append(ids, *p)
		}
	}
	return ids
}

// IsTerminal 是否处于终态
func (r *BookingRequest) IsTerminal() bool {
	return r.Status == BookingStatusConfirmed || r.Status == BookingStatusRejected
}
