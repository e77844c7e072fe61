package model

import "time"

// EventLocationTBD 活动地点占位值：教室确认前的默认地点
const EventLocationTBD = "TBD"

// Event 校园活动 — 对应 events
type Event struct {
	EventID     string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"event_id"`
	Title       string    `gorm:"type:varchar(200);not null"                     json:"title"`
	Description string    `gorm:"type:text"                                      json:"description,omitempty"`
	StartTime   time.Time `gorm:"not null"                                       json:"start_time"`
	EndTime     time.Time `gorm:"not null"                                       json:"end_time"`
	Location    string    `gorm:"type:varchar(200);not null;default:'TBD'"       json:"location"`
	CreatedBy   *string   `gorm:"type:uuid"                                      json:"created_by,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Event) TableName() string { return "events" }
