package model

// Notification 站内通知 — 对应 notifications
type Notification struct {
	NotificationID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"notification_id"`
	UserID         string `gorm:"type:uuid;not null"                             json:"user_id"`
	Title          string `gorm:"type:varchar(200);not null"                     json:"title"`
	Content        string `gorm:"type:text;not null"                             json:"content"`
	IsRead         bool   `gorm:"not null;default:false"                         json:"is_read"`
	BaseModel
}

// TableName 指定表名
func (Notification) TableName() string { return "notifications" }
