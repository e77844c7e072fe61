package model

// FixedTimetableEntry 固定课表条目 — 对应 fixed_timetable_entries
// 按星期周期性重复的课程占用，与具体日期无关
// 时间以 "HH:MM" 字符串存储，可直接按字典序比较
type FixedTimetableEntry struct {
	EntryID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"entry_id"`
	RoomID     string `gorm:"type:uuid;not null"                             json:"room_id"`
	DayOfWeek  int    `gorm:"type:smallint;not null"                         json:"day_of_week"` // 1=周一 ... 7=周日
	StartTime  string `gorm:"type:varchar(5);not null"                       json:"start_time"`
	EndTime    string `gorm:"type:varchar(5);not null"                       json:"end_time"`
	CourseName string `gorm:"type:varchar(100);not null"                     json:"course_name"`
	CourseCode string `gorm:"type:varchar(30)"                               json:"course_code,omitempty"`
	Section    string `gorm:"type:varchar(20)"                               json:"section,omitempty"`
	Semester   string `gorm:"type:varchar(30)"                               json:"semester,omitempty"`
	Batch      string `gorm:"type:varchar(30)"                               json:"batch,omitempty"`
	Faculty    string `gorm:"type:varchar(100)"                              json:"faculty,omitempty"`
	IsActive   bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel

	// 关联
	Room *Room `gorm:"foreignKey:RoomID;references:RoomID" json:"room,omitempty"`
}

// TableName 指定表名
func (FixedTimetableEntry) TableName() string { return "fixed_timetable_entries" }
