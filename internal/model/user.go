package model

// ── 用户角色 ──

const (
	RoleAdmin   = "admin"
	RoleFaculty = "faculty"
	RoleStudent = "student"
)

// User 用户 — 对应 users
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Username     string `gorm:"type:varchar(50);not null;uniqueIndex"          json:"username"`
	Email        string `gorm:"type:varchar(100);not null;uniqueIndex"         json:"email"`
	PasswordHash string `gorm:"type:varchar(100);not null"                     json:"-"`
	Role         string `gorm:"type:varchar(20);not null;default:'student'"    json:"role"`
	IsActive     bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }
