package model

// ── 教室类型 ──

const (
	RoomTypeClassroom  = "CLASSROOM"
	RoomTypeLab        = "LAB"
	RoomTypeAuditorium = "AUDITORIUM"
	RoomTypeSeminar    = "SEMINAR"
	RoomTypeMeeting    = "MEETING"
)

// Building 教学楼 — 对应 buildings
type Building struct {
	BuildingID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"building_id"`
	Name       string `gorm:"type:varchar(100);not null"                     json:"name"`
	Code       string `gorm:"type:varchar(20);not null;uniqueIndex"          json:"code"`
	IsActive   bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel

	// 关联（楼删除时级联删除楼层，见迁移脚本）
	Floors []Floor `gorm:"foreignKey:BuildingID;references:BuildingID" json:"floors,omitempty"`
}

// TableName 指定表名
func (Building) TableName() string { return "buildings" }

// Floor 楼层 — 对应 floors
type Floor struct {
	FloorID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"floor_id"`
	BuildingID string `gorm:"type:uuid;not null"                             json:"building_id"`
	Level      int    `gorm:"type:smallint;not null"                         json:"level"`
	Name       string `gorm:"type:varchar(50)"                               json:"name,omitempty"`
	BaseModel

	// 关联
	Building *Building `gorm:"foreignKey:BuildingID;references:BuildingID" json:"building,omitempty"`
	Rooms    []Room    `gorm:"foreignKey:FloorID;references:FloorID"       json:"rooms,omitempty"`
}

// TableName 指定表名
func (Floor) TableName() string { return "floors" }

// Room 教室 — 对应 rooms
// 身份创建后不可变；容量/类型/启用状态可由管理操作修改
type Room struct {
	RoomID     string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"room_id"`
	FloorID    string `gorm:"type:uuid;not null"                             json:"floor_id"`
	RoomNumber string `gorm:"type:varchar(20);not null"                      json:"room_number"`
	Name       string `gorm:"type:varchar(100)"                              json:"name,omitempty"`
	Type       string `gorm:"type:varchar(20);not null;default:'CLASSROOM'"  json:"type"`
	Capacity   int    `gorm:"type:int"                                       json:"capacity"`
	Amenities  string `gorm:"type:varchar(500)"                              json:"amenities,omitempty"`
	IsActive   bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel

	// 关联
	Floor *Floor `gorm:"foreignKey:FloorID;references:FloorID" json:"floor,omitempty"`
}

// TableName 指定表名
func (Room) TableName() string { return "rooms" }

// DisplayName 展示名：优先使用 Name，缺省回退到房间号
func (r *Room) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	return r.RoomNumber
}
