package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User           UserRepository
	Building       BuildingRepository
	Floor          FloorRepository
	Room           RoomRepository
	Timetable      TimetableRepository
	Event          EventRepository
	BookingRequest BookingRequestRepository
	Notification   NotificationRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:           NewUserRepo(db),
		Building:       NewBuildingRepo(db),
		Floor:          NewFloorRepo(db),
		Room:           NewRoomRepo(db),
		Timetable:      NewTimetableRepo(db),
		Event:          NewEventRepo(db),
		BookingRequest: NewBookingRequestRepo(db),
		Notification:   NewNotificationRepo(db),
	}
}
