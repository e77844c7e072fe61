package handler

import "campus-event/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth         *AuthHandler
	Room         *RoomHandler
	Timetable    *TimetableHandler
	Schedule     *ScheduleHandler
	Booking      *BookingHandler
	Event        *EventHandler
	Notification *NotificationHandler
	Export       *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		Room:         NewRoomHandler(svc.Room),
		Timetable:    NewTimetableHandler(svc.Timetable),
		Schedule:     NewScheduleHandler(svc.Schedule, svc.Availability),
		Booking:      NewBookingHandler(svc.Booking),
		Event:        NewEventHandler(svc.Event),
		Notification: NewNotificationHandler(svc.Notification),
		Export:       NewExportHandler(svc.Export),
	}
}
