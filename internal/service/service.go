package service

import (
	"go.uber.org/zap"

	"campus-event/backend/config"
	"campus-event/backend/internal/repository"
	"campus-event/backend/pkg/jwt"
	"campus-event/backend/pkg/queue"
	"campus-event/backend/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth         AuthService
	Room         RoomService
	Timetable    TimetableService
	Availability AvailabilityService
	Schedule     ScheduleService
	Booking      BookingService
	Allocation   AllocationService
	Event        EventService
	Notification NotificationService
	Export       ExportService
}

// NewService 创建 Service 聚合。
// rdb 与 publisher 允许为 nil：对应通道降级（无缓存/仅站内信）
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	publisher *queue.Publisher,
	logger *zap.Logger,
) *Service {
	availability := NewAvailabilityService(repo, logger)
	timetable := NewTimetableService(repo, logger)
	notification := NewNotificationService(repo, publisher, logger)

	return &Service{
		Auth:         NewAuthService(repo, jwtMgr, rdb, logger),
		Room:         NewRoomService(repo, logger),
		Timetable:    timetable,
		Availability: availability,
		Schedule:     NewScheduleService(repo, timetable, availability, rdb, logger),
		Booking:      NewBookingService(repo, availability, notification, cfg, logger),
		Allocation:   NewAllocationService(repo, availability, notification, cfg, logger),
		Event:        NewEventService(repo, logger),
		Notification: notification,
		Export:       NewExportService(repo, logger),
	}
}
