package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"campus-event/backend/internal/dto"
	"campus-event/backend/internal/repository"
	"campus-event/backend/pkg/redis"
)

// ScheduleService 预订冲突检查与日程查询接口
// 将固定课表与临时预订两个冲突来源统一到“某教室某日期某时段”的判定上
type ScheduleService interface {
	// HasBookingConflict 指定教室在 date 当天 [start, end) 时段是否冲突
	// （固定课表优先判定，无固定冲突时再查临时预订）
	HasBookingConflict(ctx context.Context, roomID string, date time.Time, start, end string) (bool, error)
	// AvailableSlots 标准时段目录中该教室当天的空闲时段名，保持目录顺序
	AvailableSlots(ctx context.Context, roomID string, date time.Time) ([]string, error)
	// CombinedDaySchedule 固定课程与生效预订合并后的当日日程，按开始时间排序
	CombinedDaySchedule(ctx context.Context, roomID string, date time.Time) ([]dto.ScheduleItemResponse, error)
}

type scheduleService struct {
	repo         *repository.Repository
	timetable    TimetableService
	availability AvailabilityService
	cache        *redis.Client // 可为 nil：降级为直查
	logger       *zap.Logger
}

// NewScheduleService 创建 ScheduleService 实例
func NewScheduleService(
	repo *repository.Repository,
	timetable TimetableService,
	availability AvailabilityService,
	cache *redis.Client,
	logger *zap.Logger,
) ScheduleService {
	return &scheduleService{
		repo:         repo,
		timetable:    timetable,
		availability: availability,
		cache:        cache,
		logger:       logger,
	}
}

const freeSlotsCacheTTL = 2 * time.Minute

func (s *scheduleService) HasBookingConflict(ctx context.Context, roomID string, date time.Time, start, end string) (bool, error) {
	if !validClockWindow(start, end) {
		return false, ErrInvalidClockWindow
	}

	// 1. 固定课表
	fixedConflict, err := s.timetable.HasFixedConflict(ctx, roomID, isoWeekday(date), start, end)
	if err != nil {
		return false, err
	}
	if fixedConflict {
		return true, nil
	}

	// 2. 临时预订（转绝对窗口后交给可用性服务）
	absStart, err := combineDateClock(date, start)
	if err != nil {
		return false, err
	}
	absEnd, err := combineDateClock(date, end)
	if err != nil {
		return false, err
	}

	available, err := s.availability.IsRoomAvailable(ctx, roomID, absStart, absEnd)
	if err != nil {
		return false, err
	}
	return !available, nil
}

func (s *scheduleService) AvailableSlots(ctx context.Context, roomID string, date time.Time) ([]string, error) {
	dateKey := date.Format("2006-01-02")

	if s.cache != nil {
		if slots, ok, err := s.cache.GetFreeSlots(ctx, roomID, dateKey); err == nil && ok {
			return slots, nil
		}
	}

	slots := make([]string, 0, len(StandardTimeSlots))
	for _, slot := range StandardTimeSlots {
		conflict, err := s.HasBookingConflict(ctx, roomID, date, slot.Start, slot.End)
		if err != nil {
			return nil, err
		}
		if !conflict {
			slots = append(slots, slot.Name)
		}
	}

	if s.cache != nil {
		if err := s.cache.SetFreeSlots(ctx, roomID, dateKey, slots, freeSlotsCacheTTL); err != nil {
			s.logger.Warn("写入空闲时段缓存失败", zap.Error(err))
		}
	}
	return slots, nil
}

func (s *scheduleService) CombinedDaySchedule(ctx context.Context, roomID string, date time.Time) ([]dto.ScheduleItemResponse, error) {
	var items []dto.ScheduleItemResponse

	// 固定课程
	entries, err := s.repo.Timetable.ListByRoomDay(ctx, roomID, isoWeekday(date))
	if err != nil {
		s.logger.Error("查询固定课表失败", zap.String("room_id", roomID), zap.Error(err))
		return nil, err
	}
	for i := range entries {
		e := &entries[i]
		subtitle := e.CourseCode
		if e.Section != "" {
			subtitle = e.CourseCode + " - " + e.Section
		}
		items = append(items, dto.ScheduleItemResponse{
			Type:      "FIXED_CLASS",
			Title:     e.CourseName,
			Subtitle:  subtitle,
			StartTime: e.StartTime,
			EndTime:   e.EndTime,
			Faculty:   e.Faculty,
		})
	}

	// 生效预订：取窗口与当天有交集的
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	active, err := s.repo.BookingRequest.ListActive(ctx)
	if err != nil {
		s.logger.Error("加载活跃预订失败", zap.Error(err))
		return nil, err
	}
	for i := range active {
		req := &active[i]
		if req.AllocatedRoomID == nil || *req.AllocatedRoomID != roomID {
			continue
		}
		ws, we, err := resolveRequestWindow(req)
		if err != nil {
			continue
		}
		if !windowsOverlap(ws, we, dayStart, dayEnd) {
			continue
		}

		title := "会议"
		if req.Event != nil {
			title = req.Event.Title
		} else if req.MeetingPurpose != "" {
			title = req.MeetingPurpose
		}
		items = append(items, dto.ScheduleItemResponse{
			Type:      "BOOKING",
			Title:     title,
			Subtitle:  req.Status,
			StartTime: ws.In(date.Location()).Format("15:04"),
			EndTime:   we.In(date.Location()).Format("15:04"),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].StartTime < items[j].StartTime
	})
	return items, nil
}
