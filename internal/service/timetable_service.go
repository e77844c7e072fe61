package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"campus-event/backend/internal/dto"
	"campus-event/backend/internal/model"
	"campus-event/backend/internal/repository"
)

// ── 固定课表模块业务错误 ──

var (
	ErrTimetableEntryNotFound = errors.New("课表条目不存在")
	ErrTimetableSlotOccupied  = errors.New("该时段已有固定课程占用")
	ErrInvalidClockWindow     = errors.New("时间格式无效或结束不晚于开始")
)

// TimetableService 固定课表业务接口
// 回答“这间教室在某星期某时段是否被固定课程占用”
type TimetableService interface {
	// HasFixedConflict 候选窗口是否与该教室该星期的任一启用条目重叠
	HasFixedConflict(ctx context.Context, roomID string, dayOfWeek int, start, end string) (bool, error)
	// DaySchedule 该教室该星期的启用条目，按开始时间升序
	DaySchedule(ctx context.Context, roomID string, dayOfWeek int) ([]dto.TimetableEntryResponse, error)
	// WeekSchedule 该教室整周的启用条目
	WeekSchedule(ctx context.Context, roomID string) ([]dto.TimetableEntryResponse, error)
	// CreateEntry 新增条目；仅对候选窗口做冲突校验，不回溯校验既有条目之间的重叠
	CreateEntry(ctx context.Context, req *dto.CreateTimetableEntryRequest) (*dto.TimetableEntryResponse, error)
	// DeactivateEntry 停用条目（停用后不再参与冲突判定）
	DeactivateEntry(ctx context.Context, id string) error
	// WeekScheduleICS 导出该教室整周固定课表为 iCalendar（每条目一个按周重复事件）
	WeekScheduleICS(ctx context.Context, roomID string) (string, error)
}

type timetableService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTimetableService 创建 TimetableService 实例
func NewTimetableService(repo *repository.Repository, logger *zap.Logger) TimetableService {
	return &timetableService{repo: repo, logger: logger}
}

func (s *timetableService) HasFixedConflict(ctx context.Context, roomID string, dayOfWeek int, start, end string) (bool, error) {
	entries, err := s.repo.Timetable.ListByRoomDay(ctx, roomID, dayOfWeek)
	if err != nil {
		s.logger.Error("查询固定课表失败", zap.String("room_id", roomID), zap.Error(err))
		return false, err
	}

	for i := range entries {
		if clocksOverlap(entries[i].StartTime, entries[i].EndTime, start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (s *timetableService) DaySchedule(ctx context.Context, roomID string, dayOfWeek int) ([]dto.TimetableEntryResponse, error) {
	entries, err := s.repo.Timetable.ListByRoomDay(ctx, roomID, dayOfWeek)
	if err != nil {
		s.logger.Error("查询固定课表失败", zap.String("room_id", roomID), zap.Error(err))
		return nil, err
	}
	return toEntryResponses(entries), nil
}

func (s *timetableService) WeekSchedule(ctx context.Context, roomID string) ([]dto.TimetableEntryResponse, error) {
	entries, err := s.repo.Timetable.ListByRoom(ctx, roomID)
	if err != nil {
		s.logger.Error("查询固定课表失败", zap.String("room_id", roomID), zap.Error(err))
		return nil, err
	}
	return toEntryResponses(entries), nil
}

func (s *timetableService) CreateEntry(ctx context.Context, req *dto.CreateTimetableEntryRequest) (*dto.TimetableEntryResponse, error) {
	if !validClockWindow(req.StartTime, req.EndTime) {
		return nil, ErrInvalidClockWindow
	}

	if _, err := s.repo.Room.GetByID(ctx, req.RoomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	conflict, err := s.HasFixedConflict(ctx, req.RoomID, req.DayOfWeek, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, ErrTimetableSlotOccupied
	}

	entry := &model.FixedTimetableEntry{
		RoomID:     req.RoomID,
		DayOfWeek:  req.DayOfWeek,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		CourseName: req.CourseName,
		CourseCode: req.CourseCode,
		Section:    req.Section,
		Semester:   req.Semester,
		Batch:      req.Batch,
		Faculty:    req.Faculty,
		IsActive:   true,
	}
	if err := s.repo.Timetable.Create(ctx, entry); err != nil {
		s.logger.Error("创建课表条目失败", zap.Error(err))
		return nil, err
	}

	resp := toEntryResponse(entry)
	return &resp, nil
}

func (s *timetableService) DeactivateEntry(ctx context.Context, id string) error {
	if _, err := s.repo.Timetable.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTimetableEntryNotFound
		}
		return err
	}
	return s.repo.Timetable.Deactivate(ctx, id)
}

// ────────────────────── ICS 导出 ──────────────────────

var icsWeekdays = map[int]string{
	1: "MO", 2: "TU", 3: "WE", 4: "TH", 5: "FR", 6: "SA", 7: "SU",
}

func (s *timetableService) WeekScheduleICS(ctx context.Context, roomID string) (string, error) {
	room, err := s.repo.Room.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrRoomNotFound
		}
		return "", err
	}

	entries, err := s.repo.Timetable.ListByRoom(ctx, roomID)
	if err != nil {
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//campus-event//room-timetable//CN")

	now := time.Now()
	for i := range entries {
		e := &entries[i]
		start, err := nextWeekdayClock(now, e.DayOfWeek, e.StartTime)
		if err != nil {
			s.logger.Warn("课表条目时间无法解析，已跳过导出",
				zap.String("entry_id", e.EntryID), zap.Error(err))
			continue
		}
		end, err := nextWeekdayClock(now, e.DayOfWeek, e.EndTime)
		if err != nil {
			continue
		}

		evt := cal.AddEvent(fmt.Sprintf("%s@campus-event", e.EntryID))
		evt.SetCreatedTime(now)
		evt.SetDtStampTime(now)
		evt.SetStartAt(start)
		evt.SetEndAt(end)
		evt.SetSummary(e.CourseName)
		if e.CourseCode != "" {
			evt.SetDescription(e.CourseCode + " " + e.Section)
		}
		evt.SetLocation(room.DisplayName())
		evt.AddRrule("FREQ=WEEKLY;BYDAY=" + icsWeekdays[e.DayOfWeek])
	}

	return cal.Serialize(), nil
}

// nextWeekdayClock 以 from 为基准，求下一个指定星期、指定时刻的绝对时间
func nextWeekdayClock(from time.Time, dayOfWeek int, clock string) (time.Time, error) {
	days := (dayOfWeek - isoWeekday(from) + 7) % 7
	return combineDateClock(from.AddDate(0, 0, days), clock)
}

// ── 内部辅助方法 ──

func toEntryResponse(e *model.FixedTimetableEntry) dto.TimetableEntryResponse {
	return dto.TimetableEntryResponse{
		ID:         e.EntryID,
		RoomID:     e.RoomID,
		DayOfWeek:  e.DayOfWeek,
		StartTime:  e.StartTime,
		EndTime:    e.EndTime,
		CourseName: e.CourseName,
		CourseCode: e.CourseCode,
		Section:    e.Section,
		Semester:   e.Semester,
		Faculty:    e.Faculty,
		IsActive:   e.IsActive,
	}
}

func toEntryResponses(entries []model.FixedTimetableEntry) []dto.TimetableEntryResponse {
	result := make([]dto.TimetableEntryResponse, 0, len(entries))
	for i := range entries {
		result = append(result, toEntryResponse(&entries[i]))
	}
	return result
}
