package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"campus-event/backend/internal/dto"
	"campus-event/backend/internal/model"
	"campus-event/backend/internal/repository"
)

// ── 活动模块业务错误 ──

var (
	// ErrEventNotFound 活动不存在
	ErrEventNotFound = errors.New("活动不存在")
	// ErrEventWindowInvalid 活动结束时间必须晚于开始时间
	ErrEventWindowInvalid = errors.New("活动时间窗口无效")
)

// EventService 校园活动管理
type EventService interface {
	Create(ctx context.Context, userID string, req *dto.CreateEventRequest) (*model.Event, error)
	GetByID(ctx context.Context, id string) (*model.Event, error)
	List(ctx context.Context) ([]model.Event, error)
}

type eventService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEventService 创建 EventService 实例
func NewEventService(repo *repository.Repository, logger *zap.Logger) EventService {
	return &eventService{repo: repo, logger: logger}
}

func (s *eventService) Create(ctx context.Context, userID string, req *dto.CreateEventRequest) (*model.Event, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, ErrEventWindowInvalid
	}

	event := &model.Event{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    model.EventLocationTBD, // 教室确认后由调度回填
		CreatedBy:   &userID,
	}
	if err := s.repo.Event.Create(ctx, event); err != nil {
		s.logger.Error("创建活动失败", zap.String("title", req.Title), zap.Error(err))
		return nil, err
	}
	s.logger.Info("活动已创建",
		zap.String("event_id", event.EventID),
		zap.String("title", event.Title))
	return event, nil
}

func (s *eventService) GetByID(ctx context.Context, id string) (*model.Event, error) {
	event, err := s.repo.Event.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (s *eventService) List(ctx context.Context) ([]model.Event, error) {
	return s.repo.Event.List(ctx)
}
