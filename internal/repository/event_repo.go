package repository

import (
	"context"

	"gorm.io/gorm"

	"campus-event/backend/internal/model"
)

// EventRepository 活动数据访问接口
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	GetByID(ctx context.Context, id string) (*model.Event, error)
	List(ctx context.Context) ([]model.Event, error)
	Update(ctx context.Context, event *model.Event) error
	// UpdateLocation 只更新活动地点（确认调度回填用）
	UpdateLocation(ctx context.Context, id string, location string) error
}

type eventRepo struct {
	db *gorm.DB
}

// NewEventRepo 创建 EventRepository 实例
func NewEventRepo(db *gorm.DB) EventRepository {
	return &eventRepo{db: db}
}

func (r *eventRepo) Create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepo) GetByID(ctx context.Context, id string) (*model.Event, error) {
	var event model.Event
	err := r.db.WithContext(ctx).Where("event_id = ?", id).First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepo) List(ctx context.Context) ([]model.Event, error) {
	var events []model.Event
	err := r.db.WithContext(ctx).Order("start_time ASC").Find(&events).Error
	return events, err
}

func (r *eventRepo) Update(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

func (r *eventRepo) UpdateLocation(ctx context.Context, id string, location string) error {
	return r.db.WithContext(ctx).
		Model(&model.Event{}).
		Where("event_id = ?", id).
		Update("location", location).Error
}
