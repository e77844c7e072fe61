package repository

import (
	"context"

	"gorm.io/gorm"

	"campus-event/backend/internal/model"
)

// TimetableRepository 固定课表数据访问接口
type TimetableRepository interface {
	Create(ctx context.Context, entry *model.FixedTimetableEntry) error
	GetByID(ctx context.Context, id string) (*model.FixedTimetableEntry, error)
	// ListByRoomDay 返回指定教室在指定星期的启用条目，按开始时间升序
	ListByRoomDay(ctx context.Context, roomID string, dayOfWeek int) ([]model.FixedTimetableEntry, error)
	// ListByRoom 返回指定教室整周的启用条目，按星期+开始时间排序
	ListByRoom(ctx context.Context, roomID string) ([]model.FixedTimetableEntry, error)
	Deactivate(ctx context.Context, id string) error
}

type timetableRepo struct {
	db *gorm.DB
}

// NewTimetableRepo 创建 TimetableRepository 实例
func NewTimetableRepo(db *gorm.DB) TimetableRepository {
	return &timetableRepo{db: db}
}

func (r *timetableRepo) Create(ctx context.Context, entry *model.FixedTimetableEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *timetableRepo) GetByID(ctx context.Context, id string) (*model.FixedTimetableEntry, error) {
	var entry model.FixedTimetableEntry
	err := r.db.WithContext(ctx).
		Preload("Room").
		Where("entry_id = ?", id).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *timetableRepo) ListByRoomDay(ctx context.Context, roomID string, dayOfWeek int) ([]model.FixedTimetableEntry, error) {
	var entries []model.FixedTimetableEntry
	err := r.db.WithContext(ctx).
		Where("room_id = ? AND day_of_week = ? AND is_active = ?", roomID, dayOfWeek, true).
		Order("start_time ASC").
		Find(&entries).Error
	return entries, err
}

func (r *timetableRepo) ListByRoom(ctx context.Context, roomID string) ([]model.FixedTimetableEntry, error) {
	var entries []model.FixedTimetableEntry
	err := r.db.WithContext(ctx).
		Where("room_id = ? AND is_active = ?", roomID, true).
		Order("day_of_week ASC, start_time ASC").
		Find(&entries).Error
	return entries, err
}

func (r *timetableRepo) Deactivate(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&model.FixedTimetableEntry{}).
		Where("entry_id = ?", id).
		Update("is_active", false).Error
}
