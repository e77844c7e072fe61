package repository

import (
	"context"

	"gorm.io/gorm"

	"campus-event/backend/internal/model"
)

// RoomRepository 教室数据访问接口
type RoomRepository interface {
	Create(ctx context.Context, room *model.Room) error
	GetByID(ctx context.Context, id string) (*model.Room, error)
	// ListActive 返回所有启用教室，按房间号升序——
	// 分配引擎的兜底扫描依赖这一稳定顺序
	ListActive(ctx context.Context) ([]model.Room, error)
	ListByFloor(ctx context.Context, floorID string) ([]model.Room, error)
	Update(ctx context.Context, room *model.Room) error
	Delete(ctx context.Context, id string) error
}

type roomRepo struct {
	db *gorm.DB
}

// NewRoomRepo 创建 RoomRepository 实例
func NewRoomRepo(db *gorm.DB) RoomRepository {
	return &roomRepo{db: db}
}

func (r *roomRepo) Create(ctx context.Context, room *model.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *roomRepo) GetByID(ctx context.Context, id string) (*model.Room, error) {
	var room model.Room
	err := r.db.WithContext(ctx).
		Preload("Floor").
		Preload("Floor.Building").
		Where("room_id = ?", id).
		First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepo) ListActive(ctx context.Context) ([]model.Room, error) {
	var rooms []model.Room
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("room_number ASC").
		Find(&rooms).Error
	return rooms, err
}

func (r *roomRepo) ListByFloor(ctx context.Context, floorID string) ([]model.Room, error) {
	var rooms []model.Room
	err := r.db.WithContext(ctx).
		Where("floor_id = ?", floorID).
		Order("room_number ASC").
		Find(&rooms).Error
	return rooms, err
}

func (r *roomRepo) Update(ctx context.Context, room *model.Room) error {
	return r.db.WithContext(ctx).Save(room).Error
}

func (r *roomRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("room_id = ?", id).
		Delete(&model.Room{}).Error
}
