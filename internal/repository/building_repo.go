package repository

import (
	"context"

	"gorm.io/gorm"

	"campus-event/backend/internal/model"
)

// BuildingRepository 教学楼数据访问接口
type BuildingRepository interface {
	Create(ctx context.Context, b *model.Building) error
	GetByID(ctx context.Context, id string) (*model.Building, error)
	List(ctx context.Context) ([]model.Building, error)
	Update(ctx context.Context, b *model.Building) error
	// Delete 删除教学楼；楼层与教室由外键级联删除
	Delete(ctx context.Context, id string) error
}

type buildingRepo struct {
	db *gorm.DB
}

// NewBuildingRepo 创建 BuildingRepository 实例
func NewBuildingRepo(db *gorm.DB) BuildingRepository {
	return &buildingRepo{db: db}
}

func (r *buildingRepo) Create(ctx context.Context, b *model.Building) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *buildingRepo) GetByID(ctx context.Context, id string) (*model.Building, error) {
	var b model.Building
	err := r.db.WithContext(ctx).
		Preload("Floors").
		Preload("Floors.Rooms").
		Where("building_id = ?", id).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *buildingRepo) List(ctx context.Context) ([]model.Building, error) {
	var buildings []model.Building
	err := r.db.WithContext(ctx).Order("code ASC").Find(&buildings).Error
	return buildings, err
}

func (r *buildingRepo) Update(ctx context.Context, b *model.Building) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *buildingRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("building_id = ?", id).
		Delete(&model.Building{}).Error
}

// FloorRepository 楼层数据访问接口
type FloorRepository interface {
	Create(ctx context.Context, f *model.Floor) error
	GetByID(ctx context.Context, id string) (*model.Floor, error)
	ListByBuilding(ctx context.Context, buildingID string) ([]model.Floor, error)
	Delete(ctx context.Context, id string) error
}

type floorRepo struct {
	db *gorm.DB
}

// NewFloorRepo 创建 FloorRepository 实例
func NewFloorRepo(db *gorm.DB) FloorRepository {
	return &floorRepo{db: db}
}

func (r *floorRepo) Create(ctx context.Context, f *model.Floor) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *floorRepo) GetByID(ctx context.Context, id string) (*model.Floor, error) {
	var f model.Floor
	err := r.db.WithContext(ctx).
		Preload("Rooms").
		Where("floor_id = ?", id).
		First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *floorRepo) ListByBuilding(ctx context.Context, buildingID string) ([]model.Floor, error) {
	var floors []model.Floor
	err := r.db.WithContext(ctx).
		Where("building_id = ?", buildingID).
		Order("level ASC").
		Find(&floors).Error
	return floors, err
}

func (r *floorRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("floor_id = ?", id).
		Delete(&model.Floor{}).Error
}
