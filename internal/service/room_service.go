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

// ── 楼宇/教室模块业务错误 ──

var (
	// ErrBuildingNotFound 教学楼不存在
	ErrBuildingNotFound = errors.New("教学楼不存在")
	// ErrFloorNotFound 楼层不存在
	ErrFloorNotFound = errors.New("楼层不存在")
	// ErrRoomNotFound 教室不存在
	ErrRoomNotFound = errors.New("教室不存在")
	// ErrBuildingCodeExists 教学楼编码已存在
	ErrBuildingCodeExists = errors.New("教学楼编码已存在")
)

// RoomService 教学楼/楼层/教室管理
type RoomService interface {
	CreateBuilding(ctx context.Context, req *dto.CreateBuildingRequest) (*model.Building, error)
	GetBuilding(ctx context.Context, id string) (*model.Building, error)
	ListBuildings(ctx context.Context) ([]model.Building, error)
	DeleteBuilding(ctx context.Context, id string) error

	CreateFloor(ctx context.Context, req *dto.CreateFloorRequest) (*model.Floor, error)
	ListFloors(ctx context.Context, buildingID string) ([]model.Floor, error)

	CreateRoom(ctx context.Context, req *dto.CreateRoomRequest) (*model.Room, error)
	GetRoom(ctx context.Context, id string) (*model.Room, error)
	ListActiveRooms(ctx context.Context) ([]model.Room, error)
	ListRoomsByFloor(ctx context.Context, floorID string) ([]model.Room, error)
	UpdateRoom(ctx context.Context, id string, req *dto.UpdateRoomRequest) (*model.Room, error)
	DeleteRoom(ctx context.Context, id string) error
}

type roomService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewRoomService 创建 RoomService 实例
func NewRoomService(repo *repository.Repository, logger *zap.Logger) RoomService {
	return &roomService{repo: repo, logger: logger}
}

// ── 教学楼 ──

func (s *roomService) CreateBuilding(ctx context.Context, req *dto.CreateBuildingRequest) (*model.Building, error) {
	b := &model.Building{
		Name:     req.Name,
		Code:     req.Code,
		IsActive: true,
	}
	if err := s.repo.Building.Create(ctx, b); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrBuildingCodeExists
		}
		s.logger.Error("创建教学楼失败", zap.String("code", req.Code), zap.Error(err))
		return nil, err
	}
	s.logger.Info("教学楼已创建", zap.String("building_id", b.BuildingID), zap.String("code", b.Code))
	return b, nil
}

func (s *roomService) GetBuilding(ctx context.Context, id string) (*model.Building, error) {
	b, err := s.repo.Building.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBuildingNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *roomService) ListBuildings(ctx context.Context) ([]model.Building, error) {
	return s.repo.Building.List(ctx)
}

func (s *roomService) DeleteBuilding(ctx context.Context, id string) error {
	if _, err := s.GetBuilding(ctx, id); err != nil {
		return err
	}
	// 楼层与教室由外键级联删除
	if err := s.repo.Building.Delete(ctx, id); err != nil {
		s.logger.Error("删除教学楼失败", zap.String("building_id", id), zap.Error(err))
		return err
	}
	s.logger.Info("教学楼已删除", zap.String("building_id", id))
	return nil
}

// ── 楼层 ──

func (s *roomService) CreateFloor(ctx context.Context, req *dto.CreateFloorRequest) (*model.Floor, error) {
	if _, err := s.GetBuilding(ctx, req.BuildingID); err != nil {
		return nil, err
	}
	f := &model.Floor{
		BuildingID: req.BuildingID,
		Level:      req.Level,
		Name:       req.Name,
	}
	if err := s.repo.Floor.Create(ctx, f); err != nil {
		s.logger.Error("创建楼层失败", zap.String("building_id", req.BuildingID), zap.Error(err))
		return nil, err
	}
	return f, nil
}

func (s *roomService) ListFloors(ctx context.Context, buildingID string) ([]model.Floor, error) {
	if _, err := s.GetBuilding(ctx, buildingID); err != nil {
		return nil, err
	}
	return s.repo.Floor.ListByBuilding(ctx, buildingID)
}

// ── 教室 ──

func (s *roomService) CreateRoom(ctx context.Context, req *dto.CreateRoomRequest) (*model.Room, error) {
	if _, err := s.repo.Floor.GetByID(ctx, req.FloorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFloorNotFound
		}
		return nil, err
	}

	roomType := req.Type
	if roomType == "" {
		roomType = model.RoomTypeClassroom
	}
	room := &model.Room{
		FloorID:    req.FloorID,
		RoomNumber: req.RoomNumber,
		Name:       req.Name,
		Type:       roomType,
		Capacity:   req.Capacity,
		Amenities:  req.Amenities,
		IsActive:   true,
	}
	if err := s.repo.Room.Create(ctx, room); err != nil {
		s.logger.Error("创建教室失败", zap.String("floor_id", req.FloorID), zap.Error(err))
		return nil, err
	}
	s.logger.Info("教室已创建",
		zap.String("room_id", room.RoomID),
		zap.String("room_number", room.RoomNumber))
	return room, nil
}

func (s *roomService) GetRoom(ctx context.Context, id string) (*model.Room, error) {
	room, err := s.repo.Room.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}

func (s *roomService) ListActiveRooms(ctx context.Context) ([]model.Room, error) {
	return s.repo.Room.ListActive(ctx)
}

func (s *roomService) ListRoomsByFloor(ctx context.Context, floorID string) ([]model.Room, error) {
	if _, err := s.repo.Floor.GetByID(ctx, floorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFloorNotFound
		}
		return nil, err
	}
	return s.repo.Room.ListByFloor(ctx, floorID)
}

func (s *roomService) UpdateRoom(ctx context.Context, id string, req *dto.UpdateRoomRequest) (*model.Room, error) {
	room, err := s.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	// 身份字段（房间号/楼层）不可变，仅允许属性级更新
	if req.Name != nil {
		room.Name = *req.Name
	}
	if req.Type != nil {
		room.Type = *req.Type
	}
	if req.Capacity != nil {
		room.Capacity = *req.Capacity
	}
	if req.IsActive != nil {
		room.IsActive = *req.IsActive
	}

	if err := s.repo.Room.Update(ctx, room); err != nil {
		s.logger.Error("更新教室失败", zap.String("room_id", id), zap.Error(err))
		return nil, err
	}
	return room, nil
}

func (s *roomService) DeleteRoom(ctx context.Context, id string) error {
	if _, err := s.GetRoom(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Room.Delete(ctx, id); err != nil {
		s.logger.Error("删除教室失败", zap.String("room_id", id), zap.Error(err))
		return err
	}
	s.logger.Info("教室已删除", zap.String("room_id", id))
	return nil
}
