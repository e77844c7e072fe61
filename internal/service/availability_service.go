package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"campus-event/backend/internal/repository"
)

// AvailabilityService 教室可用性查询接口
// 纯读操作，对当前持久化状态求值，可被调度任务高频调用
type AvailabilityService interface {
	// IsRoomAvailable 指定教室在绝对时间窗口 [start, end) 内是否空闲
	// （只考察 APPROVED / CONFIRMED 的临时预订；固定课表由冲突检查层另行叠加）
	IsRoomAvailable(ctx context.Context, roomID string, start, end time.Time) (bool, error)
	// BatchAvailability 同一窗口下多教室的可用性，摊销一次活跃预订加载
	BatchAvailability(ctx context.Context, roomIDs []string, start, end time.Time) (map[string]bool, error)
}

type availabilityService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAvailabilityService 创建 AvailabilityService 实例
func NewAvailabilityService(repo *repository.Repository, logger *zap.Logger) AvailabilityService {
	return &availabilityService{repo: repo, logger: logger}
}

func (s *availabilityService) IsRoomAvailable(ctx context.Context, roomID string, start, end time.Time) (bool, error) {
	result, err := s.BatchAvailability(ctx, []string{roomID}, start, end)
	if err != nil {
		return false, err
	}
	return result[roomID], nil
}

func (s *availabilityService) BatchAvailability(ctx context.Context, roomIDs []string, start, end time.Time) (map[string]bool, error) {
	active, err := s.repo.BookingRequest.ListActive(ctx)
	if err != nil {
		s.logger.Error("加载活跃预订失败", zap.Error(err))
		return nil, err
	}

	// 每教室占用窗口索引
	occupied := make(map[string][][2]time.Time)
	for i := range active {
		req := &active[i]
		if req.AllocatedRoomID == nil {
			continue
		}
		ws, we, err := resolveRequestWindow(req)
		if err != nil {
			// 窗口无法解析的活跃预订不参与冲突判定（与原始语义一致），
			// 但必须可诊断：这类记录可能掩盖真实的重复占用
			s.logger.Warn("活跃预订窗口无法解析，已跳过冲突判定",
				zap.String("request_id", req.RequestID),
				zap.String("status", req.Status),
			)
			continue
		}
		occupied[*req.AllocatedRoomID] = append(occupied[*req.AllocatedRoomID], [2]time.Time{ws, we})
	}

	result := make(map[string]bool, len(roomIDs))
	for _, roomID := range roomIDs {
		free := true
		for _, w := range occupied[roomID] {
			if windowsOverlap(w[0], w[1], start, end) {
				free = false
				break
			}
		}
		result[roomID] = free
	}
	return result, nil
}
