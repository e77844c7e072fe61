package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"campus-event/backend/config"
	"campus-event/backend/internal/model"
	"campus-event/backend/internal/repository"
)

// ── 分配/确认相关业务错误 ──

var (
	// ErrNoRoomAvailable 偏好教室与全量回退均无空闲教室
	ErrNoRoomAvailable = errors.New("请求时段内没有可分配的教室")
	// ErrRequestNotAllocatable 请求缺少可解析的时间窗口，无法参与分配
	ErrRequestNotAllocatable = errors.New("请求缺少有效时间窗口，无法分配教室")
)

// AllocationService 教室分配引擎与两个调度驱动的入口。
//
// Allocate 是纯分配原语；AutoAllocatePending / ConfirmApproved
// 由 cron 调度周期驱动，内部逐请求隔离失败
type AllocationService interface {
	// Allocate 为单个请求挑选教室：偏好顺序 pref1 → pref2 → pref3，
	// 全部占用时回退遍历所有启用教室（房间号升序）。不修改请求本身
	Allocate(ctx context.Context, req *model.BookingRequest) (string, error)
	// AutoAllocatePending 扫描超时未处理的 PENDING 请求并自动分配，
	// 返回成功分配数
	AutoAllocatePending(ctx context.Context) (int, error)
	// ConfirmApproved 将临近开始的 APPROVED 请求落为 CONFIRMED，
	// 必要时回填活动地点，返回成功确认数
	ConfirmApproved(ctx context.Context) (int, error)
}

type allocationService struct {
	repo         *repository.Repository
	availability AvailabilityService
	notification NotificationService
	cfg          *config.Config
	logger       *zap.Logger
}

// NewAllocationService 创建 AllocationService 实例
func NewAllocationService(
	repo *repository.Repository,
	availability AvailabilityService,
	notification NotificationService,
	cfg *config.Config,
	logger *zap.Logger,
) AllocationService {
	return &allocationService{
		repo:         repo,
		availability: availability,
		notification: notification,
		cfg:          cfg,
		logger:       logger,
	}
}

func (s *allocationService) Allocate(ctx context.Context, req *model.BookingRequest) (string, error) {
	start, end, err := resolveRequestWindow(req)
	if err != nil {
		return "", ErrRequestNotAllocatable
	}

	// 第一轮：按声明顺序尝试偏好教室
	for _, roomID := range req.PreferredRoomIDs() {
		ok, err := s.availability.IsRoomAvailable(ctx, roomID, start, end)
		if err != nil {
			return "", err
		}
		if ok {
			return roomID, nil
		}
	}

	// 第二轮：全量回退，房间号升序保证结果确定
	rooms, err := s.repo.Room.ListActive(ctx)
	if err != nil {
		return "", err
	}
	preferred := make(map[string]struct{}, 3)
	for _, id := range req.PreferredRoomIDs() {
		preferred[id] = struct{}{}
	}
	for i := range rooms {
		roomID := rooms[i].RoomID
		if _, tried := preferred[roomID]; tried {
			continue
		}
		ok, err := s.availability.IsRoomAvailable(ctx, roomID, start, end)
		if err != nil {
			return "", err
		}
		if ok {
			return roomID, nil
		}
	}
	return "", ErrNoRoomAvailable
}

func (s *allocationService) AutoAllocatePending(ctx context.Context) (int, error) {
	cutoff := time.Now().Add(-s.cfg.Allocation.Timeout())
	pending, err := s.repo.BookingRequest.ListPendingOlderThan(ctx, cutoff)
	if err != nil {
		s.logger.Error("加载超时待处理请求失败", zap.Error(err))
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}
	s.logger.Info("自动分配开始", zap.Int("pending", len(pending)))

	allocated := 0
	for i := range pending {
		req := &pending[i]
		if err := s.allocateOne(ctx, req); err != nil {
			// 单请求失败不影响本轮其余请求
			s.logger.Warn("自动分配跳过请求",
				zap.String("request_id", req.RequestID),
				zap.Error(err))
			continue
		}
		allocated++
	}
	s.logger.Info("自动分配结束",
		zap.Int("allocated", allocated),
		zap.Int("skipped", len(pending)-allocated))
	return allocated, nil
}

func (s *allocationService) allocateOne(ctx context.Context, req *model.BookingRequest) error {
	roomID, err := s.Allocate(ctx, req)
	if err != nil {
		return err
	}

	now := time.Now()
	err = s.repo.BookingRequest.TransitionStatus(ctx,
		req.RequestID, model.BookingStatusPending, model.BookingStatusApproved,
		map[string]interface{}{
			"allocated_room_id": roomID,
			"approved_at":       now,
			"approved_by":       model.ApprovedByAuto,
		})
	if err != nil {
		// 状态已被并发修改（人工审批/取消），放弃本次分配
		return err
	}

	s.logger.Info("自动分配成功",
		zap.String("request_id", req.RequestID),
		zap.String("room_id", roomID))
	s.notification.NotifyAllChannels(ctx, req.RequestedBy,
		"预订请求已自动批准",
		"您的教室预订请求已由系统自动分配教室并批准，请留意后续确认通知。")
	return nil
}

func (s *allocationService) ConfirmApproved(ctx context.Context) (int, error) {
	cutoff := time.Now().Add(s.cfg.Confirmation.LeadTime())
	approved, err := s.repo.BookingRequest.ListApprovedToConfirm(ctx, cutoff)
	if err != nil {
		s.logger.Error("加载待确认请求失败", zap.Error(err))
		return 0, err
	}
	if len(approved) == 0 {
		return 0, nil
	}
	s.logger.Info("确认调度开始", zap.Int("approved", len(approved)))

	confirmed := 0
	for i := range approved {
		req := &approved[i]
		if err := s.confirmOne(ctx, req); err != nil {
			s.logger.Warn("确认调度跳过请求",
				zap.String("request_id", req.RequestID),
				zap.Error(err))
			continue
		}
		confirmed++
	}
	s.logger.Info("确认调度结束",
		zap.Int("confirmed", confirmed),
		zap.Int("skipped", len(approved)-confirmed))
	return confirmed, nil
}

var errConfirmPrereq = errors.New("缺少已分配教室或关联活动，暂不确认")

func (s *allocationService) confirmOne(ctx context.Context, req *model.BookingRequest) error {
	// 确认前置条件：已有分配教室且关联了活动。
	// 纯会议类请求停留在 APPROVED，由会议窗口自然到期
	if req.AllocatedRoomID == nil || req.Event == nil {
		return errConfirmPrereq
	}

	// 回填活动地点：仅在占位值（空或 TBD，大小写不敏感）时覆盖
	loc := strings.TrimSpace(req.Event.Location)
	if loc == "" || strings.EqualFold(loc, model.EventLocationTBD) {
		room := req.AllocatedRoom
		if room == nil {
			r, err := s.repo.Room.GetByID(ctx, *req.AllocatedRoomID)
			if err != nil {
				return err
			}
			room = r
		}
		if err := s.repo.Event.UpdateLocation(ctx, req.Event.EventID, room.DisplayName()); err != nil {
			return err
		}
	}

	now := time.Now()
	err := s.repo.BookingRequest.TransitionStatus(ctx,
		req.RequestID, model.BookingStatusApproved, model.BookingStatusConfirmed,
		map[string]interface{}{"confirmed_at": now})
	if err != nil {
		return err
	}

	s.logger.Info("预订确认成功",
		zap.String("request_id", req.RequestID),
		zap.String("event_id", req.Event.EventID))
	s.notification.NotifyAllChannels(ctx, req.RequestedBy,
		"预订已最终确认",
		"您的活动教室预订已确认，活动地点已更新，请按时使用。")
	return nil
}
