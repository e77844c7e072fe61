package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"campus-event/backend/config"
	"campus-event/backend/internal/dto"
	"campus-event/backend/internal/model"
	"campus-event/backend/internal/repository"
)

// ── 预订模块业务错误 ──

var (
	// ErrBookingNotFound 预订请求不存在
	ErrBookingNotFound = errors.New("预订请求不存在")
	// ErrBookingConflict 指定教室在请求时段内已被占用
	ErrBookingConflict = errors.New("教室在该时段已被占用")
	// ErrBookingNotPending 仅 PENDING 状态的请求可审批或取消
	ErrBookingNotPending = errors.New("请求已处理，当前状态不允许该操作")
	// ErrBookingSourceInvalid 活动与会议时间必须恰好提供其一
	ErrBookingSourceInvalid = errors.New("必须且只能提供活动ID或会议时间之一")
	// ErrBookingWindowInvalid 会议窗口非法（缺失或结束不晚于开始）
	ErrBookingWindowInvalid = errors.New("会议时间窗口无效")
	// ErrBookingNotOwner 只能操作本人发起的请求
	ErrBookingNotOwner = errors.New("无权操作他人的预订请求")
)

// BookingService 预订请求生命周期管理
type BookingService interface {
	CreateRequest(ctx context.Context, userID string, req *dto.CreateBookingRequest) (*model.BookingRequest, error)
	GetByID(ctx context.Context, id string) (*model.BookingRequest, error)
	ListMine(ctx context.Context, userID string) ([]model.BookingRequest, error)
	ListByStatus(ctx context.Context, status string) ([]model.BookingRequest, error)
	// ListStuckPending 超过自动分配超时仍未处理的 PENDING 请求（管理端巡检用）
	ListStuckPending(ctx context.Context) ([]model.BookingRequest, error)
	// Cancel 请求人撤回自己的 PENDING 请求
	Cancel(ctx context.Context, id, userID string) error
	// AdminApprove 管理员指定教室批准：先做同步冲突检查，冲突即拒绝变更
	AdminApprove(ctx context.Context, id, roomID, adminID string) error
	AdminReject(ctx context.Context, id, adminID string) error
	// DirectBook 教师直订：冲突检查通过后立即创建 APPROVED 请求
	DirectBook(ctx context.Context, userID string, req *dto.DirectBookingRequest) (*model.BookingRequest, error)
}

type bookingService struct {
	repo         *repository.Repository
	availability AvailabilityService
	notification NotificationService
	cfg          *config.Config
	logger       *zap.Logger
}

// NewBookingService 创建 BookingService 实例
func NewBookingService(
	repo *repository.Repository,
	availability AvailabilityService,
	notification NotificationService,
	cfg *config.Config,
	logger *zap.Logger,
) BookingService {
	return &bookingService{
		repo:         repo,
		availability: availability,
		notification: notification,
		cfg:          cfg,
		logger:       logger,
	}
}

func (s *bookingService) CreateRequest(ctx context.Context, userID string, req *dto.CreateBookingRequest) (*model.BookingRequest, error) {
	hasEvent := req.EventID != nil && *req.EventID != ""
	hasMeeting := req.MeetingStart != nil || req.MeetingEnd != nil
	if hasEvent == hasMeeting {
		return nil, ErrBookingSourceInvalid
	}

	booking := &model.BookingRequest{
		Pref1RoomID: req.Pref1RoomID,
		Pref2RoomID: req.Pref2RoomID,
		Pref3RoomID: req.Pref3RoomID,
		Status:      model.BookingStatusPending,
		RequestedBy: userID,
		RequestedAt: time.Now(),
	}

	if hasEvent {
		if _, err := s.repo.Event.GetByID(ctx, *req.EventID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrEventNotFound
			}
			return nil, err
		}
		booking.EventID = req.EventID
	} else {
		if req.MeetingStart == nil || req.MeetingEnd == nil || !req.MeetingEnd.After(*req.MeetingStart) {
			return nil, ErrBookingWindowInvalid
		}
		booking.MeetingStart = req.MeetingStart
		booking.MeetingEnd = req.MeetingEnd
		booking.MeetingPurpose = req.MeetingPurpose
	}

	// 偏好教室引用前置校验，防止无效ID进入分配流程
	for _, roomID := range booking.PreferredRoomIDs() {
		if _, err := s.repo.Room.GetByID(ctx, roomID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrRoomNotFound
			}
			return nil, err
		}
	}

	if err := s.repo.BookingRequest.Create(ctx, booking); err != nil {
		s.logger.Error("创建预订请求失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	s.logger.Info("预订请求已创建",
		zap.String("request_id", booking.RequestID),
		zap.String("user_id", userID))
	return booking, nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.BookingRequest, error) {
	booking, err := s.repo.BookingRequest.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) ListMine(ctx context.Context, userID string) ([]model.BookingRequest, error) {
	return s.repo.BookingRequest.ListByRequester(ctx, userID)
}

func (s *bookingService) ListByStatus(ctx context.Context, status string) ([]model.BookingRequest, error) {
	return s.repo.BookingRequest.ListByStatus(ctx, status)
}

func (s *bookingService) ListStuckPending(ctx context.Context) ([]model.BookingRequest, error) {
	cutoff := time.Now().Add(-s.cfg.Allocation.Timeout())
	return s.repo.BookingRequest.ListPendingOlderThan(ctx, cutoff)
}

func (s *bookingService) Cancel(ctx context.Context, id, userID string) error {
	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if booking.RequestedBy != userID {
		return ErrBookingNotOwner
	}
	if booking.Status != model.BookingStatusPending {
		return ErrBookingNotPending
	}

	err = s.repo.BookingRequest.TransitionStatus(ctx,
		id, model.BookingStatusPending, model.BookingStatusRejected, nil)
	if err != nil {
		return ErrBookingNotPending
	}
	s.logger.Info("预订请求已撤回", zap.String("request_id", id))
	return nil
}

func (s *bookingService) AdminApprove(ctx context.Context, id, roomID, adminID string) error {
	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if booking.Status != model.BookingStatusPending {
		return ErrBookingNotPending
	}
	if _, err := s.repo.Room.GetByID(ctx, roomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		return err
	}

	// 冲突检查先于任何状态变更
	start, end, err := resolveRequestWindow(booking)
	if err != nil {
		return ErrBookingWindowInvalid
	}
	available, err := s.availability.IsRoomAvailable(ctx, roomID, start, end)
	if err != nil {
		return err
	}
	if !available {
		return ErrBookingConflict
	}

	now := time.Now()
	err = s.repo.BookingRequest.TransitionStatus(ctx,
		id, model.BookingStatusPending, model.BookingStatusApproved,
		map[string]interface{}{
			"allocated_room_id": roomID,
			"approved_at":       now,
			"approved_by":       adminID,
		})
	if err != nil {
		return ErrBookingNotPending
	}

	s.logger.Info("预订请求已人工批准",
		zap.String("request_id", id),
		zap.String("room_id", roomID),
		zap.String("admin_id", adminID))
	s.notification.NotifyAllChannels(ctx, booking.RequestedBy,
		"预订请求已批准",
		"您的教室预订请求已由管理员批准，教室已分配。")
	return nil
}

func (s *bookingService) AdminReject(ctx context.Context, id, adminID string) error {
	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if booking.Status != model.BookingStatusPending {
		return ErrBookingNotPending
	}

	// 驳回不经过 APPROVED，审批字段保持空
	err = s.repo.BookingRequest.TransitionStatus(ctx,
		id, model.BookingStatusPending, model.BookingStatusRejected, nil)
	if err != nil {
		return ErrBookingNotPending
	}

	s.logger.Info("预订请求已驳回",
		zap.String("request_id", id),
		zap.String("admin_id", adminID))
	s.notification.NotifyAllChannels(ctx, booking.RequestedBy,
		"预订请求未通过",
		"很抱歉，您的教室预订请求未获批准，可调整时段后重新提交。")
	return nil
}

func (s *bookingService) DirectBook(ctx context.Context, userID string, req *dto.DirectBookingRequest) (*model.BookingRequest, error) {
	if !req.MeetingEnd.After(req.MeetingStart) {
		return nil, ErrBookingWindowInvalid
	}
	if _, err := s.repo.Room.GetByID(ctx, req.RoomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	available, err := s.availability.IsRoomAvailable(ctx, req.RoomID, req.MeetingStart, req.MeetingEnd)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, ErrBookingConflict
	}

	now := time.Now()
	roomID := req.RoomID
	booking := &model.BookingRequest{
		AllocatedRoomID: &roomID,
		Status:          model.BookingStatusApproved,
		RequestedBy:     userID,
		ApprovedBy:      &userID,
		RequestedAt:     now,
		ApprovedAt:      &now,
		MeetingStart:    &req.MeetingStart,
		MeetingEnd:      &req.MeetingEnd,
		MeetingPurpose:  req.MeetingPurpose,
	}
	if err := s.repo.BookingRequest.Create(ctx, booking); err != nil {
		s.logger.Error("教师直订失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	s.logger.Info("教师直订成功",
		zap.String("request_id", booking.RequestID),
		zap.String("room_id", req.RoomID))
	return booking, nil
}
