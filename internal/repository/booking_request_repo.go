package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"campus-event/backend/internal/model"
	pkgerrors "campus-event/backend/pkg/errors"
)

// BookingRequestRepository 预订请求数据访问接口
type BookingRequestRepository interface {
	Create(ctx context.Context, req *model.BookingRequest) error
	GetByID(ctx context.Context, id string) (*model.BookingRequest, error)
	ListByStatus(ctx context.Context, status string) ([]model.BookingRequest, error)
	// ListActive 返回状态为 APPROVED / CONFIRMED 的全部请求（含关联活动），
	// 可用性计算的唯一数据源
	ListActive(ctx context.Context) ([]model.BookingRequest, error)
	ListByRequester(ctx context.Context, userID string) ([]model.BookingRequest, error)
	// ListPendingOlderThan 返回 requested_at 早于 cutoff 的 PENDING 请求
	ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]model.BookingRequest, error)
	// ListApprovedToConfirm 返回窗口起点（活动或会议）不晚于 cutoff 的 APPROVED 请求
	ListApprovedToConfirm(ctx context.Context, cutoff time.Time) ([]model.BookingRequest, error)
	Update(ctx context.Context, req *model.BookingRequest) error
	// TransitionStatus 状态守卫更新：仅当记录仍处于 from 状态时应用 fields 并迁移到 to。
	// 未命中任何行时返回 pkg/errors.ErrStaleTransition
	TransitionStatus(ctx context.Context, id, from, to string, fields map[string]interface{}) error
}

type bookingRequestRepo struct {
	db *gorm.DB
}

// NewBookingRequestRepo 创建 BookingRequestRepository 实例
func NewBookingRequestRepo(db *gorm.DB) BookingRequestRepository {
	return &bookingRequestRepo{db: db}
}

func (r *bookingRequestRepo) Create(ctx context.Context, req *model.BookingRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *bookingRequestRepo) GetByID(ctx context.Context, id string) (*model.BookingRequest, error) {
	var req model.BookingRequest
	err := r.db.WithContext(ctx).
		Preload("Event").
		Preload("Pref1").
		Preload("Pref2").
		Preload("Pref3").
		Preload("AllocatedRoom").
		Where("request_id = ?", id).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *bookingRequestRepo) ListByStatus(ctx context.Context, status string) ([]model.BookingRequest, error) {
	var reqs []model.BookingRequest
	err := r.db.WithContext(ctx).
		Preload("Event").
		Preload("AllocatedRoom").
		Where("status = ?", status).
		Order("requested_at ASC").
		Find(&reqs).Error
	return reqs, err
}

func (r *bookingRequestRepo) ListActive(ctx context.Context) ([]model.BookingRequest, error) {
	var reqs []model.BookingRequest
	err := r.db.WithContext(ctx).
		Preload("Event").
		Where("status IN ?", []string{model.BookingStatusApproved, model.BookingStatusConfirmed}).
		Find(&reqs).Error
	return reqs, err
}

func (r *bookingRequestRepo) ListByRequester(ctx context.Context, userID string) ([]model.BookingRequest, error) {
	var reqs []model.BookingRequest
	err := r.db.WithContext(ctx).
		Preload("Event").
		Preload("AllocatedRoom").
		Where("requested_by = ?", userID).
		Order("requested_at DESC").
		Find(&reqs).Error
	return reqs, err
}

func (r *bookingRequestRepo) ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]model.BookingRequest, error) {
	var reqs []model.BookingRequest
	err := r.db.WithContext(ctx).
		Preload("Event").
		Where("status = ? AND requested_at <= ?", model.BookingStatusPending, cutoff).
		Order("requested_at ASC").
		Find(&reqs).Error
	return reqs, err
}

func (r *bookingRequestRepo) ListApprovedToConfirm(ctx context.Context, cutoff time.Time) ([]model.BookingRequest, error) {
	var reqs []model.BookingRequest
	err := r.db.WithContext(ctx).
		Preload("Event").
		Preload("AllocatedRoom").
		Joins("LEFT JOIN events ON events.event_id = booking_requests.event_id").
		Where("booking_requests.status = ?", model.BookingStatusApproved).
		Where("(events.start_time IS NOT NULL AND events.start_time <= ?) OR (booking_requests.meeting_start IS NOT NULL AND booking_requests.meeting_start <= ?)", cutoff, cutoff).
		Find(&reqs).Error
	return reqs, err
}

func (r *bookingRequestRepo) Update(ctx context.Context, req *model.BookingRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *bookingRequestRepo) TransitionStatus(ctx context.Context, id, from, to string, fields map[string]interface{}) error {
	if fields == nil {
		fields = make(map[string]interface{}, 1)
	}
	fields["status"] = to

	res := r.db.WithContext(ctx).
		Model(&model.BookingRequest{}).
		Where("request_id = ? AND status = ?", id, from).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.ErrStaleTransition
	}
	return nil
}
