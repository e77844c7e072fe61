package repository

import (
	"context"

	"gorm.io/gorm"

	"campus-event/backend/internal/model"
)

// NotificationRepository 站内通知数据访问接口
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	ListByUser(ctx context.Context, userID string) ([]model.Notification, error)
	MarkRead(ctx context.Context, id string, userID string) error
}

type notificationRepo struct {
	db *gorm.DB
}

// NewNotificationRepo 创建 NotificationRepository 实例
func NewNotificationRepo(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepo) ListByUser(ctx context.Context, userID string) ([]model.Notification, error) {
	var list []model.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *notificationRepo) MarkRead(ctx context.Context, id string, userID string) error {
	return r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("notification_id = ? AND user_id = ?", id, userID).
		Update("is_read", true).Error
}
