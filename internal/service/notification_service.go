package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"campus-event/backend/internal/model"
	"campus-event/backend/internal/repository"
	"campus-event/backend/pkg/queue"
)

// ErrNotificationNotFound 通知不存在或不属于当前用户
var ErrNotificationNotFound = errors.New("通知不存在")

// NotificationService 通知服务：站内信落库 + 队列投递双通道。
// 任一通道失败只记录日志，绝不向调用方返回错误——通知不阻塞业务
type NotificationService interface {
	NotifyAllChannels(ctx context.Context, userID, subject, message string)
	ListMine(ctx context.Context, userID string) ([]model.Notification, error)
	MarkRead(ctx context.Context, notificationID, userID string) error
}

type notificationService struct {
	repo      *repository.Repository
	publisher *queue.Publisher // 可为 nil：仅站内信
	logger    *zap.Logger
}

// NewNotificationService 创建 NotificationService 实例
func NewNotificationService(repo *repository.Repository, publisher *queue.Publisher, logger *zap.Logger) NotificationService {
	return &notificationService{repo: repo, publisher: publisher, logger: logger}
}

func (s *notificationService) NotifyAllChannels(ctx context.Context, userID, subject, message string) {
	// 通道一：站内信
	n := &model.Notification{
		UserID:  userID,
		Title:   subject,
		Content: message,
	}
	if err := s.repo.Notification.Create(ctx, n); err != nil {
		s.logger.Error("站内通知写入失败",
			zap.String("user_id", userID),
			zap.Error(err))
	}

	// 通道二：投递队列（邮件/短信由下游消费进程处理）
	if s.publisher == nil {
		return
	}
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		s.logger.Warn("查询通知收件人失败，跳过队列投递",
			zap.String("user_id", userID),
			zap.Error(err))
		return
	}
	job := queue.NotificationJob{
		UserID:    userID,
		Email:     user.Email,
		Subject:   subject,
		Message:   message,
		CreatedAt: time.Now(),
	}
	if err := s.publisher.Publish(ctx, job); err != nil {
		s.logger.Error("通知任务入队失败",
			zap.String("user_id", userID),
			zap.Error(err))
	}
}

func (s *notificationService) ListMine(ctx context.Context, userID string) ([]model.Notification, error) {
	return s.repo.Notification.ListByUser(ctx, userID)
}

func (s *notificationService) MarkRead(ctx context.Context, notificationID, userID string) error {
	if err := s.repo.Notification.MarkRead(ctx, notificationID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	return nil
}
