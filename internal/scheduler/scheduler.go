package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"campus-event/backend/config"
	"campus-event/backend/internal/service"
)

// 单次调度的处理上限，防止数据库异常时任务悬挂
const tickTimeout = 5 * time.Minute

// Scheduler 后台调度器：自动分配与确认两个周期任务的宿主。
// SkipIfStillRunning 保证同一任务不会并发执行
type Scheduler struct {
	cron   *cron.Cron
	svc    *service.Service
	cfg    *config.Config
	logger *zap.Logger
}

// New 创建调度器并注册任务
func New(cfg *config.Config, svc *service.Service, logger *zap.Logger) (*Scheduler, error) {
	c := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DiscardLogger),
	))
	s := &Scheduler{cron: c, svc: svc, cfg: cfg, logger: logger}

	// 自动分配默认关闭，显式启用后才注册
	if cfg.Allocation.Enabled {
		if _, err := c.AddFunc(cfg.Allocation.Cron, s.runAutoAllocate); err != nil {
			return nil, err
		}
		logger.Info("自动分配任务已注册",
			zap.String("cron", cfg.Allocation.Cron),
			zap.Duration("timeout", cfg.Allocation.Timeout()))
	} else {
		logger.Info("自动分配任务未启用")
	}

	// 确认任务始终运行
	if _, err := c.AddFunc(cfg.Confirmation.Cron, s.runConfirm); err != nil {
		return nil, err
	}
	logger.Info("确认任务已注册",
		zap.String("cron", cfg.Confirmation.Cron),
		zap.Duration("lead_time", cfg.Confirmation.LeadTime()))

	return s, nil
}

// Start 启动调度循环（非阻塞）
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop 停止触发新任务并等待正在运行的任务结束
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("调度器已停止")
}

func (s *Scheduler) runAutoAllocate() {
	ctx, cancel := context.WithTimeout(context.Background(), tickTimeout)
	defer cancel()

	if _, err := s.svc.Allocation.AutoAllocatePending(ctx); err != nil {
		s.logger.Error("自动分配任务执行失败", zap.Error(err))
	}
}

func (s *Scheduler) runConfirm() {
	ctx, cancel := context.WithTimeout(context.Background(), tickTimeout)
	defer cancel()

	if _, err := s.svc.Allocation.ConfirmApproved(ctx); err != nil {
		s.logger.Error("确认任务执行失败", zap.Error(err))
	}
}
