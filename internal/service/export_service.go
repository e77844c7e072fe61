package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"campus-event/backend/internal/model"
	"campus-event/backend/internal/repository"
)

// ExportService 管理端报表导出
type ExportService interface {
	// ExportBookings 导出全部预订请求明细（xlsx）
	ExportBookings(ctx context.Context) (*bytes.Buffer, error)
	// ExportRoomUtilisation 导出各教室的生效预订数统计（xlsx）
	ExportRoomUtilisation(ctx context.Context) (*bytes.Buffer, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

var bookingExportHeaders = []string{
	"请求ID", "状态", "活动标题", "会议用途", "分配教室", "申请人", "审批人", "申请时间", "批准时间", "确认时间",
}

func (s *exportService) ExportBookings(ctx context.Context) (*bytes.Buffer, error) {
	statuses := []string{
		model.BookingStatusPending,
		model.BookingStatusApproved,
		model.BookingStatusConfirmed,
		model.BookingStatusRejected,
	}
	var all []model.BookingRequest
	for _, status := range statuses {
		list, err := s.repo.BookingRequest.ListByStatus(ctx, status)
		if err != nil {
			s.logger.Error("导出预订明细失败", zap.String("status", status), zap.Error(err))
			return nil, err
		}
		all = append(all, list...)
	}

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "预订明细"
	f.SetSheetName("Sheet1", sheet)

	for col, h := range bookingExportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	const timeLayout = "2006-01-02 15:04"
	for row, req := range all {
		title := ""
		if req.Event != nil {
			title = req.Event.Title
		}
		room := ""
		if req.AllocatedRoom != nil {
			room = req.AllocatedRoom.DisplayName()
		}
		approvedBy := ""
		if req.ApprovedBy != nil {
			approvedBy = *req.ApprovedBy
		}
		approvedAt := ""
		if req.ApprovedAt != nil {
			approvedAt = req.ApprovedAt.Format(timeLayout)
		}
		confirmedAt := ""
		if req.ConfirmedAt != nil {
			confirmedAt = req.ConfirmedAt.Format(timeLayout)
		}

		values := []interface{}{
			req.RequestID, req.Status, title, req.MeetingPurpose, room,
			req.RequestedBy, approvedBy,
			req.RequestedAt.Format(timeLayout), approvedAt, confirmedAt,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("生成预订明细表失败", zap.Error(err))
		return nil, fmt.Errorf("生成导出文件失败: %w", err)
	}
	s.logger.Info("预订明细导出完成", zap.Int("rows", len(all)))
	return buf, nil
}

func (s *exportService) ExportRoomUtilisation(ctx context.Context) (*bytes.Buffer, error) {
	rooms, err := s.repo.Room.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.repo.BookingRequest.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	countByRoom := make(map[string]int, len(rooms))
	for i := range active {
		if active[i].AllocatedRoomID != nil {
			countByRoom[*active[i].AllocatedRoomID]++
		}
	}

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "教室使用统计"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"教室", "房间号", "类型", "容量", "生效预订数"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for row, room := range rooms {
		values := []interface{}{
			room.DisplayName(), room.RoomNumber, room.Type, room.Capacity,
			countByRoom[room.RoomID],
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("生成教室使用统计表失败", zap.Error(err))
		return nil, fmt.Errorf("生成导出文件失败: %w", err)
	}
	return buf, nil
}
