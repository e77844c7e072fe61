package service

import (
	"context"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"campus-event/backend/internal/model"
)

func setupTestExportService() (ExportService, *testRepos) {
	repos := newTestRepos()
	svc := NewExportService(repos.toRepository(), zap.NewNop())
	return svc, repos
}

// ── ExportBookings 测试 ──

func TestExportService_ExportBookings(t *testing.T) {
	svc, repos := setupTestExportService()
	seedRooms(repos)
	repos.booking.requests["req-1"] = pendingMeetingRequest("req-1")
	seedApprovedBooking(repos, "req-2", "room-101",
		time.Date(2026, 9, 7, 9, 0, 0, 0, time.Local),
		time.Date(2026, 9, 7, 11, 0, 0, 0, time.Local))

	buf, err := svc.ExportBookings(context.Background())
	if err != nil {
		t.Fatalf("导出失败: %v", err)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("导出内容不是有效的 xlsx: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("预订明细")
	if err != nil {
		t.Fatalf("读取工作表失败: %v", err)
	}
	// 表头 + 两条记录
	if len(rows) != 3 {
		t.Fatalf("期望 3 行，实际: %d", len(rows))
	}
	if rows[0][0] != "请求ID" {
		t.Errorf("首列表头应为 请求ID，实际: %s", rows[0][0])
	}
}

func TestExportService_ExportBookings_Empty(t *testing.T) {
	svc, _ := setupTestExportService()

	buf, err := svc.ExportBookings(context.Background())
	if err != nil {
		t.Fatalf("空数据导出失败: %v", err)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("导出内容不是有效的 xlsx: %v", err)
	}
	defer f.Close()

	rows, _ := f.GetRows("预订明细")
	if len(rows) != 1 {
		t.Errorf("空数据应仅含表头行，实际: %d", len(rows))
	}
}

// ── ExportRoomUtilisation 测试 ──

func TestExportService_ExportRoomUtilisation(t *testing.T) {
	svc, repos := setupTestExportService()
	seedRooms(repos)

	// room-101 两条生效预订，room-102 一条，room-201 零条
	seedApprovedBooking(repos, "req-1", "room-101",
		time.Date(2026, 9, 7, 9, 0, 0, 0, time.Local),
		time.Date(2026, 9, 7, 10, 0, 0, 0, time.Local))
	seedApprovedBooking(repos, "req-2", "room-101",
		time.Date(2026, 9, 8, 9, 0, 0, 0, time.Local),
		time.Date(2026, 9, 8, 10, 0, 0, 0, time.Local))
	seedApprovedBooking(repos, "req-3", "room-102",
		time.Date(2026, 9, 7, 9, 0, 0, 0, time.Local),
		time.Date(2026, 9, 7, 10, 0, 0, 0, time.Local))

	// 被驳回的预订不计入统计
	rejected := pendingMeetingRequest("req-4", "room-201")
	rejected.Status = model.BookingStatusRejected
	rid := "room-201"
	rejected.AllocatedRoomID = &rid
	repos.booking.requests["req-4"] = rejected

	buf, err := svc.ExportRoomUtilisation(context.Background())
	if err != nil {
		t.Fatalf("导出失败: %v", err)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("导出内容不是有效的 xlsx: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("教室使用统计")
	if err != nil {
		t.Fatalf("读取工作表失败: %v", err)
	}
	// 表头 + 三间教室，房间号升序
	if len(rows) != 4 {
		t.Fatalf("期望 4 行，实际: %d", len(rows))
	}

	counts := map[string]string{}
	for _, row := range rows[1:] {
		counts[row[1]] = row[4]
	}
	if counts["101"] != "2" {
		t.Errorf("101 的生效预订数应为 2，实际: %s", counts["101"])
	}
	if counts["102"] != "1" {
		t.Errorf("102 的生效预订数应为 1，实际: %s", counts["102"])
	}
	if counts["201"] != "0" {
		t.Errorf("201 的生效预订数应为 0，实际: %s", counts["201"])
	}
}
