package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"campus-event/backend/internal/model"
)

func setupTestAvailabilityService() (AvailabilityService, *testRepos) {
	repos := newTestRepos()
	svc := NewAvailabilityService(repos.toRepository(), zap.NewNop())
	return svc, repos
}

func seedApprovedBooking(repos *testRepos, id, roomID string, start, end time.Time) {
	rid := roomID
	s, e := start, end
	repos.booking.requests[id] = &model.BookingRequest{
		RequestID: id, Status: model.BookingStatusApproved,
		AllocatedRoomID: &rid,
		MeetingStart:    &s, MeetingEnd: &e,
	}
}

func TestAvailabilityService_IsRoomAvailable(t *testing.T) {
	svc, repos := setupTestAvailabilityService()

	busyStart := time.Date(2026, 9, 7, 9, 0, 0, 0, time.Local)
	busyEnd := time.Date(2026, 9, 7, 11, 0, 0, 0, time.Local)
	seedApprovedBooking(repos, "req-1", "room-101", busyStart, busyEnd)

	// 重叠窗口不可用
	ok, err := svc.IsRoomAvailable(context.Background(), "room-101",
		time.Date(2026, 9, 7, 10, 0, 0, 0, time.Local),
		time.Date(2026, 9, 7, 12, 0, 0, 0, time.Local))
	if err != nil {
		t.Fatalf("可用性查询失败: %v", err)
	}
	if ok {
		t.Error("与生效预订重叠的窗口应不可用")
	}

	// 首尾相接可用
	ok, err = svc.IsRoomAvailable(context.Background(), "room-101",
		busyEnd, busyEnd.Add(time.Hour))
	if err != nil {
		t.Fatalf("可用性查询失败: %v", err)
	}
	if !ok {
		t.Error("紧接占用窗口结束的时段应可用")
	}

	// 其他教室不受影响
	ok, err = svc.IsRoomAvailable(context.Background(), "room-102", busyStart, busyEnd)
	if err != nil {
		t.Fatalf("可用性查询失败: %v", err)
	}
	if !ok {
		t.Error("未被占用的教室应可用")
	}
}

func TestAvailabilityService_RejectedAndPendingIgnored(t *testing.T) {
	svc, repos := setupTestAvailabilityService()

	start := time.Date(2026, 9, 7, 9, 0, 0, 0, time.Local)
	end := time.Date(2026, 9, 7, 11, 0, 0, 0, time.Local)
	seedApprovedBooking(repos, "req-1", "room-101", start, end)
	repos.booking.requests["req-1"].Status = model.BookingStatusRejected

	seedApprovedBooking(repos, "req-2", "room-101", start, end)
	repos.booking.requests["req-2"].Status = model.BookingStatusPending

	ok, err := svc.IsRoomAvailable(context.Background(), "room-101", start, end)
	if err != nil {
		t.Fatalf("可用性查询失败: %v", err)
	}
	if !ok {
		t.Error("REJECTED / PENDING 预订不应占用教室")
	}
}

func TestAvailabilityService_UnresolvableWindowFailOpen(t *testing.T) {
	svc, repos := setupTestAvailabilityService()

	// 已分配教室但既无活动也无会议时间：窗口无法解析，不参与冲突判定
	roomID := "room-101"
	repos.booking.requests["req-bad"] = &model.BookingRequest{
		RequestID: "req-bad", Status: model.BookingStatusApproved,
		AllocatedRoomID: &roomID,
	}

	ok, err := svc.IsRoomAvailable(context.Background(), "room-101",
		time.Date(2026, 9, 7, 9, 0, 0, 0, time.Local),
		time.Date(2026, 9, 7, 10, 0, 0, 0, time.Local))
	if err != nil {
		t.Fatalf("可用性查询失败: %v", err)
	}
	if !ok {
		t.Error("窗口无法解析的预订应跳过冲突判定（放行）")
	}
}

func TestAvailabilityService_BatchAvailability(t *testing.T) {
	svc, repos := setupTestAvailabilityService()

	start := time.Date(2026, 9, 7, 9, 0, 0, 0, time.Local)
	end := time.Date(2026, 9, 7, 11, 0, 0, 0, time.Local)
	seedApprovedBooking(repos, "req-1", "room-101", start, end)

	result, err := svc.BatchAvailability(context.Background(),
		[]string{"room-101", "room-102", "room-103"}, start, end)
	if err != nil {
		t.Fatalf("批量查询失败: %v", err)
	}
	if len(result) != 3 {
		t.Fatalf("期望 3 个结果，实际 %d", len(result))
	}
	if result["room-101"] {
		t.Error("room-101 应不可用")
	}
	if !result["room-102"] || !result["room-103"] {
		t.Error("room-102 / room-103 应可用")
	}
}
