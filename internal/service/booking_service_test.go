package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"campus-event/backend/internal/dto"
	"campus-event/backend/internal/model"
)

func setupTestBookingService() (BookingService, *testRepos) {
	repos := newTestRepos()
	repoAgg := repos.toRepository()
	logger := zap.NewNop()
	availability := NewAvailabilityService(repoAgg, logger)
	notification := NewNotificationService(repoAgg, nil, logger)
	svc := NewBookingService(repoAgg, availability, notification, testAllocationConfig(), logger)
	return svc, repos
}

func timePtr(ts time.Time) *time.Time { return &ts }

// meetingCreateRequest 合法的独立会议创建请求
func meetingCreateRequest() *dto.CreateBookingRequest {
	return &dto.CreateBookingRequest{
		MeetingStart:   timePtr(time.Date(2026, 9, 7, 14, 0, 0, 0, time.Local)),
		MeetingEnd:     timePtr(time.Date(2026, 9, 7, 15, 0, 0, 0, time.Local)),
		MeetingPurpose: "教研会议",
	}
}

// ════════════════════════════════════════════════════════════
// CreateRequest 测试
// ════════════════════════════════════════════════════════════

func TestBookingService_CreateRequest_Meeting(t *testing.T) {
	svc, repos := setupTestBookingService()
	seedRooms(repos)

	req := meetingCreateRequest()
	req.Pref1RoomID = strPtr("room-101")

	booking, err := svc.CreateRequest(context.Background(), "user-1", req)
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	if booking.Status != model.BookingStatusPending {
		t.Errorf("新请求状态应为 PENDING，实际: %s", booking.Status)
	}
	if booking.RequestedBy != "user-1" {
		t.Errorf("请求人应为 user-1，实际: %s", booking.RequestedBy)
	}
	if booking.RequestID == "" {
		t.Error("请求ID不应为空")
	}
}

func TestBookingService_CreateRequest_Event(t *testing.T) {
	svc, repos := setupTestBookingService()
	repos.event.events["evt-1"] = &model.Event{EventID: "evt-1", Title: "迎新晚会"}

	booking, err := svc.CreateRequest(context.Background(), "user-1",
		&dto.CreateBookingRequest{EventID: strPtr("evt-1")})
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	if booking.EventID == nil || *booking.EventID != "evt-1" {
		t.Error("请求应关联活动 evt-1")
	}
}

func TestBookingService_CreateRequest_SourceValidation(t *testing.T) {
	svc, repos := setupTestBookingService()
	repos.event.events["evt-1"] = &model.Event{EventID: "evt-1"}

	// 活动与会议时间同时提供
	both := meetingCreateRequest()
	both.EventID = strPtr("evt-1")
	if _, err := svc.CreateRequest(context.Background(), "user-1", both); !errors.Is(err, ErrBookingSourceInvalid) {
		t.Errorf("二者兼有期望 ErrBookingSourceInvalid，实际: %v", err)
	}

	// 二者皆无
	if _, err := svc.CreateRequest(context.Background(), "user-1", &dto.CreateBookingRequest{}); !errors.Is(err, ErrBookingSourceInvalid) {
		t.Errorf("二者皆无期望 ErrBookingSourceInvalid，实际: %v", err)
	}
}

func TestBookingService_CreateRequest_EventNotFound(t *testing.T) {
	svc, _ := setupTestBookingService()

	_, err := svc.CreateRequest(context.Background(), "user-1",
		&dto.CreateBookingRequest{EventID: strPtr("nonexistent")})
	if !errors.Is(err, ErrEventNotFound) {
		t.Errorf("期望 ErrEventNotFound，实际: %v", err)
	}
}

func TestBookingService_CreateRequest_InvalidMeetingWindow(t *testing.T) {
	svc, _ := setupTestBookingService()

	// 缺少结束时间
	req := &dto.CreateBookingRequest{
		MeetingStart: timePtr(time.Date(2026, 9, 7, 14, 0, 0, 0, time.Local)),
	}
	if _, err := svc.CreateRequest(context.Background(), "user-1", req); !errors.Is(err, ErrBookingWindowInvalid) {
		t.Errorf("缺结束时间期望 ErrBookingWindowInvalid，实际: %v", err)
	}

	// 结束不晚于开始
	req = meetingCreateRequest()
	req.MeetingEnd = req.MeetingStart
	if _, err := svc.CreateRequest(context.Background(), "user-1", req); !errors.Is(err, ErrBookingWindowInvalid) {
		t.Errorf("零长度窗口期望 ErrBookingWindowInvalid，实际: %v", err)
	}
}

func TestBookingService_CreateRequest_PrefRoomNotFound(t *testing.T) {
	svc, _ := setupTestBookingService()

	req := meetingCreateRequest()
	req.Pref1RoomID = strPtr("nonexistent")
	if _, err := svc.CreateRequest(context.Background(), "user-1", req); !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("期望 ErrRoomNotFound，实际: %v", err)
	}
}

// ════════════════════════════════════════════════════════════
// Cancel 测试
// ════════════════════════════════════════════════════════════

func TestBookingService_Cancel(t *testing.T) {
	svc, repos := setupTestBookingService()
	repos.booking.requests["req-1"] = pendingMeetingRequest("req-1")

	if err := svc.Cancel(context.Background(), "req-1", "user-1"); err != nil {
		t.Fatalf("撤回失败: %v", err)
	}
	if got := repos.booking.requests["req-1"].Status; got != model.BookingStatusRejected {
		t.Errorf("撤回后状态应为 REJECTED，实际: %s", got)
	}
}

func TestBookingService_Cancel_NotOwner(t *testing.T) {
	svc, repos := setupTestBookingService()
	repos.booking.requests["req-1"] = pendingMeetingRequest("req-1")

	if err := svc.Cancel(context.Background(), "req-1", "user-2"); !errors.Is(err, ErrBookingNotOwner) {
		t.Errorf("期望 ErrBookingNotOwner，实际: %v", err)
	}
	if got := repos.booking.requests["req-1"].Status; got != model.BookingStatusPending {
		t.Errorf("他人撤回不应改变状态，实际: %s", got)
	}
}

func TestBookingService_Cancel_NotPending(t *testing.T) {
	svc, repos := setupTestBookingService()
	req := pendingMeetingRequest("req-1")
	req.Status = model.BookingStatusApproved
	repos.booking.requests["req-1"] = req

	if err := svc.Cancel(context.Background(), "req-1", "user-1"); !errors.Is(err, ErrBookingNotPending) {
		t.Errorf("期望 ErrBookingNotPending，实际: %v", err)
	}
}

// ════════════════════════════════════════════════════════════
// AdminApprove / AdminReject 测试
// ════════════════════════════════════════════════════════════

func TestBookingService_AdminApprove(t *testing.T) {
	svc, repos := setupTestBookingService()
	seedRooms(repos)
	repos.booking.requests["req-1"] = pendingMeetingRequest("req-1")

	if err := svc.AdminApprove(context.Background(), "req-1", "room-101", "admin-1"); err != nil {
		t.Fatalf("审批失败: %v", err)
	}

	got := repos.booking.requests["req-1"]
	if got.Status != model.BookingStatusApproved {
		t.Errorf("状态应为 APPROVED，实际: %s", got.Status)
	}
	if got.AllocatedRoomID == nil || *got.AllocatedRoomID != "room-101" {
		t.Error("应分配 room-101")
	}
	if got.ApprovedBy == nil || *got.ApprovedBy != "admin-1" {
		t.Error("审批人应为 admin-1")
	}
	if got.ApprovedAt == nil {
		t.Error("审批时间应被记录")
	}
	if len(repos.notification.notifications) != 1 {
		t.Errorf("应产生 1 条通知，实际: %d", len(repos.notification.notifications))
	}
}

func TestBookingService_AdminApprove_Conflict(t *testing.T) {
	svc, repos := setupTestBookingService()
	seedRooms(repos)
	repos.booking.requests["req-1"] = pendingMeetingRequest("req-1")

	// 同教室同时段已有批准预订
	seedApprovedBooking(repos, "req-occupied", "room-101",
		time.Date(2026, 9, 7, 14, 30, 0, 0, time.Local),
		time.Date(2026, 9, 7, 15, 30, 0, 0, time.Local))

	err := svc.AdminApprove(context.Background(), "req-1", "room-101", "admin-1")
	if !errors.Is(err, ErrBookingConflict) {
		t.Fatalf("期望 ErrBookingConflict，实际: %v", err)
	}
	// 冲突时不得发生任何状态变更
	if got := repos.booking.requests["req-1"].Status; got != model.BookingStatusPending {
		t.Errorf("冲突后状态不应改变，实际: %s", got)
	}
}

func TestBookingService_AdminApprove_RoomNotFound(t *testing.T) {
	svc, repos := setupTestBookingService()
	repos.booking.requests["req-1"] = pendingMeetingRequest("req-1")

	if err := svc.AdminApprove(context.Background(), "req-1", "nonexistent", "admin-1"); !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("期望 ErrRoomNotFound，实际: %v", err)
	}
}

func TestBookingService_AdminReject(t *testing.T) {
	svc, repos := setupTestBookingService()
	repos.booking.requests["req-1"] = pendingMeetingRequest("req-1")

	if err := svc.AdminReject(context.Background(), "req-1", "admin-1"); err != nil {
		t.Fatalf("驳回失败: %v", err)
	}
	got := repos.booking.requests["req-1"]
	if got.Status != model.BookingStatusRejected {
		t.Errorf("状态应为 REJECTED，实际: %s", got.Status)
	}
	// 从未到达 APPROVED 的请求不应带有审批痕迹
	if got.ApprovedAt != nil {
		t.Errorf("驳回后 ApprovedAt 应保持为空，实际: %v", got.ApprovedAt)
	}
	if got.ApprovedBy != nil {
		t.Errorf("驳回后 ApprovedBy 应保持为空，实际: %s", *got.ApprovedBy)
	}

	// 已处理的请求不能再次驳回
	if err := svc.AdminReject(context.Background(), "req-1", "admin-1"); !errors.Is(err, ErrBookingNotPending) {
		t.Errorf("重复驳回期望 ErrBookingNotPending，实际: %v", err)
	}
}

// ════════════════════════════════════════════════════════════
// DirectBook 测试
// ════════════════════════════════════════════════════════════

func TestBookingService_DirectBook(t *testing.T) {
	svc, repos := setupTestBookingService()
	seedRooms(repos)

	booking, err := svc.DirectBook(context.Background(), "faculty-1", &dto.DirectBookingRequest{
		RoomID:         "room-101",
		MeetingStart:   time.Date(2026, 9, 7, 14, 0, 0, 0, time.Local),
		MeetingEnd:     time.Date(2026, 9, 7, 15, 0, 0, 0, time.Local),
		MeetingPurpose: "课程答疑",
	})
	if err != nil {
		t.Fatalf("直订失败: %v", err)
	}
	if booking.Status != model.BookingStatusApproved {
		t.Errorf("直订应立即 APPROVED，实际: %s", booking.Status)
	}
	if booking.AllocatedRoomID == nil || *booking.AllocatedRoomID != "room-101" {
		t.Error("应分配 room-101")
	}
	if booking.ApprovedBy == nil || *booking.ApprovedBy != "faculty-1" {
		t.Error("直订的审批人应为发起人")
	}
	if booking.ApprovedAt == nil {
		t.Error("审批时间应被记录")
	}
}

func TestBookingService_DirectBook_Conflict(t *testing.T) {
	svc, repos := setupTestBookingService()
	seedRooms(repos)
	seedApprovedBooking(repos, "req-occupied", "room-101",
		time.Date(2026, 9, 7, 14, 0, 0, 0, time.Local),
		time.Date(2026, 9, 7, 15, 0, 0, 0, time.Local))

	_, err := svc.DirectBook(context.Background(), "faculty-1", &dto.DirectBookingRequest{
		RoomID:       "room-101",
		MeetingStart: time.Date(2026, 9, 7, 14, 30, 0, 0, time.Local),
		MeetingEnd:   time.Date(2026, 9, 7, 15, 30, 0, 0, time.Local),
	})
	if !errors.Is(err, ErrBookingConflict) {
		t.Errorf("期望 ErrBookingConflict，实际: %v", err)
	}
}

func TestBookingService_DirectBook_InvalidWindow(t *testing.T) {
	svc, repos := setupTestBookingService()
	seedRooms(repos)

	ts := time.Date(2026, 9, 7, 14, 0, 0, 0, time.Local)
	_, err := svc.DirectBook(context.Background(), "faculty-1", &dto.DirectBookingRequest{
		RoomID: "room-101", MeetingStart: ts, MeetingEnd: ts,
	})
	if !errors.Is(err, ErrBookingWindowInvalid) {
		t.Errorf("期望 ErrBookingWindowInvalid，实际: %v", err)
	}
}
