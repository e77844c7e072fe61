package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"campus-event/backend/internal/model"
	"campus-event/backend/internal/repository"
	pkgerrors "campus-event/backend/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Username
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		result = append(result, *u)
	}
	return result, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

// ── Mock BuildingRepository ──

type mockBuildingRepo struct {
	buildings map[string]*model.Building
}

func newMockBuildingRepo() *mockBuildingRepo {
	return &mockBuildingRepo{buildings: make(map[string]*model.Building)}
}

func (m *mockBuildingRepo) Create(_ context.Context, b *model.Building) error {
	for _, existing := range m.buildings {
		if existing.Code == b.Code {
			return gorm.ErrDuplicatedKey
		}
	}
	if b.BuildingID == "" {
		b.BuildingID = "bld-" + b.Code
	}
	m.buildings[b.BuildingID] = b
	return nil
}

func (m *mockBuildingRepo) GetByID(_ context.Context, id string) (*model.Building, error) {
	if b, ok := m.buildings[id]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBuildingRepo) List(_ context.Context) ([]model.Building, error) {
	var result []model.Building
	for _, b := range m.buildings {
		result = append(result, *b)
	}
	return result, nil
}

func (m *mockBuildingRepo) Update(_ context.Context, b *model.Building) error {
	m.buildings[b.BuildingID] = b
	return nil
}

func (m *mockBuildingRepo) Delete(_ context.Context, id string) error {
	delete(m.buildings, id)
	return nil
}

// ── Mock FloorRepository ──

type mockFloorRepo struct {
	floors map[string]*model.Floor
}

func newMockFloorRepo() *mockFloorRepo {
	return &mockFloorRepo{floors: make(map[string]*model.Floor)}
}

func (m *mockFloorRepo) Create(_ context.Context, f *model.Floor) error {
	if f.FloorID == "" {
		f.FloorID = fmt.Sprintf("floor-%s-%d", f.BuildingID, f.Level)
	}
	m.floors[f.FloorID] = f
	return nil
}

func (m *mockFloorRepo) GetByID(_ context.Context, id string) (*model.Floor, error) {
	if f, ok := m.floors[id]; ok {
		return f, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockFloorRepo) ListByBuilding(_ context.Context, buildingID string) ([]model.Floor, error) {
	var result []model.Floor
	for _, f := range m.floors {
		if f.BuildingID == buildingID {
			result = append(result, *f)
		}
	}
	return result, nil
}

func (m *mockFloorRepo) Delete(_ context.Context, id string) error {
	delete(m.floors, id)
	return nil
}

// ── Mock RoomRepository ──

type mockRoomRepo struct {
	rooms map[string]*model.Room
}

func newMockRoomRepo() *mockRoomRepo {
	return &mockRoomRepo{rooms: make(map[string]*model.Room)}
}

func (m *mockRoomRepo) Create(_ context.Context, room *model.Room) error {
	if room.RoomID == "" {
		room.RoomID = "room-" + room.RoomNumber
	}
	m.rooms[room.RoomID] = room
	return nil
}

func (m *mockRoomRepo) GetByID(_ context.Context, id string) (*model.Room, error) {
	if r, ok := m.rooms[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoomRepo) ListActive(_ context.Context) ([]model.Room, error) {
	var result []model.Room
	for _, r := range m.rooms {
		if r.IsActive {
			result = append(result, *r)
		}
	}
	// 与真实实现保持一致的房间号升序
	sort.Slice(result, func(i, j int) bool {
		return result[i].RoomNumber < result[j].RoomNumber
	})
	return result, nil
}

func (m *mockRoomRepo) ListByFloor(_ context.Context, floorID string) ([]model.Room, error) {
	var result []model.Room
	for _, r := range m.rooms {
		if r.FloorID == floorID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockRoomRepo) Update(_ context.Context, room *model.Room) error {
	m.rooms[room.RoomID] = room
	return nil
}

func (m *mockRoomRepo) Delete(_ context.Context, id string) error {
	delete(m.rooms, id)
	return nil
}

// ── Mock TimetableRepository ──

type mockTimetableRepo struct {
	entries map[string]*model.FixedTimetableEntry
}

func newMockTimetableRepo() *mockTimetableRepo {
	return &mockTimetableRepo{entries: make(map[string]*model.FixedTimetableEntry)}
}

func (m *mockTimetableRepo) Create(_ context.Context, entry *model.FixedTimetableEntry) error {
	if entry.EntryID == "" {
		entry.EntryID = fmt.Sprintf("tt-%d", len(m.entries)+1)
	}
	m.entries[entry.EntryID] = entry
	return nil
}

func (m *mockTimetableRepo) GetByID(_ context.Context, id string) (*model.FixedTimetableEntry, error) {
	if e, ok := m.entries[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTimetableRepo) ListByRoomDay(_ context.Context, roomID string, dayOfWeek int) ([]model.FixedTimetableEntry, error) {
	var result []model.FixedTimetableEntry
	for _, e := range m.entries {
		if e.RoomID == roomID && e.DayOfWeek == dayOfWeek && e.IsActive {
			result = append(result, *e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartTime < result[j].StartTime
	})
	return result, nil
}

func (m *mockTimetableRepo) ListByRoom(_ context.Context, roomID string) ([]model.FixedTimetableEntry, error) {
	var result []model.FixedTimetableEntry
	for _, e := range m.entries {
		if e.RoomID == roomID && e.IsActive {
			result = append(result, *e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].DayOfWeek != result[j].DayOfWeek {
			return result[i].DayOfWeek < result[j].DayOfWeek
		}
		return result[i].StartTime < result[j].StartTime
	})
	return result, nil
}

func (m *mockTimetableRepo) Deactivate(_ context.Context, id string) error {
	if e, ok := m.entries[id]; ok {
		e.IsActive = false
		return nil
	}
	return gorm.ErrRecordNotFound
}

// ── Mock EventRepository ──

type mockEventRepo struct {
	events map[string]*model.Event
}

func newMockEventRepo() *mockEventRepo {
	return &mockEventRepo{events: make(map[string]*model.Event)}
}

func (m *mockEventRepo) Create(_ context.Context, event *model.Event) error {
	if event.EventID == "" {
		event.EventID = fmt.Sprintf("evt-%d", len(m.events)+1)
	}
	m.events[event.EventID] = event
	return nil
}

func (m *mockEventRepo) GetByID(_ context.Context, id string) (*model.Event, error) {
	if e, ok := m.events[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEventRepo) List(_ context.Context) ([]model.Event, error) {
	var result []model.Event
	for _, e := range m.events {
		result = append(result, *e)
	}
	return result, nil
}

func (m *mockEventRepo) Update(_ context.Context, event *model.Event) error {
	m.events[event.EventID] = event
	return nil
}

func (m *mockEventRepo) UpdateLocation(_ context.Context, id string, location string) error {
	if e, ok := m.events[id]; ok {
		e.Location = location
		return nil
	}
	return gorm.ErrRecordNotFound
}

// ── Mock BookingRequestRepository ──

type mockBookingRepo struct {
	requests map[string]*model.BookingRequest
}

func newMockBookingRepo() *mockBookingRepo {
	return &mockBookingRepo{requests: make(map[string]*model.BookingRequest)}
}

func (m *mockBookingRepo) Create(_ context.Context, req *model.BookingRequest) error {
	if req.RequestID == "" {
		req.RequestID = fmt.Sprintf("req-%d", len(m.requests)+1)
	}
	m.requests[req.RequestID] = req
	return nil
}

func (m *mockBookingRepo) GetByID(_ context.Context, id string) (*model.BookingRequest, error) {
	if r, ok := m.requests[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBookingRepo) ListByStatus(_ context.Context, status string) ([]model.BookingRequest, error) {
	var result []model.BookingRequest
	for _, r := range m.requests {
		if r.Status == status {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockBookingRepo) ListActive(_ context.Context) ([]model.BookingRequest, error) {
	var result []model.BookingRequest
	for _, r := range m.requests {
		if r.Status == model.BookingStatusApproved || r.Status == model.BookingStatusConfirmed {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockBookingRepo) ListByRequester(_ context.Context, userID string) ([]model.BookingRequest, error) {
	var result []model.BookingRequest
	for _, r := range m.requests {
		if r.RequestedBy == userID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockBookingRepo) ListPendingOlderThan(_ context.Context, cutoff time.Time) ([]model.BookingRequest, error) {
	var result []model.BookingRequest
	for _, r := range m.requests {
		if r.Status == model.BookingStatusPending && !r.RequestedAt.After(cutoff) {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].RequestedAt.Before(result[j].RequestedAt)
	})
	return result, nil
}

func (m *mockBookingRepo) ListApprovedToConfirm(_ context.Context, cutoff time.Time) ([]model.BookingRequest, error) {
	var result []model.BookingRequest
	for _, r := range m.requests {
		if r.Status != model.BookingStatusApproved {
			continue
		}
		if r.Event != nil && !r.Event.StartTime.After(cutoff) {
			result = append(result, *r)
			continue
		}
		if r.Event == nil && r.MeetingStart != nil && !r.MeetingStart.After(cutoff) {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockBookingRepo) Update(_ context.Context, req *model.BookingRequest) error {
	m.requests[req.RequestID] = req
	return nil
}

func (m *mockBookingRepo) TransitionStatus(_ context.Context, id, from, to string, fields map[string]interface{}) error {
	r, ok := m.requests[id]
	if !ok || r.Status != from {
		return pkgerrors.ErrStaleTransition
	}
	r.Status = to
	for k, v := range fields {
		switch k {
		case "allocated_room_id":
			if s, ok := v.(string); ok {
				r.AllocatedRoomID = &s
			}
		case "approved_by":
			if s, ok := v.(string); ok {
				r.ApprovedBy = &s
			}
		case "approved_at":
			if t, ok := v.(time.Time); ok {
				r.ApprovedAt = &t
			}
		case "confirmed_at":
			if t, ok := v.(time.Time); ok {
				r.ConfirmedAt = &t
			}
		}
	}
	return nil
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct {
	notifications []model.Notification
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{}
}

func (m *mockNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	if n.NotificationID == "" {
		n.NotificationID = fmt.Sprintf("ntf-%d", len(m.notifications)+1)
	}
	m.notifications = append(m.notifications, *n)
	return nil
}

func (m *mockNotificationRepo) ListByUser(_ context.Context, userID string) ([]model.Notification, error) {
	var result []model.Notification
	for _, n := range m.notifications {
		if n.UserID == userID {
			result = append(result, n)
		}
	}
	return result, nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, id string, userID string) error {
	for i := range m.notifications {
		if m.notifications[i].NotificationID == id && m.notifications[i].UserID == userID {
			m.notifications[i].IsRead = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── 测试聚合 ──

// testRepos 聚合所有 mock repo 便于 seed 数据
type testRepos struct {
	user         *mockUserRepo
	building     *mockBuildingRepo
	floor        *mockFloorRepo
	room         *mockRoomRepo
	timetable    *mockTimetableRepo
	event        *mockEventRepo
	booking      *mockBookingRepo
	notification *mockNotificationRepo
}

func newTestRepos() *testRepos {
	return &testRepos{
		user:         newMockUserRepo(),
		building:     newMockBuildingRepo(),
		floor:        newMockFloorRepo(),
		room:         newMockRoomRepo(),
		timetable:    newMockTimetableRepo(),
		event:        newMockEventRepo(),
		booking:      newMockBookingRepo(),
		notification: newMockNotificationRepo(),
	}
}

func (r *testRepos) toRepository() *repository.Repository {
	return &repository.Repository{
		User:           r.user,
		Building:       r.building,
		Floor:          r.floor,
		Room:           r.room,
		Timetable:      r.timetable,
		Event:          r.event,
		BookingRequest: r.booking,
		Notification:   r.notification,
	}
}
