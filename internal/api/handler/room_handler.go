package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"campus-event/backend/internal/dto"
	"campus-event/backend/internal/model"
	"campus-event/backend/internal/service"
	"campus-event/backend/pkg/response"
)

// RoomHandler 教学楼/楼层/教室模块 HTTP 处理器
type RoomHandler struct {
	roomSvc service.RoomService
}

// NewRoomHandler 创建 RoomHandler
func NewRoomHandler(roomSvc service.RoomService) *RoomHandler {
	return &RoomHandler{roomSvc: roomSvc}
}

// ── 教学楼 ──

// CreateBuilding 创建教学楼
// POST /api/v1/buildings
func (h *RoomHandler) CreateBuilding(c *gin.Context) {
	var req dto.CreateBuildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	b, err := h.roomSvc.CreateBuilding(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrBuildingCodeExists) {
			response.Conflict(c, 12001, "教学楼编码已存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.Created(c, toBuildingResponse(b))
}

// GetBuilding 查询教学楼（含楼层与教室）
// GET /api/v1/buildings/:id
func (h *RoomHandler) GetBuilding(c *gin.Context) {
	b, err := h.roomSvc.GetBuilding(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrBuildingNotFound) {
			response.NotFound(c, 12002, "教学楼不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, toBuildingResponse(b))
}

// ListBuildings 教学楼列表
// GET /api/v1/buildings
func (h *RoomHandler) ListBuildings(c *gin.Context) {
	buildings, err := h.roomSvc.ListBuildings(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	resp := make([]dto.BuildingResponse, 0, len(buildings))
	for i := range buildings {
		resp = append(resp, toBuildingResponse(&buildings[i]))
	}
	response.OK(c, resp)
}

// DeleteBuilding 删除教学楼（级联删除楼层与教室）
// DELETE /api/v1/buildings/:id
func (h *RoomHandler) DeleteBuilding(c *gin.Context) {
	if err := h.roomSvc.DeleteBuilding(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrBuildingNotFound) {
			response.NotFound(c, 12002, "教学楼不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// ── 楼层 ──

// CreateFloor 创建楼层
// POST /api/v1/floors
func (h *RoomHandler) CreateFloor(c *gin.Context) {
	var req dto.CreateFloorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	f, err := h.roomSvc.CreateFloor(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrBuildingNotFound) {
			response.NotFound(c, 12002, "教学楼不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.Created(c, toFloorResponse(f))
}

// ListFloors 教学楼下的楼层列表
// GET /api/v1/buildings/:id/floors
func (h *RoomHandler) ListFloors(c *gin.Context) {
	floors, err := h.roomSvc.ListFloors(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrBuildingNotFound) {
			response.NotFound(c, 12002, "教学楼不存在")
			return
		}
		response.InternalError(c)
		return
	}

	resp := make([]dto.FloorResponse, 0, len(floors))
	for i := range floors {
		resp = append(resp, toFloorResponse(&floors[i]))
	}
	response.OK(c, resp)
}

// ── 教室 ──

// CreateRoom 创建教室
// POST /api/v1/rooms
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	room, err := h.roomSvc.CreateRoom(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrFloorNotFound) {
			response.NotFound(c, 12003, "楼层不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.Created(c, toRoomResponse(room))
}

// GetRoom 查询教室
// GET /api/v1/rooms/:id
func (h *RoomHandler) GetRoom(c *gin.Context) {
	room, err := h.roomSvc.GetRoom(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrRoomNotFound) {
			response.NotFound(c, 12004, "教室不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, toRoomResponse(room))
}

// ListRooms 启用教室列表
// GET /api/v1/rooms
func (h *RoomHandler) ListRooms(c *gin.Context) {
	rooms, err := h.roomSvc.ListActiveRooms(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	resp := make([]dto.RoomResponse, 0, len(rooms))
	for i := range rooms {
		resp = append(resp, toRoomResponse(&rooms[i]))
	}
	response.OK(c, resp)
}

// UpdateRoom 更新教室属性
// PATCH /api/v1/rooms/:id
func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	var req dto.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	room, err := h.roomSvc.UpdateRoom(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, service.ErrRoomNotFound) {
			response.NotFound(c, 12004, "教室不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, toRoomResponse(room))
}

// DeleteRoom 删除教室
// DELETE /api/v1/rooms/:id
func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	if err := h.roomSvc.DeleteRoom(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrRoomNotFound) {
			response.NotFound(c, 12004, "教室不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// ── 响应转换 ──

func toBuildingResponse(b *model.Building) dto.BuildingResponse {
	resp := dto.BuildingResponse{
		ID:       b.BuildingID,
		Name:     b.Name,
		Code:     b.Code,
		IsActive: b.IsActive,
	}
	for i := range b.Floors {
		resp.Floors = append(resp.Floors, toFloorResponse(&b.Floors[i]))
	}
	return resp
}

func toFloorResponse(f *model.Floor) dto.FloorResponse {
	resp := dto.FloorResponse{
		ID:         f.FloorID,
		BuildingID: f.BuildingID,
		Level:      f.Level,
		Name:       f.Name,
	}
	for i := range f.Rooms {
		resp.Rooms = append(resp.Rooms, toRoomResponse(&f.Rooms[i]))
	}
	return resp
}

func toRoomResponse(r *model.Room) dto.RoomResponse {
	return dto.RoomResponse{
		ID:         r.RoomID,
		FloorID:    r.FloorID,
		RoomNumber: r.RoomNumber,
		Name:       r.Name,
		Type:       r.Type,
		Capacity:   r.Capacity,
		Amenities:  r.Amenities,
		IsActive:   r.IsActive,
	}
}
