package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campus-event/backend/config"
	"campus-event/backend/internal/api/handler"
	"campus-event/backend/internal/api/middleware"
	"campus-event/backend/internal/model"
	"campus-event/backend/pkg/jwt"
	"campus-event/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 教学楼/楼层模块
			buildings := authorized.Group("/buildings")
			{
				buildings.GET("", h.Room.ListBuildings)
				buildings.GET("/:id", h.Room.GetBuilding)
				buildings.GET("/:id/floors", h.Room.ListFloors)
				buildings.POST("", middleware.RoleAuth(model.RoleAdmin), h.Room.CreateBuilding)
				buildings.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Room.DeleteBuilding)
			}
			authorized.POST("/floors", middleware.RoleAuth(model.RoleAdmin), h.Room.CreateFloor)

			// 教室模块（含日程/可用性查询）
			rooms := authorized.Group("/rooms")
			{
				rooms.GET("", h.Room.ListRooms)
				rooms.GET("/:id", h.Room.GetRoom)
				rooms.POST("", middleware.RoleAuth(model.RoleAdmin), h.Room.CreateRoom)
				rooms.PATCH("/:id", middleware.RoleAuth(model.RoleAdmin), h.Room.UpdateRoom)
				rooms.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Room.DeleteRoom)

				rooms.GET("/:id/timetable", h.Timetable.DaySchedule)
				rooms.GET("/:id/timetable/week", h.Timetable.WeekSchedule)
				rooms.GET("/:id/timetable/week.ics", h.Timetable.WeekScheduleICS)

				rooms.GET("/:id/slots", h.Schedule.AvailableSlots)
				rooms.GET("/:id/schedule", h.Schedule.DaySchedule)
				rooms.GET("/:id/conflict", h.Schedule.CheckConflict)
				rooms.POST("/availability", h.Schedule.BatchAvailability)
			}

			// 固定课表模块（管理端维护）
			timetable := authorized.Group("/timetable")
			{
				timetable.POST("", middleware.RoleAuth(model.RoleAdmin), h.Timetable.CreateEntry)
				timetable.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Timetable.DeactivateEntry)
			}

			// 活动模块
			events := authorized.Group("/events")
			{
				events.GET("", h.Event.List)
				events.GET("/:id", h.Event.Get)
				events.POST("", middleware.RoleAuth(model.RoleAdmin, model.RoleFaculty), h.Event.Create)
			}

			// 预订模块
			bookings := authorized.Group("/bookings")
			{
				bookings.POST("", h.Booking.Create)
				bookings.GET("/mine", h.Booking.ListMine)
				bookings.GET("/:id", h.Booking.Get)
				bookings.POST("/:id/cancel", h.Booking.Cancel)
				bookings.POST("/direct", middleware.RoleAuth(model.RoleAdmin, model.RoleFaculty), h.Booking.DirectBook)
			}

			// 通知模块
			notifications := authorized.Group("/notifications")
			{
				notifications.GET("", h.Notification.ListMine)
				notifications.POST("/:id/read", h.Notification.MarkRead)
			}

			// 管理端模块
			admin := authorized.Group("/admin")
			admin.Use(middleware.RoleAuth(model.RoleAdmin))
			{
				admin.GET("/bookings", h.Booking.ListByStatus)
				admin.GET("/bookings/stuck", h.Booking.ListStuck)
				admin.POST("/bookings/:id/approve", h.Booking.Approve)
				admin.POST("/bookings/:id/reject", h.Booking.Reject)

				admin.GET("/export/bookings", h.Export.ExportBookings)
				admin.GET("/export/utilisation", h.Export.ExportRoomUtilisation)
			}
		}
	}

	return r
}
