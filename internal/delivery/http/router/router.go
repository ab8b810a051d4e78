// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"gymgate/internal/delivery/http/middleware"
	"gymgate/internal/delivery/http/router/handler"
	"gymgate/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AttendanceHandler   *handler.AttendanceHandler
	MemberHandler       *handler.MemberHandler
	NotificationHandler *handler.NotificationHandler
	AuthMiddleware      *middleware.AuthMiddleware
	RateLimitMiddleware *middleware.RateLimitMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	attendanceHandler   *handler.AttendanceHandler
	memberHandler       *handler.MemberHandler
	notificationHandler *handler.NotificationHandler
	authMiddleware      *middleware.AuthMiddleware
	rateLimitMiddleware *middleware.RateLimitMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		attendanceHandler:   params.AttendanceHandler,
		memberHandler:       params.MemberHandler,
		notificationHandler: params.NotificationHandler,
		authMiddleware:      params.AuthMiddleware,
		rateLimitMiddleware: params.RateLimitMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Operational endpoints
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")

	// Attendance routes: the check-in endpoint is hit by door devices and
	// is throttled rather than authenticated.
	attendanceGroup := api.Group("/attendance")
	{
		attendanceGroup.POST("/check-in", r.attendanceHandler.CheckIn, r.rateLimitMiddleware.Limit)

		// Dashboards and back office require an authenticated admin.
		attendanceGroup.GET("", r.attendanceHandler.GetAttendance, r.authMiddleware.Authenticate)
		attendanceGroup.GET("/live-count", r.attendanceHandler.GetLiveCount, r.authMiddleware.Authenticate)
		attendanceGroup.GET("/recent", r.attendanceHandler.GetRecentCheckIns, r.authMiddleware.Authenticate)
	}

	// Member management requires an authenticated admin.
	memberGroup := api.Group("/members")
	memberGroup.Use(r.authMiddleware.Authenticate)
	memberGroup.Use(r.authMiddleware.RequireRole(entity.RoleBranchAdmin.String()))
	{
		memberGroup.GET("", r.memberHandler.ListMembers)
		memberGroup.POST("", r.memberHandler.CreateMember)
		memberGroup.GET("/:id", r.memberHandler.GetMember)
		memberGroup.PATCH("/:id", r.memberHandler.UpdateMember)
		memberGroup.DELETE("/:id", r.memberHandler.DeleteMember)
		memberGroup.GET("/:id/badge", r.memberHandler.GetBadge)
	}

	// Notification inbox for the authenticated user.
	notificationGroup := api.Group("/notifications")
	notificationGroup.Use(r.authMiddleware.Authenticate)
	{
		notificationGroup.GET("", r.notificationHandler.ListNotifications)
		notificationGroup.POST("/:id/read", r.notificationHandler.MarkRead)
	}
}
