// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"vigil/internal/delivery/api/middleware"
	"vigil/internal/delivery/api/router/handler"
	"vigil/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler         *handler.UserHandler
	NotificationHandler *handler.NotificationHandler
	RealtimeHandler     *handler.RealtimeHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler         *handler.UserHandler
	notificationHandler *handler.NotificationHandler
	realtimeHandler     *handler.RealtimeHandler
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:         params.UserHandler,
		notificationHandler: params.NotificationHandler,
		realtimeHandler:     params.RealtimeHandler,
		authMiddleware:      params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)
	e.GET("/ws", r.realtimeHandler.Connect)

	// signedIn admits any active, unblocked user with a valid session.
	signedIn := []echo.MiddlewareFunc{r.authMiddleware.Authenticate, r.authMiddleware.RequireRole()}
	superAdmin := []echo.MiddlewareFunc{r.authMiddleware.Authenticate, r.authMiddleware.RequireRole(entity.RoleSuperAdmin)}
	machine := r.authMiddleware.RequireModelKey

	users := e.Group("/api/users")
	{
		// Public sign-in and recovery
		users.POST("/login", r.userHandler.Login)
		users.POST("/google-login", r.userHandler.GoogleLogin)
		users.POST("/two-factor", r.userHandler.VerifySecondFactor)
		users.POST("/request-reset", r.userHandler.RequestPasswordReset)
		users.POST("/verify-reset", r.userHandler.VerifyResetCode)
		users.POST("/reset-password", r.userHandler.ResetPassword)
		users.POST("/logout", r.userHandler.Logout)

		// Inference service
		users.GET("/model-access", r.userHandler.ListUsers, machine)

		// Self-service
		users.GET("/profile", r.userHandler.GetProfile, signedIn...)
		users.PUT("/change-password", r.userHandler.ChangePassword, signedIn...)
		users.PATCH("/toggle-2fa", r.userHandler.ToggleSecondFactor, signedIn...)

		// Administration
		users.GET("", r.userHandler.ListUsers, superAdmin...)
		users.POST("", r.userHandler.CreateUser, superAdmin...)
		users.PUT("/access/:id", r.userHandler.SetAccess, superAdmin...)
		users.PUT("/desactivate/:id", r.userHandler.Deactivate, superAdmin...)
		users.PUT("/change-user-password/:id", r.userHandler.AdminChangePassword, superAdmin...)
		users.PATCH("/user-toggle-2fa/:id", r.userHandler.AdminToggleSecondFactor, superAdmin...)
	}

	notifications := e.Group("/api/notifications")
	{
		notifications.GET("", r.notificationHandler.List, signedIn...)
		notifications.POST("", r.notificationHandler.Publish, machine)
		notifications.PATCH("/mark-all-read", r.notificationHandler.MarkAllRead, signedIn...)
		notifications.PATCH("/:id/read", r.notificationHandler.MarkRead, signedIn...)
		notifications.DELETE("/:id", r.notificationHandler.Delete, superAdmin...)
	}
}
