// Package devserver assembles the fixture API server: the exact endpoint
// surface of the production backend, served from in-memory seed data so
// the client SDK can be developed and demoed without it.
package devserver

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/taskdesk/client-go/internal/core/domain"
	"github.com/taskdesk/client-go/internal/devserver/handler"
	"github.com/taskdesk/client-go/internal/devserver/middleware"
	"github.com/taskdesk/client-go/internal/devserver/store"
	"github.com/taskdesk/client-go/internal/infrastructure/config"
)

// NewRouter builds the Echo instance with all fixture routes registered.
func NewRouter(st *store.Store, cfg config.DevServerConfig, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("taskdesk_devserver"))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(st, cfg.JWTSecret, cfg.TokenTTL)
	taskHandler := handler.NewTaskHandler(st)
	auth := middleware.Auth(cfg.JWTSecret)
	managers := middleware.RBAC(string(domain.RoleAdmin), string(domain.RoleSuperuser))

	// --- Auth routes ---
	e.POST("/api/auth/login/", authHandler.Login)
	e.GET("/api/auth/me/", authHandler.Me, auth)
	e.GET("/api/auth/users/", authHandler.ListUsers, auth, managers)
	e.POST("/api/auth/users/create/", authHandler.CreateUser, auth, managers)
	e.PUT("/api/auth/users/update/:id/", authHandler.UpdateUser, auth, managers)
	e.DELETE("/api/auth/users/delete/:id/", authHandler.DeleteUser, auth, managers)

	// --- Task routes ---
	e.GET("/api/tasks/", taskHandler.List, auth)
	e.POST("/api/tasks/create/", taskHandler.Create, auth, managers)
	e.GET("/api/tasks/:id/", taskHandler.Get, auth)
	e.PUT("/api/tasks/:id/update/", taskHandler.Update, auth, managers)
	e.DELETE("/api/tasks/:id/delete/", taskHandler.Delete, auth, managers)
	e.POST("/api/tasks/:id/reject/", taskHandler.Reject, auth)
	e.POST("/api/tasks/:id/complete/", taskHandler.Complete, auth)
	e.GET("/api/tasks/reports/", taskHandler.Reports, auth, managers)
	e.POST("/api/tasks/reports/:id/review/", taskHandler.Review, auth, managers)
	e.GET("/api/tasks/notifications/", taskHandler.Notifications, auth)
	e.POST("/api/tasks/notifications/", taskHandler.MarkNotificationsRead, auth)
	e.GET("/api/tasks/statistics/", taskHandler.Statistics, auth, managers)

	// --- Probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	e.GET("/health", healthHandler.Liveness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
