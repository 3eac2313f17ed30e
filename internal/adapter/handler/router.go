package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meetscribe/meetscribe/internal/infrastructure/http/middleware"
	"github.com/meetscribe/meetscribe/internal/usecase/auth"
	"github.com/meetscribe/meetscribe/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg             *config.Config
	oauthService    *auth.OAuthService
	authHandler     *Auth
	userHandler     *User
	meetingHandler  *Meeting
	taskHandler     *Task
	documentHandler *Document
}

// NewRouter creates a new router with all handlers
func NewRouter(
	cfg *config.Config,
	oauthService *auth.OAuthService,
	authHandler *Auth,
	userHandler *User,
	meetingHandler *Meeting,
	taskHandler *Task,
	documentHandler *Document,
) *Router {
	return &Router{
		cfg:             cfg,
		oauthService:    oauthService,
		authHandler:     authHandler,
		userHandler:     userHandler,
		meetingHandler:  meetingHandler,
		taskHandler:     taskHandler,
		documentHandler: documentHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// Auth routes (unauthenticated)
	authGroup := e.Group("/auth")
	authGroup.GET("/google/login", rt.authHandler.GoogleLogin)
	authGroup.GET("/google/callback", rt.authHandler.GoogleCallback)
	authGroup.POST("/refresh", rt.authHandler.RefreshToken)
	authGroup.POST("/logout", rt.authHandler.Logout)

	// Authenticated API
	api := e.Group("/api", middleware.EchoAuth(rt.oauthService))

	api.GET("/me", rt.userHandler.Me)
	api.GET("/users", rt.userHandler.List)

	api.POST("/documents/upload", rt.documentHandler.Upload)
	api.GET("/documents/download", rt.documentHandler.Download)
	api.POST("/documents/summarize", rt.documentHandler.Summarize)

	api.POST("/meetings/analyze/text", rt.meetingHandler.AnalyzeText)
	api.POST("/meetings/analyze/file", rt.meetingHandler.AnalyzeFile)
	api.GET("/meetings", rt.meetingHandler.List)
	api.POST("/meetings", rt.meetingHandler.Create)
	api.GET("/meetings/:id", rt.meetingHandler.Get)
	api.PUT("/meetings/:id", rt.meetingHandler.Update)
	api.DELETE("/meetings/:id", rt.meetingHandler.Delete)
	api.GET("/meetings/:id/export", rt.meetingHandler.Export)

	api.GET("/tasks", rt.taskHandler.List)
	api.POST("/tasks", rt.taskHandler.Create)
	api.PATCH("/tasks/:id", rt.taskHandler.Update)
	api.DELETE("/tasks/:id", rt.taskHandler.Delete)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
