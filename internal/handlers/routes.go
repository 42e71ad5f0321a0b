package handlers

import (
	"github.com/alimgiray/gitmentor/internal/metrics"
	"github.com/alimgiray/gitmentor/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers groups every HTTP handler of the server
type Handlers struct {
	Home     *HomeHandler
	Auth     *AuthHandler
	Action   *ActionHandler
	Profile  *ProfileHandler
	NotFound *NotFoundHandler
}

// SetupRoutes registers all routes on router
func SetupRoutes(router *gin.Engine, h *Handlers, users middleware.UserLookup) {
	router.Use(middleware.SessionMiddleware())

	// Home page
	router.GET("/", h.Home.Index)

	// Auth routes
	router.GET("/auth/github", h.Auth.GitHubLogin)
	router.GET("/auth/github/callback", h.Auth.GitHubCallback)
	router.POST("/logout", h.Auth.Logout)

	// Protected routes
	api := router.Group("/api")
	api.Use(middleware.AuthRequired(), middleware.LoadIdentity(users))
	{
		api.POST("/ai/action", h.Action.Run)
		api.POST("/github/sync", h.Profile.Sync)
		api.GET("/github/profile", h.Profile.Get)
		api.GET("/github/profile/export", h.Profile.Export)
	}

	// Health check and metrics
	router.GET("/health", h.Home.Health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	router.NoRoute(h.NotFound.NotFound)
}
