package http

import (
	"github.com/gin-gonic/gin"

	"github.com/glycoguide/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(RateLimitMiddleware(cfg.RateLimit.PerIP, cfg.RateLimit.Burst))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		match := v1.Group("/match")
		{
			match.POST("/preview", handler.PreviewMatch)
		}

		instructions := v1.Group("/instructions")
		{
			instructions.POST("/preview", handler.PreviewInstructions)
		}
	}

	return router
}
