package http

import (
	"github.com/gin-gonic/gin"

	"github.com/filtersfast/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))
	{
		wizard := v1.Group("/wizard")
		{
			wizard.POST("/match", handler.MatchFilters)
		}

		catalog := v1.Group("/catalog")
		{
			catalog.GET("/products", handler.ListProducts)
			catalog.GET("/products/:id", handler.GetProduct)
			catalog.GET("/cross-reference", handler.CrossReference)
		}

		v1.GET("/promotions", handler.ListPromotions)
	}

	return router
}
