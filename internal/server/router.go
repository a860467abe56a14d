package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yungbote/catalog-backend/internal/handlers"
	"github.com/yungbote/catalog-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler       *handlers.AuthHandler
	ProductHandler    *handlers.ProductHandler
	MatchHandler      *handlers.MatchHandler
	BulkHandler       *handlers.BulkHandler
	ExportHandler     *handlers.ExportHandler
	AnalyticsHandler  *handlers.AnalyticsHandler
	HistoryHandler    *handlers.HistoryHandler
	AuthMiddleware    *middleware.AuthMiddleware
	LoginRateLimit    *middleware.RateLimitMiddleware
	UploadDir         string
	ServeLocalUploads bool
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	if cfg.ServeLocalUploads {
		router.Static("/uploads", cfg.UploadDir)
	}
	api := router.Group("/api")
	{
		api.POST("/auth/login", cfg.LoginRateLimit.Limit(), cfg.AuthHandler.Login)
		api.GET("/products", cfg.ProductHandler.List)
		api.GET("/products/:id", cfg.ProductHandler.Get)
		api.POST("/match", cfg.MatchHandler.Match)
	}

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/api")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Products
	protected.POST("/products", cfg.ProductHandler.Create)
	protected.PUT("/products/:id", cfg.ProductHandler.Update)
	protected.DELETE("/products/:id", cfg.ProductHandler.Delete)
	// Bulk
	protected.POST("/bulk/delete", cfg.BulkHandler.Delete)
	protected.POST("/bulk/update", cfg.BulkHandler.Update)
	// Export
	protected.GET("/export/excel", cfg.ExportHandler.Excel)
	protected.GET("/export/pdf", cfg.ExportHandler.PDF)
	// Analytics
	protected.GET("/analytics", cfg.AnalyticsHandler.Get)
	// History
	protected.GET("/history", cfg.HistoryHandler.Get)

	return router
}
