package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/catalog-backend/internal/server"
	"github.com/yungbote/catalog-backend/internal/storage"
)

func wireRouter(cfg Config, handlerset Handlers, middlewareset Middleware) *gin.Engine {
	serveUploads := cfg.StorageProvider == storage.ProviderLocal || cfg.StorageProvider == storage.ProviderHybrid
	return server.NewRouter(server.RouterConfig{
		AuthHandler:       handlerset.Auth,
		ProductHandler:    handlerset.Product,
		MatchHandler:      handlerset.Match,
		BulkHandler:       handlerset.Bulk,
		ExportHandler:     handlerset.Export,
		AnalyticsHandler:  handlerset.Analytics,
		HistoryHandler:    handlerset.History,
		AuthMiddleware:    middlewareset.Auth,
		LoginRateLimit:    middlewareset.LoginRateLimit,
		UploadDir:         cfg.UploadDir,
		ServeLocalUploads: serveUploads,
	})
}
