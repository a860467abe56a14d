package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/catalog-backend/internal/platform/logger"
	"github.com/yungbote/catalog-backend/internal/services"
	"github.com/yungbote/catalog-backend/internal/storage"
)

type Services struct {
	Auth      services.AuthService
	Product   services.ProductService
	Match     services.MatchService
	History   services.HistoryService
	Analytics services.AnalyticsService
	Export    services.ExportService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, store storage.FileStore) (Services, error) {
	log.Info("Wiring services...")
	historyService := services.NewHistoryService(db, log, reposet.History, reposet.Product)
	return Services{
		Auth:      services.NewAuthService(db, log, reposet.User, cfg.JWTSecretKey, cfg.TokenTTL),
		Product:   services.NewProductService(db, log, reposet.Product, reposet.Drawing, historyService, store, cfg.UploadLimits),
		Match:     services.NewMatchService(db, log, reposet.Product, store),
		History:   historyService,
		Analytics: services.NewAnalyticsService(db, log, reposet.Product, reposet.Drawing),
		Export:    services.NewExportService(db, log, reposet.Product),
	}, nil
}
