package app

import (
	"github.com/yungbote/catalog-backend/internal/handlers"
	"github.com/yungbote/catalog-backend/internal/platform/logger"
)

type Handlers struct {
	Auth      *handlers.AuthHandler
	Product   *handlers.ProductHandler
	Match     *handlers.MatchHandler
	Bulk      *handlers.BulkHandler
	Export    *handlers.ExportHandler
	Analytics *handlers.AnalyticsHandler
	History   *handlers.HistoryHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:      handlers.NewAuthHandler(serviceset.Auth),
		Product:   handlers.NewProductHandler(log, serviceset.Product),
		Match:     handlers.NewMatchHandler(log, serviceset.Match),
		Bulk:      handlers.NewBulkHandler(log, serviceset.Product),
		Export:    handlers.NewExportHandler(log, serviceset.Export),
		Analytics: handlers.NewAnalyticsHandler(log, serviceset.Analytics),
		History:   handlers.NewHistoryHandler(log, serviceset.History),
	}
}
