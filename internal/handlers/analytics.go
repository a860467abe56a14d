package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/catalog-backend/internal/platform/logger"
	"github.com/yungbote/catalog-backend/internal/services"
)

type AnalyticsHandler struct {
	log              *logger.Logger
	analyticsService services.AnalyticsService
}

func NewAnalyticsHandler(log *logger.Logger, analyticsService services.AnalyticsService) *AnalyticsHandler {
	handlerLog := log.With("handler", "AnalyticsHandler")
	return &AnalyticsHandler{log: handlerLog, analyticsService: analyticsService}
}

func (h *AnalyticsHandler) Get(c *gin.Context) {
	data, err := h.analyticsService.Get(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, data)
}
