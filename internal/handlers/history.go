package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/catalog-backend/internal/platform/apierr"
	"github.com/yungbote/catalog-backend/internal/platform/logger"
	"github.com/yungbote/catalog-backend/internal/services"
)

type HistoryHandler struct {
	log            *logger.Logger
	historyService services.HistoryService
}

func NewHistoryHandler(log *logger.Logger, historyService services.HistoryService) *HistoryHandler {
	handlerLog := log.With("handler", "HistoryHandler")
	return &HistoryHandler{log: handlerLog, historyService: historyService}
}

// Get serves either the per-product trail (?productId=) or the global
// paginated feed.
func (h *HistoryHandler) Get(c *gin.Context) {
	if rawID := c.Query("productId"); rawID != "" {
		productID, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil || productID < 1 {
			RespondError(c, http.StatusBadRequest, apierr.CodeValidation, fmt.Errorf("invalid productId %q", rawID))
			return
		}
		entries, err := h.historyService.GetProductHistory(c.Request.Context(), productID)
		if err != nil {
			RespondServiceError(c, err)
			return
		}
		RespondOK(c, gin.H{"history": entries})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	feed, err := h.historyService.ListHistory(c.Request.Context(), page, limit)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, feed)
}
