package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/catalog-backend/internal/platform/apierr"
	"github.com/yungbote/catalog-backend/internal/platform/logger"
	"github.com/yungbote/catalog-backend/internal/services"
)

type MatchHandler struct {
	log          *logger.Logger
	matchService services.MatchService
}

func NewMatchHandler(log *logger.Logger, matchService services.MatchService) *MatchHandler {
	handlerLog := log.With("handler", "MatchHandler")
	return &MatchHandler{log: handlerLog, matchService: matchService}
}

func (h *MatchHandler) Match(c *gin.Context) {
	var criteria services.MatchCriteria
	if err := c.ShouldBindJSON(&criteria); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, err)
		return
	}
	result, err := h.matchService.Match(c.Request.Context(), criteria)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}
