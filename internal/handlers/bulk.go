package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/catalog-backend/internal/platform/apierr"
	"github.com/yungbote/catalog-backend/internal/platform/logger"
	"github.com/yungbote/catalog-backend/internal/services"
)

type BulkHandler struct {
	log            *logger.Logger
	productService services.ProductService
}

func NewBulkHandler(log *logger.Logger, productService services.ProductService) *BulkHandler {
	handlerLog := log.With("handler", "BulkHandler")
	return &BulkHandler{log: handlerLog, productService: productService}
}

func (h *BulkHandler) Delete(c *gin.Context) {
	var req struct {
		IDs []int64 `json:"ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, err)
		return
	}
	deleted, err := h.productService.BulkDelete(c.Request.Context(), req.IDs, currentUserID(c))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true, "deleted": deleted})
}

func (h *BulkHandler) Update(c *gin.Context) {
	var req struct {
		IDs  []int64 `json:"ids"`
		Data struct {
			Brand       *string `json:"brand"`
			Description *string `json:"description"`
			Price       *string `json:"price"`
		} `json:"data"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, err)
		return
	}
	input := services.BulkUpdateInput{
		Brand:       req.Data.Brand,
		Description: req.Data.Description,
		Price:       req.Data.Price,
	}
	updated, err := h.productService.BulkUpdate(c.Request.Context(), req.IDs, input, currentUserID(c))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true, "updated": updated})
}
