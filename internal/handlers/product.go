package handlers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/catalog-backend/internal/platform/apierr"
	"github.com/yungbote/catalog-backend/internal/platform/logger"
	"github.com/yungbote/catalog-backend/internal/repos"
	"github.com/yungbote/catalog-backend/internal/services"
)

type ProductHandler struct {
	log            *logger.Logger
	productService services.ProductService
}

func NewProductHandler(log *logger.Logger, productService services.ProductService) *ProductHandler {
	handlerLog := log.With("handler", "ProductHandler")
	return &ProductHandler{log: handlerLog, productService: productService}
}

func (h *ProductHandler) Create(c *gin.Context) {
	input := services.CreateProductInput{
		Description: c.PostForm("description"),
		Size:        c.PostForm("size"),
		Breakers:    c.PostForm("breakers"),
		Brand:       c.PostForm("brand"),
		IPEnclosure: formPtr(c, "ipEnclosure"),
		Pole:        formPtr(c, "pole"),
		Price:       formPtr(c, "price"),
		Files:       formFiles(c),
		UserID:      currentUserID(c),
	}
	view, err := h.productService.Create(c.Request.Context(), input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, err)
		return
	}
	view, err := h.productService.Get(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, view)
}

func (h *ProductHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	filter := repos.ListFilter{
		Search:      c.Query("search"),
		Brand:       c.Query("brand"),
		Description: c.Query("description"),
		Size:        c.Query("size"),
		Breakers:    c.Query("breakers"),
		Page:        page,
		Limit:       limit,
	}
	pageResult, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, pageResult)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, err)
		return
	}

	var input services.UpdateProductInput
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		input = services.UpdateProductInput{
			Description: formPtr(c, "description"),
			Size:        formPtr(c, "size"),
			Breakers:    formPtr(c, "breakers"),
			Brand:       formPtr(c, "brand"),
			IPEnclosure: formPtr(c, "ipEnclosure"),
			Pole:        formPtr(c, "pole"),
			Price:       formPtr(c, "price"),
			Files:       formFiles(c),
		}
	} else {
		var req struct {
			Description *string `json:"description"`
			Size        *string `json:"size"`
			Breakers    *string `json:"breakers"`
			Brand       *string `json:"brand"`
			IPEnclosure *string `json:"ipEnclosure"`
			Pole        *string `json:"pole"`
			Price       *string `json:"price"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, apierr.CodeValidation, err)
			return
		}
		input = services.UpdateProductInput{
			Description: req.Description,
			Size:        req.Size,
			Breakers:    req.Breakers,
			Brand:       req.Brand,
			IPEnclosure: req.IPEnclosure,
			Pole:        req.Pole,
			Price:       req.Price,
		}
	}
	input.UserID = currentUserID(c)

	view, err := h.productService.Update(c.Request.Context(), id, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, view)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, err)
		return
	}
	if err := h.productService.Delete(c.Request.Context(), id, currentUserID(c)); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid product id %q", c.Param("id"))
	}
	return id, nil
}

func formPtr(c *gin.Context, key string) *string {
	if value, ok := c.GetPostForm(key); ok {
		return &value
	}
	return nil
}

func formFiles(c *gin.Context) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File["files"]
}

func currentUserID(c *gin.Context) *string {
	if username := c.GetString("username"); username != "" {
		return &username
	}
	return nil
}
