package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/catalog-backend/internal/platform/apierr"
	"github.com/yungbote/catalog-backend/internal/platform/logger"
	"github.com/yungbote/catalog-backend/internal/services"
)

type ExportHandler struct {
	log           *logger.Logger
	exportService services.ExportService
}

func NewExportHandler(log *logger.Logger, exportService services.ExportService) *ExportHandler {
	handlerLog := log.With("handler", "ExportHandler")
	return &ExportHandler{log: handlerLog, exportService: exportService}
}

func (h *ExportHandler) Excel(c *gin.Context) {
	filter, err := exportFilterFromQuery(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, err)
		return
	}
	data, filename, err := h.exportService.ExportExcel(c.Request.Context(), filter)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (h *ExportHandler) PDF(c *gin.Context) {
	filter, err := exportFilterFromQuery(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, err)
		return
	}
	data, filename, err := h.exportService.ExportPDF(c.Request.Context(), filter)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

func exportFilterFromQuery(c *gin.Context) (services.ExportFilter, error) {
	filter := services.ExportFilter{
		Brand:       c.Query("brand"),
		Description: c.Query("description"),
	}
	rawIDs := strings.TrimSpace(c.Query("ids"))
	if rawIDs == "" {
		return filter, nil
	}
	for _, part := range strings.Split(rawIDs, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return filter, err
		}
		filter.IDs = append(filter.IDs, id)
	}
	return filter, nil
}
