package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/catalog-backend/internal/platform/apierr"
	"github.com/yungbote/catalog-backend/internal/services"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// RespondServiceError maps a service error onto the HTTP envelope. A
// duplicate-product conflict additionally carries the colliding rows.
func RespondServiceError(c *gin.Context, err error) {
	var dup *services.DuplicateProductsError
	if errors.As(err, &dup) {
		c.JSON(http.StatusConflict, gin.H{
			"error": APIError{
				Message: dup.Error(),
				Code:    apierr.CodeDuplicate,
			},
			"products": dup.Products,
		})
		return
	}
	var apiErr *apierr.Error
	if errors.As(err, &apiErr) {
		RespondError(c, apiErr.Status, apiErr.Code, apiErr)
		return
	}
	RespondError(c, http.StatusInternalServerError, apierr.CodeInternal, err)
}
