package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/service"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/validation"
)

func writeError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, validation.ErrorResponse{
		Code:    code,
		Message: message,
		Errors:  nil,
	})
}

// writeServiceError maps a service error onto its status and code. Anything
// that is not a *service.Error is reported as 500.
func writeServiceError(c *gin.Context, err error) {
	_ = c.Error(err)

	var se *service.Error
	if errors.As(err, &se) {
		writeError(c, se.HTTPStatus(), se.Code, se.Message)
		return
	}

	writeError(c, http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"internal server error",
	)
}
