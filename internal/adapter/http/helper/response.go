package helper

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskapp/internal/core/domain"
	"taskapp/internal/core/model/response"
)

// RespondError renders any error as the {"message": ...} body with its
// taxonomy status. Errors that carry no status are internal.
func RespondError(c *gin.Context, err error) {
	status, message := classify(err)

	c.JSON(status, response.MessageResponse{Message: message})
}

// AbortWithError short-circuits a middleware chain with the error response.
func AbortWithError(c *gin.Context, err error) {
	status, message := classify(err)

	c.AbortWithStatusJSON(status, response.MessageResponse{Message: message})
}

func classify(err error) (int, string) {
	var appErr *domain.AppError

	if errors.As(err, &appErr) {
		return appErr.Status, appErr.Message
	}

	return http.StatusInternalServerError, err.Error()
}
