package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-course-api/pkg/apperror"
)

// Envelope is the uniform response body of every endpoint.
type Envelope struct {
	Status  string `json:"status"`
	Data    any    `json:"data"`
	Message any    `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// Success writes {status:"success", data}.
func Success(c *gin.Context, status int, data any) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, Envelope{Status: apperror.StatusSuccess, Data: data})
}

// Error writes the envelope for err and aborts the chain.
func Error(c *gin.Context, err *apperror.Error) {
	c.AbortWithStatusJSON(err.Code, Envelope{
		Status:  err.Status,
		Data:    nil,
		Message: err.Message,
		Code:    err.Code,
	})
}

// NotFound is the fallback for unmatched routes.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, Envelope{
		Status: apperror.StatusError,
		Data:   gin.H{"message": "page not found"},
	})
}
