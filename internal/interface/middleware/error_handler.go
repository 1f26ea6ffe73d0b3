package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-course-api/pkg/apperror"
	"github.com/oksasatya/go-course-api/pkg/response"
)

// ErrorHandler renders the last error attached with c.Error as the JSON envelope.
// It is the only place where error responses are written.
func ErrorHandler(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		appErr := apperror.From(c.Errors.Last().Err)
		if appErr.Kind == apperror.KindInternal && logger != nil {
			logger.WithError(appErr.Err).
				WithField("request_id", c.GetString(CtxRequestIDKey)).
				WithField("path", c.Request.URL.Path).
				Error("request failed")
		}
		response.Error(c, appErr)
	}
}

// Recovery turns panics into a 500 envelope.
func Recovery(logger *logrus.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		err, ok := recovered.(error)
		if !ok {
			err = fmt.Errorf("panic: %v", recovered)
		}
		if logger != nil {
			logger.WithError(err).
				WithField("request_id", c.GetString(CtxRequestIDKey)).
				Error("panic recovered")
		}
		response.Error(c, apperror.Internal(err))
	})
}
