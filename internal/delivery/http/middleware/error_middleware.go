package middleware

import (
	"errors"
	"net/http"

	"go-applicant-tracker/internal/delivery/http/response"
	"go-applicant-tracker/pkg/apperror"
	"go-applicant-tracker/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code >= http.StatusInternalServerError && appErr.Err != nil {
				logger.Log.Error("Request failed",
					zap.String("request_id", c.GetString("RequestID")),
					zap.String("path", c.FullPath()),
					zap.Error(appErr.Err))
			}
			var fields interface{}
			if len(appErr.Fields) > 0 {
				fields = appErr.Fields
			}
			response.ErrorWithData(c, appErr.Code, appErr.Message, fields, appErr.Data)
			return
		}

		// SECURITY: Never expose internal error details to clients.
		logger.Log.Error("Internal Server Error",
			zap.String("request_id", c.GetString("RequestID")),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}

// Recovery renders panics as a generic 500.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Log.Error("Panic recovered",
			zap.String("request_id", c.GetString("RequestID")),
			zap.Any("panic", recovered))
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
		c.Abort()
	})
}
