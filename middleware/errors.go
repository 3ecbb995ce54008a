package middleware

import (
	"net/http"

	"roomkeeper/errors"
	"roomkeeper/response"
	"roomkeeper/services/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler renders the last error a handler pushed with c.Error.
func ErrorHandler(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status := errors.HTTPStatus(err)
		if status == http.StatusInternalServerError {
			log.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
			response.ServerError(c)
			return
		}
		response.Error(c, status, errors.GetAppError(err).Message)
	}
}
