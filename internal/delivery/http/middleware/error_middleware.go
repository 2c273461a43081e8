package middleware

import (
	"errors"
	"net/http"

	"candidate-voting-backend/internal/delivery/http/response"
	"candidate-voting-backend/internal/domain"
	"candidate-voting-backend/pkg/apperror"
	"candidate-voting-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

const internalErrorMessage = "An unexpected error occurred. Please try again later."

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code < http.StatusInternalServerError {
			response.Error(c, appErr.Code, appErr.Message)
			return
		}

		// Internal details stay in the server log.
		logger.Log.Error("request failed",
			"error", err,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"request_id", c.GetString(string(domain.KeyRequestID)),
		)
		response.Error(c, http.StatusInternalServerError, internalErrorMessage)
	}
}
