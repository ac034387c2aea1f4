package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/azniosman/Project-Fortress/internal/apperrors"
	"github.com/azniosman/Project-Fortress/internal/config"
	"github.com/azniosman/Project-Fortress/internal/models"
)

// ErrorHandler formats any error a handler attached via c.Error. Handlers
// report failures and return; this middleware owns status mapping, logging and
// the response envelope. In production, internal messages are masked.
func ErrorHandler(logger *zap.Logger, environment string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		appErr := apperrors.FromError(c.Errors.Last().Err)

		logger.Error("request failed",
			zap.String("error", appErr.Error()),
			zap.Int("status", appErr.StatusCode()),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", RequestIDFrom(c)),
		)

		if c.Writer.Written() {
			return
		}

		message := appErr.Message
		if appErr.StatusCode() >= http.StatusInternalServerError {
			if environment == config.EnvProduction {
				message = "Internal Server Error"
			} else {
				// Outside production the underlying cause is more useful.
				message = appErr.Error()
			}
		}

		c.JSON(appErr.StatusCode(), models.NewErrorResponse(message))
	}
}
