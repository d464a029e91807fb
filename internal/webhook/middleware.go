package webhook

import (
	"time"

	"github.com/Shanmukha18/unibuy-client/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

// RequestID tags each callback with an id so a gateway redirect can
// be correlated with the payment attempt it resolves. The hosted page
// never sends one, so one is minted here and echoed back.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// Logger middleware logs callback request details
func Logger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		fields := []zap.Field{
			zap.String("request_id", c.GetString("request_id")),
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Duration("latency", time.Since(start)),
		}

		status := c.Writer.Status()
		switch {
		case status >= 500:
			log.Error("Callback server error", fields...)
		case status >= 400:
			log.Warn("Callback client error", fields...)
		default:
			log.Info("Callback completed", fields...)
		}
	}
}
