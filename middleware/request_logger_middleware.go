package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mengeshaster/transcriber-twilio/application/ports/outbound"
	"time"
)

const RequestIDHeader = "X-Request-ID"

// RequestLogger logs every request and response status with a request id.
func RequestLogger(logger outbound.LoggerPort) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Writer.Header().Set(RequestIDHeader, requestID)

		start := time.Now()
		c.Next()

		logger.InfoWithFields("Handled request", map[string]interface{}{
			"requestId": requestID,
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"elapsedMs": time.Since(start).Milliseconds(),
		})
	}
}
