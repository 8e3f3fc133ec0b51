package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StructuredLogging writes one zap line per request. Health probes and
// metrics scrapes are logged at debug level.
func StructuredLogging(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.Request.URL.Path
		fields := []zap.Field{
			zap.String("request_id", c.GetString(RequestIDKey)),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Int64("latency_ms", time.Since(start).Milliseconds()),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
		}
		if errs := c.Errors.ByType(gin.ErrorTypeAny).String(); errs != "" {
			fields = append(fields, zap.String("error", errs))
		}

		switch {
		case path == "/health" || path == "/metrics":
			logger.Debug("HTTP Request", fields...)
		case c.Writer.Status() >= 500:
			logger.Error("HTTP Request", fields...)
		default:
			logger.Info("HTTP Request", fields...)
		}
	}
}
