package middleware

import (
	"time"

	"github.com/Dhoini/Admin-panel/pkg/logger"
	"github.com/gin-gonic/gin"
)

// LoggerMiddleware создает middleware для логирования запросов
func LoggerMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		latency := time.Since(startTime)
		statusCode := c.Writer.Status()
		fields := []any{
			"method", c.Request.Method,
			"uri", c.Request.RequestURI,
			"route", c.FullPath(),
			"status", statusCode,
			"latency", latency.String(),
			"bytes", c.Writer.Size(),
			"ip", c.ClientIP(),
		}

		// Уровень зависит от класса статуса
		switch {
		case statusCode >= 500:
			log.Errorw("HTTP request", fields...)
		case statusCode >= 400:
			log.Warnw("HTTP request", fields...)
		default:
			log.Infow("HTTP request", fields...)
		}
	}
}
