package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/metrics"
)

// AccessLog logs one line per request and feeds the HTTP metrics.
func AccessLog(log *slog.Logger, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		elapsed := time.Since(start)

		m.ObserveHTTP(route, c.Request.Method, status, elapsed)

		level := slog.LevelInfo
		if status >= 500 {
			level = slog.LevelError
		}
		attrs := []any{
			"request_id", c.GetString(ContextRequestID),
			"method", c.Request.Method,
			"route", route,
			"status", status,
			"bytes", c.Writer.Size(),
			"duration_ms", elapsed.Milliseconds(),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "error", c.Errors.String())
		}
		log.Log(c.Request.Context(), level, "http request", attrs...)
	}
}
