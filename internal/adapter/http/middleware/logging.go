package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"taskapp/pkg/tracing"
)

// RequestLogger emits one structured line per request, with the trace id
// when a tracer is configured.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}

		event := logger.Info().
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Str("request_id", c.GetString("request_id"))

		if traceID := tracing.GetTraceID(c.Request.Context()); traceID != "" {
			event = event.Str("trace_id", traceID)
		}

		event.Msg("HTTP Request")
	}
}
