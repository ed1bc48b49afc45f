package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/salonhub/salon-api/internal/logging"
	"github.com/salonhub/salon-api/internal/metrics"
)

const RequestIDHeader = "X-Request-ID"

// RequestID tags the request context with the incoming X-Request-ID, or a
// fresh one, and echoes it back.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = logging.NewRequestID()
		}

		ctx := logging.ContextWithRequestID(c.Request.Context(), id)
		c.Request = c.Request.WithContext(ctx)
		c.Header(RequestIDHeader, id)

		c.Next()
	}
}

// AccessLog logs every request once and feeds the HTTP metrics.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		elapsed := time.Since(start)
		status := c.Writer.Status()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		metrics.RecordAPIRequest(c.Request.Method, endpoint, status, elapsed)

		ev := logging.Ctx(c.Request.Context()).Info()
		if status >= 500 {
			ev = logging.Ctx(c.Request.Context()).Error()
		}
		ev.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", elapsed).
			Int("size", c.Writer.Size()).
			Msg("request")
	}
}
