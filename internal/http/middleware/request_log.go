package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vwconsorcio/consorcio-backend/internal/observability"
	"github.com/vwconsorcio/consorcio-backend/internal/platform/ctxutil"
	"github.com/vwconsorcio/consorcio-backend/internal/platform/logger"
)

// RequestLogger logs one line per request and, when m is set, records the
// in-flight gauge and per-route latency. Either argument may be nil.
func RequestLogger(log *logger.Logger, m *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		if m != nil {
			m.APIInflightInc()
			defer m.APIInflightDec()
		}

		c.Next()

		status := c.Writer.Status()
		elapsed := time.Since(start)
		route := c.FullPath()
		if m != nil {
			label := route
			if label == "" {
				label = "unknown"
			}
			m.ObserveAPI(c.Request.Method, label, strconv.Itoa(status), elapsed)
		}
		if log == nil {
			return
		}

		path := route
		if path == "" {
			path = c.Request.URL.Path
		}
		fields := []interface{}{
			"method", strings.ToUpper(c.Request.Method),
			"path", path,
			"status", status,
			"duration_ms", elapsed.Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if td := ctxutil.GetTraceData(c.Request.Context()); td != nil {
			fields = append(fields, "area", td.Area, "trace_id", td.TraceID, "request_id", td.RequestID)
		}
		if rd := ctxutil.GetRequestData(c.Request.Context()); rd != nil {
			switch {
			case rd.Admin:
				fields = append(fields, "admin", true, "subject", rd.Subject)
			case rd.AuthErr != nil:
				fields = append(fields, "rejected_token", true)
			}
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			log.Error("HTTP request", fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}
