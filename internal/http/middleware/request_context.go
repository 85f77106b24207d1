package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vwconsorcio/consorcio-backend/internal/platform/ctxutil"
)

const (
	headerTraceID   = "X-Trace-Id"
	headerRequestID = "X-Request-Id"

	maxClientIDLen = 128
)

// areaPrefixes maps API path prefixes to the part of the site they serve.
var areaPrefixes = []struct {
	prefix string
	area   string
}{
	{"/api/leads", "leads"},
	{"/api/cars", "catalog"},
	{"/api/testimonials", "content"},
	{"/api/blog", "content"},
	{"/api/analytics", "analytics"},
	{"/api/admin", "admin"},
}

// RequestArea names the site area a path belongs to. Anything unmatched,
// health checks included, is "system".
func RequestArea(path string) string {
	for _, p := range areaPrefixes {
		if path == p.prefix || strings.HasPrefix(path, p.prefix+"/") {
			return p.area
		}
	}
	return "system"
}

// AttachRequestContext stamps every request with its ids and site area, echoes
// the ids back to the caller and tags the active span. The landing page may send
// its own X-Request-Id so form submissions can be matched to server logs; ids
// longer than maxClientIDLen or outside [A-Za-z0-9._-] are replaced.
func AttachRequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := clientID(c.GetHeader(headerRequestID))
		if reqID == "" {
			reqID = uuid.NewString()
		}

		span := trace.SpanFromContext(c.Request.Context())
		var traceID string
		if sc := span.SpanContext(); sc.HasTraceID() {
			traceID = sc.TraceID().String()
		} else if traceID = clientID(c.GetHeader(headerTraceID)); traceID == "" {
			traceID = uuid.NewString()
		}

		area := RequestArea(c.Request.URL.Path)
		span.SetAttributes(
			attribute.String("consorcio.area", area),
			attribute.String("consorcio.request_id", reqID),
		)

		c.Request = c.Request.WithContext(ctxutil.WithTraceData(c.Request.Context(), &ctxutil.TraceData{
			TraceID:   traceID,
			RequestID: reqID,
			Area:      area,
		}))
		c.Writer.Header().Set(headerTraceID, traceID)
		c.Writer.Header().Set(headerRequestID, reqID)
		c.Next()
	}
}

func clientID(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || len(raw) > maxClientIDLen {
		return ""
	}
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
		default:
			return ""
		}
	}
	return raw
}
