package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://127.0.0.1:3000",
	"http://127.0.0.1:5173",
}

// CORS allows the marketing site origins. A single "*" admits any origin; the
// origin is echoed back so credentials keep working.
func CORS(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "X-Request-Id"},
		ExposeHeaders:    []string{"X-Request-Id", "X-Trace-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	cleaned := make([]string, 0, len(origins))
	wildcard := false
	for _, o := range origins {
		o = strings.TrimSpace(o)
		switch o {
		case "":
		case "*":
			wildcard = true
		default:
			cleaned = append(cleaned, strings.TrimSuffix(o, "/"))
		}
	}
	switch {
	case wildcard:
		cfg.AllowOriginFunc = func(string) bool { return true }
	case len(cleaned) > 0:
		cfg.AllowOrigins = cleaned
	default:
		cfg.AllowOrigins = defaultOrigins
	}
	return cors.New(cfg)
}
