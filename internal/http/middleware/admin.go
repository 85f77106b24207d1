package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vwconsorcio/consorcio-backend/internal/platform/ctxutil"
	"github.com/vwconsorcio/consorcio-backend/internal/services"
)

// AdminAuth attaches admin identity when a bearer token is presented.
// A token that fails verification does not abort the request: the caller
// continues as anonymous and the failure is kept on the request data so that
// endpoints asking for admin rights answer 401 instead of 403.
func AdminAuth(auth services.AdminAuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" || auth == nil {
			c.Next()
			return
		}
		rd := &ctxutil.RequestData{}
		if claims, err := auth.ParseToken(token); err != nil {
			rd.AuthErr = err
		} else {
			rd.Admin = true
			rd.Subject = claims.Subject
			c.Set("admin", true)
		}
		c.Request = c.Request.WithContext(ctxutil.WithRequestData(c.Request.Context(), rd))
		c.Next()
	}
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
