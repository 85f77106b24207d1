package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vwconsorcio/consorcio-backend/internal/http/response"
	errs "github.com/vwconsorcio/consorcio-backend/internal/pkg/errors"
	"github.com/vwconsorcio/consorcio-backend/internal/platform/ctxutil"
)

// bindJSON decodes the request body into dst and answers 400 on malformed input.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.CodeInvalidRequest, err)
		return false
	}
	return true
}

// bindOptionalJSON is bindJSON for endpoints where an empty body is allowed.
func bindOptionalJSON(c *gin.Context, dst any) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		response.RespondError(c, http.StatusBadRequest, response.CodeInvalidRequest, err)
		return false
	}
	return true
}

// includeHidden reads ?include_inactive=true. Only admin callers may ask for
// hidden records: a rejected token gets 401, an anonymous caller 403.
func includeHidden(c *gin.Context) (bool, bool) {
	raw := strings.TrimSpace(c.Query("include_inactive"))
	if raw == "" {
		return false, true
	}
	include, err := strconv.ParseBool(raw)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.CodeInvalidRequest, errors.New("include_inactive must be a boolean"))
		return false, false
	}
	if include && !requireAdmin(c) {
		return false, false
	}
	return include, true
}

func queryInt(c *gin.Context, key string) (int, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		response.RespondError(c, http.StatusBadRequest, response.CodeInvalidRequest, errors.New(key+" must be a non-negative integer"))
		return 0, false
	}
	return n, true
}

// requireAdmin answers 401 or 403 when the caller is not an admin.
func requireAdmin(c *gin.Context) bool {
	ctx := c.Request.Context()
	if ctxutil.IsAdmin(ctx) {
		return true
	}
	if err := ctxutil.AuthError(ctx); err != nil {
		response.RespondServiceError(c, err)
		return false
	}
	response.RespondServiceError(c, errs.ErrForbidden)
	return false
}
