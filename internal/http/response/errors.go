package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/vwconsorcio/consorcio-backend/internal/pkg/errors"
)

const (
	CodeInvalidRequest   = "invalid_request"
	CodeValidationFailed = "validation_failed"
	CodeNotFound         = "not_found"
	CodeDuplicateSlug    = "duplicate_slug"
	CodeUnauthorized     = "unauthorized"
	CodeForbidden        = "forbidden"
	CodeAdminDisabled    = "admin_disabled"
	CodeStoreUnavailable = "store_unavailable"
	CodeInternal         = "internal_error"
)

// Status maps a service error onto its HTTP status and error code.
func Status(err error) (int, string) {
	switch {
	case errors.Is(err, errs.ErrValidation):
		return http.StatusBadRequest, CodeValidationFailed
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, errs.ErrDuplicateSlug):
		return http.StatusConflict, CodeDuplicateSlug
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusUnauthorized, CodeUnauthorized
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden, CodeForbidden
	case errors.Is(err, errs.ErrAdminDisabled):
		return http.StatusServiceUnavailable, CodeAdminDisabled
	case errors.Is(err, errs.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, CodeStoreUnavailable
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// RespondServiceError writes the error envelope for err. Backend details never
// reach the client; validation errors carry their per-field violations.
func RespondServiceError(c *gin.Context, err error) {
	status, code := Status(err)
	apiErr := APIError{Code: code}
	var verr *errs.ValidationError
	switch {
	case errors.As(err, &verr):
		apiErr.Message = verr.Error()
		apiErr.Fields = verr.Violations
	case status == http.StatusServiceUnavailable && code == CodeStoreUnavailable:
		apiErr.Message = errs.ErrStoreUnavailable.Error()
	case status == http.StatusInternalServerError:
		apiErr.Message = "internal server error"
	default:
		apiErr.Message = err.Error()
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, ErrorEnvelope{Error: apiErr})
}
