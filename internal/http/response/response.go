package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/vwconsorcio/consorcio-backend/internal/pkg/errors"
)

type APIError struct {
	Message string                `json:"message"`
	Code    string                `json:"code,omitempty"`
	Fields  []errs.FieldViolation `json:"fields,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

// RespondMessage answers with the {"message": ...} acknowledgement used by
// fire-and-forget endpoints.
func RespondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}
