package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/vwconsorcio/consorcio-backend/internal/domain/analytics"
	"github.com/vwconsorcio/consorcio-backend/internal/http/response"
	"github.com/vwconsorcio/consorcio-backend/internal/services"
)

type StatusHandler struct {
	status services.StatusService
}

func NewStatusHandler(statusService services.StatusService) *StatusHandler {
	return &StatusHandler{status: statusService}
}

// POST /api/status
func (h *StatusHandler) CreateStatusCheck(c *gin.Context) {
	var in analytics.StatusCheckInput
	if !bindJSON(c, &in) {
		return
	}
	out, err := h.status.Create(c.Request.Context(), in)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /api/status
func (h *StatusHandler) ListStatusChecks(c *gin.Context) {
	out, err := h.status.List(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, out)
}
