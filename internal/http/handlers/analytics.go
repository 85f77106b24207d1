package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vwconsorcio/consorcio-backend/internal/domain/analytics"
	"github.com/vwconsorcio/consorcio-backend/internal/http/response"
	"github.com/vwconsorcio/consorcio-backend/internal/services"
)

type AnalyticsHandler struct {
	analytics services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analyticsService}
}

// POST /api/analytics/page-view
// Accepts a JSON body or ?page=&user_agent=&ip=. Missing agent and address are
// taken from the request itself.
func (h *AnalyticsHandler) LogPageView(c *gin.Context) {
	var in analytics.PageViewInput
	if !bindOptionalJSON(c, &in) {
		return
	}
	if in.Page == "" {
		in.Page = c.Query("page")
	}
	if in.UserAgent == "" {
		in.UserAgent = c.DefaultQuery("user_agent", c.Request.UserAgent())
	}
	if in.IP == "" {
		in.IP = c.DefaultQuery("ip", c.ClientIP())
	}
	if _, err := h.analytics.RecordPageView(c.Request.Context(), in); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondMessage(c, http.StatusOK, "Page view logged")
}

// POST /api/analytics/form-interaction
// form_type and action may come from the body or the query string; details only from the body.
func (h *AnalyticsHandler) LogFormInteraction(c *gin.Context) {
	var in analytics.FormInteractionInput
	if !bindOptionalJSON(c, &in) {
		return
	}
	if in.FormType == "" {
		in.FormType = c.Query("form_type")
	}
	if in.Action == "" {
		in.Action = c.Query("action")
	}
	if _, err := h.analytics.RecordFormInteraction(c.Request.Context(), in); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondMessage(c, http.StatusOK, "Form interaction logged")
}

// GET /api/analytics/dashboard
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	limit, ok := queryInt(c, "limit")
	if !ok {
		return
	}
	out, err := h.analytics.Dashboard(c.Request.Context(), limit)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, out)
}
