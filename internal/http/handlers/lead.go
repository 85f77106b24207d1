package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vwconsorcio/consorcio-backend/internal/domain/leads"
	"github.com/vwconsorcio/consorcio-backend/internal/http/response"
	"github.com/vwconsorcio/consorcio-backend/internal/services"
)

type LeadHandler struct {
	leads     services.LeadService
	analytics services.AnalyticsService
}

func NewLeadHandler(leadService services.LeadService, analyticsService services.AnalyticsService) *LeadHandler {
	return &LeadHandler{leads: leadService, analytics: analyticsService}
}

// POST /api/leads
func (h *LeadHandler) CreateLead(c *gin.Context) {
	var in leads.CreateInput
	if !bindJSON(c, &in) {
		return
	}
	lead, err := h.leads.Create(c.Request.Context(), in)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, lead)
}

// GET /api/leads
func (h *LeadHandler) ListLeads(c *gin.Context) {
	out, err := h.leads.List(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// PUT /api/leads/:id
// body: partial lead; ?status= is accepted on its own for older clients.
func (h *LeadHandler) UpdateLead(c *gin.Context) {
	var patch leads.Patch
	if !bindOptionalJSON(c, &patch) {
		return
	}
	if status, ok := c.GetQuery("status"); ok && patch.Status == nil {
		status = strings.TrimSpace(status)
		patch.Status = &status
	}
	lead, err := h.leads.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

// GET /api/leads/stats
func (h *LeadHandler) LeadStats(c *gin.Context) {
	stats, err := h.analytics.LeadStats(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, stats)
}
