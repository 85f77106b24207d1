package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/vwconsorcio/consorcio-backend/internal/domain/content"
	"github.com/vwconsorcio/consorcio-backend/internal/http/response"
	"github.com/vwconsorcio/consorcio-backend/internal/services"
)

type TestimonialHandler struct {
	testimonials services.TestimonialService
}

func NewTestimonialHandler(testimonialService services.TestimonialService) *TestimonialHandler {
	return &TestimonialHandler{testimonials: testimonialService}
}

// GET /api/testimonials
func (h *TestimonialHandler) ListTestimonials(c *gin.Context) {
	includeInactive, ok := includeHidden(c)
	if !ok {
		return
	}
	out, err := h.testimonials.List(c.Request.Context(), includeInactive)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// POST /api/testimonials
func (h *TestimonialHandler) CreateTestimonial(c *gin.Context) {
	var in content.TestimonialInput
	if !bindJSON(c, &in) {
		return
	}
	t, err := h.testimonials.Create(c.Request.Context(), in)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, t)
}

// PUT /api/testimonials/:id
func (h *TestimonialHandler) UpdateTestimonial(c *gin.Context) {
	var patch content.TestimonialPatch
	if !bindJSON(c, &patch) {
		return
	}
	t, err := h.testimonials.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, t)
}
