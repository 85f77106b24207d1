package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/vwconsorcio/consorcio-backend/internal/http/response"
	"github.com/vwconsorcio/consorcio-backend/internal/services"
)

type AdminHandler struct {
	auth services.AdminAuthService
}

func NewAdminHandler(authService services.AdminAuthService) *AdminHandler {
	return &AdminHandler{auth: authService}
}

// POST /api/admin/login
// body: { "password": "..." }
func (h *AdminHandler) Login(c *gin.Context) {
	var req struct {
		Password string `json:"password"`
	}
	if !bindJSON(c, &req) {
		return
	}
	tok, err := h.auth.Login(c.Request.Context(), req.Password)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"token":      tok.Token,
		"token_type": "Bearer",
		"expires_at": tok.ExpiresAt,
	})
}
