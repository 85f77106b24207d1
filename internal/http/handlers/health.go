package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	apiBanner  = "Volkswagen Consortium API - Running!"
	apiVersion = "1.0.0"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// GET /api/
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": apiBanner, "version": apiVersion})
}
