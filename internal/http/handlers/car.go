package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vwconsorcio/consorcio-backend/internal/domain/catalog"
	"github.com/vwconsorcio/consorcio-backend/internal/http/response"
	errs "github.com/vwconsorcio/consorcio-backend/internal/pkg/errors"
	"github.com/vwconsorcio/consorcio-backend/internal/platform/ctxutil"
	"github.com/vwconsorcio/consorcio-backend/internal/services"
)

type CarHandler struct {
	cars services.CarService
}

func NewCarHandler(carService services.CarService) *CarHandler {
	return &CarHandler{cars: carService}
}

// GET /api/cars
func (h *CarHandler) ListCars(c *gin.Context) {
	includeInactive, ok := includeHidden(c)
	if !ok {
		return
	}
	out, err := h.cars.List(c.Request.Context(), includeInactive)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /api/cars/:id
// Inactive cars are only visible to admin callers.
func (h *CarHandler) GetCar(c *gin.Context) {
	car, err := h.cars.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	if !car.IsActive && !ctxutil.IsAdmin(c.Request.Context()) {
		response.RespondServiceError(c, errs.ErrNotFound)
		return
	}
	response.RespondOK(c, car)
}

// POST /api/cars
func (h *CarHandler) CreateCar(c *gin.Context) {
	var in catalog.Input
	if !bindJSON(c, &in) {
		return
	}
	car, err := h.cars.Create(c.Request.Context(), in)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, car)
}

// PUT /api/cars/:id
func (h *CarHandler) UpdateCar(c *gin.Context) {
	var patch catalog.Patch
	if !bindJSON(c, &patch) {
		return
	}
	car, err := h.cars.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, car)
}

// DELETE /api/cars/:id
func (h *CarHandler) DeleteCar(c *gin.Context) {
	if err := h.cars.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondMessage(c, http.StatusOK, "Car deleted successfully")
}
