package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/backendac/actividades-api/internal/service"
	appErrors "github.com/backendac/actividades-api/pkg/errors"
	"github.com/backendac/actividades-api/pkg/response"
)

// ActivityHandler exposes activity endpoints.
type ActivityHandler struct {
	activities *service.ActivityService
	groups     *service.GroupService
}

// NewActivityHandler constructs ActivityHandler.
func NewActivityHandler(activities *service.ActivityService, groups *service.GroupService) *ActivityHandler {
	return &ActivityHandler{activities: activities, groups: groups}
}

// List godoc
// @Summary Listar actividades
// @Tags Actividades
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /actividades [get]
func (h *ActivityHandler) List(c *gin.Context) {
	activities, err := h.activities.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "actividades listadas", activities)
}

// Get godoc
// @Summary Consultar actividad
// @Tags Actividades
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de actividad"
// @Success 200 {object} response.Envelope
// @Router /actividades/{id} [get]
func (h *ActivityHandler) Get(c *gin.Context) {
	activity, err := h.activities.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "actividad consultada", activity)
}

// Groups godoc
// @Summary Listar grupos de una actividad
// @Tags Actividades
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de actividad"
// @Success 200 {object} response.Envelope
// @Router /actividades/{id}/grupos [get]
func (h *ActivityHandler) Groups(c *gin.Context) {
	groups, err := h.groups.ListByActivity(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "grupos listados", groups)
}

// Create godoc
// @Summary Crear actividad
// @Tags Actividades
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.ActivityRequest true "Datos de actividad"
// @Success 201 {object} response.Envelope
// @Router /actividades [post]
func (h *ActivityHandler) Create(c *gin.Context) {
	var req service.ActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "cuerpo de petición inválido"))
		return
	}
	activity, err := h.activities.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "actividad creada", activity)
}

// Update godoc
// @Summary Actualizar actividad
// @Tags Actividades
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de actividad"
// @Param payload body service.ActivityRequest true "Datos de actividad"
// @Success 200 {object} response.Envelope
// @Router /actividades/{id} [put]
func (h *ActivityHandler) Update(c *gin.Context) {
	var req service.ActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "cuerpo de petición inválido"))
		return
	}
	activity, err := h.activities.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "actividad actualizada", activity)
}

// Delete godoc
// @Summary Eliminar actividad
// @Tags Actividades
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de actividad"
// @Success 200 {object} response.Envelope
// @Router /actividades/{id} [delete]
func (h *ActivityHandler) Delete(c *gin.Context) {
	if err := h.activities.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "actividad eliminada", nil)
}
