package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/backendac/actividades-api/internal/service"
	appErrors "github.com/backendac/actividades-api/pkg/errors"
	"github.com/backendac/actividades-api/pkg/response"
)

// ParticipationHandler exposes participation endpoints.
type ParticipationHandler struct {
	participation *service.ParticipationService
}

// NewParticipationHandler constructs ParticipationHandler.
func NewParticipationHandler(participation *service.ParticipationService) *ParticipationHandler {
	return &ParticipationHandler{participation: participation}
}

// ListByGroup godoc
// @Summary Listar participaciones de un grupo
// @Tags Participaciones
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de grupo"
// @Success 200 {object} response.Envelope
// @Router /grupos/{id}/participaciones [get]
func (h *ParticipationHandler) ListByGroup(c *gin.Context) {
	records, err := h.participation.ListByGroup(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "participaciones listadas", records)
}

// Create godoc
// @Summary Registrar participación
// @Tags Participaciones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.ParticipationRequest true "Datos de participación"
// @Success 201 {object} response.Envelope
// @Router /participaciones [post]
func (h *ParticipationHandler) Create(c *gin.Context) {
	var req service.ParticipationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "cuerpo de petición inválido"))
		return
	}
	participation, err := h.participation.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "participación registrada", participation)
}

// Update godoc
// @Summary Actualizar participación
// @Tags Participaciones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de participación"
// @Param payload body service.ParticipationRequest true "Datos de participación"
// @Success 200 {object} response.Envelope
// @Router /participaciones/{id} [put]
func (h *ParticipationHandler) Update(c *gin.Context) {
	var req service.ParticipationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "cuerpo de petición inválido"))
		return
	}
	participation, err := h.participation.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "participación actualizada", participation)
}

// Delete godoc
// @Summary Eliminar participación
// @Tags Participaciones
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de participación"
// @Success 200 {object} response.Envelope
// @Router /participaciones/{id} [delete]
func (h *ParticipationHandler) Delete(c *gin.Context) {
	if err := h.participation.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "participación eliminada", nil)
}
