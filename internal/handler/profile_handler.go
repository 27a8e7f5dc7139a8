package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/backendac/actividades-api/internal/service"
	appErrors "github.com/backendac/actividades-api/pkg/errors"
	"github.com/backendac/actividades-api/pkg/response"
)

// ProfileHandler exposes profile endpoints nested under users.
type ProfileHandler struct {
	profiles *service.ProfileService
}

// NewProfileHandler constructs ProfileHandler.
func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Get godoc
// @Summary Consultar perfil
// @Tags Perfiles
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de usuario"
// @Success 200 {object} response.Envelope
// @Router /usuarios/{id}/perfil [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.profiles.GetByUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "perfil consultado", profile)
}

// Upsert godoc
// @Summary Crear o actualizar perfil
// @Tags Perfiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de usuario"
// @Param payload body service.UpsertProfileRequest true "Datos de perfil"
// @Success 200 {object} response.Envelope
// @Router /usuarios/{id}/perfil [put]
func (h *ProfileHandler) Upsert(c *gin.Context) {
	var req service.UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "cuerpo de petición inválido"))
		return
	}
	profile, err := h.profiles.Upsert(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "perfil guardado", profile)
}

// Delete godoc
// @Summary Eliminar perfil
// @Tags Perfiles
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de usuario"
// @Success 200 {object} response.Envelope
// @Router /usuarios/{id}/perfil [delete]
func (h *ProfileHandler) Delete(c *gin.Context) {
	if err := h.profiles.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "perfil eliminado", nil)
}
