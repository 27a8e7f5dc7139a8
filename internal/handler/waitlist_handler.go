package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/backendac/actividades-api/internal/service"
	appErrors "github.com/backendac/actividades-api/pkg/errors"
	"github.com/backendac/actividades-api/pkg/response"
)

// WaitlistHandler exposes waitlist endpoints.
type WaitlistHandler struct {
	waitlist *service.WaitlistService
}

// NewWaitlistHandler constructs WaitlistHandler.
func NewWaitlistHandler(waitlist *service.WaitlistService) *WaitlistHandler {
	return &WaitlistHandler{waitlist: waitlist}
}

// ListByActivity godoc
// @Summary Listar lista de espera de una actividad
// @Tags ListaEspera
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de actividad"
// @Success 200 {object} response.Envelope
// @Router /actividades/{id}/lista-espera [get]
func (h *WaitlistHandler) ListByActivity(c *gin.Context) {
	entries, err := h.waitlist.ListByActivity(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "lista de espera consultada", entries)
}

// ListByUser godoc
// @Summary Listar registros de espera de un usuario
// @Tags ListaEspera
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de usuario"
// @Success 200 {object} response.Envelope
// @Router /usuarios/{id}/lista-espera [get]
func (h *WaitlistHandler) ListByUser(c *gin.Context) {
	entries, err := h.waitlist.ListByUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "lista de espera consultada", entries)
}

// Join godoc
// @Summary Unirse a la lista de espera
// @Tags ListaEspera
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.JoinWaitlistRequest true "Solicitud de espera"
// @Success 201 {object} response.Envelope
// @Router /lista-espera [post]
func (h *WaitlistHandler) Join(c *gin.Context) {
	var req service.JoinWaitlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "cuerpo de petición inválido"))
		return
	}
	entry, err := h.waitlist.Join(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "registrado en lista de espera", entry)
}

// Leave godoc
// @Summary Salir de la lista de espera
// @Tags ListaEspera
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de registro"
// @Success 200 {object} response.Envelope
// @Router /lista-espera/{id} [delete]
func (h *WaitlistHandler) Leave(c *gin.Context) {
	if err := h.waitlist.Leave(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "registro eliminado", nil)
}
