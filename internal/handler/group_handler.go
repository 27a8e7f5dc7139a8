package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/backendac/actividades-api/internal/middleware"
	"github.com/backendac/actividades-api/internal/service"
	appErrors "github.com/backendac/actividades-api/pkg/errors"
	"github.com/backendac/actividades-api/pkg/response"
)

// GroupHandler exposes group endpoints.
type GroupHandler struct {
	groups *service.GroupService
}

// NewGroupHandler constructs GroupHandler.
func NewGroupHandler(groups *service.GroupService) *GroupHandler {
	return &GroupHandler{groups: groups}
}

// List godoc
// @Summary Listar grupos
// @Tags Grupos
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /grupos [get]
func (h *GroupHandler) List(c *gin.Context) {
	groups, err := h.groups.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "grupos listados", groups)
}

// Get godoc
// @Summary Consultar grupo
// @Tags Grupos
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de grupo"
// @Success 200 {object} response.Envelope
// @Router /grupos/{id} [get]
func (h *GroupHandler) Get(c *gin.Context) {
	group, err := h.groups.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "grupo consultado", group)
}

// Create godoc
// @Summary Crear grupo
// @Tags Grupos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.GroupRequest true "Datos de grupo"
// @Success 201 {object} response.Envelope
// @Router /grupos [post]
func (h *GroupHandler) Create(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.GroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "cuerpo de petición inválido"))
		return
	}
	group, err := h.groups.Create(c.Request.Context(), claims.Role, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "grupo creado", group)
}

// Update godoc
// @Summary Actualizar grupo
// @Tags Grupos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de grupo"
// @Param payload body service.GroupRequest true "Datos de grupo"
// @Success 200 {object} response.Envelope
// @Router /grupos/{id} [put]
func (h *GroupHandler) Update(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.GroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "cuerpo de petición inválido"))
		return
	}
	group, err := h.groups.Update(c.Request.Context(), claims.Role, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "grupo actualizado", group)
}

// Delete godoc
// @Summary Eliminar grupo
// @Tags Grupos
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de grupo"
// @Success 200 {object} response.Envelope
// @Router /grupos/{id} [delete]
func (h *GroupHandler) Delete(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.groups.Delete(c.Request.Context(), claims.Role, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "grupo eliminado", nil)
}
