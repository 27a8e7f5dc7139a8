package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/backendac/actividades-api/internal/service"
	"github.com/backendac/actividades-api/pkg/response"
)

// RoleHandler exposes the role catalogue.
type RoleHandler struct {
	roles *service.RoleService
}

// NewRoleHandler constructs RoleHandler.
func NewRoleHandler(roles *service.RoleService) *RoleHandler {
	return &RoleHandler{roles: roles}
}

// List godoc
// @Summary Listar roles
// @Tags Roles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /roles [get]
func (h *RoleHandler) List(c *gin.Context) {
	roles, err := h.roles.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "roles listados", roles)
}

// Get godoc
// @Summary Consultar rol
// @Tags Roles
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de rol"
// @Success 200 {object} response.Envelope
// @Router /roles/{id} [get]
func (h *RoleHandler) Get(c *gin.Context) {
	role, err := h.roles.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "rol consultado", role)
}
