package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/backendac/actividades-api/internal/service"
	appErrors "github.com/backendac/actividades-api/pkg/errors"
	"github.com/backendac/actividades-api/pkg/response"
)

// EvaluationHandler exposes evaluation endpoints.
type EvaluationHandler struct {
	evaluations *service.EvaluationService
}

// NewEvaluationHandler constructs EvaluationHandler.
func NewEvaluationHandler(evaluations *service.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{evaluations: evaluations}
}

// ListByGroup godoc
// @Summary Listar evaluaciones de un grupo
// @Tags Evaluaciones
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de grupo"
// @Success 200 {object} response.Envelope
// @Router /grupos/{id}/evaluaciones [get]
func (h *EvaluationHandler) ListByGroup(c *gin.Context) {
	evaluations, err := h.evaluations.ListByGroup(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "evaluaciones listadas", evaluations)
}

// Upsert godoc
// @Summary Registrar o actualizar evaluación
// @Tags Evaluaciones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.EvaluationRequest true "Datos de evaluación"
// @Success 200 {object} response.Envelope
// @Router /evaluaciones [post]
func (h *EvaluationHandler) Upsert(c *gin.Context) {
	var req service.EvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "cuerpo de petición inválido"))
		return
	}
	evaluation, err := h.evaluations.Upsert(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "evaluación guardada", evaluation)
}

// Delete godoc
// @Summary Eliminar evaluación
// @Tags Evaluaciones
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de evaluación"
// @Success 200 {object} response.Envelope
// @Router /evaluaciones/{id} [delete]
func (h *EvaluationHandler) Delete(c *gin.Context) {
	if err := h.evaluations.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "evaluación eliminada", nil)
}

// Export godoc
// @Summary Exportar evaluaciones de un grupo
// @Tags Evaluaciones
// @Produce octet-stream
// @Security BearerAuth
// @Param id path string true "ID de grupo"
// @Param formato query string false "csv o pdf" default(csv)
// @Success 200 {file} binary
// @Router /grupos/{id}/evaluaciones/exportar [get]
func (h *EvaluationHandler) Export(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("formato", "csv"))
	payload, contentType, err := h.evaluations.Export(c.Request.Context(), c.Param("id"), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	filename := fmt.Sprintf("evaluaciones-%s.%s", c.Param("id"), format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, payload)
}
