package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/backendac/actividades-api/internal/models"
	"github.com/backendac/actividades-api/internal/service"
	appErrors "github.com/backendac/actividades-api/pkg/errors"
	"github.com/backendac/actividades-api/pkg/response"
)

// EnrollmentHandler exposes admission endpoints.
type EnrollmentHandler struct {
	enrollments *service.EnrollmentService
	metrics     *service.MetricsService
}

// NewEnrollmentHandler constructs EnrollmentHandler.
func NewEnrollmentHandler(enrollments *service.EnrollmentService, metrics *service.MetricsService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments, metrics: metrics}
}

// ListByGroup godoc
// @Summary Listar inscripciones de un grupo
// @Tags Inscripciones
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de grupo"
// @Success 200 {object} response.Envelope
// @Router /grupos/{id}/inscripciones [get]
func (h *EnrollmentHandler) ListByGroup(c *gin.Context) {
	enrollments, err := h.enrollments.ListByGroup(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "inscripciones listadas", enrollments)
}

// ListByUser godoc
// @Summary Listar inscripciones de un usuario
// @Tags Inscripciones
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de usuario"
// @Success 200 {object} response.Envelope
// @Router /usuarios/{id}/inscripciones [get]
func (h *EnrollmentHandler) ListByUser(c *gin.Context) {
	enrollments, err := h.enrollments.ListByUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "inscripciones listadas", enrollments)
}

// Admit godoc
// @Summary Solicitar inscripción
// @Tags Inscripciones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.AdmitRequest true "Solicitud de inscripción"
// @Success 201 {object} response.Envelope
// @Router /inscripciones [post]
func (h *EnrollmentHandler) Admit(c *gin.Context) {
	var req service.AdmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "cuerpo de petición inválido"))
		return
	}
	result, err := h.enrollments.Admit(c.Request.Context(), req)
	if err != nil {
		h.metrics.RecordAdmission("rechazado")
		response.Error(c, err)
		return
	}
	h.metrics.RecordAdmission(string(result.Outcome))
	if result.Outcome == models.AdmissionEnrolled {
		response.Created(c, "usuario inscrito", result)
		return
	}
	response.Created(c, "usuario en lista de espera", result)
}

// Delete godoc
// @Summary Eliminar inscripción
// @Tags Inscripciones
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de inscripción"
// @Success 200 {object} response.Envelope
// @Router /inscripciones/{id} [delete]
func (h *EnrollmentHandler) Delete(c *gin.Context) {
	enrollment, err := h.enrollments.Remove(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "inscripción eliminada", enrollment)
}
