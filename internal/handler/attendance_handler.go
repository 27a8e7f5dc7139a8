package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/backendac/actividades-api/internal/models"
	"github.com/backendac/actividades-api/internal/service"
	appErrors "github.com/backendac/actividades-api/pkg/errors"
	"github.com/backendac/actividades-api/pkg/response"
)

// AttendanceHandler exposes attendance endpoints.
type AttendanceHandler struct {
	attendance *service.AttendanceService
}

// NewAttendanceHandler constructs AttendanceHandler.
func NewAttendanceHandler(attendance *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

type updateAttendanceRequest struct {
	Status string `json:"estado" binding:"required"`
}

// ListByGroup godoc
// @Summary Listar asistencias de un grupo
// @Tags Asistencias
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de grupo"
// @Success 200 {object} response.Envelope
// @Router /grupos/{id}/asistencias [get]
func (h *AttendanceHandler) ListByGroup(c *gin.Context) {
	records, err := h.attendance.ListByGroup(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "asistencias listadas", records)
}

// Summary godoc
// @Summary Resumen de asistencia por usuario
// @Tags Asistencias
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de grupo"
// @Success 200 {object} response.Envelope
// @Router /grupos/{id}/asistencias/resumen [get]
func (h *AttendanceHandler) Summary(c *gin.Context) {
	summaries, err := h.attendance.Summary(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "resumen de asistencia", summaries)
}

// Record godoc
// @Summary Registrar asistencia
// @Tags Asistencias
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.RecordAttendanceRequest true "Datos de asistencia"
// @Success 201 {object} response.Envelope
// @Router /asistencias [post]
func (h *AttendanceHandler) Record(c *gin.Context) {
	var req service.RecordAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "cuerpo de petición inválido"))
		return
	}
	attendance, err := h.attendance.Record(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "asistencia registrada", attendance)
}

// Update godoc
// @Summary Actualizar asistencia
// @Tags Asistencias
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de asistencia"
// @Param payload body updateAttendanceRequest true "Nuevo estado"
// @Success 200 {object} response.Envelope
// @Router /asistencias/{id} [put]
func (h *AttendanceHandler) Update(c *gin.Context) {
	var req updateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "cuerpo de petición inválido"))
		return
	}
	attendance, err := h.attendance.UpdateStatus(c.Request.Context(), c.Param("id"), models.AttendanceStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "asistencia actualizada", attendance)
}

// Delete godoc
// @Summary Eliminar asistencia
// @Tags Asistencias
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de asistencia"
// @Success 200 {object} response.Envelope
// @Router /asistencias/{id} [delete]
func (h *AttendanceHandler) Delete(c *gin.Context) {
	if err := h.attendance.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "asistencia eliminada", nil)
}
