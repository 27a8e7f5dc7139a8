package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/backendac/actividades-api/internal/models"
	appErrors "github.com/backendac/actividades-api/pkg/errors"
)

type attendanceRepository interface {
	FindByID(ctx context.Context, id string) (*models.Attendance, error)
	ListByGroup(ctx context.Context, groupID string) ([]models.Attendance, error)
	ExistsForDate(ctx context.Context, userID, groupID string, date models.Date) (bool, error)
	CountDistinctDates(ctx context.Context, groupID string) (int, error)
	CountDistinctUserDates(ctx context.Context, userID, groupID string) (int, error)
	SummaryByGroup(ctx context.Context, groupID string) ([]models.AttendanceSummary, error)
	Create(ctx context.Context, attendance *models.Attendance) error
	Update(ctx context.Context, attendance *models.Attendance) error
	Delete(ctx context.Context, id string) error
}

// RecordAttendanceRequest marks presence for one user on one date.
type RecordAttendanceRequest struct {
	UserID  string `json:"usuario_id" validate:"required"`
	GroupID string `json:"grupo_id" validate:"required"`
	Date    string `json:"fecha" validate:"required"`
	Status  string `json:"estado" validate:"required"`
}

// AttendanceService manages per-date presence records and the attendance
// ratios the grade formula feeds on.
type AttendanceService struct {
	repo      attendanceRepository
	groups    groupReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAttendanceService constructs AttendanceService.
func NewAttendanceService(repo attendanceRepository, groups groupReader, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{repo: repo, groups: groups, validator: validate, logger: logger}
}

// ListByGroup returns the attendance records of a group.
func (s *AttendanceService) ListByGroup(ctx context.Context, groupID string) ([]models.Attendance, error) {
	records, err := s.repo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudieron listar las asistencias")
	}
	return records, nil
}

// Record stores a presence mark. A second record for the same user and date
// in the group answers as a duplicate.
func (s *AttendanceService) Record(ctx context.Context, req RecordAttendanceRequest) (*models.Attendance, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "datos de asistencia inválidos")
	}
	status := models.AttendanceStatus(req.Status)
	if !status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "estado de asistencia desconocido")
	}
	date, err := models.ParseDate(req.Date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "fecha inválida")
	}

	group, err := s.groups.FindByID(ctx, req.GroupID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "grupo no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo consultar el grupo")
	}
	if date.Before(group.DateStart.Time) || date.After(group.DateEnd.Time) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "la fecha queda fuera del periodo del grupo")
	}

	exists, err := s.repo.ExistsForDate(ctx, req.UserID, req.GroupID, date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo validar la asistencia")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrDuplicate, "ya existe asistencia para esa fecha")
	}

	attendance := &models.Attendance{
		UserID:  req.UserID,
		GroupID: req.GroupID,
		Date:    date,
		Status:  status,
	}
	if err := s.repo.Create(ctx, attendance); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo registrar la asistencia")
	}
	return attendance, nil
}

// UpdateStatus rewrites the status of an existing record.
func (s *AttendanceService) UpdateStatus(ctx context.Context, id string, status models.AttendanceStatus) (*models.Attendance, error) {
	if !status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "estado de asistencia desconocido")
	}
	attendance, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "asistencia no encontrada")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo consultar la asistencia")
	}
	attendance.Status = status
	if err := s.repo.Update(ctx, attendance); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo actualizar la asistencia")
	}
	return attendance, nil
}

// Delete removes an attendance record.
func (s *AttendanceService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "asistencia no encontrada")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo consultar la asistencia")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo eliminar la asistencia")
	}
	return nil
}

// Summary returns per-user attendance ratios for the group. The denominator
// is the number of distinct session dates recorded for the group; while no
// session has been recorded every ratio is zero.
func (s *AttendanceService) Summary(ctx context.Context, groupID string) ([]models.AttendanceSummary, error) {
	if _, err := s.groups.FindByID(ctx, groupID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "grupo no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo consultar el grupo")
	}

	total, err := s.repo.CountDistinctDates(ctx, groupID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudieron contar las sesiones")
	}
	summaries, err := s.repo.SummaryByGroup(ctx, groupID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo resumir la asistencia")
	}
	for i := range summaries {
		summaries[i].DatesTotal = total
		if total > 0 {
			summaries[i].Ratio = float64(summaries[i].DatesAttended) / float64(total)
		}
	}
	return summaries, nil
}

// Ratio computes one user's attendance ratio in the group. Zero sessions
// yield a ratio of zero, never a division error.
func (s *AttendanceService) Ratio(ctx context.Context, userID, groupID string) (float64, error) {
	total, err := s.repo.CountDistinctDates(ctx, groupID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudieron contar las sesiones")
	}
	if total == 0 {
		return 0, nil
	}
	attended, err := s.repo.CountDistinctUserDates(ctx, userID, groupID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo contar la asistencia")
	}
	return float64(attended) / float64(total), nil
}
