package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/backendac/actividades-api/internal/models"
	appErrors "github.com/backendac/actividades-api/pkg/errors"
)

type enrollmentRepository interface {
	FindByID(ctx context.Context, id string) (*models.Enrollment, error)
	ListByGroup(ctx context.Context, groupID string) ([]models.EnrollmentDetail, error)
	ListByUser(ctx context.Context, userID string) ([]models.EnrollmentDetail, error)
	CountEnrolled(ctx context.Context, groupID string) (int, error)
	ExistsForGroup(ctx context.Context, userID, groupID string) (bool, error)
	ExistsForActivity(ctx context.Context, userID, activityID string) (bool, error)
	CreateIfCapacity(ctx context.Context, enrollment *models.Enrollment) (bool, error)
	Delete(ctx context.Context, id string) error
}

type waitlistRepository interface {
	FindByID(ctx context.Context, id string) (*models.WaitlistEntry, error)
	ListByActivity(ctx context.Context, activityID string) ([]models.WaitlistEntry, error)
	ListByUser(ctx context.Context, userID string) ([]models.WaitlistEntry, error)
	Exists(ctx context.Context, userID, activityID string) (bool, error)
	FindOldestByActivity(ctx context.Context, activityID string) (*models.WaitlistEntry, error)
	Create(ctx context.Context, entry *models.WaitlistEntry) error
	Delete(ctx context.Context, id string) error
}

type groupReader interface {
	FindByID(ctx context.Context, id string) (*models.Group, error)
}

// AdmitRequest asks for a seat in a group.
type AdmitRequest struct {
	UserID  string `json:"usuario_id" validate:"required"`
	GroupID string `json:"grupo_id" validate:"required"`
}

// EnrollmentService runs the admission workflow: a user either takes a seat
// in the group or falls to the activity's waitlist when the group is full.
// Removing an enrolled user frees the seat for the longest-waiting entry.
type EnrollmentService struct {
	repo      enrollmentRepository
	waitlist  waitlistRepository
	groups    groupReader
	users     userReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEnrollmentService constructs EnrollmentService.
func NewEnrollmentService(repo enrollmentRepository, waitlist waitlistRepository, groups groupReader, users userReader, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{repo: repo, waitlist: waitlist, groups: groups, users: users, validator: validate, logger: logger}
}

// ListByGroup returns the enrollments of a group.
func (s *EnrollmentService) ListByGroup(ctx context.Context, groupID string) ([]models.EnrollmentDetail, error) {
	enrollments, err := s.repo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudieron listar las inscripciones")
	}
	return enrollments, nil
}

// ListByUser returns the enrollments of a user.
func (s *EnrollmentService) ListByUser(ctx context.Context, userID string) ([]models.EnrollmentDetail, error) {
	enrollments, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudieron listar las inscripciones")
	}
	return enrollments, nil
}

// Admit enrolls the user into the group or parks them on the activity's
// waitlist when the group has no space left. A user already seated in any
// group of the activity, or already waiting for it, is rejected as a
// duplicate before capacity is consulted.
func (s *EnrollmentService) Admit(ctx context.Context, req AdmitRequest) (*models.AdmissionResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "datos de inscripción inválidos")
	}

	user, err := s.users.FindByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "usuario no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo consultar el usuario")
	}
	if !user.Active {
		return nil, appErrors.Clone(appErrors.ErrValidation, "la cuenta está inactiva")
	}
	if !user.Role.Can(models.CapJoinGroups) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "el rol del usuario no permite inscribirse")
	}

	group, err := s.groups.FindByID(ctx, req.GroupID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "grupo no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo consultar el grupo")
	}

	duplicate, err := s.repo.ExistsForGroup(ctx, req.UserID, req.GroupID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo validar la inscripción")
	}
	if duplicate {
		return nil, appErrors.Clone(appErrors.ErrAlreadyEnrolled, "")
	}
	seated, err := s.repo.ExistsForActivity(ctx, req.UserID, group.ActivityID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo validar la inscripción")
	}
	if seated {
		return nil, appErrors.Clone(appErrors.ErrAlreadyEnrolled, "el usuario ya está inscrito en otro grupo de la actividad")
	}
	waiting, err := s.waitlist.Exists(ctx, req.UserID, group.ActivityID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo validar la lista de espera")
	}
	if waiting {
		return nil, appErrors.Clone(appErrors.ErrAlreadyWaitlisted, "")
	}

	enrollment := &models.Enrollment{
		UserID:  req.UserID,
		GroupID: req.GroupID,
	}
	created, err := s.repo.CreateIfCapacity(ctx, enrollment)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo registrar la inscripción")
	}
	if created {
		return &models.AdmissionResult{Outcome: models.AdmissionEnrolled, Enrollment: enrollment}, nil
	}

	entry := &models.WaitlistEntry{
		UserID:       req.UserID,
		ActivityID:   group.ActivityID,
		RegisteredAt: time.Now().UTC(),
	}
	if err := s.waitlist.Create(ctx, entry); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo registrar en la lista de espera")
	}
	s.logger.Info("grupo lleno, usuario enviado a lista de espera",
		zap.String("usuario_id", req.UserID),
		zap.String("grupo_id", req.GroupID),
		zap.String("actividad_id", group.ActivityID))
	return &models.AdmissionResult{Outcome: models.AdmissionWaitlisted, WaitlistEntry: entry}, nil
}

// Remove deletes an enrollment. When the removed user held a seat, the freed
// seat is offered to the longest-waiting entry of the activity.
func (s *EnrollmentService) Remove(ctx context.Context, id string) (*models.Enrollment, error) {
	enrollment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "inscripción no encontrada")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo consultar la inscripción")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo eliminar la inscripción")
	}

	if enrollment.Status == models.EnrollmentStatusEnrolled {
		promoted, err := s.promoteNext(ctx, enrollment.GroupID)
		if err != nil {
			s.logger.Warn("no se pudo promover desde la lista de espera", zap.String("grupo_id", enrollment.GroupID), zap.Error(err))
		} else if promoted != nil {
			s.logger.Info("usuario promovido desde la lista de espera",
				zap.String("usuario_id", promoted.UserID),
				zap.String("grupo_id", enrollment.GroupID))
		}
	}
	return enrollment, nil
}

// promoteNext seats the longest-waiting entry of the group's activity into
// the group, keeping arrival order. The entry stays on the list when the
// group filled up again in the meantime.
func (s *EnrollmentService) promoteNext(ctx context.Context, groupID string) (*models.Enrollment, error) {
	group, err := s.groups.FindByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	entry, err := s.waitlist.FindOldestByActivity(ctx, group.ActivityID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, nil
	}

	enrollment := &models.Enrollment{
		UserID:  entry.UserID,
		GroupID: groupID,
	}
	created, err := s.repo.CreateIfCapacity(ctx, enrollment)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, nil
	}
	if err := s.waitlist.Delete(ctx, entry.ID); err != nil {
		return nil, err
	}
	return enrollment, nil
}
