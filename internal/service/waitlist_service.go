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

type waitlistEnrollmentReader interface {
	ExistsForActivity(ctx context.Context, userID, activityID string) (bool, error)
}

// JoinWaitlistRequest asks for a place on an activity's waitlist.
type JoinWaitlistRequest struct {
	UserID     string `json:"usuario_id" validate:"required"`
	ActivityID string `json:"actividad_id" validate:"required"`
}

// WaitlistService manages the per-activity waiting lists.
type WaitlistService struct {
	repo        waitlistRepository
	enrollments waitlistEnrollmentReader
	activities  activityReader
	users       userReader
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewWaitlistService constructs WaitlistService.
func NewWaitlistService(repo waitlistRepository, enrollments waitlistEnrollmentReader, activities activityReader, users userReader, validate *validator.Validate, logger *zap.Logger) *WaitlistService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WaitlistService{repo: repo, enrollments: enrollments, activities: activities, users: users, validator: validate, logger: logger}
}

// ListByActivity returns the activity's waitlist in arrival order.
func (s *WaitlistService) ListByActivity(ctx context.Context, activityID string) ([]models.WaitlistEntry, error) {
	entries, err := s.repo.ListByActivity(ctx, activityID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo listar la lista de espera")
	}
	return entries, nil
}

// ListByUser returns the user's waitlist entries.
func (s *WaitlistService) ListByUser(ctx context.Context, userID string) ([]models.WaitlistEntry, error) {
	entries, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo listar la lista de espera")
	}
	return entries, nil
}

// Join appends the user to the activity's waitlist. Users already seated in
// a group of the activity, or already waiting, are rejected as duplicates.
func (s *WaitlistService) Join(ctx context.Context, req JoinWaitlistRequest) (*models.WaitlistEntry, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "datos de lista de espera inválidos")
	}

	if _, err := s.users.FindByID(ctx, req.UserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "usuario no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo consultar el usuario")
	}
	if _, err := s.activities.FindByID(ctx, req.ActivityID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "actividad no encontrada")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo consultar la actividad")
	}

	waiting, err := s.repo.Exists(ctx, req.UserID, req.ActivityID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo validar la lista de espera")
	}
	if waiting {
		return nil, appErrors.Clone(appErrors.ErrAlreadyWaitlisted, "")
	}
	seated, err := s.enrollments.ExistsForActivity(ctx, req.UserID, req.ActivityID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo validar la inscripción")
	}
	if seated {
		return nil, appErrors.Clone(appErrors.ErrAlreadyEnrolled, "el usuario ya está inscrito en un grupo de la actividad")
	}

	entry := &models.WaitlistEntry{
		UserID:       req.UserID,
		ActivityID:   req.ActivityID,
		RegisteredAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo registrar en la lista de espera")
	}
	return entry, nil
}

// Leave removes a waitlist entry.
func (s *WaitlistService) Leave(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "registro de lista de espera no encontrado")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo consultar la lista de espera")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo eliminar el registro")
	}
	return nil
}
