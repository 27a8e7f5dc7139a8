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

type activityRepository interface {
	List(ctx context.Context) ([]models.Activity, error)
	FindByID(ctx context.Context, id string) (*models.Activity, error)
	ExistsName(ctx context.Context, name, excludeID string) (bool, error)
	Create(ctx context.Context, activity *models.Activity) error
	Update(ctx context.Context, activity *models.Activity) error
	Delete(ctx context.Context, id string) error
}

// ActivityRequest carries activity creation or update data.
type ActivityRequest struct {
	Name        string  `json:"nombre" validate:"required"`
	Description string  `json:"descripcion"`
	DateStart   *string `json:"fecha_inicio"`
	DateEnd     *string `json:"fecha_fin"`
	Capacity    *int    `json:"capacidad" validate:"omitempty,gt=0"`
}

// ActivityService manages the activity catalogue.
type ActivityService struct {
	repo      activityRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewActivityService constructs ActivityService.
func NewActivityService(repo activityRepository, validate *validator.Validate, logger *zap.Logger) *ActivityService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityService{repo: repo, validator: validate, logger: logger}
}

// List returns all activities.
func (s *ActivityService) List(ctx context.Context) ([]models.Activity, error) {
	activities, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudieron listar las actividades")
	}
	return activities, nil
}

// Get returns an activity by id.
func (s *ActivityService) Get(ctx context.Context, id string) (*models.Activity, error) {
	activity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "actividad no encontrada")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo consultar la actividad")
	}
	return activity, nil
}

// Create registers a new activity. The name stays unique across the
// catalogue; a repeat answers as a duplicate.
func (s *ActivityService) Create(ctx context.Context, req ActivityRequest) (*models.Activity, error) {
	activity, err := s.buildActivity(req)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsName(ctx, activity.Name, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo validar el nombre")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrDuplicate, "ya existe una actividad con ese nombre")
	}

	if err := s.repo.Create(ctx, activity); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo crear la actividad")
	}
	return activity, nil
}

// Update modifies an existing activity. The uniqueness check skips the
// activity's own row so saving without renaming keeps working.
func (s *ActivityService) Update(ctx context.Context, id string, req ActivityRequest) (*models.Activity, error) {
	updated, err := s.buildActivity(req)
	if err != nil {
		return nil, err
	}

	activity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "actividad no encontrada")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo consultar la actividad")
	}

	exists, err := s.repo.ExistsName(ctx, updated.Name, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo validar el nombre")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrDuplicate, "ya existe una actividad con ese nombre")
	}

	activity.Name = updated.Name
	activity.Description = updated.Description
	activity.DateStart = updated.DateStart
	activity.DateEnd = updated.DateEnd
	activity.Capacity = updated.Capacity
	if err := s.repo.Update(ctx, activity); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo actualizar la actividad")
	}
	return activity, nil
}

// Delete removes an activity by id.
func (s *ActivityService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "actividad no encontrada")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo consultar la actividad")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo eliminar la actividad")
	}
	return nil
}

func (s *ActivityService) buildActivity(req ActivityRequest) (*models.Activity, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "datos de actividad inválidos")
	}

	activity := &models.Activity{
		Name:        req.Name,
		Description: req.Description,
		Capacity:    req.Capacity,
	}

	if req.DateStart != nil {
		start, err := models.ParseDate(*req.DateStart)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "fecha_inicio inválida")
		}
		activity.DateStart = &start
	}
	if req.DateEnd != nil {
		end, err := models.ParseDate(*req.DateEnd)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "fecha_fin inválida")
		}
		activity.DateEnd = &end
	}
	if activity.DateStart != nil && activity.DateEnd != nil && activity.DateEnd.Before(activity.DateStart.Time) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "la fecha final precede a la inicial")
	}
	return activity, nil
}
