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

type groupRepository interface {
	List(ctx context.Context) ([]models.GroupDetail, error)
	ListByActivity(ctx context.Context, activityID string) ([]models.Group, error)
	FindByID(ctx context.Context, id string) (*models.Group, error)
	FindDetailByID(ctx context.Context, id string) (*models.GroupDetail, error)
	FindOverlapping(ctx context.Context, location string, dateStart, dateEnd models.Date, excludeID string) ([]models.Group, error)
	Create(ctx context.Context, group *models.Group) error
	Update(ctx context.Context, group *models.Group) error
	Delete(ctx context.Context, id string) error
}

type activityReader interface {
	FindByID(ctx context.Context, id string) (*models.Activity, error)
}

// GroupConfig bounds group creation.
type GroupConfig struct {
	CapacityMax  int
	ManagerRoles []string
}

// GroupRequest carries group creation or update data.
type GroupRequest struct {
	ActivityID    string `json:"actividad_id" validate:"required"`
	ResponsibleID string `json:"responsable_id" validate:"required"`
	Location      string `json:"ubicacion" validate:"required"`
	DateStart     string `json:"fecha_inicio" validate:"required"`
	DateEnd       string `json:"fecha_fin" validate:"required"`
	TimeStart     string `json:"hora_inicio" validate:"required"`
	TimeEnd       string `json:"hora_fin" validate:"required"`
	Capacity      int    `json:"capacidad" validate:"required,gt=0"`
}

// GroupService manages scheduled groups. Creation and update run the same
// gauntlet: manager role, existing activity and responsible, coherent dates
// and times, no schedule clash at the same location, and capacity under the
// ceiling, failing on the first rule broken.
type GroupService struct {
	repo       groupRepository
	activities activityReader
	users      userReader
	validator  *validator.Validate
	logger     *zap.Logger
	config     GroupConfig
}

// NewGroupService constructs GroupService.
func NewGroupService(repo groupRepository, activities activityReader, users userReader, validate *validator.Validate, logger *zap.Logger, config GroupConfig) *GroupService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.CapacityMax <= 0 {
		config.CapacityMax = 50
	}
	return &GroupService{repo: repo, activities: activities, users: users, validator: validate, logger: logger, config: config}
}

// List returns all groups with activity and responsible names.
func (s *GroupService) List(ctx context.Context) ([]models.GroupDetail, error) {
	groups, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudieron listar los grupos")
	}
	return groups, nil
}

// ListByActivity returns the groups of one activity.
func (s *GroupService) ListByActivity(ctx context.Context, activityID string) ([]models.Group, error) {
	if _, err := s.activities.FindByID(ctx, activityID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "actividad no encontrada")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo consultar la actividad")
	}
	groups, err := s.repo.ListByActivity(ctx, activityID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudieron listar los grupos")
	}
	return groups, nil
}

// Get returns a group with names resolved.
func (s *GroupService) Get(ctx context.Context, id string) (*models.GroupDetail, error) {
	group, err := s.repo.FindDetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "grupo no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo consultar el grupo")
	}
	return group, nil
}

// Create registers a new group.
func (s *GroupService) Create(ctx context.Context, actorRole models.UserRole, req GroupRequest) (*models.Group, error) {
	if !s.canManage(actorRole) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "")
	}
	group, err := s.buildGroup(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.checkOverlap(ctx, group, ""); err != nil {
		return nil, err
	}
	if group.Capacity > s.config.CapacityMax {
		return nil, appErrors.Clone(appErrors.ErrCapacityExceeded, "")
	}
	if err := s.repo.Create(ctx, group); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo crear el grupo")
	}
	return group, nil
}

// Update modifies an existing group. The clash check skips the group's own
// row so a group never conflicts with itself.
func (s *GroupService) Update(ctx context.Context, actorRole models.UserRole, id string, req GroupRequest) (*models.Group, error) {
	if !s.canManage(actorRole) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "")
	}
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "grupo no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo consultar el grupo")
	}

	updated, err := s.buildGroup(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.checkOverlap(ctx, updated, id); err != nil {
		return nil, err
	}
	if updated.Capacity > s.config.CapacityMax {
		return nil, appErrors.Clone(appErrors.ErrCapacityExceeded, "")
	}

	existing.ResponsibleID = updated.ResponsibleID
	existing.Location = updated.Location
	existing.DateStart = updated.DateStart
	existing.DateEnd = updated.DateEnd
	existing.TimeStart = updated.TimeStart
	existing.TimeEnd = updated.TimeEnd
	existing.Capacity = updated.Capacity
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo actualizar el grupo")
	}
	return existing, nil
}

// Delete removes a group by id.
func (s *GroupService) Delete(ctx context.Context, actorRole models.UserRole, id string) error {
	if !s.canManage(actorRole) {
		return appErrors.Clone(appErrors.ErrForbidden, "")
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "grupo no encontrado")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo consultar el grupo")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo eliminar el grupo")
	}
	return nil
}

func (s *GroupService) canManage(role models.UserRole) bool {
	for _, allowed := range s.config.ManagerRoles {
		if string(role) == allowed {
			return true
		}
	}
	return false
}

func (s *GroupService) buildGroup(ctx context.Context, req GroupRequest) (*models.Group, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "datos de grupo inválidos")
	}

	if _, err := s.activities.FindByID(ctx, req.ActivityID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "actividad no encontrada")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo consultar la actividad")
	}
	if _, err := s.users.FindByID(ctx, req.ResponsibleID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "responsable no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo consultar el responsable")
	}

	dateStart, err := models.ParseDate(req.DateStart)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "fecha_inicio inválida")
	}
	dateEnd, err := models.ParseDate(req.DateEnd)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "fecha_fin inválida")
	}
	if dateEnd.Before(dateStart.Time) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "la fecha final precede a la inicial")
	}
	today := models.NewDate(time.Now().UTC())
	if dateStart.Before(today.Time) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "la fecha inicial ya pasó")
	}

	timeStart, err := models.ParseClock(req.TimeStart)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "hora_inicio inválida")
	}
	timeEnd, err := models.ParseClock(req.TimeEnd)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "hora_fin inválida")
	}
	if timeEnd.Before(timeStart) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "la hora final precede a la inicial")
	}

	return &models.Group{
		ActivityID:    req.ActivityID,
		ResponsibleID: req.ResponsibleID,
		Location:      req.Location,
		DateStart:     dateStart,
		DateEnd:       dateEnd,
		TimeStart:     req.TimeStart,
		TimeEnd:       req.TimeEnd,
		Capacity:      req.Capacity,
	}, nil
}

func (s *GroupService) checkOverlap(ctx context.Context, group *models.Group, excludeID string) error {
	candidates, err := s.repo.FindOverlapping(ctx, group.Location, group.DateStart, group.DateEnd, excludeID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo validar el horario")
	}
	for _, other := range candidates {
		clash, err := timeRangesOverlap(group.TimeStart, group.TimeEnd, other.TimeStart, other.TimeEnd)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "horario almacenado corrupto")
		}
		if clash {
			return appErrors.Clone(appErrors.ErrScheduleConflict, "")
		}
	}
	return nil
}

// timeRangesOverlap compares two HH:MM:SS intervals with strict inequality:
// a group ending exactly when another starts does not clash.
func timeRangesOverlap(startA, endA, startB, endB string) (bool, error) {
	sa, err := models.ParseClock(startA)
	if err != nil {
		return false, err
	}
	ea, err := models.ParseClock(endA)
	if err != nil {
		return false, err
	}
	sb, err := models.ParseClock(startB)
	if err != nil {
		return false, err
	}
	eb, err := models.ParseClock(endB)
	if err != nil {
		return false, err
	}
	return sa.Before(eb) && sb.Before(ea), nil
}
