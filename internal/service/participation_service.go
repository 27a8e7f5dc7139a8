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

type participationRepository interface {
	FindByID(ctx context.Context, id string) (*models.Participation, error)
	ListByGroup(ctx context.Context, groupID string) ([]models.Participation, error)
	ListByUser(ctx context.Context, userID, groupID string) ([]models.Participation, error)
	Create(ctx context.Context, participation *models.Participation) error
	Update(ctx context.Context, participation *models.Participation) error
	Delete(ctx context.Context, id string) error
}

// ParticipationRequest awards points for a dated contribution.
type ParticipationRequest struct {
	UserID  string `json:"usuario_id" validate:"required"`
	GroupID string `json:"grupo_id" validate:"required"`
	Date    string `json:"fecha" validate:"required"`
	Points  int    `json:"puntos" validate:"required,gt=0"`
}

// ParticipationService manages participation points. The contribution date
// must fall inside the group's scheduled range.
type ParticipationService struct {
	repo      participationRepository
	groups    groupReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewParticipationService constructs ParticipationService.
func NewParticipationService(repo participationRepository, groups groupReader, validate *validator.Validate, logger *zap.Logger) *ParticipationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ParticipationService{repo: repo, groups: groups, validator: validate, logger: logger}
}

// ListByGroup returns the participation records of a group.
func (s *ParticipationService) ListByGroup(ctx context.Context, groupID string) ([]models.Participation, error) {
	records, err := s.repo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudieron listar las participaciones")
	}
	return records, nil
}

// ListByUser returns a user's participation inside a group.
func (s *ParticipationService) ListByUser(ctx context.Context, userID, groupID string) ([]models.Participation, error) {
	records, err := s.repo.ListByUser(ctx, userID, groupID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudieron listar las participaciones")
	}
	return records, nil
}

// Create records a contribution.
func (s *ParticipationService) Create(ctx context.Context, req ParticipationRequest) (*models.Participation, error) {
	participation, err := s.buildParticipation(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, participation); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo registrar la participación")
	}
	return participation, nil
}

// Update rewrites an existing contribution.
func (s *ParticipationService) Update(ctx context.Context, id string, req ParticipationRequest) (*models.Participation, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "participación no encontrada")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo consultar la participación")
	}
	updated, err := s.buildParticipation(ctx, req)
	if err != nil {
		return nil, err
	}
	existing.Date = updated.Date
	existing.Points = updated.Points
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo actualizar la participación")
	}
	return existing, nil
}

// Delete removes a participation record.
func (s *ParticipationService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "participación no encontrada")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo consultar la participación")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo eliminar la participación")
	}
	return nil
}

func (s *ParticipationService) buildParticipation(ctx context.Context, req ParticipationRequest) (*models.Participation, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "datos de participación inválidos")
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

	return &models.Participation{
		UserID:  req.UserID,
		GroupID: req.GroupID,
		Date:    date,
		Points:  req.Points,
	}, nil
}
