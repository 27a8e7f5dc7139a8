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

type profileRepository interface {
	FindByUserID(ctx context.Context, userID string) (*models.Profile, error)
	ExistsControlNumber(ctx context.Context, controlNumber int, excludeID string) (bool, error)
	Create(ctx context.Context, profile *models.Profile) error
	Update(ctx context.Context, profile *models.Profile) error
	DeleteByUserID(ctx context.Context, userID string) error
}

type userReader interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// UpsertProfileRequest carries profile creation or update data.
type UpsertProfileRequest struct {
	Phone         *string `json:"telefono"`
	Address       *string `json:"direccion"`
	Career        *string `json:"carrera"`
	ControlNumber int     `json:"numero_control" validate:"required,gt=0"`
	ImageURL      *string `json:"imagen_url"`
}

// ProfileService manages the academic profile attached to a user.
type ProfileService struct {
	repo      profileRepository
	users     userReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewProfileService constructs ProfileService.
func NewProfileService(repo profileRepository, users userReader, validate *validator.Validate, logger *zap.Logger) *ProfileService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{repo: repo, users: users, validator: validate, logger: logger}
}

// GetByUser returns the profile of a user.
func (s *ProfileService) GetByUser(ctx context.Context, userID string) (*models.Profile, error) {
	profile, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "perfil no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo consultar el perfil")
	}
	return profile, nil
}

// Upsert creates the user's profile or updates the existing one. The control
// number stays unique across profiles.
func (s *ProfileService) Upsert(ctx context.Context, userID string, req UpsertProfileRequest) (*models.Profile, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "datos de perfil inválidos")
	}

	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "usuario no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo consultar el usuario")
	}

	existing, err := s.repo.FindByUserID(ctx, userID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo consultar el perfil")
	}

	excludeID := ""
	if existing != nil {
		excludeID = existing.ID
	}
	taken, err := s.repo.ExistsControlNumber(ctx, req.ControlNumber, excludeID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo validar el número de control")
	}
	if taken {
		return nil, appErrors.Clone(appErrors.ErrDuplicate, "el número de control ya está registrado")
	}

	if existing == nil {
		profile := &models.Profile{
			UserID:        userID,
			Phone:         req.Phone,
			Address:       req.Address,
			Career:        req.Career,
			ControlNumber: req.ControlNumber,
			ImageURL:      req.ImageURL,
		}
		if err := s.repo.Create(ctx, profile); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo crear el perfil")
		}
		return profile, nil
	}

	existing.Phone = req.Phone
	existing.Address = req.Address
	existing.Career = req.Career
	existing.ControlNumber = req.ControlNumber
	existing.ImageURL = req.ImageURL
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo actualizar el perfil")
	}
	return existing, nil
}

// Delete removes the profile of a user.
func (s *ProfileService) Delete(ctx context.Context, userID string) error {
	if _, err := s.repo.FindByUserID(ctx, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "perfil no encontrado")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo consultar el perfil")
	}
	if err := s.repo.DeleteByUserID(ctx, userID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo eliminar el perfil")
	}
	return nil
}
