package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/backendac/actividades-api/internal/models"
	appErrors "github.com/backendac/actividades-api/pkg/errors"
)

type roleRepository interface {
	List(ctx context.Context) ([]models.Role, error)
	FindByID(ctx context.Context, id string) (*models.Role, error)
	Seed(ctx context.Context, roles []models.Role) error
}

// RoleService exposes the closed role catalogue.
type RoleService struct {
	repo   roleRepository
	logger *zap.Logger
}

// NewRoleService constructs RoleService.
func NewRoleService(repo roleRepository, logger *zap.Logger) *RoleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoleService{repo: repo, logger: logger}
}

// List returns all roles.
func (s *RoleService) List(ctx context.Context) ([]models.Role, error) {
	roles, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudieron listar los roles")
	}
	return roles, nil
}

// Get returns a role by id.
func (s *RoleService) Get(ctx context.Context, id string) (*models.Role, error) {
	role, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "rol no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo consultar el rol")
	}
	return role, nil
}

// Seed ensures the three known roles exist. Called once at startup.
func (s *RoleService) Seed(ctx context.Context) error {
	roles := []models.Role{
		{Name: string(models.RoleStudent), Description: "Participa en grupos y actividades"},
		{Name: string(models.RoleInstructor), Description: "Registra asistencia y califica"},
		{Name: string(models.RoleAdministrator), Description: "Administra el sistema"},
	}
	if err := s.repo.Seed(ctx, roles); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudieron sembrar los roles")
	}
	s.logger.Info("roles verificados", zap.Int("total", len(roles)))
	return nil
}
