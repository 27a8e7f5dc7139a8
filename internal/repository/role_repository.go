package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/backendac/actividades-api/internal/models"
)

// RoleRepository reads and seeds the fixed role rows.
type RoleRepository struct {
	db *sqlx.DB
}

// NewRoleRepository constructs the repository.
func NewRoleRepository(db *sqlx.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// List returns all roles ordered by name.
func (r *RoleRepository) List(ctx context.Context) ([]models.Role, error) {
	const query = `SELECT id, nombre, descripcion FROM roles ORDER BY nombre ASC`
	var roles []models.Role
	if err := r.db.SelectContext(ctx, &roles, query); err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return roles, nil
}

// FindByID returns a role by id.
func (r *RoleRepository) FindByID(ctx context.Context, id string) (*models.Role, error) {
	const query = `SELECT id, nombre, descripcion FROM roles WHERE id = $1`
	var role models.Role
	if err := r.db.GetContext(ctx, &role, query, id); err != nil {
		return nil, err
	}
	return &role, nil
}

// Seed inserts the closed role set when missing. Each id is generated per
// call, never bound at startup.
func (r *RoleRepository) Seed(ctx context.Context, roles []models.Role) error {
	const query = `INSERT INTO roles (id, nombre, descripcion) VALUES ($1, $2, $3) ON CONFLICT (nombre) DO NOTHING`
	for _, role := range roles {
		id := role.ID
		if id == "" {
			id = uuid.NewString()
		}
		if _, err := r.db.ExecContext(ctx, query, id, role.Name, role.Description); err != nil {
			return fmt.Errorf("seed role %s: %w", role.Name, err)
		}
	}
	return nil
}

// ExistsName checks whether a role name is present.
func (r *RoleRepository) ExistsName(ctx context.Context, name string) (bool, error) {
	var one int
	if err := r.db.GetContext(ctx, &one, `SELECT 1 FROM roles WHERE nombre = $1 LIMIT 1`, name); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check role name: %w", err)
	}
	return true, nil
}
