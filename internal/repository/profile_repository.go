package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/backendac/actividades-api/internal/models"
)

// ProfileRepository handles persistence of user profiles.
type ProfileRepository struct {
	db *sqlx.DB
}

// NewProfileRepository constructs the repository.
func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// FindByUserID returns the profile belonging to a user.
func (r *ProfileRepository) FindByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	const query = `SELECT id, usuario_id, telefono, direccion, carrera, numero_control, imagen_url FROM perfiles WHERE usuario_id = $1`
	var profile models.Profile
	if err := r.db.GetContext(ctx, &profile, query, userID); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ExistsControlNumber checks uniqueness of the control number.
func (r *ProfileRepository) ExistsControlNumber(ctx context.Context, controlNumber int, excludeID string) (bool, error) {
	query := `SELECT 1 FROM perfiles WHERE numero_control = $1`
	args := []interface{}{controlNumber}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	query += " LIMIT 1"
	var one int
	if err := r.db.GetContext(ctx, &one, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check control number: %w", err)
	}
	return true, nil
}

// Create persists a new profile.
func (r *ProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	const query = `INSERT INTO perfiles (id, usuario_id, telefono, direccion, carrera, numero_control, imagen_url)
        VALUES (:id, :usuario_id, :telefono, :direccion, :carrera, :numero_control, :imagen_url)`
	if _, err := r.db.NamedExecContext(ctx, query, profile); err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

// Update modifies an existing profile.
func (r *ProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	const query = `UPDATE perfiles SET telefono = :telefono, direccion = :direccion, carrera = :carrera, numero_control = :numero_control, imagen_url = :imagen_url WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, profile); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

// DeleteByUserID removes the profile for a user.
func (r *ProfileRepository) DeleteByUserID(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM perfiles WHERE usuario_id = $1`, userID); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}
