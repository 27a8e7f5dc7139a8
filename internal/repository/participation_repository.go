package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/backendac/actividades-api/internal/models"
)

// ParticipationRepository handles persistence of participation points.
type ParticipationRepository struct {
	db *sqlx.DB
}

// NewParticipationRepository constructs the repository.
func NewParticipationRepository(db *sqlx.DB) *ParticipationRepository {
	return &ParticipationRepository{db: db}
}

// FindByID returns a participation record by id.
func (r *ParticipationRepository) FindByID(ctx context.Context, id string) (*models.Participation, error) {
	const query = `SELECT id, usuario_id, grupo_id, fecha, puntos FROM participaciones WHERE id = $1`
	var participation models.Participation
	if err := r.db.GetContext(ctx, &participation, query, id); err != nil {
		return nil, err
	}
	return &participation, nil
}

// ListByGroup returns the participation records of a group ordered by date.
func (r *ParticipationRepository) ListByGroup(ctx context.Context, groupID string) ([]models.Participation, error) {
	const query = `SELECT id, usuario_id, grupo_id, fecha, puntos FROM participaciones
        WHERE grupo_id = $1 ORDER BY fecha ASC`
	var records []models.Participation
	if err := r.db.SelectContext(ctx, &records, query, groupID); err != nil {
		return nil, fmt.Errorf("list participation by group: %w", err)
	}
	return records, nil
}

// ListByUser returns the participation records of a user in a group.
func (r *ParticipationRepository) ListByUser(ctx context.Context, userID, groupID string) ([]models.Participation, error) {
	const query = `SELECT id, usuario_id, grupo_id, fecha, puntos FROM participaciones
        WHERE usuario_id = $1 AND grupo_id = $2 ORDER BY fecha ASC`
	var records []models.Participation
	if err := r.db.SelectContext(ctx, &records, query, userID, groupID); err != nil {
		return nil, fmt.Errorf("list participation by user: %w", err)
	}
	return records, nil
}

// Create persists a new participation record.
func (r *ParticipationRepository) Create(ctx context.Context, participation *models.Participation) error {
	if participation.ID == "" {
		participation.ID = uuid.NewString()
	}
	const query = `INSERT INTO participaciones (id, usuario_id, grupo_id, fecha, puntos)
        VALUES (:id, :usuario_id, :grupo_id, :fecha, :puntos)`
	if _, err := r.db.NamedExecContext(ctx, query, participation); err != nil {
		return fmt.Errorf("create participation: %w", err)
	}
	return nil
}

// Update modifies an existing participation record.
func (r *ParticipationRepository) Update(ctx context.Context, participation *models.Participation) error {
	const query = `UPDATE participaciones SET fecha = :fecha, puntos = :puntos WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, participation); err != nil {
		return fmt.Errorf("update participation: %w", err)
	}
	return nil
}

// Delete removes a participation record by id.
func (r *ParticipationRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM participaciones WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete participation: %w", err)
	}
	return nil
}
