package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/backendac/actividades-api/internal/models"
)

// EvaluationRepository handles persistence of evaluations.
type EvaluationRepository struct {
	db *sqlx.DB
}

// NewEvaluationRepository constructs the repository.
func NewEvaluationRepository(db *sqlx.DB) *EvaluationRepository {
	return &EvaluationRepository{db: db}
}

// FindByID returns an evaluation by id.
func (r *EvaluationRepository) FindByID(ctx context.Context, id string) (*models.Evaluation, error) {
	const query = `SELECT id, usuario_id, grupo_id, calificacion, calificacion_final, comentarios, created_at, updated_at
        FROM evaluaciones WHERE id = $1`
	var evaluation models.Evaluation
	if err := r.db.GetContext(ctx, &evaluation, query, id); err != nil {
		return nil, err
	}
	return &evaluation, nil
}

// FindByUserAndGroup returns the evaluation of a user in a group, or nil
// when none exists yet.
func (r *EvaluationRepository) FindByUserAndGroup(ctx context.Context, userID, groupID string) (*models.Evaluation, error) {
	const query = `SELECT id, usuario_id, grupo_id, calificacion, calificacion_final, comentarios, created_at, updated_at
        FROM evaluaciones WHERE usuario_id = $1 AND grupo_id = $2`
	var evaluation models.Evaluation
	if err := r.db.GetContext(ctx, &evaluation, query, userID, groupID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find evaluation: %w", err)
	}
	return &evaluation, nil
}

// ListByGroup returns the evaluations of a group with user names, for
// reports and exports.
func (r *EvaluationRepository) ListByGroup(ctx context.Context, groupID string) ([]models.EvaluationDetail, error) {
	const query = `SELECT e.id, e.usuario_id, e.grupo_id, e.calificacion, e.calificacion_final, e.comentarios,
        e.created_at, e.updated_at, u.nombre AS usuario_nombre
        FROM evaluaciones e
        JOIN usuarios u ON u.id = e.usuario_id
        WHERE e.grupo_id = $1
        ORDER BY u.nombre ASC`
	var evaluations []models.EvaluationDetail
	if err := r.db.SelectContext(ctx, &evaluations, query, groupID); err != nil {
		return nil, fmt.Errorf("list evaluations by group: %w", err)
	}
	return evaluations, nil
}

// Create persists a new evaluation.
func (r *EvaluationRepository) Create(ctx context.Context, evaluation *models.Evaluation) error {
	if evaluation.ID == "" {
		evaluation.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	evaluation.CreatedAt = now
	evaluation.UpdatedAt = now
	const query = `INSERT INTO evaluaciones (id, usuario_id, grupo_id, calificacion, calificacion_final, comentarios, created_at, updated_at)
        VALUES (:id, :usuario_id, :grupo_id, :calificacion, :calificacion_final, :comentarios, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, evaluation); err != nil {
		return fmt.Errorf("create evaluation: %w", err)
	}
	return nil
}

// Update modifies an existing evaluation.
func (r *EvaluationRepository) Update(ctx context.Context, evaluation *models.Evaluation) error {
	evaluation.UpdatedAt = time.Now().UTC()
	const query = `UPDATE evaluaciones SET calificacion = :calificacion, calificacion_final = :calificacion_final,
        comentarios = :comentarios, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, evaluation); err != nil {
		return fmt.Errorf("update evaluation: %w", err)
	}
	return nil
}

// Delete removes an evaluation by id.
func (r *EvaluationRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM evaluaciones WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete evaluation: %w", err)
	}
	return nil
}
