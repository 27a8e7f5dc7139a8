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

// EnrollmentRepository handles persistence of enrollments.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// FindByID returns an enrollment by id.
func (r *EnrollmentRepository) FindByID(ctx context.Context, id string) (*models.Enrollment, error) {
	const query = `SELECT id, usuario_id, grupo_id, estado, fecha_inscripcion FROM inscripciones WHERE id = $1`
	var enrollment models.Enrollment
	if err := r.db.GetContext(ctx, &enrollment, query, id); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// ListByGroup returns the enrollments of a group with user context.
func (r *EnrollmentRepository) ListByGroup(ctx context.Context, groupID string) ([]models.EnrollmentDetail, error) {
	const query = `SELECT i.id, i.usuario_id, i.grupo_id, i.estado, i.fecha_inscripcion,
        u.nombre AS usuario_nombre, g.ubicacion AS grupo_ubicacion, g.actividad_id, a.nombre AS actividad_nombre
        FROM inscripciones i
        JOIN usuarios u ON u.id = i.usuario_id
        JOIN grupos g ON g.id = i.grupo_id
        JOIN actividades a ON a.id = g.actividad_id
        WHERE i.grupo_id = $1
        ORDER BY i.fecha_inscripcion ASC`
	var enrollments []models.EnrollmentDetail
	if err := r.db.SelectContext(ctx, &enrollments, query, groupID); err != nil {
		return nil, fmt.Errorf("list enrollments by group: %w", err)
	}
	return enrollments, nil
}

// ListByUser returns the enrollments of a user with group context.
func (r *EnrollmentRepository) ListByUser(ctx context.Context, userID string) ([]models.EnrollmentDetail, error) {
	const query = `SELECT i.id, i.usuario_id, i.grupo_id, i.estado, i.fecha_inscripcion,
        u.nombre AS usuario_nombre, g.ubicacion AS grupo_ubicacion, g.actividad_id, a.nombre AS actividad_nombre
        FROM inscripciones i
        JOIN usuarios u ON u.id = i.usuario_id
        JOIN grupos g ON g.id = i.grupo_id
        JOIN actividades a ON a.id = g.actividad_id
        WHERE i.usuario_id = $1
        ORDER BY i.fecha_inscripcion ASC`
	var enrollments []models.EnrollmentDetail
	if err := r.db.SelectContext(ctx, &enrollments, query, userID); err != nil {
		return nil, fmt.Errorf("list enrollments by user: %w", err)
	}
	return enrollments, nil
}

// CountEnrolled returns the number of active enrollments in a group.
func (r *EnrollmentRepository) CountEnrolled(ctx context.Context, groupID string) (int, error) {
	const query = `SELECT COUNT(*) FROM inscripciones WHERE grupo_id = $1 AND estado = $2`
	var count int
	if err := r.db.GetContext(ctx, &count, query, groupID, models.EnrollmentStatusEnrolled); err != nil {
		return 0, fmt.Errorf("count enrolled: %w", err)
	}
	return count, nil
}

// ExistsForGroup checks whether the user already has an enrollment in the group.
func (r *EnrollmentRepository) ExistsForGroup(ctx context.Context, userID, groupID string) (bool, error) {
	const query = `SELECT 1 FROM inscripciones WHERE usuario_id = $1 AND grupo_id = $2 LIMIT 1`
	var one int
	if err := r.db.GetContext(ctx, &one, query, userID, groupID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check enrollment for group: %w", err)
	}
	return true, nil
}

// ExistsForActivity checks whether the user holds an active enrollment in any
// group of the activity.
func (r *EnrollmentRepository) ExistsForActivity(ctx context.Context, userID, activityID string) (bool, error) {
	const query = `SELECT 1 FROM inscripciones i
        JOIN grupos g ON g.id = i.grupo_id
        WHERE i.usuario_id = $1 AND g.actividad_id = $2 AND i.estado = $3
        LIMIT 1`
	var one int
	if err := r.db.GetContext(ctx, &one, query, userID, activityID, models.EnrollmentStatusEnrolled); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check enrollment for activity: %w", err)
	}
	return true, nil
}

// CreateIfCapacity inserts the enrollment only while the group still has
// space. The group row is locked for the duration of the transaction so the
// recount and the insert are atomic against concurrent admissions. Returns
// false without error when the group is already full.
func (r *EnrollmentRepository) CreateIfCapacity(ctx context.Context, enrollment *models.Enrollment) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin admission tx: %w", err)
	}
	defer tx.Rollback()

	var capacity int
	if err := tx.GetContext(ctx, &capacity, `SELECT capacidad FROM grupos WHERE id = $1 FOR UPDATE`, enrollment.GroupID); err != nil {
		return false, fmt.Errorf("lock group: %w", err)
	}

	var enrolled int
	if err := tx.GetContext(ctx, &enrolled,
		`SELECT COUNT(*) FROM inscripciones WHERE grupo_id = $1 AND estado = $2`,
		enrollment.GroupID, models.EnrollmentStatusEnrolled); err != nil {
		return false, fmt.Errorf("recount enrolled: %w", err)
	}
	if enrolled >= capacity {
		return false, nil
	}

	if enrollment.ID == "" {
		enrollment.ID = uuid.NewString()
	}
	if enrollment.CreatedAt.IsZero() {
		enrollment.CreatedAt = time.Now().UTC()
	}
	enrollment.Status = models.EnrollmentStatusEnrolled
	const insert = `INSERT INTO inscripciones (id, usuario_id, grupo_id, estado, fecha_inscripcion)
        VALUES ($1, $2, $3, $4, $5)`
	if _, err := tx.ExecContext(ctx, insert,
		enrollment.ID, enrollment.UserID, enrollment.GroupID, enrollment.Status, enrollment.CreatedAt); err != nil {
		return false, fmt.Errorf("insert enrollment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit admission tx: %w", err)
	}
	return true, nil
}

// Delete removes an enrollment by id.
func (r *EnrollmentRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM inscripciones WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete enrollment: %w", err)
	}
	return nil
}
