package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/backendac/actividades-api/internal/models"
)

// GroupRepository handles persistence of activity groups.
type GroupRepository struct {
	db *sqlx.DB
}

// NewGroupRepository constructs the repository.
func NewGroupRepository(db *sqlx.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

const groupColumns = `g.id, g.actividad_id, g.responsable_id, g.ubicacion, g.fecha_inicio, g.fecha_fin,
        g.hora_inicio, g.hora_fin, g.capacidad, g.created_at, g.updated_at`

// List returns all groups with activity and responsible names.
func (r *GroupRepository) List(ctx context.Context) ([]models.GroupDetail, error) {
	query := `SELECT ` + groupColumns + `, a.nombre AS actividad_nombre, u.nombre AS responsable_nombre
        FROM grupos g
        JOIN actividades a ON a.id = g.actividad_id
        JOIN usuarios u ON u.id = g.responsable_id
        ORDER BY a.nombre, g.fecha_inicio ASC`
	var groups []models.GroupDetail
	if err := r.db.SelectContext(ctx, &groups, query); err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

// ListByActivity returns the groups of one activity.
func (r *GroupRepository) ListByActivity(ctx context.Context, activityID string) ([]models.Group, error) {
	const query = `SELECT id, actividad_id, responsable_id, ubicacion, fecha_inicio, fecha_fin,
        hora_inicio, hora_fin, capacidad, created_at, updated_at
        FROM grupos WHERE actividad_id = $1 ORDER BY fecha_inicio ASC`
	var groups []models.Group
	if err := r.db.SelectContext(ctx, &groups, query, activityID); err != nil {
		return nil, fmt.Errorf("list groups by activity: %w", err)
	}
	return groups, nil
}

// FindByID returns a group by id.
func (r *GroupRepository) FindByID(ctx context.Context, id string) (*models.Group, error) {
	const query = `SELECT id, actividad_id, responsable_id, ubicacion, fecha_inicio, fecha_fin,
        hora_inicio, hora_fin, capacidad, created_at, updated_at
        FROM grupos WHERE id = $1`
	var group models.Group
	if err := r.db.GetContext(ctx, &group, query, id); err != nil {
		return nil, err
	}
	return &group, nil
}

// FindDetailByID returns a group with activity and responsible names.
func (r *GroupRepository) FindDetailByID(ctx context.Context, id string) (*models.GroupDetail, error) {
	query := `SELECT ` + groupColumns + `, a.nombre AS actividad_nombre, u.nombre AS responsable_nombre
        FROM grupos g
        JOIN actividades a ON a.id = g.actividad_id
        JOIN usuarios u ON u.id = g.responsable_id
        WHERE g.id = $1`
	var group models.GroupDetail
	if err := r.db.GetContext(ctx, &group, query, id); err != nil {
		return nil, err
	}
	return &group, nil
}

// FindOverlapping returns groups at the same location whose date ranges
// intersect the given window, excluding the given group id. Time-of-day
// overlap is decided in the service, where strict comparison applies.
func (r *GroupRepository) FindOverlapping(ctx context.Context, location string, dateStart, dateEnd models.Date, excludeID string) ([]models.Group, error) {
	const query = `SELECT id, actividad_id, responsable_id, ubicacion, fecha_inicio, fecha_fin,
        hora_inicio, hora_fin, capacidad, created_at, updated_at
        FROM grupos
        WHERE ubicacion = $1 AND fecha_inicio <= $3 AND fecha_fin >= $2 AND id <> $4`
	var groups []models.Group
	if err := r.db.SelectContext(ctx, &groups, query, location, dateStart, dateEnd, excludeID); err != nil {
		return nil, fmt.Errorf("find overlapping groups: %w", err)
	}
	return groups, nil
}

// Create persists a new group.
func (r *GroupRepository) Create(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	group.CreatedAt = now
	group.UpdatedAt = now
	const query = `INSERT INTO grupos (id, actividad_id, responsable_id, ubicacion, fecha_inicio, fecha_fin,
        hora_inicio, hora_fin, capacidad, created_at, updated_at)
        VALUES (:id, :actividad_id, :responsable_id, :ubicacion, :fecha_inicio, :fecha_fin,
        :hora_inicio, :hora_fin, :capacidad, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, group); err != nil {
		return fmt.Errorf("create group: %w", err)
	}
	return nil
}

// Update modifies an existing group.
func (r *GroupRepository) Update(ctx context.Context, group *models.Group) error {
	group.UpdatedAt = time.Now().UTC()
	const query = `UPDATE grupos SET responsable_id = :responsable_id, ubicacion = :ubicacion,
        fecha_inicio = :fecha_inicio, fecha_fin = :fecha_fin, hora_inicio = :hora_inicio,
        hora_fin = :hora_fin, capacidad = :capacidad, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, group); err != nil {
		return fmt.Errorf("update group: %w", err)
	}
	return nil
}

// Delete removes a group by id.
func (r *GroupRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM grupos WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete group: %w", err)
	}
	return nil
}
