package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/backendac/actividades-api/internal/models"
)

// WaitlistRepository handles persistence of waitlist entries.
type WaitlistRepository struct {
	db *sqlx.DB
}

// NewWaitlistRepository constructs the repository.
func NewWaitlistRepository(db *sqlx.DB) *WaitlistRepository {
	return &WaitlistRepository{db: db}
}

// FindByID returns a waitlist entry by id.
func (r *WaitlistRepository) FindByID(ctx context.Context, id string) (*models.WaitlistEntry, error) {
	const query = `SELECT id, usuario_id, actividad_id, fecha_registro FROM listas_espera WHERE id = $1`
	var entry models.WaitlistEntry
	if err := r.db.GetContext(ctx, &entry, query, id); err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListByActivity returns the waitlist of an activity in arrival order.
func (r *WaitlistRepository) ListByActivity(ctx context.Context, activityID string) ([]models.WaitlistEntry, error) {
	const query = `SELECT id, usuario_id, actividad_id, fecha_registro FROM listas_espera
        WHERE actividad_id = $1 ORDER BY fecha_registro ASC, id ASC`
	var entries []models.WaitlistEntry
	if err := r.db.SelectContext(ctx, &entries, query, activityID); err != nil {
		return nil, fmt.Errorf("list waitlist by activity: %w", err)
	}
	return entries, nil
}

// ListByUser returns the waitlist entries of a user.
func (r *WaitlistRepository) ListByUser(ctx context.Context, userID string) ([]models.WaitlistEntry, error) {
	const query = `SELECT id, usuario_id, actividad_id, fecha_registro FROM listas_espera
        WHERE usuario_id = $1 ORDER BY fecha_registro ASC, id ASC`
	var entries []models.WaitlistEntry
	if err := r.db.SelectContext(ctx, &entries, query, userID); err != nil {
		return nil, fmt.Errorf("list waitlist by user: %w", err)
	}
	return entries, nil
}

// Exists checks whether the user is already waitlisted for the activity.
func (r *WaitlistRepository) Exists(ctx context.Context, userID, activityID string) (bool, error) {
	const query = `SELECT 1 FROM listas_espera WHERE usuario_id = $1 AND actividad_id = $2 LIMIT 1`
	var one int
	if err := r.db.GetContext(ctx, &one, query, userID, activityID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check waitlist entry: %w", err)
	}
	return true, nil
}

// FindOldestByActivity returns the longest-waiting entry for the activity, or
// nil when the waitlist is empty. fecha_registro is a TIMESTAMPTZ; the id
// tiebreak only kicks in on identical timestamps and keeps the order stable.
func (r *WaitlistRepository) FindOldestByActivity(ctx context.Context, activityID string) (*models.WaitlistEntry, error) {
	const query = `SELECT id, usuario_id, actividad_id, fecha_registro FROM listas_espera
        WHERE actividad_id = $1 ORDER BY fecha_registro ASC, id ASC LIMIT 1`
	var entry models.WaitlistEntry
	if err := r.db.GetContext(ctx, &entry, query, activityID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find oldest waitlist entry: %w", err)
	}
	return &entry, nil
}

// Create persists a new waitlist entry.
func (r *WaitlistRepository) Create(ctx context.Context, entry *models.WaitlistEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	const query = `INSERT INTO listas_espera (id, usuario_id, actividad_id, fecha_registro)
        VALUES (:id, :usuario_id, :actividad_id, :fecha_registro)`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("create waitlist entry: %w", err)
	}
	return nil
}

// Delete removes a waitlist entry by id.
func (r *WaitlistRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM listas_espera WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete waitlist entry: %w", err)
	}
	return nil
}
