package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/backendac/actividades-api/internal/models"
)

// AttendanceRepository handles persistence of attendance records.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs the repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// FindByID returns an attendance record by id.
func (r *AttendanceRepository) FindByID(ctx context.Context, id string) (*models.Attendance, error) {
	const query = `SELECT id, usuario_id, grupo_id, fecha, estado FROM asistencias WHERE id = $1`
	var attendance models.Attendance
	if err := r.db.GetContext(ctx, &attendance, query, id); err != nil {
		return nil, err
	}
	return &attendance, nil
}

// ListByGroup returns the attendance records of a group ordered by date.
func (r *AttendanceRepository) ListByGroup(ctx context.Context, groupID string) ([]models.Attendance, error) {
	const query = `SELECT id, usuario_id, grupo_id, fecha, estado FROM asistencias
        WHERE grupo_id = $1 ORDER BY fecha ASC`
	var records []models.Attendance
	if err := r.db.SelectContext(ctx, &records, query, groupID); err != nil {
		return nil, fmt.Errorf("list attendance by group: %w", err)
	}
	return records, nil
}

// ExistsForDate checks whether the user already has a record for the date in
// the group.
func (r *AttendanceRepository) ExistsForDate(ctx context.Context, userID, groupID string, date models.Date) (bool, error) {
	const query = `SELECT 1 FROM asistencias WHERE usuario_id = $1 AND grupo_id = $2 AND fecha = $3 LIMIT 1`
	var one int
	if err := r.db.GetContext(ctx, &one, query, userID, groupID, date); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check attendance for date: %w", err)
	}
	return true, nil
}

// CountDistinctDates returns the number of distinct session dates recorded
// for the group, across all users and statuses.
func (r *AttendanceRepository) CountDistinctDates(ctx context.Context, groupID string) (int, error) {
	const query = `SELECT COUNT(DISTINCT fecha) FROM asistencias WHERE grupo_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, groupID); err != nil {
		return 0, fmt.Errorf("count group dates: %w", err)
	}
	return count, nil
}

// CountDistinctUserDates returns the number of distinct dates the user was
// marked present in the group.
func (r *AttendanceRepository) CountDistinctUserDates(ctx context.Context, userID, groupID string) (int, error) {
	const query = `SELECT COUNT(DISTINCT fecha) FROM asistencias
        WHERE usuario_id = $1 AND grupo_id = $2 AND estado = $3`
	var count int
	if err := r.db.GetContext(ctx, &count, query, userID, groupID, models.AttendancePresent); err != nil {
		return 0, fmt.Errorf("count user dates: %w", err)
	}
	return count, nil
}

// SummaryByGroup returns per-user present-date counts for the group.
func (r *AttendanceRepository) SummaryByGroup(ctx context.Context, groupID string) ([]models.AttendanceSummary, error) {
	const query = `SELECT a.usuario_id, u.nombre AS usuario_nombre, COUNT(DISTINCT a.fecha) AS fechas_asistidas
        FROM asistencias a
        JOIN usuarios u ON u.id = a.usuario_id
        WHERE a.grupo_id = $1 AND a.estado = $2
        GROUP BY a.usuario_id, u.nombre
        ORDER BY u.nombre ASC`
	var summaries []models.AttendanceSummary
	if err := r.db.SelectContext(ctx, &summaries, query, groupID, models.AttendancePresent); err != nil {
		return nil, fmt.Errorf("attendance summary by group: %w", err)
	}
	return summaries, nil
}

// Create persists a new attendance record.
func (r *AttendanceRepository) Create(ctx context.Context, attendance *models.Attendance) error {
	if attendance.ID == "" {
		attendance.ID = uuid.NewString()
	}
	const query = `INSERT INTO asistencias (id, usuario_id, grupo_id, fecha, estado)
        VALUES (:id, :usuario_id, :grupo_id, :fecha, :estado)`
	if _, err := r.db.NamedExecContext(ctx, query, attendance); err != nil {
		return fmt.Errorf("create attendance: %w", err)
	}
	return nil
}

// Update changes the status of an attendance record.
func (r *AttendanceRepository) Update(ctx context.Context, attendance *models.Attendance) error {
	const query = `UPDATE asistencias SET estado = :estado WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, attendance); err != nil {
		return fmt.Errorf("update attendance: %w", err)
	}
	return nil
}

// Delete removes an attendance record by id.
func (r *AttendanceRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM asistencias WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}
	return nil
}
