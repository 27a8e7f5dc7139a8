package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backendac/actividades-api/internal/models"
)

func TestAttendanceRepositoryCountDistinctDates(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(DISTINCT fecha) FROM asistencias WHERE grupo_id = $1")).
		WithArgs("grp-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	count, err := repo.CountDistinctDates(context.Background(), "grp-1")
	require.NoError(t, err)
	assert.Equal(t, 4, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryCountDistinctUserDates(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE usuario_id = $1 AND grupo_id = $2 AND estado = $3")).
		WithArgs("usr-1", "grp-1", models.AttendancePresent).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountDistinctUserDates(context.Background(), "usr-1", "grp-1")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositorySummaryByGroup(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	rows := sqlmock.NewRows([]string{"usuario_id", "usuario_nombre", "fechas_asistidas"}).
		AddRow("usr-1", "Ana", 3).
		AddRow("usr-2", "Luis", 1)
	mock.ExpectQuery("GROUP BY a.usuario_id, u.nombre").
		WithArgs("grp-1", models.AttendancePresent).
		WillReturnRows(rows)

	summaries, err := repo.SummaryByGroup(context.Background(), "grp-1")
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "Ana", summaries[0].UserName)
	assert.Equal(t, 3, summaries[0].DatesAttended)
	require.NoError(t, mock.ExpectationsWereMet())
}
