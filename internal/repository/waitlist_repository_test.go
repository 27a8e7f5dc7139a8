package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitlistRepositoryFindOldestByActivity(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewWaitlistRepository(db)

	registered := time.Date(2026, 3, 1, 9, 15, 30, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "usuario_id", "actividad_id", "fecha_registro"}).
		AddRow("wl-1", "usr-2", "act-1", registered)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE actividad_id = $1 ORDER BY fecha_registro ASC, id ASC LIMIT 1")).
		WithArgs("act-1").
		WillReturnRows(rows)

	entry, err := repo.FindOldestByActivity(context.Background(), "act-1")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "wl-1", entry.ID)
	assert.True(t, entry.RegisteredAt.Equal(registered))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWaitlistRepositoryFindOldestByActivityEmpty(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewWaitlistRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE actividad_id = $1 ORDER BY fecha_registro ASC, id ASC LIMIT 1")).
		WithArgs("act-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "usuario_id", "actividad_id", "fecha_registro"}))

	entry, err := repo.FindOldestByActivity(context.Background(), "act-1")
	require.NoError(t, err)
	assert.Nil(t, entry)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWaitlistRepositoryExists(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewWaitlistRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM listas_espera WHERE usuario_id = $1 AND actividad_id = $2 LIMIT 1")).
		WithArgs("usr-1", "act-1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	exists, err := repo.Exists(context.Background(), "usr-1", "act-1")
	require.NoError(t, err)
	assert.True(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWaitlistRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewWaitlistRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM listas_espera WHERE id = $1")).
		WithArgs("wl-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "wl-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
