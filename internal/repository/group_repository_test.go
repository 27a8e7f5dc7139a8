package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backendac/actividades-api/internal/models"
)

func groupRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "actividad_id", "responsable_id", "ubicacion",
		"fecha_inicio", "fecha_fin", "hora_inicio", "hora_fin", "capacidad", "created_at", "updated_at"}).
		AddRow("grp-1", "act-1", "usr-1", "Aula 3",
			time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 12, 15, 0, 0, 0, 0, time.UTC),
			"09:00:00", "11:00:00", 20, now, now)
}

func TestGroupRepositoryFindOverlapping(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewGroupRepository(db)

	start, err := models.ParseDate("2026-09-01")
	require.NoError(t, err)
	end, err := models.ParseDate("2026-12-15")
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE ubicacion = $1 AND fecha_inicio <= $3 AND fecha_fin >= $2 AND id <> $4")).
		WithArgs("Aula 3", start, end, "grp-self").
		WillReturnRows(groupRows())

	groups, err := repo.FindOverlapping(context.Background(), "Aula 3", start, end, "grp-self")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "grp-1", groups[0].ID)
	assert.Equal(t, "09:00:00", groups[0].TimeStart)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewGroupRepository(db)

	mock.ExpectQuery("FROM grupos WHERE id = ").
		WithArgs("grp-1").
		WillReturnRows(groupRows())

	group, err := repo.FindByID(context.Background(), "grp-1")
	require.NoError(t, err)
	assert.Equal(t, "act-1", group.ActivityID)
	assert.Equal(t, "2026-09-01", group.DateStart.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewGroupRepository(db)

	mock.ExpectExec("INSERT INTO grupos").
		WillReturnResult(sqlmock.NewResult(0, 1))

	start, err := models.ParseDate("2026-09-01")
	require.NoError(t, err)
	end, err := models.ParseDate("2026-12-15")
	require.NoError(t, err)
	group := &models.Group{
		ActivityID:    "act-1",
		ResponsibleID: "usr-1",
		Location:      "Aula 3",
		DateStart:     start,
		DateEnd:       end,
		TimeStart:     "09:00:00",
		TimeEnd:       "11:00:00",
		Capacity:      20,
	}
	require.NoError(t, repo.Create(context.Background(), group))
	assert.NotEmpty(t, group.ID)
	assert.False(t, group.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}
