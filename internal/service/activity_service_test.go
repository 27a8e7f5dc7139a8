package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/backendac/actividades-api/internal/models"
	appErrors "github.com/backendac/actividades-api/pkg/errors"
)

type mockActivityRepo struct {
	activities map[string]models.Activity
	names      map[string]string
	created    *models.Activity
	updated    *models.Activity
	deleted    []string
}

func (m *mockActivityRepo) List(ctx context.Context) ([]models.Activity, error) {
	var list []models.Activity
	for _, a := range m.activities {
		list = append(list, a)
	}
	return list, nil
}

func (m *mockActivityRepo) FindByID(ctx context.Context, id string) (*models.Activity, error) {
	if a, ok := m.activities[id]; ok {
		return &a, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockActivityRepo) ExistsName(ctx context.Context, name, excludeID string) (bool, error) {
	id, ok := m.names[name]
	return ok && id != excludeID, nil
}

func (m *mockActivityRepo) Create(ctx context.Context, activity *models.Activity) error {
	activity.ID = "act-new"
	m.created = activity
	return nil
}

func (m *mockActivityRepo) Update(ctx context.Context, activity *models.Activity) error {
	m.updated = activity
	return nil
}

func (m *mockActivityRepo) Delete(ctx context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func TestActivityServiceCreate(t *testing.T) {
	repo := &mockActivityRepo{names: map[string]string{}}
	svc := NewActivityService(repo, validator.New(), zap.NewNop())

	start := "2026-09-01"
	end := "2026-12-15"
	activity, err := svc.Create(context.Background(), ActivityRequest{
		Name: "Ajedrez", Description: "Club de ajedrez", DateStart: &start, DateEnd: &end,
	})
	require.NoError(t, err)
	assert.Equal(t, "act-new", activity.ID)
	require.NotNil(t, activity.DateStart)
	assert.Equal(t, "2026-09-01", activity.DateStart.String())
}

func TestActivityServiceCreateDuplicateName(t *testing.T) {
	repo := &mockActivityRepo{names: map[string]string{"Ajedrez": "act-1"}}
	svc := NewActivityService(repo, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), ActivityRequest{Name: "Ajedrez"})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrDuplicate.Code, appErr.Code)
	assert.Equal(t, 406, appErr.Status)
}

func TestActivityServiceCreateEndBeforeStart(t *testing.T) {
	svc := NewActivityService(&mockActivityRepo{names: map[string]string{}}, validator.New(), zap.NewNop())

	start := "2026-12-15"
	end := "2026-09-01"
	_, err := svc.Create(context.Background(), ActivityRequest{Name: "Ajedrez", DateStart: &start, DateEnd: &end})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestActivityServiceUpdateKeepsOwnName(t *testing.T) {
	repo := &mockActivityRepo{
		activities: map[string]models.Activity{"act-1": {ID: "act-1", Name: "Ajedrez"}},
		names:      map[string]string{"Ajedrez": "act-1"},
	}
	svc := NewActivityService(repo, validator.New(), zap.NewNop())

	activity, err := svc.Update(context.Background(), "act-1", ActivityRequest{Name: "Ajedrez", Description: "actualizada"})
	require.NoError(t, err)
	assert.Equal(t, "actualizada", activity.Description)
	require.NotNil(t, repo.updated)
}

func TestActivityServiceDeleteNotFound(t *testing.T) {
	svc := NewActivityService(&mockActivityRepo{}, validator.New(), zap.NewNop())

	err := svc.Delete(context.Background(), "missing")
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}
