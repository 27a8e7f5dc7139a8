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

type mockEvaluationRepo struct {
	evaluations map[string]models.Evaluation
	byUserGroup map[string]models.Evaluation
	listed      []models.EvaluationDetail
	created     *models.Evaluation
	updated     *models.Evaluation
	deleted     []string
}

func (m *mockEvaluationRepo) FindByID(ctx context.Context, id string) (*models.Evaluation, error) {
	if e, ok := m.evaluations[id]; ok {
		return &e, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockEvaluationRepo) FindByUserAndGroup(ctx context.Context, userID, groupID string) (*models.Evaluation, error) {
	if e, ok := m.byUserGroup[userID+"|"+groupID]; ok {
		return &e, nil
	}
	return nil, nil
}

func (m *mockEvaluationRepo) ListByGroup(ctx context.Context, groupID string) ([]models.EvaluationDetail, error) {
	return m.listed, nil
}

func (m *mockEvaluationRepo) Create(ctx context.Context, evaluation *models.Evaluation) error {
	evaluation.ID = "eval-new"
	m.created = evaluation
	return nil
}

func (m *mockEvaluationRepo) Update(ctx context.Context, evaluation *models.Evaluation) error {
	m.updated = evaluation
	return nil
}

func (m *mockEvaluationRepo) Delete(ctx context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return nil
}

type mockRatioReader struct {
	ratio float64
}

func (m *mockRatioReader) Ratio(ctx context.Context, userID, groupID string) (float64, error) {
	return m.ratio, nil
}

func newEvaluationFixture(repo *mockEvaluationRepo, ratio float64) *EvaluationService {
	groups := &mockGroupReader{groups: map[string]*models.Group{"g1": {ID: "g1", Location: "Aula 3"}}}
	return NewEvaluationService(repo, &mockRatioReader{ratio: ratio}, groups, validator.New(), zap.NewNop(), GradingConfig{})
}

func TestEvaluationServiceUpsertCreates(t *testing.T) {
	repo := &mockEvaluationRepo{}
	svc := newEvaluationFixture(repo, 0.8)

	evaluation, err := svc.Upsert(context.Background(), EvaluationRequest{UserID: "u1", GroupID: "g1", Score: 4.0})
	require.NoError(t, err)
	require.NotNil(t, repo.created)
	assert.Nil(t, repo.updated)
	// 0.8*10 + 4.0*0.9 = 11.6
	assert.InDelta(t, 11.6, evaluation.FinalScore, 0.0001)
}

func TestEvaluationServiceUpsertUpdatesExistingRow(t *testing.T) {
	repo := &mockEvaluationRepo{byUserGroup: map[string]models.Evaluation{
		"u1|g1": {ID: "eval-1", UserID: "u1", GroupID: "g1", Score: 2.0, FinalScore: 5.0},
	}}
	svc := newEvaluationFixture(repo, 0.8)

	evaluation, err := svc.Upsert(context.Background(), EvaluationRequest{UserID: "u1", GroupID: "g1", Score: 4.0, Comments: "mejoró"})
	require.NoError(t, err)
	require.NotNil(t, repo.updated)
	assert.Nil(t, repo.created)
	assert.Equal(t, "eval-1", evaluation.ID)
	assert.InDelta(t, 11.6, evaluation.FinalScore, 0.0001)
	assert.Equal(t, "mejoró", evaluation.Comments)
}

func TestEvaluationServiceUpsertZeroAttendance(t *testing.T) {
	repo := &mockEvaluationRepo{}
	svc := newEvaluationFixture(repo, 0)

	evaluation, err := svc.Upsert(context.Background(), EvaluationRequest{UserID: "u1", GroupID: "g1", Score: 5.0})
	require.NoError(t, err)
	// 0*10 + 5.0*0.9 = 4.5
	assert.InDelta(t, 4.5, evaluation.FinalScore, 0.0001)
}

func TestEvaluationServiceUpsertScoreOutOfRange(t *testing.T) {
	svc := newEvaluationFixture(&mockEvaluationRepo{}, 0.5)

	_, err := svc.Upsert(context.Background(), EvaluationRequest{UserID: "u1", GroupID: "g1", Score: 5.5})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestEvaluationServiceUpsertRejectsSecondDecimal(t *testing.T) {
	repo := &mockEvaluationRepo{}
	svc := newEvaluationFixture(repo, 0.5)

	_, err := svc.Upsert(context.Background(), EvaluationRequest{UserID: "u1", GroupID: "g1", Score: 4.25})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Nil(t, repo.created)
}

func TestEvaluationServiceComputeFinal(t *testing.T) {
	svc := newEvaluationFixture(&mockEvaluationRepo{}, 0)

	cases := []struct {
		name  string
		ratio float64
		score float64
		want  float64
	}{
		{"full attendance top score", 1.0, 5.0, 14.5},
		{"partial attendance", 0.8, 4.0, 11.6},
		{"no attendance", 0, 5.0, 4.5},
		{"floor clamps to one", 0, 0, 1.0},
		{"rounds up", 0.75, 1.3, 8.7},
		// 0.85*10 + 3.5*0.9 lands on 11.65 exactly; the half goes up.
		{"exact half rounds up", 0.85, 3.5, 11.7},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, svc.computeFinal(tc.ratio, tc.score), 0.0001)
		})
	}
}

func TestEvaluationServiceComputeFinalClampMax(t *testing.T) {
	groups := &mockGroupReader{groups: map[string]*models.Group{}}
	svc := NewEvaluationService(&mockEvaluationRepo{}, &mockRatioReader{}, groups, validator.New(), zap.NewNop(), GradingConfig{
		AttendanceWeight: 200,
		ScoreWeight:      0.9,
		ClampMin:         1,
		ClampMax:         100,
	})
	assert.InDelta(t, 100.0, svc.computeFinal(1.0, 5.0), 0.0001)
}

func TestEvaluationServiceExportCSV(t *testing.T) {
	repo := &mockEvaluationRepo{listed: []models.EvaluationDetail{
		{Evaluation: models.Evaluation{Score: 4.0, FinalScore: 11.6, Comments: "bien"}, UserName: "Ana"},
	}}
	svc := newEvaluationFixture(repo, 0.8)

	payload, contentType, err := svc.Export(context.Background(), "g1", ExportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)
	assert.Contains(t, string(payload), "Ana")
	assert.Contains(t, string(payload), "11.6")
}

func TestEvaluationServiceExportUnknownFormat(t *testing.T) {
	svc := newEvaluationFixture(&mockEvaluationRepo{}, 0)

	_, _, err := svc.Export(context.Background(), "g1", ExportFormat("xml"))
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}
