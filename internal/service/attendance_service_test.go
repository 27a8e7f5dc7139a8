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

type mockAttendanceRepo struct {
	records        map[string]models.Attendance
	existingDates  map[string]bool
	distinctDates  int
	userDates      int
	summaries      []models.AttendanceSummary
	created        *models.Attendance
	updated        *models.Attendance
	deleted        []string
}

func (m *mockAttendanceRepo) FindByID(ctx context.Context, id string) (*models.Attendance, error) {
	if a, ok := m.records[id]; ok {
		return &a, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAttendanceRepo) ListByGroup(ctx context.Context, groupID string) ([]models.Attendance, error) {
	return nil, nil
}

func (m *mockAttendanceRepo) ExistsForDate(ctx context.Context, userID, groupID string, date models.Date) (bool, error) {
	return m.existingDates[userID+"|"+groupID+"|"+date.String()], nil
}

func (m *mockAttendanceRepo) CountDistinctDates(ctx context.Context, groupID string) (int, error) {
	return m.distinctDates, nil
}

func (m *mockAttendanceRepo) CountDistinctUserDates(ctx context.Context, userID, groupID string) (int, error) {
	return m.userDates, nil
}

func (m *mockAttendanceRepo) SummaryByGroup(ctx context.Context, groupID string) ([]models.AttendanceSummary, error) {
	return m.summaries, nil
}

func (m *mockAttendanceRepo) Create(ctx context.Context, attendance *models.Attendance) error {
	attendance.ID = "att-new"
	m.created = attendance
	return nil
}

func (m *mockAttendanceRepo) Update(ctx context.Context, attendance *models.Attendance) error {
	m.updated = attendance
	return nil
}

func (m *mockAttendanceRepo) Delete(ctx context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func mustDate(t *testing.T, raw string) models.Date {
	t.Helper()
	d, err := models.ParseDate(raw)
	require.NoError(t, err)
	return d
}

func newAttendanceFixture(t *testing.T, repo *mockAttendanceRepo) *AttendanceService {
	groups := &mockGroupReader{groups: map[string]*models.Group{
		"g1": {
			ID:        "g1",
			DateStart: mustDate(t, "2026-03-01"),
			DateEnd:   mustDate(t, "2026-06-30"),
		},
	}}
	return NewAttendanceService(repo, groups, validator.New(), zap.NewNop())
}

func TestAttendanceServiceRecord(t *testing.T) {
	repo := &mockAttendanceRepo{}
	svc := newAttendanceFixture(t, repo)

	attendance, err := svc.Record(context.Background(), RecordAttendanceRequest{
		UserID: "u1", GroupID: "g1", Date: "2026-03-15", Status: "presente",
	})
	require.NoError(t, err)
	assert.Equal(t, "att-new", attendance.ID)
	assert.Equal(t, models.AttendancePresent, attendance.Status)
}

func TestAttendanceServiceRecordDuplicateDate(t *testing.T) {
	repo := &mockAttendanceRepo{existingDates: map[string]bool{"u1|g1|2026-03-15": true}}
	svc := newAttendanceFixture(t, repo)

	_, err := svc.Record(context.Background(), RecordAttendanceRequest{
		UserID: "u1", GroupID: "g1", Date: "2026-03-15", Status: "presente",
	})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrDuplicate.Code, appErr.Code)
	assert.Equal(t, 406, appErr.Status)
}

func TestAttendanceServiceRecordDateOutsidePeriod(t *testing.T) {
	svc := newAttendanceFixture(t, &mockAttendanceRepo{})

	_, err := svc.Record(context.Background(), RecordAttendanceRequest{
		UserID: "u1", GroupID: "g1", Date: "2026-07-15", Status: "presente",
	})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestAttendanceServiceRecordUnknownStatus(t *testing.T) {
	svc := newAttendanceFixture(t, &mockAttendanceRepo{})

	_, err := svc.Record(context.Background(), RecordAttendanceRequest{
		UserID: "u1", GroupID: "g1", Date: "2026-03-15", Status: "tarde",
	})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestAttendanceServiceRatio(t *testing.T) {
	repo := &mockAttendanceRepo{distinctDates: 10, userDates: 8}
	svc := newAttendanceFixture(t, repo)

	ratio, err := svc.Ratio(context.Background(), "u1", "g1")
	require.NoError(t, err)
	assert.InDelta(t, 0.8, ratio, 0.0001)
}

func TestAttendanceServiceRatioNoSessions(t *testing.T) {
	repo := &mockAttendanceRepo{distinctDates: 0, userDates: 0}
	svc := newAttendanceFixture(t, repo)

	ratio, err := svc.Ratio(context.Background(), "u1", "g1")
	require.NoError(t, err)
	assert.Zero(t, ratio)
}

func TestAttendanceServiceSummary(t *testing.T) {
	repo := &mockAttendanceRepo{
		distinctDates: 4,
		summaries: []models.AttendanceSummary{
			{UserID: "u1", UserName: "Ana", DatesAttended: 3},
			{UserID: "u2", UserName: "Luis", DatesAttended: 0},
		},
	}
	svc := newAttendanceFixture(t, repo)

	summaries, err := svc.Summary(context.Background(), "g1")
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, 4, summaries[0].DatesTotal)
	assert.InDelta(t, 0.75, summaries[0].Ratio, 0.0001)
	assert.Zero(t, summaries[1].Ratio)
}

func TestAttendanceServiceUpdateStatus(t *testing.T) {
	repo := &mockAttendanceRepo{records: map[string]models.Attendance{
		"att-1": {ID: "att-1", UserID: "u1", GroupID: "g1", Status: models.AttendancePresent},
	}}
	svc := newAttendanceFixture(t, repo)

	attendance, err := svc.UpdateStatus(context.Background(), "att-1", models.AttendanceAbsent)
	require.NoError(t, err)
	assert.Equal(t, models.AttendanceAbsent, attendance.Status)
	require.NotNil(t, repo.updated)
}
