package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/backendac/actividades-api/internal/models"
	appErrors "github.com/backendac/actividades-api/pkg/errors"
)

type mockEnrollmentRepo struct {
	enrollments     map[string]models.Enrollment
	groupMembers    map[string]bool
	activityMembers map[string]bool
	seatsLeft       int
	created         []*models.Enrollment
	deleted         []string
}

func (m *mockEnrollmentRepo) FindByID(ctx context.Context, id string) (*models.Enrollment, error) {
	if e, ok := m.enrollments[id]; ok {
		return &e, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockEnrollmentRepo) ListByGroup(ctx context.Context, groupID string) ([]models.EnrollmentDetail, error) {
	return nil, nil
}

func (m *mockEnrollmentRepo) ListByUser(ctx context.Context, userID string) ([]models.EnrollmentDetail, error) {
	return nil, nil
}

func (m *mockEnrollmentRepo) CountEnrolled(ctx context.Context, groupID string) (int, error) {
	return len(m.created), nil
}

func (m *mockEnrollmentRepo) ExistsForGroup(ctx context.Context, userID, groupID string) (bool, error) {
	return m.groupMembers[userID+"|"+groupID], nil
}

func (m *mockEnrollmentRepo) ExistsForActivity(ctx context.Context, userID, activityID string) (bool, error) {
	return m.activityMembers[userID+"|"+activityID], nil
}

func (m *mockEnrollmentRepo) CreateIfCapacity(ctx context.Context, enrollment *models.Enrollment) (bool, error) {
	if m.seatsLeft <= 0 {
		return false, nil
	}
	m.seatsLeft--
	enrollment.ID = "enr-new"
	enrollment.Status = models.EnrollmentStatusEnrolled
	m.created = append(m.created, enrollment)
	return true, nil
}

func (m *mockEnrollmentRepo) Delete(ctx context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	delete(m.enrollments, id)
	return nil
}

type mockWaitlistRepo struct {
	entries []models.WaitlistEntry
	removed []string
}

func (m *mockWaitlistRepo) FindByID(ctx context.Context, id string) (*models.WaitlistEntry, error) {
	for _, e := range m.entries {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockWaitlistRepo) ListByActivity(ctx context.Context, activityID string) ([]models.WaitlistEntry, error) {
	var list []models.WaitlistEntry
	for _, e := range m.entries {
		if e.ActivityID == activityID {
			list = append(list, e)
		}
	}
	return list, nil
}

func (m *mockWaitlistRepo) ListByUser(ctx context.Context, userID string) ([]models.WaitlistEntry, error) {
	var list []models.WaitlistEntry
	for _, e := range m.entries {
		if e.UserID == userID {
			list = append(list, e)
		}
	}
	return list, nil
}

func (m *mockWaitlistRepo) Exists(ctx context.Context, userID, activityID string) (bool, error) {
	for _, e := range m.entries {
		if e.UserID == userID && e.ActivityID == activityID {
			return true, nil
		}
	}
	return false, nil
}

// FindOldestByActivity mirrors the repository contract: oldest registration
// timestamp first, id as the tiebreak.
func (m *mockWaitlistRepo) FindOldestByActivity(ctx context.Context, activityID string) (*models.WaitlistEntry, error) {
	var oldest *models.WaitlistEntry
	for i := range m.entries {
		e := &m.entries[i]
		if e.ActivityID != activityID {
			continue
		}
		if oldest == nil ||
			e.RegisteredAt.Before(oldest.RegisteredAt) ||
			(e.RegisteredAt.Equal(oldest.RegisteredAt) && e.ID < oldest.ID) {
			oldest = e
		}
	}
	if oldest == nil {
		return nil, nil
	}
	entry := *oldest
	return &entry, nil
}

func (m *mockWaitlistRepo) Create(ctx context.Context, entry *models.WaitlistEntry) error {
	if entry.ID == "" {
		entry.ID = "wl-new"
	}
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockWaitlistRepo) Delete(ctx context.Context, id string) error {
	m.removed = append(m.removed, id)
	for i, e := range m.entries {
		if e.ID == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			break
		}
	}
	return nil
}

type mockGroupReader struct {
	groups map[string]*models.Group
}

func (m *mockGroupReader) FindByID(ctx context.Context, id string) (*models.Group, error) {
	if g, ok := m.groups[id]; ok {
		return g, nil
	}
	return nil, sql.ErrNoRows
}

type mockUserReader struct {
	users map[string]*models.User
}

func (m *mockUserReader) FindByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func newAdmissionFixture(seats int) (*EnrollmentService, *mockEnrollmentRepo, *mockWaitlistRepo) {
	repo := &mockEnrollmentRepo{seatsLeft: seats}
	waitlist := &mockWaitlistRepo{}
	groups := &mockGroupReader{groups: map[string]*models.Group{
		"g1": {ID: "g1", ActivityID: "a1", Capacity: seats},
	}}
	users := &mockUserReader{users: map[string]*models.User{
		"u1": {ID: "u1", Role: models.RoleStudent, Active: true},
	}}
	svc := NewEnrollmentService(repo, waitlist, groups, users, validator.New(), zap.NewNop())
	return svc, repo, waitlist
}

func TestEnrollmentServiceAdmitTakesSeat(t *testing.T) {
	svc, repo, _ := newAdmissionFixture(1)

	result, err := svc.Admit(context.Background(), AdmitRequest{UserID: "u1", GroupID: "g1"})
	require.NoError(t, err)
	assert.Equal(t, models.AdmissionEnrolled, result.Outcome)
	require.NotNil(t, result.Enrollment)
	assert.Equal(t, models.EnrollmentStatusEnrolled, result.Enrollment.Status)
	assert.Len(t, repo.created, 1)
}

func TestEnrollmentServiceAdmitFullGroupWaitlists(t *testing.T) {
	svc, repo, waitlist := newAdmissionFixture(0)

	result, err := svc.Admit(context.Background(), AdmitRequest{UserID: "u1", GroupID: "g1"})
	require.NoError(t, err)
	assert.Equal(t, models.AdmissionWaitlisted, result.Outcome)
	require.NotNil(t, result.WaitlistEntry)
	assert.Equal(t, "a1", result.WaitlistEntry.ActivityID)
	assert.Empty(t, repo.created)
	assert.Len(t, waitlist.entries, 1)
}

func TestEnrollmentServiceAdmitDuplicateGroup(t *testing.T) {
	svc, repo, _ := newAdmissionFixture(5)
	repo.groupMembers = map[string]bool{"u1|g1": true}

	_, err := svc.Admit(context.Background(), AdmitRequest{UserID: "u1", GroupID: "g1"})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrAlreadyEnrolled.Code, appErr.Code)
	assert.Equal(t, 406, appErr.Status)
}

func TestEnrollmentServiceAdmitDuplicateActivity(t *testing.T) {
	svc, repo, _ := newAdmissionFixture(5)
	repo.activityMembers = map[string]bool{"u1|a1": true}

	_, err := svc.Admit(context.Background(), AdmitRequest{UserID: "u1", GroupID: "g1"})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrAlreadyEnrolled.Code, appErr.Code)
}

func TestEnrollmentServiceAdmitAlreadyWaitlisted(t *testing.T) {
	svc, _, waitlist := newAdmissionFixture(5)
	waitlist.entries = []models.WaitlistEntry{{ID: "wl-1", UserID: "u1", ActivityID: "a1"}}

	_, err := svc.Admit(context.Background(), AdmitRequest{UserID: "u1", GroupID: "g1"})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrAlreadyWaitlisted.Code, appErr.Code)
}

func TestEnrollmentServiceAdmitRoleWithoutPermission(t *testing.T) {
	repo := &mockEnrollmentRepo{seatsLeft: 5}
	groups := &mockGroupReader{groups: map[string]*models.Group{"g1": {ID: "g1", ActivityID: "a1"}}}
	users := &mockUserReader{users: map[string]*models.User{
		"admin": {ID: "admin", Role: models.RoleAdministrator, Active: true},
	}}
	svc := NewEnrollmentService(repo, &mockWaitlistRepo{}, groups, users, validator.New(), zap.NewNop())

	_, err := svc.Admit(context.Background(), AdmitRequest{UserID: "admin", GroupID: "g1"})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrForbidden.Code, appErr.Code)
}

func TestEnrollmentServiceAdmitInactiveUser(t *testing.T) {
	repo := &mockEnrollmentRepo{seatsLeft: 5}
	groups := &mockGroupReader{groups: map[string]*models.Group{"g1": {ID: "g1", ActivityID: "a1"}}}
	users := &mockUserReader{users: map[string]*models.User{
		"u1": {ID: "u1", Role: models.RoleStudent, Active: false},
	}}
	svc := NewEnrollmentService(repo, &mockWaitlistRepo{}, groups, users, validator.New(), zap.NewNop())

	_, err := svc.Admit(context.Background(), AdmitRequest{UserID: "u1", GroupID: "g1"})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestEnrollmentServiceRemovePromotesOldestEntry(t *testing.T) {
	repo := &mockEnrollmentRepo{
		seatsLeft: 1,
		enrollments: map[string]models.Enrollment{
			"enr-1": {ID: "enr-1", UserID: "u1", GroupID: "g1", Status: models.EnrollmentStatusEnrolled},
		},
	}
	waitlist := &mockWaitlistRepo{entries: []models.WaitlistEntry{
		{ID: "wl-1", UserID: "u2", ActivityID: "a1", RegisteredAt: time.Now().AddDate(0, 0, -2)},
		{ID: "wl-2", UserID: "u3", ActivityID: "a1", RegisteredAt: time.Now().AddDate(0, 0, -1)},
	}}
	groups := &mockGroupReader{groups: map[string]*models.Group{"g1": {ID: "g1", ActivityID: "a1"}}}
	users := &mockUserReader{users: map[string]*models.User{}}
	svc := NewEnrollmentService(repo, waitlist, groups, users, validator.New(), zap.NewNop())

	removed, err := svc.Remove(context.Background(), "enr-1")
	require.NoError(t, err)
	assert.Equal(t, "enr-1", removed.ID)
	assert.Contains(t, repo.deleted, "enr-1")

	require.Len(t, repo.created, 1)
	assert.Equal(t, "u2", repo.created[0].UserID)
	assert.Equal(t, "g1", repo.created[0].GroupID)
	assert.Contains(t, waitlist.removed, "wl-1")
	assert.Len(t, waitlist.entries, 1)
}

func TestEnrollmentServiceRemovePromotesEarlierSameDayArrival(t *testing.T) {
	// Two registrations on the same day, minutes apart. The id of the later
	// one sorts first lexically, so only the timestamp can keep the order.
	morning := time.Date(2026, 4, 10, 9, 15, 0, 0, time.UTC)
	repo := &mockEnrollmentRepo{
		seatsLeft: 1,
		enrollments: map[string]models.Enrollment{
			"enr-1": {ID: "enr-1", UserID: "u1", GroupID: "g1", Status: models.EnrollmentStatusEnrolled},
		},
	}
	waitlist := &mockWaitlistRepo{entries: []models.WaitlistEntry{
		{ID: "wl-a", UserID: "u3", ActivityID: "a1", RegisteredAt: morning.Add(40 * time.Minute)},
		{ID: "wl-z", UserID: "u2", ActivityID: "a1", RegisteredAt: morning},
	}}
	groups := &mockGroupReader{groups: map[string]*models.Group{"g1": {ID: "g1", ActivityID: "a1"}}}
	svc := NewEnrollmentService(repo, waitlist, groups, &mockUserReader{}, validator.New(), zap.NewNop())

	_, err := svc.Remove(context.Background(), "enr-1")
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	assert.Equal(t, "u2", repo.created[0].UserID)
	assert.Contains(t, waitlist.removed, "wl-z")
}

func TestEnrollmentServiceRemoveKeepsEntryWhenGroupRefilled(t *testing.T) {
	repo := &mockEnrollmentRepo{
		seatsLeft: 0,
		enrollments: map[string]models.Enrollment{
			"enr-1": {ID: "enr-1", UserID: "u1", GroupID: "g1", Status: models.EnrollmentStatusEnrolled},
		},
	}
	waitlist := &mockWaitlistRepo{entries: []models.WaitlistEntry{
		{ID: "wl-1", UserID: "u2", ActivityID: "a1"},
	}}
	groups := &mockGroupReader{groups: map[string]*models.Group{"g1": {ID: "g1", ActivityID: "a1"}}}
	svc := NewEnrollmentService(repo, waitlist, groups, &mockUserReader{}, validator.New(), zap.NewNop())

	_, err := svc.Remove(context.Background(), "enr-1")
	require.NoError(t, err)
	assert.Empty(t, repo.created)
	assert.Len(t, waitlist.entries, 1)
}

func TestEnrollmentServiceRemoveNotFound(t *testing.T) {
	svc, _, _ := newAdmissionFixture(1)

	_, err := svc.Remove(context.Background(), "missing")
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}
