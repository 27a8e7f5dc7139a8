package service

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/backendac/actividades-api/internal/models"
	appErrors "github.com/backendac/actividades-api/pkg/errors"
)

func newWaitlistFixture(waitlist *mockWaitlistRepo, enrollments *mockEnrollmentRepo) *WaitlistService {
	activities := &mockActivityReader{activities: map[string]*models.Activity{"a1": {ID: "a1", Name: "Ajedrez"}}}
	users := &mockUserReader{users: map[string]*models.User{"u1": {ID: "u1", Role: models.RoleStudent, Active: true}}}
	return NewWaitlistService(waitlist, enrollments, activities, users, validator.New(), zap.NewNop())
}

func TestWaitlistServiceJoin(t *testing.T) {
	waitlist := &mockWaitlistRepo{}
	svc := newWaitlistFixture(waitlist, &mockEnrollmentRepo{})

	entry, err := svc.Join(context.Background(), JoinWaitlistRequest{UserID: "u1", ActivityID: "a1"})
	require.NoError(t, err)
	assert.Equal(t, "a1", entry.ActivityID)
	assert.False(t, entry.RegisteredAt.IsZero())
	assert.Len(t, waitlist.entries, 1)
}

func TestWaitlistServiceJoinAlreadyWaiting(t *testing.T) {
	waitlist := &mockWaitlistRepo{entries: []models.WaitlistEntry{{ID: "wl-1", UserID: "u1", ActivityID: "a1"}}}
	svc := newWaitlistFixture(waitlist, &mockEnrollmentRepo{})

	_, err := svc.Join(context.Background(), JoinWaitlistRequest{UserID: "u1", ActivityID: "a1"})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrAlreadyWaitlisted.Code, appErr.Code)
	assert.Equal(t, 406, appErr.Status)
}

func TestWaitlistServiceJoinAlreadySeated(t *testing.T) {
	enrollments := &mockEnrollmentRepo{activityMembers: map[string]bool{"u1|a1": true}}
	svc := newWaitlistFixture(&mockWaitlistRepo{}, enrollments)

	_, err := svc.Join(context.Background(), JoinWaitlistRequest{UserID: "u1", ActivityID: "a1"})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrAlreadyEnrolled.Code, appErr.Code)
}

func TestWaitlistServiceJoinUnknownActivity(t *testing.T) {
	svc := newWaitlistFixture(&mockWaitlistRepo{}, &mockEnrollmentRepo{})

	_, err := svc.Join(context.Background(), JoinWaitlistRequest{UserID: "u1", ActivityID: "missing"})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestWaitlistServiceLeave(t *testing.T) {
	waitlist := &mockWaitlistRepo{entries: []models.WaitlistEntry{{ID: "wl-1", UserID: "u1", ActivityID: "a1"}}}
	svc := newWaitlistFixture(waitlist, &mockEnrollmentRepo{})

	require.NoError(t, svc.Leave(context.Background(), "wl-1"))
	assert.Empty(t, waitlist.entries)
}

func TestWaitlistServiceLeaveNotFound(t *testing.T) {
	svc := newWaitlistFixture(&mockWaitlistRepo{}, &mockEnrollmentRepo{})

	err := svc.Leave(context.Background(), "missing")
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}
