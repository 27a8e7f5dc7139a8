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
	"golang.org/x/crypto/bcrypt"

	"github.com/backendac/actividades-api/internal/models"
	"github.com/backendac/actividades-api/internal/repository"
	appErrors "github.com/backendac/actividades-api/pkg/errors"
)

type mockAuthUsers struct {
	byEmail   map[string]*models.User
	byID      map[string]*models.User
	passwords map[string]string
}

func (m *mockAuthUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAuthUsers) FindByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAuthUsers) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	if m.passwords == nil {
		m.passwords = make(map[string]string)
	}
	m.passwords[id] = passwordHash
	return nil
}

type mockSessionStore struct {
	sessions map[string]*models.Session
	deleted  []string
}

func (m *mockSessionStore) Save(ctx context.Context, session *models.Session) error {
	if m.sessions == nil {
		m.sessions = make(map[string]*models.Session)
	}
	m.sessions[session.UserID] = session
	return nil
}

func (m *mockSessionStore) Find(ctx context.Context, userID string) (*models.Session, error) {
	if s, ok := m.sessions[userID]; ok {
		return s, nil
	}
	return nil, repository.ErrSessionNotFound
}

func (m *mockSessionStore) Delete(ctx context.Context, userID string) error {
	m.deleted = append(m.deleted, userID)
	delete(m.sessions, userID)
	return nil
}

func newAuthFixture(t *testing.T) (*AuthService, *mockAuthUsers, *mockSessionStore) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secreta123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		ID:           "u1",
		Name:         "Ana",
		Email:        "ana@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleStudent,
		Active:       true,
	}
	users := &mockAuthUsers{
		byEmail: map[string]*models.User{user.Email: user},
		byID:    map[string]*models.User{user.ID: user},
	}
	sessions := &mockSessionStore{}
	svc := NewAuthService(users, sessions, validator.New(), zap.NewNop(), AuthConfig{
		Secret:            "test-secret",
		Expiration:        time.Hour,
		RefreshExpiration: 24 * time.Hour,
		Issuer:            "actividades-api",
	})
	return svc, users, sessions
}

func TestAuthServiceLogin(t *testing.T) {
	svc, _, sessions := newAuthFixture(t)

	pair, err := svc.Login(context.Background(), LoginRequest{Email: "ana@example.com", Password: "secreta123"})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Empty(t, pair.User.PasswordHash)
	require.Contains(t, sessions.sessions, "u1")
	assert.Equal(t, pair.AccessToken, sessions.sessions["u1"].AccessToken)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "ana@example.com", Password: "otra"})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
}

func TestAuthServiceLoginUnknownEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "nadie@example.com", Password: "secreta123"})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
}

func TestAuthServiceLoginInactiveAccount(t *testing.T) {
	svc, users, _ := newAuthFixture(t)
	users.byEmail["ana@example.com"].Active = false

	_, err := svc.Login(context.Background(), LoginRequest{Email: "ana@example.com", Password: "secreta123"})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErr.Code)
}

func TestAuthServiceValidateToken(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	pair, err := svc.Login(context.Background(), LoginRequest{Email: "ana@example.com", Password: "secreta123"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(context.Background(), pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, models.RoleStudent, claims.Role)
}

func TestAuthServiceValidateTokenAfterLogout(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	pair, err := svc.Login(context.Background(), LoginRequest{Email: "ana@example.com", Password: "secreta123"})
	require.NoError(t, err)
	require.NoError(t, svc.Logout(context.Background(), "u1"))

	_, err = svc.ValidateToken(context.Background(), pair.AccessToken)
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErr.Code)
}

func TestAuthServiceRefreshRotatesPair(t *testing.T) {
	svc, _, sessions := newAuthFixture(t)

	pair, err := svc.Login(context.Background(), LoginRequest{Email: "ana@example.com", Password: "secreta123"})
	require.NoError(t, err)

	rotated, err := svc.Refresh(context.Background(), RefreshRequest{RefreshToken: pair.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, rotated.AccessToken)
	assert.Equal(t, rotated.RefreshToken, sessions.sessions["u1"].RefreshToken)
}

func TestAuthServiceRefreshRevokedToken(t *testing.T) {
	svc, _, sessions := newAuthFixture(t)

	pair, err := svc.Login(context.Background(), LoginRequest{Email: "ana@example.com", Password: "secreta123"})
	require.NoError(t, err)
	sessions.sessions["u1"].RefreshToken = "otro-token"

	_, err = svc.Refresh(context.Background(), RefreshRequest{RefreshToken: pair.RefreshToken})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErr.Code)
}

func TestAuthServiceChangePasswordRevokesSession(t *testing.T) {
	svc, users, sessions := newAuthFixture(t)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "ana@example.com", Password: "secreta123"})
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), "u1", ChangePasswordRequest{
		OldPassword: "secreta123",
		NewPassword: "nueva-clave-9",
	})
	require.NoError(t, err)
	assert.Contains(t, users.passwords, "u1")
	assert.Contains(t, sessions.deleted, "u1")
}

func TestAuthServiceChangePasswordWrongCurrent(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	err := svc.ChangePassword(context.Background(), "u1", ChangePasswordRequest{
		OldPassword: "equivocada",
		NewPassword: "nueva-clave-9",
	})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrForbidden.Code, appErr.Code)
}
