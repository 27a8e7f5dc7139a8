package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/backendac/actividades-api/internal/models"
)

func performWithClaims(t *testing.T, mw gin.HandlerFunc, claims *models.JWTClaims, path string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/usuarios/:id", func(c *gin.Context) {
		if claims != nil {
			c.Set(ContextUserKey, claims)
		}
		mw(c)
		if c.IsAborted() {
			return
		}
		c.Status(http.StatusOK)
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestRequireCapabilityAllows(t *testing.T) {
	claims := &models.JWTClaims{UserID: "admin", Role: models.RoleAdministrator}
	w := performWithClaims(t, RequireCapability(models.CapManageUsers), claims, "/usuarios/u1")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRequireCapabilityForbidsRoleWithoutIt(t *testing.T) {
	claims := &models.JWTClaims{UserID: "u1", Role: models.RoleStudent}
	w := performWithClaims(t, RequireCapability(models.CapManageUsers), claims, "/usuarios/u1")
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireCapabilityMissingClaims(t *testing.T) {
	w := performWithClaims(t, RequireCapability(models.CapManageUsers), nil, "/usuarios/u1")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireCapabilityOrSelfAllowsOwnResource(t *testing.T) {
	claims := &models.JWTClaims{UserID: "u1", Role: models.RoleStudent}
	w := performWithClaims(t, RequireCapabilityOrSelf(models.CapManageUsers), claims, "/usuarios/u1")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRequireCapabilityOrSelfForbidsOtherResource(t *testing.T) {
	claims := &models.JWTClaims{UserID: "u1", Role: models.RoleStudent}
	w := performWithClaims(t, RequireCapabilityOrSelf(models.CapManageUsers), claims, "/usuarios/u2")
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireCapabilityOrSelfCapabilityWins(t *testing.T) {
	claims := &models.JWTClaims{UserID: "admin", Role: models.RoleAdministrator}
	w := performWithClaims(t, RequireCapabilityOrSelf(models.CapManageUsers), claims, "/usuarios/u2")
	require.Equal(t, http.StatusOK, w.Code)
}
