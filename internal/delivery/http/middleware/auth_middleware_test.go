package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"trendora-backend/internal/domain"
	"trendora-backend/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issueToken(t *testing.T, role string) string {
	t.Helper()
	utils.SetSecret("middleware-test-secret")
	token, err := utils.GenerateJWT("u1", "ana@test.dev", "Ana", role, time.Hour)
	require.NoError(t, err)
	return token
}

func TestAuthMiddlewareSetsUserContext(t *testing.T) {
	token := issueToken(t, "user")

	var captured *domain.User
	handler := AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = r.Context().Value(domain.UserContextKey).(*domain.User)
	}))

	r := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, captured)
	assert.Equal(t, "u1", captured.ID)
	assert.Equal(t, "Ana", captured.Name)
	assert.False(t, captured.IsAdmin())
}

func TestAuthMiddlewareRejectsMissingAndInvalidTokens(t *testing.T) {
	handler := AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	r := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	r = httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	r.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := AuthMiddleware(AdminMiddleware(next))

	r := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/orders/o1", nil)
	r.Header.Set("Authorization", "Bearer "+issueToken(t, "user"))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusForbidden, w.Code)

	r = httptest.NewRequest(http.MethodDelete, "/api/v1/admin/orders/o1", nil)
	r.Header.Set("Authorization", "Bearer "+issueToken(t, domain.RoleAdmin))
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
