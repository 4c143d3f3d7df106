package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/eventlane/server/internal/auth"
)

func TestAdminAuthRejectsMissingToken(t *testing.T) {
	manager := auth.NewJWTManager("test-secret", time.Hour, "eventlane")
	handler := AdminAuth(manager, "test")(okHandler())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin/users", nil)
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}

func TestAdminAuthRejectsInvalidToken(t *testing.T) {
	manager := auth.NewJWTManager("test-secret", time.Hour, "eventlane")
	handler := AdminAuth(manager, "test")(okHandler())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin/users", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminAuthRejectsNonAdminRole(t *testing.T) {
	manager := auth.NewJWTManager("test-secret", time.Hour, "eventlane")
	token, err := manager.Generate("someone", "viewer")
	require.NoError(t, err)

	handler := AdminAuth(manager, "test")(okHandler())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminAuthAcceptsAdminToken(t *testing.T) {
	manager := auth.NewJWTManager("test-secret", time.Hour, "eventlane")
	token, err := manager.Generate("admin", auth.RoleAdmin)
	require.NoError(t, err)

	var gotSubject string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := AdminClaims(r.Context())
		require.True(t, ok)
		gotSubject = claims.Subject
		w.WriteHeader(http.StatusOK)
	})
	handler := AdminAuth(manager, "test")(inner)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "admin", gotSubject)
}
