package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gianfig/TecnicasReal/pkg/auth"
)

func TestAuthMiddleware(t *testing.T) {
	var gotUserID uint
	var gotRole string
	next := func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = r.Context().Value(UserIDKey).(uint)
		gotRole, _ = r.Context().Value(RoleKey).(string)
		w.WriteHeader(http.StatusOK)
	}

	token, err := auth.GenerateToken(7, "maria", "user")
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/movimientos", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	AuthMiddleware(next)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(7), gotUserID)
	assert.Equal(t, "user", gotRole)
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	called := false
	next := func(w http.ResponseWriter, r *http.Request) { called = true }

	req := httptest.NewRequest("POST", "/movimientos", nil)
	rec := httptest.NewRecorder()

	AuthMiddleware(next)(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	next := func(w http.ResponseWriter, r *http.Request) {}

	req := httptest.NewRequest("POST", "/movimientos", nil)
	req.Header.Set("Authorization", "Token abc123")
	rec := httptest.NewRecorder()

	AuthMiddleware(next)(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareBadToken(t *testing.T) {
	next := func(w http.ResponseWriter, r *http.Request) {}

	req := httptest.NewRequest("POST", "/movimientos", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec := httptest.NewRecorder()

	AuthMiddleware(next)(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
