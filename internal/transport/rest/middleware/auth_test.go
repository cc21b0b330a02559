package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boardquest/internal/service"
)

func newTestMiddleware(t *testing.T) (*AuthMiddleware, *service.AuthService) {
	t.Helper()
	authSvc := service.NewAuthService("admin", "secret123", "test-jwt-secret")
	return NewAuthMiddleware(authSvc), authSvc
}

func TestRequireAdminPassesClaimsThrough(t *testing.T) {
	mw, authSvc := newTestMiddleware(t)

	resp, err := authSvc.Login("admin", "secret123")
	require.NoError(t, err)

	var gotAdminID string
	handler := mw.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAdminID = GetAdminID(r.Context())
	}))

	req := httptest.NewRequest("POST", "/v1/rooms", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, resp.AdminID, gotAdminID)
}

func TestRequireAdminRejectsMissingOrBadToken(t *testing.T) {
	mw, _ := newTestMiddleware(t)

	handler := mw.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest("POST", "/v1/rooms", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest("POST", "/v1/rooms", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequirePlayerScopesRoomFromToken(t *testing.T) {
	mw, authSvc := newTestMiddleware(t)

	token, err := authSvc.GeneratePlayerToken("ABC123", "p_1a2b3c4d")
	require.NoError(t, err)

	var gotPlayerID, gotRoomCode string
	handler := mw.RequirePlayer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPlayerID = GetPlayerID(r.Context())
		gotRoomCode = GetRoomCode(r.Context())
	}))

	req := httptest.NewRequest("POST", "/v1/rooms/ABC123/roll", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "p_1a2b3c4d", gotPlayerID)
	assert.Equal(t, "ABC123", gotRoomCode)
}

func TestRequirePlayerAcceptsQueryToken(t *testing.T) {
	mw, authSvc := newTestMiddleware(t)

	token, err := authSvc.GeneratePlayerToken("ABC123", "p_1a2b3c4d")
	require.NoError(t, err)

	called := false
	handler := mw.RequirePlayer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest("GET", "/v1/rooms/ABC123/questions?token="+token, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}
