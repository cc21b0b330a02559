package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService() *AuthService {
	return NewAuthService("admin", "secret123", "test-jwt-secret")
}

func TestLoginAndValidateAdminToken(t *testing.T) {
	svc := newTestAuthService()

	resp, err := svc.Login("admin", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Contains(t, resp.AdminID, "adm_")

	claims, err := svc.ValidateAdminToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.AdminID, claims.AdminID)
}

func TestLoginRejectsWrongCredentials(t *testing.T) {
	svc := newTestAuthService()

	_, err := svc.Login("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("nobody", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestPlayerTokenRoundTrip(t *testing.T) {
	svc := newTestAuthService()

	token, err := svc.GeneratePlayerToken("ABC123", "p_1a2b3c4d")
	require.NoError(t, err)

	claims, err := svc.ValidatePlayerToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ABC123", claims.RoomCode)
	assert.Equal(t, "p_1a2b3c4d", claims.PlayerID)
}

func TestTokensFromAnotherSecretAreRejected(t *testing.T) {
	svc := newTestAuthService()
	other := NewAuthService("admin", "secret123", "a-different-secret")

	token, err := other.GeneratePlayerToken("ABC123", "p_1a2b3c4d")
	require.NoError(t, err)

	_, err = svc.ValidatePlayerToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateAdminToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAdminTokenIsNotAPlayerToken(t *testing.T) {
	svc := newTestAuthService()

	resp, err := svc.Login("admin", "secret123")
	require.NoError(t, err)

	// Parses with the same secret but carries no room scope.
	claims, err := svc.ValidatePlayerToken(resp.Token)
	require.NoError(t, err)
	assert.Empty(t, claims.RoomCode)
	assert.Empty(t, claims.PlayerID)
}
