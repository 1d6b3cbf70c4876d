package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guardtrack/patrol-backend-go/internal/domain/guard"
)

func newTestService() Service {
	return NewJWTService("test-secret-key", "1h", "168h")
}

func TestAccessTokenCarriesClaims(t *testing.T) {
	svc := newTestService()

	tokenStr, expiresAt, err := svc.GenerateAccessToken("guard-1", "ana@example.com", guard.RoleGuard)
	require.NoError(t, err)
	assert.NotEmpty(t, tokenStr)
	assert.Greater(t, expiresAt, int64(0))

	token, err := svc.JWTAuth().Decode(tokenStr)
	require.NoError(t, err)

	guardID, _ := token.Get("guard_id")
	assert.Equal(t, "guard-1", guardID)
	role, _ := token.Get("role")
	assert.Equal(t, "guard", role)
}

func TestRefreshTokenRoundtrip(t *testing.T) {
	svc := newTestService()

	tokenStr, _, err := svc.GenerateRefreshToken("guard-1")
	require.NoError(t, err)

	guardID, err := svc.ParseRefreshToken(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, "guard-1", guardID)
}

func TestParseRefreshTokenRejectsAccessToken(t *testing.T) {
	svc := newTestService()

	tokenStr, _, err := svc.GenerateAccessToken("guard-1", "ana@example.com", guard.RoleGuard)
	require.NoError(t, err)

	_, err = svc.ParseRefreshToken(tokenStr)
	assert.Error(t, err)
}

func TestRevokedRefreshTokenIsRejected(t *testing.T) {
	svc := newTestService()

	tokenStr, _, err := svc.GenerateRefreshToken("guard-1")
	require.NoError(t, err)

	svc.RevokeToken(tokenStr)
	assert.True(t, svc.IsTokenRevoked(tokenStr))

	_, err = svc.ParseRefreshToken(tokenStr)
	assert.Error(t, err)
}

func TestSSETokenRoundtrip(t *testing.T) {
	svc := newTestService()

	tokenStr, expiresIn, err := svc.GenerateSSEToken("guard-1")
	require.NoError(t, err)
	assert.Equal(t, 60, expiresIn)

	guardID, err := svc.ValidateSSEToken(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, "guard-1", guardID)
}

func TestValidateSSETokenRejectsOtherTypes(t *testing.T) {
	svc := newTestService()

	refresh, _, err := svc.GenerateRefreshToken("guard-1")
	require.NoError(t, err)

	_, err = svc.ValidateSSEToken(refresh)
	assert.Error(t, err)

	_, err = svc.ValidateSSEToken("garbage")
	assert.Error(t, err)
}

func TestRefreshTokenCookie(t *testing.T) {
	svc := newTestService()

	cookie := svc.RefreshTokenCookie("token-value", 1800000000)
	assert.Equal(t, "refresh_token", cookie.Name)
	assert.Equal(t, "token-value", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
}
