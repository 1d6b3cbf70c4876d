package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/guardtrack/patrol-backend-go/internal/domain/auth"
	"github.com/guardtrack/patrol-backend-go/internal/domain/guard"
	"github.com/guardtrack/patrol-backend-go/internal/pkg/jwt"
)

const testPassword = "correct-horse-battery"

type stubGuardRepo struct {
	guard.GuardRepository
	guards []guard.Guard
}

func (s *stubGuardRepo) GetByEmail(ctx context.Context, email string) (guard.Guard, error) {
	for _, g := range s.guards {
		if g.Email == email {
			return g, nil
		}
	}
	return guard.Guard{}, guard.ErrGuardNotFound
}

func (s *stubGuardRepo) GetByID(ctx context.Context, id string) (guard.Guard, error) {
	for _, g := range s.guards {
		if g.ID == id {
			return g, nil
		}
	}
	return guard.Guard{}, guard.ErrGuardNotFound
}

func newTestService(t *testing.T) (auth.AuthService, *stubGuardRepo) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &stubGuardRepo{guards: []guard.Guard{{
		ID:           "guard-1",
		FullName:     "Ana Torres",
		Email:        "ana@example.com",
		PasswordHash: string(hash),
		Role:         guard.RoleGuard,
	}}}

	jwtSvc := jwt.NewJWTService("test-secret-key", "1h", "168h")
	return NewAuthService(repo, jwtSvc), repo
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "ana@example.com",
		Password: testPassword,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "guard-1", resp.GuardID)
	assert.Equal(t, "guard", resp.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "ana@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newTestService(t)

	// Unknown email reports the same error as a wrong password.
	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: testPassword,
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginValidation(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "not-an-email"})
	assert.Error(t, err)
}

func TestRefresh(t *testing.T) {
	svc, _ := newTestService(t)

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "ana@example.com",
		Password: testPassword,
	})
	require.NoError(t, err)

	resp, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestRefreshInvalidToken(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Refresh(context.Background(), "garbage")
	assert.ErrorIs(t, err, auth.ErrTokenExpired)
}

func TestRefreshAfterGuardRemoved(t *testing.T) {
	svc, repo := newTestService(t)

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "ana@example.com",
		Password: testPassword,
	})
	require.NoError(t, err)

	repo.guards = nil
	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrTokenRevoked)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	svc, _ := newTestService(t)

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "ana@example.com",
		Password: testPassword,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), login.RefreshToken))

	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assert.Error(t, err)
}
