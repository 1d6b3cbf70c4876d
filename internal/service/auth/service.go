package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/guardtrack/patrol-backend-go/internal/domain/auth"
	"github.com/guardtrack/patrol-backend-go/internal/domain/guard"
	"github.com/guardtrack/patrol-backend-go/internal/pkg/jwt"
)

type AuthServiceImpl struct {
	guardRepo  guard.GuardRepository
	jwtService jwt.Service
}

func NewAuthService(guardRepo guard.GuardRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		guardRepo:  guardRepo,
		jwtService: jwtService,
	}
}

// Login verifies credentials and issues an access/refresh token pair. Unknown
// email and wrong password are indistinguishable to the caller.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	g, err := s.guardRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, guard.ErrGuardNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(g.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(g.ID, g.Email, g.Role)
	if err != nil {
		return auth.LoginResponse{}, err
	}
	refreshToken, _, err := s.jwtService.GenerateRefreshToken(g.ID)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	return auth.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
		GuardID:      g.ID,
		FullName:     g.FullName,
		Role:         string(g.Role),
	}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The guard
// is re-read so a deactivated account stops refreshing immediately.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.RefreshResponse, error) {
	guardID, err := s.jwtService.ParseRefreshToken(refreshToken)
	if err != nil {
		return auth.RefreshResponse{}, auth.ErrTokenExpired
	}

	g, err := s.guardRepo.GetByID(ctx, guardID)
	if err != nil {
		if errors.Is(err, guard.ErrGuardNotFound) {
			return auth.RefreshResponse{}, auth.ErrTokenRevoked
		}
		return auth.RefreshResponse{}, err
	}

	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(g.ID, g.Email, g.Role)
	if err != nil {
		return auth.RefreshResponse{}, err
	}
	return auth.RefreshResponse{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken != "" {
		s.jwtService.RevokeToken(refreshToken)
	}
	return nil
}
