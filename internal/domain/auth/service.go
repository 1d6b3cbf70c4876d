package auth

import "context"

// AuthService is minimal identity plumbing: the core operations only consume
// the resolved guard identity from the token claims.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (RefreshResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}
