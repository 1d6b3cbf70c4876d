package jwt

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/guardtrack/patrol-backend-go/internal/domain/guard"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

type Service interface {
	GenerateAccessToken(guardID string, email string, role guard.Role) (token string, expiresAt int64, err error)
	GenerateRefreshToken(guardID string) (token string, expiresAt int64, err error)
	GenerateSSEToken(guardID string) (token string, expiresIn int, err error)
	ValidateSSEToken(tokenString string) (guardID string, err error)
	ParseRefreshToken(tokenString string) (guardID string, err error)
	JWTAuth() *jwtauth.JWTAuth
	RefreshTokenCookie(token string, expiresAt int64) *http.Cookie
	RevokeToken(token string)
	IsTokenRevoked(token string) bool
}

type JWTService struct {
	secretKey         string
	accessExpiration  string
	refreshExpiration string
	tokenAuth         *jwtauth.JWTAuth
	revokedTokens     map[string]int64
	mu                sync.RWMutex
}

func NewJWTService(secretKey string, accessExpiration string, refreshExpiration string) Service {
	return &JWTService{
		secretKey:         secretKey,
		accessExpiration:  accessExpiration,
		refreshExpiration: refreshExpiration,
		tokenAuth:         jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:     make(map[string]int64),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(guardID string, email string, role guard.Role) (string, int64, error) {
	expDuration, err := time.ParseDuration(j.accessExpiration)
	if err != nil {
		return "", 0, err
	}
	expiresAt := time.Now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"guard_id": guardID,
		"email":    email,
		"role":     string(role),
		"exp":      expiresAt,
		"iat":      time.Now().Unix(),
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	if err != nil {
		return "", 0, fmt.Errorf("failed to encode access token: %w", err)
	}
	return tokenString, expiresAt, nil
}

func (j *JWTService) GenerateRefreshToken(guardID string) (string, int64, error) {
	expDuration, err := time.ParseDuration(j.refreshExpiration)
	if err != nil {
		return "", 0, err
	}
	expiresAt := time.Now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"guard_id": guardID,
		"type":     "refresh",
		"exp":      expiresAt,
		"iat":      time.Now().Unix(),
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	if err != nil {
		return "", 0, fmt.Errorf("failed to encode refresh token: %w", err)
	}
	return tokenString, expiresAt, nil
}

// GenerateSSEToken mints a short-lived token passed as a query parameter on
// the event-stream endpoint, where the Authorization header is unavailable.
func (j *JWTService) GenerateSSEToken(guardID string) (string, int, error) {
	const expiresIn = 60 // seconds

	claims := map[string]interface{}{
		"guard_id": guardID,
		"type":     "sse",
		"exp":      time.Now().Add(expiresIn * time.Second).Unix(),
		"iat":      time.Now().Unix(),
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	if err != nil {
		return "", 0, fmt.Errorf("failed to encode sse token: %w", err)
	}
	return tokenString, expiresIn, nil
}

func (j *JWTService) ValidateSSEToken(tokenString string) (string, error) {
	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return "", fmt.Errorf("invalid sse token: %w", err)
	}
	if err := jwt.Validate(token); err != nil {
		return "", fmt.Errorf("sse token validation failed: %w", err)
	}

	claims, err := token.AsMap(context.Background())
	if err != nil {
		return "", err
	}
	if claims["type"] != "sse" {
		return "", fmt.Errorf("not an sse token")
	}
	guardID, _ := claims["guard_id"].(string)
	if guardID == "" {
		return "", fmt.Errorf("sse token has no guard_id")
	}
	return guardID, nil
}

func (j *JWTService) ParseRefreshToken(tokenString string) (string, error) {
	if j.IsTokenRevoked(tokenString) {
		return "", fmt.Errorf("refresh token revoked")
	}

	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return "", fmt.Errorf("invalid refresh token: %w", err)
	}
	if err := jwt.Validate(token); err != nil {
		return "", fmt.Errorf("refresh token validation failed: %w", err)
	}

	claims, err := token.AsMap(context.Background())
	if err != nil {
		return "", err
	}
	if claims["type"] != "refresh" {
		return "", fmt.Errorf("not a refresh token")
	}
	guardID, _ := claims["guard_id"].(string)
	if guardID == "" {
		return "", fmt.Errorf("refresh token has no guard_id")
	}
	return guardID, nil
}

func (j *JWTService) RefreshTokenCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Path:     "/api/v1/auth",
		Expires:  time.Unix(expiresAt, 0),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	}
}

func (j *JWTService) RevokeToken(token string) {
	j.mu.Lock()
	defer j.mu.Unlock()

	// Prune expired entries while we hold the lock.
	now := time.Now().Unix()
	for t, exp := range j.revokedTokens {
		if exp < now {
			delete(j.revokedTokens, t)
		}
	}
	j.revokedTokens[token] = now + 7*24*3600
}

func (j *JWTService) IsTokenRevoked(token string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, ok := j.revokedTokens[token]
	return ok
}
