package auth

import "context"

// AuthService authenticates users and issues token pairs.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)

	// Logout revokes the refresh token so it can no longer mint
	// access tokens
	Logout(ctx context.Context, refreshToken string) error

	// Refresh exchanges a valid refresh token for a new access token
	Refresh(ctx context.Context, refreshToken string) (AccessTokenResponse, error)
}
