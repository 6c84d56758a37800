package auth

import "errors"

var (
	ErrInvalidCredentials         = errors.New("incorrect username or password")
	ErrInvalidToken               = errors.New("invalid or missing token")
	ErrUserInactive               = errors.New("user account is inactive")
	ErrRefreshTokenCookieNotFound = errors.New("refresh token cookie not found")
	ErrRefreshTokenRevoked        = errors.New("refresh token has been revoked")
)
