package auth

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/rosterlab/shift-backend-go/internal/domain/auth"
	"github.com/rosterlab/shift-backend-go/internal/domain/user"
	"github.com/rosterlab/shift-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	user.UserRepository
	jwt.Service
}

func NewAuthService(userRepository user.UserRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		UserRepository: userRepository,
		Service:        jwtService,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	userData, err := a.UserRepository.GetByUsername(ctx, req.Username)
	if err != nil {
		if err == pgx.ErrNoRows {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	if !userData.IsActive {
		return auth.LoginResponse{}, auth.ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	accessToken, expiresAt, err := a.Service.GenerateAccessToken(userData.ID, userData.Username, userData.EmployeeID, userData.Role)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	refreshToken, _, err := a.Service.GenerateRefreshToken(userData.ID)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}

	if err := a.UserRepository.UpdateLastLogin(ctx, userData.ID); err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to update last login: %w", err)
	}

	return auth.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
		UserID:       userData.ID,
		Username:     userData.Username,
		Role:         string(userData.Role),
		EmployeeID:   userData.EmployeeID,
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if _, err := a.verifyRefreshToken(ctx, refreshToken); err != nil {
		return err
	}
	a.Service.RevokeToken(refreshToken)
	return nil
}

// Refresh implements auth.AuthService.
func (a *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.AccessTokenResponse, error) {
	userID, err := a.verifyRefreshToken(ctx, refreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, err
	}
	if a.Service.IsTokenRevoked(refreshToken) {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return auth.AccessTokenResponse{}, user.ErrUserNotFound
		}
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	if !userData.IsActive {
		return auth.AccessTokenResponse{}, auth.ErrUserInactive
	}

	accessToken, expiresAt, err := a.Service.GenerateAccessToken(userData.ID, userData.Username, userData.EmployeeID, userData.Role)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	return auth.AccessTokenResponse{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
	}, nil
}

// verifyRefreshToken checks the signature, expiry, and token type, and
// returns the subject user id.
func (a *AuthServiceImpl) verifyRefreshToken(ctx context.Context, refreshToken string) (string, error) {
	token, err := jwtauth.VerifyToken(a.Service.JWTAuth(), refreshToken)
	if err != nil {
		return "", auth.ErrInvalidToken
	}
	claims, err := token.AsMap(ctx)
	if err != nil {
		return "", auth.ErrInvalidToken
	}
	if tokenType, ok := claims["type"].(string); !ok || tokenType != "refresh" {
		return "", auth.ErrInvalidToken
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", auth.ErrInvalidToken
	}
	return userID, nil
}
