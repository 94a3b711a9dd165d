package service

import (
	"context"
	"fmt"
	"time"

	"backend/internal/apperrors"
	"backend/internal/model"
	"backend/internal/permission"
	"backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

// --- DTOs ---

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LoginResponse carries the tokens plus the principal data the frontend
// uses to decide which views to offer.
type LoginResponse struct {
	TokenPair
	UserID     string  `json:"user_id"`
	Username   string  `json:"username"`
	Role       string  `json:"role"`
	ClientID   *string `json:"client_id"`
	EmployeeID *string `json:"employee_id"`
}

// --- Interface ---

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Refresh(ctx context.Context, req RefreshTokenRequest) (LoginResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}

type authService struct {
	userRepo repository.UserRepository
	secret   []byte
}

func NewAuthService(userRepo repository.UserRepository, secret []byte) AuthService {
	return &authService{userRepo: userRepo, secret: secret}
}

// Login checks the credentials and issues an access/refresh token pair.
// Any mismatch, unknown username or wrong password alike, yields the same
// ErrInvalidCredentials so the response leaks nothing.
func (s *authService) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		return LoginResponse{}, apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return LoginResponse{}, apperrors.ErrInvalidCredentials
	}
	return s.issueTokens(ctx, user)
}

// Refresh rotates the refresh token and issues a fresh pair.
func (s *authService) Refresh(ctx context.Context, req RefreshTokenRequest) (LoginResponse, error) {
	stored, err := s.userRepo.FindRefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return LoginResponse{}, apperrors.ErrInvalidCredentials
	}
	if time.Now().After(stored.ExpiresAt) {
		_ = s.userRepo.DeleteRefreshToken(ctx, stored.Token)
		return LoginResponse{}, apperrors.ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByID(ctx, stored.UserID)
	if err != nil {
		return LoginResponse{}, apperrors.ErrInvalidCredentials
	}

	if err := s.userRepo.DeleteRefreshToken(ctx, stored.Token); err != nil {
		return LoginResponse{}, fmt.Errorf("failed to rotate refresh token: %w", err)
	}
	return s.issueTokens(ctx, user)
}

// Logout invalidates the refresh token. Idempotent: unknown tokens are
// cleared silently.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.userRepo.DeleteRefreshToken(ctx, refreshToken)
}

func (s *authService) issueTokens(ctx context.Context, user *model.User) (LoginResponse, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID.String(),
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(accessTokenTTL).Unix(),
	}
	if user.ClientID != nil {
		claims["client_id"] = user.ClientID.String()
	}
	if user.EmployeeID != nil {
		claims["employee_id"] = user.EmployeeID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessToken, err := token.SignedString(s.secret)
	if err != nil {
		return LoginResponse{}, fmt.Errorf("failed to sign token: %w", err)
	}

	refresh := model.RefreshToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	if err := s.userRepo.CreateRefreshToken(ctx, &refresh); err != nil {
		return LoginResponse{}, fmt.Errorf("failed to store refresh token: %w", err)
	}

	resp := LoginResponse{
		TokenPair: TokenPair{AccessToken: accessToken, RefreshToken: refresh.Token},
		UserID:    user.ID.String(),
		Username:  user.Username,
		Role:      string(permission.ParseRole(user.Role)),
	}
	if user.ClientID != nil {
		v := user.ClientID.String()
		resp.ClientID = &v
	}
	if user.EmployeeID != nil {
		v := user.EmployeeID.String()
		resp.EmployeeID = &v
	}
	return resp, nil
}
