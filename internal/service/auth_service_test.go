package service

import (
	"context"
	"testing"
	"time"

	"backend/internal/apperrors"
	"backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture(t *testing.T) (AuthService, *fakeUserRepo) {
	t.Helper()

	users := newFakeUserRepo()
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), &model.User{
		Username: "ana",
		Password: string(hashed),
		Role:     "frontdesk",
	}))

	return NewAuthService(users, []byte("test-secret")), users
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthFixture(t)

	res, err := svc.Login(context.Background(), LoginRequest{Username: "ana", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)
	assert.Equal(t, "frontdesk", res.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), LoginRequest{Username: "ana", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), LoginRequest{Username: "ghost", Password: "secret1"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, _ := newAuthFixture(t)

	login, err := svc.Login(context.Background(), LoginRequest{Username: "ana", Password: "secret1"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The old token was revoked by the rotation
	_, err = svc.Refresh(context.Background(), RefreshTokenRequest{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestRefreshExpiredToken(t *testing.T) {
	svc, users := newAuthFixture(t)

	login, err := svc.Login(context.Background(), LoginRequest{Username: "ana", Password: "secret1"})
	require.NoError(t, err)

	// Backdate the stored token past its expiry
	users.mu.Lock()
	stored := users.tokens[login.RefreshToken]
	stored.ExpiresAt = time.Now().Add(-time.Hour)
	users.tokens[login.RefreshToken] = stored
	users.mu.Unlock()

	_, err = svc.Refresh(context.Background(), RefreshTokenRequest{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogoutIsIdempotent(t *testing.T) {
	svc, _ := newAuthFixture(t)

	login, err := svc.Login(context.Background(), LoginRequest{Username: "ana", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), login.RefreshToken))
	require.NoError(t, svc.Logout(context.Background(), login.RefreshToken))
	require.NoError(t, svc.Logout(context.Background(), ""))
}
