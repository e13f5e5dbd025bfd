package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivahmatch/backend/internal/auth"
	"github.com/vivahmatch/backend/internal/config"
	"github.com/vivahmatch/backend/internal/constants"
	"github.com/vivahmatch/backend/internal/models"
	"github.com/vivahmatch/backend/internal/repository"
	"github.com/vivahmatch/backend/internal/utils"
)

func newAuthService() (*AuthService, *auth.JWTService) {
	jwtService := auth.NewJWTService(&config.JWTSettings{
		Secret: "service-test-secret",
		Expiry: time.Hour,
		Issuer: constants.DefaultJWTIssuer,
	})
	return NewAuthService(repository.NewMemoryUserRepository(), testHasher(), jwtService), jwtService
}

func registration(email string) *models.UserRegistration {
	return &models.UserRegistration{
		Name:            "Asha Rao",
		Email:           email,
		Password:        "Str0ng!Pass",
		ConfirmPassword: "Str0ng!Pass",
	}
}

func TestAuthService_RegisterUser(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	user, err := svc.RegisterUser(ctx, registration("  Asha@Example.com "))
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "asha@example.com", user.Email)
	assert.Empty(t, user.PasswordHash)
	assert.Empty(t, user.Salt)

	_, err = svc.RegisterUser(ctx, registration("asha@example.com"))
	require.Error(t, err)
	assert.True(t, utils.IsDuplicateError(err))
	assert.Equal(t, 409, utils.StatusCode(err))
}

func TestAuthService_RegisterUser_PasswordMismatch(t *testing.T) {
	svc, _ := newAuthService()

	reg := registration("asha@example.com")
	reg.ConfirmPassword = "different"

	_, err := svc.RegisterUser(context.Background(), reg)
	require.Error(t, err)
	assert.True(t, utils.IsValidationError(err))
}

func TestAuthService_AuthenticateUser(t *testing.T) {
	svc, jwtService := newAuthService()
	ctx := context.Background()

	registered, err := svc.RegisterUser(ctx, registration("asha@example.com"))
	require.NoError(t, err)

	result, err := svc.AuthenticateUser(ctx, &models.UserCredentials{Email: "ASHA@example.com", Password: "Str0ng!Pass"})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, result.User.ID)
	assert.Empty(t, result.User.PasswordHash)
	assert.Equal(t, constants.TokenTypeBearer, result.TokenType)
	assert.Equal(t, 3600, result.ExpiresIn)

	claims, err := jwtService.ValidateToken(result.AccessToken, constants.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)

	_, err = svc.AuthenticateUser(ctx, &models.UserCredentials{Email: "asha@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	_, err = svc.AuthenticateUser(ctx, &models.UserCredentials{Email: "nobody@example.com", Password: "Str0ng!Pass"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
}

func TestAuthService_GetCurrentUser(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	registered, err := svc.RegisterUser(ctx, registration("asha@example.com"))
	require.NoError(t, err)

	user, err := svc.GetCurrentUser(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", user.Name)
	assert.Empty(t, user.Salt)

	_, err = svc.GetCurrentUser(ctx, "missing")
	assert.True(t, utils.IsNotFoundError(err))
}
