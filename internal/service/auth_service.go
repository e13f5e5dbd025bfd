// Package service contains the business logic behind the HTTP handlers:
// accounts, profiles, search and interests.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vivahmatch/backend/internal/auth"
	"github.com/vivahmatch/backend/internal/constants"
	"github.com/vivahmatch/backend/internal/models"
	"github.com/vivahmatch/backend/internal/repository"
	"github.com/vivahmatch/backend/internal/utils"
)

// PasswordHasher hashes and verifies account passwords
type PasswordHasher interface {
	Hash(password string) (string, string, error)
	Verify(password, encodedHash, encodedSalt string) (bool, error)
}

// AuthService handles authentication operations
type AuthService struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	tokens   auth.TokenIssuer
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, hasher PasswordHasher, tokens auth.TokenIssuer) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

// RegisterUser creates a new user account
func (s *AuthService) RegisterUser(ctx context.Context, reg *models.UserRegistration) (*models.User, error) {
	if reg.Password != reg.ConfirmPassword {
		return nil, utils.NewValidationError("confirmPassword", constants.MsgPasswordsDoNotMatch)
	}

	email := utils.NormalizeEmail(reg.Email)

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, utils.NewDuplicateError("User", "email", email)
	}

	passwordHash, salt, err := s.hasher.Hash(reg.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.NewUser(uuid.New().String(), reg.Name, email)
	user.PasswordHash = passwordHash
	user.Salt = salt

	if err := s.userRepo.Create(ctx, user); err != nil {
		// A concurrent signup can still win the unique index
		if utils.IsDuplicateError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	utils.LogAuth(constants.LogEventRegister, user.ID, utils.MaskEmail(user.Email), true, "")

	return user.Sanitize(), nil
}

// AuthenticateUser verifies user credentials and issues an access token
func (s *AuthService) AuthenticateUser(ctx context.Context, creds *models.UserCredentials) (*models.LoginResult, error) {
	email := utils.NormalizeEmail(creds.Email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if utils.IsNotFoundError(err) {
			utils.LogAuth(constants.LogEventLogin, "", utils.MaskEmail(email), false, "user not found")
			return nil, utils.NewInvalidCredentialsError()
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	match, err := s.hasher.Verify(creds.Password, user.PasswordHash, user.Salt)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !match {
		utils.LogAuth(constants.LogEventLogin, user.ID, utils.MaskEmail(email), false, "invalid password")
		return nil, utils.NewInvalidCredentialsError()
	}

	accessToken, _, err := s.tokens.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	utils.LogAuth(constants.LogEventLogin, user.ID, utils.MaskEmail(email), true, "")

	return &models.LoginResult{
		User:        user.Sanitize(),
		AccessToken: accessToken,
		TokenType:   constants.TokenTypeBearer,
		ExpiresIn:   s.tokens.ExpiresInSeconds(),
	}, nil
}

// GetCurrentUser returns the sanitized account of userID
func (s *AuthService) GetCurrentUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Sanitize(), nil
}
