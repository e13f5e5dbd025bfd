package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/vivahmatch/backend/internal/config"
	"github.com/vivahmatch/backend/internal/constants"
	"github.com/vivahmatch/backend/internal/utils"
)

// ErrInvalidSigningMethod is returned by the key func for non-HMAC tokens.
var ErrInvalidSigningMethod = errors.New("invalid signing method")

// CustomClaims represents the claims in a JWT token
type CustomClaims struct {
	UserID    string `json:"uid"`
	Email     string `json:"email"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// JWTService provides JWT token generation and validation functionality
type JWTService struct {
	Config *config.JWTSettings
}

// NewJWTService creates a new JWTService instance
func NewJWTService(cfg *config.JWTSettings) *JWTService {
	return &JWTService{
		Config: cfg,
	}
}

// GetConfig returns the JWT settings, falling back to defaults when unset
func (s *JWTService) GetConfig() *config.JWTSettings {
	if s.Config == nil {
		return &config.JWTSettings{
			Expiry: constants.DefaultJWTExpiry,
			Issuer: constants.DefaultJWTIssuer,
		}
	}
	return s.Config
}

// GenerateAccessToken issues an access token for a user.
// It returns the signed token and its unique id.
func (s *JWTService) GenerateAccessToken(userID, email string) (string, string, error) {
	cfg := s.GetConfig()
	jwtID := uuid.New().String()

	now := time.Now()
	claims := CustomClaims{
		UserID:    userID,
		Email:     email,
		TokenType: constants.TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.Expiry)),
			NotBefore: jwt.NewNumericDate(now),
			ID:        jwtID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, jwtID, nil
}

// ValidateToken validates a JWT token and returns its claims if valid
func (s *JWTService) ValidateToken(tokenString string, expectedType string) (*CustomClaims, error) {
	cfg := s.GetConfig()

	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSigningMethod
		}
		return []byte(cfg.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, utils.NewExpiredTokenError()
		}
		return nil, utils.NewInvalidTokenError()
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, utils.NewInvalidTokenError()
	}

	if claims.TokenType != expectedType || claims.UserID == "" {
		return nil, utils.NewInvalidTokenError()
	}

	if cfg.Issuer != "" && claims.Issuer != cfg.Issuer {
		return nil, utils.NewInvalidTokenError()
	}

	return claims, nil
}

// ExpiresInSeconds reports the access token lifetime for login responses
func (s *JWTService) ExpiresInSeconds() int {
	return int(s.GetConfig().Expiry.Seconds())
}
