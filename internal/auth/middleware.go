// Package auth provides authentication for the API: JWT access tokens,
// Argon2id password hashing and the middleware that reads bearer tokens.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/vivahmatch/backend/internal/constants"
	"github.com/vivahmatch/backend/internal/utils"
)

// ContextKey is a custom type for context keys to prevent collisions.
type ContextKey string

// Context keys for storing authenticated user information.
const (
	// UserIDContextKey is the context key for storing the authenticated user ID.
	UserIDContextKey ContextKey = constants.UserIDContextKey

	// EmailContextKey is the context key for storing the authenticated user's email.
	EmailContextKey ContextKey = constants.EmailContextKey
)

// AuthProvider defines methods for different authentication mechanisms.
type AuthProvider interface {
	// Authenticate returns the user id and email carried by the request.
	Authenticate(r *http.Request) (string, string, error)
}

// JWTAuthProvider implements JWT-based authentication from the
// Authorization bearer header.
type JWTAuthProvider struct {
	jwtService JWTValidator
}

// NewJWTAuthProvider creates a new JWTAuthProvider with the specified JWT validator.
func NewJWTAuthProvider(jwtService JWTValidator) *JWTAuthProvider {
	return &JWTAuthProvider{
		jwtService: jwtService,
	}
}

// Authenticate implements the AuthProvider interface for JWT authentication.
func (p *JWTAuthProvider) Authenticate(r *http.Request) (string, string, error) {
	authHeader := r.Header.Get(constants.HeaderAuthorization)
	if authHeader == "" || !strings.HasPrefix(authHeader, constants.BearerTokenPrefix) {
		return "", "", utils.ErrUnauthorized
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, constants.BearerTokenPrefix))

	claims, err := p.jwtService.ValidateToken(token, constants.TokenTypeAccess)
	if err != nil {
		return "", "", err
	}

	return claims.UserID, claims.Email, nil
}

// authenticate tries each provider in order and returns the first success
func authenticate(r *http.Request, providers []AuthProvider) (string, string, error) {
	lastErr := utils.ErrUnauthorized
	for _, provider := range providers {
		userID, email, err := provider.Authenticate(r)
		if err == nil {
			return userID, email, nil
		}
		lastErr = err
	}
	return "", "", lastErr
}

// WithUser returns a copy of ctx carrying the authenticated user.
func WithUser(ctx context.Context, userID, email string) context.Context {
	ctx = context.WithValue(ctx, UserIDContextKey, userID)
	return context.WithValue(ctx, EmailContextKey, email)
}

// RequireAuth is a middleware that rejects requests without valid credentials.
func RequireAuth(providers ...AuthProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := middleware.GetReqID(r.Context())

			userID, email, err := authenticate(r, providers)
			if err != nil {
				log.Info().
					Err(err).
					Str(constants.RequestIDContextKey, requestID).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Msg("Authentication failed")

				var appErr *utils.AppError
				if errors.As(err, &appErr) {
					utils.ErrorFromAppError(w, appErr)
				} else {
					utils.Unauthorized(w, constants.MsgAuthRequired)
				}
				return
			}

			log.Debug().
				Str(constants.UserIDContextKey, userID).
				Str(constants.RequestIDContextKey, requestID).
				Str("path", r.URL.Path).
				Msg("User authenticated")

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), userID, email)))
		})
	}
}

// OptionalAuth attaches the user when credentials are valid and otherwise
// continues anonymously.
func OptionalAuth(providers ...AuthProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID, email, err := authenticate(r, providers); err == nil {
				r = r.WithContext(WithUser(r.Context(), userID, email))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetUserID extracts the user ID from the request context.
func GetUserID(r *http.Request) (string, bool) {
	userID, ok := r.Context().Value(UserIDContextKey).(string)
	return userID, ok && userID != ""
}

// GetEmail extracts the email from the request context.
func GetEmail(r *http.Request) (string, bool) {
	email, ok := r.Context().Value(EmailContextKey).(string)
	return email, ok
}

// IsAuthenticated checks if the request is authenticated.
func IsAuthenticated(r *http.Request) bool {
	_, ok := GetUserID(r)
	return ok
}
