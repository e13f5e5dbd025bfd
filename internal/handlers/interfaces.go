// Package handlers provides HTTP request handlers for the matchmaking API.
package handlers

import (
	"context"

	"github.com/vivahmatch/backend/internal/models"
	"github.com/vivahmatch/backend/internal/service"
)

// AuthServiceInterface defines the methods required from the authentication service.
type AuthServiceInterface interface {
	// RegisterUser registers a new account; a taken email is a duplicate error.
	RegisterUser(ctx context.Context, reg *models.UserRegistration) (*models.User, error)

	// AuthenticateUser checks credentials and issues an access token.
	AuthenticateUser(ctx context.Context, creds *models.UserCredentials) (*models.LoginResult, error)

	// GetCurrentUser returns the sanitized account of userID.
	GetCurrentUser(ctx context.Context, userID string) (*models.User, error)
}

// ProfileServiceInterface defines the methods required from the profile service.
type ProfileServiceInterface interface {
	CreateProfile(ctx context.Context, userID string, in *models.ProfileCreate) (*models.Profile, error)
	GetProfile(ctx context.Context, profileID, viewerUserID string) (*models.Profile, error)
	GetMyProfile(ctx context.Context, userID string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID, profileID string, update *models.ProfileUpdate) (*models.Profile, error)
}

// SearchServiceInterface defines the methods required from the search service.
type SearchServiceInterface interface {
	// SearchProfiles validates the request and returns matching profiles in collection order.
	SearchProfiles(ctx context.Context, req *models.SearchRequest) ([]*models.Profile, error)

	// FeaturedProfiles returns up to limit random active, verified profiles.
	FeaturedProfiles(ctx context.Context, limit int) ([]*models.Profile, error)
}

// InterestServiceInterface defines the methods required from the interest service.
type InterestServiceInterface interface {
	SendInterest(ctx context.Context, userID string, in *models.InterestCreate) (*models.Interest, error)
	RespondToInterest(ctx context.Context, userID, interestID, status string) (*models.Interest, error)
	ListReceived(ctx context.Context, userID, profileID string) ([]*models.Interest, error)
	ListSent(ctx context.Context, userID, profileID string) ([]*models.Interest, error)
}

// HealthServiceInterface reports backend health.
type HealthServiceInterface interface {
	Check(ctx context.Context) (*service.HealthStatus, error)
}

var (
	_ AuthServiceInterface     = (*service.AuthService)(nil)
	_ ProfileServiceInterface  = (*service.ProfileService)(nil)
	_ SearchServiceInterface   = (*service.SearchService)(nil)
	_ InterestServiceInterface = (*service.InterestService)(nil)
	_ HealthServiceInterface   = (*service.HealthService)(nil)
)
