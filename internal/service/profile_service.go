package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/vivahmatch/backend/internal/astrology"
	"github.com/vivahmatch/backend/internal/constants"
	"github.com/vivahmatch/backend/internal/models"
	"github.com/vivahmatch/backend/internal/repository"
	"github.com/vivahmatch/backend/internal/utils"
)

// IDGenerator produces candidate profile ids
type IDGenerator func() (string, error)

// ProfileService handles profile lifecycle operations
type ProfileService struct {
	profileRepo repository.ProfileRepository
	astro       astrology.Calculator
	newID       IDGenerator
}

// NewProfileService creates a new ProfileService.
// A nil generator falls back to random 8-character alphanumeric ids.
func NewProfileService(profileRepo repository.ProfileRepository, astro astrology.Calculator, newID IDGenerator) *ProfileService {
	if newID == nil {
		newID = utils.GenerateProfileID
	}
	return &ProfileService{
		profileRepo: profileRepo,
		astro:       astro,
		newID:       newID,
	}
}

// CreateProfile creates the caller's profile. Each user owns at most one.
func (s *ProfileService) CreateProfile(ctx context.Context, userID string, in *models.ProfileCreate) (*models.Profile, error) {
	if _, err := s.profileRepo.GetByUserID(ctx, userID); err == nil {
		return nil, utils.NewConflictError(constants.MsgProfileExists)
	} else if !utils.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to check existing profile: %w", err)
	}

	id, err := s.uniqueID(ctx)
	if err != nil {
		return nil, err
	}

	profile := models.NewProfile(id, userID, in)
	s.astro.Calculate(profile.ID).Apply(profile)

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		if utils.IsDuplicateError(err) {
			return nil, utils.NewConflictError(constants.MsgProfileExists)
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	log.Info().
		Str("category", constants.LogCategoryProfile).
		Str("event", "created").
		Str("profile_id", profile.ID).
		Str(constants.UserIDContextKey, userID).
		Msg("Profile created")

	return profile, nil
}

// uniqueID draws ids until one is unused
func (s *ProfileService) uniqueID(ctx context.Context) (string, error) {
	for attempt := 0; attempt < constants.ProfileIDMaxAttempts; attempt++ {
		id, err := s.newID()
		if err != nil {
			return "", fmt.Errorf("failed to generate profile id: %w", err)
		}

		taken, err := s.profileRepo.ExistsByID(ctx, id)
		if err != nil {
			return "", fmt.Errorf("failed to check profile id: %w", err)
		}
		if !taken {
			return id, nil
		}
	}
	return "", utils.NewInternalServerError(fmt.Errorf("no free profile id after %d attempts", constants.ProfileIDMaxAttempts))
}

// GetProfile returns a profile by id. Inactive profiles are only visible to their owner.
func (s *ProfileService) GetProfile(ctx context.Context, profileID, viewerUserID string) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if !profile.Active && profile.UserID != viewerUserID {
		return nil, utils.NewNotFoundError("Profile", profileID)
	}
	return profile, nil
}

// GetMyProfile returns the profile owned by userID
func (s *ProfileService) GetMyProfile(ctx context.Context, userID string) (*models.Profile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}

// UpdateProfile merges a partial update into the caller's own profile
func (s *ProfileService) UpdateProfile(ctx context.Context, userID, profileID string, update *models.ProfileUpdate) (*models.Profile, error) {
	if update.IsEmpty() {
		return nil, utils.NewBadRequestError("No fields to update")
	}

	profile, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if profile.UserID != userID {
		return nil, utils.NewForbiddenError("You can only update your own profile")
	}

	update.ApplyTo(profile)

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	log.Info().
		Str("category", constants.LogCategoryProfile).
		Str("event", "updated").
		Str("profile_id", profile.ID).
		Bool("active", profile.Active).
		Msg("Profile updated")

	return profile, nil
}
