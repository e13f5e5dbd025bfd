package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vivahmatch/backend/internal/constants"
	"github.com/vivahmatch/backend/internal/models"
	"github.com/vivahmatch/backend/internal/repository"
	"github.com/vivahmatch/backend/internal/utils"
)

// InterestService handles sending and answering interests
type InterestService struct {
	interestRepo repository.InterestRepository
	profileRepo  repository.ProfileRepository
}

// NewInterestService creates a new InterestService
func NewInterestService(interestRepo repository.InterestRepository, profileRepo repository.ProfileRepository) *InterestService {
	return &InterestService{
		interestRepo: interestRepo,
		profileRepo:  profileRepo,
	}
}

// SendInterest records an interest from one of the caller's profiles to another profile
func (s *InterestService) SendInterest(ctx context.Context, userID string, in *models.InterestCreate) (*models.Interest, error) {
	if in.FromProfileID == in.ToProfileID {
		return nil, utils.NewValidationError("toProfileId", constants.MsgSelfInterest)
	}

	if _, err := s.ownedProfile(ctx, userID, in.FromProfileID); err != nil {
		return nil, err
	}

	to, err := s.profileRepo.GetByID(ctx, in.ToProfileID)
	if err != nil {
		return nil, err
	}
	if !to.Active {
		return nil, utils.NewNotFoundError("Profile", in.ToProfileID)
	}

	interest := models.NewInterest(uuid.New().String(), in.FromProfileID, in.ToProfileID, in.Message)
	if err := s.interestRepo.Create(ctx, interest); err != nil {
		if utils.IsDuplicateError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create interest: %w", err)
	}

	log.Info().
		Str("category", constants.LogCategoryInterest).
		Str("event", "sent").
		Str("interest_id", interest.ID).
		Str("from", interest.FromProfileID).
		Str("to", interest.ToProfileID).
		Msg("Interest sent")

	return interest, nil
}

// RespondToInterest accepts or declines an interest addressed to the caller's profile
func (s *InterestService) RespondToInterest(ctx context.Context, userID, interestID, status string) (*models.Interest, error) {
	interest, err := s.interestRepo.GetByID(ctx, interestID)
	if err != nil {
		return nil, err
	}

	if _, err := s.ownedProfile(ctx, userID, interest.ToProfileID); err != nil {
		return nil, err
	}

	updated, err := s.interestRepo.UpdateStatus(ctx, interestID, status)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("category", constants.LogCategoryInterest).
		Str("event", status).
		Str("interest_id", updated.ID).
		Msg("Interest answered")

	return updated, nil
}

// ListReceived returns the interests addressed to one of the caller's profiles
func (s *InterestService) ListReceived(ctx context.Context, userID, profileID string) ([]*models.Interest, error) {
	if _, err := s.ownedProfile(ctx, userID, profileID); err != nil {
		return nil, err
	}
	return s.interestRepo.ListReceived(ctx, profileID)
}

// ListSent returns the interests sent from one of the caller's profiles
func (s *InterestService) ListSent(ctx context.Context, userID, profileID string) ([]*models.Interest, error) {
	if _, err := s.ownedProfile(ctx, userID, profileID); err != nil {
		return nil, err
	}
	return s.interestRepo.ListSent(ctx, profileID)
}

// ownedProfile loads profileID and checks that userID owns it
func (s *InterestService) ownedProfile(ctx context.Context, userID, profileID string) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if profile.UserID != userID {
		return nil, utils.NewForbiddenError(constants.MsgAccessDenied)
	}
	return profile, nil
}
