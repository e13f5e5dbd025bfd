package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivahmatch/backend/internal/constants"
	"github.com/vivahmatch/backend/internal/models"
	"github.com/vivahmatch/backend/internal/repository"
	"github.com/vivahmatch/backend/internal/utils"
)

func newInterestFixture(t *testing.T) (*InterestService, *repository.Store) {
	t.Helper()
	store := repository.NewMemoryStore()
	ctx := context.Background()
	for _, p := range []*models.Profile{
		{ID: "ProfileA", UserID: "user-a", Active: true},
		{ID: "ProfileB", UserID: "user-b", Active: true},
		{ID: "ProfileC", UserID: "user-c", Active: false},
	} {
		require.NoError(t, store.Profiles.Create(ctx, p))
	}
	return NewInterestService(store.Interests, store.Profiles), store
}

func TestInterestService_SendInterest(t *testing.T) {
	svc, _ := newInterestFixture(t)
	ctx := context.Background()

	interest, err := svc.SendInterest(ctx, "user-a", &models.InterestCreate{FromProfileID: "ProfileA", ToProfileID: "ProfileB", Message: "Namaste"})
	require.NoError(t, err)
	assert.Equal(t, constants.InterestStatusSent, interest.Status)
	assert.Equal(t, "Namaste", interest.Message)

	// Same ordered pair again
	_, err = svc.SendInterest(ctx, "user-a", &models.InterestCreate{FromProfileID: "ProfileA", ToProfileID: "ProfileB"})
	require.Error(t, err)
	assert.True(t, utils.IsDuplicateError(err))

	// Reverse direction is a distinct record
	reverse, err := svc.SendInterest(ctx, "user-b", &models.InterestCreate{FromProfileID: "ProfileB", ToProfileID: "ProfileA"})
	require.NoError(t, err)
	assert.NotEqual(t, interest.ID, reverse.ID)

	sent, err := svc.ListSent(ctx, "user-a", "ProfileA")
	require.NoError(t, err)
	assert.Len(t, sent, 1)
}

func TestInterestService_SendInterest_Rejections(t *testing.T) {
	svc, _ := newInterestFixture(t)
	ctx := context.Background()

	_, err := svc.SendInterest(ctx, "user-a", &models.InterestCreate{FromProfileID: "ProfileA", ToProfileID: "ProfileA"})
	assert.True(t, utils.IsValidationError(err))

	_, err = svc.SendInterest(ctx, "user-b", &models.InterestCreate{FromProfileID: "ProfileA", ToProfileID: "ProfileB"})
	assert.ErrorIs(t, err, utils.ErrForbidden)

	_, err = svc.SendInterest(ctx, "user-a", &models.InterestCreate{FromProfileID: "ProfileA", ToProfileID: "Missing1"})
	assert.True(t, utils.IsNotFoundError(err))

	_, err = svc.SendInterest(ctx, "user-a", &models.InterestCreate{FromProfileID: "ProfileA", ToProfileID: "ProfileC"})
	assert.True(t, utils.IsNotFoundError(err))
}

func TestInterestService_RespondToInterest(t *testing.T) {
	svc, _ := newInterestFixture(t)
	ctx := context.Background()

	interest, err := svc.SendInterest(ctx, "user-a", &models.InterestCreate{FromProfileID: "ProfileA", ToProfileID: "ProfileB"})
	require.NoError(t, err)

	// Only the recipient may answer
	_, err = svc.RespondToInterest(ctx, "user-a", interest.ID, constants.InterestStatusAccepted)
	assert.ErrorIs(t, err, utils.ErrForbidden)

	answered, err := svc.RespondToInterest(ctx, "user-b", interest.ID, constants.InterestStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, constants.InterestStatusAccepted, answered.Status)

	_, err = svc.RespondToInterest(ctx, "user-b", interest.ID, constants.InterestStatusDeclined)
	require.Error(t, err)
	assert.True(t, utils.IsConflictError(err))

	_, err = svc.RespondToInterest(ctx, "user-b", "missing", constants.InterestStatusDeclined)
	assert.True(t, utils.IsNotFoundError(err))

	received, err := svc.ListReceived(ctx, "user-b", "ProfileB")
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, constants.InterestStatusAccepted, received[0].Status)

	_, err = svc.ListReceived(ctx, "user-a", "ProfileB")
	assert.ErrorIs(t, err, utils.ErrForbidden)
}
