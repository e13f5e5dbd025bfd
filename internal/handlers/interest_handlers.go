package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vivahmatch/backend/internal/constants"
	"github.com/vivahmatch/backend/internal/models"
	"github.com/vivahmatch/backend/internal/utils"
)

// InterestHandler handles interest routes. Every route requires authentication.
type InterestHandler struct {
	interestService InterestServiceInterface
}

// NewInterestHandler creates a new InterestHandler
func NewInterestHandler(interestService InterestServiceInterface) *InterestHandler {
	return &InterestHandler{
		interestService: interestService,
	}
}

// SendInterest records an interest between two profiles
func (h *InterestHandler) SendInterest(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var in models.InterestCreate
	if err := utils.DecodeAndValidate(r, &in); err != nil {
		writeError(w, err)
		return
	}

	interest, err := h.interestService.SendInterest(r.Context(), userID, &in)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, interest)
}

// RespondToInterest accepts or declines an interest
func (h *InterestHandler) RespondToInterest(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var update models.InterestStatusUpdate
	if err := utils.DecodeAndValidate(r, &update); err != nil {
		writeError(w, err)
		return
	}

	interest, err := h.interestService.RespondToInterest(r.Context(), userID, chi.URLParam(r, constants.ParamInterestID), update.Status)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, interest)
}

// ListReceived lists interests addressed to ?profileId=
func (h *InterestHandler) ListReceived(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.interestService.ListReceived)
}

// ListSent lists interests sent from ?profileId=
func (h *InterestHandler) ListSent(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.interestService.ListSent)
}

type interestLister func(ctx context.Context, userID, profileID string) ([]*models.Interest, error)

func (h *InterestHandler) list(w http.ResponseWriter, r *http.Request, fetch interestLister) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	profileID := r.URL.Query().Get(constants.QueryParamProfileID)
	if profileID == "" {
		utils.ErrorFromAppError(w, utils.NewValidationError(constants.QueryParamProfileID, "This field is required"))
		return
	}

	interests, err := fetch(r.Context(), userID, profileID)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.List(w, interests, len(interests))
}
