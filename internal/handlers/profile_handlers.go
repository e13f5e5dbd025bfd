package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vivahmatch/backend/internal/auth"
	"github.com/vivahmatch/backend/internal/constants"
	"github.com/vivahmatch/backend/internal/models"
	"github.com/vivahmatch/backend/internal/utils"
)

// ProfileHandler handles profile routes
type ProfileHandler struct {
	profileService ProfileServiceInterface
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileService ProfileServiceInterface) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

// CreateProfile creates the caller's profile
func (h *ProfileHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var in models.ProfileCreate
	if err := utils.DecodeAndValidate(r, &in); err != nil {
		writeError(w, err)
		return
	}

	profile, err := h.profileService.CreateProfile(r.Context(), userID, &in)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, profile)
}

// GetMyProfile returns the caller's profile
func (h *ProfileHandler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	profile, err := h.profileService.GetMyProfile(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, profile)
}

// GetProfile returns a profile by id. Authentication is optional.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, constants.ParamProfileID)
	viewer, _ := auth.GetUserID(r)

	profile, err := h.profileService.GetProfile(r.Context(), profileID, viewer)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, profile)
}

// UpdateProfile applies a partial update to the caller's profile
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var update models.ProfileUpdate
	if err := utils.DecodeAndValidate(r, &update); err != nil {
		writeError(w, err)
		return
	}

	profile, err := h.profileService.UpdateProfile(r.Context(), userID, chi.URLParam(r, constants.ParamProfileID), &update)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, profile)
}
