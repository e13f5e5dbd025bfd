package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vivahmatch/backend/internal/auth"
	"github.com/vivahmatch/backend/internal/constants"
	"github.com/vivahmatch/backend/internal/models"
	"github.com/vivahmatch/backend/internal/utils"
)

// SearchHandler handles profile search and featured listings
type SearchHandler struct {
	searchService SearchServiceInterface
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(searchService SearchServiceInterface) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
	}
}

// SearchProfiles runs a filter search. The response carries the matches in
// collection order with no count metadata.
// Without an explicit excludeUserId, an authenticated caller's own profile is excluded.
func (h *SearchHandler) SearchProfiles(w http.ResponseWriter, r *http.Request) {
	var req models.SearchRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if req.ExcludeUserID == "" {
		if userID, ok := auth.GetUserID(r); ok {
			req.ExcludeUserID = userID
		}
	}

	profiles, err := h.searchService.SearchProfiles(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, models.SearchResponse{Profiles: profiles})
}

// FeaturedProfiles returns random verified profiles; the limit path segment is optional.
func (h *SearchHandler) FeaturedProfiles(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := chi.URLParam(r, constants.ParamLimit); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			utils.ErrorFromAppError(w, utils.NewValidationError(constants.ParamLimit, "Must be a positive integer"))
			return
		}
		limit = n
	}

	profiles, err := h.searchService.FeaturedProfiles(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.List(w, models.SearchResponse{Profiles: profiles}, len(profiles))
}
