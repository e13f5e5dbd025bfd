package handlers

import (
	"net/http"

	"github.com/vivahmatch/backend/internal/models"
	"github.com/vivahmatch/backend/internal/utils"
)

// AuthHandler handles authentication-related routes
type AuthHandler struct {
	authService AuthServiceInterface
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService AuthServiceInterface) *AuthHandler {
	if authService == nil {
		panic("authService cannot be nil")
	}
	return &AuthHandler{
		authService: authService,
	}
}

// Register handles user registration
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var reg models.UserRegistration
	if err := utils.DecodeAndValidate(r, &reg); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.authService.RegisterUser(r.Context(), &reg)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, user)
}

// Login handles user authentication
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.UserCredentials
	if err := utils.DecodeAndValidate(r, &creds); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.authService.AuthenticateUser(r.Context(), &creds)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, result)
}

// Me returns the authenticated user's account
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	user, err := h.authService.GetCurrentUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, user)
}
