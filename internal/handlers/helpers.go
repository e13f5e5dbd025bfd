package handlers

import (
	"net/http"

	"github.com/vivahmatch/backend/internal/auth"
	"github.com/vivahmatch/backend/internal/utils"
)

// writeError converts any error into the standard error envelope
func writeError(w http.ResponseWriter, err error) {
	utils.ErrorFromAppError(w, utils.ParseError(err))
}

// requireUserID returns the authenticated user id or answers 401
func requireUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := auth.GetUserID(r)
	if !ok {
		utils.Unauthorized(w, "")
		return "", false
	}
	return userID, true
}
