package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/vivahmatch/backend/internal/catalog"
	"github.com/vivahmatch/backend/internal/constants"
	"github.com/vivahmatch/backend/internal/utils"
)

// VersionInfo describes the running build
type VersionInfo struct {
	Version     string `json:"version"`
	Commit      string `json:"commit,omitempty"`
	BuildDate   string `json:"buildDate,omitempty"`
	Environment string `json:"environment"`
}

// SystemHandler serves health, version and catalog endpoints
type SystemHandler struct {
	health  HealthServiceInterface
	version VersionInfo
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(health HealthServiceInterface, version VersionInfo) *SystemHandler {
	return &SystemHandler{
		health:  health,
		version: version,
	}
}

// Health reports storage health; an unhealthy backend answers 503
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	status, err := h.health.Check(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Health check failed")
		utils.Error(w, http.StatusServiceUnavailable, constants.CodeServiceUnavailable, "Service is not healthy", nil)
		return
	}

	utils.JSON(w, http.StatusOK, status)
}

// Version reports build information
func (h *SystemHandler) Version(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, h.version)
}

// Catalog returns every option list clients need to build filter forms
func (h *SystemHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, catalog.Lists())
}
