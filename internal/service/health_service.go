package service

import (
	"context"
	"time"

	"github.com/vivahmatch/backend/internal/constants"
	"github.com/vivahmatch/backend/internal/repository"
)

// HealthStatus is the body of the health endpoint
type HealthStatus struct {
	Status    string    `json:"status"`
	Storage   string    `json:"storage"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthService reports storage health
type HealthService struct {
	store   *repository.Store
	driver  string
	version string
}

// NewHealthService creates a new HealthService
func NewHealthService(store *repository.Store, driver, version string) *HealthService {
	return &HealthService{store: store, driver: driver, version: version}
}

// Check pings the storage backend with a bounded timeout
func (s *HealthService) Check(ctx context.Context) (*HealthStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DBHealthCheckTimeout)
	defer cancel()

	status := &HealthStatus{
		Status:    "ok",
		Storage:   s.driver,
		Version:   s.version,
		Timestamp: time.Now().UTC(),
	}
	if err := s.store.HealthCheck(ctx); err != nil {
		status.Status = "unavailable"
		return status, err
	}
	return status, nil
}
