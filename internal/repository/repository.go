// Package repository provides storage for users, profiles and interests.
// Every repository has an in-memory implementation, used by default and in
// tests, and a PostgreSQL implementation selected by database.driver.
package repository

import (
	"context"

	"github.com/vivahmatch/backend/internal/database"
	"github.com/vivahmatch/backend/internal/models"
)

// UserRepository defines methods for interacting with user accounts
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// ProfileRepository defines methods for interacting with profiles.
// ListProfiles returns the collection in insertion order.
type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	Update(ctx context.Context, profile *models.Profile) error
	ListProfiles(ctx context.Context) ([]*models.Profile, error)
	ListFeatured(ctx context.Context) ([]*models.Profile, error)
	Count(ctx context.Context) (int, error)
}

// InterestRepository defines methods for interacting with interests
type InterestRepository interface {
	Create(ctx context.Context, interest *models.Interest) error
	GetByID(ctx context.Context, id string) (*models.Interest, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.Interest, error)
	ListReceived(ctx context.Context, toProfileID string) ([]*models.Interest, error)
	ListSent(ctx context.Context, fromProfileID string) ([]*models.Interest, error)
}

// Store bundles the repositories of one storage backend.
type Store struct {
	Users     UserRepository
	Profiles  ProfileRepository
	Interests InterestRepository

	// Ping reports backend health; nil for backends that cannot fail.
	Ping func(ctx context.Context) error
}

// NewMemoryStore returns a Store backed by process memory.
func NewMemoryStore() *Store {
	return &Store{
		Users:     NewMemoryUserRepository(),
		Profiles:  NewMemoryProfileRepository(),
		Interests: NewMemoryInterestRepository(),
	}
}

// NewPostgresStore returns a Store backed by the given pool.
func NewPostgresStore(db *database.Pool) *Store {
	return &Store{
		Users:     NewUserRepository(db),
		Profiles:  NewProfileRepository(db),
		Interests: NewInterestRepository(db),
		Ping:      db.HealthCheck,
	}
}

// HealthCheck runs the backend ping when there is one.
func (s *Store) HealthCheck(ctx context.Context) error {
	if s.Ping == nil {
		return nil
	}
	return s.Ping(ctx)
}
