package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/vivahmatch/backend/internal/models"
	"github.com/vivahmatch/backend/internal/utils"
)

// MemoryUserRepository keeps users in a map keyed by id.
type MemoryUserRepository struct {
	mu      sync.RWMutex
	byID    map[string]*models.User
	byEmail map[string]string
}

// NewMemoryUserRepository creates an empty in-memory user store.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		byID:    make(map[string]*models.User),
		byEmail: make(map[string]string),
	}
}

// Create stores a copy of user. Emails are unique case-insensitively.
func (r *MemoryUserRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := utils.NormalizeEmail(user.Email)
	if _, ok := r.byEmail[email]; ok {
		return utils.NewDuplicateError("User", "email", user.Email)
	}
	if _, ok := r.byID[user.ID]; ok {
		return utils.NewDuplicateError("User", "id", user.ID)
	}

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	stored := *user
	r.byID[user.ID] = &stored
	r.byEmail[email] = user.ID
	return nil
}

// GetByID retrieves a user by id
func (r *MemoryUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, utils.NewNotFoundError("User", id)
	}
	u := *user
	return &u, nil
}

// GetByEmail retrieves a user by email
func (r *MemoryUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[utils.NormalizeEmail(email)]
	if !ok {
		return nil, utils.NewNotFoundError("User", fmt.Sprintf("email=%s", email))
	}
	u := *r.byID[id]
	return &u, nil
}

// ExistsByEmail checks whether an account uses email
func (r *MemoryUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byEmail[utils.NormalizeEmail(email)]
	return ok, nil
}

// MemoryProfileRepository keeps profiles in insertion order.
type MemoryProfileRepository struct {
	mu     sync.RWMutex
	order  []string
	byID   map[string]*models.Profile
	byUser map[string]string
}

// NewMemoryProfileRepository creates an empty in-memory profile store.
func NewMemoryProfileRepository() *MemoryProfileRepository {
	return &MemoryProfileRepository{
		byID:   make(map[string]*models.Profile),
		byUser: make(map[string]string),
	}
}

// Create appends a copy of profile. Ids and owning users are unique.
func (r *MemoryProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[profile.ID]; ok {
		return utils.NewDuplicateError("Profile", "id", profile.ID)
	}
	if _, ok := r.byUser[profile.UserID]; ok {
		return utils.NewDuplicateError("Profile", "userId", profile.UserID)
	}

	r.byID[profile.ID] = profile.Clone()
	r.byUser[profile.UserID] = profile.ID
	r.order = append(r.order, profile.ID)
	return nil
}

// GetByID retrieves a profile by id
func (r *MemoryProfileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, utils.NewNotFoundError("Profile", id)
	}
	return p.Clone(), nil
}

// GetByUserID retrieves the profile owned by userID
func (r *MemoryProfileRepository) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUser[userID]
	if !ok {
		return nil, utils.NewNotFoundError("Profile", fmt.Sprintf("userId=%s", userID))
	}
	return r.byID[id].Clone(), nil
}

// ExistsByID checks whether a profile id is taken
func (r *MemoryProfileRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byID[id]
	return ok, nil
}

// Update replaces the stored profile. Owner and creation time are immutable.
func (r *MemoryProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[profile.ID]
	if !ok {
		return utils.NewNotFoundError("Profile", profile.ID)
	}

	updated := profile.Clone()
	updated.UserID = existing.UserID
	updated.CreatedAt = existing.CreatedAt
	r.byID[profile.ID] = updated
	return nil
}

// ListProfiles returns copies of every profile in insertion order
func (r *MemoryProfileRepository) ListProfiles(ctx context.Context) ([]*models.Profile, error) {
	return r.list(func(*models.Profile) bool { return true }), nil
}

// ListFeatured returns active, verified profiles in insertion order
func (r *MemoryProfileRepository) ListFeatured(ctx context.Context) ([]*models.Profile, error) {
	return r.list(func(p *models.Profile) bool { return p.Active && p.Verified }), nil
}

// Count returns the number of stored profiles
func (r *MemoryProfileRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order), nil
}

func (r *MemoryProfileRepository) list(keep func(*models.Profile) bool) []*models.Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Profile, 0, len(r.order))
	for _, id := range r.order {
		if p := r.byID[id]; keep(p) {
			result = append(result, p.Clone())
		}
	}
	return result
}

// MemoryInterestRepository keeps interests in insertion order.
type MemoryInterestRepository struct {
	mu     sync.RWMutex
	order  []string
	byID   map[string]*models.Interest
	byPair map[string]string
}

// NewMemoryInterestRepository creates an empty in-memory interest store.
func NewMemoryInterestRepository() *MemoryInterestRepository {
	return &MemoryInterestRepository{
		byID:   make(map[string]*models.Interest),
		byPair: make(map[string]string),
	}
}

func pairKey(from, to string) string {
	return strings.Join([]string{from, to}, "->")
}

// Create stores a copy of interest. The ordered (from, to) pair is unique.
func (r *MemoryInterestRepository) Create(ctx context.Context, interest *models.Interest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := pairKey(interest.FromProfileID, interest.ToProfileID)
	if _, ok := r.byPair[key]; ok {
		return utils.NewDuplicateError("Interest", "toProfileId", interest.ToProfileID)
	}
	if _, ok := r.byID[interest.ID]; ok {
		return utils.NewDuplicateError("Interest", "id", interest.ID)
	}

	stored := *interest
	r.byID[interest.ID] = &stored
	r.byPair[key] = interest.ID
	r.order = append(r.order, interest.ID)
	return nil
}

// GetByID retrieves an interest by id
func (r *MemoryInterestRepository) GetByID(ctx context.Context, id string) (*models.Interest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.byID[id]
	if !ok {
		return nil, utils.NewNotFoundError("Interest", id)
	}
	c := *i
	return &c, nil
}

// UpdateStatus sets the status of a sent interest. Answered interests are
// immutable and yield a conflict.
func (r *MemoryInterestRepository) UpdateStatus(ctx context.Context, id, status string) (*models.Interest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.byID[id]
	if !ok {
		return nil, utils.NewNotFoundError("Interest", id)
	}
	if !i.CanTransitionTo(status) {
		return nil, interestTransitionError(i.Status, status)
	}

	i.Status = status
	i.UpdatedAt = time.Now().UTC()
	c := *i
	return &c, nil
}

// ListReceived returns interests addressed to toProfileID
func (r *MemoryInterestRepository) ListReceived(ctx context.Context, toProfileID string) ([]*models.Interest, error) {
	return r.list(func(i *models.Interest) bool { return i.ToProfileID == toProfileID }), nil
}

// ListSent returns interests sent by fromProfileID
func (r *MemoryInterestRepository) ListSent(ctx context.Context, fromProfileID string) ([]*models.Interest, error) {
	return r.list(func(i *models.Interest) bool { return i.FromProfileID == fromProfileID }), nil
}

func (r *MemoryInterestRepository) list(keep func(*models.Interest) bool) []*models.Interest {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Interest, 0)
	for _, id := range r.order {
		if i := r.byID[id]; keep(i) {
			c := *i
			result = append(result, &c)
		}
	}
	return result
}
