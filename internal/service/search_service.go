package service

import (
	"context"
	"math/rand"
	"time"

	"github.com/vivahmatch/backend/internal/config"
	"github.com/vivahmatch/backend/internal/matching"
	"github.com/vivahmatch/backend/internal/models"
	"github.com/vivahmatch/backend/internal/repository"
	"github.com/vivahmatch/backend/internal/utils"
)

// SearchObserver records search outcomes, typically as metrics
type SearchObserver interface {
	ObserveSearch(kind string, results int, duration time.Duration)
}

// Search kinds reported to the observer
const (
	SearchKindFilter   = "filter"
	SearchKindFeatured = "featured"
)

// SearchService runs filter searches and featured listings
type SearchService struct {
	profileRepo repository.ProfileRepository
	engine      *matching.Engine
	cfg         config.SearchSettings
	observer    SearchObserver
	shuffle     func(n int, swap func(i, j int))
}

// NewSearchService creates a new SearchService. observer may be nil.
func NewSearchService(profileRepo repository.ProfileRepository, cfg config.SearchSettings, observer SearchObserver) *SearchService {
	return &SearchService{
		profileRepo: profileRepo,
		engine:      matching.NewEngine(profileRepo),
		cfg:         cfg,
		observer:    observer,
		shuffle:     rand.Shuffle,
	}
}

// SearchProfiles validates the filter, folds the caste lists and returns
// every matching profile in collection order.
func (s *SearchService) SearchProfiles(ctx context.Context, req *models.SearchRequest) ([]*models.Profile, error) {
	start := time.Now()

	if err := utils.ValidateStruct(&req.Filters); err != nil {
		return nil, err
	}

	filters := matching.CombineCastes(req.Filters)

	profiles, err := s.engine.Search(ctx, filters, req.ExcludeUserID)
	if err != nil {
		return nil, err
	}

	duration := time.Since(start)
	utils.LogSearch(req.Filters.FieldCount(), len(profiles), req.ExcludeUserID, duration)
	s.observe(SearchKindFilter, len(profiles), duration)

	return profiles, nil
}

// FeaturedProfiles returns up to limit random active, verified profiles.
// A non-positive limit uses the configured default; larger limits are capped.
func (s *SearchService) FeaturedProfiles(ctx context.Context, limit int) ([]*models.Profile, error) {
	start := time.Now()
	limit = s.featuredLimit(limit)

	profiles, err := s.profileRepo.ListFeatured(ctx)
	if err != nil {
		return nil, err
	}

	s.shuffle(len(profiles), func(i, j int) {
		profiles[i], profiles[j] = profiles[j], profiles[i]
	})
	if len(profiles) > limit {
		profiles = profiles[:limit]
	}

	s.observe(SearchKindFeatured, len(profiles), time.Since(start))
	return profiles, nil
}

func (s *SearchService) featuredLimit(limit int) int {
	if limit <= 0 {
		return s.cfg.FeaturedDefaultLimit
	}
	if s.cfg.FeaturedMaxLimit > 0 && limit > s.cfg.FeaturedMaxLimit {
		return s.cfg.FeaturedMaxLimit
	}
	return limit
}

func (s *SearchService) observe(kind string, results int, duration time.Duration) {
	if s.observer != nil {
		s.observer.ObserveSearch(kind, results, duration)
	}
}
