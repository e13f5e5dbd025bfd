package service

import (
	"github.com/vivahmatch/backend/internal/astrology"
	"github.com/vivahmatch/backend/internal/auth"
	"github.com/vivahmatch/backend/internal/config"
	"github.com/vivahmatch/backend/internal/constants"
	"github.com/vivahmatch/backend/internal/models"
	"github.com/vivahmatch/backend/internal/repository"
)

// testHasher keeps Argon2 cheap in tests
func testHasher() *auth.PasswordHasher {
	return auth.NewPasswordHasher(&auth.PasswordConfig{
		Memory:      1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	})
}

func testSearchSettings() config.SearchSettings {
	return config.SearchSettings{
		FeaturedDefaultLimit: constants.DefaultFeaturedLimit,
		FeaturedMaxLimit:     constants.DefaultFeaturedMaxLimit,
		AgeMin:               constants.DefaultAgeMin,
		AgeMax:               constants.DefaultAgeMax,
	}
}

// sequentialIDs returns a generator yielding ids in order
func sequentialIDs(ids ...string) IDGenerator {
	i := 0
	return func() (string, error) {
		id := ids[i%len(ids)]
		i++
		return id, nil
	}
}

func newProfileService(store *repository.Store, ids ...string) *ProfileService {
	var gen IDGenerator
	if len(ids) > 0 {
		gen = sequentialIDs(ids...)
	}
	return NewProfileService(store.Profiles, astrology.NewMockCalculator(), gen)
}

func sampleProfileCreate(name string) *models.ProfileCreate {
	return &models.ProfileCreate{
		Name:     name,
		Age:      28,
		Gender:   "Female",
		Religion: "Hinduism",
		City:     "Pune",
	}
}
