// Package scripts provides utility scripts for database and system management.
//
// This package implements demo data seeding. The seeder only runs against an
// empty profile collection, which makes it safe to run on every start of
// both new and existing deployments.
package scripts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vivahmatch/backend/internal/astrology"
	"github.com/vivahmatch/backend/internal/catalog"
	"github.com/vivahmatch/backend/internal/models"
	"github.com/vivahmatch/backend/internal/repository"
)

// DemoPassword is the password shared by every seeded demo account.
const DemoPassword = "Demo@Match2024"

// PasswordHasher hashes demo account passwords.
type PasswordHasher interface {
	Hash(password string) (string, string, error)
}

// Seeder handles demo data seeding.
// It creates one user and one verified, active profile per demo entry.
type Seeder struct {
	store  *repository.Store
	hasher PasswordHasher
	astro  astrology.Calculator
}

// NewSeeder creates a new seeder.
//
// Parameters:
//   - store: The repositories to seed
//   - hasher: Password hasher for the demo accounts
//   - astro: Calculator filling the astrological fields
//
// Returns:
//   - *Seeder: A configured seeder
func NewSeeder(store *repository.Store, hasher PasswordHasher, astro astrology.Calculator) *Seeder {
	return &Seeder{
		store:  store,
		hasher: hasher,
		astro:  astro,
	}
}

// SeedDatabase inserts the demo profiles when the profile collection is empty.
//
// Parameters:
//   - ctx: Context for storage operations and cancellation
//
// Returns:
//   - int: The number of profiles inserted
//   - error: Any error encountered during seeding, nil if successful
func (s *Seeder) SeedDatabase(ctx context.Context) (int, error) {
	count, err := s.store.Profiles.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count profiles: %w", err)
	}
	if count > 0 {
		log.Debug().Int("profiles", count).Msg("Profiles present, skipping demo seed")
		return 0, nil
	}

	log.Info().Msg("Seeding demo profiles")
	startTime := time.Now()

	// One hash serves every demo account
	hash, salt, err := s.hasher.Hash(DemoPassword)
	if err != nil {
		return 0, fmt.Errorf("failed to hash demo password: %w", err)
	}

	inserted := 0
	for _, demo := range demoProfiles() {
		if err := s.seedProfile(ctx, demo, hash, salt); err != nil {
			return inserted, err
		}
		inserted++
	}

	log.Info().
		Int("profiles", inserted).
		Dur("duration", time.Since(startTime)).
		Msg("Demo profiles seeded")

	return inserted, nil
}

// seedProfile stores the demo user and its profile.
func (s *Seeder) seedProfile(ctx context.Context, demo demoProfile, hash, salt string) error {
	user := models.NewUser(uuid.New().String(), demo.profile.Name, demo.email)
	user.PasswordHash = hash
	user.Salt = salt
	if err := s.store.Users.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to seed user %s: %w", demo.email, err)
	}

	profile := models.NewProfile(demo.id, user.ID, demo.profile)
	profile.Verified = true
	s.astro.Calculate(profile.ID).Apply(profile)

	if err := s.store.Profiles.Create(ctx, profile); err != nil {
		return fmt.Errorf("failed to seed profile %s: %w", demo.id, err)
	}
	return nil
}

type demoProfile struct {
	id      string
	email   string
	profile *models.ProfileCreate
}

// demoProfiles returns the fixed demo collection.
func demoProfiles() []demoProfile {
	return []demoProfile{
		{
			id:    "DEMOa001",
			email: "priya.sharma@demo.vivahmatch.in",
			profile: &models.ProfileCreate{
				Name: "Priya Sharma", Age: 27, Gender: "Female", Height: catalog.HeightLabel(64),
				MotherTongue: "Hindi", Languages: []string{"English", "Sanskrit"},
				Religion: "Hinduism", Caste: "Brahmin - Gaur", MaritalStatus: "Never Married",
				Country: "India", State: "Uttar Pradesh", City: "Varanasi",
				Education: "M.A. Sanskrit", Profession: "Teacher", AnnualIncome: "Rs. 4 - 7 Lakh",
				EatingHabits: "Vegetarian", DrinkingHabits: "Doesn't Drink", SmokingHabits: "Doesn't Smoke",
				PhysicalStatus: "Normal", BloodGroup: "B+", HasChildren: "No",
				SpiritualPractices: []string{"Daily Puja", "Yoga Practice"},
				SacredTexts:        []string{"Bhagavad Gita", "Ramayana"},
				GuruLineage:        "Kashi Vishwanath Parampara", DietaryLifestyle: "Sattvic",
				About: "Teaches Sanskrit and sings bhajans on weekends.",
			},
		},
		{
			id:    "DEMOa002",
			email: "arjun.iyer@demo.vivahmatch.in",
			profile: &models.ProfileCreate{
				Name: "Arjun Iyer", Age: 30, Gender: "Male", Height: catalog.HeightLabel(70),
				MotherTongue: "Tamil", Languages: []string{"English", "Kannada"},
				Religion: "Hinduism", Caste: "Brahmin - Iyer", MaritalStatus: "Never Married",
				Country: "India", State: "Karnataka", City: "Bengaluru",
				Education: "B.Tech", Profession: "Software Engineer", AnnualIncome: "Rs. 20 - 30 Lakh",
				EatingHabits: "Vegetarian", DrinkingHabits: "Doesn't Drink", SmokingHabits: "Doesn't Smoke",
				PhysicalStatus: "Normal", BloodGroup: "O+", HasChildren: "No",
				SpiritualPractices: []string{"Meditation & Dhyana", "Mantra Japa"},
				SacredTexts:        []string{"Upanishads", "Bhagavad Gita"},
				GuruLineage:        "Sringeri Sharada Peetham", DietaryLifestyle: "Vegetarian",
				About: "Weekend trekker and Carnatic music listener.",
			},
		},
		{
			id:    "DEMOa003",
			email: "harpreet.kaur@demo.vivahmatch.in",
			profile: &models.ProfileCreate{
				Name: "Harpreet Kaur", Age: 29, Gender: "Female", Height: catalog.HeightLabel(66),
				MotherTongue: "Punjabi", Languages: []string{"Hindi", "English"},
				Religion: "Sikhism", Caste: "Jat", MaritalStatus: "Never Married",
				Country: "India", State: "Punjab", City: "Amritsar",
				Education: "MBBS", Profession: "Doctor", AnnualIncome: "Rs. 15 - 20 Lakh",
				EatingHabits: "Vegetarian", DrinkingHabits: "Doesn't Drink", SmokingHabits: "Doesn't Smoke",
				PhysicalStatus: "Normal", BloodGroup: "A+", HasChildren: "No",
				SpiritualPractices: []string{"Kirtan & Bhajan", "Seva (Selfless Service)"},
				SacredTexts:        []string{"Guru Granth Sahib"},
				DietaryLifestyle:   "Vegetarian",
				About:              "Paediatrician who volunteers at the langar every Sunday.",
			},
		},
		{
			id:    "DEMOa004",
			email: "rohan.deshmukh@demo.vivahmatch.in",
			profile: &models.ProfileCreate{
				Name: "Rohan Deshmukh", Age: 33, Gender: "Male", Height: catalog.HeightLabel(68),
				MotherTongue: "Marathi", Languages: []string{"Hindi", "English"},
				Religion: "Hinduism", Caste: "Maratha - Kunbi", MaritalStatus: "Divorced",
				Country: "India", State: "Maharashtra", City: "Pune",
				Education: "MBA", Profession: "Product Manager", AnnualIncome: "Rs. 30 - 50 Lakh",
				EatingHabits: "Non-Vegetarian", DrinkingHabits: "Drinks Socially", SmokingHabits: "Doesn't Smoke",
				PhysicalStatus: "Normal", BloodGroup: "AB+", HasChildren: "No",
				SpiritualPractices: []string{"Pilgrimage"},
				SacredTexts:        []string{"Mahabharata"},
				DietaryLifestyle:   "Non-Vegetarian",
				About:              "Runs half marathons and restores old motorcycles.",
			},
		},
		{
			id:    "DEMOa005",
			email: "ananya.jain@demo.vivahmatch.in",
			profile: &models.ProfileCreate{
				Name: "Ananya Jain", Age: 25, Gender: "Female", Height: catalog.HeightLabel(62),
				MotherTongue: "Gujarati", Languages: []string{"Hindi", "English"},
				Religion: "Jainism", Caste: "Oswal", MaritalStatus: "Never Married",
				Country: "India", State: "Gujarat", City: "Ahmedabad",
				Education: "Chartered Accountant", Profession: "Auditor", AnnualIncome: "Rs. 10 - 15 Lakh",
				EatingHabits: "Jain", DrinkingHabits: "Doesn't Drink", SmokingHabits: "Doesn't Smoke",
				PhysicalStatus: "Normal", BloodGroup: "O-", HasChildren: "No",
				SpiritualPractices: []string{"Fasting (Vrat)", "Scripture Study"},
				SacredTexts:        []string{"Agamas"},
				DietaryLifestyle:   "Jain Vegetarian",
				About:              "Loves classical dance and weekend pilgrimages to Palitana.",
			},
		},
		{
			id:    "DEMOa006",
			email: "vikram.reddy@demo.vivahmatch.in",
			profile: &models.ProfileCreate{
				Name: "Vikram Reddy", Age: 35, Gender: "Male", Height: catalog.HeightLabel(72),
				MotherTongue: "Telugu", Languages: []string{"English", "Hindi"},
				Religion: "Hinduism", Caste: "Reddy", MaritalStatus: "Widowed",
				Country: "India", State: "Telangana", City: "Hyderabad",
				Education: "M.S. Civil Engineering", Profession: "Architect", AnnualIncome: "Rs. 50 - 75 Lakh",
				EatingHabits: "Eggetarian", DrinkingHabits: "Doesn't Drink", SmokingHabits: "Doesn't Smoke",
				PhysicalStatus: "Normal", BloodGroup: "B-", HasChildren: "Yes, living together",
				SpiritualPractices: []string{"Pranayama", "Yoga Practice"},
				SacredTexts:        []string{"Yoga Sutras"},
				GuruLineage:        "Kriya Yoga", DietaryLifestyle: "Flexible",
				About: "Father of one, designs sustainable homes.",
			},
		},
		{
			id:    "DEMOa007",
			email: "meera.nair@demo.vivahmatch.in",
			profile: &models.ProfileCreate{
				Name: "Meera Nair", Age: 31, Gender: "Female", Height: catalog.HeightLabel(65),
				MotherTongue: "Malayalam", Languages: []string{"English", "Tamil"},
				Religion: "Hinduism", Caste: "Nair", MaritalStatus: "Never Married",
				Country: "India", State: "Kerala", City: "Kochi",
				Education: "Ph.D. Marine Biology", Profession: "Research Scientist", AnnualIncome: "Rs. 10 - 15 Lakh",
				EatingHabits: "Non-Vegetarian", DrinkingHabits: "Doesn't Drink", SmokingHabits: "Doesn't Smoke",
				PhysicalStatus: "Normal", BloodGroup: "A-", HasChildren: "No",
				SpiritualPractices: []string{"Meditation & Dhyana"},
				SacredTexts:        []string{"Srimad Bhagavatam"},
				GuruLineage:        "Mata Amritanandamayi Math", DietaryLifestyle: "Flexible",
				About: "Studies coral reefs and practises Mohiniyattam.",
			},
		},
		{
			id:    "DEMOa008",
			email: "kabir.khanna@demo.vivahmatch.in",
			profile: &models.ProfileCreate{
				Name: "Kabir Khanna", Age: 28, Gender: "Male", Height: catalog.HeightLabel(69),
				MotherTongue: "Hindi", Languages: []string{"English", "Punjabi"},
				Religion: "Hinduism", Caste: "Khatri - Khanna", MaritalStatus: "Never Married",
				Country: "India", State: "Delhi", City: "New Delhi",
				Education: "LLB", Profession: "Lawyer", AnnualIncome: "Rs. 15 - 20 Lakh",
				EatingHabits: "Vegetarian", DrinkingHabits: "Drinks Socially", SmokingHabits: "Doesn't Smoke",
				PhysicalStatus: "Normal", BloodGroup: "O+", HasChildren: "No",
				SpiritualPractices: []string{"Daily Puja", "Pilgrimage"},
				SacredTexts:        []string{"Ramayana", "Bhagavad Gita"},
				DietaryLifestyle:   "Vegetarian",
				About:              "Corporate lawyer, amateur photographer.",
			},
		},
	}
}
