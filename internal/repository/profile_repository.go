package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/vivahmatch/backend/internal/constants"
	"github.com/vivahmatch/backend/internal/database"
	"github.com/vivahmatch/backend/internal/models"
	"github.com/vivahmatch/backend/internal/utils"
)

// profileColumns lists every profiles column in scan order.
var profileColumns = []string{
	"id", "user_id", "name", "age", "gender", "height", "mother_tongue", "languages",
	"religion", "caste", "ethnicity", "marital_status", "country", "state", "city",
	"education", "profession", "annual_income",
	"eating_habits", "drinking_habits", "smoking_habits", "physical_status", "blood_group",
	"health_conditions", "has_children",
	"spiritual_practices", "sacred_texts", "guru_lineage", "dietary_lifestyle",
	"rashi", "nakshatra", "horoscope_sign", "manglik", "guna_score",
	"about", "verified", "active", "created_at", "updated_at",
}

var (
	profileSelect = "SELECT " + strings.Join(profileColumns, ", ") + " FROM " + constants.TableProfiles
	profileInsert = fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		constants.TableProfiles, strings.Join(profileColumns, ", "), placeholders(1, len(profileColumns)))
	profileUpdate = buildProfileUpdate()
)

// placeholders renders "$from, ..., $(from+n-1)"
func placeholders(from, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", from+i)
	}
	return strings.Join(parts, ", ")
}

// buildProfileUpdate sets every column except id, user_id and created_at;
// $1 is the id.
func buildProfileUpdate() string {
	sets := make([]string, 0, len(profileColumns))
	n := 2
	for _, col := range profileColumns {
		switch col {
		case "id", "user_id", "created_at":
			continue
		}
		sets = append(sets, fmt.Sprintf("%s = $%d", col, n))
		n++
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE id = $1", constants.TableProfiles, strings.Join(sets, ", "))
}

// PostgresProfileRepository is a PostgreSQL implementation of ProfileRepository
type PostgresProfileRepository struct {
	db database.DBTX
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db database.DBTX) ProfileRepository {
	return &PostgresProfileRepository{db: db}
}

func profileArgs(p *models.Profile) []interface{} {
	return []interface{}{
		p.ID, p.UserID, p.Name, p.Age, p.Gender, p.Height, p.MotherTongue, pq.Array(p.Languages),
		p.Religion, p.Caste, p.Ethnicity, p.MaritalStatus, p.Country, p.State, p.City,
		p.Education, p.Profession, p.AnnualIncome,
		p.EatingHabits, p.DrinkingHabits, p.SmokingHabits, p.PhysicalStatus, p.BloodGroup,
		p.HealthConditions, p.HasChildren,
		pq.Array(p.SpiritualPractices), pq.Array(p.SacredTexts), p.GuruLineage, p.DietaryLifestyle,
		p.Rashi, p.Nakshatra, p.HoroscopeSign, p.Manglik, p.GunaScore,
		p.About, p.Verified, p.Active, p.CreatedAt, p.UpdatedAt,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProfile(row rowScanner) (*models.Profile, error) {
	p := &models.Profile{}
	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &p.Age, &p.Gender, &p.Height, &p.MotherTongue, pq.Array(&p.Languages),
		&p.Religion, &p.Caste, &p.Ethnicity, &p.MaritalStatus, &p.Country, &p.State, &p.City,
		&p.Education, &p.Profession, &p.AnnualIncome,
		&p.EatingHabits, &p.DrinkingHabits, &p.SmokingHabits, &p.PhysicalStatus, &p.BloodGroup,
		&p.HealthConditions, &p.HasChildren,
		pq.Array(&p.SpiritualPractices), pq.Array(&p.SacredTexts), &p.GuruLineage, &p.DietaryLifestyle,
		&p.Rashi, &p.Nakshatra, &p.HoroscopeSign, &p.Manglik, &p.GunaScore,
		&p.About, &p.Verified, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Create adds a new profile to the database
func (r *PostgresProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	startTime := time.Now()

	args := profileArgs(profile)
	_, err := r.db.ExecContext(ctx, profileInsert, args...)

	utils.LogDBQuery(profileInsert, []interface{}{profile.ID, profile.UserID}, time.Since(startTime), err)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == constants.PGErrorDuplicateConstraint {
			if pqErr.Constraint == constants.ConstraintProfilesUser {
				return utils.NewDuplicateError("Profile", "userId", profile.UserID)
			}
			return utils.NewDuplicateError("Profile", "id", profile.ID)
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}

	log.Info().
		Str("category", constants.LogCategoryProfile).
		Str("profile_id", profile.ID).
		Str(constants.UserIDContextKey, profile.UserID).
		Msg("Profile created")

	return nil
}

// GetByID retrieves a profile by id
func (r *PostgresProfileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	return r.getOne(ctx, profileSelect+" WHERE id = $1", id, "Profile", id)
}

// GetByUserID retrieves the profile owned by userID
func (r *PostgresProfileRepository) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	return r.getOne(ctx, profileSelect+" WHERE user_id = $1", userID, "Profile", fmt.Sprintf("userId=%s", userID))
}

func (r *PostgresProfileRepository) getOne(ctx context.Context, query, arg, resource, identifier string) (*models.Profile, error) {
	startTime := time.Now()

	p, err := scanProfile(r.db.QueryRowContext(ctx, query, arg))

	utils.LogDBQuery(query, []interface{}{arg}, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError(resource, identifier)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

// ExistsByID checks whether a profile id is taken
func (r *PostgresProfileRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	startTime := time.Now()

	query := "SELECT EXISTS(SELECT 1 FROM " + constants.TableProfiles + " WHERE id = $1)"
	var exists bool
	err := r.db.QueryRowContext(ctx, query, id).Scan(&exists)

	utils.LogDBQuery(query, []interface{}{id}, time.Since(startTime), err)

	if err != nil {
		return false, fmt.Errorf("failed to check profile id: %w", err)
	}
	return exists, nil
}

// Update writes every mutable column of profile
func (r *PostgresProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	startTime := time.Now()

	all := profileArgs(profile)
	args := make([]interface{}, 0, len(all))
	args = append(args, profile.ID)
	for i, col := range profileColumns {
		switch col {
		case "id", "user_id", "created_at":
			continue
		}
		args = append(args, all[i])
	}

	result, err := r.db.ExecContext(ctx, profileUpdate, args...)

	utils.LogDBQuery(profileUpdate, []interface{}{profile.ID}, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return utils.NewNotFoundError("Profile", profile.ID)
	}
	return nil
}

// ListProfiles returns every profile in insertion order
func (r *PostgresProfileRepository) ListProfiles(ctx context.Context) ([]*models.Profile, error) {
	return r.list(ctx, profileSelect+" ORDER BY created_at, id")
}

// ListFeatured returns active, verified profiles in insertion order
func (r *PostgresProfileRepository) ListFeatured(ctx context.Context) ([]*models.Profile, error) {
	return r.list(ctx, profileSelect+" WHERE active AND verified ORDER BY created_at, id")
}

func (r *PostgresProfileRepository) list(ctx context.Context, query string) ([]*models.Profile, error) {
	startTime := time.Now()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		utils.LogDBQuery(query, nil, time.Since(startTime), err)
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]*models.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile row: %w", err)
		}
		profiles = append(profiles, p)
	}
	err = rows.Err()

	utils.LogDBQuery(query, nil, time.Since(startTime), err)

	if err != nil {
		return nil, fmt.Errorf("error iterating profile rows: %w", err)
	}
	return profiles, nil
}

// Count returns the number of stored profiles
func (r *PostgresProfileRepository) Count(ctx context.Context) (int, error) {
	startTime := time.Now()

	query := "SELECT COUNT(*) FROM " + constants.TableProfiles
	var count int
	err := r.db.QueryRowContext(ctx, query).Scan(&count)

	utils.LogDBQuery(query, nil, time.Since(startTime), err)

	if err != nil {
		return 0, fmt.Errorf("failed to count profiles: %w", err)
	}
	return count, nil
}
