package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/vivahmatch/backend/internal/constants"
	"github.com/vivahmatch/backend/internal/database"
	"github.com/vivahmatch/backend/internal/models"
	"github.com/vivahmatch/backend/internal/utils"
)

const interestColumns = "id, from_profile_id, to_profile_id, status, message, created_at, updated_at"

// PostgresInterestRepository is a PostgreSQL implementation of InterestRepository
type PostgresInterestRepository struct {
	db database.DBTX
}

// NewInterestRepository creates a new InterestRepository
func NewInterestRepository(db database.DBTX) InterestRepository {
	return &PostgresInterestRepository{db: db}
}

// interestTransitionError explains why current cannot move to next
func interestTransitionError(current, next string) error {
	if current != constants.InterestStatusSent {
		return utils.NewConflictError(constants.MsgInterestAlreadyAnswered)
	}
	return utils.NewValidationError("status", fmt.Sprintf("Cannot change interest status to %q", next))
}

func scanInterest(row rowScanner) (*models.Interest, error) {
	i := &models.Interest{}
	if err := row.Scan(&i.ID, &i.FromProfileID, &i.ToProfileID, &i.Status, &i.Message, &i.CreatedAt, &i.UpdatedAt); err != nil {
		return nil, err
	}
	return i, nil
}

// Create adds a new interest to the database
func (r *PostgresInterestRepository) Create(ctx context.Context, interest *models.Interest) error {
	startTime := time.Now()

	query := `
        INSERT INTO interests (` + interestColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `
	args := []interface{}{
		interest.ID, interest.FromProfileID, interest.ToProfileID,
		interest.Status, interest.Message, interest.CreatedAt, interest.UpdatedAt,
	}

	_, err := r.db.ExecContext(ctx, query, args...)

	utils.LogDBQuery(query, args, time.Since(startTime), err)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == constants.PGErrorDuplicateConstraint {
			if pqErr.Constraint == constants.ConstraintInterestsPair {
				return utils.NewDuplicateError("Interest", "toProfileId", interest.ToProfileID)
			}
			return utils.NewDuplicateError("Interest", "id", interest.ID)
		}
		return fmt.Errorf("failed to create interest: %w", err)
	}

	log.Info().
		Str("category", constants.LogCategoryInterest).
		Str("interest_id", interest.ID).
		Str("from_profile_id", interest.FromProfileID).
		Str("to_profile_id", interest.ToProfileID).
		Msg("Interest created")

	return nil
}

// GetByID retrieves an interest by id
func (r *PostgresInterestRepository) GetByID(ctx context.Context, id string) (*models.Interest, error) {
	startTime := time.Now()

	query := "SELECT " + interestColumns + " FROM interests WHERE id = $1"
	interest, err := scanInterest(r.db.QueryRowContext(ctx, query, id))

	utils.LogDBQuery(query, []interface{}{id}, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("Interest", id)
		}
		return nil, fmt.Errorf("failed to get interest: %w", err)
	}
	return interest, nil
}

// UpdateStatus answers a sent interest. The status guard is part of the
// UPDATE so concurrent answers cannot both succeed.
func (r *PostgresInterestRepository) UpdateStatus(ctx context.Context, id, status string) (*models.Interest, error) {
	startTime := time.Now()

	query := `
        UPDATE interests SET status = $2, updated_at = $3
        WHERE id = $1 AND status = $4
        RETURNING ` + interestColumns
	args := []interface{}{id, status, time.Now().UTC(), constants.InterestStatusSent}

	interest, err := scanInterest(r.db.QueryRowContext(ctx, query, args...))

	utils.LogDBQuery(query, args, time.Since(startTime), err)

	if err == nil {
		return interest, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to update interest status: %w", err)
	}

	// No row changed: either the interest is missing or already answered
	current, getErr := r.GetByID(ctx, id)
	if getErr != nil {
		return nil, getErr
	}
	return nil, interestTransitionError(current.Status, status)
}

// ListReceived returns interests addressed to toProfileID
func (r *PostgresInterestRepository) ListReceived(ctx context.Context, toProfileID string) ([]*models.Interest, error) {
	return r.list(ctx, "SELECT "+interestColumns+" FROM interests WHERE to_profile_id = $1 ORDER BY created_at, id", toProfileID)
}

// ListSent returns interests sent by fromProfileID
func (r *PostgresInterestRepository) ListSent(ctx context.Context, fromProfileID string) ([]*models.Interest, error) {
	return r.list(ctx, "SELECT "+interestColumns+" FROM interests WHERE from_profile_id = $1 ORDER BY created_at, id", fromProfileID)
}

func (r *PostgresInterestRepository) list(ctx context.Context, query, profileID string) ([]*models.Interest, error) {
	startTime := time.Now()

	rows, err := r.db.QueryContext(ctx, query, profileID)
	if err != nil {
		utils.LogDBQuery(query, []interface{}{profileID}, time.Since(startTime), err)
		return nil, fmt.Errorf("failed to list interests: %w", err)
	}
	defer rows.Close()

	interests := make([]*models.Interest, 0)
	for rows.Next() {
		i, err := scanInterest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan interest row: %w", err)
		}
		interests = append(interests, i)
	}
	err = rows.Err()

	utils.LogDBQuery(query, []interface{}{profileID}, time.Since(startTime), err)

	if err != nil {
		return nil, fmt.Errorf("error iterating interest rows: %w", err)
	}
	return interests, nil
}
