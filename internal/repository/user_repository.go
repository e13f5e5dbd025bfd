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

// PostgresUserRepository is a PostgreSQL implementation of UserRepository
type PostgresUserRepository struct {
	db database.DBTX
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db database.DBTX) UserRepository {
	return &PostgresUserRepository{
		db: db,
	}
}

// Create adds a new user to the database
func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	// Start query timer
	startTime := time.Now()

	// Set created/updated timestamps
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `
        INSERT INTO users (id, name, email, password_hash, salt, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `

	_, err := r.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Salt,
		user.CreatedAt,
		user.UpdatedAt,
	)

	// Log the query execution
	utils.LogDBQuery(
		query,
		[]interface{}{user.ID, user.Name, user.Email, constants.LogRedactedValue, constants.LogRedactedValue, user.CreatedAt, user.UpdatedAt},
		time.Since(startTime),
		err,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == constants.PGErrorDuplicateConstraint {
			if pqErr.Constraint == constants.ConstraintUsersEmail {
				return utils.NewDuplicateError("User", constants.ColumnEmail, user.Email)
			}
			return utils.NewDuplicateError("User", "id", user.ID)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	log.Info().
		Str(constants.UserIDContextKey, user.ID).
		Str(constants.EmailContextKey, utils.MaskEmail(user.Email)).
		Msg("User created")

	return nil
}

// GetByID retrieves a user by ID
func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `
        SELECT id, name, email, password_hash, salt, created_at, updated_at
        FROM users
        WHERE id = $1
    `
	return r.getOne(ctx, query, id, id)
}

// GetByEmail retrieves a user by email
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	// Case-insensitive comparison; emails are stored normalised
	query := `
        SELECT id, name, email, password_hash, salt, created_at, updated_at
        FROM users
        WHERE LOWER(email) = LOWER($1)
    `
	return r.getOne(ctx, query, email, fmt.Sprintf("email=%s", email))
}

func (r *PostgresUserRepository) getOne(ctx context.Context, query, arg, identifier string) (*models.User, error) {
	// Start query timer
	startTime := time.Now()

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Salt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	// Log the query execution
	utils.LogDBQuery(query, []interface{}{arg}, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("User", identifier)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// ExistsByEmail checks if a user with the given email exists
func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	// Start query timer
	startTime := time.Now()

	query := `SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, email).Scan(&exists)

	// Log the query execution
	utils.LogDBQuery(query, []interface{}{email}, time.Since(startTime), err)

	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}

	return exists, nil
}
