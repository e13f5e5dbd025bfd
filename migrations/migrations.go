// Package migrations creates and tracks the PostgreSQL schema.
//
// Executed migrations are recorded in a tracking table so each runs exactly
// once. A migration whose table already exists is recorded without running,
// which keeps the migrator safe to run against a hand-provisioned database.
package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vivahmatch/backend/internal/constants"
	"github.com/vivahmatch/backend/internal/database"
)

// Migration represents a database migration.
type Migration struct {
	// Name is a unique identifier for the migration
	Name string
	// Description is a human-readable explanation of what the migration does
	Description string
	// TableName is the table created by this migration, used for existence checks.
	// Empty for migrations that only alter existing tables.
	TableName string
	// RunSQL executes the migration inside a transaction
	RunSQL func(ctx context.Context, tx *sql.Tx) error
}

// Migrator handles database migrations.
type Migrator struct {
	db *database.Pool
}

// NewMigrator creates a new migrator.
func NewMigrator(db *database.Pool) *Migrator {
	return &Migrator{
		db: db,
	}
}

// RunMigrations runs all pending database migrations in order.
func (m *Migrator) RunMigrations(ctx context.Context) error {
	log.Info().Msg("Running database migrations")
	startTime := time.Now()

	if err := m.createMigrationsTable(ctx); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	executed, err := m.getExecutedMigrations(ctx)
	if err != nil {
		return fmt.Errorf("failed to get executed migrations: %w", err)
	}

	migrations := GetMigrations()
	migrationsRun, migrationsRecorded := 0, 0

	for _, migration := range migrations {
		if executed[migration.Name] {
			continue
		}

		if migration.TableName != "" {
			exists, err := m.tableExists(ctx, migration.TableName)
			if err != nil {
				return fmt.Errorf("failed to check if table %s exists: %w", migration.TableName, err)
			}
			if exists {
				log.Info().
					Str("migration", migration.Name).
					Str("table", migration.TableName).
					Msg("Table already exists, recording migration as completed")

				if err := m.recordMigration(ctx, m.db, migration); err != nil {
					return err
				}
				migrationsRecorded++
				continue
			}
		}

		log.Info().
			Str("migration", migration.Name).
			Str("table", migration.TableName).
			Msg("Running migration")

		if err := m.runMigration(ctx, migration); err != nil {
			return err
		}
		migrationsRun++
	}

	log.Info().
		Int("migrations_run", migrationsRun).
		Int("migrations_recorded", migrationsRecorded).
		Int("total_migrations", len(migrations)).
		Dur("duration", time.Since(startTime)).
		Msg("Database migrations completed")

	return nil
}

// createMigrationsTable creates the tracking table if it doesn't exist
func (m *Migrator) createMigrationsTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS ` + constants.TableSchemaMigrations + ` (
			name VARCHAR(255) PRIMARY KEY,
			description TEXT,
			executed_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`
	_, err := m.db.ExecContext(ctx, query)
	return err
}

// getExecutedMigrations returns the names of recorded migrations
func (m *Migrator) getExecutedMigrations(ctx context.Context) (map[string]bool, error) {
	query := `SELECT name FROM ` + constants.TableSchemaMigrations
	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("failed to close rows")
		}
	}()

	executed := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		executed[name] = true
	}

	return executed, rows.Err()
}

// runMigration runs a migration and records it in one transaction
func (m *Migrator) runMigration(ctx context.Context, migration Migration) error {
	return m.db.Transaction(ctx, func(tx *sql.Tx) error {
		if err := migration.RunSQL(ctx, tx); err != nil {
			return fmt.Errorf("migration %s failed: %w", migration.Name, err)
		}
		return m.recordMigration(ctx, tx, migration)
	})
}

// recordMigration marks migration as executed
func (m *Migrator) recordMigration(ctx context.Context, db database.DBTX, migration Migration) error {
	query := `INSERT INTO ` + constants.TableSchemaMigrations + ` (name, description) VALUES ($1, $2)`
	if _, err := db.ExecContext(ctx, query, migration.Name, migration.Description); err != nil {
		return fmt.Errorf("failed to record migration %s: %w", migration.Name, err)
	}
	return nil
}

// tableExists checks if a table exists in the current schema
func (m *Migrator) tableExists(ctx context.Context, tableName string) (bool, error) {
	query := `
        SELECT EXISTS(SELECT 1
        FROM information_schema.tables
        WHERE table_schema = current_schema()
        AND table_name = $1)
    `
	var exists bool
	err := m.db.QueryRowContext(ctx, query, tableName).Scan(&exists)
	return exists, err
}

// GetMigrations returns all migrations in the order they must run.
func GetMigrations() []Migration {
	return []Migration{
		createUsersTable(),
		createProfilesTable(),
		createInterestsTable(),
		createSearchIndexes(),
	}
}
