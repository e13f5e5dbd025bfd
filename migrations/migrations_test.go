package migrations_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivahmatch/backend/internal/database"
	"github.com/vivahmatch/backend/migrations"
)

// createMockPool creates a pool over sqlmock closed at the end of the test
func createMockPool(t *testing.T) (*database.Pool, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &database.Pool{DB: db}, mock
}

func TestGetMigrations(t *testing.T) {
	all := migrations.GetMigrations()

	names := make([]string, 0, len(all))
	seen := make(map[string]bool)
	for _, m := range all {
		assert.False(t, seen[m.Name], "duplicate migration name %s", m.Name)
		seen[m.Name] = true
		names = append(names, m.Name)
		assert.NotNil(t, m.RunSQL)
	}

	assert.Equal(t, []string{
		"create_users_table",
		"create_profiles_table",
		"create_interests_table",
		"create_profile_listing_indexes",
	}, names, "tables are created before the tables that reference them")
}

func TestRunMigrations_FreshDatabase(t *testing.T) {
	pool, mock := createMockPool(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT name FROM schema_migrations").WillReturnRows(sqlmock.NewRows([]string{"name"}))

	for _, table := range []string{"users", "profiles", "interests"} {
		mock.ExpectQuery("information_schema.tables").
			WithArgs(table).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectBegin()
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS " + table).WillReturnResult(sqlmock.NewResult(0, 0))
		if table == "interests" {
			mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_interests_to_profile").WillReturnResult(sqlmock.NewResult(0, 0))
		}
		mock.ExpectExec("INSERT INTO schema_migrations").
			WithArgs("create_"+table+"_table", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
	}

	mock.ExpectBegin()
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_profiles_created").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_profiles_featured").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO schema_migrations").
		WithArgs("create_profile_listing_indexes", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := migrations.NewMigrator(pool).RunMigrations(context.Background())

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations_AllExecuted(t *testing.T) {
	pool, mock := createMockPool(t)

	rows := sqlmock.NewRows([]string{"name"})
	for _, m := range migrations.GetMigrations() {
		rows.AddRow(m.Name)
	}
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT name FROM schema_migrations").WillReturnRows(rows)

	err := migrations.NewMigrator(pool).RunMigrations(context.Background())

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations_ExistingTableIsRecorded(t *testing.T) {
	pool, mock := createMockPool(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT name FROM schema_migrations").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).
			AddRow("create_profiles_table").
			AddRow("create_interests_table").
			AddRow("create_profile_listing_indexes"))
	mock.ExpectQuery("information_schema.tables").
		WithArgs("users").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectExec("INSERT INTO schema_migrations").
		WithArgs("create_users_table", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := migrations.NewMigrator(pool).RunMigrations(context.Background())

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations_FailureRollsBack(t *testing.T) {
	pool, mock := createMockPool(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT name FROM schema_migrations").WillReturnRows(sqlmock.NewRows([]string{"name"}))
	mock.ExpectQuery("information_schema.tables").
		WithArgs("users").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").WillReturnError(errors.New("permission denied"))
	mock.ExpectRollback()

	err := migrations.NewMigrator(pool).RunMigrations(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration create_users_table failed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations_TrackingTableError(t *testing.T) {
	pool, mock := createMockPool(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnError(errors.New("read-only"))

	err := migrations.NewMigrator(pool).RunMigrations(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create migrations table")
}
