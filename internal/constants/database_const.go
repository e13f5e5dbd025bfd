// Package constants provides shared constant values used throughout the application.
//
// The database_const.go file defines constants related to database structures,
// including table names and column names. These constants keep SQL in the
// repositories and migrations consistent with one another.
package constants

// Table Names define the names of database tables used in the application.
const (
	// TableUsers is the name of the table storing user account information.
	TableUsers = "users"

	// TableProfiles is the name of the table storing matrimonial profiles.
	TableProfiles = "profiles"

	// TableInterests is the name of the table storing interest signals between profiles.
	TableInterests = "interests"

	// TableSchemaMigrations is the name of the table tracking applied migrations.
	TableSchemaMigrations = "schema_migrations"
)

// Column Names used in more than one place.
const (
	// ColumnEmail is the column storing a user's email address.
	ColumnEmail = "email"

	// ColumnPasswordHash is the column storing a user's hashed password.
	ColumnPasswordHash = "password_hash"

	// ColumnUserID is the column linking a profile to its owning user.
	ColumnUserID = "user_id"
)

// Constraint Names declared by the migrations and matched by error mapping.
const (
	// ConstraintUsersEmail enforces one account per email address.
	ConstraintUsersEmail = "users_email_key"

	// ConstraintProfilesUser enforces one profile per user.
	ConstraintProfilesUser = "profiles_user_id_key"

	// ConstraintInterestsPair enforces one interest per ordered profile pair.
	ConstraintInterestsPair = "interests_from_to_key"
)

// Client Storage Keys name the durable entries the filter client keeps.
const (
	// StorageKeySavedFilters holds the list of saved filter presets.
	StorageKeySavedFilters = "savedFilters"

	// StorageKeyLatestSearch holds the latest meaningful filter snapshot.
	StorageKeyLatestSearch = "latestSearch"

	// StorageKeyAccessToken holds the bearer token saved by the login command.
	StorageKeyAccessToken = "accessToken"
)
