package migrations

import (
	"context"
	"database/sql"

	"github.com/vivahmatch/backend/internal/constants"
)

// execAll runs statements in order, stopping at the first error
func execAll(ctx context.Context, tx *sql.Tx, statements ...string) error {
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// createUsersTable creates the users table
func createUsersTable() Migration {
	return Migration{
		Name:        "create_users_table",
		Description: "Creates the users table",
		TableName:   constants.TableUsers,
		RunSQL: func(ctx context.Context, tx *sql.Tx) error {
			return execAll(ctx, tx, `
				CREATE TABLE IF NOT EXISTS users (
					id VARCHAR(64) PRIMARY KEY,
					name VARCHAR(100) NOT NULL,
					email VARCHAR(255) NOT NULL,
					password_hash VARCHAR(255) NOT NULL,
					salt VARCHAR(255) NOT NULL DEFAULT '',
					created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
					CONSTRAINT `+constants.ConstraintUsersEmail+` UNIQUE (email)
				)
			`)
		},
	}
}

// createProfilesTable creates the profiles table. Height and income hold
// catalog labels; list attributes are TEXT[].
func createProfilesTable() Migration {
	return Migration{
		Name:        "create_profiles_table",
		Description: "Creates the profiles table",
		TableName:   constants.TableProfiles,
		RunSQL: func(ctx context.Context, tx *sql.Tx) error {
			return execAll(ctx, tx, `
				CREATE TABLE IF NOT EXISTS profiles (
					id CHAR(8) PRIMARY KEY,
					user_id VARCHAR(64) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
					name VARCHAR(100) NOT NULL,
					age INTEGER NOT NULL CHECK (age >= 18),
					gender VARCHAR(20) NOT NULL,
					height VARCHAR(40) NOT NULL DEFAULT '',
					mother_tongue VARCHAR(50) NOT NULL DEFAULT '',
					languages TEXT[] NOT NULL DEFAULT '{}',
					religion VARCHAR(50) NOT NULL DEFAULT '',
					caste VARCHAR(100) NOT NULL DEFAULT '',
					ethnicity VARCHAR(50) NOT NULL DEFAULT '',
					marital_status VARCHAR(30) NOT NULL DEFAULT '',
					country VARCHAR(60) NOT NULL DEFAULT '',
					state VARCHAR(60) NOT NULL DEFAULT '',
					city VARCHAR(60) NOT NULL DEFAULT '',
					education VARCHAR(100) NOT NULL DEFAULT '',
					profession VARCHAR(100) NOT NULL DEFAULT '',
					annual_income VARCHAR(40) NOT NULL DEFAULT '',
					eating_habits VARCHAR(30) NOT NULL DEFAULT '',
					drinking_habits VARCHAR(30) NOT NULL DEFAULT '',
					smoking_habits VARCHAR(30) NOT NULL DEFAULT '',
					physical_status VARCHAR(30) NOT NULL DEFAULT '',
					blood_group VARCHAR(5) NOT NULL DEFAULT '',
					health_conditions VARCHAR(200) NOT NULL DEFAULT '',
					has_children VARCHAR(40) NOT NULL DEFAULT '',
					spiritual_practices TEXT[] NOT NULL DEFAULT '{}',
					sacred_texts TEXT[] NOT NULL DEFAULT '{}',
					guru_lineage VARCHAR(100) NOT NULL DEFAULT '',
					dietary_lifestyle VARCHAR(30) NOT NULL DEFAULT '',
					rashi VARCHAR(20) NOT NULL DEFAULT '',
					nakshatra VARCHAR(30) NOT NULL DEFAULT '',
					horoscope_sign VARCHAR(20) NOT NULL DEFAULT '',
					manglik VARCHAR(20) NOT NULL DEFAULT '',
					guna_score INTEGER NOT NULL DEFAULT 0 CHECK (guna_score BETWEEN 0 AND 36),
					about TEXT NOT NULL DEFAULT '',
					verified BOOLEAN NOT NULL DEFAULT FALSE,
					active BOOLEAN NOT NULL DEFAULT TRUE,
					created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
					CONSTRAINT `+constants.ConstraintProfilesUser+` UNIQUE (user_id)
				)
			`)
		},
	}
}

// createInterestsTable creates the interests table
func createInterestsTable() Migration {
	return Migration{
		Name:        "create_interests_table",
		Description: "Creates the interests table",
		TableName:   constants.TableInterests,
		RunSQL: func(ctx context.Context, tx *sql.Tx) error {
			return execAll(ctx, tx,
				`
				CREATE TABLE IF NOT EXISTS interests (
					id VARCHAR(64) PRIMARY KEY,
					from_profile_id CHAR(8) NOT NULL REFERENCES profiles(id),
					to_profile_id CHAR(8) NOT NULL REFERENCES profiles(id),
					status VARCHAR(10) NOT NULL DEFAULT 'sent' CHECK (status IN ('sent', 'accepted', 'declined')),
					message TEXT NOT NULL DEFAULT '',
					created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
					CONSTRAINT `+constants.ConstraintInterestsPair+` UNIQUE (from_profile_id, to_profile_id),
					CONSTRAINT interests_not_self CHECK (from_profile_id <> to_profile_id)
				)
				`,
				`CREATE INDEX IF NOT EXISTS idx_interests_to_profile ON interests(to_profile_id)`,
			)
		},
	}
}

// createSearchIndexes adds the indexes used by listing queries
func createSearchIndexes() Migration {
	return Migration{
		Name:        "create_profile_listing_indexes",
		Description: "Indexes profiles by creation order and featured status",
		RunSQL: func(ctx context.Context, tx *sql.Tx) error {
			return execAll(ctx, tx,
				`CREATE INDEX IF NOT EXISTS idx_profiles_created ON profiles(created_at, id)`,
				`CREATE INDEX IF NOT EXISTS idx_profiles_featured ON profiles(active, verified)`,
			)
		},
	}
}
