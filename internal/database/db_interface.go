package database

import (
	"context"
	"database/sql"
)

// DBTX is the query surface shared by *sql.DB, *sql.Tx and Pool, so
// repositories can run either standalone or inside Transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Compile-time checks
var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
	_ DBTX = (*Pool)(nil)
)
