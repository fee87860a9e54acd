package store

import (
	"context"
	"database/sql"
)

// DBTX abstracts over *sql.DB and *sql.Tx so store implementations can run
// against either a connection pool or an open transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}
