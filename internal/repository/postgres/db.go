package postgres

import (
	"context"
	"database/sql"
)

// Querier is the common interface implemented by *sql.DB and *sql.Tx,
// letting repositories run inside or outside a transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
