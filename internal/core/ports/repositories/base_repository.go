package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager defines the unit-of-work methods shared by the pgsql repositories.
// Resolution runs its lock, decide and write steps inside one of these transactions.
type TransactionManager interface {
	// Begin starts a new database transaction
	Begin(ctx context.Context) (pgx.Tx, error)

	// Commit commits a transaction
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back a transaction
	Rollback(ctx context.Context, tx pgx.Tx) error
}
