package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/SscSPs/ledger_dedup/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every PostgreSQL repository onto one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TransactionRepo:    newPgxTransactionRepository(dbPool),
		DuplicateCheckRepo: newPgxDuplicateCheckRepository(dbPool),
		ResolutionRepo:     newPgxResolutionRepository(dbPool),
		ReportingRepo:      newReportingRepository(dbPool),
	}
}
