package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/ledger_dedup/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_dedup/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_dedup/internal/utils/mapping"
)

// PgxTransactionRepository stores imported transactions.
type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for transaction data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

// FindTransactionByID retrieves a transaction regardless of its duplicate state.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	sql, args, err := psql.Select(transactionColumns...).
		From("transactions").
		Where("transaction_id = ?", transactionID).
		ToSql()
	if err != nil {
		return nil, translatePgError(err, "failed to build transaction query")
	}

	m, err := scanTransaction(r.Pool.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, translatePgError(err, fmt.Sprintf("transaction %s not found", transactionID))
	}
	t := mapping.ToDomainTransaction(m)
	return &t, nil
}

// FindTransactionsByIDs retrieves multiple transactions keyed by ID. Missing IDs are absent from the map.
func (r *PgxTransactionRepository) FindTransactionsByIDs(ctx context.Context, transactionIDs []string) (map[string]domain.Transaction, error) {
	result := make(map[string]domain.Transaction, len(transactionIDs))
	if len(transactionIDs) == 0 {
		return result, nil
	}

	txns, err := r.list(ctx, r.Pool, domain.TransactionFilter{IncludeDuplicates: true, TransactionIDs: transactionIDs})
	if err != nil {
		return nil, err
	}
	for _, t := range txns {
		result[t.TransactionID] = t
	}
	return result, nil
}

// ListTransactions retrieves transactions matching the filter.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	return r.list(ctx, r.Pool, filter)
}

// ListUnresolved retrieves transactions not marked as duplicate.
func (r *PgxTransactionRepository) ListUnresolved(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	filter.IncludeDuplicates = false
	return r.list(ctx, r.Pool, filter)
}

func (r *PgxTransactionRepository) list(ctx context.Context, q querier, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	sql, args, err := buildListTransactionsQuery(filter).ToSql()
	if err != nil {
		return nil, translatePgError(err, "failed to build transaction listing")
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, translatePgError(err, "failed to list transactions")
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, translatePgError(err, "failed to scan transaction")
		}
		txns = append(txns, mapping.ToDomainTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, translatePgError(err, "failed to iterate transactions")
	}
	return txns, nil
}

// SaveTransactions inserts transactions in one unit of work, skipping IDs that already exist.
func (r *PgxTransactionRepository) SaveTransactions(ctx context.Context, transactions []domain.Transaction) (int, error) {
	if len(transactions) == 0 {
		return 0, nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	// Defer rollback in case of error
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	batch := &pgx.Batch{}
	for _, t := range transactions {
		m := mapping.ToModelTransaction(t)
		sql, args, err := psql.Insert("transactions").
			Columns(transactionColumns...).
			Values(
				m.TransactionID, m.TransactionDate, m.Amount, m.Description,
				m.CategoryMajor, m.CategoryMinor, m.Account, m.Memo, m.CountsTowardTotals,
				m.IsDuplicate, m.DuplicateOf, m.Checked, m.CheckedAt, m.ImportedAt,
			).
			Suffix("ON CONFLICT (transaction_id) DO NOTHING").
			ToSql()
		if err != nil {
			return 0, translatePgError(err, "failed to build transaction insert")
		}
		batch.Queue(sql, args...)
	}

	br := tx.SendBatch(ctx, batch)
	inserted := 0
	for i := range transactions {
		tag, err := br.Exec()
		if err != nil {
			br.Close()
			return 0, translatePgError(err, "failed to insert transaction "+transactions[i].TransactionID)
		}
		inserted += int(tag.RowsAffected())
	}
	// Important: Close the batch results before committing
	if err := br.Close(); err != nil {
		return 0, translatePgError(err, "failed to execute transaction batch")
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return inserted, nil
}
