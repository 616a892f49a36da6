package pgsql

import (
	"context"
	"fmt"
	"sort"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/ledger_dedup/internal/apperrors"
	"github.com/SscSPs/ledger_dedup/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_dedup/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_dedup/internal/utils/mapping"
)

// PgxResolutionRepository applies decisions and duplicate markings in one database transaction.
type PgxResolutionRepository struct {
	BaseRepository
}

// newPgxResolutionRepository creates a new resolution repository.
func newPgxResolutionRepository(pool *pgxpool.Pool) portsrepo.ResolutionRepository {
	return &PgxResolutionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxResolutionRepository implements portsrepo.ResolutionRepository
var _ portsrepo.ResolutionRepository = (*PgxResolutionRepository)(nil)

// ResolveCheck locks the check, then both transactions in ID order, calls fn and persists its change.
func (r *PgxResolutionRepository) ResolveCheck(ctx context.Context, checkID int64, fn portsrepo.ResolveFunc) (*domain.DuplicateCheck, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	// 1. Lock the check row
	check, err := findCheck(ctx, tx, checkID, true)
	if err != nil {
		return nil, err
	}

	// 2. Lock both transactions of the pair
	ids := []string{check.First, check.Second}
	txns, err := lockTransactions(ctx, tx, ids)
	if err != nil {
		return nil, err
	}

	// 3. Count transactions depending on either side as their keeper
	dependents, err := countDependents(ctx, tx, ids)
	if err != nil {
		return nil, err
	}

	change, err := fn(domain.ResolutionState{Check: *check, Transactions: txns, Dependents: dependents})
	if err != nil {
		return nil, err
	}

	// 4. Record the decision
	sql, args, err := psql.Update("duplicate_checks").
		Set("decision", string(change.Decision)).
		Set("decided_at", change.DecidedAt).
		Where(squirrel.Eq{"check_id": checkID}).
		ToSql()
	if err != nil {
		return nil, translatePgError(err, "failed to build decision update")
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return nil, apperrors.NewResolutionError(fmt.Sprintf("failed to record decision on check %d", checkID), err)
	}

	// 5. Apply transaction updates in ID order
	updateIDs := make([]string, 0, len(change.TransactionUpdates))
	for id := range change.TransactionUpdates {
		updateIDs = append(updateIDs, id)
	}
	sort.Strings(updateIDs)
	for _, id := range updateIDs {
		if err := updateDuplicateFields(ctx, tx, id, change.TransactionUpdates[id]); err != nil {
			return nil, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	check.Decision = change.Decision
	decidedAt := change.DecidedAt
	check.DecidedAt = &decidedAt
	return check, nil
}

// RestoreTransaction locks the transaction, calls fn and applies the returned fields.
func (r *PgxResolutionRepository) RestoreTransaction(ctx context.Context, transactionID string, fn portsrepo.RestoreFunc) (*domain.Transaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	txns, err := lockTransactions(ctx, tx, []string{transactionID})
	if err != nil {
		return nil, err
	}
	before, ok := txns[transactionID]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("transaction %s not found", transactionID))
	}

	fields, err := fn(before)
	if err != nil {
		return nil, err
	}
	if fields == nil {
		return &before, nil
	}

	if err := updateDuplicateFields(ctx, tx, transactionID, *fields); err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &before, nil
}

// buildLockTransactionsQuery row-locks transactions in ID order. Only non-key
// columns change, so FOR NO KEY UPDATE leaves the KEY SHARE locks taken by
// duplicate_checks foreign keys unblocked.
func buildLockTransactionsQuery(ids []string) squirrel.SelectBuilder {
	return psql.Select(transactionColumns...).
		From("transactions").
		Where(squirrel.Eq{"transaction_id": ids}).
		OrderBy(`transaction_id COLLATE "C"`).
		Suffix("FOR NO KEY UPDATE")
}

func lockTransactions(ctx context.Context, tx pgx.Tx, ids []string) (map[string]domain.Transaction, error) {
	sql, args, err := buildLockTransactionsQuery(ids).ToSql()
	if err != nil {
		return nil, translatePgError(err, "failed to build lock query")
	}

	rows, err := tx.Query(ctx, sql, args...)
	if err != nil {
		return nil, translatePgError(err, "failed to lock transactions")
	}
	defer rows.Close()

	txns := make(map[string]domain.Transaction, len(ids))
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, translatePgError(err, "failed to scan locked transaction")
		}
		txns[m.TransactionID] = mapping.ToDomainTransaction(m)
	}
	if err := rows.Err(); err != nil {
		return nil, translatePgError(err, "failed to iterate locked transactions")
	}
	return txns, nil
}

func countDependents(ctx context.Context, tx pgx.Tx, ids []string) (map[string]int, error) {
	sql, args, err := psql.Select("duplicate_of", "COUNT(*)").
		From("transactions").
		Where(squirrel.Eq{"duplicate_of": ids}).
		GroupBy("duplicate_of").
		ToSql()
	if err != nil {
		return nil, translatePgError(err, "failed to build dependents query")
	}

	rows, err := tx.Query(ctx, sql, args...)
	if err != nil {
		return nil, translatePgError(err, "failed to count dependents")
	}
	defer rows.Close()

	dependents := make(map[string]int, len(ids))
	for rows.Next() {
		var keeper string
		var count int
		if err := rows.Scan(&keeper, &count); err != nil {
			return nil, translatePgError(err, "failed to scan dependents")
		}
		dependents[keeper] = count
	}
	if err := rows.Err(); err != nil {
		return nil, translatePgError(err, "failed to iterate dependents")
	}
	return dependents, nil
}

func updateDuplicateFields(ctx context.Context, tx pgx.Tx, transactionID string, f domain.DuplicateFields) error {
	sql, args, err := buildUpdateDuplicateFieldsQuery(transactionID, f).ToSql()
	if err != nil {
		return translatePgError(err, "failed to build duplicate update")
	}

	tag, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		return apperrors.NewResolutionError(fmt.Sprintf("failed to update duplicate state of %s", transactionID), err)
	}
	if tag.RowsAffected() != 1 {
		return apperrors.NewResolutionError(fmt.Sprintf("transaction %s was not updated", transactionID), nil)
	}
	return nil
}

func buildUpdateDuplicateFieldsQuery(transactionID string, f domain.DuplicateFields) squirrel.UpdateBuilder {
	return psql.Update("transactions").
		Set("is_duplicate", f.IsDuplicate).
		Set("duplicate_of", f.DuplicateOf).
		Set("checked", f.Checked).
		Set("checked_at", f.CheckedAt).
		Where(squirrel.Eq{"transaction_id": transactionID})
}
