package pgsql

import (
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/ledger_dedup/internal/core/domain"
	"github.com/SscSPs/ledger_dedup/internal/models"
)

var transactionColumns = []string{
	"transaction_id", "transaction_date", "amount", "description",
	"category_major", "category_minor", "account", "memo", "counts_toward_totals",
	"is_duplicate", "duplicate_of", "checked", "checked_at", "imported_at",
}

// applyTransactionFilter adds the shared read-side predicates to q.
// Confirmed duplicates are excluded unless the filter asks for them.
func applyTransactionFilter(q squirrel.SelectBuilder, f domain.TransactionFilter) squirrel.SelectBuilder {
	if !f.IncludeDuplicates {
		q = q.Where(squirrel.Eq{"is_duplicate": false})
	}
	if f.From != nil {
		q = q.Where(squirrel.GtOrEq{"transaction_date": domain.CivilDate(*f.From)})
	}
	if f.To != nil {
		q = q.Where(squirrel.LtOrEq{"transaction_date": domain.CivilDate(*f.To)})
	}
	if f.Account != "" {
		q = q.Where(squirrel.Eq{"account": f.Account})
	}
	if len(f.TransactionIDs) > 0 {
		q = q.Where(squirrel.Eq{"transaction_id": f.TransactionIDs})
	}
	if f.After != nil {
		q = q.Where("(transaction_date, transaction_id) > (?, ?)", domain.CivilDate(f.After.Date), f.After.TransactionID)
	}
	return q
}

// buildListTransactionsQuery selects filtered transactions ordered by date then ID.
func buildListTransactionsQuery(f domain.TransactionFilter) squirrel.SelectBuilder {
	q := applyTransactionFilter(psql.Select(transactionColumns...).From("transactions"), f).
		OrderBy("transaction_date", "transaction_id")
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}
	return q
}

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.TransactionDate,
		&m.Amount,
		&m.Description,
		&m.CategoryMajor,
		&m.CategoryMinor,
		&m.Account,
		&m.Memo,
		&m.CountsTowardTotals,
		&m.IsDuplicate,
		&m.DuplicateOf,
		&m.Checked,
		&m.CheckedAt,
		&m.ImportedAt,
	)
	return m, err
}
