package pgsql

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/ledger_dedup/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_dedup/internal/core/ports/repositories"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// Ensure reportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// GetCategoryTotals sums amounts per major category.
func (r *reportingRepository) GetCategoryTotals(ctx context.Context, filter domain.TransactionFilter) ([]domain.CategoryTotal, error) {
	sql, args, err := buildCategoryTotalsQuery(filter).ToSql()
	if err != nil {
		return nil, translatePgError(err, "failed to build category totals query")
	}

	rows, err := r.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, translatePgError(err, "error querying category totals")
	}
	defer rows.Close()

	result := []domain.CategoryTotal{}
	for rows.Next() {
		var row domain.CategoryTotal
		if err := rows.Scan(&row.CategoryMajor, &row.Income, &row.Expense, &row.Net, &row.Count); err != nil {
			return nil, translatePgError(err, "error scanning category totals row")
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, translatePgError(err, "error iterating category totals rows")
	}
	return result, nil
}

func buildCategoryTotalsQuery(filter domain.TransactionFilter) squirrel.SelectBuilder {
	q := psql.Select(
		"category_major",
		"COALESCE(SUM(amount) FILTER (WHERE amount > 0), 0) AS income",
		"COALESCE(SUM(amount) FILTER (WHERE amount < 0), 0) AS expense",
		"COALESCE(SUM(amount), 0) AS net",
		"COUNT(*)",
	).
		From("transactions").
		Where(squirrel.Eq{"counts_toward_totals": true})

	// Limit does not apply to aggregates.
	filter.Limit = 0
	return applyTransactionFilter(q, filter).
		GroupBy("category_major").
		OrderBy("category_major")
}
