package repositories

import (
	"context"

	"github.com/SscSPs/ledger_dedup/internal/core/domain"
)

// ReportingRepository defines operations for retrieving aggregate report data
type ReportingRepository interface {
	// GetCategoryTotals sums amounts per major category for rows that count toward totals
	// and match the filter. Duplicates are excluded unless filter.IncludeDuplicates is set.
	GetCategoryTotals(ctx context.Context, filter domain.TransactionFilter) ([]domain.CategoryTotal, error)
}
