package services

import (
	"context"

	"github.com/SscSPs/ledger_dedup/internal/core/domain"
)

// ReportingService defines operations for generating aggregate reports
type ReportingService interface {
	// CategoryTotals sums income and expense per major category.
	// Confirmed duplicates are excluded unless filter.IncludeDuplicates is set.
	CategoryTotals(ctx context.Context, filter domain.TransactionFilter) (*domain.CategoryReport, error)
}
