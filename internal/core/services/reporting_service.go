package services

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/ledger_dedup/internal/apperrors"
	"github.com/SscSPs/ledger_dedup/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_dedup/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_dedup/internal/core/ports/services"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repo portsrepo.ReportingRepository, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		reportingRepo: repo,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// CategoryTotals sums income and expense per major category.
func (s *reportingService) CategoryTotals(ctx context.Context, filter domain.TransactionFilter) (*domain.CategoryReport, error) {
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, apperrors.NewValidationError("from must not be after to")
	}

	// Get category data from repository
	rows, err := s.reportingRepo.GetCategoryTotals(ctx, filter)
	if err != nil {
		err = asPersistence(err, "failed to retrieve category totals")
		s.LogError(ctx, err, "Failed to retrieve category totals",
			slog.Bool("include_duplicates", filter.IncludeDuplicates))
		return nil, err
	}

	report := &domain.CategoryReport{
		Categories:        rows,
		TotalIncome:       decimal.Zero,
		TotalExpense:      decimal.Zero,
		IncludeDuplicates: filter.IncludeDuplicates,
	}
	if report.Categories == nil {
		report.Categories = []domain.CategoryTotal{}
	}
	for _, r := range rows {
		report.TotalIncome = report.TotalIncome.Add(r.Income)
		report.TotalExpense = report.TotalExpense.Add(r.Expense)
	}
	report.Net = report.TotalIncome.Add(report.TotalExpense)

	s.LogInfo(ctx, "Category totals report generated successfully",
		slog.Int("categories", len(rows)),
		slog.Bool("include_duplicates", filter.IncludeDuplicates))
	return report, nil
}
