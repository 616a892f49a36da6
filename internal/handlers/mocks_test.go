package handlers_test

import (
	"context"

	"github.com/SscSPs/ledger_dedup/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_dedup/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock DuplicateService ---
type MockDuplicateService struct {
	mock.Mock
}

func (m *MockDuplicateService) Detect(ctx context.Context, options domain.DetectionOptions) (*domain.DetectionResult, error) {
	args := m.Called(ctx, options)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DetectionResult), args.Error(1)
}
func (m *MockDuplicateService) ListCandidates(ctx context.Context, limit int, skipChecked bool) ([]domain.CandidateSummary, error) {
	args := m.Called(ctx, limit, skipChecked)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CandidateSummary), args.Error(1)
}
func (m *MockDuplicateService) GetCandidate(ctx context.Context, checkID int64) (*domain.CandidateDetail, error) {
	args := m.Called(ctx, checkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CandidateDetail), args.Error(1)
}
func (m *MockDuplicateService) Stats(ctx context.Context) (*domain.DuplicateStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DuplicateStats), args.Error(1)
}
func (m *MockDuplicateService) Confirm(ctx context.Context, checkID int64, decision string) (*domain.ResolutionOutcome, error) {
	args := m.Called(ctx, checkID, decision)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResolutionOutcome), args.Error(1)
}
func (m *MockDuplicateService) Restore(ctx context.Context, transactionID string) (*domain.RestoreOutcome, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RestoreOutcome), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.DuplicateSvcFacade = (*MockDuplicateService)(nil)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) ImportTransactions(ctx context.Context, transactions []domain.Transaction) (*domain.ImportResult, error) {
	args := m.Called(ctx, transactions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ImportResult), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) CategoryTotals(ctx context.Context, filter domain.TransactionFilter) (*domain.CategoryReport, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CategoryReport), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.ReportingService = (*MockReportingService)(nil)
