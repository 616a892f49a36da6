package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/ledger_dedup/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_dedup/internal/core/ports/repositories"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

// Ensure MockTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionsByIDs(ctx context.Context, transactionIDs []string) (map[string]domain.Transaction, error) {
	args := m.Called(ctx, transactionIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListUnresolved(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransactions(ctx context.Context, transactions []domain.Transaction) (int, error) {
	args := m.Called(ctx, transactions)
	return args.Int(0), args.Error(1)
}

// --- Mock DuplicateCheckRepository ---
type MockDuplicateCheckRepository struct {
	mock.Mock
}

var _ portsrepo.DuplicateCheckRepositoryFacade = (*MockDuplicateCheckRepository)(nil)

func (m *MockDuplicateCheckRepository) FindCheckByID(ctx context.Context, checkID int64) (*domain.DuplicateCheck, error) {
	args := m.Called(ctx, checkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DuplicateCheck), args.Error(1)
}

func (m *MockDuplicateCheckRepository) ListChecks(ctx context.Context, filter domain.CheckListFilter, limit int) ([]domain.DuplicateCheck, error) {
	args := m.Called(ctx, filter, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DuplicateCheck), args.Error(1)
}

func (m *MockDuplicateCheckRepository) GetStats(ctx context.Context) (domain.DuplicateStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.DuplicateStats), args.Error(1)
}

func (m *MockDuplicateCheckRepository) CreateIfAbsent(ctx context.Context, candidate domain.NewCandidate, detectedAt time.Time) (portsrepo.CreateResult, error) {
	args := m.Called(ctx, candidate, detectedAt)
	return args.Get(0).(portsrepo.CreateResult), args.Error(1)
}

// CreateBatchIfAbsent returns every candidate as newly created unless the
// expectation supplies explicit results.
func (m *MockDuplicateCheckRepository) CreateBatchIfAbsent(ctx context.Context, candidates []domain.NewCandidate, detectedAt time.Time) ([]portsrepo.CreateResult, error) {
	args := m.Called(ctx, candidates, detectedAt)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	if args.Get(0) != nil {
		return args.Get(0).([]portsrepo.CreateResult), nil
	}
	results := make([]portsrepo.CreateResult, len(candidates))
	for i, c := range candidates {
		results[i] = portsrepo.CreateResult{
			Check: domain.DuplicateCheck{
				CheckID:       int64(i + 1),
				CanonicalPair: c.Pair,
				Params:        c.Params,
				Score:         c.Score,
				DetectedAt:    detectedAt,
				Decision:      domain.DecisionPending,
			},
			Created: true,
		}
	}
	return results, nil
}

// --- Mock ResolutionRepository ---
// The expectation returns the locked state; the mock runs the service's
// decision function on it and records the requested change.
type MockResolutionRepository struct {
	mock.Mock
	Changes  []domain.ResolutionChange
	Restored []domain.DuplicateFields
}

var _ portsrepo.ResolutionRepository = (*MockResolutionRepository)(nil)

func (m *MockResolutionRepository) ResolveCheck(ctx context.Context, checkID int64, fn portsrepo.ResolveFunc) (*domain.DuplicateCheck, error) {
	args := m.Called(ctx, checkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	state := args.Get(0).(domain.ResolutionState)
	change, err := fn(state)
	if err != nil {
		return nil, err
	}
	if err := args.Error(1); err != nil {
		return nil, err
	}
	m.Changes = append(m.Changes, change)
	check := state.Check
	check.Decision = change.Decision
	check.DecidedAt = &change.DecidedAt
	return &check, nil
}

func (m *MockResolutionRepository) RestoreTransaction(ctx context.Context, transactionID string, fn portsrepo.RestoreFunc) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	before := args.Get(0).(domain.Transaction)
	fields, err := fn(before)
	if err != nil {
		return nil, err
	}
	if fields != nil {
		m.Restored = append(m.Restored, *fields)
	}
	return &before, args.Error(1)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetCategoryTotals(ctx context.Context, filter domain.TransactionFilter) ([]domain.CategoryTotal, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryTotal), args.Error(1)
}
