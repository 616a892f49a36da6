package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_dedup/internal/apperrors"
	"github.com/SscSPs/ledger_dedup/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_dedup/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_dedup/internal/core/ports/services"
)

// transactionService implements the TransactionSvcFacade interface
type transactionService struct {
	BaseService
	transactionRepo portsrepo.TransactionRepositoryFacade
	maxListLimit    int
}

// TransactionServiceOption is a functional option for configuring the transaction service
type TransactionServiceOption func(*transactionService)

// WithMaxTransactionListLimit caps how many transactions a single listing may return.
func WithMaxTransactionListLimit(n int) TransactionServiceOption {
	return func(s *transactionService) {
		if n > 0 {
			s.maxListLimit = n
		}
	}
}

// NewTransactionService creates a new transaction service with the provided options
func NewTransactionService(repo portsrepo.TransactionRepositoryFacade, options ...TransactionServiceOption) portssvc.TransactionSvcFacade {
	svc := &transactionService{
		transactionRepo: repo,
		maxListLimit:    1000,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure transactionService implements the TransactionSvcFacade interface
var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// GetTransaction retrieves a transaction by ID, including duplicates.
func (s *transactionService) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	if transactionID == "" {
		return nil, apperrors.NewValidationError("transaction ID is required")
	}

	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		err = asPersistence(err, "failed to load transaction")
		s.LogFailure(ctx, err, "Failed to get transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}
	return txn, nil
}

// ListTransactions lists transactions visible under the filter.
func (s *transactionService) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	if filter.Limit < 0 {
		return nil, apperrors.NewValidationError(fmt.Sprintf("limit must be >= 0, got %d", filter.Limit))
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, apperrors.NewValidationError("from must not be after to")
	}
	if filter.Limit == 0 || filter.Limit > s.maxListLimit {
		filter.Limit = s.maxListLimit
	}

	txns, err := s.transactionRepo.ListTransactions(ctx, filter)
	if err != nil {
		err = asPersistence(err, "failed to list transactions")
		s.LogError(ctx, err, "Failed to list transactions",
			slog.Bool("include_duplicates", filter.IncludeDuplicates),
			slog.String("account", filter.Account))
		return nil, err
	}
	return txns, nil
}

// ImportTransactions validates and stores a batch of imported transactions.
// IDs already present are ignored, so re-importing the same file is harmless.
func (s *transactionService) ImportTransactions(ctx context.Context, transactions []domain.Transaction) (*domain.ImportResult, error) {
	if len(transactions) == 0 {
		return nil, apperrors.NewValidationError("at least one transaction is required")
	}

	now := time.Now().UTC()
	batch := make([]domain.Transaction, len(transactions))
	seen := make(map[string]struct{}, len(transactions))
	for i, t := range transactions {
		if err := t.Validate(); err != nil {
			return nil, apperrors.NewValidationError(fmt.Sprintf("transaction %d: %v", i, err))
		}
		if _, dup := seen[t.TransactionID]; dup {
			return nil, apperrors.NewValidationError(fmt.Sprintf("transaction %s appears more than once in the batch", t.TransactionID))
		}
		seen[t.TransactionID] = struct{}{}

		// Imports always arrive unresolved; duplicate state is only set by confirm.
		t.DuplicateFields = domain.ClearedDuplicateFields()
		t.Date = domain.CivilDate(t.Date)
		if t.ImportedAt.IsZero() {
			t.ImportedAt = now
		}
		batch[i] = t
	}

	inserted, err := s.transactionRepo.SaveTransactions(ctx, batch)
	if err != nil {
		err = asPersistence(err, "failed to save transactions")
		s.LogError(ctx, err, "Failed to import transactions", slog.Int("received", len(transactions)))
		return nil, err
	}

	result := &domain.ImportResult{
		Received: len(transactions),
		Inserted: inserted,
		Ignored:  len(transactions) - inserted,
	}
	s.LogInfo(ctx, "Transactions imported",
		slog.Int("received", result.Received),
		slog.Int("inserted", result.Inserted),
		slog.Int("ignored", result.Ignored))
	return result, nil
}
