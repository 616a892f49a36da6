package repositories

import (
	"context"

	"github.com/SscSPs/ledger_dedup/internal/core/domain"
)

// TransactionReader defines read operations for transaction data.
// Every method honours domain.TransactionFilter, including its duplicate exclusion.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction regardless of its duplicate state.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindTransactionsByIDs retrieves multiple transactions by their IDs, regardless of duplicate state.
	FindTransactionsByIDs(ctx context.Context, transactionIDs []string) (map[string]domain.Transaction, error)

	// ListTransactions retrieves transactions matching the filter ordered by date then ID.
	ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error)

	// ListUnresolved retrieves transactions not marked as duplicate, the input of detection.
	ListUnresolved(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// SaveTransactions inserts transactions, ignoring IDs that already exist.
	// It returns the number of rows actually inserted.
	SaveTransactions(ctx context.Context, transactions []domain.Transaction) (int, error)
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
