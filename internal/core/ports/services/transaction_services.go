package services

import (
	"context"

	"github.com/SscSPs/ledger_dedup/internal/core/domain"
)

// TransactionReaderSvc defines read operations for transactions
type TransactionReaderSvc interface {
	// GetTransaction retrieves a transaction by ID, whatever its duplicate state.
	GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions lists transactions; duplicates are hidden unless the filter includes them.
	ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error)
}

// TransactionWriterSvc defines the intake of imported transactions
type TransactionWriterSvc interface {
	// ImportTransactions stores transactions, ignoring source references already present.
	ImportTransactions(ctx context.Context, transactions []domain.Transaction) (*domain.ImportResult, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
