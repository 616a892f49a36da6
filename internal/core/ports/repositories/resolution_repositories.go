package repositories

import (
	"context"

	"github.com/SscSPs/ledger_dedup/internal/core/domain"
)

// ResolveFunc decides what to persist given the locked check and transactions.
// Returning an error aborts and rolls back the unit of work; the error is returned unchanged.
type ResolveFunc func(state domain.ResolutionState) (domain.ResolutionChange, error)

// RestoreFunc decides the new duplicate fields of a locked transaction.
// A nil result means nothing changes.
type RestoreFunc func(transaction domain.Transaction) (*domain.DuplicateFields, error)

// ResolutionRepository runs decision updates and transaction mutations inside
// one atomic unit of work with the affected rows locked.
type ResolutionRepository interface {
	// ResolveCheck locks the check and both transactions of its pair, calls fn,
	// then records the decision and applies the transaction updates before committing.
	ResolveCheck(ctx context.Context, checkID int64, fn ResolveFunc) (*domain.DuplicateCheck, error)

	// RestoreTransaction locks the transaction, calls fn and applies the result.
	// It returns the transaction as it was before the change.
	RestoreTransaction(ctx context.Context, transactionID string, fn RestoreFunc) (*domain.Transaction, error)
}
