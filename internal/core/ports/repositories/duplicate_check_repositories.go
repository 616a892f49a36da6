package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_dedup/internal/core/domain"
)

// CreateResult is the outcome of a create-if-absent for one pair.
type CreateResult struct {
	Check   domain.DuplicateCheck // The stored row; the pre-existing one when Created is false
	Created bool
}

// DuplicateCheckReader defines read operations on the check ledger
type DuplicateCheckReader interface {
	// FindCheckByID retrieves a check by ID. Returns apperrors.ErrNotFound if absent.
	FindCheckByID(ctx context.Context, checkID int64) (*domain.DuplicateCheck, error)

	// ListChecks lists checks by descending score then ascending canonical pair.
	ListChecks(ctx context.Context, filter domain.CheckListFilter, limit int) ([]domain.DuplicateCheck, error)

	// GetStats counts checks per decision.
	GetStats(ctx context.Context) (domain.DuplicateStats, error)
}

// DuplicateCheckWriter defines write operations on the check ledger.
// Uniqueness of the canonical pair is enforced by the store itself.
type DuplicateCheckWriter interface {
	// CreateIfAbsent records a candidate unless its pair already has a row.
	CreateIfAbsent(ctx context.Context, candidate domain.NewCandidate, detectedAt time.Time) (CreateResult, error)

	// CreateBatchIfAbsent applies CreateIfAbsent to a batch in a single unit of work.
	// Results are returned in input order.
	CreateBatchIfAbsent(ctx context.Context, candidates []domain.NewCandidate, detectedAt time.Time) ([]CreateResult, error)
}

// DuplicateCheckRepositoryFacade combines all check-ledger repository interfaces
type DuplicateCheckRepositoryFacade interface {
	DuplicateCheckReader
	DuplicateCheckWriter
}
