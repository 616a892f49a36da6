package services

import (
	"context"

	"github.com/SscSPs/ledger_dedup/internal/core/domain"
)

// DetectionSvc finds candidate duplicate pairs and records them in the check ledger.
type DetectionSvc interface {
	// Detect scans unresolved transactions and records every pair scoring at least
	// the minimum score. Already recorded pairs are left untouched.
	Detect(ctx context.Context, options domain.DetectionOptions) (*domain.DetectionResult, error)
}

// CandidateReaderSvc defines read operations over recorded candidates
type CandidateReaderSvc interface {
	// ListCandidates lists candidates by descending score. With skipChecked only pending ones are returned.
	ListCandidates(ctx context.Context, limit int, skipChecked bool) ([]domain.CandidateSummary, error)

	// GetCandidate returns one candidate with both transactions.
	GetCandidate(ctx context.Context, checkID int64) (*domain.CandidateDetail, error)

	// Stats summarises decisions recorded in the ledger.
	Stats(ctx context.Context) (*domain.DuplicateStats, error)
}

// ResolutionSvc applies user decisions atomically.
type ResolutionSvc interface {
	// Confirm records a decision on a check; "duplicate" also marks the higher-ID transaction.
	Confirm(ctx context.Context, checkID int64, decision string) (*domain.ResolutionOutcome, error)

	// Restore clears the duplicate state of a transaction. The check history is kept.
	Restore(ctx context.Context, transactionID string) (*domain.RestoreOutcome, error)
}

// DuplicateSvcFacade combines all duplicate-related service interfaces
// This is a facade for clients that need access to all operations
type DuplicateSvcFacade interface {
	DetectionSvc
	CandidateReaderSvc
	ResolutionSvc
}
