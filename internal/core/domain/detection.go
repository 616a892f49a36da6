package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DetectionParams are the tolerances a candidate was found with.
// They are snapshotted on every check row for audit reproducibility.
type DetectionParams struct {
	DateToleranceDays  int             `json:"dateToleranceDays"`
	AmountToleranceAbs decimal.Decimal `json:"amountToleranceAbs"`
	AmountTolerancePct decimal.Decimal `json:"amountTolerancePct"` // Percent, e.g. 5 = 5%
	MinSimilarityScore float64         `json:"minSimilarityScore"`
}

// DetectionOptions are the inputs of a detection run.
type DetectionOptions struct {
	DetectionParams
	// TransactionIDs optionally restricts the run to a subset of transactions.
	TransactionIDs []string
}

// Validate rejects negative tolerances and out-of-range scores.
func (p DetectionParams) Validate() error {
	if p.DateToleranceDays < 0 {
		return fmt.Errorf("dateToleranceDays must be >= 0, got %d", p.DateToleranceDays)
	}
	if p.AmountToleranceAbs.IsNegative() {
		return fmt.Errorf("amountToleranceAbs must be >= 0, got %s", p.AmountToleranceAbs)
	}
	if p.AmountTolerancePct.IsNegative() {
		return fmt.Errorf("amountTolerancePct must be >= 0, got %s", p.AmountTolerancePct)
	}
	if p.MinSimilarityScore < 0 || p.MinSimilarityScore > 1 {
		return fmt.Errorf("minSimilarityScore must be within [0,1], got %v", p.MinSimilarityScore)
	}
	return nil
}

// DetectionResult reports the outcome of a detection run.
type DetectionResult struct {
	CandidatesFound     int              `json:"candidatesFound"`    // Qualifying pairs, new or already recorded
	NewCandidates       int              `json:"newCandidates"`      // Rows created by this run
	ExistingCandidates  int              `json:"existingCandidates"` // Pairs already in the ledger
	PairsCompared       int              `json:"pairsCompared"`
	TransactionsScanned int              `json:"transactionsScanned"`
	Candidates          []DuplicateCheck `json:"candidates"`
}
