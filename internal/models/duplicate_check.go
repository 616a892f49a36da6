package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DuplicateCheck is a row of the duplicate_checks table.
type DuplicateCheck struct {
	CheckID         int64      `db:"check_id"`         // BIGSERIAL
	TransactionID1  string     `db:"transaction_id_1"` // Lower ID of the pair
	TransactionID2  string     `db:"transaction_id_2"`
	Params          []byte     `db:"params"` // JSONB, see DetectionParams
	SimilarityScore float64    `db:"similarity_score"`
	DetectedAt      time.Time  `db:"detected_at"`
	Decision        string     `db:"decision"`
	DecidedAt       *time.Time `db:"decided_at"`
}

// DetectionParams is the stored shape of the params JSONB column.
type DetectionParams struct {
	DateToleranceDays  int             `json:"date_tolerance_days"`
	AmountToleranceAbs decimal.Decimal `json:"amount_tolerance_abs"`
	AmountTolerancePct decimal.Decimal `json:"amount_tolerance_pct"`
	MinSimilarityScore float64         `json:"min_similarity_score"`
}
