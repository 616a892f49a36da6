package dto

import (
	"fmt"
	"strings"

	"github.com/SscSPs/ledger_dedup/internal/core/domain"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// validate is shared by request types that are also built outside of gin binding (the CLI).
var validate = validator.New()

// DetectRequest defines the options of a detection run.
// Omitted tolerances fall back to the configured defaults.
type DetectRequest struct {
	DateToleranceDays  *int             `json:"dateToleranceDays,omitempty" validate:"omitempty,min=0" example:"1"`
	AmountToleranceAbs *decimal.Decimal `json:"amountToleranceAbs,omitempty" swaggertype:"string" example:"0"`
	AmountTolerancePct *decimal.Decimal `json:"amountTolerancePct,omitempty" swaggertype:"string" example:"5"`
	MinSimilarityScore *float64         `json:"minSimilarityScore,omitempty" validate:"omitempty,min=0,max=1" example:"0.5"`
	TransactionIDs     []string         `json:"transactionIDs,omitempty" validate:"omitempty,dive,min=1"`
}

// Validate checks the request fields that can be checked without the defaults.
func (r DetectRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid detect request: %w", err)
	}
	if r.AmountToleranceAbs != nil && r.AmountToleranceAbs.IsNegative() {
		return fmt.Errorf("amountToleranceAbs must be >= 0")
	}
	if r.AmountTolerancePct != nil && r.AmountTolerancePct.IsNegative() {
		return fmt.Errorf("amountTolerancePct must be >= 0")
	}
	return nil
}

// ToOptions overlays the request on defaults.
func (r DetectRequest) ToOptions(defaults domain.DetectionParams) domain.DetectionOptions {
	opts := domain.DetectionOptions{DetectionParams: defaults}
	if r.DateToleranceDays != nil {
		opts.DateToleranceDays = *r.DateToleranceDays
	}
	if r.AmountToleranceAbs != nil {
		opts.AmountToleranceAbs = *r.AmountToleranceAbs
	}
	if r.AmountTolerancePct != nil {
		opts.AmountTolerancePct = *r.AmountTolerancePct
	}
	if r.MinSimilarityScore != nil {
		opts.MinSimilarityScore = *r.MinSimilarityScore
	}
	for _, id := range r.TransactionIDs {
		if id = strings.TrimSpace(id); id != "" {
			opts.TransactionIDs = append(opts.TransactionIDs, id)
		}
	}
	return opts
}

// DetectResponse is the result of a detection run.
type DetectResponse struct {
	CandidatesFound     int                 `json:"candidatesFound"`
	NewCandidates       int                 `json:"newCandidates"`
	ExistingCandidates  int                 `json:"existingCandidates"`
	PairsCompared       int                 `json:"pairsCompared"`
	TransactionsScanned int                 `json:"transactionsScanned"`
	Candidates          []CandidateResponse `json:"candidates"`
}

// CandidateResponse is one recorded check.
type CandidateResponse struct {
	CheckID        int64                  `json:"checkID"`
	TransactionID1 string                 `json:"transactionID1"`
	TransactionID2 string                 `json:"transactionID2"`
	Score          float64                `json:"similarityScore"`
	Decision       string                 `json:"decision"`
	Params         domain.DetectionParams `json:"params"`
	DetectedAt     string                 `json:"detectedAt"`
	DecidedAt      *string                `json:"decidedAt,omitempty"`
}

// ToCandidateResponse converts a domain.DuplicateCheck to its DTO.
func ToCandidateResponse(c domain.DuplicateCheck) CandidateResponse {
	resp := CandidateResponse{
		CheckID:        c.CheckID,
		TransactionID1: c.First,
		TransactionID2: c.Second,
		Score:          c.Score,
		Decision:       string(c.Decision),
		Params:         c.Params,
		DetectedAt:     c.DetectedAt.Format(timestampFormat),
	}
	if c.DecidedAt != nil {
		decided := c.DecidedAt.Format(timestampFormat)
		resp.DecidedAt = &decided
	}
	return resp
}

// ToDetectResponse converts a domain.DetectionResult to its DTO.
func ToDetectResponse(r *domain.DetectionResult) DetectResponse {
	resp := DetectResponse{
		CandidatesFound:     r.CandidatesFound,
		NewCandidates:       r.NewCandidates,
		ExistingCandidates:  r.ExistingCandidates,
		PairsCompared:       r.PairsCompared,
		TransactionsScanned: r.TransactionsScanned,
		Candidates:          make([]CandidateResponse, len(r.Candidates)),
	}
	for i, c := range r.Candidates {
		resp.Candidates[i] = ToCandidateResponse(c)
	}
	return resp
}

// ListCandidatesQuery holds the query parameters of a candidate listing.
type ListCandidatesQuery struct {
	Limit       int   `form:"limit" binding:"omitempty,min=0"`
	SkipChecked *bool `form:"skip_checked"`
}

// SkipCheckedOrDefault returns SkipChecked, defaulting to hiding decided checks.
func (q ListCandidatesQuery) SkipCheckedOrDefault() bool {
	if q.SkipChecked == nil {
		return true
	}
	return *q.SkipChecked
}

// ConfirmRequest records a user decision on a check.
type ConfirmRequest struct {
	Decision string `json:"decision" binding:"required,oneof=duplicate not_duplicate skip" example:"duplicate"`
}
