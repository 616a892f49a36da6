package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/ledger_dedup/internal/core/domain"
	"github.com/SscSPs/ledger_dedup/internal/models"
)

// ToModelDuplicateCheck converts a domain DuplicateCheck to a model DuplicateCheck
func ToModelDuplicateCheck(d domain.DuplicateCheck) (models.DuplicateCheck, error) {
	params, err := json.Marshal(models.DetectionParams{
		DateToleranceDays:  d.Params.DateToleranceDays,
		AmountToleranceAbs: d.Params.AmountToleranceAbs,
		AmountTolerancePct: d.Params.AmountTolerancePct,
		MinSimilarityScore: d.Params.MinSimilarityScore,
	})
	if err != nil {
		return models.DuplicateCheck{}, fmt.Errorf("failed to encode detection params: %w", err)
	}
	return models.DuplicateCheck{
		CheckID:         d.CheckID,
		TransactionID1:  d.First,
		TransactionID2:  d.Second,
		Params:          params,
		SimilarityScore: d.Score,
		DetectedAt:      d.DetectedAt,
		Decision:        string(d.Decision),
		DecidedAt:       d.DecidedAt,
	}, nil
}

// ToDomainDuplicateCheck converts a model DuplicateCheck to a domain DuplicateCheck
func ToDomainDuplicateCheck(m models.DuplicateCheck) (domain.DuplicateCheck, error) {
	var stored models.DetectionParams
	if len(m.Params) > 0 {
		if err := json.Unmarshal(m.Params, &stored); err != nil {
			return domain.DuplicateCheck{}, fmt.Errorf("failed to decode params of check %d: %w", m.CheckID, err)
		}
	}
	params := domain.DetectionParams{
		DateToleranceDays:  stored.DateToleranceDays,
		AmountToleranceAbs: stored.AmountToleranceAbs,
		AmountTolerancePct: stored.AmountTolerancePct,
		MinSimilarityScore: stored.MinSimilarityScore,
	}
	decision, err := domain.ParseDecision(m.Decision)
	if err != nil {
		return domain.DuplicateCheck{}, fmt.Errorf("check %d: %w", m.CheckID, err)
	}
	return domain.DuplicateCheck{
		CheckID:       m.CheckID,
		CanonicalPair: domain.CanonicalPair{First: m.TransactionID1, Second: m.TransactionID2},
		Params:        params,
		Score:         m.SimilarityScore,
		DetectedAt:    m.DetectedAt,
		Decision:      decision,
		DecidedAt:     m.DecidedAt,
	}, nil
}
