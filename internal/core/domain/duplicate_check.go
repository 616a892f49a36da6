package domain

import (
	"fmt"
	"time"
)

// CanonicalPair is an unordered pair of transaction IDs stored with the lower ID first.
type CanonicalPair struct {
	First  string `json:"transactionID1"`
	Second string `json:"transactionID2"`
}

// NewCanonicalPair orders a and b. A transaction cannot be paired with itself.
func NewCanonicalPair(a, b string) (CanonicalPair, error) {
	if a == b {
		return CanonicalPair{}, fmt.Errorf("cannot pair transaction %s with itself", a)
	}
	if a > b {
		a, b = b, a
	}
	return CanonicalPair{First: a, Second: b}, nil
}

// Less orders pairs by First then Second.
func (p CanonicalPair) Less(o CanonicalPair) bool {
	if p.First != o.First {
		return p.First < o.First
	}
	return p.Second < o.Second
}

// Keeper is the transaction retained when the pair is confirmed as duplicate.
func (p CanonicalPair) Keeper() string { return p.First }

// Marked is the transaction flagged as duplicate when the pair is confirmed.
func (p CanonicalPair) Marked() string { return p.Second }

func (p CanonicalPair) String() string { return p.First + "/" + p.Second }

// DuplicateCheck is one row of the check ledger.
type DuplicateCheck struct {
	CheckID int64 `json:"checkID"`
	CanonicalPair
	Params     DetectionParams `json:"params"`
	Score      float64         `json:"score"`
	DetectedAt time.Time       `json:"detectedAt"`
	Decision   Decision        `json:"decision"`
	DecidedAt  *time.Time      `json:"decidedAt,omitempty"`
}

// NewCandidate is a scored pair not yet persisted.
type NewCandidate struct {
	Pair   CanonicalPair
	Params DetectionParams
	Score  float64
}

// CandidateLess orders by descending score, then ascending canonical pair.
func CandidateLess(aScore float64, aPair CanonicalPair, bScore float64, bPair CanonicalPair) bool {
	if aScore != bScore {
		return aScore > bScore
	}
	return aPair.Less(bPair)
}

// CheckListFilter selects which checks are listed.
// CheckListOpen keeps checks still awaiting a final decision: pending and skip.
type CheckListFilter string

const (
	CheckListOpen CheckListFilter = "open"
	CheckListAll  CheckListFilter = "all"
)

// DuplicateStats summarises the check ledger.
type DuplicateStats struct {
	Total           int     `json:"total"`
	MarkedDuplicate int     `json:"markedDuplicate"`
	Pending         int     `json:"pending"`
	NotDuplicate    int     `json:"notDuplicate"`
	Skipped         int     `json:"skipped"`
	Rate            float64 `json:"rate"` // MarkedDuplicate / Total
}

// ComputeRate fills Rate from the counts.
func (s *DuplicateStats) ComputeRate() {
	if s.Total == 0 {
		s.Rate = 0
		return
	}
	s.Rate = float64(s.MarkedDuplicate) / float64(s.Total)
}
