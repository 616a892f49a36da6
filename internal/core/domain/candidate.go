package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionBrief is the display context shown next to a candidate.
type TransactionBrief struct {
	TransactionID string          `json:"transactionID"`
	Date          time.Time       `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Account       string          `json:"account"`
	IsDuplicate   bool            `json:"isDuplicate"`
}

// BriefOf extracts the display context of a transaction.
func BriefOf(t Transaction) TransactionBrief {
	return TransactionBrief{
		TransactionID: t.TransactionID,
		Date:          t.Date,
		Amount:        t.Amount,
		Description:   t.Description,
		Account:       t.Account,
		IsDuplicate:   t.IsDuplicate,
	}
}

// CandidateSummary is one line of a candidate listing.
type CandidateSummary struct {
	CheckID      int64            `json:"checkID"`
	Score        float64          `json:"score"`
	Decision     Decision         `json:"decision"`
	DetectedAt   time.Time        `json:"detectedAt"`
	DecidedAt    *time.Time       `json:"decidedAt,omitempty"`
	Transaction1 TransactionBrief `json:"transaction1"`
	Transaction2 TransactionBrief `json:"transaction2"`
}

// CandidateDetail is a single candidate with both transactions in full.
type CandidateDetail struct {
	Check        DuplicateCheck  `json:"check"`
	Transaction1 Transaction     `json:"transaction1"`
	Transaction2 Transaction     `json:"transaction2"`
	KeeperID     string          `json:"keeperID"`
	MarkedID     string          `json:"markedID"`
	DaysApart    int             `json:"daysApart"`
	AmountDiff   decimal.Decimal `json:"amountDiff"`
	// Decidable reports whether confirm would currently be accepted.
	Decidable bool `json:"decidable"`
}

// Reopened reports whether a duplicate decision has been undone by restoring
// its marked transaction, which makes the check decidable again.
func (c DuplicateCheck) Reopened(marked Transaction) bool {
	return c.Decision == DecisionDuplicate && !marked.IsDuplicateOf(c.Keeper())
}

// Decidable reports whether confirm may record a new decision on c.
func (c DuplicateCheck) Decidable(marked Transaction) bool {
	return !c.Decision.IsTerminal() || c.Reopened(marked)
}

// ImportResult reports the outcome of a transaction intake.
type ImportResult struct {
	Received int `json:"received"`
	Inserted int `json:"inserted"`
	Ignored  int `json:"ignored"` // Already present by source reference
}
