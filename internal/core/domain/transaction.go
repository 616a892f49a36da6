package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DuplicateFields holds the only mutable part of a Transaction.
// They are written exclusively by the resolution service.
type DuplicateFields struct {
	IsDuplicate bool       `json:"isDuplicate"`
	DuplicateOf *string    `json:"duplicateOf,omitempty"` // Keeper transaction ID; set iff IsDuplicate
	Checked     bool       `json:"checked"`
	CheckedAt   *time.Time `json:"checkedAt,omitempty"`
}

// Transaction is a single imported ledger row.
// Core fields are immutable after import.
type Transaction struct {
	TransactionID      string          `json:"transactionID"` // Source reference, unique
	Date               time.Time       `json:"date"`
	Amount             decimal.Decimal `json:"amount"` // Negative = expense
	Description        string          `json:"description"`
	CategoryMajor      string          `json:"categoryMajor"`
	CategoryMinor      string          `json:"categoryMinor"`
	Account            string          `json:"account"`
	Memo               string          `json:"memo"`
	CountsTowardTotals bool            `json:"countsTowardTotals"`
	DuplicateFields
	ImportedAt time.Time `json:"importedAt"`
}

// Validate checks the fields required at import time.
func (t Transaction) Validate() error {
	if strings.TrimSpace(t.TransactionID) == "" {
		return fmt.Errorf("transaction ID is required")
	}
	if t.Date.IsZero() {
		return fmt.Errorf("transaction %s: date is required", t.TransactionID)
	}
	return t.DuplicateFields.Validate(t.TransactionID)
}

// Validate enforces that DuplicateOf is set if and only if IsDuplicate is true
// and that it never points back at its owner.
func (f DuplicateFields) Validate(ownerID string) error {
	if f.IsDuplicate && f.DuplicateOf == nil {
		return fmt.Errorf("transaction %s: duplicate_of is required when is_duplicate is set", ownerID)
	}
	if !f.IsDuplicate && f.DuplicateOf != nil {
		return fmt.Errorf("transaction %s: duplicate_of must be empty when is_duplicate is not set", ownerID)
	}
	if f.DuplicateOf != nil && *f.DuplicateOf == ownerID {
		return fmt.Errorf("transaction %s: cannot be a duplicate of itself", ownerID)
	}
	return nil
}

// MarkedDuplicateOf returns the fields for a transaction confirmed as a duplicate of keeperID.
func MarkedDuplicateOf(keeperID string, now time.Time) DuplicateFields {
	keeper := keeperID
	checkedAt := now
	return DuplicateFields{
		IsDuplicate: true,
		DuplicateOf: &keeper,
		Checked:     true,
		CheckedAt:   &checkedAt,
	}
}

// ClearedDuplicateFields returns the fields of a restored transaction.
func ClearedDuplicateFields() DuplicateFields {
	return DuplicateFields{}
}

// IsDuplicateOf reports whether the transaction is currently marked as a duplicate of keeperID.
func (t Transaction) IsDuplicateOf(keeperID string) bool {
	return t.IsDuplicate && t.DuplicateOf != nil && *t.DuplicateOf == keeperID
}

// IsExpense reports whether the amount is an outflow.
func (t Transaction) IsExpense() bool {
	return t.Amount.IsNegative()
}

// CivilDate truncates a timestamp to its calendar date in UTC.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the absolute number of calendar days between two dates.
func DaysBetween(a, b time.Time) int {
	diff := CivilDate(a).Sub(CivilDate(b))
	days := int(diff.Hours() / 24)
	if days < 0 {
		return -days
	}
	return days
}
