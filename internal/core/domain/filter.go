package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionFilter is the read-side contract shared by every listing,
// aggregation and export path. Duplicates are excluded unless
// IncludeDuplicates is set, which is reserved for audit views.
type TransactionFilter struct {
	IncludeDuplicates bool
	From              *time.Time // Inclusive
	To                *time.Time // Inclusive
	Account           string
	TransactionIDs    []string
	After             *TransactionCursor // Keyset position; only rows strictly after it match
	Limit             int
}

// TransactionCursor is a position in the (date, ID) ordering of transactions.
type TransactionCursor struct {
	Date          time.Time
	TransactionID string
}

// Matches reports whether t is visible under the filter.
func (f TransactionFilter) Matches(t Transaction) bool {
	if !f.IncludeDuplicates && t.IsDuplicate {
		return false
	}
	day := CivilDate(t.Date)
	if f.From != nil && day.Before(CivilDate(*f.From)) {
		return false
	}
	if f.To != nil && day.After(CivilDate(*f.To)) {
		return false
	}
	if f.Account != "" && t.Account != f.Account {
		return false
	}
	if f.After != nil {
		after := CivilDate(f.After.Date)
		if day.Before(after) || (day.Equal(after) && t.TransactionID <= f.After.TransactionID) {
			return false
		}
	}
	if len(f.TransactionIDs) > 0 {
		found := false
		for _, id := range f.TransactionIDs {
			if id == t.TransactionID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// CategoryTotal is the aggregate of one major category.
type CategoryTotal struct {
	CategoryMajor string          `json:"categoryMajor"`
	Income        decimal.Decimal `json:"income"`
	Expense       decimal.Decimal `json:"expense"` // Negative sum
	Net           decimal.Decimal `json:"net"`
	Count         int             `json:"count"`
}

// CategoryReport is the totals report.
type CategoryReport struct {
	Categories        []CategoryTotal `json:"categories"`
	TotalIncome       decimal.Decimal `json:"totalIncome"`
	TotalExpense      decimal.Decimal `json:"totalExpense"`
	Net               decimal.Decimal `json:"net"`
	IncludeDuplicates bool            `json:"includeDuplicates"`
}
