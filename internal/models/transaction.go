package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a row of the transactions table.
type Transaction struct {
	TransactionID      string          `db:"transaction_id"`   // Primary Key, the source reference
	TransactionDate    time.Time       `db:"transaction_date"` // DATE column
	Amount             decimal.Decimal `db:"amount"`           // Negative for expenses
	Description        string          `db:"description"`
	CategoryMajor      string          `db:"category_major"`
	CategoryMinor      string          `db:"category_minor"`
	Account            string          `db:"account"`
	Memo               string          `db:"memo"`
	CountsTowardTotals bool            `db:"counts_toward_totals"`
	IsDuplicate        bool            `db:"is_duplicate"`
	DuplicateOf        *string         `db:"duplicate_of"` // FK -> transactions.transaction_id, set iff IsDuplicate
	Checked            bool            `db:"checked"`
	CheckedAt          *time.Time      `db:"checked_at"`
	ImportedAt         time.Time       `db:"imported_at"`
}
