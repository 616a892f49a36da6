package dto

import (
	"fmt"
	"time"

	"github.com/SscSPs/ledger_dedup/internal/core/domain"
	"github.com/SscSPs/ledger_dedup/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

const (
	dateFormat      = "2006-01-02"
	timestampFormat = time.RFC3339

	// DefaultTransactionPageSize is used when a listing omits the limit.
	DefaultTransactionPageSize = 100
)

// TransactionRequest is one imported ledger row.
type TransactionRequest struct {
	TransactionID      string          `json:"transactionID" binding:"required" example:"mf-2024-000123"`
	Date               string          `json:"date" binding:"required,datetime=2006-01-02" example:"2024-01-15"`
	Amount             decimal.Decimal `json:"amount" swaggertype:"string" example:"-5000"`
	Description        string          `json:"description"`
	CategoryMajor      string          `json:"categoryMajor"`
	CategoryMinor      string          `json:"categoryMinor"`
	Account            string          `json:"account"`
	Memo               string          `json:"memo"`
	CountsTowardTotals *bool           `json:"countsTowardTotals,omitempty"` // Defaults to true
}

// ImportTransactionsRequest is a batch of imported rows.
type ImportTransactionsRequest struct {
	Transactions []TransactionRequest `json:"transactions" binding:"required,min=1,dive"`
}

// ToDomain converts the request rows to domain transactions.
func (r ImportTransactionsRequest) ToDomain() ([]domain.Transaction, error) {
	txns := make([]domain.Transaction, len(r.Transactions))
	for i, t := range r.Transactions {
		date, err := time.Parse(dateFormat, t.Date)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: invalid date %q", i, t.Date)
		}
		counts := true
		if t.CountsTowardTotals != nil {
			counts = *t.CountsTowardTotals
		}
		txns[i] = domain.Transaction{
			TransactionID:      t.TransactionID,
			Date:               date,
			Amount:             t.Amount,
			Description:        t.Description,
			CategoryMajor:      t.CategoryMajor,
			CategoryMinor:      t.CategoryMinor,
			Account:            t.Account,
			Memo:               t.Memo,
			CountsTowardTotals: counts,
		}
	}
	return txns, nil
}

// TransactionFilterQuery holds the QueryFilter parameters shared by listings and reports.
type TransactionFilterQuery struct {
	IncludeDuplicates bool   `form:"include_duplicates"`
	From              string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To                string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Account           string `form:"account"`
}

// ToFilter converts the query to a domain.TransactionFilter.
func (q TransactionFilterQuery) ToFilter() (domain.TransactionFilter, error) {
	filter := domain.TransactionFilter{
		IncludeDuplicates: q.IncludeDuplicates,
		Account:           q.Account,
	}
	if q.From != "" {
		from, err := time.Parse(dateFormat, q.From)
		if err != nil {
			return filter, fmt.Errorf("invalid from date %q", q.From)
		}
		filter.From = &from
	}
	if q.To != "" {
		to, err := time.Parse(dateFormat, q.To)
		if err != nil {
			return filter, fmt.Errorf("invalid to date %q", q.To)
		}
		filter.To = &to
	}
	return filter, nil
}

// ListTransactionsQuery holds the query parameters of a transaction listing.
type ListTransactionsQuery struct {
	TransactionFilterQuery
	Limit     int    `form:"limit" binding:"omitempty,min=0,max=1000"`
	NextToken string `form:"next_token"`
}

// ToFilter converts the query to a page-limited domain.TransactionFilter.
func (q ListTransactionsQuery) ToFilter() (domain.TransactionFilter, error) {
	filter, err := q.TransactionFilterQuery.ToFilter()
	if err != nil {
		return filter, err
	}
	filter.Limit = q.Limit
	if filter.Limit == 0 {
		filter.Limit = DefaultTransactionPageSize
	}
	if q.NextToken != "" {
		cursor, err := pagination.DecodeCursor(q.NextToken)
		if err != nil {
			return filter, err
		}
		filter.After = cursor
	}
	return filter, nil
}

// ListTransactionsResponse is one page of transactions.
type ListTransactionsResponse struct {
	Transactions []domain.Transaction `json:"transactions"`
	NextToken    *string              `json:"nextToken,omitempty"`
}

// ToListTransactionsResponse builds a page, emitting a token when more rows may follow.
func ToListTransactionsResponse(txns []domain.Transaction, limit int) ListTransactionsResponse {
	if txns == nil {
		txns = []domain.Transaction{}
	}
	return ListTransactionsResponse{
		Transactions: txns,
		NextToken:    pagination.NextCursor(txns, limit),
	}
}
