package mapping

import (
	"github.com/SscSPs/ledger_dedup/internal/core/domain"
	"github.com/SscSPs/ledger_dedup/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:      d.TransactionID,
		TransactionDate:    domain.CivilDate(d.Date),
		Amount:             d.Amount,
		Description:        d.Description,
		CategoryMajor:      d.CategoryMajor,
		CategoryMinor:      d.CategoryMinor,
		Account:            d.Account,
		Memo:               d.Memo,
		CountsTowardTotals: d.CountsTowardTotals,
		IsDuplicate:        d.IsDuplicate,
		DuplicateOf:        d.DuplicateOf,
		Checked:            d.Checked,
		CheckedAt:          d.CheckedAt,
		ImportedAt:         d.ImportedAt,
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:      m.TransactionID,
		Date:               domain.CivilDate(m.TransactionDate),
		Amount:             m.Amount,
		Description:        m.Description,
		CategoryMajor:      m.CategoryMajor,
		CategoryMinor:      m.CategoryMinor,
		Account:            m.Account,
		Memo:               m.Memo,
		CountsTowardTotals: m.CountsTowardTotals,
		DuplicateFields: domain.DuplicateFields{
			IsDuplicate: m.IsDuplicate,
			DuplicateOf: m.DuplicateOf,
			Checked:     m.Checked,
			CheckedAt:   m.CheckedAt,
		},
		ImportedAt: m.ImportedAt,
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to a slice of domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
