package domain

import "time"

// ResolutionState is what the store hands the resolution service while the
// check and both transactions are locked inside one unit of work.
type ResolutionState struct {
	Check        DuplicateCheck
	Transactions map[string]Transaction // Both sides of the pair, keyed by ID
	// Dependents counts, per pair member, how many transactions name it as their keeper.
	Dependents map[string]int
}

// ResolutionChange is what the service asks the store to persist, atomically.
type ResolutionChange struct {
	Decision  Decision
	DecidedAt time.Time
	// TransactionUpdates maps transaction ID to its new duplicate fields. Empty for non-duplicate decisions.
	TransactionUpdates map[string]DuplicateFields
}

// ResolutionOutcome is returned to callers of confirm.
type ResolutionOutcome struct {
	Success               bool     `json:"success"`
	CheckID               int64    `json:"checkID"`
	Decision              Decision `json:"decision"`
	AffectedTransactionID *string  `json:"affectedTransactionID,omitempty"`
}

// RestoreOutcome is returned to callers of restore.
type RestoreOutcome struct {
	Success        bool    `json:"success"`
	TransactionID  string  `json:"transactionID"`
	Restored       bool    `json:"restored"` // False when the transaction was not marked
	PreviousKeeper *string `json:"previousKeeper,omitempty"`
}
