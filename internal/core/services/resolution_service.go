package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/ledger_dedup/internal/apperrors"
	"github.com/SscSPs/ledger_dedup/internal/core/domain"
)

// Confirm implements portssvc.ResolutionSvc.
func (s *duplicateService) Confirm(ctx context.Context, checkID int64, decision string) (*domain.ResolutionOutcome, error) {
	d, err := domain.ParseUserDecision(decision)
	if err != nil {
		verr := apperrors.NewValidationError(err.Error())
		s.LogWarn(ctx, verr, "Rejected decision", slog.Int64("check_id", checkID), slog.String("decision", decision))
		return nil, verr
	}

	now := s.now()
	var affected *string
	_, err = s.resolutionRepo.ResolveCheck(ctx, checkID, func(state domain.ResolutionState) (domain.ResolutionChange, error) {
		change, marked, err := planResolution(state, d, now)
		affected = marked
		return change, err
	})
	if err != nil {
		err = asResolution(err, fmt.Sprintf("failed to apply decision %s to check %d; no changes were made", d, checkID))
		s.LogFailure(ctx, err, "Failed to confirm candidate", slog.Int64("check_id", checkID), slog.String("decision", string(d)))
		return nil, err
	}

	logAttrs := []any{slog.Int64("check_id", checkID), slog.String("decision", string(d))}
	if affected != nil {
		logAttrs = append(logAttrs, slog.String("marked_transaction_id", *affected))
	}
	s.LogInfo(ctx, "Candidate decision recorded", logAttrs...)

	return &domain.ResolutionOutcome{
		Success:               true,
		CheckID:               checkID,
		Decision:              d,
		AffectedTransactionID: affected,
	}, nil
}

// planResolution decides, on locked state, what a decision changes.
// It returns the ID of the transaction marked as duplicate, if any.
func planResolution(state domain.ResolutionState, d domain.Decision, now time.Time) (domain.ResolutionChange, *string, error) {
	check := state.Check
	keeper, ok := state.Transactions[check.Keeper()]
	if !ok {
		return domain.ResolutionChange{}, nil, apperrors.NewNotFoundError(fmt.Sprintf("transaction %s not found", check.Keeper()))
	}
	marked, ok := state.Transactions[check.Marked()]
	if !ok {
		return domain.ResolutionChange{}, nil, apperrors.NewNotFoundError(fmt.Sprintf("transaction %s not found", check.Marked()))
	}

	if !check.Decidable(marked) {
		return domain.ResolutionChange{}, nil, apperrors.NewAlreadyMarkedError(
			fmt.Sprintf("check %d is already decided as %s", check.CheckID, check.Decision))
	}

	change := domain.ResolutionChange{Decision: d, DecidedAt: now}
	if d != domain.DecisionDuplicate {
		return change, nil, nil
	}

	switch {
	case keeper.IsDuplicate:
		return domain.ResolutionChange{}, nil, apperrors.NewResolutionError(
			fmt.Sprintf("keeper %s is itself marked as a duplicate of %s", keeper.TransactionID, deref(keeper.DuplicateOf)), nil)
	case marked.IsDuplicate:
		return domain.ResolutionChange{}, nil, apperrors.NewResolutionError(
			fmt.Sprintf("transaction %s is already a duplicate of %s", marked.TransactionID, deref(marked.DuplicateOf)), nil)
	case state.Dependents[marked.TransactionID] > 0:
		return domain.ResolutionChange{}, nil, apperrors.NewResolutionError(
			fmt.Sprintf("transaction %s is the keeper of %d other transactions", marked.TransactionID, state.Dependents[marked.TransactionID]), nil)
	}

	fields := domain.MarkedDuplicateOf(keeper.TransactionID, now)
	if err := fields.Validate(marked.TransactionID); err != nil {
		return domain.ResolutionChange{}, nil, apperrors.NewResolutionError("invalid duplicate marking", err)
	}
	change.TransactionUpdates = map[string]domain.DuplicateFields{marked.TransactionID: fields}

	id := marked.TransactionID
	return change, &id, nil
}

// Restore implements portssvc.ResolutionSvc.
func (s *duplicateService) Restore(ctx context.Context, transactionID string) (*domain.RestoreOutcome, error) {
	if strings.TrimSpace(transactionID) == "" {
		verr := apperrors.NewValidationError("transaction ID is required")
		s.LogWarn(ctx, verr, "Rejected restore")
		return nil, verr
	}

	before, err := s.resolutionRepo.RestoreTransaction(ctx, transactionID, func(t domain.Transaction) (*domain.DuplicateFields, error) {
		if !t.IsDuplicate && !t.Checked {
			return nil, nil
		}
		cleared := domain.ClearedDuplicateFields()
		return &cleared, nil
	})
	if err != nil {
		err = asResolution(err, fmt.Sprintf("failed to restore transaction %s; no changes were made", transactionID))
		s.LogFailure(ctx, err, "Failed to restore transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}

	outcome := &domain.RestoreOutcome{
		Success:       true,
		TransactionID: transactionID,
		Restored:      before.IsDuplicate,
	}
	if before.IsDuplicate {
		outcome.PreviousKeeper = before.DuplicateOf
		s.LogInfo(ctx, "Transaction restored",
			slog.String("transaction_id", transactionID), slog.String("previous_keeper", deref(before.DuplicateOf)))
	} else {
		s.LogDebug(ctx, "Restore requested for a transaction that is not marked", slog.String("transaction_id", transactionID))
	}
	return outcome, nil
}

// asResolution wraps errors from inside a unit of work that do not already carry a kind.
func asResolution(err error, msg string) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.NewResolutionError(msg, err)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
