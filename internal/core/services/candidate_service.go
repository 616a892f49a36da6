package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/ledger_dedup/internal/apperrors"
	"github.com/SscSPs/ledger_dedup/internal/core/domain"
)

// ListCandidates implements portssvc.CandidateReaderSvc.
func (s *duplicateService) ListCandidates(ctx context.Context, limit int, skipChecked bool) ([]domain.CandidateSummary, error) {
	if limit < 0 {
		verr := apperrors.NewValidationError(fmt.Sprintf("limit must be >= 0, got %d", limit))
		s.LogWarn(ctx, verr, "Rejected candidate listing")
		return nil, verr
	}
	if limit == 0 {
		limit = s.listLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	filter := domain.CheckListAll
	if skipChecked {
		filter = domain.CheckListOpen
	}

	checks, err := s.checkRepo.ListChecks(ctx, filter, limit)
	if err != nil {
		err = asPersistence(err, "failed to list duplicate checks")
		s.LogError(ctx, err, "Failed to list candidates", slog.String("filter", string(filter)))
		return nil, err
	}

	ids := make([]string, 0, len(checks)*2)
	for _, c := range checks {
		ids = append(ids, c.First, c.Second)
	}
	txns, err := s.transactionRepo.FindTransactionsByIDs(ctx, ids)
	if err != nil {
		err = asPersistence(err, "failed to load candidate transactions")
		s.LogError(ctx, err, "Failed to load transactions for candidates")
		return nil, err
	}

	summaries := make([]domain.CandidateSummary, 0, len(checks))
	for _, c := range checks {
		summaries = append(summaries, domain.CandidateSummary{
			CheckID:      c.CheckID,
			Score:        c.Score,
			Decision:     c.Decision,
			DetectedAt:   c.DetectedAt,
			DecidedAt:    c.DecidedAt,
			Transaction1: briefOrID(txns, c.First),
			Transaction2: briefOrID(txns, c.Second),
		})
	}

	s.LogDebug(ctx, "Listed duplicate candidates",
		slog.Int("count", len(summaries)), slog.Int("limit", limit), slog.Bool("skip_checked", skipChecked))
	return summaries, nil
}

// GetCandidate implements portssvc.CandidateReaderSvc.
func (s *duplicateService) GetCandidate(ctx context.Context, checkID int64) (*domain.CandidateDetail, error) {
	check, err := s.checkRepo.FindCheckByID(ctx, checkID)
	if err != nil {
		err = asPersistence(err, "failed to load duplicate check")
		s.LogFailure(ctx, err, "Failed to get candidate", slog.Int64("check_id", checkID))
		return nil, err
	}

	txns, err := s.transactionRepo.FindTransactionsByIDs(ctx, []string{check.First, check.Second})
	if err != nil {
		err = asPersistence(err, "failed to load candidate transactions")
		s.LogError(ctx, err, "Failed to load transactions for candidate", slog.Int64("check_id", checkID))
		return nil, err
	}

	keeper, ok := txns[check.Keeper()]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("transaction %s referenced by check %d not found", check.Keeper(), checkID))
	}
	marked, ok := txns[check.Marked()]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("transaction %s referenced by check %d not found", check.Marked(), checkID))
	}

	return &domain.CandidateDetail{
		Check:        *check,
		Transaction1: keeper,
		Transaction2: marked,
		KeeperID:     keeper.TransactionID,
		MarkedID:     marked.TransactionID,
		DaysApart:    domain.DaysBetween(keeper.Date, marked.Date),
		AmountDiff:   keeper.Amount.Sub(marked.Amount).Abs(),
		Decidable:    check.Decidable(marked),
	}, nil
}

// Stats implements portssvc.CandidateReaderSvc.
func (s *duplicateService) Stats(ctx context.Context) (*domain.DuplicateStats, error) {
	stats, err := s.checkRepo.GetStats(ctx)
	if err != nil {
		err = asPersistence(err, "failed to compute duplicate statistics")
		s.LogError(ctx, err, "Failed to get duplicate stats")
		return nil, err
	}
	stats.ComputeRate()
	return &stats, nil
}

func briefOrID(txns map[string]domain.Transaction, id string) domain.TransactionBrief {
	if t, ok := txns[id]; ok {
		return domain.BriefOf(t)
	}
	return domain.TransactionBrief{TransactionID: id}
}
