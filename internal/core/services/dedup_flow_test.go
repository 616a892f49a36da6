package services_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/ledger_dedup/internal/apperrors"
	"github.com/SscSPs/ledger_dedup/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_dedup/internal/core/ports/services"
	"github.com/SscSPs/ledger_dedup/internal/core/services"
	"github.com/SscSPs/ledger_dedup/internal/repositories/database/inmemory"
)

type flow struct {
	dup       portssvc.DuplicateSvcFacade
	txns      portssvc.TransactionSvcFacade
	reporting portssvc.ReportingService
	store     *inmemory.Store
}

func newFlow(t *testing.T, seed ...domain.Transaction) *flow {
	t.Helper()
	store := inmemory.NewStore()
	clock := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	f := &flow{
		dup: services.NewDuplicateService(store, store, store,
			services.WithClock(func() time.Time { return clock }),
			services.WithDetectionWorkers(3)),
		txns:      services.NewTransactionService(store),
		reporting: services.NewReportingService(store),
		store:     store,
	}
	if len(seed) > 0 {
		res, err := f.txns.ImportTransactions(context.Background(), seed)
		require.NoError(t, err)
		require.Equal(t, len(seed), res.Inserted)
	}
	return f
}

func abc() []domain.Transaction {
	return []domain.Transaction{
		txn("A", "2024-01-15", -5000),
		txn("B", "2024-01-15", -5000),
		txn("C", "2024-01-16", -5000),
	}
}

func params(tol int) domain.DetectionOptions {
	return domain.DetectionOptions{DetectionParams: domain.DetectionParams{DateToleranceDays: tol, MinSimilarityScore: 0.5}}
}

func (f *flow) snapshot(t *testing.T) map[string]domain.Transaction {
	t.Helper()
	all, err := f.txns.ListTransactions(context.Background(), domain.TransactionFilter{IncludeDuplicates: true})
	require.NoError(t, err)
	out := make(map[string]domain.Transaction, len(all))
	for _, tx := range all {
		out[tx.TransactionID] = tx
	}
	return out
}

func (f *flow) foodExpense(t *testing.T) decimal.Decimal {
	t.Helper()
	report, err := f.reporting.CategoryTotals(context.Background(), domain.TransactionFilter{})
	require.NoError(t, err)
	return report.TotalExpense
}

func TestFlow_ExactMatchAtZeroTolerance(t *testing.T) {
	f := newFlow(t, abc()...)
	ctx := context.Background()

	result, err := f.dup.Detect(ctx, params(0))
	require.NoError(t, err)
	assert.Equal(t, 1, result.CandidatesFound)
	require.Len(t, result.Candidates, 1)
	assert.Equal(t, "A", result.Candidates[0].First)
	assert.Equal(t, "B", result.Candidates[0].Second)
	assert.Equal(t, 1.0, result.Candidates[0].Score)
}

func TestFlow_DetectIsIdempotent(t *testing.T) {
	f := newFlow(t, abc()...)
	ctx := context.Background()

	first, err := f.dup.Detect(ctx, params(1))
	require.NoError(t, err)
	second, err := f.dup.Detect(ctx, params(1))
	require.NoError(t, err)

	assert.Equal(t, first.CandidatesFound, second.CandidatesFound)
	assert.Equal(t, 0, second.NewCandidates)
	assert.Equal(t, first.CandidatesFound, second.ExistingCandidates)

	stats, err := f.dup.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.CandidatesFound, stats.Total)
}

func TestFlow_OneDayToleranceFindsNextDayPair(t *testing.T) {
	f := newFlow(t, abc()...)
	ctx := context.Background()

	result, err := f.dup.Detect(ctx, params(1))
	require.NoError(t, err)

	scores := map[string]float64{}
	for _, c := range result.Candidates {
		scores[c.String()] = c.Score
	}
	assert.Equal(t, 1.0, scores["A/B"])
	assert.InDelta(t, 0.6, scores["A/C"], 1e-9)
	assert.InDelta(t, 0.6, scores["B/C"], 1e-9)
	assert.Equal(t, "A/B", result.Candidates[0].String())
}

func TestFlow_BucketingFindsEveryPairWithinTolerance(t *testing.T) {
	var seed []domain.Transaction
	start := day("2023-12-20")
	for i := 0; i < 30; i++ {
		seed = append(seed, domain.Transaction{
			TransactionID:      fmt.Sprintf("tx-%02d", i),
			Date:               start.AddDate(0, 0, i),
			Amount:             decimal.NewFromInt(-100),
			CountsTowardTotals: true,
		})
	}

	for _, tol := range []int{0, 2, 7, 10} {
		t.Run(fmt.Sprintf("tolerance_%d", tol), func(t *testing.T) {
			f := newFlow(t, seed...)
			result, err := f.dup.Detect(context.Background(), domain.DetectionOptions{
				DetectionParams: domain.DetectionParams{DateToleranceDays: tol},
			})
			require.NoError(t, err)

			want := 0
			for k := 1; k <= tol; k++ {
				want += 30 - k
			}
			assert.Equal(t, want, result.CandidatesFound)
		})
	}
}

func TestFlow_SubsetRestrictsPairs(t *testing.T) {
	f := newFlow(t, abc()...)
	opts := params(1)
	opts.TransactionIDs = []string{"C"}

	result, err := f.dup.Detect(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, result.Candidates, 2)
	for _, c := range result.Candidates {
		assert.Equal(t, "C", c.Second)
	}
}

func TestFlow_ConfirmExcludesFromTotalsAndRestoreBringsBack(t *testing.T) {
	f := newFlow(t, abc()...)
	ctx := context.Background()

	result, err := f.dup.Detect(ctx, params(0))
	require.NoError(t, err)
	checkID := result.Candidates[0].CheckID
	assert.True(t, f.foodExpense(t).Equal(decimal.NewFromInt(-15000)))

	before := f.snapshot(t)
	outcome, err := f.dup.Confirm(ctx, checkID, "duplicate")
	require.NoError(t, err)
	require.NotNil(t, outcome.AffectedTransactionID)
	assert.Equal(t, "B", *outcome.AffectedTransactionID)

	assert.True(t, f.foodExpense(t).Equal(decimal.NewFromInt(-10000)))
	visible, err := f.txns.ListTransactions(ctx, domain.TransactionFilter{})
	require.NoError(t, err)
	assert.Len(t, visible, 2)

	_, err = f.dup.Confirm(ctx, checkID, "duplicate")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyMarked)

	restored, err := f.dup.Restore(ctx, "B")
	require.NoError(t, err)
	assert.True(t, restored.Restored)
	assert.Equal(t, "A", *restored.PreviousKeeper)
	assert.True(t, f.foodExpense(t).Equal(decimal.NewFromInt(-15000)))

	// Nothing else moved: every transaction is back to its pre-confirm state.
	after := f.snapshot(t)
	assert.Equal(t, before, after)

	// The check keeps its history but is decidable again.
	detail, err := f.dup.GetCandidate(ctx, checkID)
	require.NoError(t, err)
	assert.Equal(t, domain.DecisionDuplicate, detail.Check.Decision)
	assert.True(t, detail.Decidable)

	_, err = f.dup.Confirm(ctx, checkID, "not_duplicate")
	require.NoError(t, err)
	_, err = f.dup.Confirm(ctx, checkID, "duplicate")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyMarked)
}

func TestFlow_SkipIsRevisitable(t *testing.T) {
	f := newFlow(t, abc()...)
	ctx := context.Background()
	result, err := f.dup.Detect(ctx, params(0))
	require.NoError(t, err)
	checkID := result.Candidates[0].CheckID

	_, err = f.dup.Confirm(ctx, checkID, "skip")
	require.NoError(t, err)

	open, err := f.dup.ListCandidates(ctx, 0, true)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, checkID, open[0].CheckID)
	assert.Equal(t, domain.DecisionSkip, open[0].Decision)

	_, err = f.dup.Confirm(ctx, checkID, "duplicate")
	require.NoError(t, err)

	open, err = f.dup.ListCandidates(ctx, 0, true)
	require.NoError(t, err)
	assert.Empty(t, open)

	stats, err := f.dup.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.MarkedDuplicate)
	assert.Equal(t, 0, stats.Skipped)
	assert.InDelta(t, 1.0, stats.Rate, 1e-9)
}

func TestFlow_UnknownIDs(t *testing.T) {
	f := newFlow(t, abc()...)
	ctx := context.Background()

	_, err := f.dup.Confirm(ctx, 12345, "duplicate")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = f.dup.GetCandidate(ctx, 12345)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = f.dup.Restore(ctx, "nope")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = f.dup.Confirm(ctx, 1, "maybe")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestFlow_KeeperChainsAreRejectedAndRolledBack(t *testing.T) {
	f := newFlow(t, abc()[:2]...)
	ctx := context.Background()
	_, err := f.txns.ImportTransactions(ctx, []domain.Transaction{txn("C", "2024-01-15", -5000)})
	require.NoError(t, err)

	result, err := f.dup.Detect(ctx, params(0))
	require.NoError(t, err)
	require.Equal(t, 3, result.CandidatesFound)
	ids := map[string]int64{}
	for _, c := range result.Candidates {
		ids[c.String()] = c.CheckID
	}

	// C becomes a duplicate of B.
	_, err = f.dup.Confirm(ctx, ids["B/C"], "duplicate")
	require.NoError(t, err)
	before := f.snapshot(t)

	// B now has a dependent and cannot itself be marked.
	_, err = f.dup.Confirm(ctx, ids["A/B"], "duplicate")
	assert.ErrorIs(t, err, apperrors.ErrResolution)
	// C is already a duplicate of B.
	_, err = f.dup.Confirm(ctx, ids["A/C"], "duplicate")
	assert.ErrorIs(t, err, apperrors.ErrResolution)

	assert.Equal(t, before, f.snapshot(t))
	detail, err := f.dup.GetCandidate(ctx, ids["A/B"])
	require.NoError(t, err)
	assert.Equal(t, domain.DecisionPending, detail.Check.Decision)
}

func TestFlow_ConcurrentConfirmsDecideOnce(t *testing.T) {
	f := newFlow(t, abc()...)
	ctx := context.Background()
	result, err := f.dup.Detect(ctx, params(0))
	require.NoError(t, err)
	checkID := result.Candidates[0].CheckID

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = f.dup.Confirm(ctx, checkID, "duplicate")
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, apperrors.ErrAlreadyMarked)
	}
	assert.Equal(t, 1, succeeded)
}

func TestFlow_ImportIsIdempotent(t *testing.T) {
	f := newFlow(t, abc()...)

	res, err := f.txns.ImportTransactions(context.Background(), abc())
	require.NoError(t, err)
	assert.Equal(t, 3, res.Received)
	assert.Equal(t, 0, res.Inserted)
	assert.Equal(t, 3, res.Ignored)
}
