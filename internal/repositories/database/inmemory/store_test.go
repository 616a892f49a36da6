package inmemory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/ledger_dedup/internal/apperrors"
	"github.com/SscSPs/ledger_dedup/internal/core/domain"
)

func txn(id, date string, amount int64, category string) domain.Transaction {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return domain.Transaction{
		TransactionID:      id,
		Date:               d,
		Amount:             decimal.NewFromInt(amount),
		CategoryMajor:      category,
		CountsTowardTotals: true,
	}
}

func seeded(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	n, err := s.SaveTransactions(context.Background(), []domain.Transaction{
		txn("A", "2024-01-15", -5000, "Food"),
		txn("B", "2024-01-15", -5000, "Food"),
		txn("C", "2024-01-16", -5000, "Food"),
		txn("D", "2024-01-20", 20000, "Salary"),
	})
	require.NoError(t, err)
	require.Equal(t, 4, n)
	return s
}

func candidate(a, b string, score float64) domain.NewCandidate {
	pair, err := domain.NewCanonicalPair(a, b)
	if err != nil {
		panic(err)
	}
	return domain.NewCandidate{Pair: pair, Score: score}
}

func TestSaveTransactions_IgnoresExistingIDs(t *testing.T) {
	s := seeded(t)

	n, err := s.SaveTransactions(context.Background(), []domain.Transaction{
		txn("A", "2024-01-15", -1, "Other"),
		txn("E", "2024-01-21", -1, "Other"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	a, err := s.FindTransactionByID(context.Background(), "A")
	require.NoError(t, err)
	assert.Equal(t, "Food", a.CategoryMajor)
}

func TestCreateBatchIfAbsent_OneRowPerPair(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()
	now := time.Now()

	first, err := s.CreateBatchIfAbsent(ctx, []domain.NewCandidate{candidate("A", "B", 1), candidate("A", "C", 0.6)}, now)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.True(t, first[0].Created)
	assert.True(t, first[1].Created)

	again, err := s.CreateIfAbsent(ctx, candidate("B", "A", 0.9), now.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, again.Created)
	assert.Equal(t, first[0].Check.CheckID, again.Check.CheckID)
	assert.Equal(t, 1.0, again.Check.Score)

	stats, err := s.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 2, stats.Pending)
}

func TestCreateBatchIfAbsent_ConcurrentCallersShareOneRow(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	ids := make([]int64, 8)
	for i := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := s.CreateIfAbsent(ctx, candidate("A", "B", 1), time.Now())
			assert.NoError(t, err)
			ids[i] = r.Check.CheckID
		}()
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
	checks, err := s.ListChecks(ctx, domain.CheckListAll, 0)
	require.NoError(t, err)
	assert.Len(t, checks, 1)
}

func TestCreateBatchIfAbsent_UnknownTransactionRejectsWholeBatch(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	_, err := s.CreateBatchIfAbsent(ctx, []domain.NewCandidate{candidate("A", "B", 1), candidate("A", "Z", 1)}, time.Now())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	checks, err := s.ListChecks(ctx, domain.CheckListAll, 0)
	require.NoError(t, err)
	assert.Empty(t, checks)
}

func TestListChecks_OrderAndPendingFilter(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	created, err := s.CreateBatchIfAbsent(ctx, []domain.NewCandidate{
		candidate("A", "C", 0.6),
		candidate("B", "C", 0.6),
		candidate("A", "B", 1),
	}, time.Now())
	require.NoError(t, err)

	all, err := s.ListChecks(ctx, domain.CheckListAll, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "A/B", all[0].String())
	assert.Equal(t, "A/C", all[1].String())
	assert.Equal(t, "B/C", all[2].String())

	_, err = s.ResolveCheck(ctx, created[2].Check.CheckID, func(domain.ResolutionState) (domain.ResolutionChange, error) {
		return domain.ResolutionChange{Decision: domain.DecisionNotDuplicate, DecidedAt: time.Now()}, nil
	})
	require.NoError(t, err)

	pending, err := s.ListChecks(ctx, domain.CheckListOpen, 1)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "A/C", pending[0].String())
}

func TestListChecks_OpenKeepsSkipped(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	created, err := s.CreateBatchIfAbsent(ctx, []domain.NewCandidate{
		candidate("A", "B", 0.9),
		candidate("A", "C", 0.8),
		candidate("B", "C", 0.7),
	}, time.Now())
	require.NoError(t, err)

	decide := func(id int64, d domain.Decision) {
		_, err := s.ResolveCheck(ctx, id, func(domain.ResolutionState) (domain.ResolutionChange, error) {
			return domain.ResolutionChange{Decision: d, DecidedAt: time.Now()}, nil
		})
		require.NoError(t, err)
	}
	decide(created[0].Check.CheckID, domain.DecisionSkip)
	decide(created[2].Check.CheckID, domain.DecisionNotDuplicate)

	open, err := s.ListChecks(ctx, domain.CheckListOpen, 0)
	require.NoError(t, err)
	require.Len(t, open, 2)
	assert.Equal(t, "A/B", open[0].String())
	assert.Equal(t, domain.DecisionSkip, open[0].Decision)
	assert.Equal(t, "A/C", open[1].String())
}

func TestResolveCheck_AppliesDecisionAndMarking(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()
	created, err := s.CreateIfAbsent(ctx, candidate("A", "B", 1), time.Now())
	require.NoError(t, err)

	now := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	check, err := s.ResolveCheck(ctx, created.Check.CheckID, func(state domain.ResolutionState) (domain.ResolutionChange, error) {
		assert.Len(t, state.Transactions, 2)
		return domain.ResolutionChange{
			Decision:           domain.DecisionDuplicate,
			DecidedAt:          now,
			TransactionUpdates: map[string]domain.DuplicateFields{"B": domain.MarkedDuplicateOf("A", now)},
		}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DecisionDuplicate, check.Decision)
	require.NotNil(t, check.DecidedAt)

	b, err := s.FindTransactionByID(ctx, "B")
	require.NoError(t, err)
	assert.True(t, b.IsDuplicateOf("A"))

	// A later resolution on a pair involving A sees B as a dependent.
	other, err := s.CreateIfAbsent(ctx, candidate("A", "C", 0.6), time.Now())
	require.NoError(t, err)
	_, err = s.ResolveCheck(ctx, other.Check.CheckID, func(state domain.ResolutionState) (domain.ResolutionChange, error) {
		assert.Equal(t, 1, state.Dependents["A"])
		return domain.ResolutionChange{}, errors.New("stop")
	})
	assert.EqualError(t, err, "stop")
}

func TestResolveCheck_FailedUpdateRollsBackDecision(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()
	created, err := s.CreateIfAbsent(ctx, candidate("A", "B", 1), time.Now())
	require.NoError(t, err)

	now := time.Now()
	_, err = s.ResolveCheck(ctx, created.Check.CheckID, func(domain.ResolutionState) (domain.ResolutionChange, error) {
		return domain.ResolutionChange{
			Decision:  domain.DecisionDuplicate,
			DecidedAt: now,
			TransactionUpdates: map[string]domain.DuplicateFields{
				"B": domain.MarkedDuplicateOf("A", now),
				"C": domain.MarkedDuplicateOf("missing", now),
			},
		}, nil
	})
	assert.ErrorIs(t, err, apperrors.ErrResolution)

	check, err := s.FindCheckByID(ctx, created.Check.CheckID)
	require.NoError(t, err)
	assert.Equal(t, domain.DecisionPending, check.Decision)
	assert.Nil(t, check.DecidedAt)

	for _, id := range []string{"B", "C"} {
		tx, err := s.FindTransactionByID(ctx, id)
		require.NoError(t, err)
		assert.False(t, tx.IsDuplicate, id)
	}
}

func TestResolveCheck_UnknownCheck(t *testing.T) {
	s := seeded(t)
	_, err := s.ResolveCheck(context.Background(), 99, func(domain.ResolutionState) (domain.ResolutionChange, error) {
		t.Fatal("must not be called")
		return domain.ResolutionChange{}, nil
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRestoreTransaction(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()
	created, err := s.CreateIfAbsent(ctx, candidate("A", "B", 1), time.Now())
	require.NoError(t, err)
	now := time.Now()
	_, err = s.ResolveCheck(ctx, created.Check.CheckID, func(domain.ResolutionState) (domain.ResolutionChange, error) {
		return domain.ResolutionChange{
			Decision:           domain.DecisionDuplicate,
			DecidedAt:          now,
			TransactionUpdates: map[string]domain.DuplicateFields{"B": domain.MarkedDuplicateOf("A", now)},
		}, nil
	})
	require.NoError(t, err)

	before, err := s.RestoreTransaction(ctx, "B", func(domain.Transaction) (*domain.DuplicateFields, error) {
		cleared := domain.ClearedDuplicateFields()
		return &cleared, nil
	})
	require.NoError(t, err)
	assert.True(t, before.IsDuplicateOf("A"))

	after, err := s.FindTransactionByID(ctx, "B")
	require.NoError(t, err)
	assert.False(t, after.IsDuplicate)
	assert.Nil(t, after.DuplicateOf)

	_, err = s.RestoreTransaction(ctx, "nope", func(domain.Transaction) (*domain.DuplicateFields, error) { return nil, nil })
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetCategoryTotals_ExcludesDuplicatesUnlessAsked(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()
	created, err := s.CreateIfAbsent(ctx, candidate("A", "B", 1), time.Now())
	require.NoError(t, err)
	now := time.Now()
	_, err = s.ResolveCheck(ctx, created.Check.CheckID, func(domain.ResolutionState) (domain.ResolutionChange, error) {
		return domain.ResolutionChange{
			Decision:           domain.DecisionDuplicate,
			DecidedAt:          now,
			TransactionUpdates: map[string]domain.DuplicateFields{"B": domain.MarkedDuplicateOf("A", now)},
		}, nil
	})
	require.NoError(t, err)

	rows, err := s.GetCategoryTotals(ctx, domain.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Food", rows[0].CategoryMajor)
	assert.Equal(t, 2, rows[0].Count)
	assert.True(t, rows[0].Expense.Equal(decimal.NewFromInt(-10000)))
	assert.Equal(t, "Salary", rows[1].CategoryMajor)
	assert.True(t, rows[1].Income.Equal(decimal.NewFromInt(20000)))

	audit, err := s.GetCategoryTotals(ctx, domain.TransactionFilter{IncludeDuplicates: true})
	require.NoError(t, err)
	assert.Equal(t, 3, audit[0].Count)
}
