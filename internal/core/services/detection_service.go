package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/SscSPs/ledger_dedup/internal/apperrors"
	"github.com/SscSPs/ledger_dedup/internal/core/domain"
)

// minBucketWidthDays is the smallest date bucket; a calendar week.
const minBucketWidthDays = 7

// bucketGroup is one date bucket together with the following bucket.
// The group owns the pairs inside own and the pairs between own and next,
// so every pair within tolerance belongs to exactly one group.
type bucketGroup struct {
	key  int64
	own  []domain.Transaction
	next []domain.Transaction
}

// Detect implements portssvc.DetectionSvc.
func (s *duplicateService) Detect(ctx context.Context, options domain.DetectionOptions) (*domain.DetectionResult, error) {
	params := options.DetectionParams
	logAttrs := []any{
		slog.Int("date_tolerance_days", params.DateToleranceDays),
		slog.String("amount_tolerance_abs", params.AmountToleranceAbs.String()),
		slog.String("amount_tolerance_pct", params.AmountTolerancePct.String()),
		slog.Float64("min_similarity_score", params.MinSimilarityScore),
		slog.Int("subset_size", len(options.TransactionIDs)),
	}

	if err := params.Validate(); err != nil {
		verr := apperrors.NewValidationError(err.Error())
		s.LogWarn(ctx, verr, "Rejected detection options", logAttrs...)
		return nil, verr
	}

	unresolved, err := s.transactionRepo.ListUnresolved(ctx, domain.TransactionFilter{})
	if err != nil {
		err = asPersistence(err, "failed to list unresolved transactions")
		s.LogError(ctx, err, "Failed to load transactions for detection", logAttrs...)
		return nil, err
	}

	var subset map[string]struct{}
	if len(options.TransactionIDs) > 0 {
		subset = make(map[string]struct{}, len(options.TransactionIDs))
		for _, id := range options.TransactionIDs {
			subset[id] = struct{}{}
		}
	}

	groups := partitionBuckets(unresolved, params.DateToleranceDays)
	scored := make([][]domain.NewCandidate, len(groups))
	compared := make([]int, len(groups))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := range groups {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			scored[i], compared[i] = scoreGroup(groups[i], params, subset)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		perr := apperrors.NewPersistenceError("detection cancelled before any candidate was recorded", err)
		s.LogWarn(ctx, perr, "Detection cancelled while scoring", logAttrs...)
		return nil, perr
	}

	result := &domain.DetectionResult{
		TransactionsScanned: len(unresolved),
		Candidates:          []domain.DuplicateCheck{},
	}
	detectedAt := s.now()
	committed := 0

	// One batch per bucket group, committed in date order, so an interrupted
	// run keeps everything recorded before the interruption.
	for i, batch := range scored {
		result.PairsCompared += compared[i]
		if len(batch) == 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			perr := apperrors.NewPersistenceError(
				fmt.Sprintf("detection cancelled after committing %d batches (%d new candidates)", committed, result.NewCandidates), err)
			s.LogWarn(ctx, perr, "Detection cancelled while recording candidates", logAttrs...)
			return nil, perr
		}

		created, err := s.checkRepo.CreateBatchIfAbsent(ctx, batch, detectedAt)
		if err != nil {
			err = asPersistence(err, "failed to record duplicate candidates")
			s.LogError(ctx, err, "Failed to record candidate batch",
				append(logAttrs, slog.Int("batch", i), slog.Int("committed_batches", committed))...)
			return nil, err
		}
		committed++

		for _, r := range created {
			result.CandidatesFound++
			if r.Created {
				result.NewCandidates++
			} else {
				result.ExistingCandidates++
			}
			result.Candidates = append(result.Candidates, r.Check)
		}
	}

	sort.SliceStable(result.Candidates, func(i, j int) bool {
		a, b := result.Candidates[i], result.Candidates[j]
		return domain.CandidateLess(a.Score, a.CanonicalPair, b.Score, b.CanonicalPair)
	})

	s.LogInfo(ctx, "Duplicate detection completed", append(logAttrs,
		slog.Int("transactions_scanned", result.TransactionsScanned),
		slog.Int("bucket_groups", len(groups)),
		slog.Int("pairs_compared", result.PairsCompared),
		slog.Int("candidates_found", result.CandidatesFound),
		slog.Int("new_candidates", result.NewCandidates))...)

	return result, nil
}

// partitionBuckets groups transactions into date buckets at least as wide as the
// tolerance window, sorted by date then ID inside each bucket.
func partitionBuckets(transactions []domain.Transaction, toleranceDays int) []bucketGroup {
	width := int64(toleranceDays)
	if width < minBucketWidthDays {
		width = minBucketWidthDays
	}

	buckets := make(map[int64][]domain.Transaction)
	for _, t := range transactions {
		k := floorDiv(epochDay(t.Date), width)
		buckets[k] = append(buckets[k], t)
	}

	keys := make([]int64, 0, len(buckets))
	for k, b := range buckets {
		keys = append(keys, k)
		sort.Slice(b, func(i, j int) bool {
			di, dj := domain.CivilDate(b[i].Date), domain.CivilDate(b[j].Date)
			if !di.Equal(dj) {
				return di.Before(dj)
			}
			return b[i].TransactionID < b[j].TransactionID
		})
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	groups := make([]bucketGroup, 0, len(keys))
	for _, k := range keys {
		groups = append(groups, bucketGroup{key: k, own: buckets[k], next: buckets[k+1]})
	}
	return groups
}

// scoreGroup compares every pair the group owns and returns those reaching the minimum score.
// When subset is non-nil at least one side of a pair must belong to it.
func scoreGroup(g bucketGroup, params domain.DetectionParams, subset map[string]struct{}) ([]domain.NewCandidate, int) {
	var out []domain.NewCandidate
	compared := 0

	consider := func(a, b domain.Transaction) {
		if subset != nil {
			_, inA := subset[a.TransactionID]
			_, inB := subset[b.TransactionID]
			if !inA && !inB {
				return
			}
		}
		compared++
		if !domain.PassesPrefilter(a, b, params) {
			return
		}
		score := domain.Score(a, b, params)
		if score < params.MinSimilarityScore {
			return
		}
		pair, err := domain.NewCanonicalPair(a.TransactionID, b.TransactionID)
		if err != nil {
			return
		}
		out = append(out, domain.NewCandidate{Pair: pair, Params: params, Score: score})
	}

	tol := params.DateToleranceDays
	for i, a := range g.own {
		for _, b := range g.own[i+1:] {
			if domain.DaysBetween(a.Date, b.Date) > tol {
				break
			}
			consider(a, b)
		}
		for _, b := range g.next {
			if domain.DaysBetween(a.Date, b.Date) > tol {
				break
			}
			consider(a, b)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return domain.CandidateLess(out[i].Score, out[i].Pair, out[j].Score, out[j].Pair)
	})
	return out, compared
}

func epochDay(t time.Time) int64 {
	return domain.CivilDate(t).Unix() / 86400
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
