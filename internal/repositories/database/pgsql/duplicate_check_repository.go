package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/ledger_dedup/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_dedup/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_dedup/internal/models"
	"github.com/SscSPs/ledger_dedup/internal/utils/mapping"
)

var checkColumns = []string{
	"check_id", "transaction_id_1", "transaction_id_2", "params",
	"similarity_score", "detected_at", "decision", "decided_at",
}

// PgxDuplicateCheckRepository is the check ledger.
type PgxDuplicateCheckRepository struct {
	BaseRepository
}

// newPgxDuplicateCheckRepository creates a new repository for duplicate checks.
func newPgxDuplicateCheckRepository(pool *pgxpool.Pool) portsrepo.DuplicateCheckRepositoryFacade {
	return &PgxDuplicateCheckRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxDuplicateCheckRepository implements portsrepo.DuplicateCheckRepositoryFacade
var _ portsrepo.DuplicateCheckRepositoryFacade = (*PgxDuplicateCheckRepository)(nil)

// CreateIfAbsent records one candidate unless its pair already has a check.
func (r *PgxDuplicateCheckRepository) CreateIfAbsent(ctx context.Context, candidate domain.NewCandidate, detectedAt time.Time) (portsrepo.CreateResult, error) {
	results, err := r.CreateBatchIfAbsent(ctx, []domain.NewCandidate{candidate}, detectedAt)
	if err != nil {
		return portsrepo.CreateResult{}, err
	}
	return results[0], nil
}

// CreateBatchIfAbsent records candidates in one unit of work. Pairs that already
// have a check keep their existing row, which is returned with Created=false.
func (r *PgxDuplicateCheckRepository) CreateBatchIfAbsent(ctx context.Context, candidates []domain.NewCandidate, detectedAt time.Time) ([]portsrepo.CreateResult, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	for _, c := range candidates {
		sql, args, err := buildInsertCheckQuery(c, detectedAt)
		if err != nil {
			return nil, translatePgError(err, "failed to build check insert")
		}
		batch.Queue(sql, args...)
	}

	results := make([]portsrepo.CreateResult, len(candidates))
	var existing []domain.CanonicalPair
	br := tx.SendBatch(ctx, batch)
	for i, c := range candidates {
		m, err := scanCheck(br.QueryRow())
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			// ON CONFLICT DO NOTHING returns no row for a pair already in the ledger.
			existing = append(existing, c.Pair)
			continue
		case err != nil:
			br.Close()
			return nil, translatePgError(err, "failed to insert check for pair "+c.Pair.String())
		}
		check, err := mapping.ToDomainDuplicateCheck(m)
		if err != nil {
			br.Close()
			return nil, translatePgError(err, "failed to decode inserted check")
		}
		results[i] = portsrepo.CreateResult{Check: check, Created: true}
	}
	if err := br.Close(); err != nil {
		return nil, translatePgError(err, "failed to execute check batch")
	}

	if len(existing) > 0 {
		found, err := r.findByPairs(ctx, tx, existing)
		if err != nil {
			return nil, err
		}
		for i, c := range candidates {
			if results[i].Created {
				continue
			}
			check, ok := found[c.Pair]
			if !ok {
				return nil, translatePgError(pgx.ErrNoRows, "check for pair "+c.Pair.String()+" vanished during insert")
			}
			results[i] = portsrepo.CreateResult{Check: check, Created: false}
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return results, nil
}

func buildInsertCheckQuery(c domain.NewCandidate, detectedAt time.Time) (string, []any, error) {
	m, err := mapping.ToModelDuplicateCheck(domain.DuplicateCheck{
		CanonicalPair: c.Pair,
		Params:        c.Params,
		Score:         c.Score,
		DetectedAt:    detectedAt,
		Decision:      domain.DecisionPending,
	})
	if err != nil {
		return "", nil, err
	}
	return psql.Insert("duplicate_checks").
		Columns("transaction_id_1", "transaction_id_2", "params", "similarity_score", "detected_at", "decision").
		Values(m.TransactionID1, m.TransactionID2, m.Params, m.SimilarityScore, m.DetectedAt, m.Decision).
		Suffix("ON CONFLICT (transaction_id_1, transaction_id_2) DO NOTHING RETURNING " + strings.Join(checkColumns, ", ")).
		ToSql()
}

func (r *PgxDuplicateCheckRepository) findByPairs(ctx context.Context, q querier, pairs []domain.CanonicalPair) (map[domain.CanonicalPair]domain.DuplicateCheck, error) {
	or := squirrel.Or{}
	for _, p := range pairs {
		or = append(or, squirrel.Eq{"transaction_id_1": p.First, "transaction_id_2": p.Second})
	}
	sql, args, err := psql.Select(checkColumns...).From("duplicate_checks").Where(or).ToSql()
	if err != nil {
		return nil, translatePgError(err, "failed to build check lookup")
	}

	checks, err := queryChecks(ctx, q, sql, args)
	if err != nil {
		return nil, err
	}
	found := make(map[domain.CanonicalPair]domain.DuplicateCheck, len(checks))
	for _, c := range checks {
		found[c.CanonicalPair] = c
	}
	return found, nil
}

// FindCheckByID retrieves a check by its ID.
func (r *PgxDuplicateCheckRepository) FindCheckByID(ctx context.Context, checkID int64) (*domain.DuplicateCheck, error) {
	return findCheck(ctx, r.Pool, checkID, false)
}

func findCheck(ctx context.Context, q querier, checkID int64, forUpdate bool) (*domain.DuplicateCheck, error) {
	b := psql.Select(checkColumns...).From("duplicate_checks").Where(squirrel.Eq{"check_id": checkID})
	if forUpdate {
		b = b.Suffix("FOR UPDATE")
	}
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, translatePgError(err, "failed to build check query")
	}

	m, err := scanCheck(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, translatePgError(err, fmt.Sprintf("duplicate check %d not found", checkID))
	}
	check, err := mapping.ToDomainDuplicateCheck(m)
	if err != nil {
		return nil, translatePgError(err, "failed to decode check")
	}
	return &check, nil
}

// ListChecks lists checks by descending score then pair.
func (r *PgxDuplicateCheckRepository) ListChecks(ctx context.Context, filter domain.CheckListFilter, limit int) ([]domain.DuplicateCheck, error) {
	sql, args, err := buildListChecksQuery(filter, limit).ToSql()
	if err != nil {
		return nil, translatePgError(err, "failed to build check listing")
	}
	return queryChecks(ctx, r.Pool, sql, args)
}

func buildListChecksQuery(filter domain.CheckListFilter, limit int) squirrel.SelectBuilder {
	q := psql.Select(checkColumns...).
		From("duplicate_checks").
		OrderBy("similarity_score DESC", `transaction_id_1 COLLATE "C"`, `transaction_id_2 COLLATE "C"`)
	if filter == domain.CheckListOpen {
		q = q.Where(squirrel.Eq{"decision": []string{string(domain.DecisionPending), string(domain.DecisionSkip)}})
	}
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	return q
}

// GetStats counts checks per decision.
func (r *PgxDuplicateCheckRepository) GetStats(ctx context.Context) (domain.DuplicateStats, error) {
	sql, args, err := buildStatsQuery().ToSql()
	if err != nil {
		return domain.DuplicateStats{}, translatePgError(err, "failed to build stats query")
	}

	var s domain.DuplicateStats
	err = r.Pool.QueryRow(ctx, sql, args...).Scan(&s.Total, &s.MarkedDuplicate, &s.Pending, &s.NotDuplicate, &s.Skipped)
	if err != nil {
		return domain.DuplicateStats{}, translatePgError(err, "failed to compute duplicate stats")
	}
	return s, nil
}

func buildStatsQuery() squirrel.SelectBuilder {
	return psql.Select(
		"COUNT(*)",
		"COUNT(*) FILTER (WHERE decision = 'duplicate')",
		"COUNT(*) FILTER (WHERE decision = 'pending')",
		"COUNT(*) FILTER (WHERE decision = 'not_duplicate')",
		"COUNT(*) FILTER (WHERE decision = 'skip')",
	).From("duplicate_checks")
}

func queryChecks(ctx context.Context, q querier, sql string, args []any) ([]domain.DuplicateCheck, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, translatePgError(err, "failed to query duplicate checks")
	}
	defer rows.Close()

	checks := []domain.DuplicateCheck{}
	for rows.Next() {
		m, err := scanCheck(rows)
		if err != nil {
			return nil, translatePgError(err, "failed to scan duplicate check")
		}
		check, err := mapping.ToDomainDuplicateCheck(m)
		if err != nil {
			return nil, translatePgError(err, "failed to decode duplicate check")
		}
		checks = append(checks, check)
	}
	if err := rows.Err(); err != nil {
		return nil, translatePgError(err, "failed to iterate duplicate checks")
	}
	return checks, nil
}

func scanCheck(row pgx.Row) (models.DuplicateCheck, error) {
	var m models.DuplicateCheck
	err := row.Scan(
		&m.CheckID,
		&m.TransactionID1,
		&m.TransactionID2,
		&m.Params,
		&m.SimilarityScore,
		&m.DetectedAt,
		&m.Decision,
		&m.DecidedAt,
	)
	return m, err
}
