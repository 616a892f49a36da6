package inmemory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/ledger_dedup/internal/apperrors"
	"github.com/SscSPs/ledger_dedup/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_dedup/internal/core/ports/repositories"
)

// Store is an in-memory implementation of every repository port.
// It is safe for concurrent use; each write runs under one lock and
// is applied to copies first, so a failed unit of work changes nothing.
// Data is lost on restart - for persistence, use the pgsql repositories.
type Store struct {
	mu           sync.RWMutex
	transactions map[string]domain.Transaction
	checks       map[int64]domain.DuplicateCheck
	pairs        map[domain.CanonicalPair]int64
	nextCheckID  int64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		transactions: make(map[string]domain.Transaction),
		checks:       make(map[int64]domain.DuplicateCheck),
		pairs:        make(map[domain.CanonicalPair]int64),
	}
}

// NewRepositoryProvider exposes one store through every repository port.
func NewRepositoryProvider(s *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TransactionRepo:    s,
		DuplicateCheckRepo: s,
		ResolutionRepo:     s,
		ReportingRepo:      s,
	}
}

var (
	_ portsrepo.TransactionRepositoryFacade    = (*Store)(nil)
	_ portsrepo.DuplicateCheckRepositoryFacade = (*Store)(nil)
	_ portsrepo.ResolutionRepository           = (*Store)(nil)
	_ portsrepo.ReportingRepository            = (*Store)(nil)
)

// FindTransactionByID implements portsrepo.TransactionReader.
func (s *Store) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.transactions[transactionID]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("transaction %s not found", transactionID))
	}
	c := cloneTransaction(t)
	return &c, nil
}

// FindTransactionsByIDs implements portsrepo.TransactionReader.
func (s *Store) FindTransactionsByIDs(ctx context.Context, transactionIDs []string) (map[string]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]domain.Transaction, len(transactionIDs))
	for _, id := range transactionIDs {
		if t, ok := s.transactions[id]; ok {
			result[id] = cloneTransaction(t)
		}
	}
	return result, nil
}

// ListTransactions implements portsrepo.TransactionReader.
func (s *Store) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.list(filter), nil
}

// ListUnresolved implements portsrepo.TransactionReader.
func (s *Store) ListUnresolved(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	filter.IncludeDuplicates = false
	return s.ListTransactions(ctx, filter)
}

func (s *Store) list(filter domain.TransactionFilter) []domain.Transaction {
	result := []domain.Transaction{}
	for _, t := range s.transactions {
		if filter.Matches(t) {
			result = append(result, cloneTransaction(t))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		di, dj := domain.CivilDate(result[i].Date), domain.CivilDate(result[j].Date)
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return result[i].TransactionID < result[j].TransactionID
	})
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result
}

// SaveTransactions implements portsrepo.TransactionWriter.
func (s *Store) SaveTransactions(ctx context.Context, transactions []domain.Transaction) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range transactions {
		if t.DuplicateOf != nil {
			if _, ok := s.transactions[*t.DuplicateOf]; !ok && !containsID(transactions, *t.DuplicateOf) {
				return 0, apperrors.NewNotFoundError(fmt.Sprintf("keeper %s of transaction %s not found", *t.DuplicateOf, t.TransactionID))
			}
		}
	}

	inserted := 0
	for _, t := range transactions {
		if _, exists := s.transactions[t.TransactionID]; exists {
			continue
		}
		t.Date = domain.CivilDate(t.Date)
		s.transactions[t.TransactionID] = cloneTransaction(t)
		inserted++
	}
	return inserted, nil
}

// CreateIfAbsent implements portsrepo.DuplicateCheckWriter.
func (s *Store) CreateIfAbsent(ctx context.Context, candidate domain.NewCandidate, detectedAt time.Time) (portsrepo.CreateResult, error) {
	results, err := s.CreateBatchIfAbsent(ctx, []domain.NewCandidate{candidate}, detectedAt)
	if err != nil {
		return portsrepo.CreateResult{}, err
	}
	return results[0], nil
}

// CreateBatchIfAbsent implements portsrepo.DuplicateCheckWriter. The batch is all or nothing.
func (s *Store) CreateBatchIfAbsent(ctx context.Context, candidates []domain.NewCandidate, detectedAt time.Time) ([]portsrepo.CreateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range candidates {
		if c.Pair.First >= c.Pair.Second {
			return nil, apperrors.NewValidationError(fmt.Sprintf("pair %s is not canonical", c.Pair))
		}
		for _, id := range []string{c.Pair.First, c.Pair.Second} {
			if _, ok := s.transactions[id]; !ok {
				return nil, apperrors.NewNotFoundError(fmt.Sprintf("transaction %s not found", id))
			}
		}
	}

	results := make([]portsrepo.CreateResult, 0, len(candidates))
	for _, c := range candidates {
		if id, ok := s.pairs[c.Pair]; ok {
			results = append(results, portsrepo.CreateResult{Check: s.checks[id], Created: false})
			continue
		}
		s.nextCheckID++
		check := domain.DuplicateCheck{
			CheckID:       s.nextCheckID,
			CanonicalPair: c.Pair,
			Params:        c.Params,
			Score:         c.Score,
			DetectedAt:    detectedAt,
			Decision:      domain.DecisionPending,
		}
		s.checks[check.CheckID] = check
		s.pairs[c.Pair] = check.CheckID
		results = append(results, portsrepo.CreateResult{Check: check, Created: true})
	}
	return results, nil
}

// FindCheckByID implements portsrepo.DuplicateCheckReader.
func (s *Store) FindCheckByID(ctx context.Context, checkID int64) (*domain.DuplicateCheck, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.checks[checkID]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("duplicate check %d not found", checkID))
	}
	return &c, nil
}

// ListChecks implements portsrepo.DuplicateCheckReader.
func (s *Store) ListChecks(ctx context.Context, filter domain.CheckListFilter, limit int) ([]domain.DuplicateCheck, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []domain.DuplicateCheck{}
	for _, c := range s.checks {
		if filter == domain.CheckListOpen && c.Decision.IsTerminal() {
			continue
		}
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool {
		return domain.CandidateLess(result[i].Score, result[i].CanonicalPair, result[j].Score, result[j].CanonicalPair)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// GetStats implements portsrepo.DuplicateCheckReader.
func (s *Store) GetStats(ctx context.Context) (domain.DuplicateStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats domain.DuplicateStats
	for _, c := range s.checks {
		stats.Total++
		switch c.Decision {
		case domain.DecisionDuplicate:
			stats.MarkedDuplicate++
		case domain.DecisionPending:
			stats.Pending++
		case domain.DecisionNotDuplicate:
			stats.NotDuplicate++
		case domain.DecisionSkip:
			stats.Skipped++
		}
	}
	return stats, nil
}

// ResolveCheck implements portsrepo.ResolutionRepository.
func (s *Store) ResolveCheck(ctx context.Context, checkID int64, fn portsrepo.ResolveFunc) (*domain.DuplicateCheck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	check, ok := s.checks[checkID]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("duplicate check %d not found", checkID))
	}

	state := domain.ResolutionState{
		Check:        check,
		Transactions: make(map[string]domain.Transaction, 2),
		Dependents:   make(map[string]int, 2),
	}
	for _, id := range []string{check.First, check.Second} {
		if t, ok := s.transactions[id]; ok {
			state.Transactions[id] = cloneTransaction(t)
		}
	}
	for _, t := range s.transactions {
		if t.DuplicateOf != nil && (*t.DuplicateOf == check.First || *t.DuplicateOf == check.Second) {
			state.Dependents[*t.DuplicateOf]++
		}
	}

	change, err := fn(state)
	if err != nil {
		return nil, err
	}

	// Stage every write before touching the maps.
	staged := make(map[string]domain.Transaction, len(change.TransactionUpdates))
	for id, fields := range change.TransactionUpdates {
		t, ok := s.transactions[id]
		if !ok {
			return nil, apperrors.NewResolutionError(fmt.Sprintf("transaction %s was not updated", id), nil)
		}
		if err := s.checkFields(id, fields); err != nil {
			return nil, apperrors.NewResolutionError(fmt.Sprintf("failed to update duplicate state of %s", id), err)
		}
		t.DuplicateFields = cloneFields(fields)
		staged[id] = t
	}

	decidedAt := change.DecidedAt
	check.Decision = change.Decision
	check.DecidedAt = &decidedAt

	s.checks[checkID] = check
	for id, t := range staged {
		s.transactions[id] = t
	}
	return &check, nil
}

// RestoreTransaction implements portsrepo.ResolutionRepository.
func (s *Store) RestoreTransaction(ctx context.Context, transactionID string, fn portsrepo.RestoreFunc) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.transactions[transactionID]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("transaction %s not found", transactionID))
	}
	before := cloneTransaction(t)

	fields, err := fn(cloneTransaction(t))
	if err != nil {
		return nil, err
	}
	if fields == nil {
		return &before, nil
	}
	if err := s.checkFields(transactionID, *fields); err != nil {
		return nil, apperrors.NewResolutionError(fmt.Sprintf("failed to update duplicate state of %s", transactionID), err)
	}

	t.DuplicateFields = cloneFields(*fields)
	s.transactions[transactionID] = t
	return &before, nil
}

// checkFields enforces what the database constraints enforce.
func (s *Store) checkFields(ownerID string, f domain.DuplicateFields) error {
	if err := f.Validate(ownerID); err != nil {
		return err
	}
	if f.DuplicateOf != nil {
		if _, ok := s.transactions[*f.DuplicateOf]; !ok {
			return fmt.Errorf("keeper %s does not exist", *f.DuplicateOf)
		}
	}
	return nil
}

// GetCategoryTotals implements portsrepo.ReportingRepository.
func (s *Store) GetCategoryTotals(ctx context.Context, filter domain.TransactionFilter) ([]domain.CategoryTotal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filter.Limit = 0
	byCategory := make(map[string]*domain.CategoryTotal)
	for _, t := range s.list(filter) {
		if !t.CountsTowardTotals {
			continue
		}
		row, ok := byCategory[t.CategoryMajor]
		if !ok {
			row = &domain.CategoryTotal{
				CategoryMajor: t.CategoryMajor,
				Income:        decimal.Zero,
				Expense:       decimal.Zero,
				Net:           decimal.Zero,
			}
			byCategory[t.CategoryMajor] = row
		}
		if t.Amount.IsPositive() {
			row.Income = row.Income.Add(t.Amount)
		} else if t.Amount.IsNegative() {
			row.Expense = row.Expense.Add(t.Amount)
		}
		row.Net = row.Net.Add(t.Amount)
		row.Count++
	}

	result := make([]domain.CategoryTotal, 0, len(byCategory))
	for _, row := range byCategory {
		result = append(result, *row)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CategoryMajor < result[j].CategoryMajor })
	return result, nil
}

func cloneTransaction(t domain.Transaction) domain.Transaction {
	t.DuplicateFields = cloneFields(t.DuplicateFields)
	return t
}

func cloneFields(f domain.DuplicateFields) domain.DuplicateFields {
	if f.DuplicateOf != nil {
		v := *f.DuplicateOf
		f.DuplicateOf = &v
	}
	if f.CheckedAt != nil {
		v := *f.CheckedAt
		f.CheckedAt = &v
	}
	return f
}

func containsID(transactions []domain.Transaction, id string) bool {
	for _, t := range transactions {
		if t.TransactionID == id {
			return true
		}
	}
	return false
}
