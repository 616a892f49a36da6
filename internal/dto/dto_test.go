package dto

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/ledger_dedup/internal/apperrors"
	"github.com/SscSPs/ledger_dedup/internal/core/domain"
	"github.com/SscSPs/ledger_dedup/internal/utils/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool        { return &b }

func decPtr(i int64) *decimal.Decimal {
	d := decimal.NewFromInt(i)
	return &d
}

func TestDetectRequest_ToOptionsOverlaysDefaults(t *testing.T) {
	defaults := domain.DetectionParams{
		DateToleranceDays:  2,
		AmountTolerancePct: decimal.NewFromInt(5),
		MinSimilarityScore: 0.5,
	}

	opts := DetectRequest{}.ToOptions(defaults)
	assert.Equal(t, defaults, opts.DetectionParams)
	assert.Empty(t, opts.TransactionIDs)

	req := DetectRequest{
		DateToleranceDays:  intPtr(0),
		AmountToleranceAbs: decPtr(100),
		MinSimilarityScore: floatPtr(0.9),
		TransactionIDs:     []string{" A ", "", "B"},
	}
	opts = req.ToOptions(defaults)
	assert.Equal(t, 0, opts.DateToleranceDays)
	assert.True(t, opts.AmountToleranceAbs.Equal(decimal.NewFromInt(100)))
	assert.True(t, opts.AmountTolerancePct.Equal(decimal.NewFromInt(5)), "unset field keeps the default")
	assert.Equal(t, 0.9, opts.MinSimilarityScore)
	assert.Equal(t, []string{"A", "B"}, opts.TransactionIDs)
}

func TestDetectRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     DetectRequest
		wantErr bool
	}{
		{"empty", DetectRequest{}, false},
		{"all set", DetectRequest{DateToleranceDays: intPtr(3), AmountToleranceAbs: decPtr(0), MinSimilarityScore: floatPtr(1)}, false},
		{"negative days", DetectRequest{DateToleranceDays: intPtr(-1)}, true},
		{"score above one", DetectRequest{MinSimilarityScore: floatPtr(1.5)}, true},
		{"negative abs", DetectRequest{AmountToleranceAbs: decPtr(-1)}, true},
		{"negative pct", DetectRequest{AmountTolerancePct: decPtr(-5)}, true},
		{"blank id", DetectRequest{TransactionIDs: []string{"A", ""}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestListCandidatesQuery_SkipCheckedDefaultsToTrue(t *testing.T) {
	assert.True(t, ListCandidatesQuery{}.SkipCheckedOrDefault())
	assert.False(t, ListCandidatesQuery{SkipChecked: boolPtr(false)}.SkipCheckedOrDefault())
}

func TestToCandidateResponse(t *testing.T) {
	detected := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	check := domain.DuplicateCheck{
		CheckID:       7,
		CanonicalPair: domain.CanonicalPair{First: "A", Second: "B"},
		Score:         0.94,
		DetectedAt:    detected,
		Decision:      domain.DecisionPending,
	}

	resp := ToCandidateResponse(check)
	assert.Equal(t, int64(7), resp.CheckID)
	assert.Equal(t, "A", resp.TransactionID1)
	assert.Equal(t, "B", resp.TransactionID2)
	assert.Equal(t, "pending", resp.Decision)
	assert.Equal(t, "2024-02-01T10:00:00Z", resp.DetectedAt)
	assert.Nil(t, resp.DecidedAt)

	check.DecidedAt = &detected
	assert.NotNil(t, ToCandidateResponse(check).DecidedAt)
}

func TestDetectResponse_UsesCamelCaseKeys(t *testing.T) {
	resp := ToDetectResponse(&domain.DetectionResult{
		CandidatesFound: 1,
		NewCandidates:   1,
		Candidates: []domain.DuplicateCheck{{
			CheckID:       4,
			CanonicalPair: domain.CanonicalPair{First: "A", Second: "B"},
			Params:        domain.DetectionParams{DateToleranceDays: 1},
			Score:         0.9,
			DetectedAt:    time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			Decision:      domain.DecisionPending,
		}},
	})

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	body := string(raw)
	for _, key := range []string{`"candidatesFound":1`, `"newCandidates":1`, `"checkID":4`, `"transactionID1":"A"`, `"similarityScore":0.9`, `"dateToleranceDays":1`, `"detectedAt":"2024-02-01T00:00:00Z"`} {
		assert.Contains(t, body, key)
	}
	assert.NotContains(t, body, "_")

	var req DetectRequest
	require.NoError(t, json.Unmarshal([]byte(`{"dateToleranceDays":2,"minSimilarityScore":0.7,"transactionIDs":["X"]}`), &req))
	require.NotNil(t, req.DateToleranceDays)
	assert.Equal(t, 2, *req.DateToleranceDays)
	assert.Equal(t, []string{"X"}, req.TransactionIDs)
}

func TestImportTransactionsRequest_ToDomain(t *testing.T) {
	req := ImportTransactionsRequest{Transactions: []TransactionRequest{
		{TransactionID: "A", Date: "2024-01-15", Amount: decimal.NewFromInt(-5000)},
		{TransactionID: "B", Date: "2024-01-16", Amount: decimal.NewFromInt(20), CountsTowardTotals: boolPtr(false)},
	}}

	txns, err := req.ToDomain()
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), txns[0].Date)
	assert.True(t, txns[0].CountsTowardTotals)
	assert.False(t, txns[1].CountsTowardTotals)

	req.Transactions[1].Date = "16/01/2024"
	_, err = req.ToDomain()
	assert.ErrorContains(t, err, "invalid date")
}

func TestListTransactionsQuery_ToFilter(t *testing.T) {
	filter, err := ListTransactionsQuery{}.ToFilter()
	require.NoError(t, err)
	assert.Equal(t, DefaultTransactionPageSize, filter.Limit)
	assert.False(t, filter.IncludeDuplicates)
	assert.Nil(t, filter.After)

	token := pagination.EncodeCursor(domain.TransactionCursor{Date: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), TransactionID: "A"})
	q := ListTransactionsQuery{
		TransactionFilterQuery: TransactionFilterQuery{IncludeDuplicates: true, From: "2024-01-01", To: "2024-01-31", Account: "Card"},
		Limit:                  10,
		NextToken:              token,
	}
	filter, err = q.ToFilter()
	require.NoError(t, err)
	assert.True(t, filter.IncludeDuplicates)
	assert.Equal(t, "Card", filter.Account)
	assert.Equal(t, 10, filter.Limit)
	require.NotNil(t, filter.From)
	require.NotNil(t, filter.To)
	require.NotNil(t, filter.After)
	assert.Equal(t, "A", filter.After.TransactionID)

	_, err = ListTransactionsQuery{NextToken: "%%%"}.ToFilter()
	assert.Error(t, err)
}

func TestToListTransactionsResponse(t *testing.T) {
	resp := ToListTransactionsResponse(nil, 10)
	assert.NotNil(t, resp.Transactions)
	assert.Nil(t, resp.NextToken)

	full := []domain.Transaction{{TransactionID: "A", Date: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)}}
	assert.NotNil(t, ToListTransactionsResponse(full, 1).NextToken)
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse(apperrors.NewValidationError("unknown decision"))
	assert.Equal(t, "ValidationError", resp.Error)
	assert.Equal(t, "unknown decision", resp.Message)

	resp = NewErrorResponse(errors.New("boom"))
	assert.Equal(t, "InternalError", resp.Error)
}
