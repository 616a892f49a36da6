package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/ledger_dedup/internal/core/domain"
)

const dateFormat = "2006-01-02"

// EncodeCursor creates an opaque token for the (date, ID) position of a transaction.
func EncodeCursor(c domain.TransactionCursor) string {
	tokenStr := fmt.Sprintf("%s|%s", c.Date.Format(dateFormat), c.TransactionID)
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeCursor parses a token produced by EncodeCursor.
func DecodeCursor(token string) (*domain.TransactionCursor, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return nil, fmt.Errorf("invalid pagination token format (split)")
	}

	date, err := time.Parse(dateFormat, parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (date parse): %w", err)
	}
	return &domain.TransactionCursor{Date: date, TransactionID: parts[1]}, nil
}

// NextCursor returns the token for the page after txns, or nil when the page was not full.
func NextCursor(txns []domain.Transaction, limit int) *string {
	if limit <= 0 || len(txns) < limit {
		return nil
	}
	last := txns[len(txns)-1]
	token := EncodeCursor(domain.TransactionCursor{Date: last.Date, TransactionID: last.TransactionID})
	return &token
}
