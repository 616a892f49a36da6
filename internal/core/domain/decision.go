package domain

import (
	"fmt"
	"strings"
)

// Decision is the outcome recorded against a duplicate check.
type Decision string

const (
	DecisionPending      Decision = "pending"
	DecisionDuplicate    Decision = "duplicate"
	DecisionNotDuplicate Decision = "not_duplicate"
	DecisionSkip         Decision = "skip"
)

// ParseDecision validates a decision literal.
func ParseDecision(s string) (Decision, error) {
	switch d := Decision(strings.ToLower(strings.TrimSpace(s))); d {
	case DecisionPending, DecisionDuplicate, DecisionNotDuplicate, DecisionSkip:
		return d, nil
	default:
		return "", fmt.Errorf("unknown decision %q: must be one of pending, duplicate, not_duplicate, skip", s)
	}
}

// ParseUserDecision validates a decision a user may submit through confirm.
func ParseUserDecision(s string) (Decision, error) {
	d, err := ParseDecision(s)
	if err != nil {
		return "", err
	}
	if d == DecisionPending {
		return "", fmt.Errorf("decision must be one of duplicate, not_duplicate, skip")
	}
	return d, nil
}

func (d Decision) String() string { return string(d) }

// IsTerminal reports whether the decision closes the check.
// skip is revisitable; duplicate can only be reopened through restore.
func (d Decision) IsTerminal() bool {
	return d == DecisionDuplicate || d == DecisionNotDuplicate
}
