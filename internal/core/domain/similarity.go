package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	dateWeight   = 0.4
	amountWeight = 0.6
	scoreScale   = 10000 // Scores are kept to 4 decimal places
)

var (
	amountEpsilon = decimal.New(1, -9)
	hundred       = decimal.NewFromInt(100)
	two           = decimal.NewFromInt(2)
)

// Score computes a symmetric match score in [0,1] for two transactions.
// Only date and amount participate; description, category and account are display context.
func Score(a, b Transaction, p DetectionParams) float64 {
	score := dateWeight*dateComponent(a, b, p.DateToleranceDays) + amountWeight*amountComponent(a.Amount, b.Amount)
	return math.Round(clamp01(score)*scoreScale) / scoreScale
}

func dateComponent(a, b Transaction, toleranceDays int) float64 {
	window := toleranceDays
	if window < 1 {
		window = 1
	}
	return clamp01(1 - float64(DaysBetween(a.Date, b.Date))/float64(window))
}

func amountComponent(a, b decimal.Decimal) float64 {
	if a.IsZero() && b.IsZero() {
		return 1.0
	}
	denom := decimal.Max(a.Abs(), b.Abs(), amountEpsilon)
	ratio := a.Sub(b).Abs().Div(denom)
	return clamp01(1 - ratio.InexactFloat64())
}

// PassesPrefilter applies the cheap tolerance checks that gate scoring.
func PassesPrefilter(a, b Transaction, p DetectionParams) bool {
	if DaysBetween(a.Date, b.Date) > p.DateToleranceDays {
		return false
	}
	diff := a.Amount.Sub(b.Amount).Abs()
	switch {
	case p.AmountToleranceAbs.IsPositive():
		return diff.LessThanOrEqual(p.AmountToleranceAbs)
	case p.AmountTolerancePct.IsPositive():
		if diff.IsZero() {
			return true
		}
		avg := a.Amount.Abs().Add(b.Amount.Abs()).Div(two)
		if avg.IsZero() {
			return false
		}
		return diff.Div(avg).Mul(hundred).LessThanOrEqual(p.AmountTolerancePct)
	default:
		return diff.IsZero()
	}
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
