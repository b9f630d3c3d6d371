package services

import (
	"fmt"
	"math"
	"time"
)

// Pure ledger arithmetic. Everything here takes values and returns values;
// no locks, no clocks, no formatting beyond the relative date labels.

// Balance is the signed sum of all movements. Empty ledger is 0.
func Balance(movements []float64) float64 {
	var sum float64
	for _, mov := range movements {
		sum += mov
	}
	return sum
}

// Incomes sums the deposits (movements > 0).
func Incomes(movements []float64) float64 {
	var sum float64
	for _, mov := range movements {
		if mov > 0 {
			sum += mov
		}
	}
	return sum
}

// Spending sums the withdrawals (movements < 0). The result is <= 0.
func Spending(movements []float64) float64 {
	var sum float64
	for _, mov := range movements {
		if mov < 0 {
			sum += mov
		}
	}
	return sum
}

// Interest computes rate% on every deposit and sums the contributions,
// discarding any single contribution below 1.0. The cutoff is an eligibility
// filter on each deposit, not a rounding rule.
func Interest(movements []float64, rate float64) float64 {
	var sum float64
	for _, mov := range movements {
		if mov <= 0 {
			continue
		}
		contribution := mov * rate / 100
		if contribution >= 1 {
			sum += contribution
		}
	}
	return sum
}

// DaysBetween is the absolute difference between two instants in days,
// rounded to nearest. Argument order does not matter.
func DaysBetween(a, b time.Time) int {
	return int(math.Round(math.Abs(b.Sub(a).Hours() / 24)))
}

// MovementLabel renders a ledger row's relative date: "Today", "Yesterday",
// "N days ago" up to a week, then whatever the display collaborator formats.
func MovementLabel(now, date time.Time, formatDate func(time.Time) string) string {
	switch days := DaysBetween(now, date); {
	case days == 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days <= 7:
		return fmt.Sprintf("%d days ago", days)
	default:
		return formatDate(date)
	}
}
