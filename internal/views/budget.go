package views

import (
	"time"

	"famboard/internal/core"
)

// BudgetStatus tiers a budget by how much of its allocation is spent.
type BudgetStatus string

const (
	BudgetGood    BudgetStatus = "good"    // below 80%
	BudgetWarning BudgetStatus = "warning" // 80-99%
	BudgetOver    BudgetStatus = "over"    // 100% and beyond
)

// StatusFor maps a completion percentage to its tier.
func StatusFor(percentage int) BudgetStatus {
	switch {
	case percentage >= 100:
		return BudgetOver
	case percentage >= 80:
		return BudgetWarning
	default:
		return BudgetGood
	}
}

// BudgetCompletion annotates one budget with its derived percentage and
// status. The input record is embedded untouched.
type BudgetCompletion struct {
	Budget     core.Budget  `json:"budget"`
	Percentage int          `json:"percentage"`
	Status     BudgetStatus `json:"status"`
}

// BudgetReport is the completion view over a full budget list.
type BudgetReport struct {
	Entries []BudgetCompletion `json:"entries"`
	// CompletionRate is round(sum(spent)/sum(amount)*100) over the whole
	// list, 0 when nothing is allocated.
	CompletionRate int `json:"completionRate"`
}

// BudgetCompletionReport computes per-entry percentages and statuses plus
// the aggregate completion rate. Input budgets are never mutated; the caller
// chooses the source (live or archived) per the period state first.
func BudgetCompletionReport(budgets []core.Budget) BudgetReport {
	report := BudgetReport{Entries: make([]BudgetCompletion, 0, len(budgets))}

	var totalSpent, totalAmount int64
	for _, b := range budgets {
		pct := core.Percent(b.Spent, b.Amount)
		report.Entries = append(report.Entries, BudgetCompletion{
			Budget:     b,
			Percentage: pct,
			Status:     StatusFor(pct),
		})
		totalSpent += b.Spent
		totalAmount += b.Amount
	}

	report.CompletionRate = core.Percent(totalSpent, totalAmount)
	return report
}

// PeriodState selects which budget collection a month reads from.
type PeriodState string

const (
	// PeriodCurrent: the selected month is the real-world current month or
	// later; the live budget collection is the source of truth.
	PeriodCurrent PeriodState = "current"
	// PeriodHistorical: the selected month is already over; the archived
	// budget history is the source.
	PeriodHistorical PeriodState = "historical"
)

// PeriodStateFor compares the selected year+month against now. It is a pure
// function recomputed at every evaluation; nothing is stored.
func PeriodStateFor(year, month int, now time.Time) PeriodState {
	if year > now.Year() {
		return PeriodCurrent
	}
	if year == now.Year() && month >= int(now.Month()) {
		return PeriodCurrent
	}
	return PeriodHistorical
}
