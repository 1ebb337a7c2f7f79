package views

import (
	"testing"
	"time"

	"famboard/internal/core"
)

func TestBudgetCompletionReport(t *testing.T) {
	budgets := []core.Budget{
		{ID: "b1", Amount: 100, Spent: 50},
		{ID: "b2", Amount: 100, Spent: 85},
		{ID: "b3", Amount: 100, Spent: 150},
		{ID: "b4", Amount: 0, Spent: 0},
	}

	got := BudgetCompletionReport(budgets)

	wantEntries := []struct {
		pct    int
		status BudgetStatus
	}{
		{50, BudgetGood},
		{85, BudgetWarning},
		{150, BudgetOver},
		{0, BudgetGood},
	}
	for i, want := range wantEntries {
		e := got.Entries[i]
		if e.Percentage != want.pct || e.Status != want.status {
			t.Errorf("entry %d = %d%%/%s, want %d%%/%s", i, e.Percentage, e.Status, want.pct, want.status)
		}
	}

	// 285 spent over 300 allocated: 95%.
	if got.CompletionRate != 95 {
		t.Errorf("CompletionRate = %d, want 95", got.CompletionRate)
	}
}

func TestBudgetCompletionReport_empty(t *testing.T) {
	got := BudgetCompletionReport(nil)
	if len(got.Entries) != 0 || got.CompletionRate != 0 {
		t.Errorf("empty report = %+v, want zero values", got)
	}
}

func TestBudgetCompletionReport_doesNotMutateInput(t *testing.T) {
	budgets := []core.Budget{{ID: "b1", Amount: 100, Spent: 60}}
	before := budgets[0]
	_ = BudgetCompletionReport(budgets)
	if budgets[0] != before {
		t.Errorf("input budget mutated: %+v", budgets[0])
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		pct  int
		want BudgetStatus
	}{
		{0, BudgetGood},
		{79, BudgetGood},
		{80, BudgetWarning},
		{99, BudgetWarning},
		{100, BudgetOver},
		{150, BudgetOver},
	}
	for _, tt := range tests {
		if got := StatusFor(tt.pct); got != tt.want {
			t.Errorf("StatusFor(%d) = %s, want %s", tt.pct, got, tt.want)
		}
	}
}

func TestPeriodStateFor(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		year  int
		month int
		want  PeriodState
	}{
		{name: "current month", year: 2025, month: 6, want: PeriodCurrent},
		{name: "future month same year", year: 2025, month: 9, want: PeriodCurrent},
		{name: "future year", year: 2026, month: 1, want: PeriodCurrent},
		{name: "previous month", year: 2025, month: 5, want: PeriodHistorical},
		{name: "previous year later month", year: 2024, month: 12, want: PeriodHistorical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PeriodStateFor(tt.year, tt.month, now); got != tt.want {
				t.Errorf("PeriodStateFor(%d, %d) = %s, want %s", tt.year, tt.month, got, tt.want)
			}
		})
	}
}
