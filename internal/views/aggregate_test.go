package views

import (
	"reflect"
	"testing"

	"famboard/internal/core"
)

func tx(id string, txType core.TransactionType, scope core.Scope, amount int64, catID, catName string, d core.Date) core.Transaction {
	return core.Transaction{
		ID:       id,
		Type:     txType,
		Scope:    scope,
		Amount:   amount,
		Category: core.Ref{ID: catID, Name: catName},
		Date:     d,
	}
}

func TestAggregateByCategory(t *testing.T) {
	f := MonthFilter(core.Expense, core.ScopeFamily, 2025, 3)
	txs := []core.Transaction{
		tx("t1", core.Expense, core.ScopeFamily, 300, "food", "Food", core.NewDate(2025, 3, 2)),
		tx("t2", core.Expense, core.ScopeFamily, 500, "rent", "Rent", core.NewDate(2025, 3, 5)),
		tx("t3", core.Expense, core.ScopeFamily, 200, "food", "Food", core.NewDate(2025, 3, 9)),
		// Excluded: wrong scope, wrong type, out of window, no date.
		tx("t4", core.Expense, core.ScopePersonal, 999, "food", "Food", core.NewDate(2025, 3, 9)),
		tx("t5", core.Income, core.ScopeFamily, 999, "salary", "Salary", core.NewDate(2025, 3, 9)),
		tx("t6", core.Expense, core.ScopeFamily, 999, "food", "Food", core.NewDate(2025, 4, 1)),
		tx("t7", core.Expense, core.ScopeFamily, 999, "food", "Food", core.Date{}),
	}

	got := AggregateByCategory(txs, f)
	want := []CategoryTotal{
		{Key: "food", Name: "Food", Amount: 500},
		{Key: "rent", Name: "Rent", Amount: 500},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AggregateByCategory() = %+v, want %+v", got, want)
	}
}

func TestAggregateByCategory_conservation(t *testing.T) {
	// Sum of the breakdown equals the sum of matching transactions.
	f := MonthFilter(core.Expense, core.ScopeFamily, 2025, 3)
	txs := []core.Transaction{
		tx("t1", core.Expense, core.ScopeFamily, 120, "a", "A", core.NewDate(2025, 3, 1)),
		tx("t2", core.Expense, core.ScopeFamily, 340, "b", "B", core.NewDate(2025, 3, 10)),
		tx("t3", core.Expense, core.ScopeFamily, 560, "a", "A", core.NewDate(2025, 3, 31)),
		tx("t4", core.Expense, core.ScopePersonal, 1000, "a", "A", core.NewDate(2025, 3, 15)),
	}

	var aggregated int64
	for _, ct := range AggregateByCategory(txs, f) {
		aggregated += ct.Amount
	}
	if matched := SumAmounts(txs, f); aggregated != matched {
		t.Errorf("breakdown sum = %d, matching sum = %d", aggregated, matched)
	}
}

func TestAggregateByCategory_stableTies(t *testing.T) {
	f := MonthFilter(core.Expense, core.ScopeFamily, 2025, 3)
	txs := []core.Transaction{
		tx("t1", core.Expense, core.ScopeFamily, 100, "first", "First", core.NewDate(2025, 3, 1)),
		tx("t2", core.Expense, core.ScopeFamily, 100, "second", "Second", core.NewDate(2025, 3, 2)),
		tx("t3", core.Expense, core.ScopeFamily, 100, "third", "Third", core.NewDate(2025, 3, 3)),
	}

	got := AggregateByCategory(txs, f)
	keys := []string{got[0].Key, got[1].Key, got[2].Key}
	want := []string{"first", "second", "third"}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("tie order = %v, want encounter order %v", keys, want)
	}
}

func TestAggregateByCategory_sentinelBucket(t *testing.T) {
	f := MonthFilter(core.Expense, core.ScopeFamily, 2025, 3)
	txs := []core.Transaction{
		tx("t1", core.Expense, core.ScopeFamily, 50, "", "", core.NewDate(2025, 3, 1)),
	}

	got := AggregateByCategory(txs, f)
	if len(got) != 1 || got[0].Key != core.CategoryExpenseOther {
		t.Fatalf("uncategorized bucket = %+v, want key %q", got, core.CategoryExpenseOther)
	}
}

func TestAggregateByCategory_emptyInput(t *testing.T) {
	got := AggregateByCategory(nil, MonthFilter(core.Expense, core.ScopeFamily, 2025, 3))
	if len(got) != 0 {
		t.Errorf("empty input produced %d buckets, want 0", len(got))
	}
}

func TestAggregateByCategory_idempotent(t *testing.T) {
	f := MonthFilter(core.Expense, core.ScopeFamily, 2025, 3)
	txs := []core.Transaction{
		tx("t1", core.Expense, core.ScopeFamily, 300, "food", "Food", core.NewDate(2025, 3, 2)),
		tx("t2", core.Expense, core.ScopeFamily, 300, "rent", "Rent", core.NewDate(2025, 3, 5)),
	}

	first := AggregateByCategory(txs, f)
	second := AggregateByCategory(txs, f)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated aggregation differs: %+v vs %+v", first, second)
	}
}

func TestAggregateByWeek(t *testing.T) {
	// April 2025 has 30 days; week 5 is days 29-30.
	f := MonthFilter(core.Expense, core.ScopeFamily, 2025, 4)
	txs := []core.Transaction{
		tx("t1", core.Expense, core.ScopeFamily, 100, "a", "A", core.NewDate(2025, 4, 10)),
		tx("t2", core.Expense, core.ScopeFamily, 150, "a", "A", core.NewDate(2025, 4, 12)),
		tx("t3", core.Expense, core.ScopeFamily, 700, "a", "A", core.NewDate(2025, 4, 29)),
	}

	got := AggregateByWeek(txs, f)
	want := []WeekBucket{
		{Week: 2, Label: "(8-14)", Amount: 250},
		{Week: 5, Label: "(29-30)", Amount: 700},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AggregateByWeek() = %+v, want %+v", got, want)
	}
}

func TestAggregateByWeek_emptyInput(t *testing.T) {
	got := AggregateByWeek(nil, MonthFilter(core.Expense, core.ScopeFamily, 2025, 4))
	if len(got) != 0 {
		t.Errorf("empty input produced %d buckets, want 0", len(got))
	}
}
