package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "famboard.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository() error = %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func sampleReport() Report {
	return Report{
		Year:         2025,
		Month:        4,
		GeneratedAt:  time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC),
		TotalIncome:  900000,
		TotalExpense: 450000,
		Categories: []CategoryRow{
			{Section: "expense", Key: "food", Name: "Food", Amount: 300000, Rank: 1},
			{Section: "expense", Key: "expense-other", Name: "Other", Amount: 150000, Rank: 2},
			{Section: "income", Key: "salary", Name: "Salary", Amount: 900000, Rank: 1},
		},
		Members: []MemberRow{
			{Section: "expense", UserID: "u1", Name: "An", Amount: 450000},
		},
		Budgets: []BudgetRow{
			{BudgetID: "b1", Key: "food", Name: "Food", Amount: 400000, Spent: 300000},
		},
	}
}

func TestSaveAndGetReport(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.SaveReport(ctx, sampleReport())
	if err != nil {
		t.Fatalf("SaveReport() error = %v", err)
	}

	got, err := repo.GetReport(ctx, id)
	if err != nil {
		t.Fatalf("GetReport() error = %v", err)
	}
	if got.Year != 2025 || got.Month != 4 {
		t.Errorf("report month = %d-%d", got.Year, got.Month)
	}
	if got.TotalExpense != 450000 || got.TotalIncome != 900000 {
		t.Errorf("totals = %d / %d", got.TotalExpense, got.TotalIncome)
	}
	if len(got.Categories) != 3 {
		t.Fatalf("categories = %d, want 3", len(got.Categories))
	}
	if got.Categories[0].Key != "food" || got.Categories[0].Rank != 1 {
		t.Errorf("first expense row = %+v", got.Categories[0])
	}
	if len(got.Members) != 1 || got.Members[0].UserID != "u1" {
		t.Errorf("members = %+v", got.Members)
	}
	if len(got.Budgets) != 1 || got.Budgets[0].Spent != 300000 {
		t.Errorf("budgets = %+v", got.Budgets)
	}
}

func TestSaveReportReplacesSameMonth(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first, err := repo.SaveReport(ctx, sampleReport())
	if err != nil {
		t.Fatalf("SaveReport() error = %v", err)
	}

	updated := sampleReport()
	updated.TotalExpense = 500000
	second, err := repo.SaveReport(ctx, updated)
	if err != nil {
		t.Fatalf("SaveReport() second error = %v", err)
	}

	if _, err := repo.GetReport(ctx, first); !errors.Is(err, ErrReportNotFound) {
		t.Errorf("old report lookup error = %v, want ErrReportNotFound", err)
	}

	got, err := repo.GetReportByMonth(ctx, 2025, 4)
	if err != nil {
		t.Fatalf("GetReportByMonth() error = %v", err)
	}
	if got.ID != second || got.TotalExpense != 500000 {
		t.Errorf("report = %+v, want id %d with updated total", got, second)
	}
}

func TestExportLifecycle(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.SaveReport(ctx, sampleReport())
	if err != nil {
		t.Fatalf("SaveReport() error = %v", err)
	}

	pending, err := repo.ListPendingExports(ctx, 10)
	if err != nil {
		t.Fatalf("ListPendingExports() error = %v", err)
	}
	if len(pending) != 1 || pending[0].ID != id || pending[0].Month != 4 {
		t.Fatalf("pending = %+v", pending)
	}

	if err := repo.MarkExportError(ctx, id, errors.New("sheets unavailable")); err != nil {
		t.Fatalf("MarkExportError() error = %v", err)
	}
	pending, _ = repo.ListPendingExports(ctx, 10)
	if len(pending) != 1 {
		t.Errorf("report with export error should stay pending, got %+v", pending)
	}

	if err := repo.MarkExported(ctx, id); err != nil {
		t.Fatalf("MarkExported() error = %v", err)
	}
	pending, _ = repo.ListPendingExports(ctx, 10)
	if len(pending) != 0 {
		t.Errorf("pending after export = %+v, want empty", pending)
	}
}

func TestGetReportByMonthNotFound(t *testing.T) {
	repo := newTestRepo(t)
	if _, err := repo.GetReportByMonth(context.Background(), 1999, 1); !errors.Is(err, ErrReportNotFound) {
		t.Errorf("error = %v, want ErrReportNotFound", err)
	}
}
