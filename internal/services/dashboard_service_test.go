package services

import (
	"context"
	"testing"
	"time"

	"famboard/internal/core"
	"famboard/internal/familyapi/memory"
	"famboard/internal/session"
	"famboard/internal/views"
)

var testNow = time.Date(2025, 4, 20, 12, 0, 0, 0, time.UTC)

func testSession(owner bool) session.Session {
	return session.New("https://api.example.com", "tok", "fam-1",
		core.Viewer{UserID: "u1", IsOwner: owner})
}

func date(y int, m time.Month, d int) core.Date {
	return core.Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func seedStore() *memory.Store {
	return memory.New().
		SeedTransactions(
			core.Transaction{
				ID: "t1", Type: core.Expense, Amount: 300000,
				Category:  core.Ref{ID: "food", Name: "Food"},
				Date:      date(2025, time.April, 3),
				Scope:     core.ScopeFamily,
				CreatedBy: core.Ref{ID: "u1"},
			},
			core.Transaction{
				ID: "t2", Type: core.Expense, Amount: 150000,
				Date:      date(2025, time.April, 10),
				Scope:     core.ScopeFamily,
				CreatedBy: core.Ref{ID: "u2"},
			},
			core.Transaction{
				ID: "t3", Type: core.Income, Amount: 900000,
				Category:  core.Ref{ID: "salary", Name: "Salary"},
				Date:      date(2025, time.April, 1),
				Scope:     core.ScopeFamily,
				CreatedBy: core.Ref{ID: "u1"},
			},
			core.Transaction{
				ID: "t4", Type: core.Expense, Amount: 50000,
				Category:  core.Ref{ID: "coffee", Name: "Coffee"},
				Date:      date(2025, time.April, 5),
				Scope:     core.ScopePersonal,
				CreatedBy: core.Ref{ID: "u2"},
			},
		).
		SeedBudgets(core.Budget{
			ID: "b1", Category: core.Ref{ID: "food", Name: "Food"},
			Amount: 400000, Spent: 300000,
		}).
		SeedMembers(
			core.Member{User: core.Ref{ID: "u1", Name: "An"}, Role: core.RoleOwner},
			core.Member{User: core.Ref{ID: "u2", Name: "Binh"}, Role: core.RoleMember},
		).
		SeedTasks(core.TodoTask{
			ID: "task-1", Title: "Dishes", Priority: core.PriorityHigh,
			DueDate:    core.Date{Time: testNow.Add(2 * time.Hour)},
			AssignedTo: []core.Ref{{ID: "u1", Name: "An"}},
			CreatedBy:  core.Ref{ID: "u1"},
		})
}

func newTestService(owner bool) *DashboardService {
	svc := NewDashboardService(seedStore(), nil, testSession(owner))
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestOverview(t *testing.T) {
	svc := newTestService(true)

	overview, err := svc.Overview(context.Background(), 2025, 4)
	if err != nil {
		t.Fatalf("Overview() error = %v", err)
	}

	if overview.TotalExpense != 450000 {
		t.Errorf("TotalExpense = %d, want 450000", overview.TotalExpense)
	}
	if overview.TotalIncome != 900000 {
		t.Errorf("TotalIncome = %d, want 900000", overview.TotalIncome)
	}
	if overview.Net != 450000 {
		t.Errorf("Net = %d, want 450000", overview.Net)
	}

	if len(overview.ExpenseByCategory) != 2 {
		t.Fatalf("ExpenseByCategory = %+v", overview.ExpenseByCategory)
	}
	if overview.ExpenseByCategory[0].Key != "food" {
		t.Errorf("top expense category = %q, want food", overview.ExpenseByCategory[0].Key)
	}
	if overview.ExpenseByCategory[1].Key != core.CategoryExpenseOther {
		t.Errorf("second category = %q, want sentinel", overview.ExpenseByCategory[1].Key)
	}

	if len(overview.TopTransactions) != 2 {
		t.Errorf("TopTransactions = %+v, want 2 family expenses", overview.TopTransactions)
	}

	if overview.BudgetSource != views.PeriodCurrent {
		t.Errorf("BudgetSource = %q, want current", overview.BudgetSource)
	}
	if len(overview.Budgets.Entries) != 1 || overview.Budgets.Entries[0].Percentage != 75 {
		t.Errorf("Budgets = %+v", overview.Budgets)
	}

	// Personal-scope attribution is owner-only and keyed by creator.
	if len(overview.MemberBalance.Expense) != 1 || overview.MemberBalance.Expense[0].UserID != "u2" {
		t.Errorf("MemberBalance.Expense = %+v", overview.MemberBalance.Expense)
	}
}

func TestOverviewNonOwnerGetsEmptyBalance(t *testing.T) {
	svc := newTestService(false)

	overview, err := svc.Overview(context.Background(), 2025, 4)
	if err != nil {
		t.Fatalf("Overview() error = %v", err)
	}
	if len(overview.MemberBalance.Expense) != 0 || len(overview.MemberBalance.Income) != 0 {
		t.Errorf("MemberBalance = %+v, want empty for non-owner", overview.MemberBalance)
	}
}

func TestOverviewEmptyMonth(t *testing.T) {
	svc := newTestService(true)

	overview, err := svc.Overview(context.Background(), 2024, 11)
	if err != nil {
		t.Fatalf("Overview() error = %v", err)
	}
	if overview.TotalExpense != 0 || len(overview.ExpenseByCategory) != 0 {
		t.Errorf("empty month overview = %+v", overview)
	}
	if overview.BudgetSource != views.PeriodHistorical {
		t.Errorf("BudgetSource = %q, want historical", overview.BudgetSource)
	}
}

func TestBudgetStatusRoutesHistoricalToRemoteHistory(t *testing.T) {
	store := seedStore().SeedBudgetHistory(2025, 3, core.Budget{
		ID: "b-old", Category: core.Ref{ID: "food", Name: "Food"},
		Amount: 200000, Spent: 200000,
	})
	svc := NewDashboardService(store, nil, testSession(true))
	svc.now = func() time.Time { return testNow }

	report, state, err := svc.BudgetStatus(context.Background(), 2025, 3)
	if err != nil {
		t.Fatalf("BudgetStatus() error = %v", err)
	}
	if state != views.PeriodHistorical {
		t.Errorf("state = %q, want historical", state)
	}
	if len(report.Entries) != 1 || report.Entries[0].Budget.ID != "b-old" {
		t.Errorf("entries = %+v", report.Entries)
	}
	if report.Entries[0].Status != views.BudgetOver {
		t.Errorf("status = %q, want over", report.Entries[0].Status)
	}
}

func TestTaskBoard(t *testing.T) {
	svc := newTestService(true)

	board, err := svc.TaskBoard(context.Background())
	if err != nil {
		t.Fatalf("TaskBoard() error = %v", err)
	}
	if len(board.Tasks) != 1 {
		t.Fatalf("tasks = %+v", board.Tasks)
	}
	tv := board.Tasks[0]
	if !tv.CanEdit || !tv.CanToggleStatus {
		t.Errorf("owner permissions = edit %v toggle %v", tv.CanEdit, tv.CanToggleStatus)
	}
	if !tv.IsNearDeadlineForViewer || tv.IsOverdueForViewer {
		t.Errorf("deadline flags = near %v overdue %v", tv.IsNearDeadlineForViewer, tv.IsOverdueForViewer)
	}
}

func TestMemberBalancesNonOwner(t *testing.T) {
	svc := newTestService(false)

	report, err := svc.MemberBalances(context.Background(), 2025, 4)
	if err != nil {
		t.Fatalf("MemberBalances() error = %v", err)
	}
	if len(report.Expense) != 0 {
		t.Errorf("report = %+v, want empty", report)
	}
}
