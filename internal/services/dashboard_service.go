// Package services composes fetch, aggregation, archive and export into the
// operations the binaries expose.
package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"famboard/internal/core"
	"famboard/internal/familyapi"
	"famboard/internal/session"
	"famboard/internal/views"
)

// DashboardOverview is the full month view model for the dashboard screen.
type DashboardOverview struct {
	Year  int `json:"year"`
	Month int `json:"month"`

	TotalExpense int64 `json:"totalExpense"`
	TotalIncome  int64 `json:"totalIncome"`
	Net          int64 `json:"net"`

	ExpenseByCategory []views.CategoryTotal     `json:"expenseByCategory"`
	IncomeByCategory  []views.CategoryTotal     `json:"incomeByCategory"`
	Weekly            []views.WeekBucket        `json:"weekly"`
	TopCategories     []views.RankedCategory    `json:"topCategories"`
	TopTransactions   []views.RankedTransaction `json:"topTransactions"`

	MemberBalance views.BalanceReport `json:"memberBalance"`

	Budgets      views.BudgetReport `json:"budgets"`
	BudgetSource views.PeriodState  `json:"budgetSource"`
}

// TaskBoard is the task list annotated for one viewer.
type TaskBoard struct {
	Tasks []views.TaskView `json:"tasks"`
}

// DashboardService fetches entity lists from the family API and runs them
// through the aggregation engine. It holds no mutable state beyond the
// session it was built with.
type DashboardService struct {
	source  familyapi.Source
	archive BudgetArchive
	sess    session.Session
	now     func() time.Time
}

// BudgetArchive is the local fallback for months the live server no longer
// reports. May be nil when no archive is configured.
type BudgetArchive interface {
	ArchivedBudgets(ctx context.Context, year, month int) ([]core.Budget, error)
}

func NewDashboardService(source familyapi.Source, archive BudgetArchive, sess session.Session) *DashboardService {
	return &DashboardService{
		source:  source,
		archive: archive,
		sess:    sess,
		now:     time.Now,
	}
}

// fetchMonth pulls the entity lists the overview needs in parallel. Any
// fetch error aborts the whole call; per-record problems are the engine's
// concern, not ours.
func (s *DashboardService) fetchMonth(ctx context.Context, year, month int) (
	txs []core.Transaction, budgets []core.Budget, members []core.Member, err error,
) {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		txs, err = s.source.ListTransactions(gctx, year, month)
		return err
	})
	g.Go(func() error {
		var err error
		budgets, err = s.budgetsFor(gctx, year, month)
		return err
	})
	g.Go(func() error {
		var err error
		members, err = s.source.ListMembers(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, nil, fmt.Errorf("fetch month data: %w", err)
	}
	return txs, budgets, members, nil
}

// budgetsFor routes between the live budget list and historical sources
// depending on whether the requested month is still current.
func (s *DashboardService) budgetsFor(ctx context.Context, year, month int) ([]core.Budget, error) {
	if views.PeriodStateFor(year, month, s.now()) == views.PeriodCurrent {
		return s.source.ListBudgets(ctx)
	}

	// Historical months prefer the local archive; the remote history
	// endpoint covers months archived elsewhere.
	if s.archive != nil {
		archived, err := s.archive.ArchivedBudgets(ctx, year, month)
		if err == nil && len(archived) > 0 {
			return archived, nil
		}
	}
	return s.source.ListBudgetHistory(ctx, year, month)
}

// Overview builds the complete dashboard view model for a month.
func (s *DashboardService) Overview(ctx context.Context, year, month int) (DashboardOverview, error) {
	txs, budgets, members, err := s.fetchMonth(ctx, year, month)
	if err != nil {
		return DashboardOverview{}, err
	}

	expenseFilter := views.MonthFilter(core.Expense, core.ScopeFamily, year, month)
	incomeFilter := views.MonthFilter(core.Income, core.ScopeFamily, year, month)

	expenseTotals := views.AggregateByCategory(txs, expenseFilter)
	totalExpense := views.SumAmounts(txs, expenseFilter)
	totalIncome := views.SumAmounts(txs, incomeFilter)

	overview := DashboardOverview{
		Year:              year,
		Month:             month,
		TotalExpense:      totalExpense,
		TotalIncome:       totalIncome,
		Net:               totalIncome - totalExpense,
		ExpenseByCategory: expenseTotals,
		IncomeByCategory:  views.AggregateByCategory(txs, incomeFilter),
		Weekly:            views.AggregateByWeek(txs, expenseFilter),
		TopCategories:     views.RankCategories(expenseTotals, views.DefaultCategoryRankSize),
		TopTransactions:   views.TopTransactions(txs, expenseFilter, views.DefaultTopTransactions),
		MemberBalance:     views.MemberBalanceReport(members, txs, expenseFilter.Start, expenseFilter.End, s.sess.Viewer),
		Budgets:           views.BudgetCompletionReport(budgets),
		BudgetSource:      views.PeriodStateFor(year, month, s.now()),
	}
	return overview, nil
}

// CategoryBreakdown returns just the per-category totals for one type.
func (s *DashboardService) CategoryBreakdown(ctx context.Context, txType core.TransactionType, year, month int) ([]views.CategoryTotal, error) {
	txs, err := s.source.ListTransactions(ctx, year, month)
	if err != nil {
		return nil, fmt.Errorf("fetch transactions: %w", err)
	}
	return views.AggregateByCategory(txs, views.MonthFilter(txType, core.ScopeFamily, year, month)), nil
}

// WeeklyBreakdown returns the week buckets of family expenses for a month.
func (s *DashboardService) WeeklyBreakdown(ctx context.Context, year, month int) ([]views.WeekBucket, error) {
	txs, err := s.source.ListTransactions(ctx, year, month)
	if err != nil {
		return nil, fmt.Errorf("fetch transactions: %w", err)
	}
	return views.AggregateByWeek(txs, views.MonthFilter(core.Expense, core.ScopeFamily, year, month)), nil
}

// TopSpending returns the ranked categories and transactions for a month.
func (s *DashboardService) TopSpending(ctx context.Context, year, month int) ([]views.RankedCategory, []views.RankedTransaction, error) {
	txs, err := s.source.ListTransactions(ctx, year, month)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch transactions: %w", err)
	}
	f := views.MonthFilter(core.Expense, core.ScopeFamily, year, month)
	totals := views.AggregateByCategory(txs, f)
	return views.RankCategories(totals, views.DefaultCategoryRankSize),
		views.TopTransactions(txs, f, views.DefaultTopTransactions), nil
}

// MemberBalances returns the owner-only per-member attribution for a month.
// Non-owner viewers get an empty report.
func (s *DashboardService) MemberBalances(ctx context.Context, year, month int) (views.BalanceReport, error) {
	g, gctx := errgroup.WithContext(ctx)
	var txs []core.Transaction
	var members []core.Member
	g.Go(func() error {
		var err error
		txs, err = s.source.ListTransactions(gctx, year, month)
		return err
	})
	g.Go(func() error {
		var err error
		members, err = s.source.ListMembers(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return views.BalanceReport{}, fmt.Errorf("fetch member balances: %w", err)
	}

	f := views.MonthFilter("", "", year, month)
	return views.MemberBalanceReport(members, txs, f.Start, f.End, s.sess.Viewer), nil
}

// BudgetStatus returns the completion report for a month along with the
// source it was computed from.
func (s *DashboardService) BudgetStatus(ctx context.Context, year, month int) (views.BudgetReport, views.PeriodState, error) {
	budgets, err := s.budgetsFor(ctx, year, month)
	if err != nil {
		return views.BudgetReport{}, "", fmt.Errorf("fetch budgets: %w", err)
	}
	return views.BudgetCompletionReport(budgets), views.PeriodStateFor(year, month, s.now()), nil
}

// TaskBoard derives the per-viewer task views.
func (s *DashboardService) TaskBoard(ctx context.Context) (TaskBoard, error) {
	g, gctx := errgroup.WithContext(ctx)
	var tasks []core.TodoTask
	var members []core.Member
	g.Go(func() error {
		var err error
		tasks, err = s.source.ListTasks(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		members, err = s.source.ListMembers(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return TaskBoard{}, fmt.Errorf("fetch task board: %w", err)
	}

	return TaskBoard{Tasks: views.DeriveTaskViews(tasks, members, s.sess.Viewer, s.now())}, nil
}
